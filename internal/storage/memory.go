// ABOUTME: In-memory storage backend for tests and degraded operation.
// ABOUTME: Satisfies the same best-effort contract as the durable backends.
package storage

import "sync"

// memoryKV keeps records in nested maps. It is the reference implementation
// of the adapter contract and the fallback when no durable substrate can be
// opened.
type memoryKV struct {
	mu    sync.RWMutex
	parts map[string]map[string][]byte
}

// NewMemory returns an adapter backed by process memory.
func NewMemory() Adapter {
	return newAdapter(&memoryKV{parts: map[string]map[string][]byte{}})
}

func (m *memoryKV) get(partition, id string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.parts[partition][id]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true
}

func (m *memoryKV) getAll(partition string) [][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	part := m.parts[partition]
	out := make([][]byte, 0, len(part))
	for _, data := range part {
		cp := make([]byte, len(data))
		copy(cp, data)
		out = append(out, cp)
	}
	return out
}

func (m *memoryKV) put(partition, id string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	part := m.parts[partition]
	if part == nil {
		part = map[string][]byte{}
		m.parts[partition] = part
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	part[id] = cp
}

func (m *memoryKV) delete(partition, id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.parts[partition], id)
}

func (m *memoryKV) clear(partition string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.parts, partition)
}

func (m *memoryKV) close() error { return nil }
