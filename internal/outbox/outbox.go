// ABOUTME: Durable queue of domain events awaiting external synchronization.
// ABOUTME: Producer half only; hydration merges persisted and early events.
package outbox

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/storage"
)

// SchemaVersion is the current persisted outbox format version.
const SchemaVersion = 1

// storageKey is the generic-item key the queue persists under.
const storageKey = "outbox"

// EventType enumerates the domain events the session store produces.
type EventType string

const (
	EventWorkoutStarted  EventType = "WORKOUT_STARTED"
	EventWorkoutFinished EventType = "WORKOUT_FINISHED"
	EventSetUpdated      EventType = "SET_UPDATED"
	EventSetAdded        EventType = "SET_ADDED"
	EventSetDeleted      EventType = "SET_DELETED"
	EventSetRestored     EventType = "SET_RESTORED"
)

// Event is one sync event awaiting delivery. CreatedAt is Unix milliseconds.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Payload   map[string]any `json:"payload"`
	CreatedAt int64          `json:"createdAt"`
}

// record is the persisted shape of the queue.
type record struct {
	SchemaVersion int     `json:"schemaVersion"`
	Value         []Event `json:"value"`
	UpdatedAt     int64   `json:"updatedAt,omitempty"`
}

// Queue is an append-only, id-stamped event queue. Events may be enqueued
// before Hydrate has loaded the persisted backlog; Hydrate merges the two
// sides, deduplicating by event id.
type Queue struct {
	mu          sync.Mutex
	pending     []Event
	hasHydrated bool
	now         func() int64
	onChange    func()
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{now: func() int64 { return time.Now().UnixMilli() }}
}

// SetNow overrides the clock, for tests.
func (q *Queue) SetNow(now func() int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.now = now
}

// OnChange registers a single callback invoked after every queue change.
// The persistence bridge uses it to schedule debounced writes.
func (q *Queue) OnChange(fn func()) {
	q.mu.Lock()
	q.onChange = fn
	q.mu.Unlock()
}

func (q *Queue) notify() {
	q.mu.Lock()
	fn := q.onChange
	q.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Enqueue appends a new event, stamping its id and creation time.
func (q *Queue) Enqueue(eventType EventType, payload map[string]any) Event {
	q.mu.Lock()
	event := Event{
		ID:        models.NewID(),
		Type:      eventType,
		Payload:   payload,
		CreatedAt: q.now(),
	}
	q.pending = append(q.pending, event)
	q.mu.Unlock()

	q.notify()
	return event
}

// MarkSynced removes a delivered event by id.
func (q *Queue) MarkSynced(eventID string) {
	q.mu.Lock()
	next := q.pending[:0]
	for _, event := range q.pending {
		if event.ID != eventID {
			next = append(next, event)
		}
	}
	q.pending = next
	q.mu.Unlock()

	q.notify()
}

// Clear drops all pending events.
func (q *Queue) Clear() {
	q.mu.Lock()
	q.pending = nil
	q.mu.Unlock()

	q.notify()
}

// Pending returns a copy of the queued events in order.
func (q *Queue) Pending() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Event{}, q.pending...)
}

// HasHydrated reports whether Hydrate has completed.
func (q *Queue) HasHydrated() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.hasHydrated
}

// migrations maps a stored schema version to the transform that lifts
// events one version forward. Versions without an entry pass through.
var migrations = map[int]func([]Event) []Event{}

func migrate(events []Event, fromVersion int) []Event {
	for v := fromVersion; v < SchemaVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			continue
		}
		events = step(events)
	}
	return events
}

// merge combines the persisted backlog with events enqueued before
// hydration, deduplicating by id and ordering by creation time.
func merge(stored, current []Event) []Event {
	seen := make(map[string]bool, len(stored))
	merged := append([]Event{}, stored...)
	for _, event := range stored {
		seen[event.ID] = true
	}
	for _, event := range current {
		if !seen[event.ID] {
			merged = append(merged, event)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt < merged[j].CreatedAt
	})
	return merged
}

// Hydrate loads the persisted queue and merges it with anything already
// enqueued in memory. If the stored record is missing or carries an old
// schema version, the merged queue is written back immediately.
func (q *Queue) Hydrate(adapter storage.Adapter) {
	var stored []Event
	storedVersion := 0

	if data, ok := adapter.GetItem(storageKey); ok {
		var rec record
		if err := json.Unmarshal(data, &rec); err == nil {
			storedVersion = rec.SchemaVersion
			stored = migrate(rec.Value, storedVersion)
		}
	}

	q.mu.Lock()
	merged := merge(stored, q.pending)
	q.pending = merged
	q.hasHydrated = true
	q.mu.Unlock()

	if storedVersion != SchemaVersion {
		q.Persist(adapter)
	}
	q.notify()
}

// Persist writes the current queue through the adapter. An empty queue
// removes the stored record instead of writing an empty one.
func (q *Queue) Persist(adapter storage.Adapter) {
	q.mu.Lock()
	events := append([]Event{}, q.pending...)
	now := q.now()
	q.mu.Unlock()

	if len(events) == 0 {
		adapter.RemoveItem(storageKey)
		return
	}

	data, err := json.Marshal(record{
		SchemaVersion: SchemaVersion,
		Value:         events,
		UpdatedAt:     now,
	})
	if err != nil {
		return
	}
	adapter.SetItem(storageKey, data)
}
