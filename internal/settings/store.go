// ABOUTME: Observable store for process-wide user preferences.
// ABOUTME: Falls back to defaults when nothing has been persisted yet.
package settings

import (
	"sync"
	"time"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/storage"
)

// SchemaVersion is the current persisted settings format version.
const SchemaVersion = 1

// migrations maps a stored schema version to the transform that lifts
// settings one version forward.
var migrations = map[int]func(models.Settings) models.Settings{}

func migrate(value models.Settings, fromVersion int) models.Settings {
	for v := fromVersion; v < SchemaVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			continue
		}
		value = step(value)
	}
	return value
}

// Patch is a partial settings update. Nil fields are left unchanged.
type Patch struct {
	UnitsPreference  *models.Units
	DefaultBarWeight *float64
	ReducedMotion    *bool
}

// Store holds the single settings instance.
type Store struct {
	mu             sync.Mutex
	settings       models.Settings
	hasHydrated    bool
	lastHydratedAt int64
	subs           map[int]func()
	nextSub        int
	now            func() int64
}

// NewStore returns a store primed with defaults, not yet hydrated.
func NewStore() *Store {
	return &Store{
		settings: models.DefaultSettings(),
		subs:     map[int]func(){},
		now:      func() int64 { return time.Now().UnixMilli() },
	}
}

// Subscribe registers a change callback and returns its unsubscribe func.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// HasHydrated reports whether Hydrate has completed.
func (s *Store) HasHydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasHydrated
}

// Settings returns the current settings value.
func (s *Store) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Hydrate loads persisted settings exactly once, keeping defaults when no
// record exists.
func (s *Store) Hydrate(adapter storage.Adapter) {
	s.mu.Lock()
	if s.hasHydrated {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	value := models.DefaultSettings()
	storedVersion := 0
	if record, ok := adapter.GetSettings(); ok {
		value = record.Value
		storedVersion = record.SchemaVersion
	}
	value = migrate(value, storedVersion)

	s.mu.Lock()
	if s.hasHydrated {
		s.mu.Unlock()
		return
	}
	s.settings = value
	s.hasHydrated = true
	s.lastHydratedAt = s.now()
	s.mu.Unlock()

	s.notify()
}

// UpdateSettings merges the patch into the current settings.
func (s *Store) UpdateSettings(patch Patch) {
	s.mu.Lock()
	if patch.UnitsPreference != nil {
		s.settings.UnitsPreference = *patch.UnitsPreference
	}
	if patch.DefaultBarWeight != nil {
		s.settings.DefaultBarWeight = *patch.DefaultBarWeight
	}
	if patch.ReducedMotion != nil {
		s.settings.ReducedMotion = *patch.ReducedMotion
	}
	s.mu.Unlock()

	s.notify()
}

// ReplaceSettings swaps in a whole settings value (import/reset path).
func (s *Store) ReplaceSettings(value models.Settings) {
	s.mu.Lock()
	s.settings = value
	s.mu.Unlock()

	s.notify()
}
