// ABOUTME: Session hydration from the versioned snapshot or legacy storage.
// ABOUTME: Holds the schema version and the versioned migration registry.
package session

import (
	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/storage"
)

// SchemaVersion is the current persisted session snapshot version.
const SchemaVersion = 1

// migrations maps a stored schema version to the transform that lifts a
// snapshot one version forward. Any future format change branches here
// before the data is accepted.
var migrations = map[int]func(models.SessionState) models.SessionState{}

func migrate(state models.SessionState, fromVersion int) models.SessionState {
	for v := fromVersion; v < SchemaVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			continue
		}
		state = step(state)
	}
	return state
}

// ensureMaps allocates any maps a decoded snapshot left nil.
func ensureMaps(state models.SessionState) models.SessionState {
	if state.WorkoutsByID == nil {
		state.WorkoutsByID = map[string]models.SessionWorkout{}
	}
	if state.EntriesByID == nil {
		state.EntriesByID = map[string]models.SessionEntry{}
	}
	if state.SetsByID == nil {
		state.SetsByID = map[string]models.Set{}
	}
	if state.EntryIDsByWorkoutID == nil {
		state.EntryIDsByWorkoutID = map[string][]string{}
	}
	if state.SetIDsByEntryID == nil {
		state.SetIDsByEntryID = map[string][]string{}
	}
	if state.WorkoutIDs == nil {
		state.WorkoutIDs = []string{}
	}
	return state
}

// Hydrate loads persisted session state exactly once. A versioned snapshot
// wins; otherwise the legacy unnormalized workout list is normalized in
// place. Calling Hydrate again after it has completed is a no-op.
func (s *Store) Hydrate(adapter storage.Adapter) {
	s.mu.Lock()
	if s.hasHydrated {
		s.mu.Unlock()
		return
	}
	now := s.now
	s.mu.Unlock()

	var state models.SessionState
	if record, ok := adapter.GetSessionSnapshot(); ok {
		state = ensureMaps(migrate(record.Value, record.SchemaVersion))
	} else {
		state = NormalizeWorkouts(adapter.GetLegacyWorkouts())
	}

	s.mu.Lock()
	if s.hasHydrated {
		s.mu.Unlock()
		return
	}
	s.state = state
	s.hasHydrated = true
	s.lastHydratedAt = now()
	s.mu.Unlock()

	s.notify()
}
