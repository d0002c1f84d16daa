// ABOUTME: Observable container for normalized workout session state.
// ABOUTME: Synchronous atomic mutations; one sync event emitted per mutation.
package session

import (
	"sync"
	"time"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/outbox"
)

// Catalog is the slice of catalog state the session store depends on.
type Catalog struct {
	Programs  []models.Program
	Exercises []models.Exercise
}

// Deps are the collaborators injected into the store. Emit receives one
// domain event per mutation and may be nil.
type Deps struct {
	GetSettings func() models.Settings
	GetCatalog  func() Catalog
	Emit        func(eventType outbox.EventType, payload map[string]any)
}

// SetPatch is a partial update for a set. Nil fields are left unchanged.
type SetPatch struct {
	WeightKg  *float64
	Reps      *int
	Completed *bool
	Mode      *models.InputMode
}

// Store holds normalized session state behind a mutex. Every mutation fully
// applies in memory before returning; persistence is the bridge's job, never
// the store's.
type Store struct {
	mu               sync.Mutex
	deps             Deps
	state            models.SessionState
	hasHydrated      bool
	lastHydratedAt   int64
	legacyClearToken uint64
	subs             map[int]func()
	nextSub          int
	now              func() int64
}

// NewStore returns an empty, unhydrated session store.
func NewStore(deps Deps) *Store {
	return &Store{
		deps:  deps,
		state: models.EmptySessionState(),
		subs:  map[int]func(){},
		now:   func() int64 { return time.Now().UnixMilli() },
	}
}

// SetNow overrides the clock, for tests.
func (s *Store) SetNow(now func() int64) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// Subscribe registers a change callback and returns its unsubscribe func.
// Callbacks run after the mutation has committed, outside the store lock.
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

func (s *Store) emit(eventType outbox.EventType, payload map[string]any) {
	if s.deps.Emit != nil {
		s.deps.Emit(eventType, payload)
	}
}

// HasHydrated reports whether Hydrate has completed.
func (s *Store) HasHydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasHydrated
}

// LegacyClearToken increases each time ClearSession asks the bridge to purge
// the legacy workout partition.
func (s *Store) LegacyClearToken() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.legacyClearToken
}

// Snapshot returns a deep copy of the current normalized state.
func (s *Store) Snapshot() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneState(s.state)
}

// ActiveWorkoutID returns the cached active workout id, or empty.
func (s *Store) ActiveWorkoutID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.ActiveWorkoutID
}

// Workout returns the denormalized view of one workout.
func (s *Store) Workout(workoutID string) (models.Workout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DenormalizeWorkout(s.state, workoutID)
}

// Workouts returns the full denormalized history, most recent first.
func (s *Store) Workouts() []models.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return DenormalizeWorkouts(s.state)
}

// StartWorkout creates a workout for the program, seeds its entries from the
// most recent completed workout of the same program, and makes it active
// (last start wins). Returns empty if the program is unknown.
func (s *Store) StartWorkout(programID string) string {
	catalog := s.deps.GetCatalog()
	settings := s.deps.GetSettings()

	var program models.Program
	found := false
	for _, p := range catalog.Programs {
		if p.ID == programID {
			program = p
			found = true
			break
		}
	}
	if !found {
		return ""
	}

	s.mu.Lock()
	workout := models.SessionWorkout{
		ID:        models.NewID(),
		ProgramID: programID,
		StartedAt: s.now(),
	}
	built := buildWorkoutEntries(workout.ID, program, catalog.Exercises, settings, s.state)

	s.state.WorkoutsByID[workout.ID] = workout
	s.state.WorkoutIDs = insertSortedWorkoutID(s.state.WorkoutIDs, s.state.WorkoutsByID, workout)
	s.state.EntryIDsByWorkoutID[workout.ID] = built.entryIDs
	for id, entry := range built.entriesByID {
		s.state.EntriesByID[id] = entry
	}
	for id, set := range built.setsByID {
		s.state.SetsByID[id] = set
	}
	for id, setIDs := range built.setIDsByEntryID {
		s.state.SetIDsByEntryID[id] = setIDs
	}
	s.state.ActiveWorkoutID = workout.ID
	s.mu.Unlock()

	s.emit(outbox.EventWorkoutStarted, map[string]any{"workoutId": workout.ID, "programId": programID})
	s.notify()
	return workout.ID
}

// FinishWorkout stamps the end time, re-sorts the workout's position, and
// clears the active id if it matched. Returns false for unknown ids.
func (s *Store) FinishWorkout(workoutID string) bool {
	s.mu.Lock()
	workout, ok := s.state.WorkoutsByID[workoutID]
	if !ok {
		s.mu.Unlock()
		return false
	}
	workout.EndedAt = s.now()
	s.state.WorkoutsByID[workoutID] = workout
	s.state.WorkoutIDs = insertSortedWorkoutID(s.state.WorkoutIDs, s.state.WorkoutsByID, workout)
	if s.state.ActiveWorkoutID == workoutID {
		s.state.ActiveWorkoutID = ""
	}
	s.mu.Unlock()

	s.emit(outbox.EventWorkoutFinished, map[string]any{"workoutId": workoutID})
	s.notify()
	return true
}

// UpdateSet merges the patch into an existing set. The set id alone is
// authoritative; the workout and exercise ids are caller ergonomics.
// Returns false for unknown set ids.
func (s *Store) UpdateSet(workoutID, exerciseID, setID string, patch SetPatch) bool {
	s.mu.Lock()
	set, ok := s.state.SetsByID[setID]
	if !ok {
		s.mu.Unlock()
		return false
	}
	if patch.WeightKg != nil {
		set.WeightKg = *patch.WeightKg
	}
	if patch.Reps != nil {
		set.Reps = *patch.Reps
	}
	if patch.Completed != nil {
		set.Completed = *patch.Completed
	}
	if patch.Mode != nil {
		set.Mode = *patch.Mode
	}
	s.state.SetsByID[setID] = set
	s.mu.Unlock()

	s.emit(outbox.EventSetUpdated, map[string]any{"setId": setID})
	s.notify()
	return true
}

// AddSet appends a set to the entry, cloning the entry's last set with a
// fresh id, or synthesizing a default from the exercise's input mode when
// the entry is empty. Returns false (and changes nothing) when the workout
// has no entry for the exercise.
func (s *Store) AddSet(workoutID, exerciseID string) (string, bool) {
	settings := s.deps.GetSettings()
	catalog := s.deps.GetCatalog()
	entryID := EntryID(workoutID, exerciseID)

	s.mu.Lock()
	if _, ok := s.state.EntriesByID[entryID]; !ok {
		s.mu.Unlock()
		return "", false
	}
	setIDs := s.state.SetIDsByEntryID[entryID]

	var next models.Set
	if len(setIDs) > 0 {
		if last, ok := s.state.SetsByID[setIDs[len(setIDs)-1]]; ok {
			next = last
			next.ID = models.NewID()
			next.Completed = false
		}
	}
	if next.ID == "" {
		mode := models.ModeTotal
		for _, ex := range catalog.Exercises {
			if ex.ID == exerciseID {
				mode = ex.DefaultInputMode
				break
			}
		}
		next = DefaultSet(mode, settings)
	}

	s.state.SetsByID[next.ID] = next
	s.state.SetIDsByEntryID[entryID] = append(append([]string{}, setIDs...), next.ID)
	s.mu.Unlock()

	s.emit(outbox.EventSetAdded, map[string]any{"workoutId": workoutID, "exerciseId": exerciseID})
	s.notify()
	return next.ID, true
}

// DeleteSet removes a set from the entry and returns the removed record with
// its original position, which is everything needed for exact undo. Returns
// false (and changes nothing) if the set is not in that entry.
func (s *Store) DeleteSet(workoutID, exerciseID, setID string) (models.UndoDeleteSet, bool) {
	entryID := EntryID(workoutID, exerciseID)

	s.mu.Lock()
	setIDs := s.state.SetIDsByEntryID[entryID]
	index := -1
	for i, id := range setIDs {
		if id == setID {
			index = i
			break
		}
	}
	removed, exists := s.state.SetsByID[setID]
	if index == -1 || !exists {
		s.mu.Unlock()
		return models.UndoDeleteSet{}, false
	}

	next := make([]string, 0, len(setIDs)-1)
	next = append(next, setIDs[:index]...)
	next = append(next, setIDs[index+1:]...)
	s.state.SetIDsByEntryID[entryID] = next
	delete(s.state.SetsByID, setID)
	s.mu.Unlock()

	s.emit(outbox.EventSetDeleted, map[string]any{"setId": setID})
	s.notify()
	return models.UndoDeleteSet{
		WorkoutID:  workoutID,
		ExerciseID: exerciseID,
		Set:        removed,
		Index:      index,
	}, true
}

// RestoreDeletedSet reinserts a deleted set at its recorded position,
// clamped to the entry's current length. Idempotent: if the id is already
// present nothing changes.
func (s *Store) RestoreDeletedSet(payload models.UndoDeleteSet) {
	entryID := EntryID(payload.WorkoutID, payload.ExerciseID)

	s.mu.Lock()
	setIDs := s.state.SetIDsByEntryID[entryID]
	for _, id := range setIDs {
		if id == payload.Set.ID {
			s.mu.Unlock()
			return
		}
	}

	insertAt := payload.Index
	if insertAt < 0 {
		insertAt = 0
	}
	if insertAt > len(setIDs) {
		insertAt = len(setIDs)
	}

	next := make([]string, 0, len(setIDs)+1)
	next = append(next, setIDs[:insertAt]...)
	next = append(next, payload.Set.ID)
	next = append(next, setIDs[insertAt:]...)

	s.state.SetsByID[payload.Set.ID] = payload.Set
	s.state.SetIDsByEntryID[entryID] = next
	s.mu.Unlock()

	s.emit(outbox.EventSetRestored, map[string]any{"setId": payload.Set.ID})
	s.notify()
}

// ReplaceFromWorkouts replaces the whole session from a denormalized list.
// Imports are explicit overwrites, so no sync event is emitted.
func (s *Store) ReplaceFromWorkouts(workouts []models.Workout) {
	normalized := NormalizeWorkouts(workouts)

	s.mu.Lock()
	s.state = normalized
	s.mu.Unlock()

	s.notify()
}

// ClearSession wipes all normalized state and bumps the legacy clear token,
// which tells the persistence bridge to purge the legacy partition too.
func (s *Store) ClearSession() {
	s.mu.Lock()
	s.state = models.EmptySessionState()
	s.legacyClearToken++
	s.mu.Unlock()

	s.notify()
}
