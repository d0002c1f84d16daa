// ABOUTME: Normalized session state for workouts, entries, and sets.
// ABOUTME: Flat id-keyed maps plus ordered index lists; no nesting.
package models

// SessionWorkout is the flat workout record held in normalized state.
// Entries live in SessionState.EntryIDsByWorkoutID, not here.
type SessionWorkout struct {
	ID        string `json:"id"`
	ProgramID string `json:"programId"`
	StartedAt int64  `json:"startedAt"`
	EndedAt   int64  `json:"endedAt,omitempty"`
}

// Active reports whether the workout has not been finished yet.
func (w SessionWorkout) Active() bool { return w.EndedAt == 0 }

// SortKey is the activity timestamp used for most-recent-first ordering.
func (w SessionWorkout) SortKey() int64 {
	if w.EndedAt != 0 {
		return w.EndedAt
	}
	return w.StartedAt
}

// SessionEntry ties one exercise to one workout. Its id is derived from
// (workoutID, exerciseID), which guarantees a workout holds at most one
// entry per exercise.
type SessionEntry struct {
	ID         string `json:"id"`
	WorkoutID  string `json:"workoutId"`
	ExerciseID string `json:"exerciseId"`
	Suggested  bool   `json:"suggested"`
}

// SessionState is the normalized entity state. WorkoutIDs is always sorted
// descending by endedAt-or-startedAt; ActiveWorkoutID is the first workout
// without an end timestamp, or empty.
type SessionState struct {
	ActiveWorkoutID     string                    `json:"activeWorkoutId,omitempty"`
	WorkoutsByID        map[string]SessionWorkout `json:"workoutsById"`
	EntriesByID         map[string]SessionEntry   `json:"entriesById"`
	SetsByID            map[string]Set            `json:"setsById"`
	EntryIDsByWorkoutID map[string][]string       `json:"entryIdsByWorkoutId"`
	SetIDsByEntryID     map[string][]string       `json:"setIdsByEntryId"`
	WorkoutIDs          []string                  `json:"workoutIds"`
}

// EmptySessionState returns a state with all maps allocated.
func EmptySessionState() SessionState {
	return SessionState{
		WorkoutsByID:        map[string]SessionWorkout{},
		EntriesByID:         map[string]SessionEntry{},
		SetsByID:            map[string]Set{},
		EntryIDsByWorkoutID: map[string][]string{},
		SetIDsByEntryID:     map[string][]string{},
		WorkoutIDs:          []string{},
	}
}

// UndoDeleteSet carries everything needed to exactly reverse a set deletion:
// the removed record and its original position within the entry.
type UndoDeleteSet struct {
	WorkoutID  string `json:"workoutId"`
	ExerciseID string `json:"exerciseId"`
	Set        Set    `json:"set"`
	Index      int    `json:"index"`
}
