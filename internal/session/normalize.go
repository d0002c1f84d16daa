// ABOUTME: Pure transformations between nested workouts and normalized state.
// ABOUTME: Normalize/denormalize, sorted insertion, and entry/set derivation.
package session

import (
	"github.com/harperreed/gym/internal/models"
)

// EntryID derives the composite entry id for (workout, exercise). Deriving
// it deterministically is what keeps a workout to at most one entry per
// exercise.
func EntryID(workoutID, exerciseID string) string {
	return workoutID + ":" + exerciseID
}

// DefaultSet synthesizes the set used when there is no history to clone.
// Plate-mode sets start at the configured bar weight; everything else at zero.
func DefaultSet(mode models.InputMode, settings models.Settings) models.Set {
	weight := 0.0
	if mode == models.ModePlates {
		weight = settings.DefaultBarWeight
	}
	return models.Set{
		ID:       models.NewID(),
		WeightKg: weight,
		Reps:     8,
		Mode:     mode,
	}
}

// insertSortedWorkoutID returns workoutIDs with workout.ID placed at its
// sorted position: descending by endedAt-or-startedAt, stable for ties
// (existing ids with an equal key stay ahead of the inserted one). Any prior
// occurrence of the id is removed first. O(n), no full re-sort.
func insertSortedWorkoutID(workoutIDs []string, workoutsByID map[string]models.SessionWorkout, workout models.SessionWorkout) []string {
	next := make([]string, 0, len(workoutIDs)+1)
	for _, id := range workoutIDs {
		if id != workout.ID {
			next = append(next, id)
		}
	}

	key := workout.SortKey()
	insertAt := len(next)
	for i, id := range next {
		candidate, ok := workoutsByID[id]
		if !ok {
			continue
		}
		if candidate.SortKey() < key {
			insertAt = i
			break
		}
	}

	next = append(next, "")
	copy(next[insertAt+1:], next[insertAt:])
	next[insertAt] = workout.ID
	return next
}

// NormalizeWorkouts flattens nested workouts into normalized state, then
// re-derives the workout ordering and the active workout id. It is the
// two-sided inverse of DenormalizeWorkouts up to key ordering.
func NormalizeWorkouts(workouts []models.Workout) models.SessionState {
	state := models.EmptySessionState()

	for _, workout := range workouts {
		state.WorkoutsByID[workout.ID] = models.SessionWorkout{
			ID:        workout.ID,
			ProgramID: workout.ProgramID,
			StartedAt: workout.StartedAt,
			EndedAt:   workout.EndedAt,
		}
		state.WorkoutIDs = append(state.WorkoutIDs, workout.ID)

		entryIDs := make([]string, 0, len(workout.Entries))
		for _, entry := range workout.Entries {
			entryID := EntryID(workout.ID, entry.ExerciseID)
			entryIDs = append(entryIDs, entryID)
			state.EntriesByID[entryID] = models.SessionEntry{
				ID:         entryID,
				WorkoutID:  workout.ID,
				ExerciseID: entry.ExerciseID,
				Suggested:  entry.Suggested,
			}
			setIDs := make([]string, 0, len(entry.Sets))
			for _, set := range entry.Sets {
				setIDs = append(setIDs, set.ID)
				state.SetsByID[set.ID] = set
			}
			state.SetIDsByEntryID[entryID] = setIDs
		}
		state.EntryIDsByWorkoutID[workout.ID] = entryIDs
	}

	sorted := []string{}
	for _, id := range state.WorkoutIDs {
		sorted = insertSortedWorkoutID(sorted, state.WorkoutsByID, state.WorkoutsByID[id])
	}
	state.WorkoutIDs = sorted

	for _, id := range state.WorkoutIDs {
		if w, ok := state.WorkoutsByID[id]; ok && w.Active() {
			state.ActiveWorkoutID = id
			break
		}
	}

	return state
}

// DenormalizeWorkout rebuilds the nested form of one workout. Entries or
// sets whose records are missing are skipped rather than failing.
func DenormalizeWorkout(state models.SessionState, workoutID string) (models.Workout, bool) {
	workout, ok := state.WorkoutsByID[workoutID]
	if !ok {
		return models.Workout{}, false
	}

	entries := []models.WorkoutEntry{}
	for _, entryID := range state.EntryIDsByWorkoutID[workoutID] {
		entry, ok := state.EntriesByID[entryID]
		if !ok {
			continue
		}
		sets := []models.Set{}
		for _, setID := range state.SetIDsByEntryID[entryID] {
			if set, ok := state.SetsByID[setID]; ok {
				sets = append(sets, set)
			}
		}
		entries = append(entries, models.WorkoutEntry{
			ExerciseID: entry.ExerciseID,
			Sets:       sets,
			Suggested:  entry.Suggested,
		})
	}

	return models.Workout{
		ID:        workout.ID,
		ProgramID: workout.ProgramID,
		StartedAt: workout.StartedAt,
		EndedAt:   workout.EndedAt,
		Entries:   entries,
	}, true
}

// DenormalizeWorkouts rebuilds the full nested history in WorkoutIDs order.
func DenormalizeWorkouts(state models.SessionState) []models.Workout {
	workouts := make([]models.Workout, 0, len(state.WorkoutIDs))
	for _, id := range state.WorkoutIDs {
		if workout, ok := DenormalizeWorkout(state, id); ok {
			workouts = append(workouts, workout)
		}
	}
	return workouts
}

// builtEntries is the output of buildWorkoutEntries, ready to merge into
// normalized state.
type builtEntries struct {
	entryIDs        []string
	entriesByID     map[string]models.SessionEntry
	setsByID        map[string]models.Set
	setIDsByEntryID map[string][]string
}

// buildWorkoutEntries derives the entries for a new workout. For each
// exercise in the program's ordered list it clones the sets from the most
// recently completed workout of the same program (fresh ids, suggested=true)
// or, with no history, synthesizes a single default set. Relies on
// state.WorkoutIDs being in descending activity order.
func buildWorkoutEntries(workoutID string, program models.Program, exercises []models.Exercise, settings models.Settings, state models.SessionState) builtEntries {
	built := builtEntries{
		entriesByID:     map[string]models.SessionEntry{},
		setsByID:        map[string]models.Set{},
		setIDsByEntryID: map[string][]string{},
	}

	latestCompletedID := ""
	for _, id := range state.WorkoutIDs {
		workout, ok := state.WorkoutsByID[id]
		if ok && workout.ProgramID == program.ID && !workout.Active() {
			latestCompletedID = id
			break
		}
	}

	exerciseByID := make(map[string]models.Exercise, len(exercises))
	for _, ex := range exercises {
		exerciseByID[ex.ID] = ex
	}

	for _, exerciseID := range program.ExerciseIDs {
		entryID := EntryID(workoutID, exerciseID)
		built.entryIDs = append(built.entryIDs, entryID)

		var sets []models.Set
		if latestCompletedID != "" {
			previousEntryID := EntryID(latestCompletedID, exerciseID)
			for _, setID := range state.SetIDsByEntryID[previousEntryID] {
				set, ok := state.SetsByID[setID]
				if !ok {
					continue
				}
				set.ID = models.NewID()
				set.Completed = false
				sets = append(sets, set)
			}
		}

		suggested := len(sets) > 0
		if !suggested {
			mode := models.ModeTotal
			if ex, ok := exerciseByID[exerciseID]; ok {
				mode = ex.DefaultInputMode
			}
			sets = []models.Set{DefaultSet(mode, settings)}
		}

		built.entriesByID[entryID] = models.SessionEntry{
			ID:         entryID,
			WorkoutID:  workoutID,
			ExerciseID: exerciseID,
			Suggested:  suggested,
		}
		setIDs := make([]string, 0, len(sets))
		for _, set := range sets {
			setIDs = append(setIDs, set.ID)
			built.setsByID[set.ID] = set
		}
		built.setIDsByEntryID[entryID] = setIDs
	}

	return built
}

// cloneState deep-copies normalized state so snapshots handed to the
// persistence bridge cannot race with later mutations.
func cloneState(state models.SessionState) models.SessionState {
	out := models.SessionState{
		ActiveWorkoutID:     state.ActiveWorkoutID,
		WorkoutsByID:        make(map[string]models.SessionWorkout, len(state.WorkoutsByID)),
		EntriesByID:         make(map[string]models.SessionEntry, len(state.EntriesByID)),
		SetsByID:            make(map[string]models.Set, len(state.SetsByID)),
		EntryIDsByWorkoutID: make(map[string][]string, len(state.EntryIDsByWorkoutID)),
		SetIDsByEntryID:     make(map[string][]string, len(state.SetIDsByEntryID)),
		WorkoutIDs:          append([]string{}, state.WorkoutIDs...),
	}
	for id, w := range state.WorkoutsByID {
		out.WorkoutsByID[id] = w
	}
	for id, e := range state.EntriesByID {
		out.EntriesByID[id] = e
	}
	for id, s := range state.SetsByID {
		out.SetsByID[id] = s
	}
	for id, ids := range state.EntryIDsByWorkoutID {
		out.EntryIDsByWorkoutID[id] = append([]string{}, ids...)
	}
	for id, ids := range state.SetIDsByEntryID {
		out.SetIDsByEntryID[id] = append([]string{}, ids...)
	}
	return out
}
