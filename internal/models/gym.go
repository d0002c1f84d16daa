// ABOUTME: Core domain entities for the workout log.
// ABOUTME: Programs, exercises, workouts, entries, sets, and settings.
package models

import "github.com/google/uuid"

// ExerciseType tags an exercise with its equipment category.
type ExerciseType string

const (
	ExerciseBarbell    ExerciseType = "Barbell"
	ExerciseDumbbell   ExerciseType = "Dumbbell"
	ExerciseMachine    ExerciseType = "Machine"
	ExerciseBodyweight ExerciseType = "Bodyweight"
	ExerciseCable      ExerciseType = "Cable"
)

// ValidExerciseType reports whether t is one of the known equipment categories.
func ValidExerciseType(t ExerciseType) bool {
	switch t {
	case ExerciseBarbell, ExerciseDumbbell, ExerciseMachine, ExerciseBodyweight, ExerciseCable:
		return true
	}
	return false
}

// InputMode records how the user entered a weight: as a total, or as the
// per-side plate weight on a bar. The mode is kept on each set so the value
// can be redisplayed the way it was entered.
type InputMode string

const (
	ModeTotal  InputMode = "total"
	ModePlates InputMode = "plates"
)

// Exercise is a catalog entry. Identity is immutable; display fields are not.
type Exercise struct {
	ID               string       `json:"id" yaml:"id"`
	Name             string       `json:"name" yaml:"name"`
	Type             ExerciseType `json:"type" yaml:"type"`
	DefaultInputMode InputMode    `json:"defaultInputMode" yaml:"defaultInputMode"`
}

// Program is an ordered list of exercises. The ordering of ExerciseIDs is
// significant and owned by the program.
type Program struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Note        string   `json:"note,omitempty" yaml:"note,omitempty"`
	ExerciseIDs []string `json:"exerciseIds" yaml:"exerciseIds"`
}

// Set is a single logged set. WeightKg is always the total weight in the
// canonical unit regardless of display preference or input mode.
type Set struct {
	ID        string    `json:"id" yaml:"id"`
	WeightKg  float64   `json:"weightKg" yaml:"weightKg"`
	Reps      int       `json:"reps" yaml:"reps"`
	Completed bool      `json:"completed,omitempty" yaml:"completed,omitempty"`
	Mode      InputMode `json:"mode" yaml:"mode"`
}

// WorkoutEntry groups the sets performed for one exercise within a workout.
// Suggested is true when the sets were seeded from a prior completed workout
// rather than created fresh.
type WorkoutEntry struct {
	ExerciseID string `json:"exerciseId" yaml:"exerciseId"`
	Sets       []Set  `json:"sets" yaml:"sets"`
	Suggested  bool   `json:"suggested" yaml:"suggested"`
}

// Workout is the nested interchange form of a session. Timestamps are Unix
// milliseconds; EndedAt of zero means the workout is still active.
type Workout struct {
	ID        string         `json:"id" yaml:"id"`
	ProgramID string         `json:"programId" yaml:"programId"`
	StartedAt int64          `json:"startedAt" yaml:"startedAt"`
	EndedAt   int64          `json:"endedAt,omitempty" yaml:"endedAt,omitempty"`
	Entries   []WorkoutEntry `json:"entries" yaml:"entries"`
}

// Active reports whether the workout has not been finished yet.
func (w Workout) Active() bool { return w.EndedAt == 0 }

// SortKey is the activity timestamp used for most-recent-first ordering.
func (w Workout) SortKey() int64 {
	if w.EndedAt != 0 {
		return w.EndedAt
	}
	return w.StartedAt
}

// Units is the display unit preference.
type Units string

const (
	UnitsKg Units = "kg"
	UnitsLb Units = "lb"
)

// Settings are process-wide user preferences. Weights are stored in kg
// regardless of UnitsPreference.
type Settings struct {
	UnitsPreference  Units   `json:"unitsPreference" yaml:"unitsPreference"`
	DefaultBarWeight float64 `json:"defaultBarWeight" yaml:"defaultBarWeight"`
	ReducedMotion    bool    `json:"reducedMotion,omitempty" yaml:"reducedMotion,omitempty"`
}

// Export is the sole interchange format for backup and restore. Workouts are
// carried denormalized.
type Export struct {
	Programs  []Program  `json:"programs" yaml:"programs"`
	Exercises []Exercise `json:"exercises" yaml:"exercises"`
	Workouts  []Workout  `json:"workouts" yaml:"workouts"`
	Settings  Settings   `json:"settings" yaml:"settings"`
}

// NewID returns a new opaque entity id.
func NewID() string {
	return uuid.NewString()
}
