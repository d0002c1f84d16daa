// ABOUTME: Built-in starter catalog and default settings.
// ABOUTME: Seeded on first run and after a full reset.
package models

// DefaultSettings returns the settings used before the user changes anything.
// 20kg is a standard olympic bar.
func DefaultSettings() Settings {
	return Settings{
		UnitsPreference:  UnitsKg,
		DefaultBarWeight: 20,
	}
}

// SeedExercises returns the starter exercise catalog with fresh ids.
func SeedExercises() []Exercise {
	return []Exercise{
		{ID: NewID(), Name: "Back Squat", Type: ExerciseBarbell, DefaultInputMode: ModePlates},
		{ID: NewID(), Name: "Bench Press", Type: ExerciseBarbell, DefaultInputMode: ModePlates},
		{ID: NewID(), Name: "Deadlift", Type: ExerciseBarbell, DefaultInputMode: ModePlates},
		{ID: NewID(), Name: "Lat Pulldown", Type: ExerciseMachine, DefaultInputMode: ModeTotal},
		{ID: NewID(), Name: "Incline Dumbbell Press", Type: ExerciseDumbbell, DefaultInputMode: ModeTotal},
		{ID: NewID(), Name: "Bulgarian Split Squat", Type: ExerciseBodyweight, DefaultInputMode: ModeTotal},
	}
}

// SeedPrograms returns the starter programs over the seeded exercise ids,
// in the order produced by SeedExercises.
func SeedPrograms(exerciseIDs []string) []Program {
	if len(exerciseIDs) < 6 {
		return nil
	}
	squat, bench, deadlift := exerciseIDs[0], exerciseIDs[1], exerciseIDs[2]
	lat, incline, split := exerciseIDs[3], exerciseIDs[4], exerciseIDs[5]
	return []Program{
		{
			ID:          NewID(),
			Name:        "Strength A",
			Note:        "Heavy compounds + back work",
			ExerciseIDs: []string{squat, bench, lat},
		},
		{
			ID:          NewID(),
			Name:        "Strength B",
			Note:        "Posterior chain focus",
			ExerciseIDs: []string{deadlift, incline, split},
		},
	}
}
