// ABOUTME: Tests for domain entity helpers.
// ABOUTME: Covers sort keys, type validation, and weight conversion.
package models

import "testing"

func TestWorkoutSortKey(t *testing.T) {
	active := Workout{StartedAt: 100}
	if !active.Active() {
		t.Error("expected workout without endedAt to be active")
	}
	if got := active.SortKey(); got != 100 {
		t.Errorf("SortKey = %d, want 100", got)
	}

	done := Workout{StartedAt: 100, EndedAt: 250}
	if done.Active() {
		t.Error("expected finished workout to not be active")
	}
	if got := done.SortKey(); got != 250 {
		t.Errorf("SortKey = %d, want 250", got)
	}
}

func TestValidExerciseType(t *testing.T) {
	for _, et := range []ExerciseType{ExerciseBarbell, ExerciseDumbbell, ExerciseMachine, ExerciseBodyweight, ExerciseCable} {
		if !ValidExerciseType(et) {
			t.Errorf("expected %s to be valid", et)
		}
	}
	if ValidExerciseType("Kettlebell") {
		t.Error("expected unknown type to be invalid")
	}
}

func TestPerSideConversion(t *testing.T) {
	if got := PerSideKg(100, 20); got != 40 {
		t.Errorf("PerSideKg(100, 20) = %f, want 40", got)
	}
	if got := PerSideKg(10, 20); got != 0 {
		t.Errorf("PerSideKg below bar weight = %f, want 0", got)
	}
	if got := TotalFromPerSideKg(40, 20); got != 100 {
		t.Errorf("TotalFromPerSideKg(40, 20) = %f, want 100", got)
	}
}

func TestSeedCatalog(t *testing.T) {
	exercises := SeedExercises()
	if len(exercises) != 6 {
		t.Fatalf("expected 6 seed exercises, got %d", len(exercises))
	}

	ids := make([]string, 0, len(exercises))
	for _, ex := range exercises {
		if ex.ID == "" {
			t.Error("expected seed exercise to have an id")
		}
		ids = append(ids, ex.ID)
	}

	programs := SeedPrograms(ids)
	if len(programs) != 2 {
		t.Fatalf("expected 2 seed programs, got %d", len(programs))
	}
	for _, p := range programs {
		if len(p.ExerciseIDs) != 3 {
			t.Errorf("program %s has %d exercises, want 3", p.Name, len(p.ExerciseIDs))
		}
	}
}

func TestNewIDUnique(t *testing.T) {
	a, b := NewID(), NewID()
	if a == "" || a == b {
		t.Errorf("expected distinct non-empty ids, got %q and %q", a, b)
	}
}
