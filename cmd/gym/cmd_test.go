// ABOUTME: Tests for CLI helper functions and command execution.
// ABOUTME: Covers lookup helpers, restore tokens, and command flows.
package main

import (
	"strings"
	"testing"

	"github.com/harperreed/gym/internal/app"
	"github.com/harperreed/gym/internal/config"
	"github.com/harperreed/gym/internal/models"
)

// setupCLIApp wires the package-level app to an in-memory backend.
func setupCLIApp(t *testing.T) {
	t.Helper()

	gymApp = app.New(&config.Config{Backend: "memory"}, app.Options{})
	gymApp.Hydrate()
	t.Cleanup(func() {
		gymApp.Close()
		gymApp = nil
	})
}

func TestShortID(t *testing.T) {
	if got := shortID("1234567890abcdef"); got != "12345678" {
		t.Errorf("shortID() = %q, want %q", got, "12345678")
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID() = %q, want %q", got, "abc")
	}
}

func TestFindProgram(t *testing.T) {
	setupCLIApp(t)

	p, err := findProgram("Strength A")
	if err != nil {
		t.Fatalf("findProgram by name failed: %v", err)
	}
	if p.Name != "Strength A" {
		t.Errorf("got program %q", p.Name)
	}

	byPrefix, err := findProgram(p.ID[:8])
	if err != nil {
		t.Fatalf("findProgram by prefix failed: %v", err)
	}
	if byPrefix.ID != p.ID {
		t.Error("prefix lookup returned different program")
	}

	if _, err := findProgram("nope"); err == nil {
		t.Error("expected error for unknown program")
	}
}

func TestFindExerciseCaseInsensitive(t *testing.T) {
	setupCLIApp(t)

	e, err := findExercise("back squat")
	if err != nil {
		t.Fatalf("findExercise failed: %v", err)
	}
	if e.Name != "Back Squat" {
		t.Errorf("got exercise %q", e.Name)
	}
}

func TestFormatWeight(t *testing.T) {
	setupCLIApp(t)

	if got := formatWeight(100); got != "100.0 kg" {
		t.Errorf("formatWeight(100) = %q, want %q", got, "100.0 kg")
	}

	units := models.UnitsLb
	gymApp.Settings.ReplaceSettings(models.Settings{UnitsPreference: units, DefaultBarWeight: 20})
	got := formatWeight(100)
	if !strings.HasSuffix(got, " lb") {
		t.Errorf("formatWeight(100) = %q, want lb suffix", got)
	}
}

func TestRestoreTokenRoundTrip(t *testing.T) {
	payload := models.UndoDeleteSet{
		WorkoutID:  "w1",
		ExerciseID: "e1",
		Set:        models.Set{ID: "s1", WeightKg: 100, Reps: 5, Mode: models.ModeTotal},
		Index:      2,
	}

	token, err := encodeRestoreToken(payload)
	if err != nil {
		t.Fatalf("encodeRestoreToken failed: %v", err)
	}

	decoded, err := decodeRestoreToken(token)
	if err != nil {
		t.Fatalf("decodeRestoreToken failed: %v", err)
	}
	if decoded != payload {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, payload)
	}
}

func TestDecodeRestoreTokenInvalid(t *testing.T) {
	if _, err := decodeRestoreToken("!!!not base64"); err == nil {
		t.Error("expected error for invalid base64")
	}
	if _, err := decodeRestoreToken("e30"); err == nil { // "{}"
		t.Error("expected error for token without a set")
	}
}

func TestFormatFromExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"backup.json", "json"},
		{"backup.yaml", "yaml"},
		{"backup.yml", "yaml"},
		{"backup", "json"},
	}
	for _, tt := range tests {
		if got := formatFromExtension(tt.path); got != tt.want {
			t.Errorf("formatFromExtension(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestParseExerciseType(t *testing.T) {
	if got := parseExerciseType("barbell"); got != models.ExerciseBarbell {
		t.Errorf("parseExerciseType(barbell) = %q", got)
	}
	if got := parseExerciseType("MACHINE"); got != models.ExerciseMachine {
		t.Errorf("parseExerciseType(MACHINE) = %q", got)
	}
	if got := parseExerciseType("kettlebell"); models.ValidExerciseType(got) {
		t.Errorf("parseExerciseType(kettlebell) should not be valid, got %q", got)
	}
}

func TestStartFinishFlow(t *testing.T) {
	setupCLIApp(t)

	if err := startCmd.RunE(startCmd, []string{"Strength A"}); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if gymApp.Session.ActiveWorkoutID() == "" {
		t.Fatal("expected active workout after start")
	}

	if err := activeCmd.RunE(activeCmd, nil); err != nil {
		t.Errorf("active failed: %v", err)
	}

	if err := finishCmd.RunE(finishCmd, nil); err != nil {
		t.Fatalf("finish failed: %v", err)
	}
	if gymApp.Session.ActiveWorkoutID() != "" {
		t.Error("workout still active after finish")
	}

	if err := finishCmd.RunE(finishCmd, nil); err == nil {
		t.Error("expected error finishing with no active workout")
	}
}

func TestStartUnknownProgram(t *testing.T) {
	setupCLIApp(t)

	if err := startCmd.RunE(startCmd, []string{"No Such Program"}); err == nil {
		t.Error("expected error for unknown program")
	}
}

func TestActiveWithoutWorkout(t *testing.T) {
	setupCLIApp(t)

	if err := activeCmd.RunE(activeCmd, nil); err == nil {
		t.Error("expected error with no active workout")
	}
}

func TestProgramCreateRenameDelete(t *testing.T) {
	setupCLIApp(t)

	if err := programCreateCmd.RunE(programCreateCmd, []string{"Push Day"}); err != nil {
		t.Fatalf("program create failed: %v", err)
	}
	if _, err := findProgram("Push Day"); err != nil {
		t.Fatal("created program not found")
	}

	if err := programRenameCmd.RunE(programRenameCmd, []string{"Push Day", "Pull Day"}); err != nil {
		t.Fatalf("program rename failed: %v", err)
	}
	if _, err := findProgram("Pull Day"); err != nil {
		t.Fatal("renamed program not found")
	}

	if err := programDeleteCmd.RunE(programDeleteCmd, []string{"Pull Day"}); err != nil {
		t.Fatalf("program delete failed: %v", err)
	}
	if _, err := findProgram("Pull Day"); err == nil {
		t.Error("deleted program still found")
	}
}

func TestProgramMembership(t *testing.T) {
	setupCLIApp(t)

	if err := programAddCmd.RunE(programAddCmd, []string{"Strength A", "Deadlift"}); err != nil {
		t.Fatalf("program add failed: %v", err)
	}
	p, _ := findProgram("Strength A")
	if len(p.ExerciseIDs) != 4 {
		t.Errorf("expected 4 exercises, got %d", len(p.ExerciseIDs))
	}

	if err := programRemoveCmd.RunE(programRemoveCmd, []string{"Strength A", "Deadlift"}); err != nil {
		t.Fatalf("program remove failed: %v", err)
	}
	p, _ = findProgram("Strength A")
	if len(p.ExerciseIDs) != 3 {
		t.Errorf("expected 3 exercises, got %d", len(p.ExerciseIDs))
	}

	if err := programMoveCmd.RunE(programMoveCmd, []string{"Strength A", "Bench Press", "sideways"}); err == nil {
		t.Error("expected error for bad direction")
	}
	if err := programMoveCmd.RunE(programMoveCmd, []string{"Strength A", "Bench Press", "up"}); err != nil {
		t.Fatalf("program move failed: %v", err)
	}
	p, _ = findProgram("Strength A")
	ex, _ := findExercise("Bench Press")
	if p.ExerciseIDs[0] != ex.ID {
		t.Error("Bench Press should be first after move up")
	}
}

func TestResetRequiresForce(t *testing.T) {
	setupCLIApp(t)

	resetForce = false
	if err := resetCmd.RunE(resetCmd, nil); err == nil {
		t.Error("expected error without --force")
	}

	gymApp.Session.StartWorkout(gymApp.Catalog.Programs()[0].ID)
	resetForce = true
	defer func() { resetForce = false }()

	if err := resetCmd.RunE(resetCmd, nil); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if gymApp.Session.ActiveWorkoutID() != "" {
		t.Error("expected no active workout after reset")
	}
}
