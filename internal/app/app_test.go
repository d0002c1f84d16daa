// ABOUTME: Tests for the app wiring and cross-store actions.
// ABOUTME: Covers export/import round trips, reset, and the storage fallback.
package app

import (
	"reflect"
	"strings"
	"testing"

	"github.com/harperreed/gym/internal/config"
	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/outbox"
	"github.com/harperreed/gym/internal/settings"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a := New(&config.Config{Backend: "memory"}, Options{})
	t.Cleanup(a.Close)
	a.Hydrate()
	return a
}

func TestHydrateSeedsCatalog(t *testing.T) {
	a := newTestApp(t)

	if len(a.Catalog.Exercises()) == 0 {
		t.Fatal("expected seeded exercises after hydrate")
	}
	if len(a.Catalog.Programs()) != 2 {
		t.Errorf("expected 2 seeded programs, got %d", len(a.Catalog.Programs()))
	}
	if got := a.Settings.Settings(); got.DefaultBarWeight != 20 {
		t.Errorf("DefaultBarWeight = %v, want 20", got.DefaultBarWeight)
	}
}

func TestNewFallsBackToMemoryOnBadBackend(t *testing.T) {
	a := New(&config.Config{Backend: "bogus"}, Options{})
	defer a.Close()
	a.Hydrate()

	programID := a.Catalog.Programs()[0].ID
	if id := a.Session.StartWorkout(programID); id == "" {
		t.Error("expected workout to start against in-memory fallback")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestApp(t)

	programID := src.Catalog.Programs()[0].ID
	workoutID := src.Session.StartWorkout(programID)
	src.Session.FinishWorkout(workoutID)

	for _, format := range []Format{FormatJSON, FormatYAML} {
		data, err := EncodeExport(src.ExportData(), format)
		if err != nil {
			t.Fatalf("EncodeExport(%s) failed: %v", format, err)
		}

		dst := newTestApp(t)
		if err := dst.ImportData(data, format); err != nil {
			t.Fatalf("ImportData(%s) failed: %v", format, err)
		}

		if !reflect.DeepEqual(dst.ExportData(), src.ExportData()) {
			t.Errorf("%s: exported data differs after import round trip", format)
		}
		if !reflect.DeepEqual(dst.Session.Snapshot(), src.Session.Snapshot()) {
			t.Errorf("%s: session state differs after import round trip", format)
		}
	}
}

func TestImportMalformedJSON(t *testing.T) {
	a := newTestApp(t)
	before := a.ExportData()

	if err := a.ImportData([]byte("{not json"), FormatJSON); err == nil {
		t.Fatal("expected error for malformed import")
	}
	if err := a.ImportData([]byte(`{"programs": [], "bogusField": 1}`), FormatJSON); err == nil {
		t.Fatal("expected error for unknown field")
	}

	// Nothing may change on a failed import.
	if !reflect.DeepEqual(a.ExportData(), before) {
		t.Error("state changed after failed import")
	}
}

func TestImportMalformedYAML(t *testing.T) {
	a := newTestApp(t)

	if err := a.ImportData([]byte("programs: [\n"), FormatYAML); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
	if err := a.ImportData([]byte("nonsense: true\n"), FormatYAML); err == nil {
		t.Fatal("expected error for unknown yaml field")
	}
}

func TestImportErrorMentionsImport(t *testing.T) {
	a := newTestApp(t)

	err := a.ImportData([]byte("?"), FormatJSON)
	if err == nil || !strings.Contains(err.Error(), "import") {
		t.Errorf("error should be attributable to import, got %v", err)
	}
}

func TestResetAll(t *testing.T) {
	a := newTestApp(t)

	programID := a.Catalog.Programs()[0].ID
	a.Session.StartWorkout(programID)
	bar := 25.0
	a.Settings.UpdateSettings(settings.Patch{DefaultBarWeight: &bar})
	a.Catalog.CreateProgram()

	a.ResetAll()

	if a.Session.ActiveWorkoutID() != "" {
		t.Error("expected no active workout after reset")
	}
	if len(a.Session.Workouts()) != 0 {
		t.Error("expected empty history after reset")
	}
	if len(a.Catalog.Programs()) != 2 {
		t.Errorf("expected reseeded programs, got %d", len(a.Catalog.Programs()))
	}
	if got := a.Settings.Settings(); !reflect.DeepEqual(got, models.DefaultSettings()) {
		t.Errorf("settings after reset = %+v, want defaults", got)
	}
	if len(a.Outbox.Pending()) != 0 {
		t.Errorf("expected empty outbox after reset, got %d events", len(a.Outbox.Pending()))
	}
}

func TestFinishActiveWorkout(t *testing.T) {
	a := newTestApp(t)

	if _, ok := a.FinishActiveWorkout(); ok {
		t.Error("expected no-op with no active workout")
	}

	programID := a.Catalog.Programs()[0].ID
	workoutID := a.Session.StartWorkout(programID)

	finished, ok := a.FinishActiveWorkout()
	if !ok || finished != workoutID {
		t.Fatalf("FinishActiveWorkout() = (%q, %v), want (%q, true)", finished, ok, workoutID)
	}
	if a.Session.ActiveWorkoutID() != "" {
		t.Error("workout still active after finish")
	}
}

func TestUndoDeleteSet(t *testing.T) {
	a := newTestApp(t)

	programID := a.Catalog.Programs()[0].ID
	workoutID := a.Session.StartWorkout(programID)
	workout, _ := a.Session.Workout(workoutID)
	exerciseID := workout.Entries[0].ExerciseID
	setID := workout.Entries[0].Sets[0].ID

	payload, ok := a.Session.DeleteSet(workoutID, exerciseID, setID)
	if !ok {
		t.Fatal("DeleteSet failed")
	}
	a.UndoDeleteSet(payload)

	restored, _ := a.Session.Workout(workoutID)
	if restored.Entries[0].Sets[0].ID != setID {
		t.Error("set not restored at original position")
	}
}

func TestMutationsFeedOutbox(t *testing.T) {
	a := newTestApp(t)

	programID := a.Catalog.Programs()[0].ID
	workoutID := a.Session.StartWorkout(programID)
	a.Session.FinishWorkout(workoutID)

	events := a.Outbox.Pending()
	if len(events) != 2 {
		t.Fatalf("expected 2 pending events, got %d", len(events))
	}
	if events[0].Type != outbox.EventWorkoutStarted || events[1].Type != outbox.EventWorkoutFinished {
		t.Errorf("unexpected event types: %s, %s", events[0].Type, events[1].Type)
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in   string
		want Format
		ok   bool
	}{
		{"json", FormatJSON, true},
		{"", FormatJSON, true},
		{"yaml", FormatYAML, true},
		{"yml", FormatYAML, true},
		{"xml", "", false},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseFormat(%q) = (%v, %v), want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseFormat(%q) should fail", tc.in)
		}
	}
}
