// ABOUTME: Integration tests for the full data layer.
// ABOUTME: Boot, mutate, flush, reopen, and hydrate against real backends.
package test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/gym/internal/app"
	"github.com/harperreed/gym/internal/bridge"
	"github.com/harperreed/gym/internal/config"
)

var testDelays = bridge.Delays{
	Session:  10 * time.Millisecond,
	Settings: 10 * time.Millisecond,
	Catalog:  10 * time.Millisecond,
	Outbox:   10 * time.Millisecond,
}

func openApp(t *testing.T, cfg *config.Config) *app.App {
	t.Helper()
	a := app.New(cfg, app.Options{Delays: testDelays})
	a.Hydrate()
	return a
}

func testLifecycle(t *testing.T, cfg *config.Config) {
	// First boot: seeded catalog, log a workout, close (flushes).
	a := openApp(t, cfg)

	programs := a.Catalog.Programs()
	if len(programs) != 2 {
		t.Fatalf("expected seeded catalog, got %d programs", len(programs))
	}
	program := programs[0]

	workoutID := a.Session.StartWorkout(program.ID)
	if workoutID == "" {
		t.Fatal("failed to start workout")
	}

	exerciseID := program.ExerciseIDs[0]
	setID, ok := a.Session.AddSet(workoutID, exerciseID)
	if !ok {
		t.Fatal("failed to add set")
	}
	if !a.Session.FinishWorkout(workoutID) {
		t.Fatal("failed to finish workout")
	}

	a.Close()

	// Second boot: everything hydrates back.
	b := openApp(t, cfg)
	defer b.Close()

	if got := len(b.Catalog.Programs()); got != 2 {
		t.Errorf("expected 2 programs after reopen, got %d", got)
	}

	workouts := b.Session.Workouts()
	if len(workouts) != 1 {
		t.Fatalf("expected 1 workout after reopen, got %d", len(workouts))
	}
	w := workouts[0]
	if w.ID != workoutID || w.Active() {
		t.Errorf("workout did not survive reopen: %+v", w)
	}

	var foundSet bool
	for _, entry := range w.Entries {
		for _, set := range entry.Sets {
			if set.ID == setID {
				foundSet = true
			}
		}
	}
	if !foundSet {
		t.Error("added set did not survive reopen")
	}

	events := b.Outbox.Pending()
	if len(events) != 3 {
		t.Fatalf("expected 3 pending events after reopen, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].CreatedAt < events[i-1].CreatedAt {
			t.Error("outbox events out of order after reopen")
		}
	}

	// Starting the same program again suggests sets from the finished
	// workout.
	next := b.Session.StartWorkout(program.ID)
	nextWorkout, _ := b.Session.Workout(next)
	if !nextWorkout.Entries[0].Suggested {
		t.Error("expected suggested entry from last completed workout")
	}
}

func TestLifecycleBadger(t *testing.T) {
	cfg := &config.Config{Backend: "badger", DataDir: t.TempDir()}
	testLifecycle(t, cfg)
}

func TestLifecycleSQLite(t *testing.T) {
	cfg := &config.Config{Backend: "sqlite", DataDir: t.TempDir()}
	testLifecycle(t, cfg)
}

func TestImportSurvivesReopen(t *testing.T) {
	cfg := &config.Config{Backend: "sqlite", DataDir: t.TempDir()}

	a := openApp(t, cfg)
	workoutID := a.Session.StartWorkout(a.Catalog.Programs()[0].ID)
	a.Session.FinishWorkout(workoutID)

	data, err := app.EncodeExport(a.ExportData(), app.FormatJSON)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	a.Close()

	otherDir := t.TempDir()
	other := openApp(t, &config.Config{Backend: "sqlite", DataDir: otherDir})
	if err := other.ImportData(data, app.FormatJSON); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	other.Close()

	reopened := openApp(t, &config.Config{Backend: "sqlite", DataDir: otherDir})
	defer reopened.Close()

	workouts := reopened.Session.Workouts()
	if len(workouts) != 1 || workouts[0].ID != workoutID {
		t.Errorf("imported workout did not survive reopen: %+v", workouts)
	}
}

func TestDatabaseFileCreated(t *testing.T) {
	dir := t.TempDir()
	a := openApp(t, &config.Config{Backend: "sqlite", DataDir: dir})
	a.Close()

	matches, err := filepath.Glob(filepath.Join(dir, "gym.db"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(matches) != 1 {
		t.Error("expected gym.db to be created")
	}
}
