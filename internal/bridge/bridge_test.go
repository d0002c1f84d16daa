// ABOUTME: Tests for the persistence bridge.
// ABOUTME: Covers coalescing, latest-state flushes, legacy drain, teardown.
package bridge

import (
	"testing"
	"time"

	"github.com/harperreed/gym/internal/catalog"
	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/outbox"
	"github.com/harperreed/gym/internal/session"
	"github.com/harperreed/gym/internal/settings"
	"github.com/harperreed/gym/internal/storage"
)

const (
	testDelay = 20 * time.Millisecond
	quiet     = 150 * time.Millisecond
)

type harness struct {
	adapter  storage.Adapter
	session  *session.Store
	catalog  *catalog.Store
	settings *settings.Store
	queue    *outbox.Queue
	bridge   *Bridge
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	adapter := storage.NewMemory()
	settingsStore := settings.NewStore()
	catalogStore := catalog.NewStore()
	queue := outbox.NewQueue()

	sessionStore := session.NewStore(session.Deps{
		GetSettings: settingsStore.Settings,
		GetCatalog: func() session.Catalog {
			return session.Catalog{Programs: catalogStore.Programs(), Exercises: catalogStore.Exercises()}
		},
		Emit: func(eventType outbox.EventType, payload map[string]any) {
			queue.Enqueue(eventType, payload)
		},
	})

	settingsStore.Hydrate(adapter)
	catalogStore.Hydrate(adapter)
	sessionStore.Hydrate(adapter)
	queue.Hydrate(adapter)

	b := New(Deps{
		Adapter:  adapter,
		Session:  sessionStore,
		Catalog:  catalogStore,
		Settings: settingsStore,
		Outbox:   queue,
		Delays:   Delays{Session: testDelay, Settings: testDelay, Catalog: testDelay, Outbox: testDelay},
	})
	t.Cleanup(b.Close)

	return &harness{
		adapter:  adapter,
		session:  sessionStore,
		catalog:  catalogStore,
		settings: settingsStore,
		queue:    queue,
		bridge:   b,
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(quiet)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !cond() {
		t.Fatal("condition not met before deadline")
	}
}

func TestSessionFlushCoalescesToLatestState(t *testing.T) {
	h := newHarness(t)
	programID := h.catalog.Programs()[0].ID

	// A burst of mutations inside the quiet period.
	workoutID := h.session.StartWorkout(programID)
	exerciseID := h.session.Snapshot().EntriesByID[h.session.Snapshot().EntryIDsByWorkoutID[workoutID][0]].ExerciseID
	for i := 0; i < 5; i++ {
		if _, ok := h.session.AddSet(workoutID, exerciseID); !ok {
			t.Fatal("AddSet failed")
		}
	}

	waitFor(t, func() bool {
		record, ok := h.adapter.GetSessionSnapshot()
		if !ok {
			return false
		}
		entryID := session.EntryID(workoutID, exerciseID)
		// Latest state: the default set plus five added ones.
		return len(record.Value.SetIDsByEntryID[entryID]) == 6
	})

	record, _ := h.adapter.GetSessionSnapshot()
	if record.SchemaVersion != session.SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", record.SchemaVersion, session.SchemaVersion)
	}
	if record.UpdatedAt == 0 {
		t.Error("expected UpdatedAt stamp")
	}
}

func TestSettingsAndCatalogFlush(t *testing.T) {
	h := newHarness(t)

	units := models.UnitsLb
	h.settings.UpdateSettings(settings.Patch{UnitsPreference: &units})
	programID := h.catalog.CreateProgram()

	waitFor(t, func() bool {
		record, ok := h.adapter.GetSettings()
		return ok && record.Value.UnitsPreference == models.UnitsLb
	})
	waitFor(t, func() bool {
		for _, p := range h.adapter.GetPrograms() {
			if p.ID == programID {
				return true
			}
		}
		return false
	})

	meta, ok := h.adapter.GetMeta("catalog")
	if !ok || meta.Value.SchemaVersion != catalog.SchemaVersion {
		t.Errorf("catalog meta = %+v ok=%v", meta, ok)
	}
}

func TestOutboxFlushThroughBridge(t *testing.T) {
	h := newHarness(t)
	programID := h.catalog.Programs()[0].ID

	h.session.StartWorkout(programID)

	waitFor(t, func() bool {
		_, ok := h.adapter.GetItem("outbox")
		return ok
	})
	if got := len(h.queue.Pending()); got != 1 {
		t.Errorf("pending events = %d, want 1", got)
	}
}

func TestLegacyDrainOnClearSession(t *testing.T) {
	h := newHarness(t)
	h.adapter.PutLegacyWorkout(models.Workout{ID: "w0", ProgramID: "p0", StartedAt: 1, Entries: []models.WorkoutEntry{}})

	h.session.ClearSession()

	waitFor(t, func() bool {
		return len(h.adapter.GetLegacyWorkouts()) == 0
	})
}

func TestCloseCancelsPendingWrites(t *testing.T) {
	adapter := storage.NewMemory()
	settingsStore := settings.NewStore()
	catalogStore := catalog.NewStore()
	queue := outbox.NewQueue()
	sessionStore := session.NewStore(session.Deps{
		GetSettings: settingsStore.Settings,
		GetCatalog:  func() session.Catalog { return session.Catalog{} },
	})
	settingsStore.Hydrate(adapter)
	catalogStore.Hydrate(adapter)
	sessionStore.Hydrate(adapter)
	queue.Hydrate(adapter)

	b := New(Deps{
		Adapter:  adapter,
		Session:  sessionStore,
		Catalog:  catalogStore,
		Settings: settingsStore,
		Outbox:   queue,
		Delays:   Delays{Session: time.Hour, Settings: time.Hour, Catalog: time.Hour, Outbox: time.Hour},
	})

	sessionStore.ClearSession() // schedules a session write an hour out
	b.Close()

	time.Sleep(30 * time.Millisecond)
	if _, ok := adapter.GetSessionSnapshot(); ok {
		t.Error("expected pending write to be cancelled by Close")
	}
}

func TestFlushWritesImmediately(t *testing.T) {
	h := newHarness(t)
	programID := h.catalog.Programs()[0].ID
	h.session.StartWorkout(programID)

	h.bridge.Flush()

	if _, ok := h.adapter.GetSessionSnapshot(); !ok {
		t.Error("expected immediate session write")
	}
	if _, ok := h.adapter.GetSettings(); !ok {
		t.Error("expected immediate settings write")
	}
	if got := len(h.adapter.GetPrograms()); got == 0 {
		t.Error("expected immediate catalog write")
	}
}
