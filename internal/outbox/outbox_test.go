// ABOUTME: Tests for the outbox queue.
// ABOUTME: Covers enqueue stamping, hydration merge, and persistence shape.
package outbox

import (
	"encoding/json"
	"testing"

	"github.com/harperreed/gym/internal/storage"
)

func tickingQueue(start int64) *Queue {
	q := NewQueue()
	clock := start
	q.SetNow(func() int64 { clock += 10; return clock })
	return q
}

func TestEnqueueStampsEvents(t *testing.T) {
	q := tickingQueue(1000)

	a := q.Enqueue(EventWorkoutStarted, map[string]any{"workoutId": "w1"})
	b := q.Enqueue(EventSetAdded, map[string]any{"workoutId": "w1", "exerciseId": "e1"})

	if a.ID == "" || a.ID == b.ID {
		t.Errorf("expected distinct ids, got %q and %q", a.ID, b.ID)
	}
	if a.CreatedAt >= b.CreatedAt {
		t.Errorf("expected increasing timestamps: %d then %d", a.CreatedAt, b.CreatedAt)
	}

	pending := q.Pending()
	if len(pending) != 2 || pending[0].Type != EventWorkoutStarted {
		t.Errorf("pending = %+v", pending)
	}
}

func TestMarkSyncedAndClear(t *testing.T) {
	q := tickingQueue(1000)
	a := q.Enqueue(EventSetUpdated, map[string]any{"setId": "s1"})
	q.Enqueue(EventSetDeleted, map[string]any{"setId": "s2"})

	q.MarkSynced(a.ID)
	pending := q.Pending()
	if len(pending) != 1 || pending[0].Type != EventSetDeleted {
		t.Errorf("pending after MarkSynced = %+v", pending)
	}

	q.Clear()
	if got := q.Pending(); len(got) != 0 {
		t.Errorf("pending after Clear = %+v", got)
	}
}

func TestHydrateMergesEarlyEvents(t *testing.T) {
	adapter := storage.NewMemory()

	// Persisted backlog from a previous run.
	persisted := tickingQueue(1000)
	stored := persisted.Enqueue(EventWorkoutStarted, map[string]any{"workoutId": "w1"})
	persisted.Persist(adapter)

	// Fresh queue receives an event before hydration completes (bootstrap race).
	q := tickingQueue(5000)
	early := q.Enqueue(EventSetAdded, map[string]any{"workoutId": "w1", "exerciseId": "e1"})
	if q.HasHydrated() {
		t.Fatal("queue must not report hydrated before Hydrate")
	}

	q.Hydrate(adapter)

	if !q.HasHydrated() {
		t.Fatal("expected hydrated")
	}
	pending := q.Pending()
	if len(pending) != 2 {
		t.Fatalf("pending = %+v, want stored+early", pending)
	}
	if pending[0].ID != stored.ID || pending[1].ID != early.ID {
		t.Errorf("merge order = [%s %s], want stored first by createdAt", pending[0].ID, pending[1].ID)
	}

	// Re-hydrating another queue over the same adapter must not duplicate.
	q2 := NewQueue()
	q2.Hydrate(adapter)
	q2.Hydrate(adapter)
	if got := len(q2.Pending()); got != 2 {
		t.Errorf("rehydrated pending = %d, want 2", got)
	}
}

func TestHydrateDeduplicatesById(t *testing.T) {
	adapter := storage.NewMemory()
	q := tickingQueue(1000)
	event := q.Enqueue(EventSetRestored, map[string]any{"setId": "s1"})
	q.Persist(adapter)

	// The same event is both persisted and still in memory.
	q.Hydrate(adapter)
	if got := len(q.Pending()); got != 1 {
		t.Errorf("pending = %d, want 1 (dedupe by id)", got)
	}
	if q.Pending()[0].ID != event.ID {
		t.Error("expected the original event to survive")
	}
}

func TestPersistShapeAndEmptyRemoval(t *testing.T) {
	adapter := storage.NewMemory()
	q := tickingQueue(1000)
	q.Enqueue(EventWorkoutFinished, map[string]any{"workoutId": "w1"})
	q.Persist(adapter)

	data, ok := adapter.GetItem("outbox")
	if !ok {
		t.Fatal("expected persisted outbox item")
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.SchemaVersion != SchemaVersion || len(rec.Value) != 1 || rec.UpdatedAt == 0 {
		t.Errorf("record = %+v", rec)
	}
	if rec.Value[0].Payload["workoutId"] != "w1" {
		t.Errorf("payload = %+v", rec.Value[0].Payload)
	}

	q.Clear()
	q.Persist(adapter)
	if _, ok := adapter.GetItem("outbox"); ok {
		t.Error("expected empty queue to remove the stored record")
	}
}

func TestHydrateRewritesOldVersions(t *testing.T) {
	adapter := storage.NewMemory()
	old, _ := json.Marshal(record{
		SchemaVersion: 0,
		Value:         []Event{{ID: "ev1", Type: EventSetUpdated, CreatedAt: 5}},
	})
	adapter.SetItem("outbox", old)

	q := NewQueue()
	q.Hydrate(adapter)

	data, ok := adapter.GetItem("outbox")
	if !ok {
		t.Fatal("expected rewritten record")
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.SchemaVersion != SchemaVersion {
		t.Errorf("SchemaVersion = %d, want %d", rec.SchemaVersion, SchemaVersion)
	}
	if len(rec.Value) != 1 || rec.Value[0].ID != "ev1" {
		t.Errorf("rewritten events = %+v", rec.Value)
	}
}
