// ABOUTME: Storage adapter contract over a partitioned key/value substrate.
// ABOUTME: Best-effort persistence; failures degrade to no-ops and empty reads.
package storage

import (
	"encoding/json"

	"github.com/harperreed/gym/internal/models"
)

// Partition names. Each holds JSON records keyed by id.
const (
	partSettings  = "settings"
	partPrograms  = "programs"
	partExercises = "exercises"
	partSession   = "session"
	partWorkouts  = "workouts" // legacy unnormalized workout list
	partMeta      = "meta"
)

// Singleton record ids within their partitions.
const (
	settingsKey = "settings"
	sessionKey  = "session"
)

// SettingsRecord is the versioned persisted form of user settings.
type SettingsRecord struct {
	ID            string          `json:"id"`
	SchemaVersion int             `json:"schemaVersion"`
	Value         models.Settings `json:"value"`
	UpdatedAt     int64           `json:"updatedAt,omitempty"`
}

// SessionRecord is the versioned persisted form of the normalized session.
type SessionRecord struct {
	ID            string              `json:"id"`
	SchemaVersion int                 `json:"schemaVersion"`
	Value         models.SessionState `json:"value"`
	UpdatedAt     int64               `json:"updatedAt,omitempty"`
}

// MetaValue carries the schema bookkeeping for a multi-record partition.
type MetaValue struct {
	SchemaVersion int   `json:"schemaVersion"`
	UpdatedAt     int64 `json:"updatedAt,omitempty"`
}

// MetaRecord is a free-form bookkeeping record.
type MetaRecord struct {
	ID    string    `json:"id"`
	Value MetaValue `json:"value"`
}

// Adapter is the persistence contract consumed by the stores and the
// persistence bridge. Every operation is best-effort: when the substrate is
// unavailable or an operation fails, reads return empty or absent values and
// writes silently do nothing. Correctness lives in memory; the adapter never
// surfaces I/O errors to callers.
type Adapter interface {
	GetSettings() (SettingsRecord, bool)
	SetSettings(record SettingsRecord)

	GetPrograms() []models.Program
	GetExercises() []models.Exercise
	PutProgram(program models.Program)
	PutExercise(exercise models.Exercise)
	DeleteProgram(id string)
	DeleteExercise(id string)
	ClearPrograms()
	ClearExercises()

	GetSessionSnapshot() (SessionRecord, bool)
	SetSessionSnapshot(record SessionRecord)
	ClearSessionSnapshot()

	GetLegacyWorkouts() []models.Workout
	PutLegacyWorkout(workout models.Workout)
	ClearLegacyWorkouts()

	GetMeta(id string) (MetaRecord, bool)
	SetMeta(record MetaRecord)

	// Generic key/value items (outbox and other free-form metadata).
	// Values are raw JSON.
	GetItem(key string) ([]byte, bool)
	SetItem(key string, value []byte)
	RemoveItem(key string)

	Close() error
}

// kv is the minimal substrate each backend implements. All methods follow
// the same best-effort contract as Adapter.
type kv interface {
	get(partition, id string) ([]byte, bool)
	getAll(partition string) [][]byte
	put(partition, id string, value []byte)
	delete(partition, id string)
	clear(partition string)
	close() error
}

// adapter lifts a kv substrate into the typed Adapter contract. Marshal and
// unmarshal failures are swallowed like substrate failures.
type adapter struct {
	kv kv
}

func newAdapter(store kv) Adapter { return &adapter{kv: store} }

func putJSON(store kv, partition, id string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	store.put(partition, id, data)
}

func getJSON[T any](store kv, partition, id string) (T, bool) {
	var out T
	data, ok := store.get(partition, id)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false
	}
	return out, true
}

func getAllJSON[T any](store kv, partition string) []T {
	var out []T
	for _, data := range store.getAll(partition) {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (a *adapter) GetSettings() (SettingsRecord, bool) {
	return getJSON[SettingsRecord](a.kv, partSettings, settingsKey)
}

func (a *adapter) SetSettings(record SettingsRecord) {
	record.ID = settingsKey
	putJSON(a.kv, partSettings, settingsKey, record)
}

func (a *adapter) GetPrograms() []models.Program {
	return getAllJSON[models.Program](a.kv, partPrograms)
}

func (a *adapter) GetExercises() []models.Exercise {
	return getAllJSON[models.Exercise](a.kv, partExercises)
}

func (a *adapter) PutProgram(program models.Program) {
	putJSON(a.kv, partPrograms, program.ID, program)
}

func (a *adapter) PutExercise(exercise models.Exercise) {
	putJSON(a.kv, partExercises, exercise.ID, exercise)
}

func (a *adapter) DeleteProgram(id string)  { a.kv.delete(partPrograms, id) }
func (a *adapter) DeleteExercise(id string) { a.kv.delete(partExercises, id) }
func (a *adapter) ClearPrograms()           { a.kv.clear(partPrograms) }
func (a *adapter) ClearExercises()          { a.kv.clear(partExercises) }

func (a *adapter) GetSessionSnapshot() (SessionRecord, bool) {
	return getJSON[SessionRecord](a.kv, partSession, sessionKey)
}

func (a *adapter) SetSessionSnapshot(record SessionRecord) {
	record.ID = sessionKey
	putJSON(a.kv, partSession, sessionKey, record)
}

func (a *adapter) ClearSessionSnapshot() { a.kv.clear(partSession) }

func (a *adapter) GetLegacyWorkouts() []models.Workout {
	return getAllJSON[models.Workout](a.kv, partWorkouts)
}

func (a *adapter) PutLegacyWorkout(workout models.Workout) {
	putJSON(a.kv, partWorkouts, workout.ID, workout)
}

func (a *adapter) ClearLegacyWorkouts() { a.kv.clear(partWorkouts) }

func (a *adapter) GetMeta(id string) (MetaRecord, bool) {
	return getJSON[MetaRecord](a.kv, partMeta, id)
}

func (a *adapter) SetMeta(record MetaRecord) {
	putJSON(a.kv, partMeta, record.ID, record)
}

func (a *adapter) GetItem(key string) ([]byte, bool) {
	return a.kv.get(partMeta, key)
}

func (a *adapter) SetItem(key string, value []byte) {
	a.kv.put(partMeta, key, value)
}

func (a *adapter) RemoveItem(key string) { a.kv.delete(partMeta, key) }

func (a *adapter) Close() error { return a.kv.close() }
