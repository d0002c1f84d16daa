// ABOUTME: Observable store for the program and exercise catalog.
// ABOUTME: Seeds built-in defaults on first run; supports import replacement.
package catalog

import (
	"sync"
	"time"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/storage"
)

// SchemaVersion is the current persisted catalog format version.
const SchemaVersion = 1

// Direction moves an exercise one slot within a program.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

type migrated struct {
	programs  []models.Program
	exercises []models.Exercise
}

// migrations maps a stored schema version to the transform that lifts the
// catalog one version forward.
var migrations = map[int]func(migrated) migrated{}

func migrate(m migrated, fromVersion int) migrated {
	for v := fromVersion; v < SchemaVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			continue
		}
		m = step(m)
	}
	return m
}

// Store holds the mutable catalog. Workouts reference programs and exercises
// by id only; deleting catalog entries never touches session history.
type Store struct {
	mu             sync.Mutex
	programs       []models.Program
	exercises      []models.Exercise
	hasHydrated    bool
	lastHydratedAt int64
	subs           map[int]func()
	nextSub        int
	now            func() int64
}

// NewStore returns an empty, unhydrated catalog store.
func NewStore() *Store {
	return &Store{
		subs: map[int]func(){},
		now:  func() int64 { return time.Now().UnixMilli() },
	}
}

// Subscribe registers a change callback and returns its unsubscribe func.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// HasHydrated reports whether Hydrate has completed.
func (s *Store) HasHydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasHydrated
}

// Programs returns a copy of the program list.
func (s *Store) Programs() []models.Program {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clonePrograms(s.programs)
}

// Exercises returns a copy of the exercise list.
func (s *Store) Exercises() []models.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Exercise{}, s.exercises...)
}

// Program returns one program by id.
func (s *Store) Program(id string) (models.Program, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.programs {
		if p.ID == id {
			out := p
			out.ExerciseIDs = append([]string{}, p.ExerciseIDs...)
			return out, true
		}
	}
	return models.Program{}, false
}

// Exercise returns one exercise by id.
func (s *Store) Exercise(id string) (models.Exercise, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.exercises {
		if e.ID == id {
			return e, true
		}
	}
	return models.Exercise{}, false
}

func clonePrograms(programs []models.Program) []models.Program {
	out := make([]models.Program, len(programs))
	for i, p := range programs {
		p.ExerciseIDs = append([]string{}, p.ExerciseIDs...)
		out[i] = p
	}
	return out
}

// Hydrate loads the catalog exactly once, seeding the built-in starter
// catalog when either list comes back empty on first run.
func (s *Store) Hydrate(adapter storage.Adapter) {
	s.mu.Lock()
	if s.hasHydrated {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	programs := adapter.GetPrograms()
	exercises := adapter.GetExercises()
	storedVersion := 0
	if meta, ok := adapter.GetMeta("catalog"); ok {
		storedVersion = meta.Value.SchemaVersion
	}
	m := migrate(migrated{programs: programs, exercises: exercises}, storedVersion)

	if len(m.programs) == 0 || len(m.exercises) == 0 {
		m.exercises = models.SeedExercises()
		ids := make([]string, 0, len(m.exercises))
		for _, ex := range m.exercises {
			ids = append(ids, ex.ID)
		}
		m.programs = models.SeedPrograms(ids)
	}

	s.mu.Lock()
	if s.hasHydrated {
		s.mu.Unlock()
		return
	}
	s.programs = m.programs
	s.exercises = m.exercises
	s.hasHydrated = true
	s.lastHydratedAt = s.now()
	s.mu.Unlock()

	s.notify()
}

// CreateProgram adds an empty program and returns its id.
func (s *Store) CreateProgram() string {
	program := models.Program{ID: models.NewID(), Name: "New Program", ExerciseIDs: []string{}}

	s.mu.Lock()
	s.programs = append(s.programs, program)
	s.mu.Unlock()

	s.notify()
	return program.ID
}

// ProgramPatch is a partial update for a program. Nil fields are unchanged.
type ProgramPatch struct {
	Name *string
	Note *string
}

// UpdateProgram patches a program's display fields.
func (s *Store) UpdateProgram(id string, patch ProgramPatch) bool {
	s.mu.Lock()
	updated := false
	for i, p := range s.programs {
		if p.ID != id {
			continue
		}
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Note != nil {
			p.Note = *patch.Note
		}
		s.programs[i] = p
		updated = true
		break
	}
	s.mu.Unlock()

	if updated {
		s.notify()
	}
	return updated
}

// DeleteProgram removes a program from the catalog. Historical workouts that
// reference it are left alone.
func (s *Store) DeleteProgram(id string) {
	s.mu.Lock()
	next := s.programs[:0]
	for _, p := range s.programs {
		if p.ID != id {
			next = append(next, p)
		}
	}
	deleted := len(next) != len(s.programs)
	s.programs = next
	s.mu.Unlock()

	if deleted {
		s.notify()
	}
}

// AddExerciseToProgram appends an exercise id; duplicates are ignored.
func (s *Store) AddExerciseToProgram(programID, exerciseID string) {
	changed := false
	s.mu.Lock()
	for i, p := range s.programs {
		if p.ID != programID {
			continue
		}
		exists := false
		for _, id := range p.ExerciseIDs {
			if id == exerciseID {
				exists = true
				break
			}
		}
		if !exists {
			p.ExerciseIDs = append(append([]string{}, p.ExerciseIDs...), exerciseID)
			s.programs[i] = p
			changed = true
		}
		break
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// RemoveExerciseFromProgram drops an exercise id from a program's list.
func (s *Store) RemoveExerciseFromProgram(programID, exerciseID string) {
	changed := false
	s.mu.Lock()
	for i, p := range s.programs {
		if p.ID != programID {
			continue
		}
		next := make([]string, 0, len(p.ExerciseIDs))
		for _, id := range p.ExerciseIDs {
			if id != exerciseID {
				next = append(next, id)
			}
		}
		if len(next) != len(p.ExerciseIDs) {
			p.ExerciseIDs = next
			s.programs[i] = p
			changed = true
		}
		break
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// ReorderProgramExercise moves fromID to the position currently held by
// toID (remove, then insert at the target index). No-op when either id is
// missing or they are equal.
func (s *Store) ReorderProgramExercise(programID, fromID, toID string) {
	changed := false
	s.mu.Lock()
	for i, p := range s.programs {
		if p.ID != programID {
			continue
		}
		fromIndex, toIndex := -1, -1
		for j, id := range p.ExerciseIDs {
			if id == fromID {
				fromIndex = j
			}
			if id == toID {
				toIndex = j
			}
		}
		if fromIndex == -1 || toIndex == -1 || fromIndex == toIndex {
			break
		}
		next := make([]string, 0, len(p.ExerciseIDs))
		next = append(next, p.ExerciseIDs[:fromIndex]...)
		next = append(next, p.ExerciseIDs[fromIndex+1:]...)
		insert := make([]string, 0, len(p.ExerciseIDs))
		insert = append(insert, next[:toIndex]...)
		insert = append(insert, fromID)
		insert = append(insert, next[toIndex:]...)
		p.ExerciseIDs = insert
		s.programs[i] = p
		changed = true
		break
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// MoveProgramExercise swaps an exercise one position up or down, bounded at
// the ends of the list.
func (s *Store) MoveProgramExercise(programID, exerciseID string, direction Direction) {
	changed := false
	s.mu.Lock()
	for i, p := range s.programs {
		if p.ID != programID {
			continue
		}
		index := -1
		for j, id := range p.ExerciseIDs {
			if id == exerciseID {
				index = j
				break
			}
		}
		if index == -1 {
			break
		}
		nextIndex := index + 1
		if direction == MoveUp {
			nextIndex = index - 1
		}
		if nextIndex < 0 || nextIndex >= len(p.ExerciseIDs) {
			break
		}
		ids := append([]string{}, p.ExerciseIDs...)
		ids[index], ids[nextIndex] = ids[nextIndex], ids[index]
		p.ExerciseIDs = ids
		s.programs[i] = p
		changed = true
		break
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// CreateExercise adds an exercise to the catalog and returns its id. Only
// barbell exercises honor a plates default; everything else is total.
func (s *Store) CreateExercise(name string, exerciseType models.ExerciseType, mode models.InputMode) string {
	defaultMode := models.ModeTotal
	if exerciseType == models.ExerciseBarbell {
		defaultMode = mode
	}
	exercise := models.Exercise{
		ID:               models.NewID(),
		Name:             name,
		Type:             exerciseType,
		DefaultInputMode: defaultMode,
	}

	s.mu.Lock()
	s.exercises = append(s.exercises, exercise)
	s.mu.Unlock()

	s.notify()
	return exercise.ID
}

// UpdateExercise renames an exercise. Identity and type stay fixed.
func (s *Store) UpdateExercise(id, name string) bool {
	s.mu.Lock()
	updated := false
	for i, e := range s.exercises {
		if e.ID == id {
			e.Name = name
			s.exercises[i] = e
			updated = true
			break
		}
	}
	s.mu.Unlock()

	if updated {
		s.notify()
	}
	return updated
}

// ReplaceCatalog swaps in a whole new catalog (import/reset path).
func (s *Store) ReplaceCatalog(programs []models.Program, exercises []models.Exercise) {
	s.mu.Lock()
	s.programs = clonePrograms(programs)
	s.exercises = append([]models.Exercise{}, exercises...)
	s.mu.Unlock()

	s.notify()
}
