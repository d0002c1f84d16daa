// ABOUTME: Cross-store actions behind the command surface.
// ABOUTME: Export, import, reset, and the undo path for deleted sets.
package app

import (
	"fmt"

	"github.com/harperreed/gym/internal/models"
)

// ExportData snapshots everything worth backing up. Workouts are carried
// denormalized so the file is readable and diffable.
func (a *App) ExportData() *models.Export {
	return &models.Export{
		Programs:  a.Catalog.Programs(),
		Exercises: a.Catalog.Exercises(),
		Workouts:  a.Session.Workouts(),
		Settings:  a.Settings.Settings(),
	}
}

// ImportData replaces all local data with the decoded export. The decode is
// strict and all-or-nothing: nothing is touched unless the whole payload
// parses. This is the one action with a user-visible error.
func (a *App) ImportData(data []byte, format Format) error {
	export, err := DecodeExport(data, format)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	a.Settings.ReplaceSettings(export.Settings)
	a.Catalog.ReplaceCatalog(export.Programs, export.Exercises)
	a.Session.ReplaceFromWorkouts(export.Workouts)
	return nil
}

// ResetAll wipes the session and history, reseeds the starter catalog, and
// restores default settings. The outbox is dropped too: events describing
// erased data have nothing left to sync.
func (a *App) ResetAll() {
	exercises := models.SeedExercises()
	ids := make([]string, len(exercises))
	for i, ex := range exercises {
		ids[i] = ex.ID
	}
	a.Catalog.ReplaceCatalog(models.SeedPrograms(ids), exercises)
	a.Settings.ReplaceSettings(models.DefaultSettings())
	a.Session.ClearSession()
	a.Outbox.Clear()
}

// FinishActiveWorkout finishes the workout in progress, if any.
func (a *App) FinishActiveWorkout() (string, bool) {
	id := a.Session.ActiveWorkoutID()
	if id == "" {
		return "", false
	}
	if !a.Session.FinishWorkout(id) {
		return "", false
	}
	return id, true
}

// UndoDeleteSet restores the payload returned by a prior DeleteSet.
func (a *App) UndoDeleteSet(payload models.UndoDeleteSet) {
	a.Session.RestoreDeletedSet(payload)
}
