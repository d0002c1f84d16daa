// ABOUTME: Tests for the settings store.
// ABOUTME: Covers default fallback, hydration, patching, and replacement.
package settings

import (
	"testing"

	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/storage"
)

func TestHydrateDefaults(t *testing.T) {
	s := NewStore()
	s.Hydrate(storage.NewMemory())

	if !s.HasHydrated() {
		t.Fatal("expected hydrated")
	}
	got := s.Settings()
	if got.UnitsPreference != models.UnitsKg || got.DefaultBarWeight != 20 {
		t.Errorf("defaults = %+v", got)
	}
}

func TestHydrateStoredRecord(t *testing.T) {
	adapter := storage.NewMemory()
	adapter.SetSettings(storage.SettingsRecord{
		SchemaVersion: SchemaVersion,
		Value:         models.Settings{UnitsPreference: models.UnitsLb, DefaultBarWeight: 15, ReducedMotion: true},
	})

	s := NewStore()
	s.Hydrate(adapter)

	got := s.Settings()
	if got.UnitsPreference != models.UnitsLb || got.DefaultBarWeight != 15 || !got.ReducedMotion {
		t.Errorf("stored settings = %+v", got)
	}

	// Second hydrate is a no-op even if the record changes underneath.
	adapter.SetSettings(storage.SettingsRecord{SchemaVersion: SchemaVersion, Value: models.DefaultSettings()})
	s.Hydrate(adapter)
	if s.Settings().UnitsPreference != models.UnitsLb {
		t.Error("expected second hydrate to be a no-op")
	}
}

func TestUpdateSettingsPatch(t *testing.T) {
	s := NewStore()
	s.Hydrate(storage.NewMemory())

	units := models.UnitsLb
	s.UpdateSettings(Patch{UnitsPreference: &units})

	got := s.Settings()
	if got.UnitsPreference != models.UnitsLb {
		t.Errorf("units = %s, want lb", got.UnitsPreference)
	}
	if got.DefaultBarWeight != 20 {
		t.Errorf("unpatched bar weight changed: %f", got.DefaultBarWeight)
	}

	bar := 25.0
	motion := true
	s.UpdateSettings(Patch{DefaultBarWeight: &bar, ReducedMotion: &motion})
	got = s.Settings()
	if got.DefaultBarWeight != 25 || !got.ReducedMotion {
		t.Errorf("patched settings = %+v", got)
	}
}

func TestReplaceSettings(t *testing.T) {
	s := NewStore()
	s.Hydrate(storage.NewMemory())

	s.ReplaceSettings(models.Settings{UnitsPreference: models.UnitsLb, DefaultBarWeight: 18})
	got := s.Settings()
	if got.UnitsPreference != models.UnitsLb || got.DefaultBarWeight != 18 {
		t.Errorf("replaced settings = %+v", got)
	}
}
