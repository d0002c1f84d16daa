// ABOUTME: Root Cobra command for gym CLI.
// ABOUTME: Handles app lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/app"
	"github.com/harperreed/gym/internal/config"
	"github.com/harperreed/gym/internal/models"
	"github.com/spf13/cobra"
)

var gymApp *app.App

var rootCmd = &cobra.Command{
	Use:   "gym",
	Short: "Offline-first workout logger",
	Long: `Gym is a CLI tool for logging strength workouts.

Workouts are started from programs (ordered lists of exercises). Each
exercise gets sets with weight and reps; sets from your last completed
workout of the same program are suggested as a starting point.

QUICK START:

  $ gym program list                  # See your programs
  $ gym start "Strength A"            # Start a workout
  $ gym active                        # Show the workout in progress
  $ gym set add squat                 # Add a set for an exercise
  $ gym set update squat 1a2b --kg 100 --reps 5 --done
  $ gym finish                        # Finish the workout
  $ gym history                       # Past workouts

PROGRAMS:

  $ gym program create "Push Day"
  $ gym program add "Push Day" "Bench Press"
  $ gym program move "Push Day" "Bench Press" up

BACKUP:

  $ gym export > backup.json          # Full backup (JSON or YAML)
  $ gym import backup.json            # Replace all local data

MCP INTEGRATION:

  Run 'gym mcp' to start the Model Context Protocol server for use with
  MCP-compatible AI assistants:

  {
    "mcpServers": {
      "gym": { "command": "gym", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Data lives in ~/.local/share/gym (Badger by default, SQLite via
  config). Writes are debounced and flushed on exit.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		gymApp = app.New(cfg, app.Options{})
		gymApp.Hydrate()
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if gymApp != nil {
			gymApp.Close()
		}
		return nil
	},
}

// Lookup helpers shared by the commands. Names match case-insensitively,
// ids by prefix.

func findProgram(ref string) (models.Program, error) {
	for _, p := range gymApp.Catalog.Programs() {
		if strings.EqualFold(p.Name, ref) || strings.HasPrefix(p.ID, ref) {
			return p, nil
		}
	}
	return models.Program{}, fmt.Errorf("program not found: %s", ref)
}

func findExercise(ref string) (models.Exercise, error) {
	for _, e := range gymApp.Catalog.Exercises() {
		if strings.EqualFold(e.Name, ref) || strings.HasPrefix(e.ID, ref) {
			return e, nil
		}
	}
	return models.Exercise{}, fmt.Errorf("exercise not found: %s", ref)
}

func findWorkout(ref string) (models.Workout, error) {
	for _, w := range gymApp.Session.Workouts() {
		if strings.HasPrefix(w.ID, ref) {
			return w, nil
		}
	}
	return models.Workout{}, fmt.Errorf("workout not found: %s", ref)
}

func requireActiveWorkout() (models.Workout, error) {
	id := gymApp.Session.ActiveWorkoutID()
	if id == "" {
		return models.Workout{}, fmt.Errorf("no active workout (use 'gym start <program>')")
	}
	w, ok := gymApp.Session.Workout(id)
	if !ok {
		return models.Workout{}, fmt.Errorf("no active workout (use 'gym start <program>')")
	}
	return w, nil
}

func exerciseName(id string) string {
	if ex, ok := gymApp.Catalog.Exercise(id); ok {
		return ex.Name
	}
	return shortID(id)
}

func programName(id string) string {
	if p, ok := gymApp.Catalog.Program(id); ok {
		return p.Name
	}
	return shortID(id)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatWeight renders a stored kg total in the user's display unit.
func formatWeight(weightKg float64) string {
	settings := gymApp.Settings.Settings()
	if settings.UnitsPreference == models.UnitsLb {
		return fmt.Sprintf("%.1f lb", models.KgToLb(weightKg))
	}
	return fmt.Sprintf("%.1f kg", weightKg)
}

func faint(s string) string {
	return color.New(color.Faint).Sprint(s)
}
