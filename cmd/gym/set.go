// ABOUTME: CLI commands for logging sets in the active workout.
// ABOUTME: add, update, delete with a printable restore token, and restore.
package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/session"
	"github.com/spf13/cobra"
)

var (
	setWeightKg float64
	setWeightLb float64
	setPerSide  float64
	setReps     int
	setDone     bool
	setNotDone  bool
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Manage sets in the active workout",
}

var setAddCmd = &cobra.Command{
	Use:   "add <exercise>",
	Short: "Add a set for an exercise",
	Long: `Add a set for an exercise in the active workout.

The new set copies the last set of that exercise (weight, reps, input
mode) with completion cleared, or starts from the defaults when the
exercise has no sets yet.

Examples:
  gym set add "Back Squat"
  gym set add squat --kg 100 --reps 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := requireActiveWorkout()
		if err != nil {
			return err
		}
		exercise, err := findExercise(args[0])
		if err != nil {
			return err
		}

		setID, ok := gymApp.Session.AddSet(w.ID, exercise.ID)
		if !ok {
			return fmt.Errorf("%s is not part of the active workout", exercise.Name)
		}

		if patch, changed := patchFromFlags(cmd); changed {
			gymApp.Session.UpdateSet(w.ID, exercise.ID, setID, patch)
		}

		updated, _ := gymApp.Session.Workout(w.ID)
		set, _ := findSet(updated, exercise.ID, setID)
		color.Green("✓ Added set for %s", exercise.Name)
		fmt.Printf("  %s %s × %d\n", faint(shortID(setID)), formatWeight(set.WeightKg), set.Reps)
		return nil
	},
}

var setUpdateCmd = &cobra.Command{
	Use:   "update <exercise> <set>",
	Short: "Update weight, reps, or completion of a set",
	Long: `Update a set in the active workout by exercise and set ID prefix.

Weight can be given as a total (--kg or --lb) or as per-side plate
weight (--per-side, uses your bar weight). Values are stored in kg.

Examples:
  gym set update squat 1a2b --kg 102.5 --reps 5
  gym set update bench 3c4d --per-side 30 --done`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := requireActiveWorkout()
		if err != nil {
			return err
		}
		exercise, err := findExercise(args[0])
		if err != nil {
			return err
		}
		setID, err := findSetByPrefix(w, exercise.ID, args[1])
		if err != nil {
			return err
		}

		patch, changed := patchFromFlags(cmd)
		if !changed {
			return fmt.Errorf("nothing to update (use --kg, --lb, --per-side, --reps, --done, or --not-done)")
		}
		if !gymApp.Session.UpdateSet(w.ID, exercise.ID, setID, patch) {
			return fmt.Errorf("failed to update set: %s", args[1])
		}

		updated, _ := gymApp.Session.Workout(w.ID)
		set, _ := findSet(updated, exercise.ID, setID)
		color.Green("✓ Updated set %s", shortID(setID))
		fmt.Printf("  %s × %d\n", formatWeight(set.WeightKg), set.Reps)
		return nil
	},
}

var setDeleteCmd = &cobra.Command{
	Use:     "delete <exercise> <set>",
	Aliases: []string{"rm"},
	Short:   "Delete a set from the active workout",
	Long: `Delete a set from the active workout.

Prints a restore token; 'gym set restore <token>' puts the set back at
its original position.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := requireActiveWorkout()
		if err != nil {
			return err
		}
		exercise, err := findExercise(args[0])
		if err != nil {
			return err
		}
		setID, err := findSetByPrefix(w, exercise.ID, args[1])
		if err != nil {
			return err
		}

		payload, ok := gymApp.Session.DeleteSet(w.ID, exercise.ID, setID)
		if !ok {
			return fmt.Errorf("failed to delete set: %s", args[1])
		}

		token, err := encodeRestoreToken(payload)
		if err != nil {
			return fmt.Errorf("failed to encode restore token: %w", err)
		}

		color.Green("✓ Deleted set %s from %s", shortID(setID), exercise.Name)
		fmt.Printf("  restore with: gym set restore %s\n", faint(token))
		return nil
	},
}

var setRestoreCmd = &cobra.Command{
	Use:   "restore <token>",
	Short: "Restore a deleted set from its restore token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload, err := decodeRestoreToken(args[0])
		if err != nil {
			return fmt.Errorf("invalid restore token: %w", err)
		}

		gymApp.UndoDeleteSet(payload)
		color.Green("✓ Restored set %s", shortID(payload.Set.ID))
		return nil
	},
}

// patchFromFlags builds a SetPatch from whichever flags were set.
func patchFromFlags(cmd *cobra.Command) (session.SetPatch, bool) {
	var patch session.SetPatch
	changed := false

	if cmd.Flags().Changed("kg") {
		patch.WeightKg = &setWeightKg
		changed = true
	}
	if cmd.Flags().Changed("lb") {
		kg := models.LbToKg(setWeightLb)
		patch.WeightKg = &kg
		changed = true
	}
	if cmd.Flags().Changed("per-side") {
		kg := models.TotalFromPerSideKg(setPerSide, gymApp.Settings.Settings().DefaultBarWeight)
		mode := models.ModePlates
		patch.WeightKg = &kg
		patch.Mode = &mode
		changed = true
	}
	if cmd.Flags().Changed("reps") {
		patch.Reps = &setReps
		changed = true
	}
	if setDone {
		done := true
		patch.Completed = &done
		changed = true
	}
	if setNotDone {
		done := false
		patch.Completed = &done
		changed = true
	}
	return patch, changed
}

func findSetByPrefix(w models.Workout, exerciseID, prefix string) (string, error) {
	for _, entry := range w.Entries {
		if entry.ExerciseID != exerciseID {
			continue
		}
		for _, set := range entry.Sets {
			if strings.HasPrefix(set.ID, prefix) {
				return set.ID, nil
			}
		}
	}
	return "", fmt.Errorf("set not found: %s", prefix)
}

func findSet(w models.Workout, exerciseID, setID string) (models.Set, bool) {
	for _, entry := range w.Entries {
		if entry.ExerciseID != exerciseID {
			continue
		}
		for _, set := range entry.Sets {
			if set.ID == setID {
				return set, true
			}
		}
	}
	return models.Set{}, false
}

func encodeRestoreToken(payload models.UndoDeleteSet) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func decodeRestoreToken(token string) (models.UndoDeleteSet, error) {
	var payload models.UndoDeleteSet
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return payload, err
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return payload, err
	}
	if payload.Set.ID == "" {
		return payload, fmt.Errorf("missing set")
	}
	return payload, nil
}

func addSetFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&setWeightKg, "kg", 0, "Total weight in kg")
	cmd.Flags().Float64Var(&setWeightLb, "lb", 0, "Total weight in lb")
	cmd.Flags().Float64Var(&setPerSide, "per-side", 0, "Per-side plate weight in kg")
	cmd.Flags().IntVar(&setReps, "reps", 0, "Rep count")
	cmd.Flags().BoolVar(&setDone, "done", false, "Mark the set completed")
	cmd.Flags().BoolVar(&setNotDone, "not-done", false, "Mark the set not completed")
}

func init() {
	addSetFlags(setAddCmd)
	addSetFlags(setUpdateCmd)

	setCmd.AddCommand(setAddCmd)
	setCmd.AddCommand(setUpdateCmd)
	setCmd.AddCommand(setDeleteCmd)
	setCmd.AddCommand(setRestoreCmd)
	rootCmd.AddCommand(setCmd)
}
