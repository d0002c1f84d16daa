// ABOUTME: CLI commands for the exercise catalog.
// ABOUTME: list, create, and rename.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/models"
	"github.com/spf13/cobra"
)

var exerciseMode string

var exerciseCmd = &cobra.Command{
	Use:   "exercise",
	Short: "Manage the exercise catalog",
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		exercises := gymApp.Catalog.Exercises()
		if len(exercises) == 0 {
			fmt.Println("No exercises. Create one with 'gym exercise create <name> <type>'.")
			return nil
		}

		for _, e := range exercises {
			fmt.Printf("%s  %-26s %-12s %s\n",
				faint(shortID(e.ID)), e.Name, e.Type, faint(string(e.DefaultInputMode)))
		}
		return nil
	},
}

var exerciseCreateCmd = &cobra.Command{
	Use:   "create <name> <type>",
	Short: "Create an exercise",
	Long: `Create an exercise. Type is one of: barbell, dumbbell, machine,
bodyweight, cable. Barbell exercises default to per-side plate input;
everything else uses total weight.

Examples:
  gym exercise create "Front Squat" barbell
  gym exercise create "Leg Press" machine`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		exerciseType := parseExerciseType(args[1])
		if !models.ValidExerciseType(exerciseType) {
			return fmt.Errorf("unknown exercise type: %s\nValid types: barbell, dumbbell, machine, bodyweight, cable", args[1])
		}

		mode := models.ModeTotal
		if exerciseType == models.ExerciseBarbell {
			mode = models.ModePlates
		}
		if exerciseMode != "" {
			switch exerciseMode {
			case "total":
				mode = models.ModeTotal
			case "plates":
				mode = models.ModePlates
			default:
				return fmt.Errorf("mode must be 'total' or 'plates', got %q", exerciseMode)
			}
		}

		id := gymApp.Catalog.CreateExercise(args[0], exerciseType, mode)
		color.Green("✓ Created exercise %s", args[0])
		fmt.Printf("  %s\n", faint(shortID(id)))
		return nil
	},
}

var exerciseRenameCmd = &cobra.Command{
	Use:   "rename <exercise> <name>",
	Short: "Rename an exercise",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		exercise, err := findExercise(args[0])
		if err != nil {
			return err
		}

		if !gymApp.Catalog.UpdateExercise(exercise.ID, args[1]) {
			return fmt.Errorf("failed to rename exercise: %s", args[0])
		}

		color.Green("✓ Renamed %s to %s", exercise.Name, args[1])
		return nil
	},
}

func parseExerciseType(s string) models.ExerciseType {
	switch strings.ToLower(s) {
	case "barbell":
		return models.ExerciseBarbell
	case "dumbbell":
		return models.ExerciseDumbbell
	case "machine":
		return models.ExerciseMachine
	case "bodyweight":
		return models.ExerciseBodyweight
	case "cable":
		return models.ExerciseCable
	}
	return models.ExerciseType(s)
}

func init() {
	exerciseCreateCmd.Flags().StringVar(&exerciseMode, "mode", "", "Weight input mode: total or plates")

	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseCreateCmd)
	exerciseCmd.AddCommand(exerciseRenameCmd)
	rootCmd.AddCommand(exerciseCmd)
}
