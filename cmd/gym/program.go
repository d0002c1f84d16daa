// ABOUTME: CLI commands for managing programs.
// ABOUTME: list, create, rename, note, delete, and exercise membership.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/catalog"
	"github.com/spf13/cobra"
)

var programCmd = &cobra.Command{
	Use:   "program",
	Short: "Manage workout programs",
}

var programListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List programs and their exercises",
	RunE: func(cmd *cobra.Command, args []string) error {
		programs := gymApp.Catalog.Programs()
		if len(programs) == 0 {
			fmt.Println("No programs. Create one with 'gym program create <name>'.")
			return nil
		}

		for _, p := range programs {
			fmt.Printf("%s  %s", faint(shortID(p.ID)), color.New(color.Bold).Sprint(p.Name))
			if p.Note != "" {
				fmt.Printf("  %s", faint(p.Note))
			}
			fmt.Println()
			for _, exID := range p.ExerciseIDs {
				fmt.Printf("    %s\n", exerciseName(exID))
			}
		}
		return nil
	},
}

var programCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a program",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := gymApp.Catalog.CreateProgram()
		if len(args) == 1 {
			name := args[0]
			gymApp.Catalog.UpdateProgram(id, catalog.ProgramPatch{Name: &name})
		}

		program, _ := gymApp.Catalog.Program(id)
		color.Green("✓ Created program %s", program.Name)
		fmt.Printf("  %s\n", faint(shortID(id)))
		return nil
	},
}

var programRenameCmd = &cobra.Command{
	Use:   "rename <program> <name>",
	Short: "Rename a program",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := findProgram(args[0])
		if err != nil {
			return err
		}

		name := args[1]
		if !gymApp.Catalog.UpdateProgram(program.ID, catalog.ProgramPatch{Name: &name}) {
			return fmt.Errorf("failed to rename program: %s", args[0])
		}

		color.Green("✓ Renamed %s to %s", program.Name, name)
		return nil
	},
}

var programNoteCmd = &cobra.Command{
	Use:   "note <program> <note>",
	Short: "Set a program's note",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := findProgram(args[0])
		if err != nil {
			return err
		}

		note := args[1]
		if !gymApp.Catalog.UpdateProgram(program.ID, catalog.ProgramPatch{Note: &note}) {
			return fmt.Errorf("failed to update program: %s", args[0])
		}

		color.Green("✓ Updated note on %s", program.Name)
		return nil
	},
}

var programDeleteCmd = &cobra.Command{
	Use:     "delete <program>",
	Aliases: []string{"rm"},
	Short:   "Delete a program",
	Long: `Delete a program. Past workouts that reference it are kept; they
show the raw program ID instead of a name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := findProgram(args[0])
		if err != nil {
			return err
		}

		gymApp.Catalog.DeleteProgram(program.ID)
		color.Green("✓ Deleted program %s", program.Name)
		return nil
	},
}

var programAddCmd = &cobra.Command{
	Use:   "add <program> <exercise>",
	Short: "Add an exercise to a program",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := findProgram(args[0])
		if err != nil {
			return err
		}
		exercise, err := findExercise(args[1])
		if err != nil {
			return err
		}

		gymApp.Catalog.AddExerciseToProgram(program.ID, exercise.ID)
		color.Green("✓ Added %s to %s", exercise.Name, program.Name)
		return nil
	},
}

var programRemoveCmd = &cobra.Command{
	Use:   "remove <program> <exercise>",
	Short: "Remove an exercise from a program",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := findProgram(args[0])
		if err != nil {
			return err
		}
		exercise, err := findExercise(args[1])
		if err != nil {
			return err
		}

		gymApp.Catalog.RemoveExerciseFromProgram(program.ID, exercise.ID)
		color.Green("✓ Removed %s from %s", exercise.Name, program.Name)
		return nil
	},
}

var programMoveCmd = &cobra.Command{
	Use:   "move <program> <exercise> <up|down>",
	Short: "Move an exercise up or down within a program",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := findProgram(args[0])
		if err != nil {
			return err
		}
		exercise, err := findExercise(args[1])
		if err != nil {
			return err
		}

		var direction catalog.Direction
		switch args[2] {
		case "up":
			direction = catalog.MoveUp
		case "down":
			direction = catalog.MoveDown
		default:
			return fmt.Errorf("direction must be 'up' or 'down', got %q", args[2])
		}

		gymApp.Catalog.MoveProgramExercise(program.ID, exercise.ID, direction)
		color.Green("✓ Moved %s %s in %s", exercise.Name, args[2], program.Name)
		return nil
	},
}

func init() {
	programCmd.AddCommand(programListCmd)
	programCmd.AddCommand(programCreateCmd)
	programCmd.AddCommand(programRenameCmd)
	programCmd.AddCommand(programNoteCmd)
	programCmd.AddCommand(programDeleteCmd)
	programCmd.AddCommand(programAddCmd)
	programCmd.AddCommand(programRemoveCmd)
	programCmd.AddCommand(programMoveCmd)
	rootCmd.AddCommand(programCmd)
}
