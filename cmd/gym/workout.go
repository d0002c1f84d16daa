// ABOUTME: CLI commands for the workout lifecycle.
// ABOUTME: start, finish, active, history, and show.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/models"
	"github.com/spf13/cobra"
)

var historyLimit int

var startCmd = &cobra.Command{
	Use:   "start <program>",
	Short: "Start a workout from a program",
	Long: `Start a workout from a program by name or ID prefix.

Sets from your last completed workout of the same program are suggested
as a starting point. Starting while another workout is active finishes
nothing; the new workout simply becomes the active one.

Examples:
  gym start "Strength A"
  gym start 1a2b`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := findProgram(args[0])
		if err != nil {
			return err
		}

		id := gymApp.Session.StartWorkout(program.ID)
		if id == "" {
			return fmt.Errorf("failed to start workout for program: %s", program.Name)
		}

		color.Green("✓ Started %s", program.Name)
		w, _ := gymApp.Session.Workout(id)
		printWorkout(w)
		return nil
	},
}

var finishCmd = &cobra.Command{
	Use:   "finish",
	Short: "Finish the active workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, ok := gymApp.FinishActiveWorkout()
		if !ok {
			return fmt.Errorf("no active workout")
		}

		color.Green("✓ Finished workout %s", shortID(id))
		return nil
	},
}

var activeCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the workout in progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := requireActiveWorkout()
		if err != nil {
			return err
		}
		printWorkout(w)
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"ls"},
	Short:   "List past workouts, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts := gymApp.Session.Workouts()
		if len(workouts) == 0 {
			fmt.Println("No workouts yet.")
			return nil
		}
		if historyLimit > 0 && len(workouts) > historyLimit {
			workouts = workouts[:historyLimit]
		}

		for _, w := range workouts {
			sets := 0
			for _, entry := range w.Entries {
				sets += len(entry.Sets)
			}
			status := formatDay(w.SortKey())
			if w.Active() {
				status = color.YellowString("active")
			}
			fmt.Printf("%s  %-12s %-20s %d sets\n",
				faint(shortID(w.ID)), status, programName(w.ProgramID), sets)
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <workout>",
	Short: "Show a workout by ID prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := findWorkout(args[0])
		if err != nil {
			return err
		}
		printWorkout(w)
		return nil
	},
}

func printWorkout(w models.Workout) {
	header := fmt.Sprintf("%s  %s  started %s", shortID(w.ID), programName(w.ProgramID), formatTime(w.StartedAt))
	if w.Active() {
		header += "  " + color.YellowString("(active)")
	} else {
		header += fmt.Sprintf("  finished %s", formatTime(w.EndedAt))
	}
	fmt.Println(header)

	for _, entry := range w.Entries {
		name := exerciseName(entry.ExerciseID)
		if entry.Suggested {
			name += " " + faint("(suggested)")
		}
		fmt.Printf("  %s\n", name)
		for _, set := range entry.Sets {
			mark := " "
			if set.Completed {
				mark = color.GreenString("✓")
			}
			fmt.Printf("    %s %s  %s × %d\n",
				mark, faint(shortID(set.ID)), formatWeight(set.WeightKg), set.Reps)
		}
	}
}

func formatTime(unixMilli int64) string {
	return time.UnixMilli(unixMilli).Format("2006-01-02 15:04")
}

func formatDay(unixMilli int64) string {
	return time.UnixMilli(unixMilli).Format("2006-01-02")
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Max workouts to show")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(activeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
}
