// ABOUTME: CLI command for wiping all data.
// ABOUTME: Requires --force; reseeds the starter catalog.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all data and reseed the starter catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetForce {
			return fmt.Errorf("this deletes all workouts, programs, and settings; pass --force to confirm")
		}

		gymApp.ResetAll()
		color.Green("✓ All data reset")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Confirm the reset")
	rootCmd.AddCommand(resetCmd)
}
