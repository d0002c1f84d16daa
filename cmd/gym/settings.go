// ABOUTME: CLI commands for user settings.
// ABOUTME: show, units, and bar weight.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/models"
	"github.com/harperreed/gym/internal/settings"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := gymApp.Settings.Settings()
		fmt.Printf("units       %s\n", s.UnitsPreference)
		fmt.Printf("bar weight  %.1f kg\n", s.DefaultBarWeight)
		return nil
	},
}

var settingsUnitsCmd = &cobra.Command{
	Use:   "units <kg|lb>",
	Short: "Set the display unit",
	Long: `Set the display unit. Stored weights stay in kg; only display
changes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var units models.Units
		switch args[0] {
		case "kg":
			units = models.UnitsKg
		case "lb":
			units = models.UnitsLb
		default:
			return fmt.Errorf("units must be 'kg' or 'lb', got %q", args[0])
		}

		gymApp.Settings.UpdateSettings(settings.Patch{UnitsPreference: &units})
		color.Green("✓ Display units set to %s", units)
		return nil
	},
}

var settingsBarCmd = &cobra.Command{
	Use:   "bar <kg>",
	Short: "Set the default bar weight in kg",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		weight, err := strconv.ParseFloat(args[0], 64)
		if err != nil || weight < 0 {
			return fmt.Errorf("invalid bar weight: %s", args[0])
		}

		gymApp.Settings.UpdateSettings(settings.Patch{DefaultBarWeight: &weight})
		color.Green("✓ Bar weight set to %.1f kg", weight)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsUnitsCmd)
	settingsCmd.AddCommand(settingsBarCmd)
	rootCmd.AddCommand(settingsCmd)
}
