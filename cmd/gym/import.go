// ABOUTME: CLI command for importing a backup.
// ABOUTME: Strict parse; replaces all local data only on success.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/app"
	"github.com/spf13/cobra"
)

var importFormat string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a backup, replacing all local data",
	Long: `Import a backup produced by 'gym export'. The file must parse
completely; on any error nothing is changed.

The format is inferred from the file extension unless --format is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		name := importFormat
		if name == "" {
			name = formatFromExtension(args[0])
		}
		format, err := app.ParseFormat(name)
		if err != nil {
			return err
		}

		if err := gymApp.ImportData(data, format); err != nil {
			return err
		}

		color.Green("✓ Imported %s", args[0])
		fmt.Printf("  %d programs, %d exercises, %d workouts\n",
			len(gymApp.Catalog.Programs()),
			len(gymApp.Catalog.Exercises()),
			len(gymApp.Session.Workouts()))
		return nil
	},
}

func formatFromExtension(path string) string {
	switch {
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return "yaml"
	default:
		return "json"
	}
}

func init() {
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Import format: json or yaml (default: by extension)")
	rootCmd.AddCommand(importCmd)
}
