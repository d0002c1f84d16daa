// ABOUTME: CLI command for exporting all data.
// ABOUTME: Writes JSON or YAML to stdout or a file.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/harperreed/gym/internal/app"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data as JSON or YAML",
	Long: `Export programs, exercises, workout history, and settings.

Examples:
  gym export > backup.json
  gym export --format yaml -o backup.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := app.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		data, err := app.EncodeExport(gymApp.ExportData(), format)
		if err != nil {
			return fmt.Errorf("failed to export: %w", err)
		}

		if exportOutput == "" {
			fmt.Print(string(data))
			return nil
		}

		if err := os.WriteFile(exportOutput, data, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		color.Green("✓ Exported to %s", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Export format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
