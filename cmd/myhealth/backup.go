// ABOUTME: CLI commands for exporting and restoring backups.
// ABOUTME: Writes weight, food and settings in JSON or YAML and restores them from a file.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/myhealth/internal/storage"
	"github.com/spf13/cobra"
)

var (
	backupOutput string
	backupFormat string
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export or restore your data",
	Long: `Export or restore weight records, the food catalog and user settings.

FORMATS:

  json       default, suitable for restore
  yaml       human-readable, also restorable

Restoring writes records in order: weight, then food, then settings. Existing
records with the same identity are replaced. A record that fails validation
stops the restore; records written before it are kept.`,
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a backup",
	Long: `Export a backup to stdout or a file.

Examples:
  myhealth backup export                       # JSON to stdout
  myhealth backup export -o backup.json
  myhealth backup export -o backup.yaml        # format from extension
  myhealth backup export --format yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := resolveFormat(backupFormat, backupOutput)
		if err != nil {
			return err
		}

		b, err := store.Backup(cmd.Context())
		if err != nil {
			return err
		}

		data, err := storage.EncodeBackup(b, format)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if backupOutput == "" {
			fmt.Println(string(data))
			return nil
		}
		if err := os.WriteFile(backupOutput, data, 0600); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		color.Green("✓ Exported %d records to %s", b.Len(), backupOutput)
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:     "restore <file>",
	Aliases: []string{"import"},
	Short:   "Restore a backup file",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		format, err := resolveFormat(backupFormat, filename)
		if err != nil {
			return err
		}

		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		b, err := storage.DecodeBackup(raw, format)
		if err != nil {
			return err
		}
		if err := store.Restore(cmd.Context(), b); err != nil {
			return err
		}

		color.Green("✓ Restored %d records from %s", b.Len(), filename)
		return nil
	},
}

// resolveFormat prefers an explicit --format, then the file extension, then JSON.
func resolveFormat(flag, filename string) (storage.Format, error) {
	if flag != "" {
		return storage.ParseFormat(flag)
	}
	if ext := strings.TrimPrefix(filepath.Ext(filename), "."); ext != "" {
		if f, err := storage.ParseFormat(ext); err == nil {
			return f, nil
		}
	}
	return storage.FormatJSON, nil
}

func init() {
	backupExportCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "output file (default: stdout)")
	backupCmd.PersistentFlags().StringVar(&backupFormat, "format", "", "json or yaml (default: from file extension, else json)")

	backupCmd.AddCommand(backupExportCmd, backupRestoreCmd)
	rootCmd.AddCommand(backupCmd)
}
