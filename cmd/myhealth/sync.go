// ABOUTME: CLI commands for backup snapshots in Charm Cloud.
// ABOUTME: Supports push, list, pull, delete, status, repair, and wipe.
package main

import (
	"fmt"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/myhealth/internal/charm"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Keep backup snapshots in Charm Cloud",
	Long: `Keep backup snapshots in Charm Cloud.

Snapshots are E2E encrypted with your SSH key before upload. Each push stores
the same data 'myhealth backup export' writes; pull restores one into the
local database.

COMMANDS:

  push        Upload a snapshot of the local database
  list        List snapshots, newest first
  pull        Restore a snapshot by ID or ID prefix
  delete      Delete a snapshot
  status      Show Charm account and snapshot count
  repair      Repair the local Charm KV store
  wipe        Delete every snapshot, locally and in the cloud (destructive)`,
}

func openCharm() (*charm.Client, error) {
	c, err := charm.Open(cfg.CharmHost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize charm client: %w", err)
	}
	return c, nil
}

var syncPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload a snapshot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := store.Backup(cmd.Context())
		if err != nil {
			return err
		}

		client, err := openCharm()
		if err != nil {
			return err
		}
		defer client.Close()

		snap, err := client.PushBackup(b)
		if err != nil {
			return err
		}

		color.Green("✓ Pushed snapshot")
		fmt.Printf("  %s %d records\n", color.New(color.Faint).Sprint(snap.ID[:8]), b.Len())
		return nil
	},
}

var syncListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List snapshots",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := openCharm()
		if err != nil {
			return err
		}
		defer client.Close()

		infos, err := client.ListBackups()
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("No snapshots found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, s := range infos {
			fmt.Printf("%s %s %s %d records\n",
				faint.Sprint(s.ShortID()),
				faint.Sprint(formatTime(s.CreatedAt)),
				padRight(s.Hostname, 20),
				s.Records)
		}
		return nil
	},
}

var syncPullCmd = &cobra.Command{
	Use:   "pull <id>",
	Short: "Restore a snapshot",
	Long: `Restore a snapshot into the local database by ID or unique ID prefix.

Records with the same identity are replaced; other local records are kept.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := openCharm()
		if err != nil {
			return err
		}
		defer client.Close()

		snap, err := client.PullBackup(args[0])
		if err != nil {
			return err
		}
		if err := store.Restore(cmd.Context(), snap.Backup); err != nil {
			return err
		}

		color.Green("✓ Restored snapshot %s", snap.ID[:8])
		fmt.Printf("  %d records from %s\n", snap.Backup.Len(), formatTime(snap.CreatedAt))
		return nil
	},
}

var syncDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a snapshot",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := openCharm()
		if err != nil {
			return err
		}
		defer client.Close()

		if err := client.DeleteBackup(args[0]); err != nil {
			return err
		}
		color.Yellow("✗ Deleted snapshot %s", args[0])
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show sync status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := openCharm()
		if err != nil {
			return err
		}
		defer client.Close()

		id, err := client.ID()
		if err != nil {
			color.Yellow("Not linked to Charm")
			fmt.Println("\nRun 'charm link' to connect this device.")
			return nil
		}

		host := cfg.CharmHost
		if host == "" {
			host = charm.DefaultHost
		}
		fmt.Println("Charm ID:", id)
		fmt.Println("Server:", host)
		if client.IsReadOnly() {
			color.Yellow("Read-only: another process holds the local store")
		}

		infos, _ := client.ListBackups()
		color.Green("✓ Connected to Charm")
		fmt.Printf("  Snapshots: %d\n", len(infos))
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair the local Charm KV store",
	Long: `Repair the local Charm KV store by checkpointing WAL, removing SHM files, checking integrity, and vacuuming.

Run with --force to attempt recovery even if integrity checks fail.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		fmt.Println("Repairing snapshot store...")
		result, err := kv.Repair(charm.DBName, force)

		if result.WalCheckpointed {
			color.Green("  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			color.Green("  ✓ SHM file removed")
		}
		if result.IntegrityOK {
			color.Green("  ✓ Integrity check passed")
		} else {
			color.Red("  ✗ Integrity check failed")
		}
		if result.Vacuumed {
			color.Green("  ✓ Database vacuumed")
		}

		if err != nil {
			if !force {
				color.Yellow("\nRun with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}

		color.Green("\n✓ Repair complete")
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete every snapshot",
	Long: `Delete every snapshot in Charm Cloud and the local snapshot store.

The SQLite database with your records is not touched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will PERMANENTLY DELETE every snapshot, locally and in the cloud.")
		fmt.Print("Type 'wipe' to confirm: ")
		var confirm string
		_, _ = fmt.Scanln(&confirm)
		if confirm != "wipe" {
			fmt.Println("Canceled.")
			return nil
		}

		result, err := kv.Wipe(charm.DBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		color.Green("✓ Snapshots wiped")
		fmt.Printf("  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Printf("  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

func init() {
	syncRepairCmd.Flags().Bool("force", false, "attempt recovery even if integrity checks fail")

	syncCmd.AddCommand(syncPushCmd, syncListCmd, syncPullCmd, syncDeleteCmd, syncStatusCmd, syncRepairCmd, syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
