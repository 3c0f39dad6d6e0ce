// ABOUTME: CLI commands for meal bundles.
// ABOUTME: Provides bundle set, get, list, and del for the configured user.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/myhealth/internal/models"
	"github.com/spf13/cobra"
)

var bundleCmd = &cobra.Command{
	Use:     "bundle",
	Aliases: []string{"b"},
	Short:   "Manage meal bundles",
	Long: `Manage meal bundles. A bundle lists foods with a weight in grams and
may include other bundles by key.`,
}

var bundleSetCmd = &cobra.Command{
	Use:   "set <key> <item>...",
	Short: "Create or replace a bundle",
	Long: `Create or replace a bundle. Each item is food=grams, or a bare bundle key.

Examples:
  myhealth bundle set breakfast oats=60 milk=200
  myhealth bundle set big-breakfast breakfast egg=120`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := parseBundleItems(args[1:])
		if err != nil {
			return err
		}

		b := &models.Bundle{Key: args[0], Data: items}
		if err := store.SetBundle(cmd.Context(), userID(), b); err != nil {
			return err
		}

		color.Green("✓ Saved bundle %s", b.Key)
		printBundle(*b)
		return nil
	},
}

var bundleGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one bundle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := store.GetBundle(cmd.Context(), userID(), args[0])
		if err != nil {
			if nothingFound(err) {
				return nil
			}
			return err
		}
		printBundle(*b)
		return nil
	},
}

var bundleListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List your bundles",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		bundles, err := store.GetBundleList(cmd.Context(), userID())
		if err != nil {
			if nothingFound(err) {
				return nil
			}
			return err
		}
		for _, b := range bundles {
			printBundle(b)
		}
		return nil
	},
}

var bundleDelCmd = &cobra.Command{
	Use:     "del <key>",
	Aliases: []string{"delete", "rm"},
	Short:   "Delete a bundle",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.DeleteBundle(cmd.Context(), userID(), args[0]); err != nil {
			return err
		}
		color.Yellow("✗ Deleted bundle %s", args[0])
		return nil
	},
}

func printBundle(b models.Bundle) {
	fmt.Println(b.Key)
	faint := color.New(color.Faint)
	for _, k := range b.ItemKeys() {
		if qty := b.Data[k]; qty > 0 {
			fmt.Printf("  %s %.0f g\n", padRight(k, 16), qty)
		} else {
			fmt.Printf("  %s %s\n", padRight(k, 16), faint.Sprint("bundle"))
		}
	}
}

func init() {
	bundleCmd.AddCommand(bundleSetCmd, bundleGetCmd, bundleListCmd, bundleDelCmd)
	rootCmd.AddCommand(bundleCmd)
}
