// ABOUTME: CLI commands for body weight records.
// ABOUTME: Provides weight add, list, and del for the configured user.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/myhealth/internal/models"
	"github.com/spf13/cobra"
)

var (
	weightAt   string
	weightFrom string
	weightTo   string
)

var weightCmd = &cobra.Command{
	Use:     "weight",
	Aliases: []string{"w"},
	Short:   "Track body weight",
}

var weightAddCmd = &cobra.Command{
	Use:     "add <kg>",
	Aliases: []string{"a"},
	Short:   "Record a weight measurement",
	Long: `Record a weight in kilograms. A second record at the same timestamp replaces the first.

Examples:
  myhealth weight add 82.5
  myhealth weight add 82.1 --at "2025-01-31 07:30"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid value: %s", args[0])
		}

		w := models.NewWeight(value)
		if weightAt != "" {
			t, err := parseTime(weightAt)
			if err != nil {
				return err
			}
			w.WithTimestamp(t)
		}

		if err := store.SetWeight(cmd.Context(), userID(), w); err != nil {
			return err
		}

		color.Green("✓ Added weight")
		fmt.Printf("  %s %.2f kg\n", color.New(color.Faint).Sprint(formatTime(w.Timestamp)), w.Value)
		return nil
	},
}

var weightListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List weight measurements",
	Long: `List weight measurements in a time window, oldest first.

The window defaults to the last 30 days. Both ends are inclusive.

Examples:
  myhealth weight list
  myhealth weight list --from 2025-01-01 --to 2025-02-01`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := parseWindow(weightFrom, weightTo)
		if err != nil {
			return err
		}

		weights, err := store.GetWeightList(cmd.Context(), userID(), from, to)
		if err != nil {
			if nothingFound(err) {
				return nil
			}
			return err
		}

		faint := color.New(color.Faint)
		for _, w := range weights {
			fmt.Printf("%s %.2f kg\n", faint.Sprint(formatTime(w.Timestamp)), w.Value)
		}
		if len(weights) > 1 {
			delta := weights[len(weights)-1].Value - weights[0].Value
			fmt.Printf("%s %+.2f kg\n", faint.Sprint("change"), delta)
		}
		return nil
	},
}

var weightDelCmd = &cobra.Command{
	Use:     "del <timestamp>",
	Aliases: []string{"delete", "rm"},
	Short:   "Delete the weight recorded at a timestamp",
	Long: `Delete the weight recorded at exactly this timestamp.

Copy the timestamp from 'myhealth weight list'. Deleting a timestamp with no
record is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseTime(args[0])
		if err != nil {
			return err
		}
		if err := store.DeleteWeight(cmd.Context(), userID(), t); err != nil {
			return err
		}
		color.Yellow("✗ Deleted weight at %s", formatTime(t))
		return nil
	},
}

func init() {
	weightAddCmd.Flags().StringVar(&weightAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	weightListCmd.Flags().StringVar(&weightFrom, "from", "", "window start (default 30 days before --to)")
	weightListCmd.Flags().StringVar(&weightTo, "to", "", "window end (default now)")

	weightCmd.AddCommand(weightAddCmd, weightListCmd, weightDelCmd)
	rootCmd.AddCommand(weightCmd)
}
