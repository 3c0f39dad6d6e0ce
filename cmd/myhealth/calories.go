// ABOUTME: CLI commands for per-day calorie totals recorded by hand.
// ABOUTME: Provides calories get, set, and del; --burned switches to burned calories.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/myhealth/internal/models"
	"github.com/harperreed/myhealth/internal/storage"
	"github.com/spf13/cobra"
)

var (
	caloriesDate   string
	caloriesBurned bool
)

var caloriesCmd = &cobra.Command{
	Use:     "calories",
	Aliases: []string{"cal"},
	Short:   "Show or record daily calorie totals",
}

var caloriesGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the calories of a day",
	Long: `Show the calories summed from the journal next to the totals recorded
by hand and the daily limit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay(caloriesDate)
		if err != nil {
			return err
		}
		ctx, user := cmd.Context(), userID()

		var eaten float64
		report, err := store.GetJournalReport(ctx, user, day, day)
		switch {
		case err == nil:
			eaten, _, _, _ = models.JournalTotals(report)
		case !storage.IsNothingFound(err):
			return err
		}

		fmt.Printf("Day:      %s\n", formatDay(day))
		fmt.Printf("Journal:  %.0f kcal\n", eaten)
		for _, line := range []struct {
			label string
			get   func() (float64, error)
		}{
			{"Recorded", func() (float64, error) { return store.GetDayTotalCal(ctx, user, day) }},
			{"Burned", func() (float64, error) { return store.GetTotalBurnedCal(ctx, user, day) }},
		} {
			cal, err := line.get()
			if storage.IsNothingFound(err) {
				continue
			}
			if err != nil {
				return err
			}
			fmt.Printf("%-9s %.0f kcal\n", line.label+":", cal)
		}

		us, err := store.GetUserSettings(ctx, user)
		if storage.IsNothingFound(err) {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Printf("Limit:    %.0f kcal\n", us.CalLimit)
		return nil
	},
}

var caloriesSetCmd = &cobra.Command{
	Use:   "set <kcal>",
	Short: "Record the calories of a day",
	Long: `Record the calories eaten on a day, or burned with --burned. A second
set for the same day replaces the first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay(caloriesDate)
		if err != nil {
			return err
		}
		cal, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid calories: %s", args[0])
		}

		set, what := store.SetDayTotalCal, "eaten"
		if caloriesBurned {
			set, what = store.SetTotalBurnedCal, "burned"
		}
		if err := set(cmd.Context(), userID(), day, cal); err != nil {
			return err
		}
		color.Green("✓ Recorded %.0f kcal %s on %s", cal, what, formatDay(day))
		return nil
	},
}

var caloriesDelCmd = &cobra.Command{
	Use:     "del",
	Aliases: []string{"delete", "rm"},
	Short:   "Remove the calories recorded for a day",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := parseDay(caloriesDate)
		if err != nil {
			return err
		}

		del, what := store.DeleteDayTotalCal, "eaten"
		if caloriesBurned {
			del, what = store.DeleteTotalBurnedCal, "burned"
		}
		if err := del(cmd.Context(), userID(), day); err != nil {
			return err
		}
		color.Yellow("✗ Deleted %s calories on %s", what, formatDay(day))
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{caloriesGetCmd, caloriesSetCmd, caloriesDelCmd} {
		c.Flags().StringVar(&caloriesDate, "date", "", "day (YYYY-MM-DD, default today)")
	}
	caloriesSetCmd.Flags().BoolVar(&caloriesBurned, "burned", false, "burned instead of eaten calories")
	caloriesDelCmd.Flags().BoolVar(&caloriesBurned, "burned", false, "burned instead of eaten calories")

	caloriesCmd.AddCommand(caloriesGetCmd, caloriesSetCmd, caloriesDelCmd)
	rootCmd.AddCommand(caloriesCmd)
}
