// ABOUTME: CLI commands for the meal journal.
// ABOUTME: Provides journal add, bundle, del, del-meal, del-bundle, copy, report, and stat.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/myhealth/internal/models"
	"github.com/spf13/cobra"
)

var (
	journalDate   string
	journalToDate string
	journalFrom   string
	journalTo     string
)

var journalCmd = &cobra.Command{
	Use:     "journal",
	Aliases: []string{"j"},
	Short:   "Record what you ate",
	Long: `Record food portions per day and meal.

Meals: breakfast, before-lunch, lunch, snack, before-dinner, dinner.
Days default to today.`,
}

var journalAddCmd = &cobra.Command{
	Use:   "add <meal> <food> <grams>",
	Short: "Add or replace a food portion",
	Long: `Add a food portion to a meal. Adding the same food to the same meal
again replaces the earlier weight.

Examples:
  myhealth journal add breakfast oats 60
  myhealth journal add dinner rice 150 --date 2025-01-31`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, meal, err := parseMealSlot(journalDate, args[0])
		if err != nil {
			return err
		}
		grams, err := strconv.ParseFloat(args[2], 64)
		if err != nil {
			return fmt.Errorf("invalid weight: %s", args[2])
		}

		j := &models.Journal{Timestamp: day, Meal: meal, FoodKey: args[1], FoodWeight: grams}
		if err := store.SetJournal(cmd.Context(), userID(), j); err != nil {
			return err
		}
		color.Green("✓ Added %.0f g of %s to %s on %s", grams, args[1], meal, formatDay(day))
		return nil
	},
}

var journalBundleCmd = &cobra.Command{
	Use:   "bundle <meal> <bundle>",
	Short: "Add every food of a bundle to a meal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, meal, err := parseMealSlot(journalDate, args[0])
		if err != nil {
			return err
		}
		if err := store.SetJournalBundle(cmd.Context(), userID(), day, meal, args[1]); err != nil {
			return err
		}
		color.Green("✓ Added bundle %s to %s on %s", args[1], meal, formatDay(day))
		return nil
	},
}

var journalDelCmd = &cobra.Command{
	Use:     "del <meal> <food>",
	Aliases: []string{"delete", "rm"},
	Short:   "Remove a food portion from a meal",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, meal, err := parseMealSlot(journalDate, args[0])
		if err != nil {
			return err
		}
		if err := store.DeleteJournal(cmd.Context(), userID(), day, meal, args[1]); err != nil {
			return err
		}
		color.Yellow("✗ Deleted %s from %s on %s", args[1], meal, formatDay(day))
		return nil
	},
}

var journalDelMealCmd = &cobra.Command{
	Use:   "del-meal <meal>",
	Short: "Remove every portion of a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, meal, err := parseMealSlot(journalDate, args[0])
		if err != nil {
			return err
		}
		if err := store.DeleteJournalMeal(cmd.Context(), userID(), day, meal); err != nil {
			return err
		}
		color.Yellow("✗ Deleted %s on %s", meal, formatDay(day))
		return nil
	},
}

var journalDelBundleCmd = &cobra.Command{
	Use:   "del-bundle <meal> <bundle>",
	Short: "Remove the foods of a bundle from a meal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, meal, err := parseMealSlot(journalDate, args[0])
		if err != nil {
			return err
		}
		if err := store.DeleteJournalBundle(cmd.Context(), userID(), day, meal, args[1]); err != nil {
			return err
		}
		color.Yellow("✗ Deleted bundle %s from %s on %s", args[1], meal, formatDay(day))
		return nil
	},
}

var journalCopyCmd = &cobra.Command{
	Use:   "copy <from-meal> <to-meal>",
	Short: "Copy a meal to another meal or day",
	Long: `Copy every portion of a meal. --date picks the source day and --to-date
the target day; both default to today.

Examples:
  myhealth journal copy breakfast breakfast --date 2025-01-30 --to-date 2025-01-31`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, mealFrom, err := parseMealSlot(journalDate, args[0])
		if err != nil {
			return err
		}
		to, mealTo, err := parseMealSlot(journalToDate, args[1])
		if err != nil {
			return err
		}

		n, err := store.CopyJournal(cmd.Context(), userID(), from, mealFrom, to, mealTo)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("Nothing found.")
			return nil
		}
		color.Green("✓ Copied %d foods to %s on %s", n, mealTo, formatDay(to))
		return nil
	},
}

var journalReportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"ls", "list"},
	Short:   "Show what you ate",
	Long: `Show journal portions with calories and macros scaled to the weight.

--from defaults to today and --to defaults to --from. Both days are inclusive.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseDay(journalFrom)
		if err != nil {
			return err
		}
		to := from
		if journalTo != "" {
			if to, err = parseDay(journalTo); err != nil {
				return err
			}
		}
		if from.After(to) {
			return fmt.Errorf("--from %s is after --to %s", formatDay(from), formatDay(to))
		}

		report, err := store.GetJournalReport(cmd.Context(), userID(), from, to)
		if err != nil {
			if nothingFound(err) {
				return nil
			}
			return err
		}

		faint := color.New(color.Faint)
		var last string
		for _, r := range report {
			slot := formatDay(r.Timestamp) + " " + r.Meal.String()
			if slot != last {
				fmt.Println(slot)
				last = slot
			}
			fmt.Printf("  %s %s %6.0f g %6.0f kcal %s\n",
				padRight(truncate(r.FoodName, 24), 24),
				faint.Sprint(padRight(truncate(r.FoodBrand, 12), 12)),
				r.FoodWeight,
				r.Cal,
				faint.Sprintf("p %.1f f %.1f c %.1f", r.Prot, r.Fat, r.Carb))
		}

		cal, prot, fat, carb := models.JournalTotals(report)
		fmt.Println()
		fmt.Printf("Total: %.0f kcal, p %.1f f %.1f c %.1f", cal, prot, fat, carb)
		if us, err := store.GetUserSettings(cmd.Context(), userID()); err == nil && from.Equal(to) {
			fmt.Printf(" of %.0f kcal", us.CalLimit)
		}
		fmt.Println()
		return nil
	},
}

var journalStatCmd = &cobra.Command{
	Use:   "stat <food>",
	Short: "Show how often you ate a food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stat, err := store.GetJournalFoodStat(cmd.Context(), userID(), args[0])
		if err != nil {
			if nothingFound(err) {
				return nil
			}
			return err
		}
		fmt.Printf("First eaten: %s\n", formatDay(stat.FirstTimestamp))
		fmt.Printf("Last eaten:  %s\n", formatDay(stat.LastTimestamp))
		fmt.Printf("Portions:    %d\n", stat.TotalCount)
		fmt.Printf("Total:       %.0f g\n", stat.TotalWeight)
		fmt.Printf("Average:     %.0f g\n", stat.AvgWeight)
		return nil
	},
}

const dayLayout = "2006-01-02"

// parseDay returns the start of the day s falls on; empty means today.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return models.StartOfDay(time.Now().In(loc)), nil
	}
	t, err := parseTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return models.StartOfDay(t.In(loc)), nil
}

func parseMealSlot(date, mealName string) (time.Time, models.Meal, error) {
	meal, err := models.ParseMeal(mealName)
	if err != nil {
		return time.Time{}, 0, err
	}
	day, err := parseDay(date)
	if err != nil {
		return time.Time{}, 0, err
	}
	return day, meal, nil
}

func formatDay(t time.Time) string {
	return t.In(loc).Format(dayLayout)
}

func init() {
	for _, c := range []*cobra.Command{
		journalAddCmd, journalBundleCmd, journalDelCmd, journalDelMealCmd, journalDelBundleCmd, journalCopyCmd,
	} {
		c.Flags().StringVar(&journalDate, "date", "", "day (YYYY-MM-DD, default today)")
	}
	journalCopyCmd.Flags().StringVar(&journalToDate, "to-date", "", "target day (YYYY-MM-DD, default today)")
	journalReportCmd.Flags().StringVar(&journalFrom, "from", "", "first day (default today)")
	journalReportCmd.Flags().StringVar(&journalTo, "to", "", "last day (default --from)")

	journalCmd.AddCommand(journalAddCmd, journalBundleCmd, journalDelCmd, journalDelMealCmd,
		journalDelBundleCmd, journalCopyCmd, journalReportCmd, journalStatCmd)
	rootCmd.AddCommand(journalCmd)
}
