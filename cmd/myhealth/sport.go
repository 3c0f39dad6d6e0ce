// ABOUTME: CLI commands for the sport catalog and recorded sport activities.
// ABOUTME: Provides sport set|get|list|del and activity add|report|del.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/myhealth/internal/models"
	"github.com/spf13/cobra"
)

var (
	sportComment string
	activityAt   string
	reportFrom   string
	reportTo     string
)

var sportCmd = &cobra.Command{
	Use:   "sport",
	Short: "Manage the sport catalog",
}

var sportSetCmd = &cobra.Command{
	Use:   "set <key> <name>",
	Short: "Create or replace a sport",
	Long: `Create or replace a sport. Renaming a sport keeps its recorded activities.

Examples:
  myhealth sport set pushups "Push-ups"
  myhealth sport set squats Squats --comment "bodyweight"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := &models.Sport{Key: args[0], Name: args[1], Comment: sportComment}
		if err := store.SetSport(cmd.Context(), s); err != nil {
			return err
		}
		color.Green("✓ Saved sport %s", s.Key)
		return nil
	},
}

var sportGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one sport",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.GetSport(cmd.Context(), args[0])
		if err != nil {
			if nothingFound(err) {
				return nil
			}
			return err
		}
		printSport(*s)
		return nil
	},
}

var sportListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List every sport",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sports, err := store.GetSportList(cmd.Context())
		if err != nil {
			if nothingFound(err) {
				return nil
			}
			return err
		}
		for _, s := range sports {
			printSport(s)
		}
		return nil
	},
}

var sportDelCmd = &cobra.Command{
	Use:     "del <key>",
	Aliases: []string{"delete", "rm"},
	Short:   "Delete a sport",
	Long: `Delete a sport. A sport with recorded activities cannot be deleted;
delete those activities first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.DeleteSport(cmd.Context(), args[0]); err != nil {
			return err
		}
		color.Yellow("✗ Deleted sport %s", args[0])
		return nil
	},
}

var activityCmd = &cobra.Command{
	Use:     "activity",
	Aliases: []string{"act"},
	Short:   "Record sets of a sport",
}

var activityAddCmd = &cobra.Command{
	Use:     "add <sport> <set>...",
	Aliases: []string{"a"},
	Short:   "Record an activity",
	Long: `Record the sets you did for a sport. Sets can be separate arguments or comma separated.

Examples:
  myhealth activity add pushups 20 15 12
  myhealth activity add squats 30,30 --at "2025-01-31 18:00"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sets, err := parseSets(args[1:])
		if err != nil {
			return err
		}

		a := models.NewSportActivity(args[0], sets...)
		if activityAt != "" {
			t, err := parseTime(activityAt)
			if err != nil {
				return err
			}
			a.WithTimestamp(t)
		}

		if err := store.SetSportActivity(cmd.Context(), userID(), a); err != nil {
			return err
		}

		color.Green("✓ Added %s", a.SportKey)
		fmt.Printf("  %s %s\n", color.New(color.Faint).Sprint(formatTime(a.Timestamp)), formatSets(a.Sets))
		return nil
	},
}

var activityReportCmd = &cobra.Command{
	Use:     "report",
	Aliases: []string{"ls", "list"},
	Short:   "Show recorded activities",
	Long: `Show recorded activities in a time window ordered by time, then sport name.

The window defaults to the last 30 days. Both ends are inclusive.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, to, err := parseWindow(reportFrom, reportTo)
		if err != nil {
			return err
		}

		report, err := store.GetSportActivityReport(cmd.Context(), userID(), from, to)
		if err != nil {
			if nothingFound(err) {
				return nil
			}
			return err
		}

		faint := color.New(color.Faint)
		totals := make(map[string]int64)
		var names []string
		for _, r := range report {
			fmt.Printf("%s %s %s = %d\n",
				faint.Sprint(formatTime(r.Timestamp)),
				padRight(r.SportName, 16),
				formatSets(r.Sets),
				r.Total())
			if _, ok := totals[r.SportName]; !ok {
				names = append(names, r.SportName)
			}
			totals[r.SportName] += r.Total()
		}

		fmt.Println()
		for _, name := range names {
			fmt.Printf("%s %d\n", padRight(name, 16), totals[name])
		}
		return nil
	},
}

var activityDelCmd = &cobra.Command{
	Use:     "del <sport> <timestamp>",
	Aliases: []string{"delete", "rm"},
	Short:   "Delete an activity",
	Long: `Delete the activity recorded for a sport at exactly this timestamp.

Copy the timestamp from 'myhealth activity report'.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := parseTime(args[1])
		if err != nil {
			return err
		}
		if err := store.DeleteSportActivity(cmd.Context(), userID(), t, args[0]); err != nil {
			return err
		}
		color.Yellow("✗ Deleted %s at %s", args[0], formatTime(t))
		return nil
	},
}

func printSport(s models.Sport) {
	comment := ""
	if s.Comment != "" {
		comment = color.New(color.Faint).Sprintf(" (%s)", truncate(s.Comment, 30))
	}
	fmt.Printf("%s %s%s\n", color.New(color.Faint).Sprint(padRight(s.Key, 16)), s.Name, comment)
}

func formatSets(sets []int64) string {
	parts := make([]string, len(sets))
	for i, s := range sets {
		parts[i] = fmt.Sprint(s)
	}
	return strings.Join(parts, "+")
}

func init() {
	sportSetCmd.Flags().StringVar(&sportComment, "comment", "", "free-form comment")
	sportCmd.AddCommand(sportSetCmd, sportGetCmd, sportListCmd, sportDelCmd)

	activityAddCmd.Flags().StringVar(&activityAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	activityReportCmd.Flags().StringVar(&reportFrom, "from", "", "window start (default 30 days before --to)")
	activityReportCmd.Flags().StringVar(&reportTo, "to", "", "window end (default now)")
	activityCmd.AddCommand(activityAddCmd, activityReportCmd, activityDelCmd)

	rootCmd.AddCommand(sportCmd, activityCmd)
}
