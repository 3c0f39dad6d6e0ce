// ABOUTME: CLI commands for per-user settings.
// ABOUTME: Provides settings get and settings set <cal-limit>.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/harperreed/myhealth/internal/models"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change your settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show your settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		us, err := store.GetUserSettings(cmd.Context(), userID())
		if err != nil {
			if nothingFound(err) {
				return nil
			}
			return err
		}
		fmt.Printf("Calorie limit: %.0f kcal\n", us.CalLimit)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <cal-limit>",
	Short: "Set your daily calorie limit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid calorie limit: %s", args[0])
		}
		if err := store.SetUserSettings(cmd.Context(), userID(), &models.UserSettings{CalLimit: limit}); err != nil {
			return err
		}
		color.Green("✓ Calorie limit set to %.0f kcal", limit)
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
