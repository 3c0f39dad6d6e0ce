// ABOUTME: CLI commands for the global food catalog.
// ABOUTME: Provides food set, get, list, find, and del.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/myhealth/internal/models"
	"github.com/spf13/cobra"
)

var foodFlags models.Food

var foodCmd = &cobra.Command{
	Use:     "food",
	Aliases: []string{"f"},
	Short:   "Manage the food catalog",
	Long: `Manage the food catalog. Foods are shared by every user and carry
calories, protein, fat and carbohydrates per 100 grams.`,
}

var foodSetCmd = &cobra.Command{
	Use:   "set <key> <name>",
	Short: "Create or replace a food",
	Long: `Create or replace a food. Setting an existing key replaces every field.

Examples:
  myhealth food set oats "Rolled oats" --cal 370 --prot 13 --fat 7 --carb 60
  myhealth food set syrok "Сырок Дружба" --brand Karat --cal 350`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := foodFlags
		f.Key, f.Name = args[0], args[1]

		if err := store.SetFood(cmd.Context(), &f); err != nil {
			return err
		}

		color.Green("✓ Saved food %s", f.Key)
		printFood(f)
		return nil
	},
}

var foodGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := store.GetFood(cmd.Context(), args[0])
		if err != nil {
			if nothingFound(err) {
				return nil
			}
			return err
		}
		printFood(*f)
		if f.Comment != "" {
			fmt.Printf("  %s\n", color.New(color.Faint).Sprint(f.Comment))
		}
		return nil
	},
}

var foodListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List every food",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		foods, err := store.GetFoodList(cmd.Context())
		if err != nil {
			if nothingFound(err) {
				return nil
			}
			return err
		}
		for _, f := range foods {
			printFood(f)
		}
		return nil
	},
}

var foodFindCmd = &cobra.Command{
	Use:   "find <text>",
	Short: "Search foods by key, name, brand or comment",
	Long: `Search foods by key, name, brand or comment. Matching ignores case,
including for non-Latin scripts.

Examples:
  myhealth food find oat
  myhealth food find дружба`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		foods, err := store.FindFood(cmd.Context(), args[0])
		if err != nil {
			if nothingFound(err) {
				return nil
			}
			return err
		}
		for _, f := range foods {
			printFood(f)
		}
		return nil
	},
}

var foodDelCmd = &cobra.Command{
	Use:     "del <key>",
	Aliases: []string{"delete", "rm"},
	Short:   "Delete a food",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := store.DeleteFood(cmd.Context(), args[0]); err != nil {
			return err
		}
		color.Yellow("✗ Deleted food %s", args[0])
		return nil
	},
}

func printFood(f models.Food) {
	name := f.Name
	if f.Brand != "" {
		name = fmt.Sprintf("%s (%s)", f.Name, f.Brand)
	}
	fmt.Printf("%s %s %6.1f kcal  P %.1f  F %.1f  C %.1f\n",
		color.New(color.Faint).Sprint(padRight(f.Key, 16)),
		padRight(truncate(name, 32), 32),
		f.Cal100, f.Prot100, f.Fat100, f.Carb100)
}

func init() {
	flags := foodSetCmd.Flags()
	flags.StringVar(&foodFlags.Brand, "brand", "", "brand or maker")
	flags.Float64Var(&foodFlags.Cal100, "cal", 0, "calories per 100g")
	flags.Float64Var(&foodFlags.Prot100, "prot", 0, "protein grams per 100g")
	flags.Float64Var(&foodFlags.Fat100, "fat", 0, "fat grams per 100g")
	flags.Float64Var(&foodFlags.Carb100, "carb", 0, "carbohydrate grams per 100g")
	flags.StringVar(&foodFlags.Comment, "comment", "", "free-form comment")

	foodCmd.AddCommand(foodSetCmd, foodGetCmd, foodListCmd, foodFindCmd, foodDelCmd)
	rootCmd.AddCommand(foodCmd)
}
