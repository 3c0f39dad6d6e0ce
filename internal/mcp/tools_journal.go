// ABOUTME: MCP tools for the meal journal and the per-day calorie records.
// ABOUTME: Journal entries are keyed by local day and meal.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/myhealth/internal/models"
	"github.com/harperreed/myhealth/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const dayLayout = "2006-01-02"

func (s *Server) registerJournalTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_journal",
		Description: "Record grams of a food eaten at a meal; replaces the amount already recorded for that food",
	}, s.handleAddJournal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_journal_bundle",
		Description: "Record every food of a bundle, including nested bundles, at a meal",
	}, s.handleAddJournalBundle)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_journal",
		Description: "Delete one food from a meal",
	}, s.handleDeleteJournal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_journal_meal",
		Description: "Delete every food recorded at a meal",
	}, s.handleDeleteJournalMeal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_journal_bundle",
		Description: "Delete the foods of a bundle from a meal",
	}, s.handleDeleteJournalBundle)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "copy_journal",
		Description: "Copy every food of one meal into another meal, possibly on another day",
	}, s.handleCopyJournal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "journal_report",
		Description: "Report eaten foods with calories and macros for a range of days (default: today)",
	}, s.handleJournalReport)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "journal_food_stat",
		Description: "Show when and how much of a food was eaten",
	}, s.handleJournalFoodStat)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_day_calories",
		Description: "Show eaten, recorded and burned calories of a day against the calorie limit",
	}, s.handleGetDayCalories)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_day_total_cal",
		Description: "Record the total calories eaten on a day",
	}, s.handleSetDayTotalCal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_total_burned_cal",
		Description: "Record the total calories burned on a day",
	}, s.handleSetTotalBurnedCal)
}

type mealInput struct {
	Date string `json:"date,omitempty" jsonschema:"day (YYYY-MM-DD); defaults to today"`
	Meal string `json:"meal" jsonschema:"breakfast, before-lunch, lunch, snack, before-dinner or dinner"`
}

type addJournalInput struct {
	Date    string  `json:"date,omitempty" jsonschema:"day (YYYY-MM-DD); defaults to today"`
	Meal    string  `json:"meal" jsonschema:"breakfast, before-lunch, lunch, snack, before-dinner or dinner"`
	FoodKey string  `json:"food_key" jsonschema:"key of an existing food"`
	Grams   float64 `json:"grams" jsonschema:"eaten weight in grams"`
}

type journalBundleInput struct {
	Date      string `json:"date,omitempty" jsonschema:"day (YYYY-MM-DD); defaults to today"`
	Meal      string `json:"meal" jsonschema:"breakfast, before-lunch, lunch, snack, before-dinner or dinner"`
	BundleKey string `json:"bundle_key" jsonschema:"key of an existing bundle"`
}

type deleteJournalInput struct {
	Date    string `json:"date,omitempty" jsonschema:"day (YYYY-MM-DD); defaults to today"`
	Meal    string `json:"meal" jsonschema:"breakfast, before-lunch, lunch, snack, before-dinner or dinner"`
	FoodKey string `json:"food_key" jsonschema:"key of the food to remove"`
}

type copyJournalInput struct {
	FromDate string `json:"from_date,omitempty" jsonschema:"source day (YYYY-MM-DD); defaults to today"`
	FromMeal string `json:"from_meal" jsonschema:"source meal"`
	ToDate   string `json:"to_date,omitempty" jsonschema:"target day (YYYY-MM-DD); defaults to today"`
	ToMeal   string `json:"to_meal" jsonschema:"target meal"`
}

type dayRangeInput struct {
	From string `json:"from,omitempty" jsonschema:"first day (YYYY-MM-DD); defaults to today"`
	To   string `json:"to,omitempty" jsonschema:"last day, inclusive; defaults to the first day"`
}

type journalItem struct {
	Date       string  `json:"date"`
	Meal       string  `json:"meal"`
	FoodKey    string  `json:"food_key"`
	FoodName   string  `json:"food_name"`
	FoodBrand  string  `json:"food_brand,omitempty"`
	FoodWeight float64 `json:"food_weight"`
	Cal        float64 `json:"cal"`
	Prot       float64 `json:"prot"`
	Fat        float64 `json:"fat"`
	Carb       float64 `json:"carb"`
}

type journalReportOutput struct {
	Items    []journalItem `json:"items,omitempty"`
	TotalCal float64       `json:"total_cal"`
	Prot     float64       `json:"prot"`
	Fat      float64       `json:"fat"`
	Carb     float64       `json:"carb"`
	Message  string        `json:"message"`
}

type foodStatOutput struct {
	FirstDate   string  `json:"first_date,omitempty"`
	LastDate    string  `json:"last_date,omitempty"`
	TotalWeight float64 `json:"total_weight,omitempty"`
	AvgWeight   float64 `json:"avg_weight,omitempty"`
	TotalCount  int64   `json:"total_count,omitempty"`
	Message     string  `json:"message"`
}

type dayInput struct {
	Date string `json:"date,omitempty" jsonschema:"day (YYYY-MM-DD); defaults to today"`
}

type dayCaloriesInput struct {
	Date string  `json:"date,omitempty" jsonschema:"day (YYYY-MM-DD); defaults to today"`
	Cal  float64 `json:"cal" jsonschema:"calories"`
}

type dayCaloriesOutput struct {
	Date        string   `json:"date"`
	JournalCal  float64  `json:"journal_cal"`
	RecordedCal *float64 `json:"recorded_cal,omitempty"`
	BurnedCal   *float64 `json:"burned_cal,omitempty"`
	CalLimit    *float64 `json:"cal_limit,omitempty"`
	Message     string   `json:"message"`
}

func (s *Server) handleAddJournal(ctx context.Context, req *mcp.CallToolRequest, input addJournalInput) (*mcp.CallToolResult, simpleOutput, error) {
	day, meal, err := parseMealSlot(input.Date, input.Meal)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	j := &models.Journal{Timestamp: day, Meal: meal, FoodKey: input.FoodKey, FoodWeight: input.Grams}
	if err := s.store.SetJournal(ctx, s.userID, j); err != nil {
		return nil, simpleOutput{}, s.toolError("add journal", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Recorded %.0f g of %s for %s on %s", j.FoodWeight, j.FoodKey, meal, formatDay(day)),
	}, nil
}

func (s *Server) handleAddJournalBundle(ctx context.Context, req *mcp.CallToolRequest, input journalBundleInput) (*mcp.CallToolResult, simpleOutput, error) {
	day, meal, err := parseMealSlot(input.Date, input.Meal)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	err = s.store.SetJournalBundle(ctx, s.userID, day, meal, input.BundleKey)
	if storage.IsNothingFound(err) {
		return nil, simpleOutput{}, fmt.Errorf("bundle %q or one of its nested bundles not found", input.BundleKey)
	}
	if err != nil {
		return nil, simpleOutput{}, s.toolError("add journal bundle", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Recorded bundle %s for %s on %s", input.BundleKey, meal, formatDay(day)),
	}, nil
}

func (s *Server) handleDeleteJournal(ctx context.Context, req *mcp.CallToolRequest, input deleteJournalInput) (*mcp.CallToolResult, simpleOutput, error) {
	day, meal, err := parseMealSlot(input.Date, input.Meal)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	if err := s.store.DeleteJournal(ctx, s.userID, day, meal, input.FoodKey); err != nil {
		return nil, simpleOutput{}, s.toolError("delete journal", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted %s from %s on %s", input.FoodKey, meal, formatDay(day))}, nil
}

func (s *Server) handleDeleteJournalMeal(ctx context.Context, req *mcp.CallToolRequest, input mealInput) (*mcp.CallToolResult, simpleOutput, error) {
	day, meal, err := parseMealSlot(input.Date, input.Meal)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	if err := s.store.DeleteJournalMeal(ctx, s.userID, day, meal); err != nil {
		return nil, simpleOutput{}, s.toolError("delete journal meal", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted %s on %s", meal, formatDay(day))}, nil
}

func (s *Server) handleDeleteJournalBundle(ctx context.Context, req *mcp.CallToolRequest, input journalBundleInput) (*mcp.CallToolResult, simpleOutput, error) {
	day, meal, err := parseMealSlot(input.Date, input.Meal)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	err = s.store.DeleteJournalBundle(ctx, s.userID, day, meal, input.BundleKey)
	if storage.IsNothingFound(err) {
		return nil, simpleOutput{}, fmt.Errorf("bundle %q or one of its nested bundles not found", input.BundleKey)
	}
	if err != nil {
		return nil, simpleOutput{}, s.toolError("delete journal bundle", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted bundle %s from %s on %s", input.BundleKey, meal, formatDay(day))}, nil
}

func (s *Server) handleCopyJournal(ctx context.Context, req *mcp.CallToolRequest, input copyJournalInput) (*mcp.CallToolResult, simpleOutput, error) {
	fromDay, fromMeal, err := parseMealSlot(input.FromDate, input.FromMeal)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	toDay, toMeal, err := parseMealSlot(input.ToDate, input.ToMeal)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	n, err := s.store.CopyJournal(ctx, s.userID, fromDay, fromMeal, toDay, toMeal)
	if err != nil {
		return nil, simpleOutput{}, s.toolError("copy journal", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Copied %d foods from %s on %s to %s on %s", n, fromMeal, formatDay(fromDay), toMeal, formatDay(toDay)),
	}, nil
}

func (s *Server) handleJournalReport(ctx context.Context, req *mcp.CallToolRequest, input dayRangeInput) (*mcp.CallToolResult, journalReportOutput, error) {
	from, err := parseDay(input.From)
	if err != nil {
		return nil, journalReportOutput{}, err
	}
	to := from
	if input.To != "" {
		if to, err = parseDay(input.To); err != nil {
			return nil, journalReportOutput{}, err
		}
	}
	if from.After(to) {
		return nil, journalReportOutput{}, fmt.Errorf("first day %s is after last day %s", formatDay(from), formatDay(to))
	}

	report, err := s.store.GetJournalReport(ctx, s.userID, from, to)
	if storage.IsNothingFound(err) {
		return nil, journalReportOutput{Message: "No journal entries found."}, nil
	}
	if err != nil {
		return nil, journalReportOutput{}, s.toolError("journal report", err)
	}

	out := journalReportOutput{}
	out.TotalCal, out.Prot, out.Fat, out.Carb = models.JournalTotals(report)
	for _, r := range report {
		out.Items = append(out.Items, journalItem{
			Date:       formatDay(r.Timestamp),
			Meal:       r.Meal.String(),
			FoodKey:    r.FoodKey,
			FoodName:   r.FoodName,
			FoodBrand:  r.FoodBrand,
			FoodWeight: r.FoodWeight,
			Cal:        r.Cal,
			Prot:       r.Prot,
			Fat:        r.Fat,
			Carb:       r.Carb,
		})
	}
	out.Message = fmt.Sprintf("%d entries, %.0f kcal", len(report), out.TotalCal)
	return nil, out, nil
}

func (s *Server) handleJournalFoodStat(ctx context.Context, req *mcp.CallToolRequest, input keyInput) (*mcp.CallToolResult, foodStatOutput, error) {
	stat, err := s.store.GetJournalFoodStat(ctx, s.userID, input.Key)
	if storage.IsNothingFound(err) {
		return nil, foodStatOutput{Message: fmt.Sprintf("Food %q was never eaten.", input.Key)}, nil
	}
	if err != nil {
		return nil, foodStatOutput{}, s.toolError("journal food stat", err)
	}
	return nil, foodStatOutput{
		FirstDate:   formatDay(stat.FirstTimestamp),
		LastDate:    formatDay(stat.LastTimestamp),
		TotalWeight: stat.TotalWeight,
		AvgWeight:   stat.AvgWeight,
		TotalCount:  stat.TotalCount,
		Message:     fmt.Sprintf("Eaten %d times", stat.TotalCount),
	}, nil
}

func (s *Server) handleGetDayCalories(ctx context.Context, req *mcp.CallToolRequest, input dayInput) (*mcp.CallToolResult, dayCaloriesOutput, error) {
	day, err := parseDay(input.Date)
	if err != nil {
		return nil, dayCaloriesOutput{}, err
	}
	out := dayCaloriesOutput{Date: formatDay(day)}

	report, err := s.store.GetJournalReport(ctx, s.userID, day, day)
	if err != nil && !storage.IsNothingFound(err) {
		return nil, dayCaloriesOutput{}, s.toolError("get day calories", err)
	}
	out.JournalCal, _, _, _ = models.JournalTotals(report)

	if out.RecordedCal, err = optionalCalories(s.store.GetDayTotalCal(ctx, s.userID, day)); err != nil {
		return nil, dayCaloriesOutput{}, s.toolError("get day calories", err)
	}
	if out.BurnedCal, err = optionalCalories(s.store.GetTotalBurnedCal(ctx, s.userID, day)); err != nil {
		return nil, dayCaloriesOutput{}, s.toolError("get day calories", err)
	}

	us, err := s.store.GetUserSettings(ctx, s.userID)
	switch {
	case err == nil:
		out.CalLimit = &us.CalLimit
	case !storage.IsNothingFound(err):
		return nil, dayCaloriesOutput{}, s.toolError("get day calories", err)
	}

	out.Message = fmt.Sprintf("%.0f kcal eaten on %s", out.JournalCal, out.Date)
	if out.CalLimit != nil {
		out.Message += fmt.Sprintf(" of %.0f", *out.CalLimit)
	}
	return nil, out, nil
}

func (s *Server) handleSetDayTotalCal(ctx context.Context, req *mcp.CallToolRequest, input dayCaloriesInput) (*mcp.CallToolResult, simpleOutput, error) {
	day, err := parseDay(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.store.SetDayTotalCal(ctx, s.userID, day, input.Cal); err != nil {
		return nil, simpleOutput{}, s.toolError("set day total cal", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Recorded %.0f kcal eaten on %s", input.Cal, formatDay(day))}, nil
}

func (s *Server) handleSetTotalBurnedCal(ctx context.Context, req *mcp.CallToolRequest, input dayCaloriesInput) (*mcp.CallToolResult, simpleOutput, error) {
	day, err := parseDay(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.store.SetTotalBurnedCal(ctx, s.userID, day, input.Cal); err != nil {
		return nil, simpleOutput{}, s.toolError("set total burned cal", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Recorded %.0f kcal burned on %s", input.Cal, formatDay(day))}, nil
}

// optionalCalories maps a missing record to nil.
func optionalCalories(cal float64, err error) (*float64, error) {
	if storage.IsNothingFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cal, nil
}

// parseDay returns local midnight of the given day, or of today when s is empty.
func parseDay(s string) (time.Time, error) {
	if s == "" {
		return models.StartOfDay(time.Now()), nil
	}
	t, err := parseTimestamp(s)
	if err != nil {
		return time.Time{}, err
	}
	return models.StartOfDay(t), nil
}

func parseMealSlot(date, mealName string) (time.Time, models.Meal, error) {
	day, err := parseDay(date)
	if err != nil {
		return time.Time{}, 0, err
	}
	meal, err := models.ParseMeal(mealName)
	if err != nil {
		return time.Time{}, 0, err
	}
	return day, meal, nil
}

func formatDay(t time.Time) string {
	return t.Local().Format(dayLayout)
}
