// ABOUTME: MCP tool implementations for myhealth.
// ABOUTME: Exposes weight, food, sport, activity, settings and bundle operations.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/myhealth/internal/models"
	"github.com/harperreed/myhealth/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// defaultWindow is how far back list and report tools look without a "from".
const defaultWindow = 30 * 24 * time.Hour

// timestampLayout is RFC 3339 with milliseconds, the precision records are stored at.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func (s *Server) registerTools() {
	// Weight
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_weight",
		Description: "Record body weight in kilograms; replaces any value at the same timestamp",
	}, s.handleSetWeight)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_weight",
		Description: "List body weight measurements in a time window (default: last 30 days)",
	}, s.handleListWeight)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_weight",
		Description: "Delete the weight measurement at an exact timestamp",
	}, s.handleDeleteWeight)

	// Food
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_food",
		Description: "Get a food catalog entry by key",
	}, s.handleGetFood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "find_food",
		Description: "Search foods by name, brand or comment, ignoring case",
	}, s.handleFindFood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_food",
		Description: "Create or replace a food catalog entry (macros per 100g)",
	}, s.handleSetFood)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_food",
		Description: "Delete a food catalog entry",
	}, s.handleDeleteFood)

	// Sport
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_sport",
		Description: "Get a sport catalog entry by key",
	}, s.handleGetSport)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_sports",
		Description: "List all sports in the catalog",
	}, s.handleListSports)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_sport",
		Description: "Create or replace a sport catalog entry",
	}, s.handleSetSport)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_sport",
		Description: "Delete a sport; fails while activities still reference it",
	}, s.handleDeleteSport)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_sport_activity",
		Description: "Record sets (e.g. repetitions) done for a sport",
	}, s.handleAddSportActivity)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_sport_activity",
		Description: "Delete the activity recorded for a sport at an exact timestamp",
	}, s.handleDeleteSportActivity)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "sport_activity_report",
		Description: "Report sport activities in a time window, oldest first (default: last 30 days)",
	}, s.handleSportActivityReport)

	// Settings and bundles
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_user_settings",
		Description: "Get the daily calorie limit",
	}, s.handleGetUserSettings)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_user_settings",
		Description: "Set the daily calorie limit",
	}, s.handleSetUserSettings)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_bundle",
		Description: "Get a meal bundle by key",
	}, s.handleGetBundle)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_bundles",
		Description: "List meal bundles with their item quantities",
	}, s.handleListBundles)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_bundle",
		Description: "Create or replace a meal bundle; grams per food key, 0 for a nested bundle key",
	}, s.handleSetBundle)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_bundle",
		Description: "Delete a meal bundle",
	}, s.handleDeleteBundle)

	s.registerJournalTools()
}

// Tool input/output types

type simpleOutput struct {
	Message string `json:"message"`
}

type setWeightInput struct {
	Value     float64 `json:"value" jsonschema:"the weight value in kilograms"`
	Timestamp string  `json:"timestamp,omitempty" jsonschema:"timestamp (RFC 3339, YYYY-MM-DD HH:MM or YYYY-MM-DD); defaults to now"`
}

type windowInput struct {
	From string `json:"from,omitempty" jsonschema:"window start (RFC 3339, YYYY-MM-DD HH:MM or YYYY-MM-DD)"`
	To   string `json:"to,omitempty" jsonschema:"window end, inclusive; defaults to now"`
}

type weightItem struct {
	Timestamp string  `json:"timestamp"`
	Value     float64 `json:"value"`
}

type weightListOutput struct {
	Weights []weightItem `json:"weights,omitempty"`
	Message string       `json:"message"`
}

type timestampInput struct {
	Timestamp string `json:"timestamp" jsonschema:"exact timestamp of the record"`
}

type keyInput struct {
	Key string `json:"key" jsonschema:"catalog key"`
}

type findFoodInput struct {
	Query string `json:"query" jsonschema:"text to look for in name, brand or comment"`
}

type foodOutput struct {
	Food    *models.Food `json:"food,omitempty"`
	Message string       `json:"message"`
}

type foodListOutput struct {
	Foods   []models.Food `json:"foods,omitempty"`
	Message string        `json:"message"`
}

type setFoodInput struct {
	Key     string  `json:"key" jsonschema:"unique food key"`
	Name    string  `json:"name" jsonschema:"display name"`
	Brand   string  `json:"brand,omitempty" jsonschema:"brand or maker"`
	Cal100  float64 `json:"cal100,omitempty" jsonschema:"calories per 100g"`
	Prot100 float64 `json:"prot100,omitempty" jsonschema:"protein grams per 100g"`
	Fat100  float64 `json:"fat100,omitempty" jsonschema:"fat grams per 100g"`
	Carb100 float64 `json:"carb100,omitempty" jsonschema:"carbohydrate grams per 100g"`
	Comment string  `json:"comment,omitempty" jsonschema:"free-form comment"`
}

type sportOutput struct {
	Sport   *models.Sport `json:"sport,omitempty"`
	Message string        `json:"message"`
}

type sportListOutput struct {
	Sports  []models.Sport `json:"sports,omitempty"`
	Message string         `json:"message"`
}

type setSportInput struct {
	Key     string `json:"key" jsonschema:"unique sport key"`
	Name    string `json:"name" jsonschema:"display name"`
	Comment string `json:"comment,omitempty" jsonschema:"free-form comment"`
}

type addSportActivityInput struct {
	SportKey  string  `json:"sport_key" jsonschema:"key of an existing sport"`
	Sets      []int64 `json:"sets" jsonschema:"count per set, e.g. [10, 12, 8]"`
	Timestamp string  `json:"timestamp,omitempty" jsonschema:"when it happened; defaults to now"`
}

type deleteSportActivityInput struct {
	SportKey  string `json:"sport_key" jsonschema:"key of the sport"`
	Timestamp string `json:"timestamp" jsonschema:"exact timestamp of the activity"`
}

type reportItem struct {
	SportName string  `json:"sport_name"`
	Timestamp string  `json:"timestamp"`
	Sets      []int64 `json:"sets"`
	Total     int64   `json:"total"`
}

type reportOutput struct {
	Activities []reportItem `json:"activities,omitempty"`
	Message    string       `json:"message"`
}

type noInput struct{}

type settingsOutput struct {
	CalLimit float64 `json:"cal_limit,omitempty"`
	Message  string  `json:"message"`
}

type setUserSettingsInput struct {
	CalLimit float64 `json:"cal_limit" jsonschema:"daily calorie limit"`
}

type bundleOutput struct {
	Bundle  *models.Bundle `json:"bundle,omitempty"`
	Message string         `json:"message"`
}

type setBundleInput struct {
	Key   string             `json:"key" jsonschema:"bundle key"`
	Items map[string]float64 `json:"items" jsonschema:"grams per food key; 0 marks a nested bundle key"`
}

type bundleListOutput struct {
	Bundles []models.Bundle `json:"bundles,omitempty"`
	Message string          `json:"message"`
}

// Tool handlers

func (s *Server) handleSetWeight(ctx context.Context, req *mcp.CallToolRequest, input setWeightInput) (*mcp.CallToolResult, weightItem, error) {
	w := models.NewWeight(input.Value)
	if input.Timestamp != "" {
		t, err := parseTimestamp(input.Timestamp)
		if err != nil {
			return nil, weightItem{}, err
		}
		w.WithTimestamp(t)
	}

	if err := s.store.SetWeight(ctx, s.userID, w); err != nil {
		return nil, weightItem{}, s.toolError("set weight", err)
	}

	return nil, weightItem{Timestamp: formatTimestamp(w.Timestamp), Value: w.Value}, nil
}

func (s *Server) handleListWeight(ctx context.Context, req *mcp.CallToolRequest, input windowInput) (*mcp.CallToolResult, weightListOutput, error) {
	from, to, err := parseWindow(input)
	if err != nil {
		return nil, weightListOutput{}, err
	}

	weights, err := s.store.GetWeightList(ctx, s.userID, from, to)
	if storage.IsNothingFound(err) {
		return nil, weightListOutput{Message: "No weight records found."}, nil
	}
	if err != nil {
		return nil, weightListOutput{}, s.toolError("list weight", err)
	}

	out := weightListOutput{Message: fmt.Sprintf("%d weight records", len(weights))}
	for _, w := range weights {
		out.Weights = append(out.Weights, weightItem{Timestamp: formatTimestamp(w.Timestamp), Value: w.Value})
	}
	return nil, out, nil
}

func (s *Server) handleDeleteWeight(ctx context.Context, req *mcp.CallToolRequest, input timestampInput) (*mcp.CallToolResult, simpleOutput, error) {
	t, err := parseTimestamp(input.Timestamp)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	if err := s.store.DeleteWeight(ctx, s.userID, t); err != nil {
		return nil, simpleOutput{}, s.toolError("delete weight", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted weight at %s", formatTimestamp(t))}, nil
}

func (s *Server) handleGetFood(ctx context.Context, req *mcp.CallToolRequest, input keyInput) (*mcp.CallToolResult, foodOutput, error) {
	f, err := s.store.GetFood(ctx, input.Key)
	if storage.IsNothingFound(err) {
		return nil, foodOutput{Message: fmt.Sprintf("Food %q not found.", input.Key)}, nil
	}
	if err != nil {
		return nil, foodOutput{}, s.toolError("get food", err)
	}
	return nil, foodOutput{Food: f, Message: f.Name}, nil
}

func (s *Server) handleFindFood(ctx context.Context, req *mcp.CallToolRequest, input findFoodInput) (*mcp.CallToolResult, foodListOutput, error) {
	foods, err := s.store.FindFood(ctx, input.Query)
	if storage.IsNothingFound(err) {
		return nil, foodListOutput{Message: "No foods found."}, nil
	}
	if err != nil {
		return nil, foodListOutput{}, s.toolError("find food", err)
	}
	return nil, foodListOutput{Foods: foods, Message: fmt.Sprintf("%d foods found", len(foods))}, nil
}

func (s *Server) handleSetFood(ctx context.Context, req *mcp.CallToolRequest, input setFoodInput) (*mcp.CallToolResult, simpleOutput, error) {
	f := &models.Food{
		Key:     input.Key,
		Name:    input.Name,
		Brand:   input.Brand,
		Cal100:  input.Cal100,
		Prot100: input.Prot100,
		Fat100:  input.Fat100,
		Carb100: input.Carb100,
		Comment: input.Comment,
	}
	if err := s.store.SetFood(ctx, f); err != nil {
		return nil, simpleOutput{}, s.toolError("set food", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Saved food %s", f.Key)}, nil
}

func (s *Server) handleDeleteFood(ctx context.Context, req *mcp.CallToolRequest, input keyInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.store.DeleteFood(ctx, input.Key); err != nil {
		return nil, simpleOutput{}, s.toolError("delete food", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted food %s", input.Key)}, nil
}

func (s *Server) handleGetSport(ctx context.Context, req *mcp.CallToolRequest, input keyInput) (*mcp.CallToolResult, sportOutput, error) {
	sp, err := s.store.GetSport(ctx, input.Key)
	if storage.IsNothingFound(err) {
		return nil, sportOutput{Message: fmt.Sprintf("Sport %q not found.", input.Key)}, nil
	}
	if err != nil {
		return nil, sportOutput{}, s.toolError("get sport", err)
	}
	return nil, sportOutput{Sport: sp, Message: sp.Name}, nil
}

func (s *Server) handleListSports(ctx context.Context, req *mcp.CallToolRequest, input noInput) (*mcp.CallToolResult, sportListOutput, error) {
	sports, err := s.store.GetSportList(ctx)
	if storage.IsNothingFound(err) {
		return nil, sportListOutput{Message: "No sports found."}, nil
	}
	if err != nil {
		return nil, sportListOutput{}, s.toolError("list sports", err)
	}
	return nil, sportListOutput{Sports: sports, Message: fmt.Sprintf("%d sports", len(sports))}, nil
}

func (s *Server) handleSetSport(ctx context.Context, req *mcp.CallToolRequest, input setSportInput) (*mcp.CallToolResult, simpleOutput, error) {
	sp := &models.Sport{Key: input.Key, Name: input.Name, Comment: input.Comment}
	if err := s.store.SetSport(ctx, sp); err != nil {
		return nil, simpleOutput{}, s.toolError("set sport", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Saved sport %s", sp.Key)}, nil
}

func (s *Server) handleDeleteSport(ctx context.Context, req *mcp.CallToolRequest, input keyInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.store.DeleteSport(ctx, input.Key); err != nil {
		return nil, simpleOutput{}, s.toolError("delete sport", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted sport %s", input.Key)}, nil
}

func (s *Server) handleAddSportActivity(ctx context.Context, req *mcp.CallToolRequest, input addSportActivityInput) (*mcp.CallToolResult, simpleOutput, error) {
	a := models.NewSportActivity(input.SportKey, input.Sets...)
	if input.Timestamp != "" {
		t, err := parseTimestamp(input.Timestamp)
		if err != nil {
			return nil, simpleOutput{}, err
		}
		a.WithTimestamp(t)
	}

	if err := s.store.SetSportActivity(ctx, s.userID, a); err != nil {
		return nil, simpleOutput{}, s.toolError("add sport activity", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Recorded %d sets of %s at %s", len(a.Sets), a.SportKey, formatTimestamp(a.Timestamp)),
	}, nil
}

func (s *Server) handleDeleteSportActivity(ctx context.Context, req *mcp.CallToolRequest, input deleteSportActivityInput) (*mcp.CallToolResult, simpleOutput, error) {
	t, err := parseTimestamp(input.Timestamp)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	if err := s.store.DeleteSportActivity(ctx, s.userID, t, input.SportKey); err != nil {
		return nil, simpleOutput{}, s.toolError("delete sport activity", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted %s activity at %s", input.SportKey, formatTimestamp(t))}, nil
}

func (s *Server) handleSportActivityReport(ctx context.Context, req *mcp.CallToolRequest, input windowInput) (*mcp.CallToolResult, reportOutput, error) {
	from, to, err := parseWindow(input)
	if err != nil {
		return nil, reportOutput{}, err
	}

	report, err := s.store.GetSportActivityReport(ctx, s.userID, from, to)
	if storage.IsNothingFound(err) {
		return nil, reportOutput{Message: "No sport activities found."}, nil
	}
	if err != nil {
		return nil, reportOutput{}, s.toolError("sport activity report", err)
	}

	out := reportOutput{Message: fmt.Sprintf("%d activities", len(report))}
	for _, r := range report {
		out.Activities = append(out.Activities, reportItem{
			SportName: r.SportName,
			Timestamp: formatTimestamp(r.Timestamp),
			Sets:      r.Sets,
			Total:     r.Total(),
		})
	}
	return nil, out, nil
}

func (s *Server) handleGetUserSettings(ctx context.Context, req *mcp.CallToolRequest, input noInput) (*mcp.CallToolResult, settingsOutput, error) {
	us, err := s.store.GetUserSettings(ctx, s.userID)
	if storage.IsNothingFound(err) {
		return nil, settingsOutput{Message: "No settings saved yet."}, nil
	}
	if err != nil {
		return nil, settingsOutput{}, s.toolError("get user settings", err)
	}
	return nil, settingsOutput{CalLimit: us.CalLimit, Message: fmt.Sprintf("Calorie limit: %.0f", us.CalLimit)}, nil
}

func (s *Server) handleSetUserSettings(ctx context.Context, req *mcp.CallToolRequest, input setUserSettingsInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.store.SetUserSettings(ctx, s.userID, &models.UserSettings{CalLimit: input.CalLimit}); err != nil {
		return nil, simpleOutput{}, s.toolError("set user settings", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Calorie limit set to %.0f", input.CalLimit)}, nil
}

func (s *Server) handleGetBundle(ctx context.Context, req *mcp.CallToolRequest, input keyInput) (*mcp.CallToolResult, bundleOutput, error) {
	b, err := s.store.GetBundle(ctx, s.userID, input.Key)
	if storage.IsNothingFound(err) {
		return nil, bundleOutput{Message: fmt.Sprintf("Bundle %q not found.", input.Key)}, nil
	}
	if err != nil {
		return nil, bundleOutput{}, s.toolError("get bundle", err)
	}
	return nil, bundleOutput{Bundle: b, Message: fmt.Sprintf("%d items", len(b.Data))}, nil
}

func (s *Server) handleSetBundle(ctx context.Context, req *mcp.CallToolRequest, input setBundleInput) (*mcp.CallToolResult, simpleOutput, error) {
	b := &models.Bundle{Key: input.Key, Data: input.Items}
	if err := s.store.SetBundle(ctx, s.userID, b); err != nil {
		return nil, simpleOutput{}, s.toolError("set bundle", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Saved bundle %s with %d items", b.Key, len(b.Data))}, nil
}

func (s *Server) handleDeleteBundle(ctx context.Context, req *mcp.CallToolRequest, input keyInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.store.DeleteBundle(ctx, s.userID, input.Key); err != nil {
		return nil, simpleOutput{}, s.toolError("delete bundle", err)
	}
	return nil, simpleOutput{Message: fmt.Sprintf("Deleted bundle %s", input.Key)}, nil
}

func (s *Server) handleListBundles(ctx context.Context, req *mcp.CallToolRequest, input noInput) (*mcp.CallToolResult, bundleListOutput, error) {
	bundles, err := s.store.GetBundleList(ctx, s.userID)
	if storage.IsNothingFound(err) {
		return nil, bundleListOutput{Message: "No bundles found."}, nil
	}
	if err != nil {
		return nil, bundleListOutput{}, s.toolError("list bundles", err)
	}
	return nil, bundleListOutput{Bundles: bundles, Message: fmt.Sprintf("%d bundles", len(bundles))}, nil
}

// toolError turns a storage failure into the message a client sees.
// Internal details are logged, not returned.
func (s *Server) toolError(op string, err error) error {
	switch {
	case storage.IsRejectedInput(err):
		return fmt.Errorf("rejected input: %w", err)
	case storage.IsStorageError(storage.KindSportIsUsed, err):
		return fmt.Errorf("cannot delete, still referenced by recorded activities")
	case storage.IsStorageError(storage.KindFoodIsUsed, err):
		return fmt.Errorf("cannot delete, still referenced by journal entries")
	}
	s.logger.Error("tool failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("failed to %s: internal error", op)
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTimestamp accepts RFC 3339 or a local date with optional time.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (use RFC 3339, YYYY-MM-DD HH:MM or YYYY-MM-DD)", s)
}

func parseWindow(input windowInput) (from, to time.Time, err error) {
	to = time.Now()
	if input.To != "" {
		if to, err = parseTimestamp(input.To); err != nil {
			return from, to, err
		}
	}
	from = to.Add(-defaultWindow)
	if input.From != "" {
		if from, err = parseTimestamp(input.From); err != nil {
			return from, to, err
		}
	}
	if from.After(to) {
		return from, to, fmt.Errorf("window start %s is after end %s", formatTimestamp(from), formatTimestamp(to))
	}
	return from, to, nil
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format(timestampLayout)
}
