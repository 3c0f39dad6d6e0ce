// ABOUTME: Tests for the journal and day calorie MCP tools.
// ABOUTME: Drives handlers directly against a temp database.
package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/harperreed/myhealth/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func seedFoods(t *testing.T, server *Server) {
	t.Helper()
	for _, in := range []setFoodInput{
		{Key: "oats", Name: "Oats", Cal100: 370, Prot100: 13, Fat100: 7, Carb100: 60},
		{Key: "milk", Name: "Milk", Cal100: 50, Prot100: 3, Fat100: 2.5, Carb100: 5},
	} {
		if _, _, err := server.handleSetFood(context.Background(), &mcp.CallToolRequest{}, in); err != nil {
			t.Fatalf("handleSetFood(%s) failed: %v", in.Key, err)
		}
	}
}

func TestHandleJournalTools(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()
	seedFoods(t, server)

	_, _, err := server.handleAddJournal(ctx, &mcp.CallToolRequest{}, addJournalInput{Date: "2025-03-01", Meal: "brunch", FoodKey: "oats", Grams: 60})
	if err == nil || !strings.Contains(err.Error(), "unknown meal") {
		t.Errorf("Expected unknown meal error, got %v", err)
	}

	_, _, err = server.handleAddJournal(ctx, &mcp.CallToolRequest{}, addJournalInput{Date: "2025-03-01", Meal: "breakfast", FoodKey: "bread", Grams: 60})
	if err == nil || !strings.Contains(err.Error(), "rejected input") {
		t.Errorf("Expected rejected input for unknown food, got %v", err)
	}

	_, out, err := server.handleAddJournal(ctx, &mcp.CallToolRequest{}, addJournalInput{Date: "2025-03-01", Meal: "breakfast", FoodKey: "oats", Grams: 50})
	if err != nil {
		t.Fatalf("handleAddJournal failed: %v", err)
	}
	if !strings.Contains(out.Message, "2025-03-01") {
		t.Errorf("Unexpected message %q", out.Message)
	}
	if _, _, err := server.handleAddJournal(ctx, &mcp.CallToolRequest{}, addJournalInput{Date: "2025-03-01", Meal: "breakfast", FoodKey: "milk", Grams: 200}); err != nil {
		t.Fatalf("handleAddJournal failed: %v", err)
	}

	_, report, err := server.handleJournalReport(ctx, &mcp.CallToolRequest{}, dayRangeInput{From: "2025-03-01"})
	if err != nil {
		t.Fatalf("handleJournalReport failed: %v", err)
	}
	if len(report.Items) != 2 {
		t.Fatalf("Expected 2 items, got %+v", report.Items)
	}
	// 370 * 0.5 + 50 * 2
	if report.TotalCal != 285 {
		t.Errorf("TotalCal = %v, want 285", report.TotalCal)
	}
	if report.Items[0].Meal != "breakfast" || report.Items[0].FoodKey != "milk" {
		t.Errorf("Unexpected first item %+v", report.Items[0])
	}

	_, copied, err := server.handleCopyJournal(ctx, &mcp.CallToolRequest{}, copyJournalInput{
		FromDate: "2025-03-01", FromMeal: "breakfast", ToDate: "2025-03-02", ToMeal: "dinner",
	})
	if err != nil {
		t.Fatalf("handleCopyJournal failed: %v", err)
	}
	if !strings.Contains(copied.Message, "Copied 2 foods") {
		t.Errorf("Unexpected message %q", copied.Message)
	}

	_, stat, err := server.handleJournalFoodStat(ctx, &mcp.CallToolRequest{}, keyInput{Key: "oats"})
	if err != nil {
		t.Fatalf("handleJournalFoodStat failed: %v", err)
	}
	if stat.TotalCount != 2 || stat.FirstDate != "2025-03-01" || stat.LastDate != "2025-03-02" {
		t.Errorf("Unexpected stat %+v", stat)
	}

	_, _, err = server.handleDeleteFood(ctx, &mcp.CallToolRequest{}, keyInput{Key: "oats"})
	if err == nil || !strings.Contains(err.Error(), "still referenced") {
		t.Errorf("Expected still referenced error, got %v", err)
	}

	if _, _, err := server.handleDeleteJournal(ctx, &mcp.CallToolRequest{}, deleteJournalInput{Date: "2025-03-01", Meal: "breakfast", FoodKey: "milk"}); err != nil {
		t.Fatalf("handleDeleteJournal failed: %v", err)
	}
	if _, _, err := server.handleDeleteJournalMeal(ctx, &mcp.CallToolRequest{}, mealInput{Date: "2025-03-02", Meal: "dinner"}); err != nil {
		t.Fatalf("handleDeleteJournalMeal failed: %v", err)
	}

	_, report, err = server.handleJournalReport(ctx, &mcp.CallToolRequest{}, dayRangeInput{From: "2025-03-01", To: "2025-03-02"})
	if err != nil {
		t.Fatalf("handleJournalReport failed: %v", err)
	}
	if len(report.Items) != 1 || report.Items[0].FoodKey != "oats" {
		t.Errorf("Unexpected items %+v", report.Items)
	}

	_, empty, err := server.handleJournalReport(ctx, &mcp.CallToolRequest{}, dayRangeInput{From: "2024-01-01"})
	if err != nil {
		t.Fatalf("Empty report should not be a tool error: %v", err)
	}
	if empty.Message != "No journal entries found." {
		t.Errorf("Unexpected message %q", empty.Message)
	}

	if _, _, err := server.handleJournalReport(ctx, &mcp.CallToolRequest{}, dayRangeInput{From: "2025-03-02", To: "2025-03-01"}); err == nil {
		t.Error("Expected error for reversed range")
	}
}

func TestHandleJournalBundleTools(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()
	seedFoods(t, server)

	for _, in := range []setBundleInput{
		{Key: "porridge", Items: map[string]float64{"oats": 60, "milk": 150}},
		{Key: "big", Items: map[string]float64{"porridge": 0, "milk": 100}},
	} {
		if _, _, err := server.handleSetBundle(ctx, &mcp.CallToolRequest{}, in); err != nil {
			t.Fatalf("handleSetBundle(%s) failed: %v", in.Key, err)
		}
	}

	_, _, err := server.handleAddJournalBundle(ctx, &mcp.CallToolRequest{}, journalBundleInput{Date: "2025-03-01", Meal: "lunch", BundleKey: "nope"})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("Expected not found error, got %v", err)
	}

	if _, _, err := server.handleAddJournalBundle(ctx, &mcp.CallToolRequest{}, journalBundleInput{Date: "2025-03-01", Meal: "lunch", BundleKey: "porridge"}); err != nil {
		t.Fatalf("handleAddJournalBundle failed: %v", err)
	}

	_, report, err := server.handleJournalReport(ctx, &mcp.CallToolRequest{}, dayRangeInput{From: "2025-03-01"})
	if err != nil {
		t.Fatalf("handleJournalReport failed: %v", err)
	}
	if len(report.Items) != 2 {
		t.Fatalf("Expected 2 items, got %+v", report.Items)
	}

	if _, _, err := server.handleDeleteJournalBundle(ctx, &mcp.CallToolRequest{}, journalBundleInput{Date: "2025-03-01", Meal: "lunch", BundleKey: "big"}); err != nil {
		t.Fatalf("handleDeleteJournalBundle failed: %v", err)
	}
	_, report, err = server.handleJournalReport(ctx, &mcp.CallToolRequest{}, dayRangeInput{From: "2025-03-01"})
	if err != nil {
		t.Fatalf("handleJournalReport failed: %v", err)
	}
	if len(report.Items) != 0 {
		t.Errorf("Expected nested bundle foods removed, got %+v", report.Items)
	}
}

func TestHandleDayCalories(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()
	seedFoods(t, server)

	_, out, err := server.handleGetDayCalories(ctx, &mcp.CallToolRequest{}, dayInput{Date: "2025-03-01"})
	if err != nil {
		t.Fatalf("handleGetDayCalories failed: %v", err)
	}
	if out.JournalCal != 0 || out.RecordedCal != nil || out.BurnedCal != nil || out.CalLimit != nil {
		t.Errorf("Expected an empty day, got %+v", out)
	}

	_, _, err = server.handleSetDayTotalCal(ctx, &mcp.CallToolRequest{}, dayCaloriesInput{Date: "2025-03-01", Cal: 0})
	if err == nil || !strings.Contains(err.Error(), "rejected input") {
		t.Errorf("Expected rejected input, got %v", err)
	}

	steps := []func() error{
		func() error {
			_, _, err := server.handleAddJournal(ctx, &mcp.CallToolRequest{}, addJournalInput{Date: "2025-03-01", Meal: "dinner", FoodKey: "milk", Grams: 300})
			return err
		},
		func() error {
			_, _, err := server.handleSetDayTotalCal(ctx, &mcp.CallToolRequest{}, dayCaloriesInput{Date: "2025-03-01", Cal: 1900})
			return err
		},
		func() error {
			_, _, err := server.handleSetTotalBurnedCal(ctx, &mcp.CallToolRequest{}, dayCaloriesInput{Date: "2025-03-01", Cal: 2400})
			return err
		},
		func() error {
			_, _, err := server.handleSetUserSettings(ctx, &mcp.CallToolRequest{}, setUserSettingsInput{CalLimit: 2000})
			return err
		},
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d failed: %v", i, err)
		}
	}

	_, out, err = server.handleGetDayCalories(ctx, &mcp.CallToolRequest{}, dayInput{Date: "2025-03-01"})
	if err != nil {
		t.Fatalf("handleGetDayCalories failed: %v", err)
	}
	if out.JournalCal != 150 {
		t.Errorf("JournalCal = %v, want 150", out.JournalCal)
	}
	if out.RecordedCal == nil || *out.RecordedCal != 1900 {
		t.Errorf("RecordedCal = %v, want 1900", out.RecordedCal)
	}
	if out.BurnedCal == nil || *out.BurnedCal != 2400 {
		t.Errorf("BurnedCal = %v, want 2400", out.BurnedCal)
	}
	if out.CalLimit == nil || *out.CalLimit != 2000 {
		t.Errorf("CalLimit = %v, want 2000", out.CalLimit)
	}
	if !strings.Contains(out.Message, "150 kcal eaten on 2025-03-01 of 2000") {
		t.Errorf("Unexpected message %q", out.Message)
	}
}

func TestParseDay(t *testing.T) {
	day, err := parseDay("2025-03-01 18:30")
	if err != nil {
		t.Fatalf("parseDay failed: %v", err)
	}
	if !day.Equal(models.StartOfDay(day)) || formatDay(day) != "2025-03-01" {
		t.Errorf("parseDay = %v", day)
	}

	today, err := parseDay("")
	if err != nil || today.Hour() != 0 || today.Minute() != 0 {
		t.Errorf("parseDay(\"\") = %v, %v", today, err)
	}

	if _, err := parseDay("someday"); err == nil {
		t.Error("Expected error for bad day")
	}
}
