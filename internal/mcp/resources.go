// ABOUTME: MCP resource implementations for myhealth.
// ABOUTME: Provides myhealth://food, myhealth://sports, and myhealth://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/myhealth/internal/models"
	"github.com/harperreed/myhealth/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	foodURI    = "myhealth://food"
	sportsURI  = "myhealth://sports"
	summaryURI = "myhealth://summary"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         foodURI,
		Name:        "Food Catalog",
		Description: "Every food with macros per 100g, ordered by key",
		MIMEType:    "application/json",
	}, s.handleFoodResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         sportsURI,
		Name:        "Sport Catalog",
		Description: "Every sport, ordered by key",
		MIMEType:    "application/json",
	}, s.handleSportsResource)

	// myhealth://summary - calorie limit, last 30 days of weight, last 7 days of activity
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Health Summary",
		Description: "Calorie limit, recent weight trend and recent sport activity",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleFoodResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	foods, err := s.store.GetFoodList(ctx)
	if err != nil && !storage.IsNothingFound(err) {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	if foods == nil {
		foods = []models.Food{}
	}
	return jsonResource(foodURI, map[string]any{"foods": foods, "count": len(foods)})
}

func (s *Server) handleSportsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	sports, err := s.store.GetSportList(ctx)
	if err != nil && !storage.IsNothingFound(err) {
		return nil, fmt.Errorf("failed to list sports: %w", err)
	}
	if sports == nil {
		sports = []models.Sport{}
	}
	return jsonResource(sportsURI, map[string]any{"sports": sports, "count": len(sports)})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	now := time.Now()

	result := map[string]any{
		"generated_at": formatTimestamp(now),
		"user_id":      s.userID,
	}

	us, err := s.store.GetUserSettings(ctx, s.userID)
	switch {
	case err == nil:
		result["cal_limit"] = us.CalLimit
	case !storage.IsNothingFound(err):
		return nil, fmt.Errorf("failed to get user settings: %w", err)
	}

	weights, err := s.store.GetWeightList(ctx, s.userID, now.Add(-defaultWindow), now)
	if err != nil && !storage.IsNothingFound(err) {
		return nil, fmt.Errorf("failed to list weight: %w", err)
	}
	weightItems := make([]weightItem, 0, len(weights))
	for _, w := range weights {
		weightItems = append(weightItems, weightItem{Timestamp: formatTimestamp(w.Timestamp), Value: w.Value})
	}
	result["weight"] = weightItems
	if len(weights) > 1 {
		result["weight_change"] = weights[len(weights)-1].Value - weights[0].Value
	}

	report, err := s.store.GetSportActivityReport(ctx, s.userID, now.Add(-7*24*time.Hour), now)
	if err != nil && !storage.IsNothingFound(err) {
		return nil, fmt.Errorf("failed to build activity report: %w", err)
	}
	totals := make(map[string]int64)
	for _, r := range report {
		totals[r.SportName] += r.Total()
	}
	result["activity_totals_7d"] = totals

	return jsonResource(summaryURI, result)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
