// ABOUTME: Tests for meal parsing, journal validation and report totals.
// ABOUTME: Table-driven like the other model tests.
package models

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParseMeal(t *testing.T) {
	tests := []struct {
		in      string
		want    Meal
		wantErr bool
	}{
		{"breakfast", Breakfast, false},
		{"Lunch", Lunch, false},
		{" DINNER ", Dinner, false},
		{"before-dinner", BeforeDinner, false},
		{"3", Snack, false},
		{"brunch", -1, true},
		{"6", -1, true},
		{"", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMeal(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMeal(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalid) {
				t.Errorf("expected error to wrap ErrInvalid, got %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseMeal(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMealStringRoundTrip(t *testing.T) {
	for _, m := range Meals() {
		got, err := ParseMeal(m.String())
		if err != nil {
			t.Fatalf("ParseMeal(%q): %v", m.String(), err)
		}
		if got != m {
			t.Errorf("round trip of %v gave %v", m, got)
		}
	}

	if s := Meal(9).String(); s != "Meal(9)" {
		t.Errorf("Meal(9).String() = %q", s)
	}
}

func TestValidateJournal(t *testing.T) {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		journal *Journal
		wantErr bool
	}{
		{"valid", &Journal{Timestamp: day, Meal: Lunch, FoodKey: "oats", FoodWeight: 60}, false},
		{"nil", nil, true},
		{"bad meal", &Journal{Timestamp: day, Meal: -1, FoodKey: "oats", FoodWeight: 60}, true},
		{"empty food key", &Journal{Timestamp: day, Meal: Lunch, FoodWeight: 60}, true},
		{"zero weight", &Journal{Timestamp: day, Meal: Lunch, FoodKey: "oats"}, true},
		{"NaN weight", &Journal{Timestamp: day, Meal: Lunch, FoodKey: "oats", FoodWeight: math.NaN()}, true},
		{"year 10000", &Journal{Timestamp: time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC), Meal: Lunch, FoodKey: "oats", FoodWeight: 60}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateJournal(tt.journal); (err != nil) != tt.wantErr {
				t.Errorf("ValidateJournal() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateCalories(t *testing.T) {
	for _, v := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := ValidateCalories(v); err == nil {
			t.Errorf("ValidateCalories(%v) accepted", v)
		}
	}
	if err := ValidateCalories(1850); err != nil {
		t.Errorf("ValidateCalories(1850) = %v", err)
	}
}

func TestJournalTotals(t *testing.T) {
	cal, prot, fat, carb := JournalTotals([]JournalReport{
		{Cal: 100, Prot: 1, Fat: 2, Carb: 3},
		{Cal: 50.5, Prot: 4, Fat: 5, Carb: 6},
	})
	if cal != 150.5 || prot != 5 || fat != 7 || carb != 9 {
		t.Errorf("JournalTotals = %v %v %v %v", cal, prot, fat, carb)
	}
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	at := time.Date(2025, 3, 1, 23, 59, 59, 999, loc)

	got := StartOfDay(at)
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
}
