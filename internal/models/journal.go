// ABOUTME: Meal journal models: eaten food portions per user, day and meal.
// ABOUTME: Report rows carry calories and macros already scaled to the eaten weight.
package models

import (
	"fmt"
	"strings"
	"time"
)

// Meal is a slot within a day. Values order meals chronologically.
type Meal int

const (
	Breakfast Meal = iota
	BeforeLunch
	Lunch
	Snack
	BeforeDinner
	Dinner
)

var mealNames = []string{"breakfast", "before-lunch", "lunch", "snack", "before-dinner", "dinner"}

// Meals lists every meal in day order.
func Meals() []Meal {
	return []Meal{Breakfast, BeforeLunch, Lunch, Snack, BeforeDinner, Dinner}
}

// ParseMeal accepts a meal name in any case, or its number.
func ParseMeal(s string) (Meal, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range mealNames {
		if name == n || name == fmt.Sprint(i) {
			return Meal(i), nil
		}
	}
	return -1, invalid("unknown meal %q, want one of %s", s, strings.Join(mealNames, ", "))
}

// Valid reports whether m is one of the known meals.
func (m Meal) Valid() bool {
	return m >= Breakfast && m <= Dinner
}

func (m Meal) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Meal(%d)", int(m))
	}
	return mealNames[m]
}

// Journal is one eaten portion. A user has at most one portion of a food per
// timestamp and meal; FoodWeight is in grams.
type Journal struct {
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	Meal       Meal      `json:"meal" yaml:"meal"`
	FoodKey    string    `json:"food_key" yaml:"food_key"`
	FoodWeight float64   `json:"food_weight" yaml:"food_weight"`
}

// JournalReport is a journal row joined with its food.
type JournalReport struct {
	Timestamp  time.Time `json:"timestamp"`
	Meal       Meal      `json:"meal"`
	FoodKey    string    `json:"food_key"`
	FoodName   string    `json:"food_name"`
	FoodBrand  string    `json:"food_brand"`
	FoodWeight float64   `json:"food_weight"`
	Cal        float64   `json:"cal"`
	Prot       float64   `json:"prot"`
	Fat        float64   `json:"fat"`
	Carb       float64   `json:"carb"`
}

// JournalFoodStat summarizes how often and how much of one food a user ate.
type JournalFoodStat struct {
	FirstTimestamp time.Time `json:"first_timestamp"`
	LastTimestamp  time.Time `json:"last_timestamp"`
	TotalWeight    float64   `json:"total_weight"`
	AvgWeight      float64   `json:"avg_weight"`
	TotalCount     int64     `json:"total_count"`
}

// JournalTotals sums the calories and macros of report rows.
func JournalTotals(rows []JournalReport) (cal, prot, fat, carb float64) {
	for _, r := range rows {
		cal += r.Cal
		prot += r.Prot
		fat += r.Fat
		carb += r.Carb
	}
	return cal, prot, fat, carb
}

// StartOfDay truncates t to midnight in its own location. Journal entries and
// day calorie records are keyed by day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
