// ABOUTME: Validation predicates consulted before any record is persisted.
// ABOUTME: Each function returns nil when the value is acceptable, or the reason it is not.
package models

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid value")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// finite rejects NaN and the infinities; SQLite binds NaN as NULL.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Timestamps are persisted as epoch milliseconds and read back only within
// years 1 through 9999.
func validTimestamp(t time.Time) bool {
	y := t.UTC().Year()
	return y >= 1 && y <= 9999
}

// ValidateFood checks a food catalog entry.
func ValidateFood(f *Food) error {
	switch {
	case f == nil:
		return invalid("food is nil")
	case f.Key == "":
		return invalid("food key is empty")
	case f.Name == "":
		return invalid("food name is empty")
	case !finite(f.Cal100) || !finite(f.Prot100) || !finite(f.Fat100) || !finite(f.Carb100):
		return invalid("food %q has non-finite macros", f.Key)
	case f.Cal100 < 0 || f.Prot100 < 0 || f.Fat100 < 0 || f.Carb100 < 0:
		return invalid("food %q has negative macros", f.Key)
	}
	return nil
}

// ValidateWeight checks a weight measurement.
func ValidateWeight(w *Weight) error {
	if w == nil {
		return invalid("weight is nil")
	}
	if !finite(w.Value) || w.Value <= 0 {
		return invalid("weight must be positive, got %v", w.Value)
	}
	if !validTimestamp(w.Timestamp) {
		return invalid("weight timestamp %s is out of range", w.Timestamp)
	}
	return nil
}

// ValidateSport checks a sport catalog entry.
func ValidateSport(s *Sport) error {
	switch {
	case s == nil:
		return invalid("sport is nil")
	case s.Key == "":
		return invalid("sport key is empty")
	case s.Name == "":
		return invalid("sport name is empty")
	}
	return nil
}

// ValidateSportActivity checks an activity. Every set must be positive.
func ValidateSportActivity(a *SportActivity) error {
	switch {
	case a == nil:
		return invalid("sport activity is nil")
	case a.SportKey == "":
		return invalid("sport key is empty")
	case len(a.Sets) == 0:
		return invalid("sport activity has no sets")
	case !validTimestamp(a.Timestamp):
		return invalid("sport activity timestamp %s is out of range", a.Timestamp)
	}
	for i, s := range a.Sets {
		if s <= 0 {
			return invalid("set %d must be positive, got %d", i+1, s)
		}
	}
	return nil
}

// ValidateUserSettings checks user settings.
func ValidateUserSettings(us *UserSettings) error {
	if us == nil {
		return invalid("user settings are nil")
	}
	if !finite(us.CalLimit) || us.CalLimit <= 0 {
		return invalid("calorie limit must be positive, got %v", us.CalLimit)
	}
	return nil
}

// ValidateBundle checks a bundle. Quantities may be zero (nested bundles) but
// never negative.
func ValidateBundle(b *Bundle) error {
	switch {
	case b == nil:
		return invalid("bundle is nil")
	case b.Key == "":
		return invalid("bundle key is empty")
	case len(b.Data) == 0:
		return invalid("bundle %q has no items", b.Key)
	}
	for k, v := range b.Data {
		if k == "" {
			return invalid("bundle %q has an item with an empty key", b.Key)
		}
		if !finite(v) || v < 0 {
			return invalid("bundle item %q has invalid quantity %v", k, v)
		}
	}
	return nil
}

// ValidateJournal checks a journal portion.
func ValidateJournal(j *Journal) error {
	switch {
	case j == nil:
		return invalid("journal is nil")
	case !j.Meal.Valid():
		return invalid("unknown meal %d", int(j.Meal))
	case j.FoodKey == "":
		return invalid("food key is empty")
	case !finite(j.FoodWeight) || j.FoodWeight <= 0:
		return invalid("food weight must be positive, got %v", j.FoodWeight)
	case !validTimestamp(j.Timestamp):
		return invalid("journal timestamp %s is out of range", j.Timestamp)
	}
	return nil
}

// ValidateCalories checks a daily calorie total, eaten or burned.
func ValidateCalories(cal float64) error {
	if !finite(cal) || cal <= 0 {
		return invalid("calories must be positive, got %v", cal)
	}
	return nil
}

// Validator groups the validation predicates so storage engines can depend on
// an explicit contract.
type Validator struct{}

func (Validator) Food(f *Food) error                   { return ValidateFood(f) }
func (Validator) Weight(w *Weight) error               { return ValidateWeight(w) }
func (Validator) Sport(s *Sport) error                 { return ValidateSport(s) }
func (Validator) SportActivity(a *SportActivity) error { return ValidateSportActivity(a) }
func (Validator) UserSettings(us *UserSettings) error  { return ValidateUserSettings(us) }
func (Validator) Bundle(b *Bundle) error               { return ValidateBundle(b) }
func (Validator) Journal(j *Journal) error             { return ValidateJournal(j) }
func (Validator) Calories(cal float64) error           { return ValidateCalories(cal) }
