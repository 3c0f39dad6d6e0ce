// ABOUTME: Per-user settings model.
package models

// UserSettings holds per-user preferences. CalLimit is the daily calorie limit.
type UserSettings struct {
	CalLimit float64 `json:"cal_limit" yaml:"cal_limit"`
}
