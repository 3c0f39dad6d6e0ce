// ABOUTME: Body weight model for per-user weight tracking.
// ABOUTME: A user has at most one weight value per timestamp.
package models

import "time"

// Weight is a single body weight measurement in kilograms.
type Weight struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Value     float64   `json:"value" yaml:"value"`
}

// NewWeight creates a Weight stamped with the current time, truncated to
// millisecond precision so it survives a storage round trip unchanged.
func NewWeight(value float64) *Weight {
	return &Weight{
		Timestamp: time.UnixMilli(time.Now().UnixMilli()).UTC(),
		Value:     value,
	}
}

// WithTimestamp sets a custom timestamp.
func (w *Weight) WithTimestamp(t time.Time) *Weight {
	w.Timestamp = time.UnixMilli(t.UnixMilli()).UTC()
	return w
}
