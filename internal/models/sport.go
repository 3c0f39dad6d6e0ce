// ABOUTME: Sport catalog and sport activity models.
// ABOUTME: Activities reference a sport by key and carry per-set repetition counts.
package models

import "time"

// Sport is a catalog entry for a kind of exercise.
type Sport struct {
	Key     string `json:"key" yaml:"key"`
	Name    string `json:"name" yaml:"name"`
	Comment string `json:"comment" yaml:"comment"`
}

// SportActivity records the sets a user did for one sport at one moment.
type SportActivity struct {
	SportKey  string    `json:"sport_key" yaml:"sport_key"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Sets      []int64   `json:"sets" yaml:"sets"`
}

// NewSportActivity creates an activity stamped with the current time.
func NewSportActivity(sportKey string, sets ...int64) *SportActivity {
	return &SportActivity{
		SportKey:  sportKey,
		Timestamp: time.UnixMilli(time.Now().UnixMilli()).UTC(),
		Sets:      sets,
	}
}

// WithTimestamp sets a custom timestamp.
func (a *SportActivity) WithTimestamp(t time.Time) *SportActivity {
	a.Timestamp = time.UnixMilli(t.UnixMilli()).UTC()
	return a
}

// SportActivityReport is a read-only row of the activity report: an activity
// joined with the name of its sport.
type SportActivityReport struct {
	SportName string    `json:"sport_name"`
	Timestamp time.Time `json:"timestamp"`
	Sets      []int64   `json:"sets"`
}

// Total returns the sum of all sets.
func (r SportActivityReport) Total() int64 {
	var total int64
	for _, s := range r.Sets {
		total += s
	}
	return total
}
