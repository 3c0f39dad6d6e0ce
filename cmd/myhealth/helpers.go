// ABOUTME: Argument parsing and formatting helpers shared by myhealth commands.
// ABOUTME: Times are read and printed in the configured location.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/harperreed/myhealth/internal/storage"
)

// displayLayout keeps milliseconds so a printed timestamp can be fed back to a delete command.
const displayLayout = "2006-01-02 15:04:05.000"

const defaultWindow = 30 * 24 * time.Hour

var timeLayouts = []string{
	displayLayout,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC3339,
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format %q (use YYYY-MM-DD HH:MM)", s)
}

func formatTime(t time.Time) string {
	return t.In(loc).Format(displayLayout)
}

// parseWindow resolves --from/--to. An empty to means now; an empty from means
// defaultWindow before to.
func parseWindow(fromStr, toStr string) (from, to time.Time, err error) {
	to = time.Now()
	if toStr != "" {
		if to, err = parseTime(toStr); err != nil {
			return from, to, err
		}
	}
	from = to.Add(-defaultWindow)
	if fromStr != "" {
		if from, err = parseTime(fromStr); err != nil {
			return from, to, err
		}
	}
	if from.After(to) {
		return from, to, fmt.Errorf("--from %s is after --to %s", formatTime(from), formatTime(to))
	}
	return from, to, nil
}

func parseSets(args []string) ([]int64, error) {
	sets := make([]int64, 0, len(args))
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid set count: %s", part)
			}
			sets = append(sets, n)
		}
	}
	return sets, nil
}

// parseBundleItems reads "food=grams" pairs. A bare key names a nested bundle.
func parseBundleItems(args []string) (map[string]float64, error) {
	items := make(map[string]float64, len(args))
	for _, a := range args {
		key, qty, found := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid bundle item: %q", a)
		}
		if !found {
			items[key] = 0
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(qty), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid quantity for %s: %s", key, qty)
		}
		items[key] = v
	}
	return items, nil
}

// nothingFound prints the empty-result line when err means nothing matched.
func nothingFound(err error) bool {
	if storage.IsNothingFound(err) {
		fmt.Println("Nothing found.")
		return true
	}
	return false
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := len([]rune(s))
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
