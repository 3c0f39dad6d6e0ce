// ABOUTME: Sport activity operations and the per-user activity report.
// ABOUTME: Sets are stored as a JSON array in a single column.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harperreed/myhealth/internal/models"
)

// SetSportActivity creates or replaces the activity identified by user,
// timestamp and sport. Referencing an unknown sport fails with
// KindInvalidSportReference.
func (d *DB) SetSportActivity(ctx context.Context, userID int64, a *models.SportActivity) error {
	const op = "set sport activity"

	if err := d.validator.SportActivity(a); err != nil {
		return newError(KindInvalidSportActivity, op, err)
	}

	sets, err := json.Marshal(a.Sets)
	if err != nil {
		return internalError(op, fmt.Errorf("encode sets: %w", err))
	}

	err = d.gw.execute(ctx, sqlUpsertSportActivity, false,
		userID, millis(a.Timestamp), a.SportKey, string(sets))
	if err != nil {
		return d.translateForeignKey(op, err, KindInvalidSportReference)
	}
	return nil
}

// DeleteSportActivity removes one activity, if it exists.
func (d *DB) DeleteSportActivity(ctx context.Context, userID int64, timestamp time.Time, sportKey string) error {
	const op = "delete sport activity"

	if err := d.gw.execute(ctx, sqlDeleteSportActivity, false, userID, millis(timestamp), sportKey); err != nil {
		return internalError(op, err)
	}
	return nil
}

// GetSportActivityReport returns a user's activities with
// from <= timestamp <= to, joined with sport names, oldest first.
func (d *DB) GetSportActivityReport(ctx context.Context, userID int64, from, to time.Time) ([]models.SportActivityReport, error) {
	const op = "get sport activity report"

	rows, err := d.gw.query(ctx, sqlSelectSportActivityReport, userID, millis(from), millis(to))
	if err != nil {
		return nil, internalError(op, err)
	}
	if len(rows) == 0 {
		return nil, newError(KindEmptyList, op, nil)
	}

	report := make([]models.SportActivityReport, 0, len(rows))
	for _, row := range rows {
		r, err := reportFromRow(op, row)
		if err != nil {
			return nil, err
		}
		report = append(report, r)
	}
	return report, nil
}

func reportFromRow(op string, row Row) (models.SportActivityReport, error) {
	var r models.SportActivityReport

	name, err := row.Text("sport_name")
	if err != nil {
		return r, internalError(op, err)
	}
	ts, err := row.Timestamp("timestamp")
	if err != nil {
		return r, internalError(op, err)
	}
	raw, err := row.Text("sets")
	if err != nil {
		return r, internalError(op, err)
	}

	var sets []int64
	if err := json.Unmarshal([]byte(raw), &sets); err != nil {
		return r, newError(KindMalformedData, op, fmt.Errorf("decode sets: %w", err))
	}

	r.SportName = name
	r.Timestamp = ts
	r.Sets = sets
	return r, nil
}
