// ABOUTME: Per-day calorie totals a user records by hand: eaten and burned.
// ABOUTME: Each is keyed by user and day and holds a single positive value.
package storage

import (
	"context"
	"fmt"
	"time"
)

// GetDayTotalCal returns the eaten calories a user recorded for a day.
func (d *DB) GetDayTotalCal(ctx context.Context, userID int64, day time.Time) (float64, error) {
	return d.getCalories(ctx, "get day total cal", sqlSelectDayTotalCal, userID, day)
}

// SetDayTotalCal records the eaten calories for a day, replacing any earlier value.
func (d *DB) SetDayTotalCal(ctx context.Context, userID int64, day time.Time, cal float64) error {
	return d.setCalories(ctx, "set day total cal", sqlUpsertDayTotalCal, userID, day, cal)
}

// DeleteDayTotalCal removes the eaten calories recorded for a day, if any.
func (d *DB) DeleteDayTotalCal(ctx context.Context, userID int64, day time.Time) error {
	if err := d.gw.execute(ctx, sqlDeleteDayTotalCal, false, userID, millis(day)); err != nil {
		return internalError("delete day total cal", err)
	}
	return nil
}

// GetTotalBurnedCal returns the burned calories a user recorded for a day.
func (d *DB) GetTotalBurnedCal(ctx context.Context, userID int64, day time.Time) (float64, error) {
	return d.getCalories(ctx, "get total burned cal", sqlSelectTotalBurnedCal, userID, day)
}

// SetTotalBurnedCal records the burned calories for a day, replacing any earlier value.
func (d *DB) SetTotalBurnedCal(ctx context.Context, userID int64, day time.Time, cal float64) error {
	return d.setCalories(ctx, "set total burned cal", sqlUpsertTotalBurnedCal, userID, day, cal)
}

// DeleteTotalBurnedCal removes the burned calories recorded for a day, if any.
func (d *DB) DeleteTotalBurnedCal(ctx context.Context, userID int64, day time.Time) error {
	if err := d.gw.execute(ctx, sqlDeleteTotalBurnedCal, false, userID, millis(day)); err != nil {
		return internalError("delete total burned cal", err)
	}
	return nil
}

func (d *DB) getCalories(ctx context.Context, op, query string, userID int64, day time.Time) (float64, error) {
	rows, err := d.gw.query(ctx, query, userID, millis(day))
	if err != nil {
		return 0, internalError(op, err)
	}
	if len(rows) == 0 {
		return 0, newError(KindNotFound, op, nil)
	}

	cal, err := rows[0].Float("total_cal")
	if err != nil {
		return 0, internalError(op, err)
	}
	return cal, nil
}

func (d *DB) setCalories(ctx context.Context, op, query string, userID int64, day time.Time, cal float64) error {
	if err := d.validator.Calories(cal); err != nil {
		return newError(KindInvalidCalories, op, err)
	}
	if _, ok := timestampFromMillis(millis(day)); !ok {
		return newError(KindInvalidCalories, op, fmt.Errorf("day %s is out of range", day))
	}

	if err := d.gw.execute(ctx, query, false, userID, millis(day), cal); err != nil {
		return internalError(op, err)
	}
	return nil
}
