// ABOUTME: Body weight operations keyed by user and timestamp.
// ABOUTME: Listings are bounded by an inclusive time window and ordered by timestamp.
package storage

import (
	"context"
	"time"

	"github.com/harperreed/myhealth/internal/models"
)

// GetWeight retrieves the weight a user recorded at exactly timestamp.
func (d *DB) GetWeight(ctx context.Context, userID int64, timestamp time.Time) (*models.Weight, error) {
	const op = "get weight"

	rows, err := d.gw.query(ctx, sqlSelectWeight, userID, millis(timestamp))
	if err != nil {
		return nil, internalError(op, err)
	}
	if len(rows) == 0 {
		return nil, newError(KindNotFound, op, nil)
	}

	w, err := weightFromRow(rows[0])
	if err != nil {
		return nil, internalError(op, err)
	}
	return &w, nil
}

// GetWeightList returns a user's weights with from <= timestamp <= to.
func (d *DB) GetWeightList(ctx context.Context, userID int64, from, to time.Time) ([]models.Weight, error) {
	const op = "get weight list"

	rows, err := d.gw.query(ctx, sqlSelectWeightList, userID, millis(from), millis(to))
	if err != nil {
		return nil, internalError(op, err)
	}
	if len(rows) == 0 {
		return nil, newError(KindEmptyList, op, nil)
	}

	weights := make([]models.Weight, 0, len(rows))
	for _, row := range rows {
		w, err := weightFromRow(row)
		if err != nil {
			return nil, internalError(op, err)
		}
		weights = append(weights, w)
	}
	return weights, nil
}

// SetWeight creates or replaces the weight at w.Timestamp.
func (d *DB) SetWeight(ctx context.Context, userID int64, w *models.Weight) error {
	const op = "set weight"

	if err := d.validator.Weight(w); err != nil {
		return newError(KindInvalidWeight, op, err)
	}

	if err := d.gw.execute(ctx, sqlUpsertWeight, false, userID, millis(w.Timestamp), w.Value); err != nil {
		return internalError(op, err)
	}
	return nil
}

// DeleteWeight removes the weight at timestamp, if any.
func (d *DB) DeleteWeight(ctx context.Context, userID int64, timestamp time.Time) error {
	const op = "delete weight"

	if err := d.gw.execute(ctx, sqlDeleteWeight, false, userID, millis(timestamp)); err != nil {
		return internalError(op, err)
	}
	return nil
}

func weightFromRow(row Row) (models.Weight, error) {
	ts, err := row.Timestamp("timestamp")
	if err != nil {
		return models.Weight{}, err
	}
	value, err := row.Float("value")
	if err != nil {
		return models.Weight{}, err
	}
	return models.Weight{Timestamp: ts, Value: value}, nil
}
