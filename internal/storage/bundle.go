// ABOUTME: Bundle operations: per-user meal templates stored as a JSON quantity map.
// ABOUTME: Item rows are not maintained; the JSON column is the whole record.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/myhealth/internal/models"
)

// GetBundle retrieves a user's bundle by key.
func (d *DB) GetBundle(ctx context.Context, userID int64, key string) (*models.Bundle, error) {
	const op = "get bundle"

	rows, err := d.gw.query(ctx, sqlSelectBundle, userID, key)
	if err != nil {
		return nil, internalError(op, err)
	}
	if len(rows) == 0 {
		return nil, newError(KindNotFound, op, nil)
	}

	b, err := bundleFromRow(op, rows[0])
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// GetBundleList returns a user's bundles ordered by key.
func (d *DB) GetBundleList(ctx context.Context, userID int64) ([]models.Bundle, error) {
	const op = "get bundle list"

	rows, err := d.gw.query(ctx, sqlSelectBundleList, userID)
	if err != nil {
		return nil, internalError(op, err)
	}
	if len(rows) == 0 {
		return nil, newError(KindEmptyList, op, nil)
	}

	bundles := make([]models.Bundle, 0, len(rows))
	for _, row := range rows {
		b, err := bundleFromRow(op, row)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, b)
	}
	return bundles, nil
}

// SetBundle creates or fully replaces a user's bundle.
func (d *DB) SetBundle(ctx context.Context, userID int64, b *models.Bundle) error {
	const op = "set bundle"

	if err := d.validator.Bundle(b); err != nil {
		return newError(KindInvalidBundle, op, err)
	}

	data, err := json.Marshal(b.Data)
	if err != nil {
		return internalError(op, fmt.Errorf("encode bundle data: %w", err))
	}

	if err := d.gw.execute(ctx, sqlUpsertBundle, false, userID, b.Key, string(data)); err != nil {
		return internalError(op, err)
	}
	return nil
}

// DeleteBundle removes a user's bundle, if it exists.
func (d *DB) DeleteBundle(ctx context.Context, userID int64, key string) error {
	const op = "delete bundle"

	if err := d.gw.execute(ctx, sqlDeleteBundle, false, userID, key); err != nil {
		return internalError(op, err)
	}
	return nil
}

func bundleFromRow(op string, row Row) (models.Bundle, error) {
	key, err := row.Text("key")
	if err != nil {
		return models.Bundle{}, internalError(op, err)
	}
	raw, err := row.Text("data")
	if err != nil {
		return models.Bundle{}, internalError(op, err)
	}

	var data map[string]float64
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return models.Bundle{}, newError(KindMalformedData, op, fmt.Errorf("decode bundle %q: %w", key, err))
	}
	return models.Bundle{Key: key, Data: data}, nil
}
