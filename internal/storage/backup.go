// ABOUTME: Backup producer and restore over every user's weight, food and settings.
// ABOUTME: Restore replays the same validated upserts as direct writes, in a fixed order.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/myhealth/internal/models"
	"go.uber.org/zap"
)

// Backup collects every weight, food and user settings row into one envelope.
// Empty tables produce empty sections, not errors.
func (d *DB) Backup(ctx context.Context) (*models.Backup, error) {
	const op = "backup"

	b := &models.Backup{
		Timestamp:    time.Now().UnixMilli(),
		Weight:       []models.WeightBackup{},
		Food:         []models.FoodBackup{},
		UserSettings: []models.UserSettingsBackup{},
	}

	rows, err := d.gw.query(ctx, sqlSelectAllWeight)
	if err != nil {
		return nil, internalError(op, err)
	}
	for _, row := range rows {
		userID, err := row.Int("user_id")
		if err != nil {
			return nil, internalError(op, err)
		}
		w, err := weightFromRow(row)
		if err != nil {
			return nil, internalError(op, err)
		}
		b.Weight = append(b.Weight, models.WeightBackup{
			UserID:    userID,
			Timestamp: millis(w.Timestamp),
			Value:     w.Value,
		})
	}

	rows, err = d.gw.query(ctx, sqlSelectFoodList)
	if err != nil {
		return nil, internalError(op, err)
	}
	for _, row := range rows {
		f, err := foodFromRow(row)
		if err != nil {
			return nil, internalError(op, err)
		}
		b.Food = append(b.Food, models.FoodBackup{
			Key:     f.Key,
			Name:    f.Name,
			Brand:   f.Brand,
			Cal100:  f.Cal100,
			Prot100: f.Prot100,
			Fat100:  f.Fat100,
			Carb100: f.Carb100,
			Comment: f.Comment,
		})
	}

	rows, err = d.gw.query(ctx, sqlSelectAllUserSettings)
	if err != nil {
		return nil, internalError(op, err)
	}
	for _, row := range rows {
		userID, err := row.Int("user_id")
		if err != nil {
			return nil, internalError(op, err)
		}
		limit, err := row.Float("cal_limit")
		if err != nil {
			return nil, internalError(op, err)
		}
		b.UserSettings = append(b.UserSettings, models.UserSettingsBackup{UserID: userID, CalLimit: limit})
	}

	return b, nil
}

// Restore upserts every record of b: weights first, then foods, then user
// settings. Records already present are overwritten, so restoring the same
// backup twice leaves the same state as restoring it once. The first
// rejected record stops the restore; records before it stay written.
func (d *DB) Restore(ctx context.Context, b *models.Backup) error {
	const op = "restore"

	if b == nil {
		return newError(KindMalformedData, op, fmt.Errorf("backup is nil"))
	}

	for i, wb := range b.Weight {
		ts, ok := timestampFromMillis(wb.Timestamp)
		if !ok {
			return newError(KindInvalidWeight, op,
				fmt.Errorf("weight #%d: %d is not a valid timestamp", i, wb.Timestamp))
		}
		if err := d.SetWeight(ctx, wb.UserID, &models.Weight{Timestamp: ts, Value: wb.Value}); err != nil {
			return fmt.Errorf("%s weight #%d: %w", op, i, err)
		}
	}

	for i, fb := range b.Food {
		f := fb.Food()
		if err := d.SetFood(ctx, &f); err != nil {
			return fmt.Errorf("%s food #%d: %w", op, i, err)
		}
	}

	for i, ub := range b.UserSettings {
		if err := d.SetUserSettings(ctx, ub.UserID, &models.UserSettings{CalLimit: ub.CalLimit}); err != nil {
			return fmt.Errorf("%s user settings #%d: %w", op, i, err)
		}
	}

	d.logger.Info("restored backup",
		zap.Int("weight", len(b.Weight)),
		zap.Int("food", len(b.Food)),
		zap.Int("user_settings", len(b.UserSettings)),
	)
	return nil
}
