// ABOUTME: Per-user settings operations.
package storage

import (
	"context"

	"github.com/harperreed/myhealth/internal/models"
)

// GetUserSettings retrieves a user's settings.
func (d *DB) GetUserSettings(ctx context.Context, userID int64) (*models.UserSettings, error) {
	const op = "get user settings"

	rows, err := d.gw.query(ctx, sqlSelectUserSettings, userID)
	if err != nil {
		return nil, internalError(op, err)
	}
	if len(rows) == 0 {
		return nil, newError(KindNotFound, op, nil)
	}

	limit, err := rows[0].Float("cal_limit")
	if err != nil {
		return nil, internalError(op, err)
	}
	return &models.UserSettings{CalLimit: limit}, nil
}

// SetUserSettings creates or replaces a user's settings.
func (d *DB) SetUserSettings(ctx context.Context, userID int64, us *models.UserSettings) error {
	const op = "set user settings"

	if err := d.validator.UserSettings(us); err != nil {
		return newError(KindInvalidUserSettings, op, err)
	}

	if err := d.gw.execute(ctx, sqlUpsertUserSettings, false, userID, us.CalLimit); err != nil {
		return internalError(op, err)
	}
	return nil
}
