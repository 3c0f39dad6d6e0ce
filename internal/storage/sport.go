// ABOUTME: Sport catalog operations: get, list, upsert, delete.
// ABOUTME: A sport referenced by recorded activities cannot be deleted.
package storage

import (
	"context"

	"github.com/harperreed/myhealth/internal/models"
)

// GetSport retrieves a sport by key.
func (d *DB) GetSport(ctx context.Context, key string) (*models.Sport, error) {
	const op = "get sport"

	rows, err := d.gw.query(ctx, sqlSelectSport, key)
	if err != nil {
		return nil, internalError(op, err)
	}
	if len(rows) == 0 {
		return nil, newError(KindNotFound, op, nil)
	}

	s, err := sportFromRow(rows[0])
	if err != nil {
		return nil, internalError(op, err)
	}
	return &s, nil
}

// GetSportList returns every sport ordered by key.
func (d *DB) GetSportList(ctx context.Context) ([]models.Sport, error) {
	const op = "get sport list"

	rows, err := d.gw.query(ctx, sqlSelectSportList)
	if err != nil {
		return nil, internalError(op, err)
	}
	if len(rows) == 0 {
		return nil, newError(KindEmptyList, op, nil)
	}

	sports := make([]models.Sport, 0, len(rows))
	for _, row := range rows {
		s, err := sportFromRow(row)
		if err != nil {
			return nil, internalError(op, err)
		}
		sports = append(sports, s)
	}
	return sports, nil
}

// SetSport creates or fully replaces a sport. Activities that reference it
// stay attached.
func (d *DB) SetSport(ctx context.Context, s *models.Sport) error {
	const op = "set sport"

	if err := d.validator.Sport(s); err != nil {
		return newError(KindInvalidSport, op, err)
	}

	if err := d.gw.execute(ctx, sqlUpsertSport, false, s.Key, s.Name, s.Comment); err != nil {
		return internalError(op, err)
	}
	return nil
}

// DeleteSport removes a sport. It fails with KindSportIsUsed while any
// activity still references the sport.
func (d *DB) DeleteSport(ctx context.Context, key string) error {
	const op = "delete sport"

	if err := d.gw.execute(ctx, sqlDeleteSport, false, key); err != nil {
		return d.translateForeignKey(op, err, KindSportIsUsed)
	}
	return nil
}

func sportFromRow(row Row) (models.Sport, error) {
	var (
		s   models.Sport
		err error
	)
	if s.Key, err = row.Text("key"); err != nil {
		return s, err
	}
	if s.Name, err = row.Text("name"); err != nil {
		return s, err
	}
	if s.Comment, err = row.Text("comment"); err != nil {
		return s, err
	}
	return s, nil
}
