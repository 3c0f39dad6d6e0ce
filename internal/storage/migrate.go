// ABOUTME: Versioned schema migrations stamped in the system table.
// ABOUTME: Each pending migration runs in its own transaction together with its stamp update.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

// migration is one schema step. IDs are strictly increasing and never reused;
// new migrations are appended to the end of allMigrations.
type migration struct {
	id    int64
	apply func(ctx context.Context, tx *sql.Tx) error
}

func allMigrations() []migration {
	return []migration{
		{1, insertInitialMigrationID},
		{2, createTables},
		{3, createJournalTables},
	}
}

func insertInitialMigrationID(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, sqlInsertInitialMigrationID)
	return err
}

func createTables(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range []string{
		sqlCreateTableWeight,
		sqlCreateTableFood,
		sqlCreateTableSport,
		sqlCreateTableSportActivity,
		sqlCreateTableBundle,
		sqlCreateTableBundleFoodItem,
		sqlCreateTableBundleBundleItem,
		sqlCreateTableUserSettings,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func createJournalTables(ctx context.Context, tx *sql.Tx) error {
	for _, stmt := range []string{
		sqlCreateTableJournal,
		sqlCreateIndexJournalUserFood,
		sqlCreateTableDayTotalCal,
		sqlCreateTableTotalBurnedCal,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// checkMigrations rejects lists whose IDs are not positive and strictly increasing.
func checkMigrations(list []migration) error {
	var prev int64
	for i, m := range list {
		if m.id <= prev {
			return fmt.Errorf("migration #%d has id %d, want greater than %d", i, m.id, prev)
		}
		if m.apply == nil {
			return fmt.Errorf("migration [%d] has no apply function", m.id)
		}
		prev = m.id
	}
	return nil
}

// lastMigrationID returns the recorded migration, or 0 when the system table
// has not been seeded yet.
func (d *DB) lastMigrationID(ctx context.Context) (int64, error) {
	rows, err := d.gw.query(ctx, sqlSelectMigrationID)
	if err != nil {
		return 0, fmt.Errorf("query last migration: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	id, err := rows[0].Int("migration_id")
	if err != nil {
		return 0, fmt.Errorf("decode last migration: %w", err)
	}
	return id, nil
}

// migrate applies every migration newer than the recorded one, in order.
// A failed migration rolls back completely and stops the run, so the stamp
// never gets ahead of the committed schema.
func (d *DB) migrate(ctx context.Context, list []migration) error {
	if err := checkMigrations(list); err != nil {
		return err
	}

	last, err := d.lastMigrationID(ctx)
	if err != nil {
		return err
	}

	for _, m := range list {
		if m.id <= last {
			continue
		}

		err := d.gw.inTx(ctx, func(tx *sql.Tx) error {
			if err := m.apply(ctx, tx); err != nil {
				return fmt.Errorf("exec migration [%d]: %w", m.id, err)
			}
			if _, err := tx.ExecContext(ctx, sqlUpdateMigrationID, m.id); err != nil {
				return fmt.Errorf("update migration id for migration [%d]: %w", m.id, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		d.logger.Info("applied migration", zap.Int64("migration_id", m.id))
		last = m.id
	}

	return nil
}
