// ABOUTME: Meal journal operations: portions per user, day and meal, plus reports.
// ABOUTME: Bundles are expanded into plain food portions before they reach the journal.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/harperreed/myhealth/internal/models"
)

// SetJournal creates or replaces the portion of j.FoodKey eaten at j.Meal.
// Referencing an unknown food fails with KindInvalidFoodReference.
func (d *DB) SetJournal(ctx context.Context, userID int64, j *models.Journal) error {
	const op = "set journal"

	if err := d.validator.Journal(j); err != nil {
		return newError(KindInvalidJournal, op, err)
	}

	err := d.gw.execute(ctx, sqlUpsertJournal, false,
		userID, millis(j.Timestamp), int64(j.Meal), j.FoodKey, j.FoodWeight)
	if err != nil {
		return d.translateForeignKey(op, err, KindInvalidFoodReference)
	}
	return nil
}

// SetJournalBundle writes every food portion of a bundle, following nested
// bundles, into one meal. Either all portions are written or none.
func (d *DB) SetJournalBundle(ctx context.Context, userID int64, timestamp time.Time, meal models.Meal, bundleKey string) error {
	const op = "set journal bundle"

	if err := checkMealSlot(timestamp, meal); err != nil {
		return newError(KindInvalidJournal, op, err)
	}

	err := d.gw.inTx(ctx, func(tx *sql.Tx) error {
		items, err := expandBundle(ctx, tx, userID, bundleKey)
		if err != nil {
			return err
		}
		for _, item := range items {
			_, err := tx.ExecContext(ctx, sqlUpsertJournal,
				userID, millis(timestamp), int64(meal), item.foodKey, item.weight)
			if isForeignKeyViolation(err) {
				return newError(KindInvalidFoodReference, "", fmt.Errorf("food %q: %w", item.foodKey, err))
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return internalError(op, err)
	}
	return nil
}

// DeleteJournal removes one portion, if it exists.
func (d *DB) DeleteJournal(ctx context.Context, userID int64, timestamp time.Time, meal models.Meal, foodKey string) error {
	const op = "delete journal"

	if err := d.gw.execute(ctx, sqlDeleteJournal, false, userID, millis(timestamp), int64(meal), foodKey); err != nil {
		return internalError(op, err)
	}
	return nil
}

// DeleteJournalMeal removes every portion of one meal.
func (d *DB) DeleteJournalMeal(ctx context.Context, userID int64, timestamp time.Time, meal models.Meal) error {
	const op = "delete journal meal"

	if err := d.gw.execute(ctx, sqlDeleteJournalMeal, false, userID, millis(timestamp), int64(meal)); err != nil {
		return internalError(op, err)
	}
	return nil
}

// DeleteJournalBundle removes the portions a bundle would have written.
// Portions of the same foods added separately are removed too.
func (d *DB) DeleteJournalBundle(ctx context.Context, userID int64, timestamp time.Time, meal models.Meal, bundleKey string) error {
	const op = "delete journal bundle"

	err := d.gw.inTx(ctx, func(tx *sql.Tx) error {
		items, err := expandBundle(ctx, tx, userID, bundleKey)
		if err != nil {
			return err
		}
		for _, item := range items {
			if _, err := tx.ExecContext(ctx, sqlDeleteJournal, userID, millis(timestamp), int64(meal), item.foodKey); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return internalError(op, err)
	}
	return nil
}

// GetJournalReport returns a user's portions with from <= timestamp <= to,
// ordered by timestamp, meal and food name.
func (d *DB) GetJournalReport(ctx context.Context, userID int64, from, to time.Time) ([]models.JournalReport, error) {
	const op = "get journal report"

	rows, err := d.gw.query(ctx, sqlSelectJournalReport, userID, millis(from), millis(to))
	if err != nil {
		return nil, internalError(op, err)
	}
	if len(rows) == 0 {
		return nil, newError(KindEmptyList, op, nil)
	}

	report := make([]models.JournalReport, 0, len(rows))
	for _, row := range rows {
		r, err := journalReportFromRow(row)
		if err != nil {
			return nil, internalError(op, err)
		}
		report = append(report, r)
	}
	return report, nil
}

// CopyJournal copies every portion of one meal into another meal, possibly
// on another day, and returns how many portions were written. Portions
// already in the target meal are overwritten.
func (d *DB) CopyJournal(ctx context.Context, userID int64, from time.Time, mealFrom models.Meal, to time.Time, mealTo models.Meal) (int, error) {
	const op = "copy journal"

	if !mealFrom.Valid() {
		return 0, newError(KindInvalidJournal, op, fmt.Errorf("unknown source meal %d", int(mealFrom)))
	}
	if err := checkMealSlot(to, mealTo); err != nil {
		return 0, newError(KindInvalidJournal, op, err)
	}

	var copied int64
	err := d.gw.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, sqlCopyJournal,
			millis(to), int64(mealTo), userID, millis(from), int64(mealFrom))
		if err != nil {
			return err
		}
		copied, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, internalError(op, err)
	}
	return int(copied), nil
}

// GetJournalFoodStat summarizes a user's portions of one food. A food the
// user never ate fails with KindNotFound.
func (d *DB) GetJournalFoodStat(ctx context.Context, userID int64, foodKey string) (*models.JournalFoodStat, error) {
	const op = "get journal food stat"

	rows, err := d.gw.query(ctx, sqlSelectJournalFoodStat, userID, foodKey)
	if err != nil {
		return nil, internalError(op, err)
	}
	if len(rows) == 0 {
		return nil, internalError(op, fmt.Errorf("aggregate returned no row"))
	}

	var (
		row  = rows[0]
		stat models.JournalFoodStat
	)
	if stat.TotalCount, err = row.Int("total_count"); err != nil {
		return nil, internalError(op, err)
	}
	// The aggregate always yields one row; its other columns are NULL when
	// nothing matched.
	if stat.TotalCount == 0 {
		return nil, newError(KindNotFound, op, nil)
	}
	if stat.FirstTimestamp, err = row.Timestamp("first_timestamp"); err != nil {
		return nil, internalError(op, err)
	}
	if stat.LastTimestamp, err = row.Timestamp("last_timestamp"); err != nil {
		return nil, internalError(op, err)
	}
	if stat.TotalWeight, err = row.Float("total_weight"); err != nil {
		return nil, internalError(op, err)
	}
	if stat.AvgWeight, err = row.Float("avg_weight"); err != nil {
		return nil, internalError(op, err)
	}
	return &stat, nil
}

func checkMealSlot(timestamp time.Time, meal models.Meal) error {
	if !meal.Valid() {
		return fmt.Errorf("unknown meal %d", int(meal))
	}
	if _, ok := timestampFromMillis(millis(timestamp)); !ok {
		return fmt.Errorf("timestamp %s is out of range", timestamp)
	}
	return nil
}

type bundlePortion struct {
	foodKey string
	weight  float64
}

// expandBundle flattens a bundle into food portions. Items with a zero
// quantity name nested bundles; each bundle is expanded at most once, so
// cycles terminate. A missing bundle at any depth fails with KindNotFound.
// Errors carry no operation label; the caller adds its own.
func expandBundle(ctx context.Context, tx *sql.Tx, userID int64, key string) ([]bundlePortion, error) {
	var (
		portions []bundlePortion
		queue    = []string{key}
		seen     = map[string]bool{key: true}
	)

	for i := 0; i < len(queue); i++ {
		rows, err := queryTx(ctx, tx, sqlSelectBundle, userID, queue[i])
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, newError(KindNotFound, "", fmt.Errorf("bundle %q", queue[i]))
		}

		b, err := bundleFromRow("", rows[0])
		if err != nil {
			return nil, err
		}

		for _, item := range slices.Sorted(maps.Keys(b.Data)) {
			qty := b.Data[item]
			if qty == 0 {
				if !seen[item] {
					seen[item] = true
					queue = append(queue, item)
				}
				continue
			}
			portions = append(portions, bundlePortion{foodKey: item, weight: qty})
		}
	}

	return portions, nil
}

func journalReportFromRow(row Row) (models.JournalReport, error) {
	var (
		r   models.JournalReport
		err error
	)
	if r.Timestamp, err = row.Timestamp("timestamp"); err != nil {
		return r, err
	}
	meal, err := row.Int("meal")
	if err != nil {
		return r, err
	}
	r.Meal = models.Meal(meal)
	if r.FoodKey, err = row.Text("food_key"); err != nil {
		return r, err
	}
	if r.FoodName, err = row.Text("food_name"); err != nil {
		return r, err
	}
	if r.FoodBrand, err = row.Text("food_brand"); err != nil {
		return r, err
	}
	if r.FoodWeight, err = row.Float("food_weight"); err != nil {
		return r, err
	}
	if r.Cal, err = row.Float("cal"); err != nil {
		return r, err
	}
	if r.Prot, err = row.Float("prot"); err != nil {
		return r, err
	}
	if r.Fat, err = row.Float("fat"); err != nil {
		return r, err
	}
	if r.Carb, err = row.Float("carb"); err != nil {
		return r, err
	}
	return r, nil
}
