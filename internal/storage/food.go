// ABOUTME: Food catalog operations: get, list, case-insensitive find, upsert, delete.
// ABOUTME: Foods are global; they are not owned by a user.
package storage

import (
	"context"
	"strings"

	"github.com/harperreed/myhealth/internal/models"
)

// GetFood retrieves a food by key.
func (d *DB) GetFood(ctx context.Context, key string) (*models.Food, error) {
	const op = "get food"

	rows, err := d.gw.query(ctx, sqlSelectFood, key)
	if err != nil {
		return nil, internalError(op, err)
	}
	if len(rows) == 0 {
		return nil, newError(KindNotFound, op, nil)
	}

	f, err := foodFromRow(rows[0])
	if err != nil {
		return nil, internalError(op, err)
	}
	return &f, nil
}

// GetFoodList returns the whole catalog ordered by key.
func (d *DB) GetFoodList(ctx context.Context) ([]models.Food, error) {
	const op = "get food list"

	rows, err := d.gw.query(ctx, sqlSelectFoodList)
	if err != nil {
		return nil, internalError(op, err)
	}
	return foodsFromRows(op, rows)
}

// FindFood returns foods whose name, brand or comment contains pattern,
// ignoring case in any script.
func (d *DB) FindFood(ctx context.Context, pattern string) ([]models.Food, error) {
	const op = "find food"

	rows, err := d.gw.query(ctx, sqlFindFood, strings.ToUpper(pattern))
	if err != nil {
		return nil, internalError(op, err)
	}
	return foodsFromRows(op, rows)
}

// SetFood creates or fully replaces a food.
func (d *DB) SetFood(ctx context.Context, f *models.Food) error {
	const op = "set food"

	if err := d.validator.Food(f); err != nil {
		return newError(KindInvalidFood, op, err)
	}

	err := d.gw.execute(ctx, sqlUpsertFood, false,
		f.Key, f.Name, f.Brand, f.Cal100, f.Prot100, f.Fat100, f.Carb100, f.Comment)
	if err != nil {
		return internalError(op, err)
	}
	return nil
}

// DeleteFood removes a food. Deleting a missing key is not an error; a food
// still eaten in any journal fails with KindFoodIsUsed.
func (d *DB) DeleteFood(ctx context.Context, key string) error {
	const op = "delete food"

	if err := d.gw.execute(ctx, sqlDeleteFood, false, key); err != nil {
		return d.translateForeignKey(op, err, KindFoodIsUsed)
	}
	return nil
}

func foodsFromRows(op string, rows []Row) ([]models.Food, error) {
	if len(rows) == 0 {
		return nil, newError(KindEmptyList, op, nil)
	}

	foods := make([]models.Food, 0, len(rows))
	for _, row := range rows {
		f, err := foodFromRow(row)
		if err != nil {
			return nil, internalError(op, err)
		}
		foods = append(foods, f)
	}
	return foods, nil
}

func foodFromRow(row Row) (models.Food, error) {
	var (
		f   models.Food
		err error
	)
	if f.Key, err = row.Text("key"); err != nil {
		return f, err
	}
	if f.Name, err = row.Text("name"); err != nil {
		return f, err
	}
	if f.Brand, err = row.Text("brand"); err != nil {
		return f, err
	}
	if f.Cal100, err = row.Float("cal100"); err != nil {
		return f, err
	}
	if f.Prot100, err = row.Float("prot100"); err != nil {
		return f, err
	}
	if f.Fat100, err = row.Float("fat100"); err != nil {
		return f, err
	}
	if f.Carb100, err = row.Float("carb100"); err != nil {
		return f, err
	}
	if f.Comment, err = row.Text("comment"); err != nil {
		return f, err
	}
	return f, nil
}
