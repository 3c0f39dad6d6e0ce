// ABOUTME: Tests for food catalog operations.
// ABOUTME: Includes the case-insensitive, script-independent search.
package storage

import (
	"context"
	"math"
	"testing"

	"github.com/harperreed/myhealth/internal/models"
	"github.com/stretchr/testify/require"
)

func TestFoodRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	f := &models.Food{
		Key: "apple", Name: "Apple", Brand: "Orchard",
		Cal100: 52, Prot100: 0.3, Fat100: 0.2, Carb100: 14, Comment: "green",
	}
	require.NoError(t, db.SetFood(ctx, f))

	got, err := db.GetFood(ctx, "apple")
	require.NoError(t, err)
	require.Equal(t, *f, *got)

	// A second set replaces every field.
	f2 := &models.Food{Key: "apple", Name: "Red apple", Cal100: 60}
	require.NoError(t, db.SetFood(ctx, f2))

	got, err = db.GetFood(ctx, "apple")
	require.NoError(t, err)
	require.Equal(t, *f2, *got)
}

func TestFoodNotFoundAndEmptyList(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.GetFood(ctx, "missing")
	require.True(t, db.IsStorageError(KindNotFound, err))
	require.ErrorIs(t, err, ErrNotFound)

	_, err = db.GetFoodList(ctx)
	require.True(t, db.IsStorageError(KindEmptyList, err))
	require.False(t, db.IsStorageError(KindNotFound, err))
}

func TestFoodListOrderedByKey(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, key := range []string{"cherry", "apple", "banana"} {
		require.NoError(t, db.SetFood(ctx, &models.Food{Key: key, Name: key}))
	}

	list, err := db.GetFoodList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "apple", list[0].Key)
	require.Equal(t, "banana", list[1].Key)
	require.Equal(t, "cherry", list[2].Key)
}

func TestSetFoodRejectsInvalid(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	err := db.SetFood(ctx, &models.Food{Name: "No key"})
	require.True(t, IsStorageError(KindInvalidFood, err))
	require.True(t, IsRejectedInput(err))
	require.ErrorIs(t, err, models.ErrInvalid)

	err = db.SetFood(ctx, &models.Food{Key: "nan", Name: "NaN", Cal100: math.NaN()})
	require.True(t, IsStorageError(KindInvalidFood, err))

	_, err = db.GetFoodList(ctx)
	require.True(t, IsStorageError(KindEmptyList, err), "nothing may be written")
}

func TestDeleteFood(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.DeleteFood(ctx, "never-existed"))

	require.NoError(t, db.SetFood(ctx, &models.Food{Key: "apple", Name: "Apple"}))
	require.NoError(t, db.DeleteFood(ctx, "apple"))

	_, err := db.GetFood(ctx, "apple")
	require.True(t, IsStorageError(KindNotFound, err))
	_, err = db.GetFoodList(ctx)
	require.True(t, IsStorageError(KindEmptyList, err))
}

func TestFindFood(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	foods := []*models.Food{
		{Key: "key1", Name: "Some KEY food"},
		{Key: "key2", Name: "Plain", Brand: "keyStone"},
		{Key: "key3", Name: "Plain", Comment: "has a key inside"},
		{Key: "key4", Name: "Сырок Дружба"},
		{Key: "key5", Name: "Unrelated"},
	}
	for _, f := range foods {
		require.NoError(t, db.SetFood(ctx, f))
	}

	got, err := db.FindFood(ctx, "kEy")
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "key1", got[0].Key)
	require.Equal(t, "key2", got[1].Key)
	require.Equal(t, "key3", got[2].Key)

	got, err = db.FindFood(ctx, "дружба")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "key4", got[0].Key)

	_, err = db.FindFood(ctx, "nothing like this")
	require.True(t, IsStorageError(KindEmptyList, err))
}
