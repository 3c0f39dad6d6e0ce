// ABOUTME: Tests for bundle operations.
// ABOUTME: Covers per-user scoping, JSON round trip, and malformed stored data.
package storage

import (
	"context"
	"testing"

	"github.com/harperreed/myhealth/internal/models"
	"github.com/stretchr/testify/require"
)

func TestBundleRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	b := &models.Bundle{Key: "breakfast", Data: map[string]float64{"oats": 60, "milk": 200, "fruit_mix": 0}}
	require.NoError(t, db.SetBundle(ctx, 1, b))

	got, err := db.GetBundle(ctx, 1, "breakfast")
	require.NoError(t, err)
	require.Equal(t, *b, *got)

	_, err = db.GetBundle(ctx, 2, "breakfast")
	require.True(t, IsStorageError(KindNotFound, err), "bundles belong to one user")

	b2 := &models.Bundle{Key: "breakfast", Data: map[string]float64{"eggs": 120}}
	require.NoError(t, db.SetBundle(ctx, 1, b2))
	got, err = db.GetBundle(ctx, 1, "breakfast")
	require.NoError(t, err)
	require.Equal(t, *b2, *got)
}

func TestBundleList(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.GetBundleList(ctx, 1)
	require.True(t, IsStorageError(KindEmptyList, err))

	require.NoError(t, db.SetBundle(ctx, 1, &models.Bundle{Key: "lunch", Data: map[string]float64{"rice": 150}}))
	require.NoError(t, db.SetBundle(ctx, 1, &models.Bundle{Key: "dinner", Data: map[string]float64{"soup": 300}}))
	require.NoError(t, db.SetBundle(ctx, 2, &models.Bundle{Key: "snack", Data: map[string]float64{"nuts": 30}}))

	list, err := db.GetBundleList(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "dinner", list[0].Key)
	require.Equal(t, "lunch", list[1].Key)
}

func TestBundleDeleteAndValidation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.DeleteBundle(ctx, 1, "none"))

	err := db.SetBundle(ctx, 1, &models.Bundle{Key: "empty"})
	require.True(t, IsStorageError(KindInvalidBundle, err))

	require.NoError(t, db.SetBundle(ctx, 1, &models.Bundle{Key: "lunch", Data: map[string]float64{"rice": 150}}))
	require.NoError(t, db.DeleteBundle(ctx, 1, "lunch"))
	_, err = db.GetBundle(ctx, 1, "lunch")
	require.True(t, IsStorageError(KindNotFound, err))
}

func TestBundleMalformedData(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.gw.execute(ctx, sqlUpsertBundle, false, int64(1), "broken", "{oops"))

	_, err := db.GetBundle(ctx, 1, "broken")
	require.True(t, IsStorageError(KindMalformedData, err))
	require.False(t, IsStorageError(KindNotFound, err))

	_, err = db.GetBundleList(ctx, 1)
	require.True(t, IsStorageError(KindMalformedData, err))
}
