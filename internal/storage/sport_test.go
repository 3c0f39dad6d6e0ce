// ABOUTME: Tests for sport catalog and sport activity operations.
// ABOUTME: Covers foreign key translation in both directions and the activity report.
package storage

import (
	"context"
	"testing"

	"github.com/harperreed/myhealth/internal/models"
	"github.com/stretchr/testify/require"
)

func TestSportRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	s := &models.Sport{Key: "pushups", Name: "Push-ups", Comment: "wide grip"}
	require.NoError(t, db.SetSport(ctx, s))

	got, err := db.GetSport(ctx, "pushups")
	require.NoError(t, err)
	require.Equal(t, *s, *got)

	s2 := &models.Sport{Key: "pushups", Name: "Pushups"}
	require.NoError(t, db.SetSport(ctx, s2))
	got, err = db.GetSport(ctx, "pushups")
	require.NoError(t, err)
	require.Equal(t, *s2, *got)

	_, err = db.GetSport(ctx, "missing")
	require.True(t, IsStorageError(KindNotFound, err))
}

func TestSportList(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	_, err := db.GetSportList(ctx)
	require.True(t, IsStorageError(KindEmptyList, err))

	require.NoError(t, db.SetSport(ctx, &models.Sport{Key: "squats", Name: "Squats"}))
	require.NoError(t, db.SetSport(ctx, &models.Sport{Key: "pullups", Name: "Pull-ups"}))

	list, err := db.GetSportList(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.Sport{
		{Key: "pullups", Name: "Pull-ups"},
		{Key: "squats", Name: "Squats"},
	}, list)
}

func TestSetSportRejectsInvalid(t *testing.T) {
	db := setupTestDB(t)

	err := db.SetSport(context.Background(), &models.Sport{Key: "x"})
	require.True(t, IsStorageError(KindInvalidSport, err))
}

func TestSportActivityForeignKeyScenario(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	a := &models.SportActivity{SportKey: "pushups", Timestamp: ms(1000), Sets: []int64{10, 12, 8}}

	err := db.SetSportActivity(ctx, 1, a)
	require.True(t, IsStorageError(KindInvalidSportReference, err), "got %v", err)
	require.False(t, IsStorageError(KindInvalidSportActivity, err))
	require.ErrorIs(t, err, ErrInvalidSportReference)

	require.NoError(t, db.SetSport(ctx, &models.Sport{Key: "pushups", Name: "Push-ups"}))
	require.NoError(t, db.SetSportActivity(ctx, 1, a))

	err = db.DeleteSport(ctx, "pushups")
	require.True(t, IsStorageError(KindSportIsUsed, err), "got %v", err)

	_, err = db.GetSport(ctx, "pushups")
	require.NoError(t, err, "blocked delete must leave the sport in place")

	require.NoError(t, db.DeleteSportActivity(ctx, 1, a.Timestamp, a.SportKey))
	require.NoError(t, db.DeleteSport(ctx, "pushups"))

	_, err = db.GetSport(ctx, "pushups")
	require.True(t, IsStorageError(KindNotFound, err))
}

func TestSetSportKeepsActivities(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SetSport(ctx, &models.Sport{Key: "run", Name: "Run"}))
	require.NoError(t, db.SetSportActivity(ctx, 1, &models.SportActivity{SportKey: "run", Timestamp: ms(5), Sets: []int64{1}}))

	require.NoError(t, db.SetSport(ctx, &models.Sport{Key: "run", Name: "Running"}))

	report, err := db.GetSportActivityReport(ctx, 1, ms(0), ms(10))
	require.NoError(t, err)
	require.Len(t, report, 1)
	require.Equal(t, "Running", report[0].SportName)
}

func TestSetSportActivityRejectsInvalid(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	err := db.SetSportActivity(ctx, 1, &models.SportActivity{SportKey: "run", Timestamp: ms(1)})
	require.True(t, IsStorageError(KindInvalidSportActivity, err))
}

func TestSportActivityReport(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SetSport(ctx, &models.Sport{Key: "pushups", Name: "Push-ups"}))
	require.NoError(t, db.SetSport(ctx, &models.Sport{Key: "squats", Name: "Squats"}))

	activities := []struct {
		user int64
		a    *models.SportActivity
	}{
		{1, &models.SportActivity{SportKey: "squats", Timestamp: ms(30), Sets: []int64{20}}},
		{1, &models.SportActivity{SportKey: "pushups", Timestamp: ms(10), Sets: []int64{10, 12}}},
		{1, &models.SportActivity{SportKey: "squats", Timestamp: ms(10), Sets: []int64{15, 15}}},
		{2, &models.SportActivity{SportKey: "pushups", Timestamp: ms(20), Sets: []int64{5}}},
		{1, &models.SportActivity{SportKey: "pushups", Timestamp: ms(99), Sets: []int64{1}}},
	}
	for _, x := range activities {
		require.NoError(t, db.SetSportActivity(ctx, x.user, x.a))
	}

	report, err := db.GetSportActivityReport(ctx, 1, ms(0), ms(50))
	require.NoError(t, err)
	require.Equal(t, []models.SportActivityReport{
		{SportName: "Push-ups", Timestamp: ms(10), Sets: []int64{10, 12}},
		{SportName: "Squats", Timestamp: ms(10), Sets: []int64{15, 15}},
		{SportName: "Squats", Timestamp: ms(30), Sets: []int64{20}},
	}, report)

	_, err = db.GetSportActivityReport(ctx, 3, ms(0), ms(50))
	require.True(t, IsStorageError(KindEmptyList, err))
}

func TestSportActivityUpsertReplacesSets(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SetSport(ctx, &models.Sport{Key: "run", Name: "Run"}))
	require.NoError(t, db.SetSportActivity(ctx, 1, &models.SportActivity{SportKey: "run", Timestamp: ms(1), Sets: []int64{1, 2, 3}}))
	require.NoError(t, db.SetSportActivity(ctx, 1, &models.SportActivity{SportKey: "run", Timestamp: ms(1), Sets: []int64{9}}))

	report, err := db.GetSportActivityReport(ctx, 1, ms(0), ms(1))
	require.NoError(t, err)
	require.Len(t, report, 1)
	require.Equal(t, []int64{9}, report[0].Sets)
}

func TestSportActivityMalformedSets(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.SetSport(ctx, &models.Sport{Key: "run", Name: "Run"}))
	require.NoError(t, db.gw.execute(ctx, sqlUpsertSportActivity, false, int64(1), int64(1), "run", "not json"))

	_, err := db.GetSportActivityReport(ctx, 1, ms(0), ms(10))
	require.True(t, IsStorageError(KindMalformedData, err), "got %v", err)
	require.False(t, IsNothingFound(err))
}
