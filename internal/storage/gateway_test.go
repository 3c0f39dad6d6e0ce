// ABOUTME: Tests for the SQL gateway: row materialization, batches, transactions, concurrency.
// ABOUTME: Also checks the unicode_upper function registered with the driver.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	"github.com/harperreed/myhealth/internal/models"
	"github.com/stretchr/testify/require"
)

func TestGatewayQueryEmptyResult(t *testing.T) {
	db := setupTestDB(t)

	rows, err := db.gw.query(context.Background(), sqlSelectFoodList)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestGatewayQueryColumnsInSelectOrder(t *testing.T) {
	db := setupTestDB(t)

	rows, err := db.gw.query(context.Background(), `SELECT 1 AS b, 'x' AS a, 2.5 AS c, NULL AS d`)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, []string{"b", "a", "c", "d"}, rows[0].Columns())

	v, ok := rows[0].Get("d")
	require.True(t, ok)
	require.Equal(t, ValueNull, v.Kind)
}

func TestGatewayRowsDoNotShareColumns(t *testing.T) {
	db := setupTestDB(t)

	rows, err := db.gw.query(context.Background(), `SELECT 1 AS a UNION ALL SELECT 2`)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	cols := rows[0].Columns()
	cols[0] = "changed"
	require.Equal(t, []string{"a"}, rows[0].Columns())
	require.Equal(t, []string{"a"}, rows[1].Columns())
}

func TestGatewayExecuteBatch(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	err := db.gw.execute(ctx, `
		CREATE TABLE t1 (x INTEGER NOT NULL) STRICT;
		INSERT INTO t1 (x) VALUES (1);
		INSERT INTO t1 (x) VALUES (2);
	`, true)
	require.NoError(t, err)

	rows, err := db.gw.query(ctx, `SELECT x FROM t1 ORDER BY x`)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	err = db.gw.execute(ctx, `INSERT INTO t1 (x) VALUES (?)`, true, 3)
	require.Error(t, err)
}

func TestGatewayInTxRollsBack(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	boom := errors.New("boom")
	err := db.gw.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, sqlUpsertSport, "run", "Running", ""); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = db.GetSport(ctx, "run")
	require.True(t, IsStorageError(KindNotFound, err))
}

func TestUnicodeUpper(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	rows, err := db.gw.query(ctx, `SELECT unicode_upper(?) AS u`, "дружба Kiwi")
	require.NoError(t, err)
	got, err := rows[0].Text("u")
	require.NoError(t, err)
	require.Equal(t, "ДРУЖБА KIWI", got)

	rows, err = db.gw.query(ctx, `SELECT unicode_upper(NULL) AS u`)
	require.NoError(t, err)
	v, _ := rows[0].Get("u")
	require.Equal(t, ValueNull, v.Kind)

	_, err = db.gw.query(ctx, `SELECT unicode_upper(1) AS u`)
	require.Error(t, err)
}

func TestGatewayConcurrentWriters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	const writers = 16
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := range writers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := &models.Weight{Timestamp: ms(int64(i + 1)), Value: float64(i + 1)}
			errs <- db.SetWeight(ctx, 1, w)
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	list, err := db.GetWeightList(ctx, 1, ms(0), ms(writers))
	require.NoError(t, err)
	require.Len(t, list, writers)
}
