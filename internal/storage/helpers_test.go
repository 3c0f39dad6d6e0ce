// ABOUTME: Shared test helpers for the storage package.
// ABOUTME: Opens a throwaway database in a temp dir with a test logger.
package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "myhealth-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := Open(filepath.Join(tmpDir, "myhealth.db"), WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// ms returns the timestamp for an epoch-milliseconds value.
func ms(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}
