// ABOUTME: Raw SQL gateway serializing every statement through one guarded connection.
// ABOUTME: Registers the unicode_upper SQL function used for case-insensitive search.
package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"sync"

	"modernc.org/sqlite"
)

// upperFunc uppercases text with Unicode case mapping. SQLite's built-in
// upper() only folds ASCII.
const upperFunc = "unicode_upper"

var (
	registerOnce sync.Once
	registerErr  error
)

// registerFunctions installs the custom SQL functions. The modernc driver
// registers functions process-wide, so this runs once before the first open.
func registerFunctions() error {
	registerOnce.Do(func() {
		registerErr = sqlite.RegisterDeterministicScalarFunction(upperFunc, 1, unicodeUpper)
	})
	return registerErr
}

func unicodeUpper(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%s: called with %d arguments", upperFunc, len(args))
	}
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToUpper(v), nil
	case []byte:
		return strings.ToUpper(string(v)), nil
	default:
		return nil, fmt.Errorf("%s: argument must be text, got %T", upperFunc, v)
	}
}

// gateway owns the only handle to the database. At most one statement runs
// at a time regardless of how many goroutines call in.
type gateway struct {
	mu sync.Mutex
	db *sql.DB
}

func newGateway(db *sql.DB) *gateway {
	// One connection keeps pragmas and the lock discipline in one place.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	return &gateway{db: db}
}

// query runs a parameterized select and materializes every row before the
// lock is released. An empty result is not an error.
func (g *gateway) query(ctx context.Context, query string, args ...any) ([]Row, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	rows, err := g.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return collectRows(rows)
}

// queryTx is query for use inside inTx, where the lock is already held.
func queryTx(ctx context.Context, tx *sql.Tx, query string, args ...any) ([]Row, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return collectRows(rows)
}

// collectRows decodes every row and closes rows. Column names are read once
// per result set.
func collectRows(rows *sql.Rows) ([]Row, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	var result []Row
	for rows.Next() {
		raw := make([]any, len(columns))
		dest := make([]any, len(columns))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(result), err)
		}

		values := make([]Value, len(columns))
		for i, v := range raw {
			values[i], err = valueOf(v)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", columns[i], err)
			}
		}
		result = append(result, newRow(columns, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return result, nil
}

// execute runs one parameterized statement, or with batch set, an
// unparameterized script of several statements.
func (g *gateway) execute(ctx context.Context, query string, batch bool, args ...any) error {
	if batch && len(args) > 0 {
		return errors.New("execute batch: batch scripts take no parameters")
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, err := g.db.ExecContext(ctx, query, args...); err != nil {
		if batch {
			return fmt.Errorf("execute batch: %w", err)
		}
		return fmt.Errorf("execute: %w", err)
	}
	return nil
}

// inTx runs fn inside a transaction while holding the connection lock.
// Any error from fn rolls the whole transaction back.
func (g *gateway) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (g *gateway) close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.db.Close()
}
