// ABOUTME: SQLite storage engine lifecycle: open, pragmas, migrations, close.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required).
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// busyTimeout bounds how long a statement waits on a locked database file
// before failing.
const busyTimeout = 5 * time.Second

// initTimeout bounds schema setup during Open.
const initTimeout = 30 * time.Second

// DB is the SQLite implementation of Storage.
type DB struct {
	gw        *gateway
	logger    *zap.Logger
	validator Validator
}

var _ Storage = (*DB)(nil)

// Option configures a DB at open time.
type Option func(*DB)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(d *DB) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithValidator replaces the validation contract consulted before writes.
func WithValidator(v Validator) Option {
	return func(d *DB) {
		if v != nil {
			d.validator = v
		}
	}
}

// Open opens or creates a SQLite database at the given path and brings its
// schema up to date. No operation is possible before migrations finish.
func Open(dbPath string, opts ...Option) (*DB, error) {
	return open(dbPath, allMigrations(), opts...)
}

func open(dbPath string, migrations []migration, opts ...Option) (*DB, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	if err := registerFunctions(); err != nil {
		return nil, fmt.Errorf("register sql functions: %w", err)
	}

	conn, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &DB{
		gw:        newGateway(conn),
		logger:    zap.NewNop(),
		validator: defaultValidator,
	}
	for _, opt := range opts {
		opt(d)
	}

	ctx, cancel := context.WithTimeout(context.Background(), initTimeout)
	defer cancel()

	if err := d.gw.execute(ctx, sqlCreateTableSystem, true); err != nil {
		_ = d.gw.close()
		return nil, fmt.Errorf("create system table: %w", err)
	}

	if err := d.migrate(ctx, migrations); err != nil {
		_ = d.gw.close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	// Set file permissions
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		_ = d.gw.close()
		return nil, fmt.Errorf("set database permissions: %w", err)
	}

	return d, nil
}

// dsn builds the connection string. Pragmas are applied by the driver on the
// connection itself, so they hold even if the pool reconnects.
func dsn(dbPath string) string {
	return fmt.Sprintf(
		"file:%s?mode=rwc&_pragma=busy_timeout(%d)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)",
		dbPath, busyTimeout.Milliseconds(),
	)
}

// DataDir returns the default data directory under $XDG_DATA_HOME.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "myhealth")
}

// Close closes the database connection.
func (d *DB) Close() error {
	if d.gw != nil {
		return d.gw.close()
	}
	return nil
}
