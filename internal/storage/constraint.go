// ABOUTME: Recognizes SQLite constraint failures in a driver error chain.
// ABOUTME: Entity operations translate them into domain error kinds at the failing statement.
package storage

import (
	"errors"
	"strings"

	"go.uber.org/zap"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// isForeignKeyViolation reports whether err was caused by a failed foreign
// key constraint. Older SQLite builds report only the primary constraint
// code, so the message is checked as a fallback.
func isForeignKeyViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	if code == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT &&
		strings.Contains(sqliteErr.Error(), "FOREIGN KEY constraint failed")
}

// translateForeignKey replaces a foreign key failure with the given domain
// kind. Any other error is returned as an internal failure of op.
func (d *DB) translateForeignKey(op string, err error, kind ErrorKind) error {
	if isForeignKeyViolation(err) {
		d.logger.Debug("foreign key violation translated",
			zap.String("op", op),
			zap.Stringer("kind", kind),
			zap.Error(err),
		)
		return newError(kind, op, err)
	}
	return internalError(op, err)
}
