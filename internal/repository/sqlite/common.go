// Package sqlite implements the repository contracts on the embedded
// SQLite backend using a shared sqlx handle.
package sqlite

import (
	"errors"
	"strings"

	"github.com/mattn/go-sqlite3"

	apperrors "github.com/wataru0019/enconapp/internal/pkg/errors"
)

// isUniqueViolation reports whether err is a unique constraint failure
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// isForeignKeyViolation reports whether err is a foreign key constraint failure
func isForeignKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}

// isCheckViolation reports whether err is a CHECK constraint failure
func isCheckViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintCheck
	}
	return false
}

// translateConstraintError maps driver constraint failures to typed errors.
// Non-constraint errors pass through unchanged.
func translateConstraintError(err error, conflictMsg string) error {
	switch {
	case isUniqueViolation(err):
		return apperrors.Conflict(conflictMsg).WithError(err)
	case isForeignKeyViolation(err):
		return apperrors.Validation("referenced record does not exist").WithError(err)
	case isCheckViolation(err):
		return apperrors.Validation("value violates an allowed-values constraint").WithError(err)
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a substring-match pattern with LIKE metacharacters in
// the query treated literally. Pair with ESCAPE '\' in the statement.
func likePattern(query string) string {
	return "%" + likeEscaper.Replace(query) + "%"
}

// normalizeLimit clamps paging parameters to sane values
func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
