// Package postgres implements the repository contracts on the distributed
// PostgreSQL backend using a pgx connection pool.
package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/wataru0019/enconapp/internal/pkg/errors"
)

// PostgreSQL error codes (class 23: integrity constraint violation)
const (
	pgErrForeignKeyViolation = "23503"
	pgErrUniqueViolation     = "23505"
	pgErrCheckViolation      = "23514"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// translateConstraintError maps constraint failures to typed errors.
// Non-constraint errors pass through unchanged.
func translateConstraintError(err error, conflictMsg string) error {
	switch pgErrorCode(err) {
	case pgErrUniqueViolation:
		return apperrors.Conflict(conflictMsg).WithError(err)
	case pgErrForeignKeyViolation:
		return apperrors.Validation("referenced record does not exist").WithError(err)
	case pgErrCheckViolation:
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
