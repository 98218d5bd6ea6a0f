package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	pkgerrors "scholaria/backend/pkg/errors"
)

const uniqueViolationCode = "23505"

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation, returning the constraint name when it is. The scheduling
// services use the name to tell a room clash from a professor or class
// clash after losing a concurrent insert race.
func IsUniqueViolation(err error) (constraint string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// isConnFailure reports whether err is a connection-level PostgreSQL
// failure (SQLSTATE class 08, server shutdown 57P0x).
func isConnFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08") || strings.HasPrefix(pgErr.Code, "57P")
	}
	return false
}

// withRetry runs a mutating statement and retries it once when the first
// attempt dies on a connection failure. Every mutating operation is
// idempotent on the natural identity of its row, so the second attempt is
// safe. A failure that survives the retry surfaces as ErrStorageUnavailable
// and the HTTP layer answers 503 instead of 500; any other error, including
// constraint violations, passes through untouched.
func withRetry(op func() error) error {
	err := op()
	if isConnFailure(err) {
		err = op()
	}
	if isConnFailure(err) {
		return pkgerrors.ErrStorageUnavailable
	}
	return err
}
