package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the services react to
const (
	PgErrInsufficientPrivilege = "42501" // insufficient_privilege
	PgErrUndefinedTable        = "42P01" // undefined_table
	PgErrForeignKeyViolation   = "23503" // foreign_key_violation
	PgErrUniqueViolation       = "23505" // unique_violation
	PgErrCheckViolation        = "23514" // check_violation
)

// PgErrorCode returns the SQLSTATE carried anywhere in err's chain, or ""
func PgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsPermissionDenied reports a row-level security or grant failure
func IsPermissionDenied(err error) bool {
	return PgErrorCode(err) == PgErrInsufficientPrivilege
}

// IsUndefinedTable reports a query against a missing relation
func IsUndefinedTable(err error) bool {
	return PgErrorCode(err) == PgErrUndefinedTable
}

// IsConstraintViolation reports foreign key, unique and check failures
func IsConstraintViolation(err error) bool {
	switch PgErrorCode(err) {
	case PgErrForeignKeyViolation, PgErrUniqueViolation, PgErrCheckViolation:
		return true
	}
	return false
}
