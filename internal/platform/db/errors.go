package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hms/hms/internal/platform/apperror"
)

// Postgres error classes surfaced as constraint violations.
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// Translate maps driver-level integrity errors onto the shared taxonomy so
// services and handlers can branch with errors.Is instead of inspecting
// SQLSTATE codes. Anything else passes through unchanged.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeForeignKeyViolation, codeUniqueViolation, codeCheckViolation:
			return apperror.Constraint("%s", pgErr.Message)
		}
	}
	return err
}
