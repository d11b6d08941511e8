package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lakereflect/lakereflect/internal/errs"
)

// PostgreSQL SQLSTATE error codes (reflection-relevant only)
// Full list: https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgErrUndefinedTable    = "42P01"
	pgErrUndefinedColumn   = "42703"
	pgErrSyntaxError       = "42601"
	pgErrInvalidAuth       = "28000"
	pgErrInvalidPassword   = "28P01"
	pgErrQueryCanceled     = "57014"
	pgErrClassConnection   = "08" // connection exception class
)

// mapError translates a pgx error into a *errs.Error.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		kind := classifySQLState(pgErr.Code)
		return errs.Wrap(kind, fmt.Sprintf("%s: %s", msg, pgErr.Message), err)
	}

	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}

// classifySQLState maps a SQLSTATE code to an ErrKind.
func classifySQLState(code string) errs.ErrKind {
	switch code {
	case pgErrUndefinedTable:
		return errs.ErrKindNotFound
	case pgErrInvalidAuth, pgErrInvalidPassword:
		return errs.ErrKindConnectionFailed
	case pgErrQueryCanceled:
		return errs.ErrKindTimeout
	case pgErrSyntaxError, pgErrUndefinedColumn:
		return errs.ErrKindQueryFailed
	}
	if strings.HasPrefix(code, pgErrClassConnection) {
		return errs.ErrKindConnectionFailed
	}
	return errs.ErrKindQueryFailed
}
