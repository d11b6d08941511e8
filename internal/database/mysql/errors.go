package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"

	"github.com/lakereflect/lakereflect/internal/errs"
)

// MySQL error numbers (reflection-relevant only)
// Full list: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	errNoSuchTable     = 1146
	errBadFieldError   = 1054
	errSyntaxError     = 1064
	errAccessDenied    = 1045
	errDBAccessDenied  = 1044
	errUnknownDatabase = 1049
	errTooManyConns    = 1040
	errConnRefused     = 2003
)

// mapError translates a go-sql-driver/mysql error into a *errs.Error.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	}

	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return errs.Wrap(
			classifyErrno(mysqlErr.Number),
			fmt.Sprintf("%s: %s", msg, mysqlErr.Message),
			err,
		)
	}

	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}

// classifyErrno maps MySQL error numbers to ErrKind.
func classifyErrno(code uint16) errs.ErrKind {
	switch code {
	case errNoSuchTable:
		return errs.ErrKindNotFound
	case errAccessDenied, errDBAccessDenied, errUnknownDatabase, errTooManyConns, errConnRefused:
		return errs.ErrKindConnectionFailed
	case errBadFieldError, errSyntaxError:
		return errs.ErrKindQueryFailed
	default:
		return errs.ErrKindQueryFailed
	}
}
