package warehouse

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lakereflect/lakereflect/internal/describe"
	"github.com/lakereflect/lakereflect/internal/errs"
)

// mapError translates a warehouse driver error into a *errs.Error.
//
// The warehouse reports a missing table only inside the message text, with
// a spelling that changed between runtime versions, so classification goes
// through describe.IsTableNotFound rather than an error code.
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

	if describe.IsTableNotFound(err.Error()) {
		return errs.Wrap(errs.ErrKindNotFound, msg, err)
	}

	if errors.Is(err, sql.ErrConnDone) {
		return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
	}

	return errs.Wrap(errs.ErrKindQueryFailed, msg, err)
}
