package minio

import (
	"context"
	"errors"
	"net/http"

	miniogo "github.com/minio/minio-go/v7"

	"github.com/lakereflect/lakereflect/internal/errs"
)

// mapError translates a failure from the object-storage SDK into a
// *errs.Error, so snapshot callers can use the errs.Is* predicates the
// same way they do against the reflection backends. A missing snapshot
// object surfaces as ErrKindNotFound; everything unrecognized is treated
// as a connectivity problem.
func mapError(err error, msg string) *errs.Error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.Wrap(errs.ErrKindTimeout, msg, err)
	}

	var resp miniogo.ErrorResponse
	if errors.As(err, &resp) {
		return errs.Wrap(kindForResponse(resp), msg, err)
	}

	return errs.Wrap(errs.ErrKindConnectionFailed, msg, err)
}

// kindForResponse classifies an S3-protocol error response. The S3 error
// code is authoritative when present; the HTTP status is the fallback for
// responses that carry no code.
func kindForResponse(resp miniogo.ErrorResponse) errs.ErrKind {
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket":
		// Missing snapshot object, or the bucket was never provisioned.
		return errs.ErrKindNotFound
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return errs.ErrKindPermissionDenied
	case "InvalidObjectName", "InvalidBucketName", "KeyTooLongError":
		// A snapshot key that the store refuses, e.g. an oversized
		// catalog/schema segment.
		return errs.ErrKindInvalidInput
	case "RequestTimeout", "SlowDown":
		return errs.ErrKindTimeout
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return errs.ErrKindNotFound
	case http.StatusForbidden, http.StatusUnauthorized:
		return errs.ErrKindPermissionDenied
	case http.StatusBadRequest:
		return errs.ErrKindInvalidInput
	}
	return errs.ErrKindConnectionFailed
}
