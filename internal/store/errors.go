package store

import (
	"errors"
	"fmt"
)

// Kind taxonomizes the ways a core operation can fail, independent of
// any particular collaborator's status-code mapping.
type Kind int

const (
	// KindNotFound means the key does not exist.
	KindNotFound Kind = iota
	// KindConflict means the operation is incompatible with the
	// stored value's kind, or would create a duplicate key.
	KindConflict
	// KindValidationFailed means the key regex did not match, or a
	// numeric parameter was given the wrong JSON type.
	KindValidationFailed
	// KindUnauthorized means authentication is enabled and the
	// credential is missing or unknown. The core itself never
	// returns this kind — it exists so collaborators share one
	// taxonomy — and httpapi's statusFor maps it to 401.
	KindUnauthorized
	// KindIoFailed means the snapshot could not be read or written.
	KindIoFailed
	// KindInternal is the catch-all for unexpected failures.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidationFailed:
		return "validation_failed"
	case KindUnauthorized:
		return "unauthorized"
	case KindIoFailed:
		return "io_failed"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is the core's discriminated error value: a Kind plus an
// optional wrapped cause, grounded on the teacher's sentinel-error
// idiom (redis.ErrChannelNotFound) generalized to a small taxonomy
// since this domain needs more than one kind.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newErr(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func wrapErr(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// ErrNotFound is a convenience sentinel matching key-not-found.
var ErrNotFound = newErr(KindNotFound, "record not found")

// ErrConflict is a convenience sentinel for generic conflicts.
var ErrConflict = newErr(KindConflict, "conflicting operation")

// ErrValidationFailed is a convenience sentinel for validation failures.
var ErrValidationFailed = newErr(KindValidationFailed, "validation failed")

// KindOf extracts the Kind from err if it is (or wraps) a *Error,
// defaulting to KindInternal otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
