package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an engine error so callers (HTTP handler, CLI) can map it
// to a status without string matching.
type Kind string

const (
	// KindValidation marks malformed input: bad ids, self-merge, empty names.
	KindValidation Kind = "validation"
	// KindNotFound marks a missing Location or Entry.
	KindNotFound Kind = "not_found"
	// KindConflict marks a stale-snapshot write: promoting an empty group,
	// merging into a deleted Location.
	KindConflict Kind = "conflict"
	// KindExternalService marks a reverse-geocoder failure (timeout,
	// rate-limit, 4xx/5xx). Always scoped to a single batch item.
	KindExternalService Kind = "external_service"
)

// Error is the typed error returned by the locations engine.
// Local store errors (disk/IO) are NOT wrapped in this type; they propagate
// raw and are treated as fatal for the current call.
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

func (e *Error) Unwrap() error {
	return e.Err
}

// Validationf builds a KindValidation error.
func Validationf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFoundf builds a KindNotFound error.
func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// Conflictf builds a KindConflict error.
func Conflictf(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// ExternalService wraps a geocoder failure, preserving the cause for logs.
func ExternalService(msg string, cause error) error {
	return &Error{Kind: KindExternalService, Msg: msg, Err: cause}
}

// Is reports whether err (or anything it wraps) is an engine error of the
// given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// KindOf returns the kind of an engine error, or "" for untyped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
