package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies engine failures so callers can react to the
// category without parsing messages.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindInvalidRange
	KindUnavailable
	KindConflict
	KindStoreFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidRange:
		return "invalid_range"
	case KindUnavailable:
		return "unavailable"
	case KindConflict:
		return "conflict"
	case KindStoreFailure:
		return "store_failure"
	default:
		return "unknown"
	}
}

// Error carries an ErrorKind and optionally wraps a lower-level cause.
type Error struct {
	Kind ErrorKind
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

// Is matches any *Error with the same kind, so
// errors.Is(err, domain.ErrUnavailable) works for all unavailable
// errors regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels, one per kind, for errors.Is checks.
var (
	ErrNotFound     = &Error{Kind: KindNotFound, Msg: "record not found"}
	ErrInvalidRange = &Error{Kind: KindInvalidRange, Msg: "invalid date range"}
	ErrUnavailable  = &Error{Kind: KindUnavailable, Msg: "vehicle unavailable"}
	ErrConflict     = &Error{Kind: KindConflict, Msg: "illegal state transition"}
	ErrStoreFailure = &Error{Kind: KindStoreFailure, Msg: "store failure"}
)

func NotFoundf(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

func InvalidRangef(format string, args ...any) error {
	return &Error{Kind: KindInvalidRange, Msg: fmt.Sprintf(format, args...)}
}

func Unavailablef(format string, args ...any) error {
	return &Error{Kind: KindUnavailable, Msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) error {
	return &Error{Kind: KindConflict, Msg: fmt.Sprintf(format, args...)}
}

// StoreFailure wraps a driver or transaction error. These are the only
// engine errors a caller may retry.
func StoreFailure(msg string, err error) error {
	return &Error{Kind: KindStoreFailure, Msg: msg, Err: err}
}

// Retryable reports whether the caller may retry the operation once.
func Retryable(err error) bool {
	return errors.Is(err, ErrStoreFailure)
}
