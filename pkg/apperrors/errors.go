package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error so transport layers can map it to a status code
// without inspecting message text.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindInsufficientStock
	KindUnauthorized
	KindForbidden
)

// Error is the single error type returned by use cases. It carries a Kind
// and optionally wraps an underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match two taxonomy errors by kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Validationf reports malformed or out-of-range input.
func Validationf(format string, args ...interface{}) *Error {
	return newf(KindValidation, format, args...)
}

// NotFoundf reports that a referenced entity does not exist.
func NotFoundf(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

// Conflictf reports a uniqueness or duplicate-state violation.
func Conflictf(format string, args ...interface{}) *Error {
	return newf(KindConflict, format, args...)
}

// InsufficientStockf reports that a requested quantity exceeds available stock.
func InsufficientStockf(format string, args ...interface{}) *Error {
	return newf(KindInsufficientStock, format, args...)
}

// Unauthorizedf reports a missing or invalid identity.
func Unauthorizedf(format string, args ...interface{}) *Error {
	return newf(KindUnauthorized, format, args...)
}

// Forbiddenf reports a failed role or ownership check. The message must not
// reveal whether the target resource exists.
func Forbiddenf(format string, args ...interface{}) *Error {
	return newf(KindForbidden, format, args...)
}

// Internal wraps an unexpected failure. Transport layers return a generic
// message for this kind instead of the wrapped detail.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Msg: "internal error", Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal for errors
// that did not come from the taxonomy.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsValidation(err error) bool        { return KindOf(err) == KindValidation }
func IsNotFound(err error) bool          { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool          { return KindOf(err) == KindConflict }
func IsInsufficientStock(err error) bool { return KindOf(err) == KindInsufficientStock }
func IsForbidden(err error) bool         { return KindOf(err) == KindForbidden }

// HTTPStatus maps an error kind to the HTTP status code handlers respond with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return 400
	case KindUnauthorized:
		return 401
	case KindForbidden:
		return 403
	case KindNotFound:
		return 404
	case KindConflict, KindInsufficientStock:
		return 409
	default:
		return 500
	}
}
