// Package booking contains the slot-allocation core: per-date availability
// resolution, the conflict-guarded reservation path, pricing, bulk
// allocation and payment reconciliation.  The package talks to persistence
// through the store interfaces declared in stores.go so that every rule in
// here can be exercised without a database.
package booking

import (
	"errors"
	"fmt"
)

// Kind classifies a booking error so handlers can map it to an HTTP
// status without string matching.  The set is closed; every error the
// engine returns carries exactly one kind.
type Kind int

const (
	// KindNotFound covers missing or inactive courts, templates and
	// reservations.
	KindNotFound Kind = iota + 1
	// KindConflict covers an occupied slot as well as duplicate holiday
	// entries and overlapping templates.
	KindConflict
	// KindValidation covers malformed input: bad time strings, reversed
	// ranges, weekday values outside 0..6, ranges or cell counts over
	// the configured caps, non-positive amounts.
	KindValidation
	// KindAuthorization is returned when the access checker denies a
	// user for a restricted court.
	KindAuthorization
	// KindState covers transitions the reservation state machine
	// forbids, e.g. cancelling a completed reservation or paying more
	// than the outstanding balance.
	KindState
	// KindInternal wraps unexpected store failures.
	KindInternal
)

// Error is the typed failure returned by every engine operation.  Msg is
// safe to surface to API clients; Err, when set, preserves the
// underlying cause for logs and errors.Is checks.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Unwrap exposes the wrapped cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Err }

// NotFound builds a KindNotFound error.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Msg: msg} }

// Conflict builds a KindConflict error.
func Conflict(msg string) *Error { return &Error{Kind: KindConflict, Msg: msg} }

// Invalid builds a KindValidation error.
func Invalid(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }

// Invalidf builds a KindValidation error with a formatted message.
func Invalidf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Unauthorized builds a KindAuthorization error.
func Unauthorized(msg string) *Error { return &Error{Kind: KindAuthorization, Msg: msg} }

// State builds a KindState error.
func State(msg string) *Error { return &Error{Kind: KindState, Msg: msg} }

// Internal wraps an unexpected failure from a store or collaborator.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf extracts the kind from err, returning KindInternal for any
// error that did not originate in this package.
func KindOf(err error) Kind {
	var be *Error
	if errors.As(err, &be) {
		return be.Kind
	}
	return KindInternal
}

// Failure reasons attached to unavailable cells.  The same strings flow
// through availability responses and bulk per-cell error entries so
// callers can retry selectively.
const (
	ReasonNotConfigured = "not configured for this day"
	ReasonAlreadyBooked = "already booked"
	ReasonCourtInactive = "court inactive"
	ReasonAccessDenied  = "access denied"
)
