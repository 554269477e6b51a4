package calsys

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-calendars/internal/config"
)

// Error kinds. Use errors.Is to classify an error returned by any calendar
// operation of this module.
var (
	ErrOutOfRange              = errors.New(config.ErrKindOutOfRange)
	ErrInvalidDate             = errors.New(config.ErrKindInvalidDate)
	ErrDataFormat              = errors.New(config.ErrKindDataFormat)
	ErrUnsupportedModification = errors.New(config.ErrKindUnsupportedMod)
	ErrConstructionConflict    = errors.New(config.ErrKindConstruction)
	ErrArgument                = errors.New(config.ErrKindArgument)
)

// Error is the error type of all calendar operations. It carries one of the
// kinds above, a message naming the offending value and, optionally, the
// underlying cause (I/O or parse failure).
type Error struct {
	// Kind is one of the Err* sentinels of this package.
	Kind error

	// Message describes the offending input.
	Message string

	// Internal holds the underlying cause, if any.
	Internal error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Kind, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Internal != nil {
		return []error{e.Kind, e.Internal}
	}
	return []error{e.Kind}
}

// --- Constructors ---

// NewOutOfRange reports a day count or tuple outside a system's coverage.
func NewOutOfRange(format string, args ...any) *Error {
	return &Error{Kind: ErrOutOfRange, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidDate reports a tuple that fails calendar-specific validity.
func NewInvalidDate(format string, args ...any) *Error {
	return &Error{Kind: ErrInvalidDate, Message: fmt.Sprintf(format, args...)}
}

// NewDataFormat reports missing, malformed or inconsistent table data.
func NewDataFormat(cause error, format string, args ...any) *Error {
	return &Error{Kind: ErrDataFormat, Message: fmt.Sprintf(format, args...), Internal: cause}
}

// NewUnsupportedModification reports an attempt to change a derived value.
func NewUnsupportedModification(format string, args ...any) *Error {
	return &Error{Kind: ErrUnsupportedModification, Message: fmt.Sprintf(format, args...)}
}

// NewConstructionConflict reports two composed rules claiming the same boundary.
func NewConstructionConflict(format string, args ...any) *Error {
	return &Error{Kind: ErrConstructionConflict, Message: fmt.Sprintf(format, args...)}
}

// NewArgument reports an argument outside the domain of an operation.
func NewArgument(format string, args ...any) *Error {
	return &Error{Kind: ErrArgument, Message: fmt.Sprintf(format, args...)}
}
