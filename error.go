package core

import "fmt"

// ErrorCode enumerates the error categories this module signals failure with.
type ErrorCode int

const (
	// Unknown represents an unspecified error condition.
	Unknown ErrorCode = iota
	// NoSuchRevision: revision index outside [0, rev_roots.count).
	NoSuchRevision
	// Branching: logical violation of branching semantics (source EID
	// missing, parent == self, root constraints broken).
	Branching
	// InvalidElement: structural validation failed during set/update (§3 invariants).
	InvalidElement
	// Parse: malformed input at a specific line of the text serialization.
	Parse
	// Cancelled: raised by the editor façade's cancellation hook.
	Cancelled
	// Consistency: sibling/root disagreement, out-of-range id, ordering
	// violation after complete/abort.
	Consistency
)

func (c ErrorCode) String() string {
	switch c {
	case NoSuchRevision:
		return "NoSuchRevision"
	case Branching:
		return "Branching"
	case InvalidElement:
		return "InvalidElement"
	case Parse:
		return "Parse"
	case Cancelled:
		return "Cancelled"
	case Consistency:
		return "Consistency"
	default:
		return "Unknown"
	}
}

// Error is this module's error type, carrying a code, the wrapped cause and
// optional user data useful for diagnostics.
type Error struct {
	Code     ErrorCode
	Err      error
	UserData any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.UserData != nil {
		return fmt.Errorf("%s: user data: %v: %w", e.Code, e.UserData, e.Err).Error()
	}
	return fmt.Errorf("%s: %w", e.Code, e.Err).Error()
}

// Unwrap allows errors.Is/errors.As to see through to the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// newError is the shared constructor used throughout this package.
func newError(code ErrorCode, userData any, format string, args ...any) *Error {
	return &Error{Code: code, Err: fmt.Errorf(format, args...), UserData: userData}
}

// NewError is the exported form of newError, for companion packages
// (textfmt, editor) that need to signal failure using the same error kinds
// and shape as this package.
func NewError(code ErrorCode, userData any, format string, args ...any) *Error {
	return newError(code, userData, format, args...)
}
