package types

import "fmt"

// ErrorCode identifies a class of expression-surface error. The lazy core
// itself never fails; codes exist only for the parser and the evaluator's
// binding step.
type ErrorCode string

const (
	// S0xxx: syntax errors
	ErrNumberOutOfRange ErrorCode = "S0102"
	ErrUnexpectedEnd    ErrorCode = "S0104"
	ErrSyntaxError      ErrorCode = "S0201"
	ErrExpectedToken    ErrorCode = "S0202"
	ErrUnknownFunction  ErrorCode = "S0203"

	// D1xxx: evaluation limits
	ErrTooManyElements ErrorCode = "D1001"
	ErrDepthExceeded   ErrorCode = "D1002"

	// U1xxx: binding errors
	ErrUndefinedVariable ErrorCode = "U1001"
)

// Error is a structured expression-surface error.
type Error struct {
	Code     ErrorCode
	Message  string
	Position int
	Token    string
	Err      error
}

// NewError creates a new structured error. Pass a negative position when no
// source location applies.
func NewError(code ErrorCode, message string, position int) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: position,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Code, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithToken adds the offending token text to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}
