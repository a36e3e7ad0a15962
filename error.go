// Package chatbot holds the error codes shared by the chatbot packages.
//
// Every package returns one of the [Err] codes, usually wrapped with
// [Err.With] or [Err.Withf], so callers test for a class of failure with
// errors.Is.
package chatbot

import (
	"errors"
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Err is an error code
type Err int

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ErrSuccess Err = iota
	ErrNotFound
	ErrBadParameter
	ErrNotImplemented
	ErrConflict
	ErrInternalServerError
	ErrDuplicateTool
	ErrUnknownTool
	ErrValidation
	ErrToolExecution
	ErrModelUnavailable
	ErrMaxIterations
)

var errText = map[Err]string{
	ErrSuccess:             "success",
	ErrNotFound:            "not found",
	ErrBadParameter:        "bad parameter",
	ErrNotImplemented:      "not implemented",
	ErrConflict:            "conflict",
	ErrInternalServerError: "internal server error",
	ErrDuplicateTool:       "duplicate tool",
	ErrUnknownTool:         "unknown tool",
	ErrValidation:          "tool validation failed",
	ErrToolExecution:       "tool execution failed",
	ErrModelUnavailable:    "model unavailable",
	ErrMaxIterations:       "maximum tool rounds exceeded",
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (e Err) Error() string {
	if text, exists := errText[e]; exists {
		return text
	}
	return fmt.Sprintf("error code %d", int(e))
}

// With wraps the code with a message
func (e Err) With(args ...any) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprint(args...))
}

// Withf wraps the code with a formatted message
func (e Err) Withf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", e, fmt.Sprintf(format, args...))
}

// IsToolError reports whether err is a failure to look up, validate or
// execute a tool. These failures are reported to the model rather than to
// the user.
func IsToolError(err error) bool {
	return errors.Is(err, ErrUnknownTool) || errors.Is(err, ErrValidation) || errors.Is(err, ErrToolExecution)
}
