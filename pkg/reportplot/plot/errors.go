package plot

import (
	"errors"
	"fmt"
)

// ErrNoEngine indicates the session has no live engine connection.
var ErrNoEngine = errors.New("no plotting engine connection")

// Error represents a bridge-level failure surfaced to the report script.
type Error struct {
	Message  string
	Location string // script source location, empty when unknown
	Err      error  // underlying cause, if any
}

func (e *Error) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("%s: %s", e.Location, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf creates a bridge error from a format string.
func Errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}
