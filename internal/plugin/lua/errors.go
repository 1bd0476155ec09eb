package lua

import (
	"errors"
	"fmt"
)

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call exceeds its timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrNotANumber is returned when an operation function returns a
	// non-numeric value.
	ErrNotANumber = errors.New("lua operation did not return a number")
)

// PluginError reports a failure loading a plugin script.
type PluginError struct {
	Script string
	Err    error
}

func (e *PluginError) Error() string {
	return fmt.Sprintf("plugin %s: %v", e.Script, e.Err)
}

func (e *PluginError) Unwrap() error {
	return e.Err
}
