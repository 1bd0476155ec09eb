package history

import (
	"errors"
	"fmt"
)

// ErrNoHistory is returned by Entries when nothing has been recorded.
var ErrNoHistory = errors.New("no history")

// ExportError reports a failure writing the history to a file.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("saving history to %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
