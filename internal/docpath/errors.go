package docpath

import (
	"errors"
	"fmt"
)

// PathError reports a path that cannot be parsed or applied to a document.
type PathError struct {
	Path    string
	Segment string
	Reason  string
	Cause   error
}

func (e *PathError) Error() string {
	msg := fmt.Sprintf("path %q", e.Path)
	if e.Segment != "" {
		msg += fmt.Sprintf(" at %q", e.Segment)
	}
	msg += ": " + e.Reason
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *PathError) Unwrap() error {
	return e.Cause
}

// IsPathError reports whether err is or wraps a *PathError.
func IsPathError(err error) bool {
	var pe *PathError
	return errors.As(err, &pe)
}
