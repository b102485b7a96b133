package tab

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSuchItem is returned when an editor is requested for an index past
// the end of the list.
var ErrNoSuchItem = errors.New("no such item")

// ValidationError is returned by AddPanel.Submit when the draft is missing
// required fields. Nothing was dispatched.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("education entry is missing required fields: %s", strings.Join(e.Fields, ", "))
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
