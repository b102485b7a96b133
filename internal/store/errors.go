package store

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownSection is returned for list actions on a key that does not
	// name a list-bearing section.
	ErrUnknownSection = errors.New("unknown section")

	// ErrDuplicateID is returned when an added entry reuses an id already
	// present in the section.
	ErrDuplicateID = errors.New("duplicate item id")

	// ErrMissingID is returned when an added entry has no id.
	ErrMissingID = errors.New("item id is required")

	// ErrNothingToUndo is returned by Undo on an empty history.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned by Redo after the latest change.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrNotFound is returned when a resume does not exist in the repository.
	ErrNotFound = errors.New("resume not found")
)

// UnsupportedActionError reports an action type the reducer does not handle.
type UnsupportedActionError struct {
	Action Action
}

func (e *UnsupportedActionError) Error() string {
	return fmt.Sprintf("unsupported action %T", e.Action)
}
