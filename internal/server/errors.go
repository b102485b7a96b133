package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/docpath"
	"github.com/jonathan/resume-builder/internal/filestore"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/tab"
)

// ErrResumeNotFound indicates the resume does not exist
type ErrResumeNotFound struct {
	ID string
}

func (e *ErrResumeNotFound) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound    *ErrResumeNotFound
		invalid     *ErrValidation
		pathErr     *docpath.PathError
		draftErr    *tab.ValidationError
		documentErr *schemas.ValidationError
	)

	switch {
	case errors.As(err, &notFound), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicateID),
		errors.Is(err, store.ErrNothingToUndo),
		errors.Is(err, store.ErrNothingToRedo),
		errors.Is(err, db.ErrVersionConflict):
		return http.StatusConflict
	case errors.As(err, &invalid),
		errors.As(err, &pathErr),
		errors.As(err, &draftErr),
		errors.As(err, &documentErr),
		errors.Is(err, store.ErrUnknownSection),
		errors.Is(err, store.ErrMissingID),
		errors.Is(err, tab.ErrNoSuchItem),
		errors.Is(err, filestore.ErrInvalidID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
