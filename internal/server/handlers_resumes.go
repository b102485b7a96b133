package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/docpath"
	"github.com/jonathan/resume-builder/internal/filestore"
	"github.com/jonathan/resume-builder/internal/store"
)

const maxBodyBytes = 1 << 20

var validate = validator.New()

// SetFieldRequest is the wire form of a field edit.
type SetFieldRequest struct {
	Path  string `json:"path" validate:"required"`
	Value any    `json:"value"`
}

// CreateResumeResponse is returned by POST /resumes.
type CreateResumeResponse struct {
	ID       string `json:"id"`
	Document any    `json:"document"`
}

// QueryResponse is returned by GET /resumes/{id}/query.
type QueryResponse struct {
	Expr   string `json:"expr"`
	Result any    `json:"result"`
}

func (s *Server) resume(ctx context.Context, id string) (*store.Store, error) {
	st, err := s.resumes.Get(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &ErrResumeNotFound{ID: id}
		}
		return nil, err
	}
	return st, nil
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ErrValidation{Field: verrs[0].Field(), Message: verrs[0].Tag()}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// handleCreateResume creates an empty resume
func (s *Server) handleCreateResume(w http.ResponseWriter, r *http.Request) {
	st, err := s.resumes.Create(r.Context())
	if err != nil {
		s.failure(w, err)
		return
	}
	doc := st.State()
	s.jsonResponse(w, http.StatusCreated, CreateResumeResponse{ID: doc.ID, Document: doc})
}

// handleGetResume returns the current document
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	st, err := s.resume(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, st.State())
}

// handleImportResume replaces the document after validating it against the
// document schema. The resume keeps its id.
func (s *Server) handleImportResume(w http.ResponseWriter, r *http.Request) {
	st, err := s.resume(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read body")
		return
	}
	doc, err := filestore.Decode(body)
	if err != nil {
		s.failure(w, err)
		return
	}

	if err := st.Dispatch(r.Context(), store.ImportDocumentAction{Document: doc}); err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, st.State())
}

// handleSetField applies one path-set mutation
func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	var req SetFieldRequest
	if err := decodeBody(r, &req); err != nil {
		s.failure(w, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		s.failure(w, validationError(err))
		return
	}

	st, err := s.resume(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	if err := store.SetField(r.Context(), st, req.Path, req.Value); err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, st.State())
}

// handleQuery evaluates an expression against the document
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	expr := r.URL.Query().Get("expr")
	if expr == "" {
		s.failure(w, &ErrValidation{Field: "expr", Message: "required"})
		return
	}

	st, err := s.resume(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}

	result, err := docpath.Eval(st.State(), expr)
	if err != nil {
		s.failure(w, &ErrValidation{Field: "expr", Message: err.Error()})
		return
	}
	s.jsonResponse(w, http.StatusOK, QueryResponse{Expr: expr, Result: result})
}

// handleUndo restores the previous document
func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.history(w, r, (*store.Store).Undo)
}

// handleRedo re-applies the last undone change
func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.history(w, r, (*store.Store).Redo)
}

func (s *Server) history(w http.ResponseWriter, r *http.Request, step func(*store.Store, context.Context) error) {
	st, err := s.resume(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	if err := step(st, r.Context()); err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, st.State())
}
