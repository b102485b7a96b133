package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/tab"
)

func sectionParam(r *http.Request) (string, error) {
	section := r.PathValue("section")
	if !resume.IsSection(section) {
		return "", &ErrValidation{Field: "section", Message: "unknown section " + strconv.Quote(section)}
	}
	return section, nil
}

func indexParam(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 {
		return 0, &ErrValidation{Field: "index", Message: "must be a non-negative integer"}
	}
	return index, nil
}

func (s *Server) generateID() string {
	if s.newID != nil {
		return s.newID()
	}
	return uuid.NewString()
}

// handleAddItem appends an entry to a section. Education entries go through
// the same required-field check as the tab's add panel.
func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	section, err := sectionParam(r)
	if err != nil {
		s.failure(w, err)
		return
	}

	var item any
	if section == resume.SectionEducation {
		entry := &resume.EducationEntry{Enable: true}
		if err := decodeBody(r, entry); err != nil {
			s.failure(w, err)
			return
		}
		if err := tab.CheckDraft(entry); err != nil {
			s.failure(w, err)
			return
		}
		if entry.ID == "" {
			entry.ID = s.generateID()
		}
		item = entry
	} else {
		fields := map[string]any{}
		if err := decodeBody(r, &fields); err != nil {
			s.failure(w, err)
			return
		}
		if id, _ := fields["id"].(string); id == "" {
			fields["id"] = s.generateID()
		}
		if _, ok := fields["enable"]; !ok {
			fields["enable"] = true
		}
		item = fields
	}

	st, err := s.resume(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	if err := store.AddItem(r.Context(), st, section, item); err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, st.State())
}

type indexOp func(ctx context.Context, d store.Dispatcher, section string, index int) error

// handleDeleteItem removes the entry at index
func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	s.listOp(w, r, store.DeleteItem)
}

// handleMoveItemUp swaps the entry with its predecessor
func (s *Server) handleMoveItemUp(w http.ResponseWriter, r *http.Request) {
	s.listOp(w, r, store.MoveItemUp)
}

// handleMoveItemDown swaps the entry with its successor
func (s *Server) handleMoveItemDown(w http.ResponseWriter, r *http.Request) {
	s.listOp(w, r, store.MoveItemDown)
}

func (s *Server) listOp(w http.ResponseWriter, r *http.Request, op indexOp) {
	section, err := sectionParam(r)
	if err != nil {
		s.failure(w, err)
		return
	}
	index, err := indexParam(r)
	if err != nil {
		s.failure(w, err)
		return
	}

	st, err := s.resume(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	if err := op(r.Context(), st, section, index); err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, st.State())
}

// educationTab returns the tab bound to a resume. Open/closed state lives
// here for the lifetime of the server.
func (s *Server) educationTab(ctx context.Context, id string) (*tab.EducationTab, error) {
	st, err := s.resume(ctx, id)
	if err != nil {
		return nil, err
	}

	s.tabsMu.Lock()
	defer s.tabsMu.Unlock()
	t, ok := s.tabs[id]
	if !ok {
		t = tab.NewEducationTab(st, tab.WithIDFactory(s.newID))
		s.tabs[id] = t
	}
	return t, nil
}

// handleEducationTab renders the education tab
func (s *Server) handleEducationTab(w http.ResponseWriter, r *http.Request) {
	t, err := s.educationTab(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, t.View())
}

// handleToggleEducationItem expands or collapses one entry editor
func (s *Server) handleToggleEducationItem(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		s.failure(w, err)
		return
	}
	t, err := s.educationTab(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	item, err := t.Item(index)
	if err != nil {
		s.failure(w, err)
		return
	}
	item.Toggle()
	s.jsonResponse(w, http.StatusOK, t.View())
}

// handleToggleEducationAdd expands or collapses the add panel
func (s *Server) handleToggleEducationAdd(w http.ResponseWriter, r *http.Request) {
	t, err := s.educationTab(r.Context(), r.PathValue("id"))
	if err != nil {
		s.failure(w, err)
		return
	}
	t.AddPanel().Toggle()
	s.jsonResponse(w, http.StatusOK, t.View())
}
