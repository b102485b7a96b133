package tab

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/docpath"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/store"
)

// draftRules are the fields an entry needs before it can leave the add
// panel. The store does not enforce them.
type draftRules struct {
	Name  string `json:"name" validate:"required"`
	Major string `json:"major" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CheckDraft applies the add-flow gate to entry.
func CheckDraft(entry *resume.EducationEntry) error {
	err := validate.Struct(draftRules{Name: entry.Name, Major: entry.Major})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, fe.Field())
	}
	return out
}

// AddPanel holds a draft entry that is not yet part of the document.
type AddPanel struct {
	dispatch store.Dispatcher
	newID    IDFactory

	mu    sync.Mutex
	open  bool
	draft *resume.EducationEntry
}

func newAddPanel(d store.Dispatcher, newID IDFactory) *AddPanel {
	return &AddPanel{
		dispatch: d,
		newID:    newID,
		draft:    newDraft(newID),
	}
}

func newDraft(newID IDFactory) *resume.EducationEntry {
	return &resume.EducationEntry{ID: newID(), Enable: true}
}

// IsOpen reports whether the panel is expanded.
func (p *AddPanel) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// Toggle expands or collapses the panel.
func (p *AddPanel) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = !p.open
}

// Draft returns a copy of the entry under construction.
func (p *AddPanel) Draft() resume.EducationEntry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return *p.draft
}

// SetField edits the draft. Nothing is dispatched.
func (p *AddPanel) SetField(field resume.EducationField, value any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	next, err := docpath.Set(p.draft, string(field), value)
	if err != nil {
		return err
	}
	p.draft = next
	return nil
}

// Submit appends the draft to the education list when it passes CheckDraft,
// then starts a new draft with a fresh id and collapses the panel. A draft
// that fails the check is left in place and the panel stays open; the
// returned *ValidationError names the missing fields.
func (p *AddPanel) Submit(ctx context.Context) error {
	p.mu.Lock()
	draft := *p.draft
	p.mu.Unlock()

	if err := CheckDraft(&draft); err != nil {
		return err
	}
	if err := store.AddItem(ctx, p.dispatch, resume.SectionEducation, &draft); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.draft.ID == draft.ID {
		p.draft = newDraft(p.newID)
		p.open = false
	}
	return nil
}
