package tab

import (
	"context"

	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/store"
)

// Item is the collapsible editor of one education entry.
type Item struct {
	tab   *EducationTab
	entry *resume.EducationEntry
	index int
	first bool
	last  bool
}

// ID returns the entry id, which keys the editor's open state.
func (it *Item) ID() string { return it.entry.ID }

// Index returns the list index the editor is bound to.
func (it *Item) Index() int { return it.index }

// Entry returns the entry as it was when the editor was created.
func (it *Item) Entry() *resume.EducationEntry { return it.entry }

// IsOpen reports whether the editor is expanded.
func (it *Item) IsOpen() bool { return it.tab.isOpen(it.entry.ID) }

// Toggle expands or collapses the editor.
func (it *Item) Toggle() { it.tab.toggle(it.entry.ID) }

// Path returns the document path bound to field.
func (it *Item) Path(field resume.EducationField) string {
	return resume.EducationItemPath(it.index, field)
}

// SetField dispatches an edit of one field. There is no local buffering:
// every call mutates the document.
func (it *Item) SetField(ctx context.Context, field resume.EducationField, value any) error {
	return it.tab.OnChange(ctx, it.Path(field), value)
}

// CanMoveUp reports whether the move-up control is enabled.
func (it *Item) CanMoveUp() bool { return !it.first }

// CanMoveDown reports whether the move-down control is enabled.
func (it *Item) CanMoveDown() bool { return !it.last }

// MoveUp swaps the entry with its predecessor. On the first entry the
// control is disabled and nothing is dispatched.
func (it *Item) MoveUp(ctx context.Context) error {
	if !it.CanMoveUp() {
		return nil
	}
	return store.MoveItemUp(ctx, it.tab.src, resume.SectionEducation, it.index)
}

// MoveDown swaps the entry with its successor. On the last entry the
// control is disabled and nothing is dispatched.
func (it *Item) MoveDown(ctx context.Context) error {
	if !it.CanMoveDown() {
		return nil
	}
	return store.MoveItemDown(ctx, it.tab.src, resume.SectionEducation, it.index)
}

// Delete removes the entry.
func (it *Item) Delete(ctx context.Context) error {
	return store.DeleteItem(ctx, it.tab.src, resume.SectionEducation, it.index)
}
