package store

import (
	"context"

	"github.com/jonathan/resume-builder/internal/resume"
)

// Action is a mutation request handled by Reduce.
type Action interface {
	// Name identifies the action kind in logs.
	Name() string
}

// SetFieldAction replaces the value at Path.
type SetFieldAction struct {
	Path  string
	Value any
}

// AddItemAction appends Item to a section's list.
type AddItemAction struct {
	Section string
	Item    any
}

// DeleteItemAction removes the entry at Index.
type DeleteItemAction struct {
	Section string
	Index   int
}

// MoveItemUpAction swaps the entry at Index with its predecessor.
type MoveItemUpAction struct {
	Section string
	Index   int
}

// MoveItemDownAction swaps the entry at Index with its successor.
type MoveItemDownAction struct {
	Section string
	Index   int
}

// ImportDocumentAction replaces the whole document, keeping the store's id.
type ImportDocumentAction struct {
	Document *resume.Document
}

// ResetDocumentAction replaces the document with an empty one.
type ResetDocumentAction struct{}

func (SetFieldAction) Name() string       { return "set_field" }
func (AddItemAction) Name() string        { return "add_item" }
func (DeleteItemAction) Name() string     { return "delete_item" }
func (MoveItemUpAction) Name() string     { return "move_item_up" }
func (MoveItemDownAction) Name() string   { return "move_item_down" }
func (ImportDocumentAction) Name() string { return "import_document" }
func (ResetDocumentAction) Name() string  { return "reset_document" }

// Dispatcher applies actions to a document.
type Dispatcher interface {
	Dispatch(ctx context.Context, action Action) error
}

// SetField dispatches a path-set mutation. It is the onChange callback of
// every form field.
func SetField(ctx context.Context, d Dispatcher, path string, value any) error {
	return d.Dispatch(ctx, SetFieldAction{Path: path, Value: value})
}

// AddItem appends item to section.
func AddItem(ctx context.Context, d Dispatcher, section string, item any) error {
	return d.Dispatch(ctx, AddItemAction{Section: section, Item: item})
}

// DeleteItem removes the entry at index from section.
func DeleteItem(ctx context.Context, d Dispatcher, section string, index int) error {
	return d.Dispatch(ctx, DeleteItemAction{Section: section, Index: index})
}

// MoveItemUp moves the entry at index one position towards the front.
func MoveItemUp(ctx context.Context, d Dispatcher, section string, index int) error {
	return d.Dispatch(ctx, MoveItemUpAction{Section: section, Index: index})
}

// MoveItemDown moves the entry at index one position towards the back.
func MoveItemDown(ctx context.Context, d Dispatcher, section string, index int) error {
	return d.Dispatch(ctx, MoveItemDownAction{Section: section, Index: index})
}
