// Package tab implements the Education section tab as a headless view-model.
//
// The tab reads the current document from a store and turns edits into
// store actions: section toggles and field edits become path-set mutations,
// reorder and delete controls become list actions, and the add panel
// appends a validated draft. Open/closed state of editors is view-local and
// never written to the document.
package tab

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/store"
)

// IDFactory produces globally unique entry identifiers.
type IDFactory func() string

// Source is the document store the tab is bound to.
type Source interface {
	store.Dispatcher
	State() *resume.Document
}

// Subscribable is implemented by stores that notify on change.
type Subscribable interface {
	Subscribe(fn store.Subscriber) (unsubscribe func())
}

// EducationTab edits the education section of one document.
type EducationTab struct {
	src   Source
	newID IDFactory
	add   *AddPanel

	mu   sync.Mutex
	open map[string]bool
}

// Option configures an EducationTab.
type Option func(*EducationTab)

// WithIDFactory replaces the default UUID generator used for new drafts.
func WithIDFactory(f IDFactory) Option {
	return func(t *EducationTab) {
		if f != nil {
			t.newID = f
		}
	}
}

// NewEducationTab binds a tab to src. Every editor starts collapsed.
func NewEducationTab(src Source, opts ...Option) *EducationTab {
	t := &EducationTab{
		src:   src,
		newID: uuid.NewString,
		open:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.add = newAddPanel(src, t.newID)
	return t
}

// OnChange dispatches a path-set mutation. It is the callback every bound
// field reports its edits to.
func (t *EducationTab) OnChange(ctx context.Context, path string, value any) error {
	return store.SetField(ctx, t.src, path, value)
}

// Section returns the current education section. A document without one
// reads as an empty, disabled section.
func (t *EducationTab) Section() *resume.Section[resume.EducationEntry] {
	doc := t.src.State()
	if doc == nil || doc.Education == nil {
		return &resume.Section[resume.EducationEntry]{}
	}
	return doc.Education
}

// SetEnable toggles the whole section.
func (t *EducationTab) SetEnable(ctx context.Context, enable bool) error {
	return t.OnChange(ctx, resume.EducationEnablePath, enable)
}

// SetHeading renames the section.
func (t *EducationTab) SetHeading(ctx context.Context, heading string) error {
	return t.OnChange(ctx, resume.EducationHeadingPath, heading)
}

// Items returns one editor per entry, in display order. Editors are bound
// to the index the entry had when they were created.
func (t *EducationTab) Items() []*Item {
	entries := t.Section().Items
	items := make([]*Item, 0, len(entries))
	for i, entry := range entries {
		items = append(items, &Item{
			tab:   t,
			entry: entry,
			index: i,
			first: i == 0,
			last:  i == len(entries)-1,
		})
	}
	return items
}

// Item returns the editor for the entry at index.
func (t *EducationTab) Item(index int) (*Item, error) {
	items := t.Items()
	if index < 0 || index >= len(items) {
		return nil, fmt.Errorf("%w: education has no item at index %d", ErrNoSuchItem, index)
	}
	return items[index], nil
}

// AddPanel returns the tab's add panel.
func (t *EducationTab) AddPanel() *AddPanel {
	return t.add
}

// Watch calls render with a fresh view whenever a change to s touches the
// education section. Changes elsewhere in the document leave the section
// pointer-identical and are skipped.
func (t *EducationTab) Watch(s Subscribable, render func(TabView)) (stop func()) {
	return s.Subscribe(func(prev, next *resume.Document) {
		if prev != nil && next != nil && prev.Education == next.Education {
			return
		}
		render(t.View())
	})
}

func (t *EducationTab) isOpen(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open[id]
}

func (t *EducationTab) toggle(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.open[id] {
		delete(t.open, id)
		return
	}
	t.open[id] = true
}

// prune forgets open state of entries that no longer exist.
func (t *EducationTab) prune(entries []*resume.EducationEntry) {
	live := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		live[e.ID] = struct{}{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	for id := range t.open {
		if _, ok := live[id]; !ok {
			delete(t.open, id)
		}
	}
}
