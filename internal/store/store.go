// Package store holds resume documents and applies mutations to them.
//
// A Store owns one document. Dispatch runs the reducer, swaps the root and
// then notifies subscribers with the previous and next roots; because the
// reducer copies only the mutated path, subscribers can detect what changed
// by comparing subtrees for pointer equality.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/resume"
)

// DefaultHistoryLimit bounds the undo stack when no limit is configured.
const DefaultHistoryLimit = 100

// Subscriber is called after each change with the previous and next roots.
type Subscriber func(prev, next *resume.Document)

// Repository persists documents. Load returns (nil, nil) when no document
// exists for id.
type Repository interface {
	Load(ctx context.Context, id string) (*resume.Document, error)
	Save(ctx context.Context, doc *resume.Document) error
}

// Store serialises mutations of a single document.
type Store struct {
	mu     sync.Mutex
	doc    *resume.Document
	past   []*resume.Document
	future []*resume.Document

	historyLimit int
	repo         Repository
	logger       *logger.Logger

	subMu       sync.Mutex
	nextSubID   int
	subscribers map[int]Subscriber
}

// Option configures a Store.
type Option func(*Store)

// WithHistoryLimit bounds the undo stack. A limit <= 0 disables history.
func WithHistoryLimit(n int) Option {
	return func(s *Store) {
		s.historyLimit = n
	}
}

// WithRepository saves every change through repo before it is committed.
func WithRepository(repo Repository) Option {
	return func(s *Store) {
		s.repo = repo
	}
}

// WithLogger sets the logger used for applied actions.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store holding doc.
func New(doc *resume.Document, opts ...Option) *Store {
	s := &Store{
		doc:          doc,
		historyLimit: DefaultHistoryLimit,
		logger:       logger.Nop(),
		subscribers:  make(map[int]Subscriber),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("resume_id", doc.ID)
	return s
}

// State returns the current document. Callers must treat it as read-only.
func (s *Store) State() *resume.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Dispatch applies action. Actions that produce no change are accepted
// without touching history, persistence or subscribers.
func (s *Store) Dispatch(ctx context.Context, action Action) error {
	s.mu.Lock()
	prev := s.doc
	next, err := Reduce(prev, action)
	if err != nil {
		s.mu.Unlock()
		s.logger.Debug("rejected action", "action", action.Name(), "error", err)
		return fmt.Errorf("%s: %w", action.Name(), err)
	}
	if next == prev {
		s.mu.Unlock()
		s.logger.Debug("action changed nothing", "action", action.Name())
		return nil
	}
	if err := s.save(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.past = pushBounded(s.past, prev, s.historyLimit)
	s.future = nil
	s.doc = next
	s.mu.Unlock()

	s.logger.Debug("applied action", "action", action.Name())
	s.notify(prev, next)
	return nil
}

// Undo restores the document as it was before the latest change.
func (s *Store) Undo(ctx context.Context) error {
	s.mu.Lock()
	if len(s.past) == 0 {
		s.mu.Unlock()
		return ErrNothingToUndo
	}
	prev := s.doc
	next := s.past[len(s.past)-1]
	if err := s.save(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.past = s.past[:len(s.past)-1]
	s.future = append(s.future, prev)
	s.doc = next
	s.mu.Unlock()

	s.logger.Debug("undo")
	s.notify(prev, next)
	return nil
}

// Redo re-applies the latest undone change.
func (s *Store) Redo(ctx context.Context) error {
	s.mu.Lock()
	if len(s.future) == 0 {
		s.mu.Unlock()
		return ErrNothingToRedo
	}
	prev := s.doc
	next := s.future[len(s.future)-1]
	if err := s.save(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.future = s.future[:len(s.future)-1]
	s.past = pushBounded(s.past, prev, s.historyLimit)
	s.doc = next
	s.mu.Unlock()

	s.logger.Debug("redo")
	s.notify(prev, next)
	return nil
}

// CanUndo reports whether Undo would succeed.
func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.past) > 0
}

// CanRedo reports whether Redo would succeed.
func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.future) > 0
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) notify(prev, next *resume.Document) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]Subscriber, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subscribers[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(prev, next)
	}
}

func (s *Store) save(ctx context.Context, doc *resume.Document) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		s.logger.Error("failed to save resume", "error", err)
		return fmt.Errorf("failed to save resume %s: %w", doc.ID, err)
	}
	return nil
}

func pushBounded(stack []*resume.Document, doc *resume.Document, limit int) []*resume.Document {
	if limit <= 0 {
		return nil
	}
	stack = append(stack, doc)
	if len(stack) > limit {
		stack = append([]*resume.Document(nil), stack[len(stack)-limit:]...)
	}
	return stack
}
