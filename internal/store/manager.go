package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/logger"
	"github.com/jonathan/resume-builder/internal/resume"
)

// Manager keeps one Store per resume, loading documents lazily from a
// repository. Every store it creates autosaves through the same repository.
type Manager struct {
	mu     sync.Mutex
	stores map[string]*Store
	repo   Repository
	opts   []Option
	logger *logger.Logger
}

// NewManager creates a manager backed by repo. opts are applied to every
// store it opens.
func NewManager(repo Repository, log *logger.Logger, opts ...Option) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		stores: make(map[string]*Store),
		repo:   repo,
		opts:   opts,
		logger: log,
	}
}

// Get returns the store for id, loading it on first use. It returns
// ErrNotFound when the repository has no such document.
func (m *Manager) Get(ctx context.Context, id string) (*Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[id]; ok {
		return s, nil
	}

	doc, err := m.repo.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load resume %s: %w", id, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	s := m.open(doc)
	m.logger.Info("opened resume", "resume_id", id)
	return s, nil
}

// Create stores a new empty document and returns its store.
func (m *Manager) Create(ctx context.Context) (*Store, error) {
	doc := resume.NewDocument(uuid.NewString())
	if err := m.repo.Save(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.open(doc)
	m.logger.Info("created resume", "resume_id", doc.ID)
	return s, nil
}

func (m *Manager) open(doc *resume.Document) *Store {
	opts := append([]Option{WithLogger(m.logger), WithRepository(m.repo)}, m.opts...)
	s := New(doc, opts...)
	m.stores[doc.ID] = s
	return s
}

// MemoryRepository is an in-memory Repository for tests and ephemeral
// servers. Documents are immutable once stored, so it keeps the pointers.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]*resume.Document
}

// NewMemoryRepository creates an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: make(map[string]*resume.Document)}
}

// Load implements Repository.
func (r *MemoryRepository) Load(_ context.Context, id string) (*resume.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.docs[id], nil
}

// Save implements Repository.
func (r *MemoryRepository) Save(_ context.Context, doc *resume.Document) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("document id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[doc.ID] = doc
	return nil
}
