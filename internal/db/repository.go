package db

import (
	"context"
	"fmt"
	"sync"

	"github.com/jonathan/resume-builder/internal/resume"
)

type resumeRows interface {
	GetResume(ctx context.Context, id string) (*ResumeRecord, error)
	SaveResume(ctx context.Context, doc *resume.Document, expected int64) (int64, error)
	ListResumes(ctx context.Context, limit int) ([]ResumeSummary, error)
}

// Repository adapts DB to the store's load/save contract. It remembers the
// version of every resume it has read or written, so a save fails with
// ErrVersionConflict when another process changed the row in between.
type Repository struct {
	rows resumeRows

	mu       sync.Mutex
	versions map[string]int64
}

// NewRepository returns a Repository backed by db.
func NewRepository(db *DB) *Repository {
	return newRepository(db)
}

func newRepository(rows resumeRows) *Repository {
	return &Repository{rows: rows, versions: make(map[string]int64)}
}

// Load returns the document, or (nil, nil) when there is no such resume.
func (r *Repository) Load(ctx context.Context, id string) (*resume.Document, error) {
	rec, err := r.rows.GetResume(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	r.mu.Lock()
	r.versions[id] = rec.Version
	r.mu.Unlock()
	return rec.Document, nil
}

// Save writes doc on top of the last version this repository saw.
func (r *Repository) Save(ctx context.Context, doc *resume.Document) error {
	if doc == nil || doc.ID == "" {
		return fmt.Errorf("document id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	version, err := r.rows.SaveResume(ctx, doc, r.versions[doc.ID])
	if err != nil {
		return err
	}
	r.versions[doc.ID] = version
	return nil
}

// List returns resume ids, most recently updated first.
func (r *Repository) List(ctx context.Context) ([]string, error) {
	summaries, err := r.rows.ListResumes(ctx, 0)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, s.ID)
	}
	return ids, nil
}
