// Package filestore persists resume documents as one JSON file per resume.
package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/natefinch/atomic"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644
	extension = ".json"
)

// ErrInvalidID is returned for ids that cannot be used as file names.
var ErrInvalidID = errors.New("invalid resume id")

// Repository stores documents under a directory.
type Repository struct {
	dir string
}

// New creates the directory if needed and returns a repository rooted there.
func New(dir string) (*Repository, error) {
	if dir == "" {
		return nil, fmt.Errorf("document directory is empty")
	}
	if err := os.MkdirAll(dir, dirPerms); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}
	return &Repository{dir: dir}, nil
}

// Dir returns the root directory.
func (r *Repository) Dir() string {
	return r.dir
}

// Path returns the file holding the document id.
func (r *Repository) Path(id string) (string, error) {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(r.dir, id+extension), nil
}

// Load reads and schema-validates a document. It returns (nil, nil) when
// the file does not exist.
func (r *Repository) Load(_ context.Context, id string) (*resume.Document, error) {
	path, err := r.Path(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read resume file: %w", err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("resume file %s: %w", path, err)
	}
	doc.ID = id
	return doc, nil
}

// Save writes the document atomically: readers see the old file or the new
// one, never a partial write.
func (r *Repository) Save(_ context.Context, doc *resume.Document) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}
	path, err := r.Path(doc.ID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode resume: %w", err)
	}
	data = append(data, '\n')

	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write resume file: %w", err)
	}
	// atomic.WriteFile does not set permissions on new files
	if err := os.Chmod(path, filePerms); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	return nil
}

// Delete removes a document. Deleting a missing document is not an error.
func (r *Repository) Delete(_ context.Context, id string) error {
	path, err := r.Path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete resume file: %w", err)
	}
	return nil
}

// List returns the ids of all stored documents, sorted.
func (r *Repository) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list document directory: %w", err)
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), extension) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), extension))
	}
	slices.Sort(ids)
	return ids, nil
}

// Decode validates data against the document schema and decodes it.
func Decode(data []byte) (*resume.Document, error) {
	if err := schemas.ValidateDocument(data); err != nil {
		return nil, err
	}
	var doc resume.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode resume: %w", err)
	}
	return &doc, nil
}
