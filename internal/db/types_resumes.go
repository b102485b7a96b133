package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/resume-builder/internal/resume"
)

// ErrVersionConflict is returned when a resume was changed by someone else
// since it was last read.
var ErrVersionConflict = errors.New("resume version conflict")

// ResumeRecord is a row of the resumes table.
type ResumeRecord struct {
	ID        string           `json:"id"`
	Document  *resume.Document `json:"document"`
	Version   int64            `json:"version"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ResumeSummary is a listing entry.
type ResumeSummary struct {
	ID        string    `json:"id"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updated_at"`
}

// decodeDocument decodes the JSONB column. The row id is authoritative.
func decodeDocument(id string, raw []byte) (*resume.Document, error) {
	var doc resume.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume %s: %w", id, err)
	}
	doc.ID = id
	return &doc, nil
}
