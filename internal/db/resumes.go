package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-builder/internal/resume"
)

// GetResume retrieves a resume by id. Returns nil if not found.
func (db *DB) GetResume(ctx context.Context, id string) (*ResumeRecord, error) {
	var rec ResumeRecord
	var raw []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, document, version, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&rec.ID, &raw, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	doc, err := decodeDocument(rec.ID, raw)
	if err != nil {
		return nil, err
	}
	rec.Document = doc
	return &rec, nil
}

// SaveResume writes doc if the stored version still equals expected and
// returns the new version. expected == 0 means the resume must not exist
// yet. Returns ErrVersionConflict otherwise.
func (db *DB) SaveResume(ctx context.Context, doc *resume.Document, expected int64) (int64, error) {
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal resume: %w", err)
	}

	var version int64
	if expected == 0 {
		err = db.pool.QueryRow(ctx,
			`INSERT INTO resumes (id, document, version)
			 VALUES ($1, $2, 1)
			 ON CONFLICT (id) DO NOTHING
			 RETURNING version`,
			doc.ID, jsonBytes,
		).Scan(&version)
	} else {
		err = db.pool.QueryRow(ctx,
			`UPDATE resumes SET document = $2, version = version + 1, updated_at = NOW()
			 WHERE id = $1 AND version = $3
			 RETURNING version`,
			doc.ID, jsonBytes, expected,
		).Scan(&version)
	}
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, fmt.Errorf("%w: %s at version %d", ErrVersionConflict, doc.ID, expected)
		}
		return 0, fmt.Errorf("failed to save resume: %w", err)
	}
	return version, nil
}

// DeleteResume removes a resume. Deleting a missing resume is not an error.
func (db *DB) DeleteResume(ctx context.Context, id string) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

// ListResumes lists resumes, most recently updated first.
func (db *DB) ListResumes(ctx context.Context, limit int) ([]ResumeSummary, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, version, updated_at FROM resumes
		 ORDER BY updated_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var out []ResumeSummary
	for rows.Next() {
		var s ResumeSummary
		if err := rows.Scan(&s.ID, &s.Version, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return out, nil
}
