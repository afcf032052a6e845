package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/agiletec/airis/internal/reflexion"
	"github.com/google/uuid"
)

// LearningStore persists past errors in SQLite. It implements
// reflexion.Store so the engine can run against a durable backend. Records
// are appended only; lookup order follows insertion order (rowid).
type LearningStore struct {
	db *sql.DB
}

// NewLearningStore creates a store over an opened database.
func NewLearningStore(db *sql.DB) *LearningStore {
	return &LearningStore{db: db}
}

// Search returns past errors whose message contains the query,
// case-insensitively. With exactCategory the category must match too.
func (s *LearningStore) Search(ctx context.Context, query string, category reflexion.Category, exactCategory bool) ([]reflexion.PastError, error) {
	q := `SELECT error_message, category, root_cause, solution, created_at, metadata_json
		FROM past_errors WHERE instr(lower(error_message), lower(?)) > 0`
	args := []any{query}
	if exactCategory {
		q += ` AND category = ?`
		args = append(args, string(category))
	}
	q += ` ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("search past errors: %w", err)
	}
	defer rows.Close()

	var matches []reflexion.PastError
	for rows.Next() {
		var rec reflexion.PastError
		var cat, createdAt string
		var metadataJSON sql.NullString
		if err := rows.Scan(&rec.ErrorMessage, &cat, &rec.RootCause, &rec.Solution, &createdAt, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scan past error: %w", err)
		}
		rec.Category = reflexion.Category(cat)
		ts, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse past error timestamp: %w", err)
		}
		rec.Timestamp = ts
		if metadataJSON.Valid && metadataJSON.String != "" {
			if err := json.Unmarshal([]byte(metadataJSON.String), &rec.Metadata); err != nil {
				return nil, fmt.Errorf("decode past error metadata: %w", err)
			}
		}
		matches = append(matches, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate past errors: %w", err)
	}
	return matches, nil
}

// Append inserts a new past error record.
func (s *LearningStore) Append(ctx context.Context, record reflexion.PastError) error {
	var metadataJSON any
	if len(record.Metadata) > 0 {
		raw, err := json.Marshal(record.Metadata)
		if err != nil {
			return fmt.Errorf("encode past error metadata: %w", err)
		}
		metadataJSON = string(raw)
	}
	createdAt := record.Timestamp.UTC().Format(time.RFC3339)
	if _, err := s.db.ExecContext(ctx, `INSERT INTO past_errors(id, error_message, category, root_cause, solution, created_at, metadata_json)
		VALUES(?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), record.ErrorMessage, string(record.Category), record.RootCause, record.Solution, createdAt, metadataJSON); err != nil {
		return fmt.Errorf("insert past error: %w", err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *LearningStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM past_errors`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count past errors: %w", err)
	}
	return n, nil
}
