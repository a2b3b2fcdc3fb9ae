package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AnalysisKind distinguishes the saved analysis types.
type AnalysisKind string

const (
	AnalysisManaBase AnalysisKind = "manabase"
	AnalysisCurve    AnalysisKind = "curve"
	AnalysisSynergy  AnalysisKind = "synergy"
)

// Analysis is a saved analysis result. Payload holds the JSON-encoded
// result of whichever analyzer produced it.
type Analysis struct {
	ID         string
	Kind       AnalysisKind
	DeckName   string
	DeckFormat string
	Payload    []byte
	CreatedAt  time.Time
}

// AnalysisRepository persists analysis results so past runs can be
// listed and re-exported.
type AnalysisRepository struct {
	db *DB
}

// NewAnalysisRepository creates an analysis repository.
func NewAnalysisRepository(db *DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Save stores an analysis result and returns its generated ID.
func (r *AnalysisRepository) Save(ctx context.Context, kind AnalysisKind, deckName, deckFormat string, result any) (string, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to encode analysis: %w", err)
	}

	id := uuid.New().String()
	query := `
		INSERT INTO analyses (id, kind, deck_name, deck_format, payload, created_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`

	_, err = r.db.Conn().ExecContext(ctx, query, id, string(kind), deckName, deckFormat, string(payload))
	if err != nil {
		return "", fmt.Errorf("failed to save analysis: %w", err)
	}
	return id, nil
}

// Get retrieves an analysis by ID. Returns (nil, nil) when no analysis
// has that ID.
func (r *AnalysisRepository) Get(ctx context.Context, id string) (*Analysis, error) {
	query := `
		SELECT id, kind, deck_name, deck_format, payload, created_at
		FROM analyses
		WHERE id = ?
	`

	var a Analysis
	var kind, payload string
	err := r.db.Conn().QueryRowContext(ctx, query, id).Scan(
		&a.ID, &kind, &a.DeckName, &a.DeckFormat, &payload, &a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	a.Kind = AnalysisKind(kind)
	a.Payload = []byte(payload)
	return &a, nil
}

// ListRecent returns the newest analyses of the given kind, newest
// first. An empty kind lists every kind.
func (r *AnalysisRepository) ListRecent(ctx context.Context, kind AnalysisKind, limit int) ([]*Analysis, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, kind, deck_name, deck_format, payload, created_at
		FROM analyses
		WHERE (? = '' OR kind = ?)
		ORDER BY created_at DESC, id
		LIMIT ?
	`

	rows, err := r.db.Conn().QueryContext(ctx, query, string(kind), string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var analyses []*Analysis
	for rows.Next() {
		var a Analysis
		var k, payload string
		err := rows.Scan(&a.ID, &k, &a.DeckName, &a.DeckFormat, &payload, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		a.Kind = AnalysisKind(k)
		a.Payload = []byte(payload)
		analyses = append(analyses, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analyses: %w", err)
	}
	return analyses, nil
}

// Delete removes an analysis by ID.
func (r *AnalysisRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Conn().ExecContext(ctx, `DELETE FROM analyses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	return nil
}
