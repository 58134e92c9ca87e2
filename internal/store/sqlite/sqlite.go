/*
Package sqlite persists simulation drafts in SQLite.

Drafts are owned by the caller session and keyed by session id. The whole
draft is kept as one JSON document next to a few indexed summary columns, so
the schema does not change when the draft shape does.

Simulation results are never stored: they are recomputed from the draft.

USAGE:

	store, err := sqlite.New("./data/prevsim.db")
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rgehrsitz/prevsim/internal/domain"
	"github.com/rgehrsitz/prevsim/pkg/dateutil"
)

// ErrDraftNotFound is returned when no draft exists for the given id.
var ErrDraftNotFound = errors.New("draft not found")

// Store keeps drafts in a SQLite database.
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// DraftSummary is the listing view of a stored draft.
type DraftSummary struct {
	ID          string    `json:"id"`
	FilingDate  string    `json:"filingDate"`
	PeriodCount int       `json:"periodCount"`
	WageCount   int       `json:"wageCount"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS drafts (
		id TEXT PRIMARY KEY,
		filing_date TEXT NOT NULL,
		period_count INTEGER NOT NULL,
		wage_count INTEGER NOT NULL,
		draft_json TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_drafts_updated_at
		ON drafts(updated_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveDraft inserts or replaces the draft stored under draft.ID.
func (s *Store) SaveDraft(ctx context.Context, draft *domain.SimulationDraft) error {
	if draft == nil || draft.ID == "" {
		return fmt.Errorf("draft id is required")
	}

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft %s: %w", draft.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO drafts (id, filing_date, period_count, wage_count, draft_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			filing_date = excluded.filing_date,
			period_count = excluded.period_count,
			wage_count = excluded.wage_count,
			draft_json = excluded.draft_json,
			updated_at = excluded.updated_at
	`

	now := s.now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx, query,
		draft.ID, dateutil.FormatDate(draft.Claimant.FilingDate),
		len(draft.Periods), len(draft.Wages), string(data), now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save draft %s: %w", draft.ID, err)
	}
	return nil
}

// GetDraft loads the draft stored under id.
func (s *Store) GetDraft(ctx context.Context, id string) (*domain.SimulationDraft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	err := s.db.QueryRowContext(ctx, "SELECT draft_json FROM drafts WHERE id = ?", id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, err
	}

	var draft domain.SimulationDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft %s: %w", id, err)
	}
	return &draft, nil
}

// ListDrafts returns every stored draft, most recently updated first.
func (s *Store) ListDrafts(ctx context.Context) ([]DraftSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, filing_date, period_count, wage_count, updated_at FROM drafts ORDER BY updated_at DESC, id",
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drafts := []DraftSummary{}
	for rows.Next() {
		var d DraftSummary
		var updatedAt string
		if err := rows.Scan(&d.ID, &d.FilingDate, &d.PeriodCount, &d.WageCount, &updatedAt); err != nil {
			return nil, err
		}
		d.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

// DeleteDraft removes the draft stored under id.
func (s *Store) DeleteDraft(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM drafts WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrDraftNotFound
	}
	return nil
}

// Reset clears all data. Intended for tests and demos.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM drafts")
	return err
}
