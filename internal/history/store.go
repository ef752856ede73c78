// Package history keeps a bounded, newest-first log of past calculations in
// a SQLite database.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/calculator"
	"github.com/suhas-sunder/allsavingscalc-sub000/pkg/constants"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when an entry id does not exist.
var ErrNotFound = errors.New("history entry not found")

// Entry is one recorded calculation.
type Entry struct {
	ID         string             `json:"id"`
	Name       string             `json:"name,omitempty"`
	Calculator string             `json:"calculator"`
	CreatedAt  time.Time          `json:"createdAt"`
	Input      json.RawMessage    `json:"input"`
	Summary    calculator.Summary `json:"summary"`
}

// Store is a SQLite-backed history.
type Store struct {
	db         *sql.DB
	maxEntries int
	logger     *zap.Logger
	now        func() time.Time
}

const schema = `
CREATE TABLE IF NOT EXISTS history (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL DEFAULT '',
	calculator TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	input TEXT NOT NULL,
	summary TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_calculator ON history(calculator);
`

// Open opens (creating if needed) the history database at path. maxEntries
// bounds how many entries are kept; values <= 0 use the default.
func Open(path string, maxEntries int, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxEntries <= 0 {
		maxEntries = constants.DefaultHistoryEntries
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database %s: %w", path, err)
	}
	// one writer keeps sqlite free of SQLITE_BUSY under concurrent requests
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db, maxEntries: maxEntries, logger: logger, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores a calculation and prunes the oldest entries beyond the limit.
func (s *Store) Record(ctx context.Context, name string, in calculator.Input, summary calculator.Summary) (Entry, error) {
	if in == nil {
		return Entry{}, fmt.Errorf("input cannot be nil")
	}
	inputJSON, err := json.Marshal(in)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to encode input: %w", err)
	}
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to encode summary: %w", err)
	}

	entry := Entry{
		ID:         uuid.New().String(),
		Name:       name,
		Calculator: in.Calculator(),
		CreatedAt:  s.now().UTC(),
		Input:      inputJSON,
		Summary:    summary,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to begin history transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO history (id, name, calculator, created_at, input, summary) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Name, entry.Calculator, entry.CreatedAt.UnixNano(), string(inputJSON), string(summaryJSON),
	); err != nil {
		return Entry{}, fmt.Errorf("failed to insert history entry: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM history WHERE seq NOT IN (SELECT seq FROM history ORDER BY seq DESC LIMIT ?)`,
		s.maxEntries,
	)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to prune history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("failed to commit history entry: %w", err)
	}

	if pruned, _ := res.RowsAffected(); pruned > 0 {
		s.logger.Debug("pruned history",
			zap.String("op", "history.Record"),
			zap.Int64("pruned", pruned),
			zap.Int("maxEntries", s.maxEntries),
		)
	}
	return entry, nil
}

// List returns up to limit entries, newest first. limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxEntries
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, calculator, created_at, input, summary FROM history ORDER BY seq DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return entries, nil
}

// Get returns a single entry.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, calculator, created_at, input, summary FROM history WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	return entry, err
}

// Delete removes a single entry.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every entry and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	n, _ := res.RowsAffected()
	s.logger.Info("history cleared",
		zap.String("op", "history.Clear"),
		zap.Int64("deleted", n),
	)
	return n, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(sc scanner) (Entry, error) {
	var (
		entry       Entry
		createdAt   int64
		inputJSON   string
		summaryJSON string
	)
	if err := sc.Scan(&entry.ID, &entry.Name, &entry.Calculator, &createdAt, &inputJSON, &summaryJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, err
		}
		return Entry{}, fmt.Errorf("failed to scan history entry: %w", err)
	}
	entry.CreatedAt = time.Unix(0, createdAt).UTC()
	entry.Input = json.RawMessage(inputJSON)
	if err := json.Unmarshal([]byte(summaryJSON), &entry.Summary); err != nil {
		return Entry{}, fmt.Errorf("failed to decode history summary %s: %w", entry.ID, err)
	}
	return entry, nil
}
