// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store records verification runs and their per-publication
// results in SQLite. Saved results let an interrupted batch resume without
// querying the bibliographic sources again, and back the history listing.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scholar-verify/internal/textmatch"
	"github.com/pdiddy/scholar-verify/pkg/types"
)

// DefaultPath is the database location used when none is configured.
const DefaultPath = ".scholar-verify/history.db"

// Store wraps the history database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Run is one verification of one profile.
type Run struct {
	ID        string
	Profile   string
	Author    string
	SelfCheck bool
	StartedAt time.Time

	// Filled by Runs.
	Results   int
	Authentic int
}

// Open opens or creates the database at path and its schema.
func Open(path string) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			profile TEXT NOT NULL,
			author TEXT NOT NULL,
			self_check INTEGER NOT NULL DEFAULT 0,
			started_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_profile ON runs(profile, author)`,
		`CREATE TABLE IF NOT EXISTS results (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			title_key TEXT NOT NULL,
			claimed_title TEXT NOT NULL,
			matched_title TEXT,
			matched_source TEXT,
			doi TEXT,
			confidence_score REAL NOT NULL,
			classification TEXT NOT NULL,
			verification_strength TEXT NOT NULL,
			reason TEXT,
			UNIQUE(run_id, title_key)
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// TitleKey is the identity of a claimed title within a run.
func TitleKey(title string) string {
	return textmatch.Normalize(title)
}

// StartRun records the start of a run and returns it with a fresh ID.
func (s *Store) StartRun(ctx context.Context, profile, author string, selfCheck bool) (Run, error) {
	run := Run{
		ID:        uuid.NewString(),
		Profile:   profile,
		Author:    author,
		SelfCheck: selfCheck,
		StartedAt: s.now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, profile, author, self_check, started_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Profile, run.Author, run.SelfCheck, run.StartedAt.UnixNano(),
	)
	if err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}
	return run, nil
}

// SaveResult stores r under runID. Saving the same title twice in a run
// replaces the earlier result.
func (s *Store) SaveResult(ctx context.Context, runID string, r types.VerificationResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO results (run_id, title_key, claimed_title, matched_title, matched_source, doi,
			confidence_score, classification, verification_strength, reason)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, title_key) DO UPDATE SET
			claimed_title = excluded.claimed_title,
			matched_title = excluded.matched_title,
			matched_source = excluded.matched_source,
			doi = excluded.doi,
			confidence_score = excluded.confidence_score,
			classification = excluded.classification,
			verification_strength = excluded.verification_strength,
			reason = excluded.reason`,
		runID, TitleKey(r.ClaimedTitle), r.ClaimedTitle, r.MatchedTitle, r.MatchedSource, r.DOI,
		r.ConfidenceScore, string(r.Classification), string(r.VerificationStrength), r.Reason,
	)
	if err != nil {
		return fmt.Errorf("saving result for %q: %w", r.ClaimedTitle, err)
	}
	return nil
}

// PriorResults returns the most recent saved result for each title
// verified in earlier runs of the same profile and author, keyed by
// TitleKey.
func (s *Store) PriorResults(ctx context.Context, profile, author string) (map[string]types.VerificationResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.title_key, `+resultColumns+`
		FROM results r JOIN runs u ON r.run_id = u.id
		WHERE u.profile = ? AND u.author = ?
		ORDER BY u.started_at, r.seq`,
		profile, author,
	)
	if err != nil {
		return nil, fmt.Errorf("querying prior results: %w", err)
	}
	defer rows.Close()

	prior := make(map[string]types.VerificationResult)
	for rows.Next() {
		var key string
		var r types.VerificationResult
		if err := scanResult(rows, &key, &r); err != nil {
			return nil, err
		}
		prior[key] = r
	}
	return prior, rows.Err()
}

// Results returns a run's results in the order they were saved.
func (s *Store) Results(ctx context.Context, runID string) ([]types.VerificationResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.title_key, `+resultColumns+` FROM results r WHERE r.run_id = ? ORDER BY r.seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var out []types.VerificationResult
	for rows.Next() {
		var key string
		var r types.VerificationResult
		if err := scanResult(rows, &key, &r); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Runs lists the most recent runs first with their result counts. A
// limit of zero or less lists every run.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.profile, u.author, u.self_check, u.started_at,
			COUNT(r.seq),
			COALESCE(SUM(CASE WHEN r.classification = ? THEN 1 ELSE 0 END), 0)
		FROM runs u LEFT JOIN results r ON r.run_id = u.id
		GROUP BY u.id
		ORDER BY u.started_at DESC
		LIMIT ?`,
		string(types.Authentic), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started int64
		if err := rows.Scan(&run.ID, &run.Profile, &run.Author, &run.SelfCheck, &started,
			&run.Results, &run.Authentic); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.StartedAt = time.Unix(0, started).UTC()
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

const resultColumns = `r.claimed_title, COALESCE(r.matched_title, ''), COALESCE(r.matched_source, ''),
	COALESCE(r.doi, ''), r.confidence_score, r.classification, r.verification_strength, COALESCE(r.reason, '')`

func scanResult(rows *sql.Rows, key *string, r *types.VerificationResult) error {
	var class, strength string
	if err := rows.Scan(key, &r.ClaimedTitle, &r.MatchedTitle, &r.MatchedSource, &r.DOI,
		&r.ConfidenceScore, &class, &strength, &r.Reason); err != nil {
		return fmt.Errorf("scanning result: %w", err)
	}
	r.Classification = types.Classification(class)
	r.VerificationStrength = types.Strength(strength)
	return nil
}
