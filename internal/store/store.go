// Package store handles SQLite persistence of run history.
package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/trace/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotEmpty is returned by Import when the database already holds runs.
var ErrNotEmpty = errors.New("run history is not empty")

// Store wraps SQLite access for run data.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			recorded_at TEXT NOT NULL,
			wpm REAL NOT NULL,
			accuracy REAL NOT NULL,
			total_points REAL NOT NULL,
			seconds REAL NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_recorded_at ON runs(recorded_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Append stores a completed run.
func (s *Store) Append(ctx context.Context, run model.RunRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (recorded_at, wpm, accuracy, total_points, seconds)
		 VALUES (?, ?, ?, ?, ?)`,
		s.now().UTC().Format(time.RFC3339Nano),
		run.WPM,
		run.Accuracy,
		run.TotalPoints,
		run.Seconds,
	)
	return err
}

// LoadAll returns every run in insertion order.
func (s *Store) LoadAll(ctx context.Context) ([]model.RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT wpm, accuracy, total_points, seconds FROM runs ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunRecord
	for rows.Next() {
		var run model.RunRecord
		if err := rows.Scan(&run.WPM, &run.Accuracy, &run.TotalPoints, &run.Seconds); err != nil {
			continue
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Import copies runs into an empty database inside one transaction. It
// returns ErrNotEmpty when runs are already stored.
func (s *Store) Import(ctx context.Context, runs []model.RunRecord) (int, error) {
	return s.insertAll(ctx, runs, true)
}

// AppendAll adds runs after any already stored, inside one transaction.
func (s *Store) AppendAll(ctx context.Context, runs []model.RunRecord) (int, error) {
	return s.insertAll(ctx, runs, false)
}

func (s *Store) insertAll(ctx context.Context, runs []model.RunRecord, requireEmpty bool) (n int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if requireEmpty {
		var existing int
		if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&existing); err != nil {
			return 0, err
		}
		if existing > 0 {
			err = ErrNotEmpty
			return 0, err
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO runs (recorded_at, wpm, accuracy, total_points, seconds)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()

	recordedAt := s.now().UTC().Format(time.RFC3339Nano)
	for _, run := range runs {
		if _, err = stmt.ExecContext(ctx, recordedAt, run.WPM, run.Accuracy, run.TotalPoints, run.Seconds); err != nil {
			return 0, err
		}
		n++
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return n, nil
}
