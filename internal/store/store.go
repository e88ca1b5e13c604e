// Package store handles SQLite persistence of review history.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/wordcards/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// timeLayout is fixed width so that text order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for review history.
type Store struct {
	db *sql.DB
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
	store := &Store{db: db}
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
		`CREATE TABLE IF NOT EXISTS reviews (
			id INTEGER PRIMARY KEY,
			session_id TEXT NOT NULL UNIQUE,
			set_name TEXT NOT NULL,
			cards INTEGER NOT NULL,
			seen INTEGER NOT NULL,
			reshuffles INTEGER NOT NULL,
			completed INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_set_name ON reviews(set_name);`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_ended_at ON reviews(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertReview stores a finished review session.
func (s *Store) InsertReview(ctx context.Context, rec model.ReviewRecord) (int64, error) {
	completed := 0
	if rec.Completed {
		completed = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO reviews (session_id, set_name, cards, seen, reshuffles, completed, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID,
		rec.SetName,
		rec.Cards,
		rec.Seen,
		rec.Reshuffles,
		completed,
		formatTime(rec.StartedAt),
		formatTime(rec.EndedAt),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListReviews returns review records ordered by end time, oldest first.
func (s *Store) ListReviews(ctx context.Context, filter model.HistoryFilter) ([]model.ReviewRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.SetName != "" {
		clauses = append(clauses, "set_name = ?")
		args = append(args, filter.SetName)
	}
	if filter.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, formatTime(*filter.Since))
	}
	query := fmt.Sprintf(`SELECT id, session_id, set_name, cards, seen, reshuffles, completed, started_at, ended_at
		FROM reviews
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.ReviewRecord
	for rows.Next() {
		rec, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if filter.Last > 0 && len(records) > filter.Last {
		records = records[len(records)-filter.Last:]
	}
	return records, nil
}

// LastReview returns the most recent review of a set.
func (s *Store) LastReview(ctx context.Context, setName string) (model.ReviewRecord, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, session_id, set_name, cards, seen, reshuffles, completed, started_at, ended_at
		 FROM reviews
		 WHERE set_name = ?
		 ORDER BY ended_at DESC, id DESC
		 LIMIT 1`, setName)
	rec, err := scanReview(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ReviewRecord{}, false, nil
	}
	if err != nil {
		return model.ReviewRecord{}, false, err
	}
	return rec, true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReview(row scanner) (model.ReviewRecord, error) {
	var rec model.ReviewRecord
	var completed int
	var startedAt, endedAt string
	if err := row.Scan(&rec.ID, &rec.SessionID, &rec.SetName, &rec.Cards, &rec.Seen, &rec.Reshuffles, &completed, &startedAt, &endedAt); err != nil {
		return model.ReviewRecord{}, err
	}
	rec.Completed = completed != 0
	var err error
	if rec.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
		return model.ReviewRecord{}, err
	}
	if rec.EndedAt, err = time.Parse(timeLayout, endedAt); err != nil {
		return model.ReviewRecord{}, err
	}
	return rec, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
