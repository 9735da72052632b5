package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/imcoder44/FootprintX/internal/domain"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Every connection to ":memory:" gets its own database.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS lookups (
			session_id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			query_type TEXT NOT NULL,
			status TEXT NOT NULL,
			results INTEGER NOT NULL DEFAULT 0,
			failures INTEGER NOT NULL DEFAULT 0,
			started_at INTEGER NOT NULL,
			ended_at INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_lookups_started ON lookups(started_at)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateLookup records the start of a lookup.
func (s *SQLiteStore) CreateLookup(ctx context.Context, lookup *domain.Lookup) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO lookups (session_id, query, query_type, status, results, failures, started_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		lookup.SessionID, lookup.Query, string(lookup.QueryType), string(lookup.Status),
		lookup.Results, lookup.Failures, lookup.StartedAt.UnixMilli())
	return err
}

// CompleteLookup stores the final status and counters of a lookup.
func (s *SQLiteStore) CompleteLookup(ctx context.Context, sessionID string, status domain.LookupStatus, results, failures int, endedAt time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE lookups SET status = ?, results = ?, failures = ?, ended_at = ? WHERE session_id = ?`,
		string(status), results, failures, endedAt.UnixMilli(), sessionID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetLookup retrieves a lookup by session ID.
func (s *SQLiteStore) GetLookup(ctx context.Context, sessionID string) (*domain.Lookup, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT session_id, query, query_type, status, results, failures, started_at, ended_at FROM lookups WHERE session_id = ?`,
		sessionID)
	lookup, err := scanLookup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return lookup, nil
}

// ListLookups returns the most recent lookups first.
func (s *SQLiteStore) ListLookups(ctx context.Context, limit int) ([]domain.Lookup, error) {
	query := `SELECT session_id, query, query_type, status, results, failures, started_at, ended_at FROM lookups ORDER BY started_at DESC, rowid DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lookups := []domain.Lookup{}
	for rows.Next() {
		lookup, err := scanLookup(rows)
		if err != nil {
			return nil, err
		}
		lookups = append(lookups, *lookup)
	}
	return lookups, rows.Err()
}

// PruneLookups deletes lookups started before the given time.
func (s *SQLiteStore) PruneLookups(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lookups WHERE started_at < ?`, before.UnixMilli())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanLookup(row scanner) (*domain.Lookup, error) {
	var lookup domain.Lookup
	var queryType, status string
	var startedAt int64
	var endedAt sql.NullInt64
	if err := row.Scan(&lookup.SessionID, &lookup.Query, &queryType, &status,
		&lookup.Results, &lookup.Failures, &startedAt, &endedAt); err != nil {
		return nil, err
	}
	lookup.QueryType = domain.QueryType(queryType)
	lookup.Status = domain.LookupStatus(status)
	lookup.StartedAt = time.UnixMilli(startedAt).UTC()
	if endedAt.Valid {
		t := time.UnixMilli(endedAt.Int64).UTC()
		lookup.EndedAt = &t
	}
	return &lookup, nil
}
