package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/contre95/lyricsolid/src/music"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SqliteHistory is a SQLite implementation of the lyrics History interface.
type SqliteHistory struct {
	db *sql.DB
}

// NewSqliteHistory opens (or creates) the lookup history database at path.
func NewSqliteHistory(path string) (*SqliteHistory, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SqliteHistory{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS lookups (
			id TEXT PRIMARY KEY,
			artist TEXT NOT NULL,
			title TEXT NOT NULL,
			origin TEXT,
			found BOOLEAN DEFAULT FALSE,
			saved_path TEXT,
			candidates TEXT,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_lookups_created_at ON lookups(created_at);
	`)
	return err
}

// RecordLookup stores a single resolution attempt.
func (d *SqliteHistory) RecordLookup(ctx context.Context, lookup music.Lookup) error {
	if lookup.ID == "" {
		lookup.ID = uuid.New().String()
	}
	if lookup.CreatedAt.IsZero() {
		lookup.CreatedAt = time.Now()
	}
	candidates := lookup.Candidates
	if candidates == nil {
		candidates = []string{}
	}
	encoded, err := json.Marshal(candidates)
	if err != nil {
		return fmt.Errorf("failed to encode candidates: %w", err)
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO lookups (id, artist, title, origin, found, saved_path, candidates, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, lookup.ID, lookup.Artist, lookup.Title, string(lookup.Origin), lookup.Found,
		lookup.SavedPath, string(encoded), lookup.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to record lookup: %w", err)
	}
	return nil
}

// RecentLookups returns up to limit lookups, newest first.
func (d *SqliteHistory) RecentLookups(ctx context.Context, limit int) ([]music.Lookup, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, artist, title, origin, found, saved_path, candidates, created_at
		FROM lookups
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lookups := []music.Lookup{}
	for rows.Next() {
		var (
			lookup                              music.Lookup
			origin, savedPath, candidates, date sql.NullString
		)
		if err := rows.Scan(&lookup.ID, &lookup.Artist, &lookup.Title, &origin, &lookup.Found,
			&savedPath, &candidates, &date); err != nil {
			return nil, err
		}
		lookup.Origin = music.Origin(origin.String)
		lookup.SavedPath = savedPath.String
		if candidates.String != "" {
			if err := json.Unmarshal([]byte(candidates.String), &lookup.Candidates); err != nil {
				return nil, fmt.Errorf("failed to decode candidates of lookup %s: %w", lookup.ID, err)
			}
		}
		lookup.CreatedAt, _ = time.Parse(time.RFC3339Nano, date.String)
		lookups = append(lookups, lookup)
	}
	return lookups, rows.Err()
}

// Close closes the underlying database.
func (d *SqliteHistory) Close() error {
	return d.db.Close()
}
