// Package gallery keeps a local history of rendered figures in a
// SQLite database so past renders can be listed and re-run.
package gallery

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one recorded render.
type Entry struct {
	ID           string
	Kind         string // plot, heatmap, hist
	RecipePath   string // empty for renders driven through the API
	Output       string
	Format       string // output extension without the dot
	OutputSHA256 string // hex digest of the written file
	RenderedAt   time.Time
}

// Store is the render history database.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes the gallery database at the given path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create gallery directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open gallery database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set journal_mode: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS renders (
			id            TEXT PRIMARY KEY,
			kind          TEXT NOT NULL,
			recipe_path   TEXT NOT NULL DEFAULT '',
			output        TEXT NOT NULL,
			format        TEXT NOT NULL DEFAULT '',
			output_sha256 TEXT NOT NULL DEFAULT '',
			rendered_at   INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_renders_time ON renders(rendered_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("failed to initialize gallery schema: %w", err)
	}
	return nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one render and returns its id. Format is the output
// extension without the dot; sha256 the hex digest of the written file.
func (s *Store) Record(kind, recipePath, output, format, sha256 string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO renders (id, kind, recipe_path, output, format, output_sha256, rendered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, kind, recipePath, output, format, sha256, time.Now().UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to record render: %w", err)
	}
	return id, nil
}

// Recent returns up to limit renders, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, kind, recipe_path, output, format, output_sha256, rendered_at
		 FROM renders ORDER BY rendered_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query renders: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.ID, &e.Kind, &e.RecipePath, &e.Output, &e.Format, &e.OutputSHA256, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan render: %w", err)
		}
		e.RenderedAt = time.UnixMilli(ts)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the total number of recorded renders.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM renders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count renders: %w", err)
	}
	return n, nil
}
