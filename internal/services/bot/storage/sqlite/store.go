// Package sqlite provides a SQLite-backed codex storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/wfaller/pageturn/internal/platform/storage/sqlitemigrate"
	"github.com/wfaller/pageturn/internal/services/bot/storage"
	"github.com/wfaller/pageturn/internal/services/bot/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists codex entries in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite codex store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// CreateEntry inserts one codex entry.
func (s *Store) CreateEntry(ctx context.Context, entry storage.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	slug := strings.TrimSpace(entry.Slug)
	title := strings.TrimSpace(entry.Title)
	if slug == "" {
		return fmt.Errorf("slug is required")
	}
	if title == "" {
		return fmt.Errorf("title is required")
	}
	createdAt := entry.CreatedAt.UTC()
	updatedAt := entry.UpdatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO entries (slug, title, author, score, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		slug,
		title,
		strings.TrimSpace(entry.Author),
		entry.Score,
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		if isEntryUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

// GetEntry returns one codex entry by slug.
func (s *Store) GetEntry(ctx context.Context, slug string) (storage.Entry, error) {
	if err := ctx.Err(); err != nil {
		return storage.Entry{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Entry{}, fmt.Errorf("storage is not configured")
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return storage.Entry{}, fmt.Errorf("slug is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT slug, title, author, score, created_at, updated_at
		   FROM entries
		  WHERE slug = ?`,
		slug,
	)
	return scanEntry(row)
}

// ListEntries returns every codex entry ordered by title.
func (s *Store) ListEntries(ctx context.Context) ([]storage.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT slug, title, author, score, created_at, updated_at
		   FROM entries
		  ORDER BY title ASC, slug ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// TopEntries returns up to limit entries ordered by score, best first.
func (s *Store) TopEntries(ctx context.Context, limit int) ([]storage.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT slug, title, author, score, created_at, updated_at
		   FROM entries
		  ORDER BY score DESC, title ASC
		  LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top entries: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (storage.Entry, error) {
	var entry storage.Entry
	var createdAt int64
	var updatedAt int64
	err := row.Scan(
		&entry.Slug,
		&entry.Title,
		&entry.Author,
		&entry.Score,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Entry{}, storage.ErrNotFound
		}
		return storage.Entry{}, fmt.Errorf("scan entry: %w", err)
	}
	entry.CreatedAt = fromMillis(createdAt)
	entry.UpdatedAt = fromMillis(updatedAt)
	return entry, nil
}

func collectEntries(rows *sql.Rows) ([]storage.Entry, error) {
	var entries []storage.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func isEntryUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "entries.slug")
}

var _ storage.EntryStore = (*Store)(nil)
