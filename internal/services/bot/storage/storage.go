// Package storage defines persistence contracts for the bot's codex state.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates a requested codex entry is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained entry already exists.
	ErrAlreadyExists = errors.New("record already exists")
)

// Entry is one codex record browsable through the paginator.
type Entry struct {
	Slug      string
	Title     string
	Author    string
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EntryStore persists codex entries.
type EntryStore interface {
	CreateEntry(ctx context.Context, entry Entry) error
	GetEntry(ctx context.Context, slug string) (Entry, error)
	// ListEntries returns every entry ordered by title.
	ListEntries(ctx context.Context) ([]Entry, error)
	// TopEntries returns up to limit entries ordered by score, best first.
	TopEntries(ctx context.Context, limit int) ([]Entry, error)
}
