package migrations

import "embed"

// FS contains embedded SQLite migrations for codex storage.
//
//go:embed *.sql
var FS embed.FS
