package migrations

import "embed"

// FS contains embedded SQLite migrations for tower storage.
//
//go:embed *.sql
var FS embed.FS
