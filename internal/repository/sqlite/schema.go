package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/jefefefef/Paperplay/internal/domain"
)

// EnsureSchema creates the documents and collections tables if they do not
// already exist. It runs once on every open and is idempotent: re-creating
// an existing table is a no-op, never an error. There is no migration layer
// beyond "create if absent".
func EnsureSchema(db *sql.DB, tables *TableNames) error {
	statements := []struct {
		table string
		ddl   string
	}{
		{
			table: tables.Documents,
			ddl: fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					thumb_kind TEXT NOT NULL,
					thumb_pages INTEGER NOT NULL DEFAULT 0,
					thumb_png BLOB NOT NULL,
					created_at INTEGER NOT NULL -- unix nanoseconds
				)
			`, tables.Documents),
		},
		{
			table: tables.Collections,
			ddl: fmt.Sprintf(`
				CREATE TABLE IF NOT EXISTS %s (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					document_ids TEXT NOT NULL DEFAULT '[]'
				)
			`, tables.Collections),
		},
	}

	for _, s := range statements {
		if _, err := db.Exec(s.ddl); err != nil {
			return &domain.StorageError{Table: s.table, Op: "create", Err: err}
		}
	}

	return nil
}
