package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite" // register pure-Go SQLite driver
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	DB     *sql.DB
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Documents   string
	Collections string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Documents:   fmt.Sprintf("%sdocuments", prefix),
		Collections: fmt.Sprintf("%scollections", prefix),
	}
}

// Open opens the library database at path using the modernc.org/sqlite
// driver. Pass ":memory:" for an in-memory database (tests).
//
// The connection limit is pinned to 1: SQLite locks the whole file on write,
// and the coordinator serializes commands anyway, so a second connection
// would only buy SQLITE_BUSY errors.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
