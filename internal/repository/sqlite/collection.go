package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jefefefef/Paperplay/internal/domain"
	models "github.com/jefefefef/Paperplay/internal/domain/models/library"
	libraryRepo "github.com/jefefefef/Paperplay/internal/domain/repositories/library"
)

// SQLiteCollectionRepository implements the CollectionRepository interface
type SQLiteCollectionRepository struct {
	db     *sql.DB
	tables *TableNames
	logger *slog.Logger
}

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(config *RepositoryConfig) libraryRepo.CollectionRepository {
	return &SQLiteCollectionRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Put upserts a collection by id. Membership is stored as a JSON array
// so the row stays self-contained and reads need no join.
func (r *SQLiteCollectionRepository) Put(ctx context.Context, collection *models.Collection) error {
	docIDs := collection.DocumentIDs
	if docIDs == nil {
		docIDs = []string{}
	}
	membership, err := json.Marshal(docIDs)
	if err != nil {
		return &domain.StorageError{Table: r.tables.Collections, Op: "put", Err: fmt.Errorf("encode document ids: %w", err)}
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, document_ids)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			document_ids = excluded.document_ids
	`, r.tables.Collections)

	_, err = r.db.ExecContext(ctx, query, collection.ID, collection.Name, string(membership))
	if err != nil {
		return &domain.StorageError{Table: r.tables.Collections, Op: "put", Err: err}
	}

	return nil
}

// GetAll returns every stored collection in insertion order.
// Upserts keep the original rowid, so rowid order is creation order.
func (r *SQLiteCollectionRepository) GetAll(ctx context.Context) ([]models.Collection, error) {
	query := fmt.Sprintf(`
		SELECT id, name, document_ids
		FROM %s
		ORDER BY rowid ASC
	`, r.tables.Collections)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &domain.StorageError{Table: r.tables.Collections, Op: "getAll", Err: err}
	}
	defer rows.Close()

	var collections []models.Collection
	for rows.Next() {
		var collection models.Collection
		var membership string
		if err := rows.Scan(&collection.ID, &collection.Name, &membership); err != nil {
			return nil, &domain.StorageError{Table: r.tables.Collections, Op: "getAll", Err: fmt.Errorf("scan collection: %w", err)}
		}
		if err := json.Unmarshal([]byte(membership), &collection.DocumentIDs); err != nil {
			return nil, &domain.StorageError{Table: r.tables.Collections, Op: "getAll", Err: fmt.Errorf("decode document ids: %w", err)}
		}
		if collection.DocumentIDs == nil {
			collection.DocumentIDs = []string{}
		}
		collections = append(collections, collection)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Table: r.tables.Collections, Op: "getAll", Err: fmt.Errorf("iterate collections: %w", err)}
	}

	// Return empty slice instead of nil
	if collections == nil {
		collections = []models.Collection{}
	}

	return collections, nil
}
