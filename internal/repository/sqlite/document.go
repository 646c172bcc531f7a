package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jefefefef/Paperplay/internal/domain"
	models "github.com/jefefefef/Paperplay/internal/domain/models/library"
	libraryRepo "github.com/jefefefef/Paperplay/internal/domain/repositories/library"
)

// SQLiteDocumentRepository implements the DocumentRepository interface
type SQLiteDocumentRepository struct {
	db     *sql.DB
	tables *TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) libraryRepo.DocumentRepository {
	return &SQLiteDocumentRepository{
		db:     config.DB,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Put upserts a document by id
func (r *SQLiteDocumentRepository) Put(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, thumb_kind, thumb_pages, thumb_png, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			thumb_kind = excluded.thumb_kind,
			thumb_pages = excluded.thumb_pages,
			thumb_png = excluded.thumb_png,
			created_at = excluded.created_at
	`, r.tables.Documents)

	png := doc.Thumbnail.PNG
	if png == nil {
		png = []byte{}
	}

	_, err := r.db.ExecContext(ctx, query,
		doc.ID,
		doc.Name,
		string(doc.Thumbnail.Kind),
		doc.Thumbnail.Pages,
		png,
		doc.CreatedAt.UnixNano(),
	)
	if err != nil {
		return &domain.StorageError{Table: r.tables.Documents, Op: "put", Err: err}
	}

	return nil
}

// GetAll returns every stored document ordered by creation time
func (r *SQLiteDocumentRepository) GetAll(ctx context.Context) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, name, thumb_kind, thumb_pages, thumb_png, created_at
		FROM %s
		ORDER BY created_at ASC, id ASC
	`, r.tables.Documents)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, &domain.StorageError{Table: r.tables.Documents, Op: "getAll", Err: err}
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		var doc models.Document
		var kind string
		var createdNS int64
		err := rows.Scan(
			&doc.ID,
			&doc.Name,
			&kind,
			&doc.Thumbnail.Pages,
			&doc.Thumbnail.PNG,
			&createdNS,
		)
		if err != nil {
			return nil, &domain.StorageError{Table: r.tables.Documents, Op: "getAll", Err: fmt.Errorf("scan document: %w", err)}
		}
		doc.Thumbnail.Kind = models.FileKind(kind)
		doc.CreatedAt = time.Unix(0, createdNS).UTC()
		documents = append(documents, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, &domain.StorageError{Table: r.tables.Documents, Op: "getAll", Err: fmt.Errorf("iterate documents: %w", err)}
	}

	// Return empty slice instead of nil
	if documents == nil {
		documents = []models.Document{}
	}

	return documents, nil
}
