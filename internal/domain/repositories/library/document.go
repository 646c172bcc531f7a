package library

import (
	"context"

	"github.com/jefefefef/Paperplay/internal/domain/models/library"
)

// DocumentRepository defines durable storage for documents.
//
// There is deliberately no delete or per-id lookup: the core never removes
// documents, and reads always go through the coordinator's in-memory
// snapshot, which is rebuilt from GetAll at startup.
type DocumentRepository interface {
	// Put upserts a document by id. A failure to durably commit wraps
	// domain.ErrStorage.
	Put(ctx context.Context, doc *library.Document) error

	// GetAll returns every stored document ordered by creation time.
	// A table that has never been written yields an empty slice.
	GetAll(ctx context.Context) ([]library.Document, error)
}
