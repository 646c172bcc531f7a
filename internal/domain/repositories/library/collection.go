package library

import (
	"context"

	"github.com/jefefefef/Paperplay/internal/domain/models/library"
)

// CollectionRepository defines durable storage for collections.
//
// Writes to this table and the documents table are independent statements -
// there is no cross-table transaction. A crash between the two leaves them
// transiently inconsistent, which is tolerated because the synthetic "all"
// membership is recomputed, never trusted, at read time.
type CollectionRepository interface {
	// Put upserts a collection by id, replacing its whole membership set.
	// A failure to durably commit wraps domain.ErrStorage.
	Put(ctx context.Context, coll *library.Collection) error

	// GetAll returns every stored collection in insertion order.
	// A table that has never been written yields an empty slice.
	GetAll(ctx context.Context) ([]library.Collection, error)
}
