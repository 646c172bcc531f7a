package library

import (
	"context"

	models "github.com/jefefefef/Paperplay/internal/domain/models/library"
)

// Coordinator is the command surface the presentation layer talks to. It
// owns the canonical in-memory snapshot of documents and collections and
// keeps it synchronized with durable storage and the search index.
//
// Commands (Initialize, UploadDocuments, CreateCollection,
// AssignDocumentToCollection, ResolveDrop) are serialized: each one
// finishes its read-modify-write cycle before the next is accepted.
// Reads (Query, Collections, Document, ActiveCollectionID) only touch the
// snapshot and stay responsive while a command waits on storage.
type Coordinator interface {
	// Initialize loads all documents and collections from storage,
	// synthesizes the "all" collection when absent, rebuilds the search
	// index and selects the first collection as active. On a storage
	// read failure it returns an error wrapping ErrInitialization and
	// leaves an empty, usable snapshot behind.
	Initialize(ctx context.Context) error

	// UploadDocuments imports the given files. Each file is an
	// independent unit of work: a failure is reported in that file's
	// outcome and never aborts the rest of the batch.
	UploadDocuments(ctx context.Context, files []UploadedFile) (*UploadResult, error)

	// CreateCollection creates an empty collection with the given name.
	// A blank name is silently rejected: the call returns (nil, nil) and
	// nothing changes.
	CreateCollection(ctx context.Context, name string) (*models.Collection, error)

	// AssignDocumentToCollection adds a document to a collection's
	// membership. Unknown targets, unknown documents, repeated
	// assignments and the synthetic "all" collection are all silent
	// no-ops. The only error is a storage write failure.
	AssignDocumentToCollection(ctx context.Context, documentID, targetCollectionID string) error

	// ResolveDrop translates a completed drag gesture into at most one
	// assignment command. Self-drops and unknown targets are ignored.
	ResolveDrop(ctx context.Context, gesture DropGesture) error

	// Query returns the visible document sequence. A non-blank search
	// query searches every document regardless of the active collection;
	// a blank one returns the active collection's membership, with "all"
	// meaning every document.
	Query(activeCollectionID, searchQuery string) []models.Document

	// Collections returns every collection in load order. The "all"
	// collection's membership is derived from the current document set,
	// never read from storage.
	Collections() []models.Collection

	// Document looks a single document up by id
	Document(id string) (models.Document, bool)

	// ActiveCollectionID returns the collection selected at startup, or
	// empty when initialization has not run
	ActiveCollectionID() string
}
