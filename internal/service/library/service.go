package library

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jefefefef/Paperplay/internal/domain"
	models "github.com/jefefefef/Paperplay/internal/domain/models/library"
	libraryRepo "github.com/jefefefef/Paperplay/internal/domain/repositories/library"
	librarySvc "github.com/jefefefef/Paperplay/internal/domain/services/library"
	"github.com/jefefefef/Paperplay/internal/search"
)

// libraryService implements the Coordinator interface.
//
// Locking discipline: commandMu serializes commands end to end, so no two
// read-modify-write cycles ever interleave. stateMu guards the snapshot
// itself and is held only around memory access, never across a storage or
// thumbnail call; that keeps queries responsive while a command waits on
// a stalled store.
type libraryService struct {
	docRepo        libraryRepo.DocumentRepository
	collectionRepo libraryRepo.CollectionRepository
	thumbnailer    librarySvc.Thumbnailer
	index          *search.Index
	logger         *slog.Logger

	commandMu sync.Mutex
	stateMu   sync.RWMutex
	snap      *snapshot
}

// NewService creates a new library coordinator
func NewService(
	docRepo libraryRepo.DocumentRepository,
	collectionRepo libraryRepo.CollectionRepository,
	thumbnailer librarySvc.Thumbnailer,
	index *search.Index,
	logger *slog.Logger,
) librarySvc.Coordinator {
	return &libraryService{
		docRepo:        docRepo,
		collectionRepo: collectionRepo,
		thumbnailer:    thumbnailer,
		index:          index,
		logger:         logger,
		snap:           newSnapshot(),
	}
}

// Initialize loads the snapshot from storage and rebuilds the search
// index. The loaded state is applied all-or-nothing: on a read failure
// the existing (empty) snapshot stays in place so callers can still
// render an empty library.
func (s *libraryService) Initialize(ctx context.Context) error {
	s.commandMu.Lock()
	defer s.commandMu.Unlock()

	documents, err := s.docRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: load documents: %v", domain.ErrInitialization, err)
	}

	collections, err := s.collectionRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: load collections: %v", domain.ErrInitialization, err)
	}

	loaded := newSnapshot()
	for _, doc := range documents {
		loaded.appendDocument(doc)
	}

	// When storage has no trace of the "all" collection, synthesize one
	// over the loaded documents and put it first. The synthesized
	// membership is not written back until the next upload touches it.
	if !containsAll(collections) {
		loaded.appendCollection(models.Collection{
			ID:          models.AllCollectionID,
			Name:        "All Documents",
			DocumentIDs: loaded.documentIDs(),
		})
	}
	for _, collection := range collections {
		loaded.appendCollection(collection)
	}

	if len(loaded.collections) > 0 {
		loaded.activeID = loaded.collections[0].ID
	}

	s.index.Rebuild(documents)

	s.stateMu.Lock()
	s.snap = loaded
	s.stateMu.Unlock()

	s.logger.Info("library initialized",
		"documents", len(documents),
		"collections", len(loaded.collections),
		"indexed", s.index.Len(),
		"active_collection", loaded.activeID,
	)

	return nil
}

func containsAll(collections []models.Collection) bool {
	for i := range collections {
		if collections[i].ID == models.AllCollectionID {
			return true
		}
	}
	return false
}
