package library

import (
	"strings"

	models "github.com/jefefefef/Paperplay/internal/domain/models/library"
)

// Query returns the visible document sequence for the given selection
// and search text. It reads only the snapshot and the index, so it never
// blocks behind a command that is waiting on storage.
//
// A non-blank query searches across all documents: search is global, the
// active collection does not scope it. A blank query shows the active
// collection's membership, with "all" (or no selection) meaning every
// document.
func (s *libraryService) Query(activeCollectionID, searchQuery string) []models.Document {
	if strings.TrimSpace(searchQuery) != "" {
		ids := s.index.Search(searchQuery)

		s.stateMu.RLock()
		defer s.stateMu.RUnlock()

		// The index is a cache, not truth: drop any id that no longer
		// resolves against the snapshot
		docs := make([]models.Document, 0, len(ids))
		for _, id := range ids {
			if doc, ok := s.snap.documentByID(id); ok {
				docs = append(docs, doc)
			}
		}
		return docs
	}

	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	if activeCollectionID == "" || activeCollectionID == models.AllCollectionID {
		return s.snap.documentList()
	}

	collection, ok := s.snap.collectionByID(activeCollectionID)
	if !ok {
		return []models.Document{}
	}

	docs := make([]models.Document, 0, len(collection.DocumentIDs))
	for _, id := range collection.DocumentIDs {
		if doc, ok := s.snap.documentByID(id); ok {
			docs = append(docs, doc)
		}
	}
	return docs
}

// Collections returns every collection in load order. The synthetic
// "all" entry is reported with its derived membership: the full document
// id set as of this call.
func (s *libraryService) Collections() []models.Collection {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	out := make([]models.Collection, len(s.snap.collections))
	copy(out, s.snap.collections)
	for i := range out {
		if out[i].IsSynthetic() {
			out[i].DocumentIDs = s.snap.documentIDs()
		}
	}
	return out
}

// Document looks a single document up by id
func (s *libraryService) Document(id string) (models.Document, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.snap.documentByID(id)
}

// ActiveCollectionID returns the collection selected at initialization
func (s *libraryService) ActiveCollectionID() string {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.snap.activeID
}
