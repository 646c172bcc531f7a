package library

import (
	models "github.com/jefefefef/Paperplay/internal/domain/models/library"
)

// snapshot is the canonical in-memory copy of all documents and
// collections. It is plain data: the coordinator owns the locking and
// never lets a snapshot method block on I/O.
type snapshot struct {
	documents       []models.Document
	documentIndex   map[string]int // document id -> index into documents
	collections     []models.Collection
	collectionIndex map[string]int // collection id -> index into collections
	activeID        string
}

func newSnapshot() *snapshot {
	return &snapshot{
		documentIndex:   make(map[string]int),
		collectionIndex: make(map[string]int),
	}
}

func (s *snapshot) hasDocument(id string) bool {
	_, ok := s.documentIndex[id]
	return ok
}

func (s *snapshot) documentByID(id string) (models.Document, bool) {
	i, ok := s.documentIndex[id]
	if !ok {
		return models.Document{}, false
	}
	return s.documents[i], true
}

func (s *snapshot) collectionByID(id string) (models.Collection, bool) {
	i, ok := s.collectionIndex[id]
	if !ok {
		return models.Collection{}, false
	}
	return s.collections[i], true
}

// appendDocument adds a document that is not yet in the snapshot
func (s *snapshot) appendDocument(doc models.Document) {
	if s.hasDocument(doc.ID) {
		return
	}
	s.documentIndex[doc.ID] = len(s.documents)
	s.documents = append(s.documents, doc)
}

// appendCollection adds a collection that is not yet in the snapshot
func (s *snapshot) appendCollection(collection models.Collection) {
	if _, ok := s.collectionIndex[collection.ID]; ok {
		return
	}
	s.collectionIndex[collection.ID] = len(s.collections)
	s.collections = append(s.collections, collection)
}

// replaceCollection swaps a collection's entry wholesale, keeping its
// position in load order
func (s *snapshot) replaceCollection(collection models.Collection) {
	i, ok := s.collectionIndex[collection.ID]
	if !ok {
		return
	}
	s.collections[i] = collection
}

// documentList returns a copy of the document sequence in append order
func (s *snapshot) documentList() []models.Document {
	out := make([]models.Document, len(s.documents))
	copy(out, s.documents)
	return out
}

// documentIDs returns every document id in append order
func (s *snapshot) documentIDs() []string {
	ids := make([]string, len(s.documents))
	for i, doc := range s.documents {
		ids[i] = doc.ID
	}
	return ids
}
