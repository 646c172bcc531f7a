package library

import (
	"context"
	"strings"

	"github.com/google/uuid"

	models "github.com/jefefefef/Paperplay/internal/domain/models/library"
	librarySvc "github.com/jefefefef/Paperplay/internal/domain/services/library"
)

// CreateCollection creates an empty collection. A blank name is silently
// rejected; nothing is written and (nil, nil) comes back.
func (s *libraryService) CreateCollection(ctx context.Context, name string) (*models.Collection, error) {
	s.commandMu.Lock()
	defer s.commandMu.Unlock()

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		s.logger.Debug("create collection rejected", "reason", "blank name")
		return nil, nil
	}

	collection := &models.Collection{
		ID:          uuid.New().String(),
		Name:        trimmed,
		DocumentIDs: []string{},
	}

	// Write-then-reflect: the snapshot only changes once storage accepted
	// the row
	if err := s.collectionRepo.Put(ctx, collection); err != nil {
		return nil, err
	}

	s.stateMu.Lock()
	s.snap.appendCollection(*collection)
	s.stateMu.Unlock()

	s.logger.Info("collection created",
		"id", collection.ID,
		"name", collection.Name,
	)

	return collection, nil
}

// AssignDocumentToCollection adds documentID to the target collection's
// membership set. All guard failures are silent no-ops; only a storage
// write failure surfaces as an error.
func (s *libraryService) AssignDocumentToCollection(ctx context.Context, documentID, targetCollectionID string) error {
	s.commandMu.Lock()
	defer s.commandMu.Unlock()

	s.stateMu.RLock()
	target, targetExists := s.snap.collectionByID(targetCollectionID)
	documentExists := s.snap.hasDocument(documentID)
	s.stateMu.RUnlock()

	switch {
	case !targetExists:
		s.logger.Debug("assignment ignored", "reason", "unknown target", "collection_id", targetCollectionID)
		return nil
	case target.IsSynthetic():
		// "all" membership is derived, never directly assignable
		s.logger.Debug("assignment ignored", "reason", "synthetic target", "document_id", documentID)
		return nil
	case !documentExists:
		s.logger.Debug("assignment ignored", "reason", "unknown document", "document_id", documentID)
		return nil
	case target.Contains(documentID):
		s.logger.Debug("assignment ignored", "reason", "already a member", "document_id", documentID)
		return nil
	}

	// One atomic membership update: copy, persist, then swap the snapshot
	// entry. A failed write leaves the snapshot untouched.
	updated := target.WithDocument(documentID)
	if err := s.collectionRepo.Put(ctx, updated); err != nil {
		return err
	}

	s.stateMu.Lock()
	s.snap.replaceCollection(*updated)
	s.stateMu.Unlock()

	s.logger.Info("document assigned",
		"document_id", documentID,
		"collection_id", targetCollectionID,
		"members", len(updated.DocumentIDs),
	)

	return nil
}

// ResolveDrop maps a completed drag gesture onto at most one assignment
// command. Self-drops and drops onto unknown targets are ignored without
// side effects.
func (s *libraryService) ResolveDrop(ctx context.Context, gesture librarySvc.DropGesture) error {
	if gesture.IsSelfDrop() {
		return nil
	}

	s.stateMu.RLock()
	_, known := s.snap.collectionByID(gesture.TargetID)
	s.stateMu.RUnlock()
	if !known {
		return nil
	}

	return s.AssignDocumentToCollection(ctx, gesture.SourceID, gesture.TargetID)
}
