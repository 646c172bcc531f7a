package library

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jefefefef/Paperplay/internal/config"
	models "github.com/jefefefef/Paperplay/internal/domain/models/library"
	librarySvc "github.com/jefefefef/Paperplay/internal/domain/services/library"
)

// UploadDocuments imports the given files. Thumbnailing and persistence
// run concurrently across files, but every snapshot append happens after
// the whole batch settles, in input order, so the "all" membership
// recomputation sees a consistent document list. A per-file failure is
// recorded in that file's outcome and never aborts the rest.
func (s *libraryService) UploadDocuments(ctx context.Context, files []librarySvc.UploadedFile) (*librarySvc.UploadResult, error) {
	s.commandMu.Lock()
	defer s.commandMu.Unlock()

	result := &librarySvc.UploadResult{
		Summary:  librarySvc.UploadSummary{TotalFiles: len(files)},
		Outcomes: []librarySvc.FileOutcome{},
	}
	if len(files) == 0 {
		return result, nil
	}

	type fileResult struct {
		outcome librarySvc.FileOutcome
		doc     *models.Document // nil when the file failed
	}
	results := make([]fileResult, len(files))

	var group errgroup.Group
	group.SetLimit(config.MaxUploadWorkers)
	for i, file := range files {
		group.Go(func() error {
			doc, err := s.processFile(ctx, file)
			if err != nil {
				s.logger.Warn("file upload failed",
					"filename", file.Filename,
					"error", err)
				results[i] = fileResult{outcome: librarySvc.FileOutcome{
					Filename: file.Filename,
					Error:    err.Error(),
				}}
				return nil
			}
			results[i] = fileResult{
				outcome: librarySvc.FileOutcome{Filename: file.Filename, DocumentID: doc.ID},
				doc:     doc,
			}
			return nil
		})
	}
	// Workers report failures through their outcome, never an error
	_ = group.Wait()

	var stored []models.Document
	s.stateMu.Lock()
	for i := range results {
		result.Outcomes = append(result.Outcomes, results[i].outcome)
		if doc := results[i].doc; doc != nil {
			s.snap.appendDocument(*doc)
			stored = append(stored, *doc)
			result.Summary.Stored++
		} else {
			result.Summary.Failed++
		}
	}
	s.stateMu.Unlock()

	for _, doc := range stored {
		s.index.Add(doc)
	}

	if len(stored) > 0 {
		s.refreshAllMembership(ctx)
	}

	s.logger.Info("upload finished",
		"total", result.Summary.TotalFiles,
		"stored", result.Summary.Stored,
		"failed", result.Summary.Failed,
	)

	return result, nil
}

// processFile turns one uploaded file into a persisted document
func (s *libraryService) processFile(ctx context.Context, file librarySvc.UploadedFile) (*models.Document, error) {
	content, err := io.ReadAll(file.Content)
	if err != nil {
		return nil, fmt.Errorf("read file content: %w", err)
	}

	doc := &models.Document{
		ID:        uuid.New().String(),
		Name:      displayName(file.Filename),
		Thumbnail: s.thumbnailer.Generate(file.Filename, content),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.docRepo.Put(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// refreshAllMembership rewrites the persisted "all" collection to the
// current full document id set. The persisted row is only a cache (reads
// always derive "all" membership), so a write failure here is logged and
// tolerated rather than surfaced.
func (s *libraryService) refreshAllMembership(ctx context.Context) {
	s.stateMu.RLock()
	all, ok := s.snap.collectionByID(models.AllCollectionID)
	ids := s.snap.documentIDs()
	s.stateMu.RUnlock()

	if !ok {
		all = models.Collection{ID: models.AllCollectionID, Name: "All Documents"}
	}
	all.DocumentIDs = ids

	if err := s.collectionRepo.Put(ctx, &all); err != nil {
		s.logger.Warn("failed to persist all-collection membership", "error", err)
		return
	}

	s.stateMu.Lock()
	if _, exists := s.snap.collectionByID(models.AllCollectionID); exists {
		s.snap.replaceCollection(all)
	} else {
		s.snap.appendCollection(all)
	}
	s.stateMu.Unlock()
}

// displayName strips the directory and extension from an uploaded
// filename, falling back to the raw filename when nothing is left
func displayName(filename string) string {
	baseName := filepath.Base(filename)
	ext := filepath.Ext(baseName)
	name := strings.TrimSuffix(baseName, ext)
	if name == "" {
		name = baseName
	}
	if name == "" || name == "." {
		name = "untitled"
	}
	return name
}
