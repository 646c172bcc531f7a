package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jefefefef/Paperplay/internal/config"
	models "github.com/jefefefef/Paperplay/internal/domain/models/library"
	librarySvc "github.com/jefefefef/Paperplay/internal/domain/services/library"
	"github.com/jefefefef/Paperplay/internal/httputil"
)

// DocumentHandler handles document upload, listing and thumbnail requests
type DocumentHandler struct {
	coordinator librarySvc.Coordinator
	logger      *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(coordinator librarySvc.Coordinator, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		coordinator: coordinator,
		logger:      logger,
	}
}

// UploadResponse represents the response for upload operations
type UploadResponse struct {
	Success  bool                     `json:"success"`
	Summary  librarySvc.UploadSummary `json:"summary"`
	Outcomes []librarySvc.FileOutcome `json:"outcomes"`
}

// DocumentListResponse represents a document listing
type DocumentListResponse struct {
	Documents []models.Document `json:"documents"`
}

// Upload handles multi-file document import.
// POST /api/documents
//
// Expects multipart form data with one or more "files" parts. Files are
// independent units of work: the response reports per-file outcomes, so a
// batch can succeed partially.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (32MB held in memory, larger parts spill to disk)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Bad Request", "failed to parse multipart form")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "Bad Request", "no files provided")
		return
	}
	if len(files) > config.MaxUploadFiles {
		httputil.RespondError(w, http.StatusBadRequest, "Bad Request",
			fmt.Sprintf("too many files: %d exceeds the limit of %d", len(files), config.MaxUploadFiles))
		return
	}
	for _, fileHeader := range files {
		if fileHeader.Size > config.MaxFileBytes {
			httputil.RespondError(w, http.StatusBadRequest, "Bad Request",
				fmt.Sprintf("file %s exceeds the %d byte limit", fileHeader.Filename, config.MaxFileBytes))
			return
		}
	}

	h.logger.Info("starting upload", "file_count", len(files))

	// Convert uploaded parts to UploadedFile slice.
	// Note: defer file.Close() is safe here because all files are processed
	// before this function returns.
	uploadedFiles := make([]librarySvc.UploadedFile, 0, len(files))
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			h.logger.Error("failed to open uploaded file",
				"file", fileHeader.Filename,
				"error", err,
			)
			httputil.RespondError(w, http.StatusInternalServerError, "Internal Server Error",
				fmt.Sprintf("failed to open file %s", fileHeader.Filename))
			return
		}
		defer func() { _ = file.Close() }()

		uploadedFiles = append(uploadedFiles, librarySvc.UploadedFile{
			Filename: fileHeader.Filename,
			Content:  file,
		})
	}

	result, err := h.coordinator.UploadDocuments(r.Context(), uploadedFiles)
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Info("upload complete",
		"stored", result.Summary.Stored,
		"failed", result.Summary.Failed,
	)

	response := UploadResponse{
		Success:  result.Summary.Failed == 0,
		Summary:  result.Summary,
		Outcomes: result.Outcomes,
	}

	httputil.RespondJSON(w, http.StatusOK, response)
}

// List returns the visible documents for a collection or search query.
// GET /api/documents
//
// Query parameters:
//   - collection: optional, collection id scoping the listing (defaults to the active collection)
//   - q: optional, search query; a non-blank query searches every document and "collection" is ignored
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	collectionID := r.URL.Query().Get("collection")
	if collectionID == "" {
		collectionID = h.coordinator.ActiveCollectionID()
	}
	searchQuery := r.URL.Query().Get("q")

	documents := h.coordinator.Query(collectionID, searchQuery)

	httputil.RespondJSON(w, http.StatusOK, DocumentListResponse{
		Documents: documents,
	})
}

// Thumbnail serves a document's rendered preview as PNG.
// GET /api/documents/{id}/thumbnail
func (h *DocumentHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	doc, ok := h.coordinator.Document(id)
	if !ok {
		httputil.RespondError(w, http.StatusNotFound, "Not Found",
			fmt.Sprintf("document %s does not exist", id))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(doc.Thumbnail.PNG)
}

// HealthCheck is a simple health check endpoint
func (h *DocumentHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
