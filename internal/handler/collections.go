package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/jefefefef/Paperplay/internal/config"
	"github.com/jefefefef/Paperplay/internal/domain"
	models "github.com/jefefefef/Paperplay/internal/domain/models/library"
	librarySvc "github.com/jefefefef/Paperplay/internal/domain/services/library"
	"github.com/jefefefef/Paperplay/internal/httputil"
)

// CollectionHandler handles collection listing, creation and assignment
type CollectionHandler struct {
	coordinator librarySvc.Coordinator
	logger      *slog.Logger
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(coordinator librarySvc.Coordinator, logger *slog.Logger) *CollectionHandler {
	return &CollectionHandler{
		coordinator: coordinator,
		logger:      logger,
	}
}

// CollectionListResponse represents the collection listing
type CollectionListResponse struct {
	Collections        []models.Collection `json:"collections"`
	ActiveCollectionID string              `json:"active_collection_id"`
}

// CreateCollectionRequest represents the payload for creating a collection
type CreateCollectionRequest struct {
	Name string `json:"name"`
}

// Validate checks boundary constraints on the request
func (r *CreateCollectionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Length(0, config.MaxCollectionNameLength)),
	)
}

// AssignDocumentRequest represents the payload for filing a document
type AssignDocumentRequest struct {
	DocumentID string `json:"document_id"`
}

// Validate checks boundary constraints on the request
func (r *AssignDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.DocumentID, validation.Required),
	)
}

// List returns every collection along with the active collection id.
// GET /api/collections
func (h *CollectionHandler) List(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, CollectionListResponse{
		Collections:        h.coordinator.Collections(),
		ActiveCollectionID: h.coordinator.ActiveCollectionID(),
	})
}

// Create creates a new empty collection.
// POST /api/collections
//
// A blank name is not an error: the coordinator ignores it and the
// response is 204 with nothing created.
func (h *CollectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCollectionRequest
	if err := httputil.ParseJSON(r, w, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		handleError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	collection, err := h.coordinator.CreateCollection(r.Context(), req.Name)
	if err != nil {
		handleError(w, err)
		return
	}
	if collection == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, collection)
}

// AssignDocument files a document into a collection, mirroring a completed
// drag-and-drop.
// POST /api/collections/{id}/documents
//
// Guard rejections (unknown target, unknown document, repeated assignment,
// the "all" collection, self-drops) are silent: the response is 204 either
// way and the collection listing reflects whatever actually changed.
func (h *CollectionHandler) AssignDocument(w http.ResponseWriter, r *http.Request) {
	targetID := r.PathValue("id")

	var req AssignDocumentRequest
	if err := httputil.ParseJSON(r, w, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		handleError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	gesture := librarySvc.DropGesture{
		SourceID: req.DocumentID,
		TargetID: targetID,
	}
	if err := h.coordinator.ResolveDrop(r.Context(), gesture); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
