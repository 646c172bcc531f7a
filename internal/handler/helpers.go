package handler

import (
	"errors"
	"net/http"

	"github.com/jefefefef/Paperplay/internal/domain"
	"github.com/jefefefef/Paperplay/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, "Bad Request", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrStorage):
		httputil.RespondError(w, http.StatusServiceUnavailable, "Storage Unavailable", err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "Internal Server Error", "an unexpected error occurred")
	}
}
