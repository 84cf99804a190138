package moderation

import (
	"errors"
	"log"
	"net/http"

	"parishfeed/internal/api/handlers"
	"parishfeed/internal/core/moderation"
)

// handleServiceError converts moderation service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var valErr *moderation.ValidationError
	if errors.As(err, &valErr) {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", valErr.Error())
		return
	}

	switch {
	case errors.Is(err, moderation.ErrReportNotFound):
		handlers.WriteError(w, http.StatusNotFound, "ReportNotFound", "Report not found")
	case errors.Is(err, moderation.ErrPostNotFound):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
	case errors.Is(err, moderation.ErrPostRemoved):
		handlers.WriteError(w, http.StatusConflict, "PostRemoved", "Post has already been removed")
	case errors.Is(err, moderation.ErrOwnPost):
		handlers.WriteError(w, http.StatusForbidden, "OwnPost", "You cannot report your own post")
	case errors.Is(err, moderation.ErrNotAuthority):
		handlers.WriteError(w, http.StatusForbidden, "NotAuthorized", "Moderation authority required")
	case errors.Is(err, moderation.ErrAlreadyResolved):
		handlers.WriteError(w, http.StatusConflict, "AlreadyResolved", "Report has already been resolved")
	case errors.Is(err, moderation.ErrVisibilityConflict):
		handlers.WriteError(w, http.StatusConflict, "Conflict", "Visibility transition conflicted, try again")
	default:
		log.Printf("moderation handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
