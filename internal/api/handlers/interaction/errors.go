package interaction

import (
	"errors"
	"log"
	"net/http"

	"parishfeed/internal/api/handlers"
	"parishfeed/internal/core/interactions"
)

// handleServiceError converts ledger service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interactions.ErrSubjectNotFound):
		handlers.WriteError(w, http.StatusNotFound, "SubjectNotFound", "The subject post or comment was not found")
	case errors.Is(err, interactions.ErrInvalidSubjectType):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "subject type must be 'post' or 'comment'")
	case errors.Is(err, interactions.ErrInvalidKind):
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "kind cannot be used with this operation")
	default:
		log.Printf("interaction handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
