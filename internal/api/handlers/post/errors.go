package post

import (
	"errors"
	"log"
	"net/http"

	"parishfeed/internal/api/handlers"
	"parishfeed/internal/core/posts"
)

// handleServiceError converts post service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var valErr *posts.ValidationError
	if errors.As(err, &valErr) {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", valErr.Error())
		return
	}

	switch {
	case errors.Is(err, posts.ErrPostNotFound):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
	case errors.Is(err, posts.ErrPostRemoved):
		handlers.WriteError(w, http.StatusConflict, "PostRemoved", "Post has been removed")
	case errors.Is(err, posts.ErrNotPostAuthor):
		handlers.WriteError(w, http.StatusForbidden, "NotAuthorized", "Only the post author may do this")
	case errors.Is(err, posts.ErrPayoutUnset):
		handlers.WriteError(w, http.StatusBadRequest, "PayoutUnset", "A payout destination must be configured before enabling donations")
	case errors.Is(err, posts.ErrVersionConflict):
		handlers.WriteError(w, http.StatusConflict, "Conflict", "Post was modified concurrently, try again")
	default:
		log.Printf("post handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
