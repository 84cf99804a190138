package comment

import (
	"errors"
	"log"
	"net/http"

	"parishfeed/internal/api/handlers"
	"parishfeed/internal/core/comments"
)

// handleServiceError converts comment service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	var valErr *comments.ValidationError
	if errors.As(err, &valErr) {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", valErr.Error())
		return
	}

	switch {
	case errors.Is(err, comments.ErrPostNotFound):
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
	case errors.Is(err, comments.ErrCommentNotFound):
		handlers.WriteError(w, http.StatusNotFound, "CommentNotFound", "Comment not found")
	case errors.Is(err, comments.ErrParentNotFound):
		handlers.WriteError(w, http.StatusNotFound, "ParentNotFound", "Parent comment not found")
	case errors.Is(err, comments.ErrParentMismatch):
		handlers.WriteError(w, http.StatusConflict, "ParentMismatch", "Parent comment belongs to a different post")
	case errors.Is(err, comments.ErrPostRemoved):
		handlers.WriteError(w, http.StatusConflict, "PostRemoved", "Post has been removed and cannot receive comments")
	default:
		log.Printf("comment handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
