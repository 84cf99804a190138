package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"parishfeed/internal/api/handlers"
	"parishfeed/internal/core/comments"
)

// GetThreadHandler serves a post's threaded comment listing
type GetThreadHandler struct {
	service comments.Service
}

// NewGetThreadHandler creates a new get thread handler
func NewGetThreadHandler(service comments.Service) *GetThreadHandler {
	return &GetThreadHandler{service: service}
}

// HandleGetThread returns the full reply tree for a post
// GET /api/posts/{postID}/comments
func (h *GetThreadHandler) HandleGetThread(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	if postID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "postID is required")
		return
	}

	thread, err := h.service.GetThread(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"comments": thread})
}
