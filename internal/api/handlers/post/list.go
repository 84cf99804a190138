package post

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"parishfeed/internal/api/handlers"
	"parishfeed/internal/core/posts"
)

// ListPostsHandler handles feed and per-author listings
type ListPostsHandler struct {
	service posts.Service
}

// NewListPostsHandler creates a new list posts handler
func NewListPostsHandler(service posts.Service) *ListPostsHandler {
	return &ListPostsHandler{service: service}
}

// HandleListVisible lists published and warned posts, newest first
// GET /api/posts?limit=50&offset=0
func (h *ListPostsHandler) HandleListVisible(w http.ResponseWriter, r *http.Request) {
	limit, offset := pageParams(r)

	list, err := h.service.ListVisible(r.Context(), limit, offset)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"posts": list})
}

// HandleListByAuthor lists a manager's posts, newest first
// GET /api/authors/{authorID}/posts
func (h *ListPostsHandler) HandleListByAuthor(w http.ResponseWriter, r *http.Request) {
	authorID := chi.URLParam(r, "authorID")
	if authorID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "authorID is required")
		return
	}

	limit, offset := pageParams(r)

	list, err := h.service.ListByAuthor(r.Context(), authorID, limit, offset)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"posts": list})
}

func pageParams(r *http.Request) (int, int) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	return limit, offset
}
