package post

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"parishfeed/internal/api/handlers"
	"parishfeed/internal/api/middleware"
	"parishfeed/internal/core/analytics"
	"parishfeed/internal/core/posts"
)

// GetPostHandler handles single-post reads and the view events they imply
type GetPostHandler struct {
	service   posts.Service
	analytics analytics.Service
}

// NewGetPostHandler creates a new get post handler. analyticsService may be
// nil to skip view recording.
func NewGetPostHandler(service posts.Service, analyticsService analytics.Service) *GetPostHandler {
	return &GetPostHandler{service: service, analytics: analyticsService}
}

// HandleGetPost retrieves a post and records a deduplicated view
// GET /api/posts/{postID}
func (h *GetPostHandler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postID")
	if postID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "postID is required")
		return
	}

	post, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// Removed posts stay queryable by their author; everyone else gets 404
	if !post.Visible() && middleware.GetActorID(r) != post.AuthorID {
		handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
		return
	}

	if h.analytics != nil && post.Visible() {
		// A failed view record never fails the read
		_ = h.analytics.RecordView(r.Context(), postID, viewerFingerprint(r), time.Now().UTC())
	}

	handlers.WriteJSON(w, http.StatusOK, post)
}

// viewerFingerprint derives the dedup key for a view: the authenticated actor
// ID when present, otherwise an IP-derived token.
func viewerFingerprint(r *http.Request) string {
	if actorID := middleware.GetActorID(r); actorID != "" {
		return actorID
	}
	return "ip:" + middleware.ClientIP(r)
}
