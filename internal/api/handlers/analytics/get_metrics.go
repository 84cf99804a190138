package analytics

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"parishfeed/internal/api/handlers"
	"parishfeed/internal/api/middleware"
	"parishfeed/internal/core/analytics"
	"parishfeed/internal/core/identity"
	"parishfeed/internal/core/posts"
)

// GetMetricsHandler serves the per-post engagement projection
type GetMetricsHandler struct {
	service    analytics.Service
	posts      posts.Service
	authorizer identity.Authorizer
}

// NewGetMetricsHandler creates a new metrics handler. The posts service and
// authorizer gate access to the authoring manager and super-admins.
func NewGetMetricsHandler(service analytics.Service, postService posts.Service, authorizer identity.Authorizer) *GetMetricsHandler {
	return &GetMetricsHandler{
		service:    service,
		posts:      postService,
		authorizer: authorizer,
	}
}

// HandleGetMetrics returns views/likes/comments/shares/engagementRate
// GET /api/posts/{postID}/metrics
func (h *GetMetricsHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetActorID(r)
	if actorID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	postID := chi.URLParam(r, "postID")
	if postID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "postID is required")
		return
	}

	post, err := h.posts.GetPost(r.Context(), postID)
	if err != nil {
		if errors.Is(err, posts.ErrPostNotFound) {
			handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
			return
		}
		log.Printf("analytics handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
		return
	}

	if post.AuthorID != actorID {
		isAdmin, err := h.authorizer.IsSuperAdmin(r.Context(), actorID)
		if err != nil {
			log.Printf("analytics handler error: %v", err)
			handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
			return
		}
		if !isAdmin {
			handlers.WriteError(w, http.StatusForbidden, "NotAuthorized", "Only the post author may view metrics")
			return
		}
	}

	metrics, err := h.service.MetricsFor(r.Context(), postID)
	if err != nil {
		if errors.Is(err, analytics.ErrPostNotFound) {
			handlers.WriteError(w, http.StatusNotFound, "PostNotFound", "Post not found")
			return
		}
		log.Printf("analytics handler error: %v", err)
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
		return
	}

	handlers.WriteJSON(w, http.StatusOK, metrics)
}
