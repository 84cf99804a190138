package interaction

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"parishfeed/internal/api/handlers"
	"parishfeed/internal/core/interactions"
)

// CountsHandler serves the aggregate interaction counters for a subject
type CountsHandler struct {
	service interactions.Service
}

// NewCountsHandler creates a new counts handler
func NewCountsHandler(service interactions.Service) *CountsHandler {
	return &CountsHandler{service: service}
}

// HandleCounts returns likes/bookmarks/shares for one subject
// GET /api/{subjectType}/{subjectID}/counts
func (h *CountsHandler) HandleCounts(w http.ResponseWriter, r *http.Request) {
	subjectType := interactions.SubjectType(chi.URLParam(r, "subjectType"))
	subjectID := chi.URLParam(r, "subjectID")

	if !interactions.ValidSubjectType(subjectType) {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "subject type must be 'post' or 'comment'")
		return
	}
	if subjectID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "subjectID is required")
		return
	}

	counts, err := h.service.CountsFor(r.Context(), subjectType, subjectID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, counts)
}
