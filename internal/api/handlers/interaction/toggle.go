package interaction

import (
	"encoding/json"
	"net/http"

	"parishfeed/internal/api/handlers"
	"parishfeed/internal/api/middleware"
	"parishfeed/internal/core/interactions"
)

// ToggleHandler handles like/bookmark toggles
type ToggleHandler struct {
	service interactions.Service
}

// NewToggleHandler creates a new toggle handler
func NewToggleHandler(service interactions.Service) *ToggleHandler {
	return &ToggleHandler{service: service}
}

// HandleToggle flips a like or bookmark on a post or comment
// POST /api/interactions/toggle
//
// Request body: { "subjectType": "post", "subjectId": "...", "kind": "like" }
func (h *ToggleHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetActorID(r)
	if actorID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var req interactions.ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	if req.SubjectID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "subjectId is required")
		return
	}
	if req.Kind != interactions.KindLike && req.Kind != interactions.KindBookmark {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "kind must be 'like' or 'bookmark'")
		return
	}

	req.ActorID = actorID

	response, err := h.service.Toggle(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, response)
}
