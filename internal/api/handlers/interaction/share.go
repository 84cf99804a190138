package interaction

import (
	"encoding/json"
	"net/http"

	"parishfeed/internal/api/handlers"
	"parishfeed/internal/api/middleware"
	"parishfeed/internal/core/interactions"
)

// ShareHandler handles share events
type ShareHandler struct {
	service interactions.Service
}

// NewShareHandler creates a new share handler
func NewShareHandler(service interactions.Service) *ShareHandler {
	return &ShareHandler{service: service}
}

type shareRequest struct {
	SubjectType interactions.SubjectType `json:"subjectType"`
	SubjectID   string                   `json:"subjectId"`
}

// HandleShare appends a share event; every share is a distinct event
// POST /api/interactions/share
func (h *ShareHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetActorID(r)
	if actorID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var req shareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if req.SubjectID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "subjectId is required")
		return
	}

	counts, err := h.service.RecordShare(r.Context(), req.SubjectType, req.SubjectID, actorID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"counts": counts})
}
