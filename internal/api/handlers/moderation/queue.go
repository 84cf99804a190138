package moderation

import (
	"net/http"
	"strconv"

	"parishfeed/internal/api/handlers"
	"parishfeed/internal/api/middleware"
	"parishfeed/internal/core/moderation"
)

// QueueHandler serves the moderation queue for authority actors
type QueueHandler struct {
	service moderation.Service
}

// NewQueueHandler creates a new queue handler
func NewQueueHandler(service moderation.Service) *QueueHandler {
	return &QueueHandler{service: service}
}

// HandleQueue lists pending reports, oldest first
// GET /api/moderation/queue?limit=50&offset=0
func (h *QueueHandler) HandleQueue(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetActorID(r)
	if actorID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	reports, err := h.service.Queue(r.Context(), actorID, limit, offset)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]interface{}{"reports": reports})
}
