package moderation

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"parishfeed/internal/api/handlers"
	"parishfeed/internal/api/middleware"
	"parishfeed/internal/core/moderation"
)

// FileReportHandler handles report intake
type FileReportHandler struct {
	service moderation.Service
}

// NewFileReportHandler creates a new file report handler
func NewFileReportHandler(service moderation.Service) *FileReportHandler {
	return &FileReportHandler{service: service}
}

// HandleFileReport files a report against a post
// POST /api/posts/{postID}/reports
//
// Request body: { "reason": "spam", "description": "..." }
func (h *FileReportHandler) HandleFileReport(w http.ResponseWriter, r *http.Request) {
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

	var req moderation.FileReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	req.PostID = postID
	req.ReporterID = actorID

	report, err := h.service.FileReport(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, report)
}
