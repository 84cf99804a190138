package moderation

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"parishfeed/internal/api/handlers"
	"parishfeed/internal/api/middleware"
	"parishfeed/internal/core/moderation"
)

// ResolveReportHandler handles authority decisions on reports
type ResolveReportHandler struct {
	service moderation.Service
}

// NewResolveReportHandler creates a new resolve report handler
func NewResolveReportHandler(service moderation.Service) *ResolveReportHandler {
	return &ResolveReportHandler{service: service}
}

// HandleResolveReport applies a keep/warn/remove decision to a pending report
// POST /api/moderation/reports/{reportID}/resolve
//
// Request body: { "decision": "remove" }
func (h *ResolveReportHandler) HandleResolveReport(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetActorID(r)
	if actorID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	reportID := chi.URLParam(r, "reportID")
	if reportID == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "reportID is required")
		return
	}

	var req moderation.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	req.ReportID = reportID
	req.ResolverID = actorID

	report, err := h.service.Resolve(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, report)
}
