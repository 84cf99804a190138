package post

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"parishfeed/internal/api/handlers"
	"parishfeed/internal/api/middleware"
	"parishfeed/internal/core/posts"
)

// DonationHandler handles the donation linkage on a post
type DonationHandler struct {
	service posts.Service
}

// NewDonationHandler creates a new donation handler
func NewDonationHandler(service posts.Service) *DonationHandler {
	return &DonationHandler{service: service}
}

type donationRequest struct {
	Enabled    bool   `json:"enabled"`
	GoalAmount *int64 `json:"goalAmount"`
}

// HandleSetDonation enables or disables donations on an owned post
// POST /api/posts/{postID}/donation
//
// Request body: { "enabled": true, "goalAmount": 50000 }
func (h *DonationHandler) HandleSetDonation(w http.ResponseWriter, r *http.Request) {
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

	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	var post *posts.Post
	var err error
	if req.Enabled {
		post, err = h.service.EnableDonation(r.Context(), postID, actorID, req.GoalAmount)
	} else {
		post, err = h.service.DisableDonation(r.Context(), postID, actorID)
	}
	if err != nil {
		handleServiceError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, post)
}
