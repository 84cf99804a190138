package routes

import (
	"github.com/go-chi/chi/v5"

	interactionHandlers "parishfeed/internal/api/handlers/interaction"
	"parishfeed/internal/api/middleware"
	"parishfeed/internal/core/interactions"
)

// RegisterInteractionRoutes registers like/bookmark/share endpoints on the router
func RegisterInteractionRoutes(r chi.Router, service interactions.Service, authMiddleware *middleware.AuthMiddleware) {
	toggleHandler := interactionHandlers.NewToggleHandler(service)
	shareHandler := interactionHandlers.NewShareHandler(service)
	countsHandler := interactionHandlers.NewCountsHandler(service)

	r.With(authMiddleware.RequireAuth).Post("/api/interactions/toggle", toggleHandler.HandleToggle)
	r.With(authMiddleware.RequireAuth).Post("/api/interactions/share", shareHandler.HandleShare)
	r.Get("/api/{subjectType}/{subjectID}/counts", countsHandler.HandleCounts)
}
