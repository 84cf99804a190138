package routes

import (
	"github.com/go-chi/chi/v5"

	analyticsHandlers "parishfeed/internal/api/handlers/analytics"
	"parishfeed/internal/api/middleware"
	"parishfeed/internal/core/analytics"
	"parishfeed/internal/core/identity"
	"parishfeed/internal/core/posts"
)

// RegisterAnalyticsRoutes registers the per-post metrics projection endpoint
func RegisterAnalyticsRoutes(r chi.Router, service analytics.Service, postService posts.Service, authorizer identity.Authorizer, authMiddleware *middleware.AuthMiddleware) {
	metricsHandler := analyticsHandlers.NewGetMetricsHandler(service, postService, authorizer)

	r.With(authMiddleware.RequireAuth).Get("/api/posts/{postID}/metrics", metricsHandler.HandleGetMetrics)
}
