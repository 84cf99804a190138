package routes

import (
	"github.com/go-chi/chi/v5"

	moderationHandlers "parishfeed/internal/api/handlers/moderation"
	"parishfeed/internal/api/middleware"
	"parishfeed/internal/core/moderation"
)

// RegisterModerationRoutes registers report intake, the moderation queue, and
// resolution endpoints on the router
func RegisterModerationRoutes(r chi.Router, service moderation.Service, authMiddleware *middleware.AuthMiddleware) {
	fileHandler := moderationHandlers.NewFileReportHandler(service)
	queueHandler := moderationHandlers.NewQueueHandler(service)
	resolveHandler := moderationHandlers.NewResolveReportHandler(service)

	r.With(authMiddleware.RequireAuth).Post("/api/posts/{postID}/reports", fileHandler.HandleFileReport)
	r.With(authMiddleware.RequireAuth).Get("/api/moderation/queue", queueHandler.HandleQueue)
	r.With(authMiddleware.RequireAuth).Post("/api/moderation/reports/{reportID}/resolve", resolveHandler.HandleResolveReport)
}
