package routes

import (
	"github.com/go-chi/chi/v5"

	commentHandlers "parishfeed/internal/api/handlers/comment"
	"parishfeed/internal/api/middleware"
	"parishfeed/internal/core/comments"
)

// RegisterCommentRoutes registers comment thread endpoints on the router
func RegisterCommentRoutes(r chi.Router, service comments.Service, authMiddleware *middleware.AuthMiddleware) {
	createHandler := commentHandlers.NewCreateCommentHandler(service)
	threadHandler := commentHandlers.NewGetThreadHandler(service)

	r.With(authMiddleware.RequireAuth).Post("/api/posts/{postID}/comments", createHandler.HandleCreateComment)
	r.Get("/api/posts/{postID}/comments", threadHandler.HandleGetThread)
}
