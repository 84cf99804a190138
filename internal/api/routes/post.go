package routes

import (
	"github.com/go-chi/chi/v5"

	postHandlers "parishfeed/internal/api/handlers/post"
	"parishfeed/internal/api/middleware"
	"parishfeed/internal/core/analytics"
	"parishfeed/internal/core/posts"
)

// RegisterPostRoutes registers post CRUD and donation endpoints on the router
func RegisterPostRoutes(r chi.Router, service posts.Service, analyticsService analytics.Service, authMiddleware *middleware.AuthMiddleware) {
	createHandler := postHandlers.NewCreatePostHandler(service)
	getHandler := postHandlers.NewGetPostHandler(service, analyticsService)
	listHandler := postHandlers.NewListPostsHandler(service)
	donationHandler := postHandlers.NewDonationHandler(service)

	r.With(authMiddleware.RequireAuth).Post("/api/posts", createHandler.HandleCreatePost)
	r.Get("/api/posts", listHandler.HandleListVisible)
	r.With(authMiddleware.OptionalAuth).Get("/api/posts/{postID}", getHandler.HandleGetPost)
	r.Get("/api/authors/{authorID}/posts", listHandler.HandleListByAuthor)
	r.With(authMiddleware.RequireAuth).Post("/api/posts/{postID}/donation", donationHandler.HandleSetDonation)
}
