package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"parishfeed/internal/api/middleware"
	"parishfeed/internal/api/routes"
	"parishfeed/internal/config"
	"parishfeed/internal/core/analytics"
	"parishfeed/internal/core/comments"
	"parishfeed/internal/core/identity"
	"parishfeed/internal/core/interactions"
	"parishfeed/internal/core/moderation"
	"parishfeed/internal/core/posts"
	postgresRepo "parishfeed/internal/db/postgres"
	"parishfeed/internal/events"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := config.Load(logger)

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	logger.Info("connected to database")

	// Run migrations
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("Failed to set goose dialect:", err)
	}
	if err := goose.Up(db, "internal/db/migrations"); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	logger.Info("migrations completed")

	// Domain event fan-out: NATS when configured, structured log otherwise
	var publisher events.Publisher
	if cfg.NATSURL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATSURL, logger)
		if err != nil {
			log.Fatal("Failed to connect to NATS:", err)
		}
		defer natsPublisher.Close()
		publisher = natsPublisher
		logger.Info("publishing events to NATS", "url", cfg.NATSURL)
	} else {
		publisher = events.NewLogPublisher(logger)
	}

	authorizer := identity.NewEnvAuthorizer(cfg.SuperAdminIDs, cfg.PayoutReadyIDs)

	// Repositories
	postRepo := postgresRepo.NewPostRepository(db)
	interactionRepo := postgresRepo.NewInteractionRepository(db)
	commentRepo := postgresRepo.NewCommentRepository(db)
	reportRepo := postgresRepo.NewReportRepository(db)
	viewRepo := postgresRepo.NewViewRepository(db)
	subjectResolver := postgresRepo.NewSubjectResolver(db)

	// Services
	postService := posts.NewService(postRepo, authorizer, publisher, logger)
	interactionService := interactions.NewService(interactionRepo, subjectResolver, publisher, logger)
	commentService := comments.NewService(commentRepo, postRepo, interactionRepo, publisher, logger, cfg.MaxCommentDepth)
	moderationService := moderation.NewService(reportRepo, postRepo, authorizer, publisher, logger)
	analyticsService := analytics.NewService(viewRepo, postRepo, interactionRepo, commentRepo, logger)

	// Background sweep of aged-out view dedup state
	sweepCtx, cancelSweep := context.WithCancel(context.Background())
	defer cancelSweep()
	go analytics.NewSweeper(analyticsService, cfg.SweepInterval, logger).Run(sweepCtx)

	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.Metrics)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	r.Use(rateLimiter.Middleware)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	routes.RegisterPostRoutes(r, postService, analyticsService, authMiddleware)
	routes.RegisterInteractionRoutes(r, interactionService, authMiddleware)
	routes.RegisterCommentRoutes(r, commentService, authMiddleware)
	routes.RegisterModerationRoutes(r, moderationService, authMiddleware)
	routes.RegisterAnalyticsRoutes(r, analyticsService, postService, authorizer, authMiddleware)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	fmt.Printf("parishfeed starting on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
