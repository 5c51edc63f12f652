package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"pollbase/internal/config"
	"pollbase/internal/container"
	"pollbase/internal/handler"
	"pollbase/internal/middleware"
	"pollbase/internal/ratelimit"
	"pollbase/internal/repository"
	"pollbase/internal/service"
	"pollbase/pkg/database"
	"pollbase/pkg/logger"
)

// Resources holds all resources that need cleanup
type Resources struct {
	db      *database.PostgresDB
	deps    *container.Container
	limiter *ratelimit.Limiter
	server  *http.Server
	log     *logger.Logger
	mu      sync.Mutex
	closed  bool
}

// Cleanup gracefully closes all resources
func (r *Resources) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true

	var errors []error

	r.log.Info("Starting graceful shutdown...")

	// Shutdown HTTP server first to stop accepting new requests
	if r.server != nil {
		r.log.Info("Shutting down HTTP server...")
		if err := r.server.Shutdown(ctx); err != nil {
			r.log.WithError(err).Error("Failed to shutdown HTTP server")
			errors = append(errors, fmt.Errorf("HTTP server shutdown: %w", err))
		} else {
			r.log.Info("HTTP server shutdown complete")
		}
	}

	// Stop the rate limiter sweeper
	if r.limiter != nil {
		r.limiter.Stop()
		r.log.Info("Rate limiter sweeper stopped")
	}

	// Close Redis connection with health check
	if r.deps != nil && r.deps.HasRedis() {
		r.log.Info("Closing Redis connection...")

		healthCtx, healthCancel := context.WithTimeout(ctx, 2*time.Second)
		if err := r.deps.GetRedisClient().Health(healthCtx); err != nil {
			r.log.WithError(err).Warn("Redis health check failed before closing")
		}
		healthCancel()

		if err := r.deps.GetRedisClient().Close(); err != nil {
			r.log.WithError(err).Error("Failed to close Redis connection")
			errors = append(errors, fmt.Errorf("Redis close: %w", err))
		} else {
			r.log.Info("Redis connection closed successfully")
		}
	}

	// Close database connection pool
	if r.db != nil {
		r.log.Info("Closing database connection pool...")
		r.db.Close()
		r.log.Info("Database connection pool closed successfully")
	}

	if len(errors) > 0 {
		r.log.WithField("error_count", len(errors)).Error("Cleanup completed with errors")
		return fmt.Errorf("cleanup completed with %d errors: %v", len(errors), errors)
	}

	r.log.Info("Graceful shutdown completed successfully")
	return nil
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log.WithFields(map[string]interface{}{
		"port":        cfg.Port,
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
	}).Info("Starting pollbase server")

	// Misconfigured platform settings produce confusing auth failures at
	// request time, so shapes are checked up front. Fatal in production,
	// warnings elsewhere.
	if problems := cfg.ValidatePlatform(); len(problems) > 0 {
		for _, problem := range problems {
			if cfg.IsProduction() {
				log.Error(problem)
			} else {
				log.Warn(problem)
			}
		}
		if cfg.IsProduction() {
			log.Fatal("Platform configuration is invalid")
		}
	}

	// Create dependency injection container
	deps, err := container.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create container")
	}

	// Initialize database connection
	ctx := context.Background()
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	// Pick the rate-limit store: Redis when available so counters are
	// shared across instances, in-process memory otherwise.
	var store ratelimit.Store
	if deps.HasRedis() {
		store = ratelimit.NewRedisStore(deps.GetRedisClient())
		log.Info("Rate limiting backed by Redis")
	} else {
		store = ratelimit.NewMemoryStore()
		log.Info("Rate limiting backed by in-process memory")
	}
	limiter := ratelimit.New(store, log)
	limiter.StartSweeper()

	// Initialize repositories and services
	pollRepo := repository.NewPollRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	pollService := service.NewPollService(pollRepo, voteRepo, deps.GetRoleResolver(), log)
	voteService := service.NewVoteService(pollRepo, voteRepo, cfg.AllowAnonymousVotes, log)

	// Setup router
	router := setupRouter(deps, limiter, pollService, voteService, db)

	// Create HTTP server
	server := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        router,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   60 * time.Second,
		IdleTimeout:    120 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
	}

	// Create resources manager for cleanup
	resources := &Resources{
		db:      db,
		deps:    deps,
		limiter: limiter,
		server:  server,
		log:     log,
	}

	// Setup graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	// Setup cleanup function that will be called regardless of how the program exits
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := resources.Cleanup(cleanupCtx); err != nil {
			log.WithError(err).Error("Cleanup completed with errors")
		}
	}()

	// Start server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Info("Server starting on port " + cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error occurred")
			serverErrChan <- err
		}
	}()

	// Wait for interrupt signal or server error
	select {
	case sig := <-quit:
		log.WithField("signal", sig.String()).Info("Received shutdown signal")
	case err := <-serverErrChan:
		log.WithError(err).Error("Server failed, initiating shutdown")
	}

	log.Info("Initiating graceful shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()

	if err := resources.Cleanup(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown completed with errors")
		os.Exit(1)
	}

	log.Info("Application shutdown complete")
}

// setupRouter configures and returns the HTTP router
func setupRouter(deps *container.Container, limiter *ratelimit.Limiter, pollService *service.PollService, voteService *service.VoteService, db *database.PostgresDB) *chi.Mux {
	cfg := deps.GetConfig()
	log := deps.GetLogger()
	authService := deps.GetAuthService()
	roleResolver := deps.GetRoleResolver()

	// Create router
	r := chi.NewRouter()

	// Setup CORS middleware
	corsConfig := &middleware.CORSConfig{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		ExposedHeaders:   []string{"Content-Length", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           86400,
	}

	// Setup middlewares
	r.Use(middleware.CORS(corsConfig, log))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Compress(5))
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(middleware.SecurityHeaders)

	// Create handlers
	healthHandler := handler.NewHealthHandler(db, deps.GetRedisClient(), log)
	authHandler := handler.NewAuthHandler(authService, log)
	pollHandler := handler.NewPollHandler(pollService, log)
	voteHandler := handler.NewVoteHandler(voteService, log)
	adminHandler := handler.NewAdminHandler(pollService, log)

	// Health check (no auth required)
	r.Get("/health", healthHandler.Check)

	r.Route("/api", func(r chi.Router) {
		// Auth endpoints share the strictest rate-limit class
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(limiter, ratelimit.ClassAuth, log))

				r.Post("/login", authHandler.Login)
				r.Post("/register", authHandler.Register)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(authService, log))

				r.Get("/me", authHandler.Profile)
			})
		})

		r.Route("/polls", func(r chi.Router) {
			r.Use(middleware.RateLimit(limiter, ratelimit.ClassAPI, log))

			// Public endpoints (no authentication required)
			r.Get("/", pollHandler.List)
			r.Get("/{pollId}", pollHandler.Get)
			r.Get("/{pollId}/results", pollHandler.Results)

			// Voting identifies the caller when a token is present but
			// does not require one; the service decides whether
			// anonymous votes are accepted.
			r.Group(func(r chi.Router) {
				r.Use(middleware.OptionalAuth(authService, log))

				r.Post("/{pollId}/vote", voteHandler.Cast)
			})

			// Protected endpoints (require authentication)
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(authService, log))

				r.Group(func(r chi.Router) {
					r.Use(middleware.RateLimit(limiter, ratelimit.ClassPollCreation, log))

					r.Post("/", pollHandler.Create)
				})

				r.Put("/{pollId}", pollHandler.Update)
				r.Delete("/{pollId}", pollHandler.Delete)
			})
		})

		// Moderation endpoints
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RateLimit(limiter, ratelimit.ClassAPI, log))
			r.Use(middleware.Auth(authService, log))
			r.Use(middleware.RequireAdmin(roleResolver, log))

			r.Get("/polls", adminHandler.ListPolls)
			r.Delete("/polls/{pollId}", adminHandler.DeletePoll)
		})
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":{"type":"not_found","message":"Endpoint not found"}}`))
	})

	log.Info("Router configured successfully")
	return r
}
