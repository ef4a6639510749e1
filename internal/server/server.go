package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/eventlane/apiserver/config"
	"github.com/eventlane/apiserver/internal/db"
	"github.com/eventlane/apiserver/internal/handlers"
	"github.com/eventlane/apiserver/internal/services"
	"github.com/eventlane/apiserver/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Server wraps the HTTP server, router, and database pool.
type Server struct {
	httpServer      *http.Server
	router          *chi.Mux
	db              *sql.DB
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// New opens the database pool and assembles the router.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	eventRepo := store.NewEventRepository(dbConn)

	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo)

	router := NewRouter(userService, eventService, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer:      httpServer,
		router:          router,
		db:              dbConn,
		logger:          logger,
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

// NewRouter assembles the chi router with middleware and all routes.
// Split out from New so handler tests can build a router without a
// database pool.
func NewRouter(userService *services.UserService, eventService *services.EventService, logger *slog.Logger) *chi.Mux {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		handlers.RequestLogger(logger),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"*"},
		}),
	)

	router.NotFound(handlers.RouteNotFound)
	router.MethodNotAllowed(handlers.RouteNotFound)

	router.Get("/healthz", handlers.Healthz)
	handlers.AuthRouter(router, userService, logger)
	router.Route("/events", func(r chi.Router) {
		handlers.EventRouter(r, eventService, logger)
	})

	return router
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server until ctx is cancelled, then drains in-flight
// requests bounded by the configured shutdown timeout and releases the
// database pool.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.closeDB()
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutdown signal received, draining requests")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.closeDB()
	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Shutdown force-closes the server and pool. Used by tests; Start performs
// the graceful variant.
func (s *Server) Shutdown() error {
	s.closeDB()
	return s.httpServer.Close()
}

func (s *Server) closeDB() {
	if s.db == nil {
		return
	}
	if err := s.db.Close(); err != nil {
		s.logger.Error("error closing database", "error", err)
		return
	}
	s.logger.Info("database connection closed")
}
