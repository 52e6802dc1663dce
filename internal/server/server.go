package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oaktires/accounts-api/config"
	"github.com/oaktires/accounts-api/internal/auth"
	"github.com/oaktires/accounts-api/internal/db"
	"github.com/oaktires/accounts-api/internal/handlers"
	"github.com/oaktires/accounts-api/internal/notify"
	"github.com/oaktires/accounts-api/internal/services"
	"github.com/oaktires/accounts-api/internal/store"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	notifier   *notify.Notifier
}

// New constructs a Server with basic middleware and defaults. It fails
// when required configuration, such as the JWT signing key, is absent.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	issuer, err := auth.NewTokenIssuer(cfg.JWT)
	if err != nil {
		return nil, err
	}

	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	sink, err := notify.NewSink(ctx, cfg.Notify)
	if err != nil {
		_ = dbConn.Close()
		return nil, err
	}
	notifier := notify.NewNotifier(sink)

	userRepo := store.NewUserRepository(dbConn)
	userService := services.NewUserService(userRepo)
	authService := services.NewAuthService(userRepo, auth.NewBcryptHasher(), issuer, notifier)

	authMiddleware := handlers.RequireAuth(issuer)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, authService, userService, issuer)
	})
	router.Route("/users", func(r chi.Router) {
		handlers.UserRouter(r, userService, authMiddleware)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		notifier:   notifier,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.notifier != nil {
		_ = s.notifier.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Shutdown(ctx)
}
