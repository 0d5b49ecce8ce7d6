package web

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/justestif/blocify/internal/auth"
	"github.com/justestif/blocify/internal/dashboard"
	"github.com/justestif/blocify/internal/reporting"
)

const (
	// DefaultAddr is the default server address.
	DefaultAddr = "127.0.0.1:8080"

	// DefaultRedirectURI must match the Spotify app configuration.
	DefaultRedirectURI = "http://127.0.0.1:8080/"

	sweepInterval = 10 * time.Minute
)

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr        string
	ClientID    string
	RedirectURI string
	TemplatesFS fs.FS
	StaticFS    fs.FS

	// Store holds each browser's token slot.
	Store auth.Store

	// NewFetcher builds the Spotify client for a captured token.
	NewFetcher dashboard.FetcherFactory

	// ViewTTL bounds how long an idle page view is kept. Zero means dashboard.DefaultTTL.
	ViewTTL time.Duration

	// RateLimit and RateBurst throttle POST /session/mount and POST /top per
	// client IP. Zero disables it.
	RateLimit rate.Limit
	RateBurst int

	// AllowedOrigins enables CORS for the listed origins when non-empty.
	AllowedOrigins []string
}

// Server is the HTTP server for the web application.
type Server struct {
	router   chi.Router
	server   *http.Server
	views    *dashboard.Registry
	handlers *Handlers
	limiters []*ipRateLimiter
	log      *log.Entry
}

// NewServer creates a new web server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Store == nil {
		return nil, fmt.Errorf("server config: token store is required")
	}
	if cfg.NewFetcher == nil {
		return nil, fmt.Errorf("server config: fetcher factory is required")
	}
	if cfg.RedirectURI == "" {
		cfg.RedirectURI = DefaultRedirectURI
	}

	// Create template manager
	templates, err := NewTemplates(cfg.TemplatesFS)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	ttl := cfg.ViewTTL
	if ttl <= 0 {
		ttl = dashboard.DefaultTTL
	}
	views := dashboard.NewRegistry(ttl, cfg.NewFetcher)

	// Create handlers
	handlers := NewHandlers(
		auth.LoginURL(cfg.ClientID, cfg.RedirectURI),
		auth.NewManager(cfg.Store),
		views,
		templates,
	)

	// Create router
	router := chi.NewRouter()

	s := &Server{
		router:   router,
		views:    views,
		handlers: handlers,
		log:      log.WithField("component", "web"),
	}

	// Configure middleware
	s.setupMiddleware(cfg.AllowedOrigins)

	// Configure routes
	s.setupRoutes(cfg.StaticFS, cfg.RateLimit, cfg.RateBurst)

	addr := cfg.Addr
	if addr == "" {
		addr = DefaultAddr
	}

	// Create HTTP server
	s.server = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware(allowedOrigins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  log.StandardLogger(),
		NoColor: true,
	}))
	s.router.Use(middleware.Recoverer)
	s.router.Use(reporting.Middleware)
	s.router.Use(middleware.Compress(5))

	if len(allowedOrigins) > 0 {
		s.router.Use(cors.New(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost},
			AllowedHeaders:   []string{"Content-Type", "HX-Request", "HX-Current-URL", "HX-Target", "HX-Trigger"},
			ExposedHeaders:   []string{"HX-Replace-Url", "HX-Refresh"},
			AllowCredentials: true,
		}).Handler)
	}
}

// setupRoutes configures routes for the application.
func (s *Server) setupRoutes(staticFS fs.FS, limit rate.Limit, burst int) {
	// Mount and top each get their own bucket per IP, so a page load does
	// not use up the budget for range clicks.
	mountLimiter := newIPRateLimiter(limit, burst)
	topLimiter := newIPRateLimiter(limit, burst)
	s.limiters = []*ipRateLimiter{mountLimiter, topLimiter}

	// Static files
	if staticFS != nil {
		fileServer := http.FileServer(http.FS(staticFS))
		s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	// Pages
	s.router.Get("/", s.handlers.Home)
	s.router.Get("/healthz", s.handlers.Health)

	// Page view lifecycle
	s.router.With(mountLimiter.Middleware).Post("/session/mount", s.handlers.Mount)
	s.router.Post("/session/logout", s.handlers.Logout)
	s.router.With(topLimiter.Middleware).Post("/top", s.handlers.Top)
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.log.Infof("Starting server at http://%s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals
// or when ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go s.views.RunSweeper(ctx, sweepInterval)
	for _, limiter := range s.limiters {
		go limiter.runSweeper(ctx, sweepInterval)
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt or error
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.log.Info("Shutting down server...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.log.Info("Server stopped")
	return nil
}
