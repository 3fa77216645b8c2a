// Package web provides the HTTP server exposing the GraphQL API.
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/justestif/go-catstronauts-gateway/internal/graph"
	"github.com/justestif/go-catstronauts-gateway/internal/trackapi"
)

// DefaultAddr is the default server address.
const DefaultAddr = "127.0.0.1:4000"

// DefaultAllowedOrigin is where the web client is served during development.
const DefaultAllowedOrigin = "http://localhost:3000"

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	TrackAPI       *trackapi.Config
	Schema         graph.Options
	StaticFS       fs.FS

	// HTTPClient is shared by the per-request track API clients.
	// Defaults to trackapi.NewHTTPClient().
	HTTPClient trackapi.HTTPDoer
}

// Server is the HTTP server for the GraphQL gateway.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
}

// NewServer creates a new gateway server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.TrackAPI == nil {
		return nil, errors.New("track API config is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{DefaultAllowedOrigin}
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = trackapi.NewHTTPClient()
	}

	schema, err := graph.NewSchema(cfg.Schema)
	if err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}

	// Create handlers
	handlers := NewHandlers(cfg.TrackAPI, cfg.HTTPClient, cfg.StaticFS)

	// Create router
	router := chi.NewRouter()

	s := &Server{
		router:   router,
		handlers: handlers,
	}

	// Configure middleware
	s.setupMiddleware(cfg.AllowedOrigins)

	// Configure routes
	s.setupRoutes(&relay.Handler{Schema: schema}, cfg.StaticFS)

	// Create HTTP server
	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware(allowedOrigins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log.Default(), NoColor: true}))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Apollo-Require-Preflight"},
		ExposedHeaders: []string{trackapi.OperationIDHeader},
		MaxAge:         300,
	}))
}

// setupRoutes configures routes for the application.
func (s *Server) setupRoutes(api http.Handler, staticFS fs.FS) {
	if staticFS != nil {
		fileServer := http.FileServer(http.FS(staticFS))
		s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
		s.router.Get("/", s.handlers.Playground)
	}

	s.router.Get("/healthz", s.handlers.Health)

	// GraphQL
	s.router.With(s.handlers.DataSources).Post("/graphql", api.ServeHTTP)
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting server at http://%s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt signals.
func (s *Server) Run() error {
	// Channel to receive shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

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
	case <-stop:
		log.Println("Shutting down server...")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Println("Server stopped")
	return nil
}
