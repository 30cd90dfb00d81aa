// Package server exposes the dashboard over HTTP: the page itself, the six rendered
// charts, and JSON endpoints carrying the same chart descriptions.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rewired-gh/surveyboard/internal/config"
	"github.com/rewired-gh/surveyboard/internal/dashboard"
	"github.com/rewired-gh/surveyboard/internal/logger"
	"github.com/rewired-gh/surveyboard/internal/render"
)

// Server serves the dashboard
type Server struct {
	cfg      config.ServerConfig
	service  *dashboard.Service
	renderer *render.Renderer
	page     *template.Template
	started  time.Time
}

// New creates a Server
func New(cfg config.ServerConfig, service *dashboard.Service, renderer *render.Renderer) (*Server, error) {
	page, err := parsePage()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &Server{
		cfg:      cfg,
		service:  service,
		renderer: renderer,
		page:     page,
		started:  time.Now(),
	}, nil
}

// Handler configures all routes and middleware
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(requestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger)

	router.Get("/", s.handlePage)
	router.Get("/health", s.handleHealth)
	router.Get("/charts/{chart}", s.handleChart)

	router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", requestIDHeader},
			ExposedHeaders: []string{requestIDHeader},
			MaxAge:         300,
		}))
		r.Get("/options", s.handleOptions)
		r.Get("/dashboard", s.handleDashboard)
	})

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening on %s", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}
