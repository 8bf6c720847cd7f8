// Package api exposes the story agent over a JSON HTTP API.
//
// The API is the UI's observer and decision channel: it creates sessions,
// relays chat turns, serves canvas snapshots, and carries the user's
// resolutions of pending frontend tool calls back to the agent.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/storyforge/storyforge/internal/agent"
	"github.com/storyforge/storyforge/internal/log"
	"github.com/storyforge/storyforge/internal/session"
)

// ServerConfig contains configuration for creating the API server.
type ServerConfig struct {
	Logger   log.Logger     // Required
	Agent    *agent.Agent   // Required
	Sessions *session.Store // Required
	Addr     string         // Listen address, e.g. "127.0.0.1:3400"
}

// Server is the JSON API HTTP server.
type Server struct {
	addr   string
	mux    *http.ServeMux
	logger log.Logger
}

// NewServer creates a server with all routes configured.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.Agent == nil {
		return nil, errors.New("agent is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("session store is required")
	}

	sh := &sessionHandler{store: cfg.Sessions, logger: cfg.Logger}
	ch := &chatHandler{agent: cfg.Agent, store: cfg.Sessions, logger: cfg.Logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/sessions", sh.list)
	mux.HandleFunc("POST /api/sessions", sh.create)
	mux.HandleFunc("GET /api/sessions/{id}", sh.get)
	mux.HandleFunc("DELETE /api/sessions/{id}", sh.delete)
	mux.HandleFunc("GET /api/sessions/{id}/canvas", ch.canvas)
	mux.HandleFunc("POST /api/sessions/{id}/chat", ch.send)
	mux.HandleFunc("POST /api/sessions/{id}/resume", ch.resume)

	var handler http.Handler = mux
	handler = loggingMiddleware(cfg.Logger)(handler)
	handler = recoveryMiddleware(cfg.Logger)(handler)

	topMux := http.NewServeMux()
	topMux.HandleFunc("GET /health", health)
	topMux.HandleFunc("GET /ready", ready)
	topMux.Handle("/", handler)

	return &Server{addr: cfg.Addr, mux: topMux, logger: cfg.Logger}, nil
}

// Handler returns the server as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute, // model turns can be slow
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("http server stopped")
	return nil
}
