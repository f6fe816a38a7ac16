// Package server exposes the analyzer over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/analyzer"
	"github.com/spigell/resume-matcher/internal/document"
)

const (
	defaultAddr           = ":5000"
	defaultMaxUploadBytes = 16 << 20
	shutdownTimeout       = 30 * time.Second

	healthMessage = "Backend is running!"
)

// Analyzer is the part of the analysis pipeline the handlers need.
type Analyzer interface {
	Analyze(ctx context.Context, resumeText, jdText string) (*analyzer.Result, error)
}

// Config holds listener and request limits.
type Config struct {
	Addr           string
	MaxUploadBytes int64
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// Server represents the HTTP server.
type Server struct {
	httpServer *http.Server
	analyzer   Analyzer
	documents  document.Extractor
	logger     *zap.Logger

	maxUploadBytes int64
	allowedOrigins map[string]struct{}
	allowAnyOrigin bool
}

// New wires the routes and middleware. A nil extractor falls back to document.Default.
func New(cfg Config, an Analyzer, documents document.Extractor, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if documents == nil {
		documents = document.Default
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}

	s := &Server{
		analyzer:       an,
		documents:      documents,
		logger:         logger,
		maxUploadBytes: cfg.MaxUploadBytes,
		allowedOrigins: make(map[string]struct{}, len(cfg.AllowedOrigins)),
	}
	for _, origin := range cfg.AllowedOrigins {
		if origin == "*" {
			s.allowAnyOrigin = true
		}
		s.allowedOrigins[origin] = struct{}{}
	}
	if len(cfg.AllowedOrigins) == 0 {
		s.allowAnyOrigin = true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleHealth)
	mux.HandleFunc("POST /analyze", s.handleAnalyze)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.withRequestID(s.withLogging(s.withRecover(s.withCORS(mux)))),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}

	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", listener.Addr().String()))
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
