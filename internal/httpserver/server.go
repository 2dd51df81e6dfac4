// Package httpserver exposes HTML-to-PDF rendering over HTTP with two
// resource strategies: a fully isolated engine per request, and a shared
// long-lived engine with a disposable session per request.
package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"github.com/alnah/go-html2pdf"
)

// shutdownGrace bounds how long in-flight requests may finish on shutdown.
const shutdownGrace = 30 * time.Second

// Server wires the request pipeline: routing, correlation ids, admission
// control, engine acquisition, and response framing.
type Server struct {
	cfg    Config
	logger *slog.Logger

	launch      html2pdf.LaunchFunc
	shared      *html2pdf.SharedEngine
	coordinator *html2pdf.Coordinator
	markdown    *html2pdf.MarkdownConverter

	metrics *metrics
	sem     *semaphore.Weighted
	router  *gin.Engine
}

// Option customizes a Server.
type Option func(*Server)

// WithLaunchFunc overrides how engines are launched, for both the isolated
// mode and the shared lifecycle manager. Used by tests to avoid a browser.
func WithLaunchFunc(fn html2pdf.LaunchFunc) Option {
	return func(s *Server) { s.launch = fn }
}

// New assembles a Server from cfg.
func New(cfg Config, logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		markdown: html2pdf.NewMarkdownConverter(),
		metrics:  newMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.launch == nil {
		s.launch = html2pdf.LaunchEngine
	}
	s.shared = html2pdf.NewSharedEngine(s.launch)
	s.coordinator = html2pdf.NewCoordinator(
		html2pdf.WithLoadTimeout(cfg.loadTimeout()),
		html2pdf.WithEmitTimeout(cfg.emitTimeout()),
		html2pdf.WithLogger(logger),
	)

	if cfg.MaxConcurrent > 0 {
		s.sem = semaphore.NewWeighted(int64(cfg.MaxConcurrent))
	}

	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), loggingMiddleware(s.logger))

	if len(s.cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins: s.cfg.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost},
			AllowHeaders: []string{"Content-Type", requestIDHeader},
			MaxAge:       12 * time.Hour,
		}))
	}

	router.Use(s.limitBody)

	router.POST("/convert/isolated", s.handleIsolated)
	router.POST("/convert/shared", s.handleShared)
	router.POST("/convert/markdown", s.handleMarkdown)
	router.GET("/healthz", s.handleHealthz)
	router.GET("/metrics", gin.WrapH(s.metrics.handler()))

	return router
}

// limitBody caps request bodies so a single oversized document cannot
// exhaust memory before validation even runs.
func (s *Server) limitBody(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.maxBodyBytes())
	c.Next()
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests and
// closes the shared engine.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Info("server listening", "addr", s.cfg.Addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	shutdownErr := srv.Shutdown(shutdownCtx)
	if closeErr := s.shared.Close(); closeErr != nil {
		s.logger.Warn("closing shared engine", "error", closeErr)
	}

	if shutdownErr != nil && !errors.Is(shutdownErr, http.ErrServerClosed) {
		return shutdownErr
	}
	return nil
}
