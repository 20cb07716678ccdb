package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ytget/playlist-downloader/internal/config"
	"github.com/ytget/playlist-downloader/internal/session"
)

// Server timeouts
const (
	ReadHeaderTimeout = 10 * time.Second
	ShutdownTimeout   = 5 * time.Second
)

// Server exposes a session over HTTP
type Server struct {
	echo     *echo.Echo
	session  *session.Session
	settings *config.Settings
	logger   zerolog.Logger

	// runCtx bounds download workers; request contexts end too early
	runCtx context.Context
}

// NewServer creates a server with all routes registered. runCtx bounds the
// download workers started through the API.
func NewServer(runCtx context.Context, sess *session.Session, settings *config.Settings, logger zerolog.Logger) *Server {
	s := &Server{
		echo:     echo.New(),
		session:  sess,
		settings: settings,
		logger:   logger,
		runCtx:   runCtx,
	}
	s.registerRoutes()
	return s
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) registerRoutes() {
	e := s.echo

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c *echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))

	e.GET("/", s.handleIndex)
	e.POST("/api/playlist", s.handleLoadPlaylist)
	e.POST("/api/download", s.handleDownload)
	e.GET("/api/status", s.handleStatus)
	e.GET("/api/history", s.handleHistory)
	e.DELETE("/api/history", s.handleClearHistory)
	e.POST("/api/reset", s.handleReset)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.echo,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("web server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	s.logger.Info().Msg("shutting down web server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web server shutdown failed: %w", err)
	}
	return nil
}
