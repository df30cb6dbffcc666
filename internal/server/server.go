package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/campushub/internal/bootstrap"
	"github.com/yigit/campushub/internal/config"
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	stores *bootstrap.Stores
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
	http   *http.Server

	stopHub context.CancelFunc
	hubDone chan struct{}
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	stores, err := bootstrap.SetupStores(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup stores: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, stores, lgr)
	if err != nil {
		stores.Close(context.Background())
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	return &Server{
		config: cfg,
		router: router,
		stores: stores,
		deps:   deps,
		logger: lgr,
	}, nil
}

// Run starts the realtime hub, the background jobs and the HTTP server, and
// blocks until a signal or a server error triggers a graceful shutdown.
func (s *Server) Run() error {
	hubCtx, stopHub := context.WithCancel(context.Background())
	s.stopHub = stopHub
	s.hubDone = make(chan struct{})
	go func() {
		defer close(s.hubDone)
		s.deps.Hub.Run(hubCtx)
	}()

	if err := s.deps.Sweeper.Start(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to start notification sweeper")
		s.Shutdown(context.Background())
		return err
	}

	if err := s.deps.Reminder.Start(); err != nil {
		s.logger.Error().Err(err).Msg("Failed to start event reminder")
		s.Shutdown(context.Background())
		return err
	}

	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	// WriteTimeout stays zero: upgraded websocket connections manage their own deadlines
	s.http = &http.Server{
		Addr:              ":" + s.config.Server.Port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.Shutdown(context.Background())
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown stops accepting requests, then stops the hub and the background
// jobs, and finally closes the store connections.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	shutdownError := false

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	if s.stopHub != nil {
		s.stopHub()
		select {
		case <-s.hubDone:
			s.logger.Info().Msg("Realtime hub stopped.")
		case <-ctx.Done():
			s.logger.Warn().Msg("Timed out waiting for realtime hub")
			shutdownError = true
		}
	}

	if s.deps != nil && s.deps.Sweeper != nil {
		if err := s.deps.Sweeper.Shutdown(); err != nil {
			s.logger.Error().Err(err).Msg("Notification sweeper shutdown error")
			shutdownError = true
		}
	}

	if s.deps != nil && s.deps.Reminder != nil {
		if err := s.deps.Reminder.Shutdown(); err != nil {
			s.logger.Error().Err(err).Msg("Event reminder shutdown error")
			shutdownError = true
		}
	}

	if s.stores != nil {
		s.logger.Info().Msg("Closing store connections...")
		if err := s.stores.Close(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Store shutdown error")
			shutdownError = true
		}
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
