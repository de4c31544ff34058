package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/teamreg/internal/bootstrap"
	"github.com/yigit/teamreg/internal/config"
	"github.com/yigit/teamreg/internal/pkg/helpers"
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	deps   *bootstrap.Dependencies
	logger zerolog.Logger
	http   *http.Server

	// stops the initial load, the feed hub and the draft sweeper
	cancelWorkers context.CancelFunc
	workers       sync.WaitGroup
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	router, err := bootstrap.SetupRouter(cfg, deps, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup router: %w", err)
	}

	s := &Server{
		config: cfg,
		router: router,
		deps:   deps,
		logger: lgr,
	}

	return s, nil
}

// startWorkers runs the initial data load, the team feed hub and the idle
// draft sweeper. The site serves the loading view until the load finishes.
func (s *Server) startWorkers() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancelWorkers = cancel

	interval := helpers.ParseDuration(s.config.Session.SweepInterval, 10*time.Minute)
	idleTTL := helpers.ParseDuration(s.config.Session.IdleTTL, 2*time.Hour)

	s.workers.Add(2)
	go func() {
		defer s.workers.Done()
		s.loadData(ctx)
	}()
	go func() {
		defer s.workers.Done()
		s.deps.Hub.Run(ctx)
	}()

	// A zero interval disables eviction
	if interval > 0 && idleTTL > 0 {
		s.workers.Add(1)
		go func() {
			defer s.workers.Done()
			s.deps.RegistrationService.RunSweeper(ctx, interval, idleTTL)
		}()
	} else {
		s.logger.Info().Msg("Idle draft eviction disabled")
	}
}

// loadData runs the one initial load. A failure is not fatal: the site
// stays up and renders the load-failure view.
func (s *Server) loadData(ctx context.Context) {
	s.logger.Info().Msg("Loading registration data...")
	if err := s.deps.CatalogService.Load(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Registration data unavailable, serving load-failure view")
	}
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server...")

	// A form submit waits for the registration endpoint, so writes may take
	// as long as the gateway timeout.
	writeTimeout := time.Duration(0)
	if gw := helpers.ParseDuration(s.config.Gateway.Timeout, 30*time.Second); gw > 0 {
		writeTimeout = gw + 10*time.Second
	}

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Channel to listen for errors starting the server
	serverErrors := make(chan error, 1)

	// Start the server
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	s.startWorkers()

	// Channel to listen for OS signals
	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive either a server error or an OS signal
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.stopWorkers()
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	// Perform graceful shutdown
	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server and its background workers.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	shutdownError := false

	// Shutdown HTTP server
	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	s.stopWorkers()

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}

func (s *Server) stopWorkers() {
	if s.cancelWorkers == nil {
		return
	}
	s.logger.Info().Msg("Stopping background workers...")
	s.cancelWorkers()
	s.workers.Wait()
	s.cancelWorkers = nil
}
