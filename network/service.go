package network

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"

	"go.uber.org/zap"
)

// Service runs the observation HTTP server
type Service struct {
	config  *Config
	handler http.Handler
	logger  *zap.Logger

	server   *http.Server
	listener net.Listener
	done     chan struct{}

	running atomic.Bool
}

// NewService creates a service serving handler. A nil config selects the defaults (disabled)
func NewService(cfg *Config, handler http.Handler, logger *zap.Logger) *Service {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		config:  cfg,
		handler: handler,
		logger:  logger,
	}
}

// Name identifies the service in logs
func (s *Service) Name() string {
	return "network"
}

// Start binds the listener and serves in the background until ctx is done or
// Stop is called. Disabled services return nil without listening
func (s *Service) Start(ctx context.Context) error {
	if !s.config.Enabled {
		return nil
	}
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("%s: already running", s.Name())
	}

	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("%s: listen %s: %w", s.Name(), s.config.Address, err)
	}
	s.listener = ln
	s.server = &http.Server{
		Handler:      s.handler,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server failed", zap.Error(err))
		}
	}()
	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-s.done:
		}
	}()

	s.logger.Info("http server listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Stop shuts the server down, waiting up to ShutdownTimeout for requests
func (s *Service) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	err := s.server.Shutdown(ctx)
	<-s.done
	s.logger.Info("http server stopped")
	return err
}

// Addr returns the bound address, useful with port 0
func (s *Service) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// IsRunning returns true while serving
func (s *Service) IsRunning() bool {
	return s.running.Load()
}
