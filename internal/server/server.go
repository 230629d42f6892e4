package server

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-course-catalog/internal/config"
	"github.com/MKhiriev/go-course-catalog/internal/handler"
	"github.com/MKhiriev/go-course-catalog/internal/logger"
)

type server struct {
	httpServer *httpServer
	workers    BackgroundWorkers
	listener   net.Listener

	shutdownOnce sync.Once
	logger       *logger.Logger
}

func NewServer(handlers *handler.Handlers, workers BackgroundWorkers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil || cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return newServer(handlers.HTTP.Init(), workers, cfg, logger), nil
}

func newServer(h http.Handler, workers BackgroundWorkers, cfg config.Server, logger *logger.Logger) *server {
	return &server{
		httpServer: newHTTPServer(h, cfg, logger),
		workers:    workers,
		logger:     logger,
	}
}

func (s *server) RunServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx,
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if s.workers != nil {
		s.workers.Run(ctx)
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", s.httpServer.server.Addr).Msg("Launching HTTP server")
		serveErr <- s.httpServer.RunServer(s.listener)
	}()

	var err error
	select {
	case <-ctx.Done():
	case err = <-serveErr:
		if err != nil {
			s.logger.Err(err).Msg("HTTP server stopped")
		}
	}

	s.Shutdown()
	s.logger.Info().Msg("server Shutdown gracefully")

	return err
}

// Shutdown stops accepting requests, waits for in-flight ones and then
// stops the workers. Calling it more than once is harmless.
func (s *server) Shutdown() {
	s.shutdownOnce.Do(func() {
		s.httpServer.Shutdown()
		if s.workers != nil {
			s.workers.Stop()
		}
	})
}
