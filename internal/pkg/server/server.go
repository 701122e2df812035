package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/numpang/numpang/internal/pkg/logger"
)

const defaultShutdownTimeout = 30 * time.Second

// GracefulServer runs an Echo server and drains in-flight requests when the
// process receives SIGINT or SIGTERM.
type GracefulServer struct {
	echo *echo.Echo
	log  *logger.ZapLogger
	addr string
}

func NewGracefulServer(e *echo.Echo, zapLogger *logger.ZapLogger, port int) *GracefulServer {
	return &GracefulServer{
		echo: e,
		log:  zapLogger,
		addr: fmt.Sprintf(":%d", port),
	}
}

// Start serves until a termination signal arrives or the listener fails,
// then shuts the server down. It blocks for the lifetime of the server.
func (s *GracefulServer) Start() error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Starting HTTP server", logger.String("address", s.addr))
		if err := s.echo.Start(s.addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		s.log.Error("HTTP server failed", logger.Err(err))
		return err
	case sig := <-quit:
		s.log.Info("Received shutdown signal", logger.String("signal", sig.String()))
	}

	return s.Shutdown()
}

// Shutdown stops accepting new connections and waits for in-flight requests
// up to the shutdown timeout.
func (s *GracefulServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(ctx); err != nil {
		s.log.Error("Server forced to shutdown", logger.Err(err))
		return err
	}

	s.log.Info("Server shutdown completed")
	return nil
}

type shutdownFunc struct {
	name string
	fn   func(context.Context) error
}

// ShutdownManager runs registered cleanup functions in registration order.
// Register the most dependent components first.
type ShutdownManager struct {
	log   *logger.ZapLogger
	funcs []shutdownFunc
}

func NewShutdownManager(zapLogger *logger.ZapLogger) *ShutdownManager {
	return &ShutdownManager{log: zapLogger}
}

// Register adds a named cleanup function to run during shutdown.
func (sm *ShutdownManager) Register(name string, fn func(context.Context) error) {
	sm.funcs = append(sm.funcs, shutdownFunc{name: name, fn: fn})
}

// Shutdown runs every registered function even when earlier ones fail, and
// returns the first error encountered.
func (sm *ShutdownManager) Shutdown(ctx context.Context) error {
	sm.log.Info("Shutting down components", logger.Int("count", len(sm.funcs)))

	var firstErr error
	for _, sf := range sm.funcs {
		if err := sf.fn(ctx); err != nil {
			sm.log.Error("Component shutdown failed",
				logger.String("component", sf.name),
				logger.Err(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		sm.log.Info("Component shutdown completed", logger.String("component", sf.name))
	}

	return firstErr
}
