package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hodzhakhov/archiver/internal/config"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	server *http.Server
	logger *zap.Logger
}

func New(cfg *config.Config, handler http.Handler, logger *zap.Logger) *Server {
	s := &Server{
		server: &http.Server{
			Addr:         net.JoinHostPort(cfg.HTTPHost, cfg.HTTPPort),
			Handler:      handler,
			ReadTimeout:  cfg.HTTPReadTimeout,
			WriteTimeout: cfg.HTTPWriteTimeout,
			IdleTimeout:  cfg.HTTPIdleTimeout,
		},
		logger: logger,
	}
	s.server.ConnState = s.logConnState

	return s
}

// logConnState пишет в лог жизненный цикл соединения: new, active, idle, closed.
func (s *Server) logConnState(conn net.Conn, state http.ConnState) {
	s.logger.Debug("состояние соединения",
		zap.String("remote", conn.RemoteAddr().String()),
		zap.String("state", state.String()),
	)
}

func (s *Server) Start() error {
	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(done)

	serverErr := make(chan error, 1)

	go func() {
		s.logger.Info("Запуск HTTP сервера", zap.String("address", s.server.Addr))
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("ошибка HTTP сервера: %w", err)
		}
	}()

	select {
	case err := <-serverErr:
		return err
	case sig := <-done:
		s.logger.Info("Получен сигнал завершения", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("ошибка при завершении сервера: %w", err)
		}

		s.logger.Info("HTTP сервер успешно остановлен")
		return nil
	}
}
