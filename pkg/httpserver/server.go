package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/netman-app/authkit/pkg/logger"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for lifecycle messages.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithListener serves on an existing listener instead of Config.Addr.
func WithListener(l net.Listener) Option {
	return func(s *Server) { s.listener = l }
}

// Server wraps http.Server with context-driven graceful shutdown.
type Server struct {
	cfg      Config
	log      *slog.Logger
	listener net.Listener

	mu  sync.Mutex
	srv *http.Server
}

// New returns a Server for cfg. Zero timeouts leave the net/http defaults.
func New(cfg Config, opts ...Option) *Server {
	s := &Server{cfg: cfg, log: logger.Discard()}
	for _, opt := range opts {
		opt(s)
	}
	if s.cfg.ShutdownTimeout <= 0 {
		s.cfg.ShutdownTimeout = 10 * time.Second
	}
	return s
}

// Run serves handler and blocks until ctx is canceled or the listener fails.
// A canceled context triggers graceful shutdown and Run returns nil.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}
	s.srv = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		if s.listener != nil {
			errCh <- srv.Serve(s.listener)
			return
		}
		errCh <- srv.ListenAndServe()
	}()
	s.log.InfoContext(ctx, "http server started", slog.String("addr", s.addr()))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Join(ErrStart, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Join(ErrShutdown, err)
	}
	<-errCh
	s.log.InfoContext(shutdownCtx, "http server stopped")
	return nil
}

func (s *Server) addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr
}
