package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/recipebox/pkg/logger"
)

type Option func(*Server)

func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

func withTimeouts(read, write, idle time.Duration) Option {
	return func(s *Server) {
		s.srv.ReadTimeout = read
		s.srv.WriteTimeout = write
		s.srv.IdleTimeout = idle
	}
}

// Server wraps http.Server with signal-driven graceful shutdown.
type Server struct {
	addr            string
	shutdownTimeout time.Duration
	logger          *slog.Logger

	mu       sync.Mutex
	srv      *http.Server
	running  bool
	shutOnce sync.Once
	addrCh   chan net.Addr
}

func New(opts ...Option) *Server {
	s := &Server{
		addr:            ":8080",
		shutdownTimeout: 10 * time.Second,
		logger:          logger.Discard(),
		srv:             &http.Server{ReadHeaderTimeout: 10 * time.Second},
		addrCh:          make(chan net.Addr, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr blocks until the listener is bound and returns its address.
func (s *Server) Addr(ctx context.Context) (net.Addr, error) {
	select {
	case a := <-s.addrCh:
		s.addrCh <- a
		return a, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Run serves handler until ctx is done or a termination signal arrives.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.Join(ErrStart, ErrRunning)
	}
	s.running = true
	s.srv.Handler = handler
	s.srv.BaseContext = func(net.Listener) context.Context { return context.WithoutCancel(ctx) }
	s.mu.Unlock()

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}
	s.addrCh <- ln.Addr()
	s.logger.InfoContext(ctx, "http server started", slog.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(ln) }()

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-sigCtx.Done():
		if err := s.Shutdown(context.WithoutCancel(ctx)); err != nil {
			return err
		}
		err = <-errCh
	case err = <-errCh:
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrStart, err)
	}
	s.logger.InfoContext(ctx, "http server stopped")
	return nil
}

// Shutdown is idempotent.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutOnce.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()
		err = s.srv.Shutdown(ctx)
	})
	if err != nil {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
