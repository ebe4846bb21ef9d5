package http

import (
	"context"
	"errors"
	"net"
	stdhttp "net/http"
	"sync"
	"time"

	"liveness/internal/platform/config"
	"liveness/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// DefaultAddr is the listen address when neither HTTP_ADDR nor PORT is set
const DefaultAddr = ":3000"

// Server is a thin wrapper over chi + stdlib http.Server
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server

	mu    sync.Mutex
	bound net.Addr
}

// NewServer creates a server listening on HTTP_ADDR, PORT or DefaultAddr
// opts receive the *chi.Mux so callers can mount routes/mw
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayAddr("HTTP_ADDR", "PORT", DefaultAddr)
	m := chi.NewRouter()
	for _, o := range opts {
		o(m)
	}
	return &Server{
		addr: addr,
		mux:  m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
			// no WriteTimeout, SSE and streamable responses stay open
		},
	}
}

// WithAddr overrides the listen address when addr is not empty
func (s *Server) WithAddr(addr string) *Server {
	if addr != "" {
		s.addr = addr
		s.srv.Addr = addr
	}
	return s
}

// Router returns a Router facade over the internal chi mux
func (s *Server) Router() Router {
	return AdaptChi(s.mux)
}

// Addr returns the configured listening address
func (s *Server) Addr() string { return s.addr }

// BoundAddr returns the address actually listened on, nil before Run
func (s *Server) BoundAddr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound
}

// Run starts the server and blocks until Shutdown
func (s *Server) Run(ctx context.Context) error {
	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", s.addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.bound = ln.Addr()
	s.mu.Unlock()

	logger.Named("http").Info().Str("addr", ln.Addr().String()).Msg("http listening")
	err = s.srv.Serve(ln)
	if errors.Is(err, stdhttp.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
