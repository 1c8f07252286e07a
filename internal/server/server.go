package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/sravani-1304/weather-application/internal/config"
	"github.com/sravani-1304/weather-application/internal/logging"
	"github.com/sravani-1304/weather-application/internal/widget"
)

const (
	// DefaultListen is the address used when Config.Listen is empty
	DefaultListen = ":8080"

	// DefaultShutdownTimeout bounds how long Shutdown waits for sessions
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds the server configuration
type Config struct {
	Listen          string
	Fetcher         widget.Fetcher
	Preferences     config.PreferenceStore // shared by all sessions (default: in-memory)
	ToastDuration   time.Duration          // 0 = widget.ToastDuration
	ShutdownTimeout time.Duration          // 0 = DefaultShutdownTimeout
}

// Server serves the widget API and WebSocket sessions
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	upgrader   websocket.Upgrader

	themeMu sync.Mutex

	wg       sync.WaitGroup
	mu       sync.Mutex
	sessions map[string]*session
}

// New creates a new Server instance
func New(cfg Config) (*Server, error) {
	if cfg.Fetcher == nil {
		return nil, errors.New("server: a weather fetcher is required")
	}
	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}
	if cfg.Preferences == nil {
		cfg.Preferences = config.NewMemoryStore()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}

	s := &Server{
		config:   cfg,
		sessions: make(map[string]*session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:              cfg.Listen,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(api chi.Router) {
		api.Get("/weather", s.handleWeather)
		api.Get("/theme", s.handleGetTheme)
		api.Post("/theme/toggle", s.handleToggleTheme)
	})
	r.Get("/ws", s.handleWebSocket)
	return r
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Listen opens the configured listen address
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", s.config.Listen, err)
	}
	return ln, nil
}

// Run listens on the configured address and serves until shutdown
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and blocks until ctx is canceled, a
// shutdown signal arrives or the listener fails.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("Weather widget server listening",
		zap.String("addr", ln.Addr().String()),
	)

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
		logging.Info("Shutdown signal received, stopping server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	}
}

// Shutdown stops accepting requests, closes live sessions and waits for
// them to finish or for ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down server...")

	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		logging.Warn("HTTP shutdown incomplete", zap.Error(err))
	}

	// Upgraded connections are hijacked and not tracked by http.Server.
	s.mu.Lock()
	for id, sess := range s.sessions {
		logging.Debug("Closing session", zap.String("session_id", id))
		sess.close()
	}
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logging.Info("All sessions closed gracefully")
	case <-ctx.Done():
		logging.Warn("Shutdown timeout, forcing close")
		if err == nil {
			err = ctx.Err()
		}
	}

	logging.Sync()
	return err
}

// ActiveSessions returns the number of open WebSocket sessions
func (s *Server) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) addSession(sess *session) {
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()
}

func (s *Server) removeSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}
