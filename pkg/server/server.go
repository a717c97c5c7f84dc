package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/vango-dev/hashroute/pkg/render"
	"github.com/vango-dev/hashroute/pkg/router"
)

// WebSocketPath is where navigation sessions connect.
const WebSocketPath = "/_hashroute/ws"

// SessionRecorder is notified when sessions open and close.
type SessionRecorder interface {
	SessionOpened()
	SessionClosed()
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger.With("component", "server")
		}
	}
}

// WithSessionRecorder reports session lifecycle, e.g. to observe.Metrics.
func WithSessionRecorder(rec SessionRecorder) Option {
	return func(s *Server) {
		s.recorder = rec
	}
}

// WithErrorCode sets how dispatch errors are turned into wire codes.
func WithErrorCode(fn func(error) string) Option {
	return func(s *Server) {
		if fn != nil {
			s.errorCode = fn
		}
	}
}

// WithMetricsHandler mounts h at path (e.g. promhttp.Handler() at "/metrics").
func WithMetricsHandler(path string, h http.Handler) Option {
	return func(s *Server) {
		s.metricsPath = path
		s.metricsHandler = h
	}
}

// Server serves the app shell, the JSON API and navigation sessions.
type Server struct {
	router   *router.Router
	config   *Config
	sessions *SessionManager
	renderer *render.Renderer
	upgrader websocket.Upgrader
	logger   *slog.Logger

	recorder       SessionRecorder
	errorCode      func(error) string
	metricsPath    string
	metricsHandler http.Handler

	handlerOnce sync.Once
	handler     http.Handler

	mu         sync.Mutex
	httpServer *http.Server
	baseCtx    context.Context
	cancelBase context.CancelFunc
}

// New creates a Server dispatching through r.
func New(r *router.Router, config *Config, opts ...Option) *Server {
	config = config.withDefaults()
	baseCtx, cancel := context.WithCancel(context.Background())
	s := &Server{
		router:   r,
		config:   config,
		sessions: NewSessionManager(),
		renderer: render.NewRenderer(render.RendererConfig{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		logger:     slog.Default().With("component", "server"),
		errorCode:  func(error) string { return "dispatch" },
		baseCtx:    baseCtx,
		cancelBase: cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	s.handlerOnce.Do(func() {
		mux := chi.NewRouter()
		mux.Use(middleware.RequestID)
		mux.Use(middleware.RealIP)
		mux.Use(middleware.Recoverer)

		mux.Get("/", s.handleShell)
		mux.Get(WebSocketPath, s.HandleWebSocket)
		mux.Route("/api", func(r chi.Router) {
			r.Get("/resolve", s.handleResolve)
			r.Get("/routes", s.handleRoutes)
		})
		mux.Get("/healthz", s.handleHealth)
		if s.metricsHandler != nil {
			mux.Method(http.MethodGet, s.metricsPath, s.metricsHandler)
		}
		s.handler = mux
	})
	return s.handler
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Handler().ServeHTTP(w, r)
}

// HandleWebSocket upgrades the request and runs a navigation session.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	sess := newSession(s, conn, s.baseCtx)
	s.sessions.add(sess)
	if s.recorder != nil {
		s.recorder.SessionOpened()
	}
	sess.logger.Debug("session started", "remote_addr", r.RemoteAddr)

	defer func() {
		if s.sessions.remove(sess.ID) && s.recorder != nil {
			s.recorder.SessionClosed()
		}
		sess.cancel()
		conn.Close()
		sess.logger.Debug("session ended")
	}()

	sess.serve()
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Config returns the effective configuration.
func (s *Server) Config() *Config {
	return s.config
}

// Serve accepts connections on l until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
		ReadTimeout:       s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		IdleTimeout:       s.config.IdleTimeout,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", l.Addr().String())
		errCh <- srv.Serve(l)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Run listens on the configured address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	l, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, l)
}

// Shutdown closes all sessions and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.cancelBase()
	s.sessions.closeAll()

	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}
