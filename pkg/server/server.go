package server

import (
	"bytes"
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/signup/pkg/middleware"
	"github.com/vango-dev/signup/pkg/render"
	"github.com/vango-dev/signup/pkg/signup"
)

// Server serves the form page and its live sessions.
type Server struct {
	config   Config
	form     atomic.Pointer[FormSettings]
	router   chi.Router
	upgrader websocket.Upgrader
	renderer *render.Renderer
	logger   *slog.Logger
	metrics  *middleware.Metrics
	tracing  *middleware.Tracing

	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool

	httpServer *http.Server
}

// New creates a Server. Zero fields of config take their defaults.
func New(config Config) *Server {
	config = config.withDefaults()

	config.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &Server{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		renderer: render.NewRenderer(render.RendererConfig{}),
		logger:   config.Logger,
		metrics:  middleware.NewMetrics(middleware.WithRegistry(config.Registry)),
		tracing:  middleware.NewTracing(),
		sessions: make(map[string]*Session),
	}
	form := config.Form
	s.form.Store(&form)
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(s.logger))
	r.Use(middleware.Instrument(s.metrics))

	r.Get("/", s.handlePage)
	r.Post("/", s.handlePost)
	r.Get("/live", s.handleLive)
	r.Get("/client.js", s.serveClient)
	r.Handle("/metrics", promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Form returns the settings new sessions start with.
func (s *Server) Form() FormSettings {
	return *s.form.Load()
}

// SetForm replaces the settings for sessions started from now on.
func (s *Server) SetForm(f FormSettings) {
	f = f.withDefaults()
	s.form.Store(&f)
	s.logger.Info("form settings updated",
		"rules", f.Reducer.Rules(),
		"focus_delay", f.FocusDelay,
		"locale", f.Catalog.Tag().String())
}

// SessionCount returns the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// catalogFor picks the request's language.
func (s *Server) catalogFor(r *http.Request) *signup.Catalog {
	return signup.CatalogFor(r.Header.Get("Accept-Language"), s.Form().Catalog)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		http.Error(w, "Server shutting down", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.metrics.RecordWebSocketError("upgrade")
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	session := newSession(conn, sessionDeps{
		config:  s.config.Session,
		form:    s.Form(),
		catalog: s.catalogFor(r),
		sink:    s.config.Sink,
		logger:  s.logger,
		metrics: s.metrics,
		tracing: s.tracing,
		onClose: s.removeSession,
	})

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()
	s.metrics.SessionOpened()
	s.logger.Info("session opened",
		"session_id", session.ID,
		"locale", session.catalog.Tag().String())

	session.Start()
}

func (s *Server) removeSession(session *Session) {
	s.mu.Lock()
	_, ok := s.sessions[session.ID]
	delete(s.sessions, session.ID)
	s.mu.Unlock()
	if ok {
		s.metrics.SessionClosed()
	}
}

// Run listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.httpServer = &http.Server{
		Handler:      s,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- s.httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return ErrServerClosed
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown closes every session, then stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.Unlock()

	for _, session := range sessions {
		session.Close()
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}

// renderPage writes the full document for state.
func (s *Server) renderPage(w http.ResponseWriter, status int, state signup.State, cat *signup.Catalog) {
	var buf bytes.Buffer
	if err := RenderPage(&buf, s.renderer, state, cat); err != nil {
		s.logger.Error("render page", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Language", cat.Tag().String())
	w.Header().Add("Vary", "Accept-Language")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
