package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/signup/internal/errors"
	"github.com/vango-dev/signup/pkg/middleware"
	"github.com/vango-dev/signup/pkg/signup"
	"github.com/vango-dev/signup/pkg/vango"
)

// Session is one live form over one websocket. It implements vango.Ctx:
// every handler and every timer callback runs on its EventLoop.
type Session struct {
	ID        string
	CreatedAt time.Time

	conn    *websocket.Conn
	writeMu sync.Mutex
	closed  atomic.Bool

	controller *signup.Controller
	catalog    *signup.Catalog

	dispatchCh chan func()
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc

	config  SessionConfig
	logger  *slog.Logger
	metrics *middleware.Metrics
	tracing *middleware.Tracing

	eventCount atomic.Uint64
	onClose    func(*Session)
}

// generateSessionID returns 16 random bytes, hex encoded.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

type sessionDeps struct {
	config  SessionConfig
	form    FormSettings
	catalog *signup.Catalog
	sink    signup.Sink
	logger  *slog.Logger
	metrics *middleware.Metrics
	tracing *middleware.Tracing
	onClose func(*Session)
}

func newSession(conn *websocket.Conn, deps sessionDeps) *Session {
	id := generateSessionID()
	ctx, cancel := context.WithCancel(context.Background())

	s := &Session{
		ID:         id,
		CreatedAt:  time.Now(),
		conn:       conn,
		catalog:    deps.catalog,
		dispatchCh: make(chan func(), deps.config.MaxDispatchQueue),
		done:       make(chan struct{}),
		ctx:        ctx,
		cancel:     cancel,
		config:     deps.config,
		logger:     deps.logger.With("session_id", id),
		metrics:    deps.metrics,
		tracing:    deps.tracing,
		onClose:    deps.onClose,
	}

	s.controller = signup.New(s,
		signup.WithReducer(deps.form.Reducer),
		signup.WithFocusDelay(deps.form.FocusDelay),
		signup.WithCatalog(deps.catalog),
		signup.WithSink(deps.sink),
		signup.WithFocus(s.sendFocus),
		signup.WithLogger(s.logger),
	)
	return s
}

// Dispatch queues fn to run on the event loop. Safe from any goroutine.
// Funcs dispatched after Close are dropped.
func (s *Session) Dispatch(fn func()) {
	if s.closed.Load() {
		return
	}
	select {
	case s.dispatchCh <- fn:
	case <-s.done:
	default:
		s.logger.Warn("dispatch queue full, discarding callback")
	}
}

// StdContext returns a context cancelled when the session closes.
func (s *Session) StdContext() context.Context {
	return s.ctx
}

// State returns the form's current snapshot. Call it from the event loop.
func (s *Session) State() signup.State {
	return s.controller.State()
}

// Done is closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Start runs the session loops and sends the initial state.
func (s *Session) Start() {
	s.Dispatch(func() { s.sendState() })
	go s.ReadLoop()
	go s.WriteLoop()
	go s.EventLoop()
}

// ReadLoop decodes frames and dispatches them until the connection fails.
func (s *Session) ReadLoop() {
	defer s.Close()

	s.conn.SetReadLimit(s.config.MaxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(s.config.IdleTimeout))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.config.IdleTimeout))
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure) {
				s.logger.Warn("read error", "error", err)
				s.metrics.RecordWebSocketError("read")
			}
			return
		}
		s.conn.SetReadDeadline(time.Now().Add(s.config.IdleTimeout))

		ev, err := decodeEvent(msg)
		if err != nil {
			s.logger.Debug("rejected frame", "error", err)
			s.send(errorMessage(err))
			continue
		}
		s.Dispatch(func() { s.handle(ev) })
	}
}

// EventLoop runs dispatched funcs one at a time until the session closes.
func (s *Session) EventLoop() {
	for {
		select {
		case fn := <-s.dispatchCh:
			s.executeDispatch(fn)
		case <-s.done:
			return
		}
	}
}

func (s *Session) executeDispatch(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("dispatch panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	vango.WithCtx(s, fn)
}

// WriteLoop sends heartbeat pings until the session closes.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.writeMu.Lock()
			err := s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout))
			s.writeMu.Unlock()
			if err != nil {
				s.metrics.RecordWebSocketError("ping")
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

// handle applies one event and reports the outcome. It runs on the loop.
func (s *Session) handle(ev signup.Event) {
	s.eventCount.Add(1)
	start := time.Now()

	var submitErr error
	_ = s.tracing.TraceEvent(s.ctx, s.ID, string(ev.Kind), string(ev.Field), func(ctx context.Context) error {
		if ev.Kind == signup.KindSubmit {
			submitErr = s.controller.Submit(ctx)
			return submitErr
		}
		return s.controller.Handle(ev)
	}, s.controller.IsFormValid)

	s.metrics.RecordEvent(string(ev.Field), string(ev.Kind), time.Since(start))

	state := s.controller.State()
	if ev.Kind != signup.KindSubmit {
		s.metrics.RecordViolation(string(state.Errors.Get(ev.Field)))
		s.sendState()
		return
	}

	switch {
	case submitErr == nil:
		s.metrics.RecordSubmission(middleware.ResultOK)
		s.send(SubmittedMessage{Type: TypeSubmitted})
	case stderrors.Is(submitErr, signup.ErrFormInvalid):
		s.metrics.RecordSubmission(middleware.ResultInvalid)
		s.send(errorMessage(errors.New("E303").Wrap(submitErr)))
	default:
		s.metrics.RecordSubmission(middleware.ResultError)
		s.logger.Error("submission failed", "error", submitErr)
		s.send(errorMessage(errors.New("E304").Wrap(submitErr)))
	}
	s.sendState()
}

func (s *Session) sendState() {
	s.send(stateMessage(s.controller.State(), s.catalog))
}

func (s *Session) sendFocus(target string) {
	s.send(FocusMessage{Type: TypeFocus, Target: target})
}

// send writes msg as one JSON text frame. Write failures close the session.
func (s *Session) send(msg any) {
	if s.closed.Load() {
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("encode message", "error", err)
		return
	}

	s.writeMu.Lock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	err = s.conn.WriteMessage(websocket.TextMessage, data)
	s.writeMu.Unlock()

	if err != nil {
		s.logger.Debug("write failed", "error", err)
		s.metrics.RecordWebSocketError("write")
		go s.Close()
	}
}

// Close ends the session: the form is disposed, which cancels a pending
// focus, and the connection is closed. It is idempotent.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)
	s.cancel()
	s.controller.Dispose()

	s.writeMu.Lock()
	s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	s.writeMu.Unlock()
	s.conn.Close()

	if s.onClose != nil {
		s.onClose(s)
	}
	s.logger.Info("session closed", "events", s.eventCount.Load())
}
