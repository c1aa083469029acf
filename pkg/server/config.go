package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/signup/pkg/signup"
)

// Config configures a Server.
type Config struct {
	// Address is the address to listen on (default: "localhost:8080").
	Address string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// ReadBufferSize and WriteBufferSize size the websocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the websocket origin. Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool

	Session SessionConfig

	// Form is the initial form settings.
	Form FormSettings

	// Sink receives valid submissions. Default: signup.LogSink(Logger).
	Sink signup.Sink

	// Registry receives the server's metrics and backs /metrics.
	// Default: a fresh registry.
	Registry *prometheus.Registry

	Logger *slog.Logger
}

// SessionConfig configures live sessions.
type SessionConfig struct {
	// MaxMessageSize caps one inbound frame, in bytes.
	MaxMessageSize int64

	// IdleTimeout closes a session that sends nothing, pongs included.
	IdleTimeout time.Duration

	// HeartbeatInterval is how often pings are sent. It must be shorter
	// than IdleTimeout.
	HeartbeatInterval time.Duration

	// WriteTimeout bounds a single frame write.
	WriteTimeout time.Duration

	// MaxDispatchQueue is how many funcs may wait for the event loop.
	MaxDispatchQueue int
}

// FormSettings are the per-session form parameters.
type FormSettings struct {
	Reducer    *signup.Reducer
	FocusDelay time.Duration

	// Catalog is used when Accept-Language matches nothing.
	Catalog *signup.Catalog
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:         "localhost:8080",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     SameOriginCheck,
		Session:         DefaultSessionConfig(),
		Form:            DefaultFormSettings(),
	}
}

// DefaultSessionConfig returns the default live session limits.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxMessageSize:    4096,
		IdleTimeout:       60 * time.Second,
		HeartbeatInterval: 25 * time.Second,
		WriteTimeout:      5 * time.Second,
		MaxDispatchQueue:  64,
	}
}

// DefaultFormSettings returns the default rules, delay and language.
func DefaultFormSettings() FormSettings {
	return FormSettings{
		Reducer:    signup.NewReducer(signup.DefaultRules()),
		FocusDelay: signup.DefaultFocusDelay,
		Catalog:    signup.Russian(),
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Address == "" {
		c.Address = d.Address
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.ReadBufferSize == 0 {
		c.ReadBufferSize = d.ReadBufferSize
	}
	if c.WriteBufferSize == 0 {
		c.WriteBufferSize = d.WriteBufferSize
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = d.CheckOrigin
	}

	ds := d.Session
	if c.Session.MaxMessageSize == 0 {
		c.Session.MaxMessageSize = ds.MaxMessageSize
	}
	if c.Session.IdleTimeout == 0 {
		c.Session.IdleTimeout = ds.IdleTimeout
	}
	if c.Session.HeartbeatInterval == 0 {
		c.Session.HeartbeatInterval = ds.HeartbeatInterval
	}
	if c.Session.WriteTimeout == 0 {
		c.Session.WriteTimeout = ds.WriteTimeout
	}
	if c.Session.MaxDispatchQueue == 0 {
		c.Session.MaxDispatchQueue = ds.MaxDispatchQueue
	}

	c.Form = c.Form.withDefaults()
	if c.Registry == nil {
		c.Registry = prometheus.NewRegistry()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Sink == nil {
		c.Sink = signup.LogSink(c.Logger)
	}
	return c
}

func (f FormSettings) withDefaults() FormSettings {
	d := DefaultFormSettings()
	if f.Reducer == nil {
		f.Reducer = d.Reducer
	}
	if f.Catalog == nil {
		f.Catalog = d.Catalog
	}
	return f
}

// SameOriginCheck accepts requests without an Origin header and requests
// whose Origin host equals the Host header.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == "" {
		return false
	}
	return originURL.Host == r.Host
}
