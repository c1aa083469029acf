package config

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/vango-dev/signup/internal/errors"
	"github.com/vango-dev/signup/pkg/signup"
)

const (
	// ConfigFileName is the file Load looks for.
	ConfigFileName = "signup.json"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SIGNUP"

	DefaultHost   = "localhost"
	DefaultPort   = 8080
	DefaultLocale = "ru"
)

// Config is the complete signup.json.
type Config struct {
	// Locale picks the message catalog when a request expresses no
	// preference: "ru" or "en".
	Locale string `mapstructure:"locale" json:"locale"`

	// FocusDelay is how long the form must stay valid before focus moves
	// to the submit button.
	FocusDelay time.Duration `mapstructure:"focusDelay" json:"focusDelay"`

	Rules  RulesConfig  `mapstructure:"rules" json:"rules"`
	Server ServerConfig `mapstructure:"server" json:"server"`
	Log    LogConfig    `mapstructure:"log" json:"log"`

	configPath string
}

// RulesConfig holds the field limits, in runes.
type RulesConfig struct {
	MaxEmailLength        int `mapstructure:"maxEmailLength" json:"maxEmailLength"`
	MinPasswordLength     int `mapstructure:"minPasswordLength" json:"minPasswordLength"`
	BlurPasswordMinLength int `mapstructure:"blurPasswordMinLength" json:"blurPasswordMinLength"`
}

// ServerConfig configures `signup serve`.
type ServerConfig struct {
	Host         string        `mapstructure:"host" json:"host"`
	Port         int           `mapstructure:"port" json:"port"`
	ReadTimeout  time.Duration `mapstructure:"readTimeout" json:"readTimeout"`
	WriteTimeout time.Duration `mapstructure:"writeTimeout" json:"writeTimeout"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `mapstructure:"level" json:"level"`

	// Format is text or json.
	Format string `mapstructure:"format" json:"format"`
}

// New returns a Config holding the defaults.
func New() *Config {
	rules := signup.DefaultRules()
	return &Config{
		Locale:     DefaultLocale,
		FocusDelay: signup.DefaultFocusDelay,
		Rules: RulesConfig{
			MaxEmailLength:        rules.MaxEmailLength,
			MinPasswordLength:     rules.MinPasswordLength,
			BlurPasswordMinLength: rules.BlurPasswordMinLength,
		},
		Server: ServerConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// newViper returns a viper instance seeded with every key's default, so
// environment overrides apply even to keys missing from the file.
func newViper() *viper.Viper {
	d := New()
	v := viper.New()
	v.SetDefault("locale", d.Locale)
	v.SetDefault("focusDelay", d.FocusDelay)
	v.SetDefault("rules.maxEmailLength", d.Rules.MaxEmailLength)
	v.SetDefault("rules.minPasswordLength", d.Rules.MinPasswordLength)
	v.SetDefault("rules.blurPasswordMinLength", d.Rules.BlurPasswordMinLength)
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.readTimeout", d.Server.ReadTimeout)
	v.SetDefault("server.writeTimeout", d.Server.WriteTimeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads ConfigFileName from dir. A missing file is not an error: the
// defaults and environment are used.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return LoadEnv()
	}
	return LoadFile(path)
}

// LoadEnv builds a Config from the defaults and environment only.
func LoadEnv() (*Config, error) {
	return decode(newViper(), "")
}

// LoadFile reads the config file at path.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithFile(path).
				WithSuggestion("Create " + ConfigFileName + " or omit --config to use the defaults")
		}
		return nil, errors.New("E101").WithFile(path).Wrap(err)
	}

	v := newViper()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("json")
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.New("E101").
			WithFile(path).
			Wrap(err).
			WithSuggestion("Check that the file is valid " + configType(path))
	}
	return decode(v, path)
}

func decode(v *viper.Viper, path string) (*Config, error) {
	cfg := New()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.New("E101").WithFile(path).Wrap(err)
	}
	cfg.configPath = path
	cfg.applyDefaults()
	return cfg, nil
}

func configType(path string) string {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "json"
	}
	return strings.ToUpper(ext)
}

// applyDefaults fills in empty strings left by explicit blanks in the file.
func (c *Config) applyDefaults() {
	d := New()
	if c.Locale == "" {
		c.Locale = d.Locale
	}
	if c.Server.Host == "" {
		c.Server.Host = d.Server.Host
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}

// Path returns the file the config was loaded from, or "".
func (c *Config) Path() string {
	return c.configPath
}

// Validate checks every value and returns the first problem as a coded
// error.
func (c *Config) Validate() error {
	if _, ok := signup.LookupCatalog(c.Locale); !ok {
		return c.invalid("E104", "locale", "no catalog for %q", c.Locale).
			WithSuggestion(`Use "ru" or "en"`)
	}
	if c.FocusDelay < 0 || c.FocusDelay > 10*time.Second {
		return c.invalid("E102", "focusDelay", "must be between 0 and 10s, got %s", c.FocusDelay)
	}
	if err := c.SignupRules().Validate(); err != nil {
		return c.invalid("E102", "rules", "%v", err)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return c.invalid("E102", "server.port", "must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout < 0 {
		return c.invalid("E102", "server.readTimeout", "must not be negative")
	}
	if c.Server.WriteTimeout < 0 {
		return c.invalid("E102", "server.writeTimeout", "must not be negative")
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return c.invalid("E102", "log.level", "%v", err)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return c.invalid("E102", "log.format", "must be text or json, got %q", c.Log.Format)
	}
	return nil
}

func (c *Config) invalid(code, key, format string, args ...any) *errors.Error {
	e := errors.New(code).WithKey(key).WithDetail(format, args...)
	if c.configPath != "" {
		e.WithFile(c.configPath)
	}
	return e
}

// SignupRules converts the rules section.
func (c *Config) SignupRules() signup.Rules {
	return signup.Rules{
		MaxEmailLength:        c.Rules.MaxEmailLength,
		MinPasswordLength:     c.Rules.MinPasswordLength,
		BlurPasswordMinLength: c.Rules.BlurPasswordMinLength,
	}
}

// Catalog returns the catalog for Locale, Russian if it has none.
func (c *Config) Catalog() *signup.Catalog {
	if cat, ok := signup.LookupCatalog(c.Locale); ok {
		return cat
	}
	return signup.Russian()
}

// Address returns host:port for the server to listen on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}

// Logger builds the slog.Logger described by the log section, writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
