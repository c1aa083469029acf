package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/signup/internal/config"
	"github.com/vango-dev/signup/internal/errors"
	"github.com/vango-dev/signup/pkg/signup"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.Print(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "signup",
		Short: "A server-driven registration form",
		Long: `signup serves a registration form whose validation runs on the server.

Each browser tab holds a live session over a websocket: every keystroke
and blur is validated on the server and the errors, password strength
and submit state are pushed back. Without JavaScript the form posts
normally and is validated in one pass.

Configuration is read from signup.json in the working directory, or
the file given with --config, and from SIGNUP_* environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Config file (default ./"+config.ConfigFileName+" if present)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	pf.StringVar(&flags.logFormat, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(
		serveCmd(flags),
		checkCmd(flags),
		renderCmd(flags),
		versionCmd(),
	)
	return rootCmd
}

// load reads and validates the config, applies the logging flags, and
// builds the logger. Logs go to logOut.
func (f *globalFlags) load(logOut io.Writer) (*config.Config, *slog.Logger, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return nil, nil, err
	}

	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := cfg.Logger(logOut)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

// catalogFlag resolves a --lang flag, falling back to the config's locale.
func catalogFlag(cfg *config.Config, lang string) (*signup.Catalog, error) {
	if lang == "" {
		return cfg.Catalog(), nil
	}
	cat, ok := signup.LookupCatalog(lang)
	if !ok {
		return nil, errors.New("E200").
			WithKey("--lang").
			WithDetail("no catalog for %q", lang).
			WithSuggestion(`Use "ru" or "en"`)
	}
	return cat, nil
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
