package main

import (
	"context"
	stderrors "errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/signup/internal/config"
	"github.com/vango-dev/signup/internal/errors"
	"github.com/vango-dev/signup/pkg/server"
	"github.com/vango-dev/signup/pkg/signup"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		addr  string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form",
		Long: `Serve the form page, its live sessions, /metrics and /healthz.

With --watch the config file is reloaded when it changes; new sessions
pick up the new rules, focus delay and fallback language.

Examples:
  signup serve
  signup serve --addr=0.0.0.0:8080
  signup serve --config=prod.json --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			sc := server.DefaultConfig()
			sc.Address = cfg.Address()
			if addr != "" {
				sc.Address = addr
			}
			sc.ReadTimeout = cfg.Server.ReadTimeout
			sc.WriteTimeout = cfg.Server.WriteTimeout
			sc.Form = formSettings(cfg)
			sc.Sink = signup.LogSink(logger)
			sc.Logger = logger

			srv := server.New(sc)

			if watch {
				if cfg.Path() == "" {
					return errors.New("E200").
						WithKey("--watch").
						WithDetail("no config file to watch").
						WithSuggestion("Create " + config.ConfigFileName + " or pass --config")
				}
				w, err := config.Watch(cfg.Path(), func(c *config.Config) {
					srv.SetForm(formSettings(c))
				}, logger)
				if err != nil {
					return err
				}
				defer w.Close()
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			success(cmd.OutOrStdout(), "Serving on http://%s", sc.Address)
			if err := srv.Run(ctx); err != nil && !stderrors.Is(err, server.ErrServerClosed) {
				return errors.New("E201").Wrap(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default from config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Reload the config file when it changes")

	return cmd
}

// formSettings converts the form part of cfg.
func formSettings(cfg *config.Config) server.FormSettings {
	return server.FormSettings{
		Reducer:    signup.NewReducer(cfg.SignupRules()),
		FocusDelay: cfg.FocusDelay,
		Catalog:    cfg.Catalog(),
	}
}
