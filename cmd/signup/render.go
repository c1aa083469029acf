package main

import (
	"github.com/spf13/cobra"

	"github.com/vango-dev/signup/internal/errors"
	"github.com/vango-dev/signup/pkg/render"
	"github.com/vango-dev/signup/pkg/server"
	"github.com/vango-dev/signup/pkg/signup"
)

func renderCmd(flags *globalFlags) *cobra.Command {
	var (
		lang   string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the server-rendered page",
		Long: `Print the page GET / serves, with an empty form.

Examples:
  signup render
  signup render --lang=en --pretty > signup.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := flags.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cat, err := catalogFlag(cfg, lang)
			if err != nil {
				return err
			}

			r := render.NewRenderer(render.RendererConfig{Pretty: pretty, Indent: "  "})
			if err := server.RenderPage(cmd.OutOrStdout(), r, signup.State{}, cat); err != nil {
				return errors.New("E202").Wrap(err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Page language: ru or en (default from config)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the HTML")

	return cmd
}
