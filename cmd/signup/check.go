package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vango-dev/signup/internal/errors"
	"github.com/vango-dev/signup/pkg/signup"
)

// checkReport is the --json output of check.
type checkReport struct {
	Email     string                  `json:"email"`
	Errors    map[signup.Field]string `json:"errors"`
	Keys      signup.ErrorState       `json:"violations"`
	Strength  signup.Strength         `json:"strength"`
	Valid     bool                    `json:"valid"`
	Submitted bool                    `json:"submitted"`
}

func checkCmd(flags *globalFlags) *cobra.Command {
	var (
		email    string
		password string
		repeat   string
		lang     string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a registration from the command line",
		Long: `Validate a registration the way the form does.

Each field is typed and then left, in form order, and the form is then
submitted. The command exits non-zero when the form is not valid.

Examples:
  signup check --email=user@example.com --password='Abcdef12!' --repeat='Abcdef12!'
  signup check --email=bad --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.load(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cat, err := catalogFlag(cfg, lang)
			if err != nil {
				return err
			}

			state := replay(signup.NewReducer(cfg.SignupRules()), signup.FormState{
				Email:          email,
				Password:       password,
				RepeatPassword: repeat,
			})

			report := checkReport{
				Email:    state.Form.Email,
				Errors:   make(map[signup.Field]string),
				Keys:     state.Errors,
				Strength: state.Strength,
				Valid:    state.Valid(),
			}
			for _, f := range signup.Fields {
				if v := state.Errors.Get(f); v != signup.NoViolation {
					report.Errors[f] = cat.Message(v)
				}
			}

			var submitErr error
			if report.Valid {
				submitErr = signup.LogSink(logger).Submit(cmd.Context(), state.Form)
				report.Submitted = submitErr == nil
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				printReport(out, report, cat)
			}

			switch {
			case submitErr != nil:
				return errors.New("E203").Wrap(submitErr)
			case !report.Valid:
				return errors.New("E203").Wrap(signup.ErrFormInvalid)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Password")
	cmd.Flags().StringVar(&repeat, "repeat", "", "Password confirmation")
	cmd.Flags().StringVar(&lang, "lang", "", "Message language: ru or en (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

// replay types and leaves every field in form order.
func replay(r *signup.Reducer, form signup.FormState) signup.State {
	var s signup.State
	for _, f := range signup.Fields {
		v := form.Get(f)
		s = r.Apply(s, signup.Event{Kind: signup.KindChange, Field: f, Value: v})
		s = r.Apply(s, signup.Event{Kind: signup.KindBlur, Field: f, Value: v})
	}
	return s
}

func printReport(w io.Writer, r checkReport, cat *signup.Catalog) {
	for _, f := range signup.Fields {
		msg := "ok"
		if v := r.Keys.Get(f); v != signup.NoViolation {
			msg = fmt.Sprintf("%s (%s)", r.Errors[f], v)
		}
		fmt.Fprintf(w, "%-16s %s\n", f, msg)
	}
	if r.Strength.Tier != signup.TierNone {
		fmt.Fprintf(w, "%-16s %s (%d)\n", "strength", cat.StrengthLabel(r.Strength.Tier), r.Strength.Score)
	}
	if r.Submitted {
		success(w, "Submitted %s", r.Email)
	} else {
		info(w, "Form is not valid")
	}
}

