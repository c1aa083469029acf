// Package errors provides coded, categorized errors for the signup tools.
//
// Every infrastructure failure the CLI or the live server can report has a
// registered code:
//
//   - E1xx config: loading and validating signup.json
//   - E2xx cli: flags and commands
//   - E3xx protocol: live session messages and submissions
//
// Validation outcomes of the form itself are not errors; they are
// violation keys in the form state.
//
//	err := errors.New("E102").
//	    WithKey("rules.maxEmailLength").
//	    WithDetail("must be positive, got 0").
//	    WithSuggestion("Remove the key to use the default of 20")
//
//	fmt.Fprint(os.Stderr, err.Format())
package errors
