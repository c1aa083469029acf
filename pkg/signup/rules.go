package signup

import (
	"fmt"

	"github.com/vango-dev/signup/pkg/features/form"
)

// EmailPattern is the shape an email must have on blur: something, "@",
// something, ".", something, with no whitespace or further "@".
const EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

// Rules are the field limits. Lengths count runes.
type Rules struct {
	// MaxEmailLength is checked on every email change.
	MaxEmailLength int

	// MinPasswordLength is checked on every password change.
	MinPasswordLength int

	// BlurPasswordMinLength is checked when the password loses focus. It is
	// deliberately looser than MinPasswordLength.
	BlurPasswordMinLength int
}

// DefaultRules returns the stock limits.
func DefaultRules() Rules {
	return Rules{
		MaxEmailLength:        20,
		MinPasswordLength:     8,
		BlurPasswordMinLength: 3,
	}
}

// Validate reports limits that cannot work.
func (r Rules) Validate() error {
	switch {
	case r.MaxEmailLength < 1:
		return fmt.Errorf("signup: max email length must be positive, got %d", r.MaxEmailLength)
	case r.MinPasswordLength < 1:
		return fmt.Errorf("signup: min password length must be positive, got %d", r.MinPasswordLength)
	case r.BlurPasswordMinLength < 0:
		return fmt.Errorf("signup: blur password length must not be negative, got %d", r.BlurPasswordMinLength)
	}
	return nil
}

// Reducer computes the next State for an event under a set of Rules.
// It is stateless and safe for concurrent use.
type Reducer struct {
	rules Rules

	emailChange    form.Validator
	emailBlur      form.Validator
	passwordChange form.Validator
	passwordBlur   form.Validator
}

// NewReducer compiles rules into validators.
func NewReducer(rules Rules) *Reducer {
	return &Reducer{
		rules: rules,
		emailChange: form.First(
			form.MaxLength(rules.MaxEmailLength, string(EmailTooLong)),
			form.NotContains("..", string(EmailDoubleDot)),
		),
		// Both checks run; the format check is last and wins.
		emailBlur: form.Last(
			form.Required(string(EmailRequired)),
			form.Pattern(EmailPattern, string(EmailInvalid)),
		),
		passwordChange: form.First(
			form.Required(string(PasswordRequired)),
			form.MinLength(rules.MinPasswordLength, string(PasswordTooShort)),
		),
		passwordBlur: form.MinLength(rules.BlurPasswordMinLength, string(PasswordInvalid)),
	}
}

var defaultReducer = NewReducer(DefaultRules())

// Apply returns the state after e under DefaultRules. Submit events and
// unknown fields leave s unchanged.
func Apply(s State, e Event) State {
	return defaultReducer.Apply(s, e)
}

// Rules returns the limits the reducer was built with.
func (r *Reducer) Rules() Rules {
	return r.rules
}

// Apply returns the state after e.
func (r *Reducer) Apply(s State, e Event) State {
	switch e.Kind {
	case KindChange:
		return r.change(s, e.Field, e.Value)
	case KindBlur:
		return r.blur(s, e.Field, e.Value)
	}
	return s
}

func (r *Reducer) change(s State, field Field, value string) State {
	switch field {
	case FieldEmail:
		s.Form.Email = value
		s.Errors.Email = violation(r.emailChange.Validate(value))
	case FieldPassword:
		s.Form.Password = value
		s.Errors.Password = violation(r.passwordChange.Validate(value))
		s.Strength = CalculateStrength(value)
	case FieldRepeatPassword:
		// Checked on blur only.
		s.Form.RepeatPassword = value
	}
	return s
}

// blur validates value, the input's content when it lost focus. Email and
// password blur rules only ever set an error; the confirmation rule sets or
// clears it.
func (r *Reducer) blur(s State, field Field, value string) State {
	switch field {
	case FieldEmail:
		if v := violation(r.emailBlur.Validate(value)); v != NoViolation {
			s.Errors.Email = v
		}
	case FieldPassword:
		if v := violation(r.passwordBlur.Validate(value)); v != NoViolation {
			s.Errors.Password = v
		}
	case FieldRepeatPassword:
		password := s.Form.Password
		check := form.EqualTo(func() string { return password }, string(PasswordMismatch))
		s.Errors.RepeatPassword = violation(check.Validate(value))
	}
	return s
}

func violation(err error) Violation {
	return Violation(form.MessageOf(err))
}
