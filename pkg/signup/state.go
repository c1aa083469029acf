package signup

import (
	"errors"
	"fmt"
)

// Field names one of the form's inputs. The values match the inputs' name
// attributes.
type Field string

const (
	FieldEmail          Field = "email"
	FieldPassword       Field = "password"
	FieldRepeatPassword Field = "repeatPassword"
)

// Fields lists the inputs in display order.
var Fields = []Field{FieldEmail, FieldPassword, FieldRepeatPassword}

var (
	// ErrUnknownField is returned for an event naming no known input.
	ErrUnknownField = errors.New("signup: unknown field")

	// ErrUnknownEvent is returned for an unsupported event kind.
	ErrUnknownEvent = errors.New("signup: unknown event kind")
)

// ParseField validates a field name.
func ParseField(s string) (Field, error) {
	switch f := Field(s); f {
	case FieldEmail, FieldPassword, FieldRepeatPassword:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// EventKind is what happened to a field.
type EventKind string

const (
	KindChange EventKind = "change"
	KindBlur   EventKind = "blur"
	KindSubmit EventKind = "submit"
)

// ParseEventKind validates an event kind.
func ParseEventKind(s string) (EventKind, error) {
	switch k := EventKind(s); k {
	case KindChange, KindBlur, KindSubmit:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEvent, s)
}

// Event is one UI event with the input's value at the time it fired.
// Field is ignored for KindSubmit.
type Event struct {
	Kind  EventKind
	Field Field
	Value string
}

// FormState holds the three input values.
type FormState struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	RepeatPassword string `json:"repeatPassword"`
}

// Get returns the value of f.
func (f FormState) Get(field Field) string {
	switch field {
	case FieldEmail:
		return f.Email
	case FieldPassword:
		return f.Password
	case FieldRepeatPassword:
		return f.RepeatPassword
	}
	return ""
}

// With returns a copy of f with field set to value.
func (f FormState) With(field Field, value string) FormState {
	switch field {
	case FieldEmail:
		f.Email = value
	case FieldPassword:
		f.Password = value
	case FieldRepeatPassword:
		f.RepeatPassword = value
	}
	return f
}

// Violation is the message key of a failed field rule. The empty Violation
// means the field has no error.
type Violation string

const (
	NoViolation Violation = ""

	EmailTooLong   Violation = "email.too_long"
	EmailDoubleDot Violation = "email.double_dot"
	EmailRequired  Violation = "email.required"
	EmailInvalid   Violation = "email.invalid"

	PasswordRequired Violation = "password.required"
	PasswordTooShort Violation = "password.too_short"
	PasswordInvalid  Violation = "password.invalid"

	PasswordMismatch Violation = "repeatPassword.mismatch"
)

// Violations lists every key a rule can produce.
var Violations = []Violation{
	EmailTooLong, EmailDoubleDot, EmailRequired, EmailInvalid,
	PasswordRequired, PasswordTooShort, PasswordInvalid,
	PasswordMismatch,
}

// ErrorState holds one error slot per field.
type ErrorState struct {
	Email          Violation `json:"email,omitempty"`
	Password       Violation `json:"password,omitempty"`
	RepeatPassword Violation `json:"repeatPassword,omitempty"`
}

// Get returns the slot of field.
func (e ErrorState) Get(field Field) Violation {
	switch field {
	case FieldEmail:
		return e.Email
	case FieldPassword:
		return e.Password
	case FieldRepeatPassword:
		return e.RepeatPassword
	}
	return NoViolation
}

// With returns a copy of e with the slot of field set to v.
func (e ErrorState) With(field Field, v Violation) ErrorState {
	switch field {
	case FieldEmail:
		e.Email = v
	case FieldPassword:
		e.Password = v
	case FieldRepeatPassword:
		e.RepeatPassword = v
	}
	return e
}

// Empty reports whether no slot is set.
func (e ErrorState) Empty() bool {
	return e == ErrorState{}
}

// State is a snapshot of the form. The zero State is the freshly mounted
// form.
type State struct {
	Form     FormState
	Errors   ErrorState
	Strength Strength
}

// Valid reports whether the form can be submitted: every field filled in,
// no error shown, and the password confirmed.
func (s State) Valid() bool {
	f := s.Form
	return f.Email != "" && f.Password != "" && f.RepeatPassword != "" &&
		s.Errors.Empty() &&
		f.Password == f.RepeatPassword
}
