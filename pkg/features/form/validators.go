package form

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Validator checks a single string value.
type Validator interface {
	// Validate returns nil if value is valid, or a ValidationError.
	Validate(value string) error
}

// ValidatorFunc is a function that implements Validator.
type ValidatorFunc func(value string) error

func (f ValidatorFunc) Validate(value string) error {
	return f(value)
}

// ValidationError is a failed rule. Message is a key, not display text.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// MessageOf returns the message key carried by err, or "" when err is nil
// or not a ValidationError.
func MessageOf(err error) string {
	var ve ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return ""
}

// Required rejects the empty string. Whitespace counts as content.
func Required(msg string) Validator {
	return ValidatorFunc(func(value string) error {
		if value == "" {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// MinLength rejects values shorter than n runes, including "".
func MinLength(n int, msg string) Validator {
	return ValidatorFunc(func(value string) error {
		if utf8.RuneCountInString(value) < n {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// MaxLength rejects values longer than n runes.
func MaxLength(n int, msg string) Validator {
	return ValidatorFunc(func(value string) error {
		if utf8.RuneCountInString(value) > n {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// Pattern rejects values that do not match the regular expression. It
// panics if pattern does not compile.
func Pattern(pattern string, msg string) Validator {
	re := regexp.MustCompile(pattern)
	return ValidatorFunc(func(value string) error {
		if !re.MatchString(value) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// NotContains rejects values containing substr.
func NotContains(substr string, msg string) Validator {
	return ValidatorFunc(func(value string) error {
		if strings.Contains(value, substr) {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// EqualTo rejects values that differ from other(). other is read at
// validation time, so it can follow another field.
func EqualTo(other func() string, msg string) Validator {
	return ValidatorFunc(func(value string) error {
		if value != other() {
			return ValidationError{Message: msg}
		}
		return nil
	})
}

// Custom adapts fn. A plain error from fn is wrapped as a ValidationError
// with the error text as message.
func Custom(fn func(value string) error) Validator {
	return ValidatorFunc(func(value string) error {
		err := fn(value)
		if err == nil {
			return nil
		}
		var ve ValidationError
		if errors.As(err, &ve) {
			return ve
		}
		return ValidationError{Message: err.Error()}
	})
}

// First runs validators in order and returns the first failure.
func First(validators ...Validator) Validator {
	return ValidatorFunc(func(value string) error {
		for _, v := range validators {
			if err := v.Validate(value); err != nil {
				return err
			}
		}
		return nil
	})
}

// Last runs every validator and returns the last failure, so a later rule
// overrides an earlier one.
func Last(validators ...Validator) Validator {
	return ValidatorFunc(func(value string) error {
		var last error
		for _, v := range validators {
			if err := v.Validate(value); err != nil {
				last = err
			}
		}
		return last
	})
}

// Named sets Field on any ValidationError returned by v.
func Named(field string, v Validator) Validator {
	return ValidatorFunc(func(value string) error {
		err := v.Validate(value)
		var ve ValidationError
		if errors.As(err, &ve) {
			ve.Field = field
			return ve
		}
		return err
	})
}
