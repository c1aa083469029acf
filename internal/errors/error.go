package errors

import (
	"errors"
	"fmt"
)

// Category groups error codes.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryCLI      Category = "cli"
	CategoryProtocol Category = "protocol"
)

// Location points at the input that caused an error: a file, a config key,
// or both.
type Location struct {
	File string
	Key  string
}

// String returns "file: key", omitting empty parts.
func (l *Location) String() string {
	switch {
	case l == nil:
		return ""
	case l.File != "" && l.Key != "":
		return l.File + ": " + l.Key
	case l.File != "":
		return l.File
	default:
		return l.Key
	}
}

// Error is a coded error with an optional explanation and fix.
type Error struct {
	// Code is the registered identifier, e.g. "E102".
	Code string

	Category Category

	// Message is the one-line summary from the registry.
	Message string

	// Detail explains this occurrence.
	Detail string

	Location *Location

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Wrapped != nil && e.Detail == "" {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is matches another *Error by code, so errors.Is(err, errors.New("E100"))
// works on any E100.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithFile records the file the error refers to.
func (e *Error) WithFile(path string) *Error {
	if e.Location == nil {
		e.Location = &Location{}
	}
	e.Location.File = path
	return e
}

// WithKey records the config key or field the error refers to.
func (e *Error) WithKey(key string) *Error {
	if e.Location == nil {
		e.Location = &Location{}
	}
	e.Location.Key = key
	return e
}

// WithDetail adds an explanation of this occurrence.
func (e *Error) WithDetail(format string, args ...any) *Error {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

// Wrap sets the underlying error.
func (e *Error) Wrap(err error) *Error {
	e.Wrapped = err
	return e
}

// New creates an Error from a registered code. Unknown codes produce an
// "Unknown error" with no category.
func New(code string) *Error {
	template, ok := registry[code]
	if !ok {
		return &Error{Code: code, Message: "Unknown error"}
	}
	return &Error{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
	}
}

// Newf creates an uncoded Error with a formatted message.
func Newf(category Category, format string, args ...any) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError returns err as an *Error, wrapping it under code when it is
// not one already.
func FromError(err error, code string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return New(code).Wrap(err)
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
