package signup

import (
	"context"
	"errors"
	"log/slog"
	"unicode/utf8"
)

// ErrFormInvalid is returned by Submit when the form is not valid. The sink
// is not called.
var ErrFormInvalid = errors.New("signup: form is not valid")

// Sink receives valid submissions.
type Sink interface {
	Submit(ctx context.Context, form FormState) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, form FormState) error

func (f SinkFunc) Submit(ctx context.Context, form FormState) error {
	return f(ctx, form)
}

// LogSink returns a Sink that records submissions at debug level. Only the
// password's length is logged.
func LogSink(logger *slog.Logger) Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return SinkFunc(func(ctx context.Context, form FormState) error {
		logger.DebugContext(ctx, "signup submitted",
			"email", form.Email,
			"password_len", utf8.RuneCountInString(form.Password),
		)
		return nil
	})
}
