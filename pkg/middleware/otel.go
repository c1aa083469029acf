package middleware

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name.
const defaultTracerName = "signup"

// OTelConfig configures Tracing.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "signup").
	TracerName string

	// Provider supplies the tracer. Default: the global provider.
	Provider trace.TracerProvider

	// Filter decides which events are traced, by kind and field.
	// If nil, all events are traced.
	Filter func(kind, field string) bool
}

// OTelOption configures Tracing.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider uses p instead of the global provider.
func WithTracerProvider(p trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.Provider = p
	}
}

// WithEventFilter sets a filter function for events.
func WithEventFilter(filter func(kind, field string) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// Tracing wraps form events in spans. A nil *Tracing runs fn untraced.
type Tracing struct {
	tracer trace.Tracer
	filter func(kind, field string) bool
}

// NewTracing resolves the tracer.
func NewTracing(opts ...OTelOption) *Tracing {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	provider := config.Provider
	if provider == nil {
		provider = otel.GetTracerProvider()
	}
	return &Tracing{
		tracer: provider.Tracer(config.TracerName),
		filter: config.Filter,
	}
}

// TraceEvent runs fn inside a "signup.<kind>" span. The span records fn's
// error and whether the form was valid afterwards, as reported by valid.
func (t *Tracing) TraceEvent(ctx context.Context, sessionID, kind, field string, fn func(context.Context) error, valid func() bool) error {
	if t == nil || (t.filter != nil && !t.filter(kind, field)) {
		return fn(ctx)
	}

	attrs := []attribute.KeyValue{
		attribute.String("signup.event_kind", kind),
	}
	if field != "" {
		attrs = append(attrs, attribute.String("signup.field", field))
	}
	if sessionID != "" {
		attrs = append(attrs, attribute.String("signup.session_id", sessionID))
	}

	spanCtx, span := t.tracer.Start(ctx,
		fmt.Sprintf("signup.%s", kind),
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(attrs...),
		trace.WithTimestamp(time.Now()),
	)
	defer span.End()

	err := fn(spanCtx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	if valid != nil {
		span.SetAttributes(attribute.Bool("signup.form_valid", valid()))
	}
	return err
}
