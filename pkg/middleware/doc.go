// Package middleware instruments the signup server.
//
// # Prometheus Metrics
//
// Metrics records form activity and HTTP traffic:
//   - signup_events_total: events handled, by field and kind
//   - signup_event_duration_seconds: time to handle one event, by kind
//   - signup_violations_total: field errors shown, by violation key
//   - signup_submissions_total: submit attempts, by result
//   - signup_active_sessions: open live sessions
//   - signup_websocket_errors_total: websocket failures, by type
//   - signup_http_requests_total: HTTP requests, by route and status code
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r.Use(middleware.Instrument(m))
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// A nil *Metrics records nothing, so components can take one optionally.
//
// # OpenTelemetry
//
// Tracing starts a span around each handled event and each submission.
// It uses the global tracer provider; configure it in main:
//
//	otel.SetTracerProvider(tp)
//	tracing := middleware.NewTracing(middleware.WithTracerName("signup"))
//
// # Logging
//
// RequestLogger logs one slog line per HTTP request.
package middleware
