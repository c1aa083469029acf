// Package server hosts the signup form over HTTP.
//
// # Routes
//
//   - GET  /         the server-rendered page, localized from Accept-Language
//   - POST /         the no-script fallback: replays the posted fields and submits
//   - GET  /live     the websocket that drives a live Session
//   - GET  /client.js the thin client
//   - GET  /metrics  Prometheus metrics
//   - GET  /healthz  liveness
//
// # Sessions
//
// Each websocket gets a Session holding one signup.Controller. The session
// runs three goroutines:
//   - ReadLoop: decodes JSON frames and dispatches them to the event loop
//   - EventLoop: runs dispatched funcs one at a time; it is the Controller's
//     vango.Ctx, so the focus timer re-enters here
//   - WriteLoop: sends heartbeat pings
//
// Inbound frames are {"kind":"change|blur|submit","field":"...","value":"..."}.
// After every event the session answers with a "state" message; it also
// sends "focus", "submitted" and "error" messages.
//
// # Configuration
//
// Form settings (rules, focus delay, fallback language) can be swapped at
// runtime with SetForm. Open sessions keep the settings they started with.
package server
