// Package server serves the weather widget to browsers.
//
// The server exposes a small JSON API next to a WebSocket endpoint that
// drives one widget.Controller per connection:
//
//	GET  /healthz            liveness check
//	GET  /api/weather?q=...  one-shot lookup, returns a reading or {kind, message}
//	GET  /api/theme          the persisted theme
//	POST /api/theme/toggle   flips and persists the theme
//	GET  /ws                 interactive widget session
//
// # WebSocket Protocol
//
// Clients send commands as JSON text frames:
//
//	{"action": "search", "query": "Paris"}
//	{"action": "retry"}
//	{"action": "toggle_theme"}
//	{"action": "dismiss_toast"}
//
// The server answers with events whose "type" is one of state, reading,
// toast, toast_dismissed, theme or error. A reading event carries the
// reveal plan so the browser can animate the change. The session id is
// returned in the X-Session-ID header of the upgrade response.
//
// # Graceful Shutdown
//
// Run blocks until its context is canceled or SIGINT/SIGTERM is received,
// then stops accepting connections, closes live sessions and waits up to
// ShutdownTimeout for in-flight requests.
package server
