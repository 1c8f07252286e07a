// Package logging provides structured logging for the weather widget.
//
// This package wraps a global zap logger with convenience functions for the
// events the widget cares about: outbound provider requests, widget server
// traffic, and presentation state transitions.
//
// # Silent by Default
//
// The terminal widget owns stdout, so logging is disabled (zap.NewNop) unless
// a level is requested through WEATHER_LOG_LEVEL or the --log-level flag.
// Output goes to stderr, or to the file named by WEATHER_LOG_FILE.
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Credentials
//
// Provider URLs carry the API key as a query parameter. Always pass URLs
// through RedactURL (LogHTTPRequest does this for you) before logging them.
package logging
