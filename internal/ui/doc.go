// Package ui provides one-shot terminal output for the weather CLI.
//
// Unlike the interactive widget in package tui, these components follow a
// "render once and exit" pattern: `weather get` prints a single reading (or
// error) box and returns, `weather serve` prints a banner.
//
// # Components
//
//   - Header: command banner with title, command and parameters
//   - Result: success/failure boxes with ordered details
//   - Printer: writes components to an io.Writer at the terminal width
//
// Example:
//
//	p := ui.NewPrinter(os.Stdout)
//	if err != nil {
//	    p.Println(ui.RenderErrorBox(err, p.Width()))
//	    return err
//	}
//	p.Println(ui.RenderReadingBox(reading, p.Width()))
//
// # Logging Integration
//
// Logging is controlled via WEATHER_LOG_LEVEL. When unset, zap is silent so
// the curated output is displayed cleanly.
package ui
