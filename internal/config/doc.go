// Package config provides configuration for the weather widget.
//
// Two sources are handled here:
//
//   - Settings: runtime configuration read from the environment, optionally
//     seeded from a .env file. The provider API key is only ever read from
//     here (or from a command-line flag); it is never persisted.
//   - Registry: a small YAML file holding user preferences, currently the
//     colour theme. It follows OS-specific conventions for its location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/weather-widget/config.yaml or $HOME/.config/weather-widget/config.yaml
//   - macOS: $HOME/.config/weather-widget/config.yaml
//   - Windows: %LOCALAPPDATA%\weather-widget\config.yaml
//
// The path can be overridden with the --config flag.
//
// # Usage Example
//
//	settings, err := config.LoadSettings()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store, err := config.OpenFileStore("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	theme, _ := store.Get(config.KeyTheme)
//
// # Thread Safety
//
// Registry file operations are protected by a mutex and writes are atomic
// (temporary file + rename).
package config
