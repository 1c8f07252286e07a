// Weather is a terminal and browser weather lookup widget.
//
// It shows the current conditions for a city from OpenWeatherMap, either in
// an interactive terminal widget, as a one-shot lookup, or served to
// browsers over WebSocket.
//
// Usage:
//
//	weather [command] [flags]
//
// Running without arguments launches the interactive widget.
// See 'weather --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sravani-1304/weather-application/internal/logging"
	"github.com/sravani-1304/weather-application/internal/version"
)

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "weather",
	Short: "Current weather for any city",
	Long: `A small weather lookup widget backed by OpenWeatherMap.

Search for a city to see its temperature, feels-like temperature, humidity,
wind speed and conditions. Results animate in, errors appear as toasts, and
the light/dark theme choice is remembered between runs.

If no command is specified, the interactive widget launches automatically.`,
	Version:      version.Version,
	SilenceUsage: true,
	RunE:         runWidget,
}

func init() {
	// Assigned here rather than in the literal to avoid an initialization
	// cycle: setup refers to rootCmd.
	rootCmd.PersistentPreRunE = setup

	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("weather %s\n", version.Full())
	},
}
