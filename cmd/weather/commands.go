package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sravani-1304/weather-application/internal/config"
	"github.com/sravani-1304/weather-application/internal/discovery"
	"github.com/sravani-1304/weather-application/internal/logging"
	"github.com/sravani-1304/weather-application/internal/server"
	"github.com/sravani-1304/weather-application/internal/tui"
	"github.com/sravani-1304/weather-application/internal/ui"
	"github.com/sravani-1304/weather-application/internal/version"
	"github.com/sravani-1304/weather-application/internal/weather"
	"github.com/sravani-1304/weather-application/internal/widget"
)

// Global flags
var (
	apiKey     string
	baseURL    string
	configPath string
	logLevel   string
	timeout    time.Duration
)

// Command flags
var (
	outputFormat string
	listenAddr   string
	advertise    bool
	instanceName string
	scanTimeout  time.Duration
)

// settings is resolved once per invocation by setup
var settings config.Settings

// errReported marks a failure whose details were already printed
var errReported = errors.New("lookup failed")

func init() {
	rootCmd.SilenceErrors = true

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&apiKey, "api-key", "", "OpenWeatherMap API key (env: "+config.EnvAPIKey+")")
	pf.StringVar(&baseURL, "base-url", "", "Current-weather endpoint (env: "+config.EnvBaseURL+")")
	pf.StringVar(&configPath, "config", "", "Preferences file (default: user config dir)")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (env: "+config.EnvLogLevel+")")
	pf.DurationVar(&timeout, "timeout", 0, "Provider request timeout, e.g. 10s (env: "+config.EnvTimeout+")")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(schemaCmd)
}

// setup loads settings, applies flag overrides and starts logging
func setup(cmd *cobra.Command, args []string) error {
	s, err := config.LoadSettings()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		s.APIKey = apiKey
	}
	if flags.Changed("base-url") {
		s.BaseURL = baseURL
	}
	if flags.Changed("log-level") {
		s.LogLevel = logLevel
	}
	if flags.Changed("timeout") {
		if timeout < 0 {
			return fmt.Errorf("--timeout must not be negative")
		}
		s.Timeout = timeout
	}
	settings = s

	// The interactive widget owns the terminal, so its logs go to a file.
	if cmd == rootCmd && s.LogLevel != "" && s.LogFile == "" {
		if dir, err := config.GetConfigDir(); err == nil {
			if err := os.MkdirAll(dir, 0700); err == nil {
				_ = os.Setenv(logging.LogFileEnvVar, filepath.Join(dir, "weather.log"))
			}
		}
	}

	if err := logging.Initialize(s.LogLevel); err != nil {
		return err
	}

	logging.Debug("Settings resolved",
		zap.String("command", cmd.Name()),
		zap.String("base_url", s.BaseURL),
		zap.Bool("api_key_set", s.APIKey != ""),
		zap.Duration("timeout", s.Timeout),
	)
	return nil
}

func newClient() *weather.Client {
	if settings.APIKey == "" {
		logging.Warn("No API key configured; the provider will reject lookups",
			zap.String("env", config.EnvAPIKey),
		)
	}
	client := weather.NewClientWithURL(settings.BaseURL, settings.APIKey)
	client.SetTimeout(settings.Timeout)
	return client
}

// openPreferences opens the preference file, falling back to memory so a
// broken config location never blocks the widget.
func openPreferences() config.PreferenceStore {
	store, err := config.OpenFileStore(configPath)
	if err != nil {
		logging.Warn("Preferences unavailable, theme will not persist", zap.Error(err))
		return config.NewMemoryStore()
	}
	return store
}

// runWidget launches the interactive terminal widget
func runWidget(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	renderer := tui.NewChannelRenderer()
	controller := widget.NewController(newClient(), renderer,
		widget.WithPreferences(openPreferences()),
	)
	defer controller.Close()

	p := tea.NewProgram(tui.NewAppModel(ctx, controller, renderer), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("widget error: %w", err)
	}
	return nil
}

// getCmd performs a single lookup
var getCmd = &cobra.Command{
	Use:   "get <city...>",
	Short: "Look up the current weather once",
	Long: `Look up the current weather for a city and print it.

Multiple arguments are joined with spaces, so quoting is optional.`,
	Example: `  # Styled output
  weather get Paris

  # City names with spaces
  weather get New York

  # JSON output for scripting
  weather get London --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")
}

// errorOutput is the JSON form of a failed lookup
type errorOutput struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func runGet(cmd *cobra.Command, args []string) error {
	printer := ui.NewPrinter(cmd.OutOrStdout())

	q, err := weather.NewQuery(strings.Join(args, " "))
	if err != nil {
		return errors.New(weather.UserMessage(err))
	}

	reading, err := newClient().FetchWeather(cmd.Context(), q)

	if outputFormat == "json" {
		if err != nil {
			kind, _ := weather.KindOf(err)
			if perr := printer.PrintJSON(errorOutput{Kind: kind.String(), Message: weather.UserMessage(err)}); perr != nil {
				return perr
			}
			return errReported
		}
		return printer.PrintJSON(weather.NewReport(reading))
	}

	header := ui.NewHeader("Weather", "weather get "+q.String(),
		ui.Param{Key: "Location", Value: q.String()},
		ui.Param{Key: "Endpoint", Value: settings.BaseURL},
	)
	header.SetWidth(printer.Width())
	printer.Println(header.Render())

	if err != nil {
		printer.PrintError(err)
		return errReported
	}
	printer.PrintReading(reading)
	return nil
}

// serveCmd runs the browser widget server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the widget to browsers",
	Long: `Run an HTTP server exposing the widget over WebSocket (/ws) and a small
JSON API (/api/weather, /api/theme).

With --advertise the server announces itself on the local network via mDNS
so that 'weather discover' can find it.`,
	Example: `  # Listen on the default address
  weather serve

  # Custom address and LAN advertisement
  weather serve --listen :9000 --advertise --name kitchen`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "listen", "", "Listen address (env: "+config.EnvListen+", default :8080)")
	serveCmd.Flags().BoolVar(&advertise, "advertise", false, "Advertise the server via mDNS")
	serveCmd.Flags().StringVar(&instanceName, "name", "", "mDNS instance name (default: hostname)")
}

func runServe(cmd *cobra.Command, args []string) error {
	listen := settings.Listen
	if cmd.Flags().Changed("listen") {
		listen = listenAddr
	}

	srv, err := server.New(server.Config{
		Listen:      listen,
		Fetcher:     newClient(),
		Preferences: openPreferences(),
	})
	if err != nil {
		return err
	}

	ln, err := srv.Listen()
	if err != nil {
		return err
	}

	params := []ui.Param{
		{Key: "Listen", Value: ln.Addr().String()},
		{Key: "WebSocket", Value: "/ws"},
		{Key: "Version", Value: version.Version},
	}

	if advertise {
		name := instanceName
		if name == "" {
			name, _ = os.Hostname()
		}
		tcpAddr, ok := ln.Addr().(*net.TCPAddr)
		if !ok {
			_ = ln.Close()
			return fmt.Errorf("cannot advertise non-TCP address %s", ln.Addr())
		}
		adv, err := discovery.Advertise(name, tcpAddr.Port, version.Version)
		if err != nil {
			_ = ln.Close()
			return err
		}
		defer adv.Shutdown()
		params = append(params, ui.Param{Key: "mDNS", Value: name + "." + discovery.ServiceType})
	}

	printer := ui.NewPrinter(cmd.OutOrStdout())
	header := ui.NewHeader("Weather Widget Server", "weather serve", params...)
	header.SetWidth(printer.Width())
	printer.Println(header.Render())

	return srv.Serve(cmd.Context(), ln)
}

// discoverCmd lists widget servers on the LAN
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find widget servers on the local network",
	Long: `Browse mDNS for servers started with 'weather serve --advertise' and list
their WebSocket URLs.`,
	Example: `  # Scan for 5 seconds (default)
  weather discover

  # Longer scan
  weather discover --scan-timeout 15s`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().DurationVar(&scanTimeout, "scan-timeout", discovery.DefaultScanTimeout, "How long to wait for answers")
	discoverCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	printer := ui.NewPrinter(cmd.OutOrStdout())

	scanner := discovery.NewScanner()
	scanner.Timeout = scanTimeout

	if outputFormat != "json" {
		printer.Println(fmt.Sprintf("Scanning for widget servers (timeout: %s)...", scanTimeout))
		printer.Newline()
	}

	instances, err := scanner.Scan(cmd.Context())
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if outputFormat == "json" {
		return printer.PrintJSON(instances)
	}

	if len(instances) == 0 {
		printer.Println("No widget servers found.")
		printer.Println("\nTroubleshooting:")
		printer.Println("  - Start a server with 'weather serve --advertise'")
		printer.Println("  - Make sure both machines are on the same network")
		printer.Println("  - Check that the firewall allows mDNS (UDP 5353)")
		printer.Println("  - Try increasing --scan-timeout")
		return nil
	}

	printer.Println(fmt.Sprintf("Found %d server(s):", len(instances)))
	printer.Newline()
	for i, inst := range instances {
		printer.Println(fmt.Sprintf("%d. %s", i+1, inst.Name))
		printer.Println(fmt.Sprintf("   WebSocket: %s", inst.WebSocketURL()))
		printer.Println(fmt.Sprintf("   API:       %s/api/weather", inst.BaseURL()))
		if inst.Version != "" {
			printer.Println(fmt.Sprintf("   Version:   %s", inst.Version))
		}
		printer.Newline()
	}
	return nil
}

// themeCmd manages the persisted theme
var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or toggle the saved colour theme",
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the saved theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.OpenFileStore(configPath)
		if err != nil {
			return err
		}
		v, _ := store.Get(config.KeyTheme)
		fmt.Fprintln(cmd.OutOrStdout(), widget.ParseTheme(v))
		return nil
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between light and dark and save the choice",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := config.OpenFileStore(configPath)
		if err != nil {
			return err
		}
		v, _ := store.Get(config.KeyTheme)
		next := widget.ParseTheme(v).Toggled()
		if err := store.Set(config.KeyTheme, string(next)); err != nil {
			return fmt.Errorf("failed to save theme: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), next)
		return nil
	},
}

func init() {
	themeCmd.AddCommand(themeShowCmd)
	themeCmd.AddCommand(themeToggleCmd)
}

// schemaCmd prints the WebSocket envelope schemas
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the WebSocket protocol",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := server.SchemaJSON()
		if err != nil {
			return fmt.Errorf("failed to build schema: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}
