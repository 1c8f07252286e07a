package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sravani-1304/weather-application/internal/version"
	"github.com/sravani-1304/weather-application/internal/weather"
	"github.com/sravani-1304/weather-application/internal/widget"
)

// Application branding constants
const (
	AppName     = "WEATHER WIDGET"
	ProviderURL = "openweathermap.org"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 60
	MaxContentWidth  = 100
	DefaultHeight    = 24
)

// Palette is the set of colours for one theme.
type Palette struct {
	Primary lipgloss.Color
	Text    lipgloss.Color
	Subtle  lipgloss.Color
	Error   lipgloss.Color
	Border  lipgloss.Color
	Surface lipgloss.Color
}

var (
	LightPalette = Palette{
		Primary: lipgloss.Color("#4A6CF7"), // Blue
		Text:    lipgloss.Color("#1F2937"), // Near black
		Subtle:  lipgloss.Color("#6B7280"), // Gray
		Error:   lipgloss.Color("#DC2626"), // Red
		Border:  lipgloss.Color("#4A6CF7"),
		Surface: lipgloss.Color("#F3F4F6"),
	}

	DarkPalette = Palette{
		Primary: lipgloss.Color("#7D56F4"), // Purple
		Text:    lipgloss.Color("#FFFFFF"), // White
		Subtle:  lipgloss.Color("#626262"), // Gray
		Error:   lipgloss.Color("#FF5F5F"), // Red
		Border:  lipgloss.Color("#7D56F4"),
		Surface: lipgloss.Color("#1A1A1A"),
	}
)

// PaletteFor returns the palette of theme t.
func PaletteFor(t widget.Theme) Palette {
	if t.IsDark() {
		return DarkPalette
	}
	return LightPalette
}

// backgroundAccents maps the weather background category to the accent
// used for the results card border and temperature.
var backgroundAccents = map[weather.Background]lipgloss.Color{
	weather.BackgroundClear:        lipgloss.Color("#F5B700"), // Sun yellow
	weather.BackgroundClouds:       lipgloss.Color("#8FA3B8"), // Overcast
	weather.BackgroundRain:         lipgloss.Color("#3B82F6"), // Rain blue
	weather.BackgroundSnow:         lipgloss.Color("#E0F2FE"), // Ice
	weather.BackgroundThunderstorm: lipgloss.Color("#6D28D9"), // Storm violet
}

// AccentFor returns the accent colour for a background category, falling
// back to the palette's primary colour.
func AccentFor(bg weather.Background, p Palette) lipgloss.Color {
	if c, ok := backgroundAccents[bg]; ok {
		return c
	}
	return p.Primary
}

// Styles is the derived style set for one palette.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Help     lipgloss.Style
	Error    lipgloss.Style
	Toast    lipgloss.Style
	Info     lipgloss.Style
	Spinner  lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
}

// NewStyles derives the widget styles from p.
func NewStyles(p Palette) Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(p.Primary).
			Bold(true).
			Padding(1, 0),
		Subtitle: lipgloss.NewStyle().
			Foreground(p.Subtle).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(p.Subtle),
		Error: lipgloss.NewStyle().
			Foreground(p.Error).
			Bold(true).
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Error),
		Toast: lipgloss.NewStyle().
			Foreground(p.Error).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Error).
			Padding(0, 1),
		Info: lipgloss.NewStyle().
			Foreground(p.Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		Spinner: lipgloss.NewStyle().
			Foreground(p.Primary),
		Label: lipgloss.NewStyle().
			Foreground(p.Subtle).
			Width(12),
		Value: lipgloss.NewStyle().
			Foreground(p.Text).
			Bold(true),
	}
}

// RenderApplicationContainer wraps content with the application header and
// a help footer inside a bordered, full-terminal panel.
func RenderApplicationContainer(p Palette, content, footerText string, terminalWidth, terminalHeight int) string {
	if terminalWidth < MinTerminalWidth {
		terminalWidth = MinTerminalWidth
	}
	if terminalHeight <= 0 {
		terminalHeight = DefaultHeight
	}

	left := lipgloss.NewStyle().
		Foreground(p.Text).
		Bold(true).
		Render(AppName + " v" + AppVersion())
	right := lipgloss.NewStyle().
		Foreground(p.Subtle).
		Render(ProviderURL)
	header := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	headerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Bottom: "─"}).
		BorderForeground(p.Border).
		Width(terminalWidth-4).
		Padding(0, 1)

	footerStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.Border{Top: "─"}).
		BorderForeground(p.Border).
		Foreground(p.Subtle).
		Width(terminalWidth-4).
		Padding(0, 1)

	contentStyle := lipgloss.NewStyle().
		Width(terminalWidth-4).
		Padding(0, 1)

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		headerStyle.Render(header),
		contentStyle.Render(content),
		footerStyle.Render(footerText),
	)

	bordered := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(p.Border).
		Width(terminalWidth - 2).
		Height(terminalHeight - 2).
		AlignVertical(lipgloss.Top).
		Render(inner)

	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Left, lipgloss.Top, bordered)
}

// CalculateCardWidth returns the results card width for a terminal width.
func CalculateCardWidth(terminalWidth int) int {
	w := terminalWidth - 8
	if w < MinTerminalWidth-8 {
		w = MinTerminalWidth - 8
	}
	if w > MaxContentWidth {
		w = MaxContentWidth
	}
	return w
}
