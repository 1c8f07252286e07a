package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/sravani-1304/weather-application/internal/tui"
	"github.com/sravani-1304/weather-application/internal/urls"
	"github.com/sravani-1304/weather-application/internal/weather"
	"github.com/sravani-1304/weather-application/internal/widget"
)

// Printer provides methods for printing UI components to a writer.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// SetWidth overrides the detected terminal width
func (p *Printer) SetWidth(width int) {
	p.width = width
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintJSON writes v as indented JSON
func (p *Printer) PrintJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	p.Println(string(data))
	return nil
}

// PrintReading writes the reading box
func (p *Printer) PrintReading(r *weather.Reading) {
	p.Println(RenderReadingBox(r, p.width))
}

// PrintError writes the error box for a lookup failure
func (p *Printer) PrintError(err error) {
	p.Println(RenderErrorBox(err, p.width))
}

// RenderReadingBox renders a reading with every reveal step applied at once.
func RenderReadingBox(r *weather.Reading, width int) string {
	final := widget.PlanReveal(0, r).Final()

	title := r.Location
	if r.Country != "" {
		title += ", " + r.Country
	}

	res := NewSuccessResult(title,
		Detail{"Temperature", final[widget.FieldTemperature] + "°C"},
		Detail{"Feels like", fmt.Sprintf("%d°C", r.DisplayFeelsLike())},
		Detail{"Condition", final[widget.FieldCondition]},
		Detail{"Humidity", final[widget.FieldHumidity]},
		Detail{"Wind", final[widget.FieldWind]},
		Detail{"Background", final[widget.FieldBackground]},
	)
	if icon := final[widget.FieldIcon]; icon != "" {
		res.AddDetail("Icon", icon)
	}
	res.Accent = tui.AccentFor(r.Background(), tui.DarkPalette)
	return res.SetWidth(width).Render()
}

// RenderErrorBox renders the user-facing message for err with tips.
func RenderErrorBox(err error, width int) string {
	title := "Weather lookup failed"
	if weather.IsEmptyInput(err) {
		title = weather.EmptyQueryTitle
	}
	return NewFailureResult(title, weather.UserMessage(err), Troubleshooting(err)).
		SetWidth(width).
		Render()
}

// Troubleshooting returns tips for a lookup failure.
func Troubleshooting(err error) []string {
	if weather.IsEmptyInput(err) {
		return []string{"Pass a city name, e.g. weather get London"}
	}

	kind, ok := weather.KindOf(err)
	if !ok {
		return nil
	}

	switch kind {
	case weather.KindUnauthorized:
		return []string{
			"Set WEATHER_API_KEY (or add it to a .env file)",
			"Or pass --api-key on the command line",
			"Get a key at " + urls.APIKeySignup,
		}
	case weather.KindNotFound:
		return []string{
			"Check the spelling of the city",
			`Add a country code, e.g. "Paris,FR"`,
		}
	case weather.KindRateLimited:
		return []string{"Free API keys allow about 60 calls per minute"}
	case weather.KindNetwork:
		return []string{
			"Check your internet connection",
			"Use --timeout to allow slower networks",
		}
	default:
		return nil
	}
}
