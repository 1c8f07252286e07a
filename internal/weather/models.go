package weather

import (
	"math"

	"github.com/sravani-1304/weather-application/internal/urls"
)

// kmhPerMS converts metres per second to kilometres per hour.
const kmhPerMS = 3.6

// currentResponse is the subset of the provider's current-weather payload
// the widget consumes. Blocks are pointers so that absence can be detected.
type currentResponse struct {
	Name    string           `json:"name"`
	Sys     *sysBlock        `json:"sys"`
	Weather []conditionBlock `json:"weather"`
	Main    *mainBlock       `json:"main"`
	Wind    *windBlock       `json:"wind"`
}

type sysBlock struct {
	Country string `json:"country"`
}

type conditionBlock struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type mainBlock struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  int     `json:"humidity"`
}

type windBlock struct {
	Speed float64 `json:"speed"`
}

// errorResponse is the provider's error body, e.g. {"cod":"404","message":"city not found"}
type errorResponse struct {
	Message string `json:"message"`
}

// Reading is the normalized result of a successful lookup.
type Reading struct {
	Location    string  `json:"location"`
	Country     string  `json:"country"`
	Temperature float64 `json:"temperature"` // °C
	FeelsLike   float64 `json:"feels_like"`  // °C
	Humidity    int     `json:"humidity"`    // percent
	WindSpeed   float64 `json:"wind_speed"`  // m/s as reported
	Condition   string  `json:"condition"`   // category, e.g. "Clouds"
	Description string  `json:"description"` // e.g. "few clouds"
	Icon        string  `json:"icon"`        // provider icon id, e.g. "02d"
}

// validate reports whether the payload carries the minimum required fields.
func (r *currentResponse) validate() error {
	if r.Main == nil {
		return NewMalformedError("response has no main block", nil)
	}
	if len(r.Weather) == 0 {
		return NewMalformedError("response has no weather conditions", nil)
	}
	return nil
}

// toReading maps a validated payload. Optional blocks default to zero values.
func (r *currentResponse) toReading() *Reading {
	cond := r.Weather[0]
	reading := &Reading{
		Location:    r.Name,
		Temperature: r.Main.Temp,
		FeelsLike:   r.Main.FeelsLike,
		Humidity:    r.Main.Humidity,
		Condition:   cond.Main,
		Description: cond.Description,
		Icon:        cond.Icon,
	}
	if r.Sys != nil {
		reading.Country = r.Sys.Country
	}
	if r.Wind != nil {
		reading.WindSpeed = r.Wind.Speed
	}
	return reading
}

// DisplayTemperature returns the temperature rounded for display.
func (r *Reading) DisplayTemperature() int {
	return RoundHalfUp(r.Temperature)
}

// DisplayFeelsLike returns the feels-like temperature rounded for display.
func (r *Reading) DisplayFeelsLike() int {
	return RoundHalfUp(r.FeelsLike)
}

// WindSpeedKMH converts the wind speed to km/h and rounds it.
func (r *Reading) WindSpeedKMH() int {
	return RoundHalfUp(r.WindSpeed * kmhPerMS)
}

// IconURL returns the icon image URL for the condition.
func (r *Reading) IconURL() string {
	return urls.IconURL(r.Icon)
}

// Background returns the background category for the condition.
func (r *Reading) Background() Background {
	return BackgroundFor(r.Condition)
}

// Report is a reading plus the display values derived from it. It is the
// JSON shape shared by the HTTP API and the CLI.
type Report struct {
	*Reading
	DisplayTemperature int        `json:"display_temperature"`
	DisplayFeelsLike   int        `json:"display_feels_like"`
	WindSpeedKMH       int        `json:"wind_speed_kmh"`
	IconURL            string     `json:"icon_url"`
	Background         Background `json:"background"`
}

// NewReport derives the display values for r.
func NewReport(r *Reading) Report {
	return Report{
		Reading:            r,
		DisplayTemperature: r.DisplayTemperature(),
		DisplayFeelsLike:   r.DisplayFeelsLike(),
		WindSpeedKMH:       r.WindSpeedKMH(),
		IconURL:            r.IconURL(),
		Background:         r.Background(),
	}
}

// RoundHalfUp rounds to the nearest integer with halves going towards
// positive infinity, so -2.5 becomes -2 and 2.5 becomes 3. NaN rounds to
// zero and results are clamped to ±MaxRounded.
func RoundHalfUp(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v >= MaxRounded:
		return MaxRounded
	case v <= -MaxRounded:
		return -MaxRounded
	}
	return int(math.Floor(v + 0.5))
}

// MaxRounded bounds RoundHalfUp so the result fits any int width.
const MaxRounded = math.MaxInt32
