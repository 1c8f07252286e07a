package widget

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/sravani-1304/weather-application/internal/weather"
)

// Reveal timings.
const (
	BackgroundDelay time.Duration = 0
	FieldsDelay     = 300 * time.Millisecond
	TextSwapDelay   = 150 * time.Millisecond
	HumidityDelay   = 100 * time.Millisecond
	WindDelay       = 200 * time.Millisecond
	TemperatureTick = 50 * time.Millisecond
)

// MaxCountSteps caps the temperature count. Larger jumps show the target
// value on the first tick instead.
const MaxCountSteps = 200

// Field names a displayed element of the results card.
type Field string

const (
	FieldBackground  Field = "background"
	FieldLocation    Field = "location"
	FieldCountry     Field = "country"
	FieldIcon        Field = "icon"
	FieldTemperature Field = "temperature"
	FieldFeelsLike   Field = "feels_like"
	FieldCondition   Field = "condition"
	FieldHumidity    Field = "humidity"
	FieldWind        Field = "wind"
)

// RevealStep sets Field to Value at offset At from the start of the reveal.
type RevealStep struct {
	At    time.Duration `json:"at_ms"`
	Field Field         `json:"field"`
	Value string        `json:"value"`
}

// MarshalJSON encodes At in whole milliseconds.
func (s RevealStep) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		AtMS  int64  `json:"at_ms"`
		Field Field  `json:"field"`
		Value string `json:"value"`
	}{s.At.Milliseconds(), s.Field, s.Value})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (s *RevealStep) UnmarshalJSON(data []byte) error {
	var wire struct {
		AtMS  int64  `json:"at_ms"`
		Field Field  `json:"field"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	s.At = time.Duration(wire.AtMS) * time.Millisecond
	s.Field = wire.Field
	s.Value = wire.Value
	return nil
}

// Reveal is the playback schedule for a new reading.
type Reveal struct {
	Background weather.Background `json:"background"`
	From       int                `json:"from"` // previously displayed temperature
	To         int                `json:"to"`   // rounded target temperature
	Steps      []RevealStep       `json:"steps"`
}

// Duration returns the offset of the last step.
func (r Reveal) Duration() time.Duration {
	if len(r.Steps) == 0 {
		return 0
	}
	return r.Steps[len(r.Steps)-1].At
}

// Final returns the value each field holds once the reveal has completed.
func (r Reveal) Final() map[Field]string {
	out := make(map[Field]string, len(r.Steps))
	for _, s := range r.Steps {
		out[s.Field] = s.Value
	}
	return out
}

// FeelsLikeText formats the feels-like line.
func FeelsLikeText(r *weather.Reading) string {
	return fmt.Sprintf("Feels like %d°C", r.DisplayFeelsLike())
}

// HumidityText formats the humidity value.
func HumidityText(r *weather.Reading) string {
	return fmt.Sprintf("%d%%", r.Humidity)
}

// WindText formats the wind speed.
func WindText(r *weather.Reading) string {
	return fmt.Sprintf("%d km/h", r.WindSpeedKMH())
}

// PlanReveal builds the reveal schedule for r, counting the temperature from
// the previously displayed value from.
func PlanReveal(from int, r *weather.Reading) Reveal {
	to := r.DisplayTemperature()
	bg := r.Background()

	steps := []RevealStep{
		{At: BackgroundDelay, Field: FieldBackground, Value: string(bg)},
		{At: FieldsDelay, Field: FieldIcon, Value: r.IconURL()},
		{At: FieldsDelay + TextSwapDelay, Field: FieldLocation, Value: r.Location},
		{At: FieldsDelay + TextSwapDelay, Field: FieldCountry, Value: r.Country},
		{At: FieldsDelay + TextSwapDelay, Field: FieldFeelsLike, Value: FeelsLikeText(r)},
		{At: FieldsDelay + TextSwapDelay, Field: FieldCondition, Value: r.Description},
		{At: FieldsDelay + HumidityDelay + TextSwapDelay, Field: FieldHumidity, Value: HumidityText(r)},
		{At: FieldsDelay + WindDelay + TextSwapDelay, Field: FieldWind, Value: WindText(r)},
	}

	step := 1
	if to < from {
		step = -1
	}
	at := FieldsDelay
	start := from
	if dist := int64(to) - int64(from); dist > MaxCountSteps || dist < -MaxCountSteps {
		start = to - step
	}
	for v := start; v != to; {
		v += step
		at += TemperatureTick
		steps = append(steps, RevealStep{At: at, Field: FieldTemperature, Value: strconv.Itoa(v)})
	}
	if from == to {
		// Nothing to count; still show the value with the other fields.
		steps = append(steps, RevealStep{At: FieldsDelay, Field: FieldTemperature, Value: strconv.Itoa(to)})
	}

	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })

	return Reveal{Background: bg, From: from, To: to, Steps: steps}
}
