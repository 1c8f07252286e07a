package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sravani-1304/weather-application/internal/config"
	"github.com/sravani-1304/weather-application/internal/weather"
	"github.com/sravani-1304/weather-application/internal/widget"
)

type stubFetcher struct {
	reading *weather.Reading
	err     error
}

func (s stubFetcher) FetchWeather(ctx context.Context, q weather.Query) (*weather.Reading, error) {
	return s.reading, s.err
}

func newTestModel(f widget.Fetcher) (AppModel, *widget.Controller, *ChannelRenderer) {
	renderer := NewChannelRenderer()
	controller := widget.NewController(f, renderer, widget.WithPreferences(config.NewMemoryStore()))
	return NewAppModel(context.Background(), controller, renderer), controller, renderer
}

// drain feeds every queued renderer message through Update.
func drain(t *testing.T, m AppModel, r *ChannelRenderer) AppModel {
	t.Helper()
	for {
		select {
		case msg := <-r.ch:
			updated, _ := m.Update(msg)
			m = updated.(AppModel)
		default:
			return m
		}
	}
}

func parisReading() *weather.Reading {
	return &weather.Reading{
		Location: "Paris", Country: "FR", Temperature: 18.4, FeelsLike: 17.9,
		Humidity: 64, WindSpeed: 5, Condition: "Clouds", Description: "few clouds", Icon: "02d",
	}
}

func TestStartRendersPlaceholderAndTheme(t *testing.T) {
	m, controller, r := newTestModel(stubFetcher{})
	controller.Start()
	m = drain(t, m, r)

	if m.State.Kind != widget.StatePlaceholder {
		t.Errorf("State.Kind = %v, want placeholder", m.State.Kind)
	}
	if m.Theme != widget.ThemeLight {
		t.Errorf("Theme = %v, want light", m.Theme)
	}
	if !strings.Contains(m.View(), "Search for a city") {
		t.Error("placeholder view should invite a search")
	}
}

func TestEnterSubmitsSearch(t *testing.T) {
	m, _, r := newTestModel(stubFetcher{reading: parisReading()})
	m.Input.SetValue("Paris")

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(AppModel)
	if cmd == nil {
		t.Fatal("enter should return a search command")
	}

	msg := cmd()
	done, ok := msg.(opDoneMsg)
	if !ok {
		t.Fatalf("command returned %T, want opDoneMsg", msg)
	}
	if done.err != nil {
		t.Fatalf("search error = %v", done.err)
	}

	m = drain(t, m, r)
	if m.State.Kind != widget.StateResults {
		t.Fatalf("State.Kind = %v, want results", m.State.Kind)
	}
	if m.State.Reading.Location != "Paris" {
		t.Errorf("Reading.Location = %s, want Paris", m.State.Reading.Location)
	}
}

func TestEmptySubmitShowsErrorAndEnablesRetry(t *testing.T) {
	m, _, r := newTestModel(stubFetcher{})

	if m.Keys.Retry.Enabled() {
		t.Error("retry should start disabled")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if done := cmd().(opDoneMsg); !weather.IsEmptyInput(done.err) {
		t.Errorf("search error = %v, want empty input", done.err)
	}

	m = drain(t, m, r)
	if m.State.Kind != widget.StateError {
		t.Fatalf("State.Kind = %v, want error", m.State.Kind)
	}
	if !m.Keys.Retry.Enabled() {
		t.Error("retry should be enabled in the error state")
	}

	view := m.View()
	if !strings.Contains(view, "Empty search query") || !strings.Contains(view, "Please enter a city name") {
		t.Error("error view should show the title and message")
	}
}

func TestFailureShowsToast(t *testing.T) {
	m, _, r := newTestModel(stubFetcher{err: weather.NewAPIError(429, "Paris", "")})
	m.Input.SetValue("Paris")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	cmd()
	m = drain(t, m, r)

	if m.State.Kind != widget.StatePlaceholder {
		t.Errorf("State.Kind = %v, want placeholder", m.State.Kind)
	}
	if m.Toast == nil || m.Toast.Message != weather.MessageRateLimited {
		t.Fatalf("Toast = %+v, want rate limited message", m.Toast)
	}
	if !m.Keys.Close.Enabled() {
		t.Error("close should be enabled while a toast is visible")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	if cmd == nil {
		t.Fatal("ctrl+x should return a dismiss command")
	}
	cmd()
	m = drain(t, m, r)
	if m.Toast != nil {
		t.Error("toast should be closed")
	}
}

func TestToggleTheme(t *testing.T) {
	m, _, r := newTestModel(stubFetcher{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	cmd()
	m = drain(t, m, r)

	if m.Theme != widget.ThemeDark {
		t.Errorf("Theme = %v, want dark", m.Theme)
	}
}

func TestRevealSteps(t *testing.T) {
	m, _, _ := newTestModel(stubFetcher{})
	plan := widget.PlanReveal(0, parisReading())

	updated, cmd := m.Update(readingMsg{reading: parisReading(), plan: plan})
	m = updated.(AppModel)
	if cmd == nil {
		t.Fatal("reading should schedule reveal steps")
	}

	for _, step := range plan.Steps {
		updated, _ = m.Update(revealStepMsg{seq: m.revealSeq, step: step})
		m = updated.(AppModel)
	}

	if got := m.Display[widget.FieldTemperature]; got != "18" {
		t.Errorf("temperature = %s, want 18", got)
	}
	if got := m.Display[widget.FieldWind]; got != "18 km/h" {
		t.Errorf("wind = %s, want 18 km/h", got)
	}

	view := m.View()
	for _, want := range []string{"Paris, FR", "18°C", "64%", "few clouds"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestStaleRevealStepIgnored(t *testing.T) {
	m, _, _ := newTestModel(stubFetcher{})

	updated, _ := m.Update(readingMsg{reading: parisReading(), plan: widget.PlanReveal(0, parisReading())})
	m = updated.(AppModel)

	stale := widget.RevealStep{At: time.Second, Field: widget.FieldLocation, Value: "London"}
	updated, _ = m.Update(revealStepMsg{seq: m.revealSeq - 1, step: stale})
	m = updated.(AppModel)

	if got := m.Display[widget.FieldLocation]; got == "London" {
		t.Error("a step from a superseded reveal must be ignored")
	}
}

func TestClearInput(t *testing.T) {
	m, _, _ := newTestModel(stubFetcher{})
	m.Input.SetValue("Paris")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlL})
	m = updated.(AppModel)

	if m.Input.Value() != "" {
		t.Errorf("Input = %q, want empty", m.Input.Value())
	}
}

func TestRetryDisabledOutsideError(t *testing.T) {
	m, _, _ := newTestModel(stubFetcher{})

	if key.Matches(tea.KeyMsg{Type: tea.KeyCtrlR}, m.Keys.Retry) {
		t.Error("ctrl+r should not match retry outside the error state")
	}

	updated, _ := m.Update(stateMsg{state: widget.State{Kind: widget.StateError, Title: "t", Message: "m"}})
	m = updated.(AppModel)
	if !key.Matches(tea.KeyMsg{Type: tea.KeyCtrlR}, m.Keys.Retry) {
		t.Error("ctrl+r should match retry in the error state")
	}
}

func TestAccentFor(t *testing.T) {
	if AccentFor(weather.BackgroundDefault, DarkPalette) != DarkPalette.Primary {
		t.Error("default background should use the palette primary colour")
	}
	if AccentFor(weather.BackgroundRain, LightPalette) == LightPalette.Primary {
		t.Error("rain should have its own accent")
	}
}
