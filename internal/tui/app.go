package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sravani-1304/weather-application/internal/weather"
	"github.com/sravani-1304/weather-application/internal/widget"
)

// Messages for async controller operations
type opDoneMsg struct {
	op  string
	err error
}

type revealStepMsg struct {
	seq  int
	step widget.RevealStep
}

// keyMap defines the widget key bindings
type keyMap struct {
	Search key.Binding
	Retry  key.Binding
	Theme  key.Binding
	Close  key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Retry, k.Theme, k.Close, k.Clear, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Retry, k.Clear},
		{k.Theme, k.Close, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Retry: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "retry"),
			key.WithDisabled(),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "theme"),
		),
		Close: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "close"),
			key.WithDisabled(),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// AppModel is the terminal widget
type AppModel struct {
	ctx        context.Context
	controller *widget.Controller
	renderer   *ChannelRenderer

	// What the controller last rendered
	State widget.State
	Theme widget.Theme
	Toast *widget.Toast

	// Results card fields as revealed so far
	Display   map[widget.Field]string
	revealSeq int

	// UI state
	Width   int
	Height  int
	Input   textinput.Model
	Spinner spinner.Model
	Help    help.Model
	Keys    keyMap
}

// NewAppModel creates the widget model. renderer must be the Renderer the
// controller was created with.
func NewAppModel(ctx context.Context, controller *widget.Controller, renderer *ChannelRenderer) AppModel {
	input := textinput.New()
	input.Placeholder = "Search for a city..."
	input.Prompt = "🔍 "
	input.CharLimit = 100
	input.Width = 40
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot

	return AppModel{
		ctx:        ctx,
		controller: controller,
		renderer:   renderer,
		State:      widget.State{Kind: widget.StatePlaceholder},
		Theme:      widget.ThemeLight,
		Display:    make(map[widget.Field]string),
		Input:      input,
		Spinner:    s,
		Help:       help.New(),
		Keys:       newKeyMap(),
	}
}

// Init starts the controller and begins listening for its output
func (m AppModel) Init() tea.Cmd {
	controller := m.controller
	return tea.Batch(
		textinput.Blink,
		m.renderer.Listen(),
		func() tea.Msg {
			controller.Start()
			return nil
		},
	)
}

// Update handles all messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateMsg:
		m.State = msg.state
		m.syncKeys()
		cmds := []tea.Cmd{m.renderer.Listen()}
		if m.State.Kind == widget.StateLoading {
			cmds = append(cmds, m.Spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case readingMsg:
		m.State = widget.State{Kind: widget.StateResults, Reading: msg.reading}
		m.syncKeys()
		m.revealSeq++
		cmds := []tea.Cmd{m.renderer.Listen()}
		for _, step := range msg.plan.Steps {
			cmds = append(cmds, revealCmd(m.revealSeq, step))
		}
		return m, tea.Batch(cmds...)

	case revealStepMsg:
		if msg.seq == m.revealSeq {
			m.Display[msg.step.Field] = msg.step.Value
		}
		return m, nil

	case toastMsg:
		t := msg.toast
		m.Toast = &t
		m.syncKeys()
		return m, m.renderer.Listen()

	case toastHiddenMsg:
		if m.Toast != nil && m.Toast.ID == msg.id {
			m.Toast = nil
		}
		m.syncKeys()
		return m, m.renderer.Listen()

	case themeMsg:
		m.Theme = msg.theme
		return m, m.renderer.Listen()

	case opDoneMsg:
		// Outcomes are rendered by the controller; nothing else to do.
		return m, nil

	case spinner.TickMsg:
		if m.State.Kind != widget.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// handleKey handles keyboard input
func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.Keys.Search):
		return m, m.submitCmd(m.Input.Value())

	case key.Matches(msg, m.Keys.Retry):
		return m, m.retryCmd()

	case key.Matches(msg, m.Keys.Theme):
		return m, m.toggleThemeCmd()

	case key.Matches(msg, m.Keys.Close):
		return m, m.dismissToastCmd()

	case key.Matches(msg, m.Keys.Clear):
		m.Input.SetValue("")
		return m, nil
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

// syncKeys enables the bindings that apply to the current state
func (m *AppModel) syncKeys() {
	m.Keys.Retry.SetEnabled(m.State.Kind == widget.StateError)
	m.Keys.Close.SetEnabled(m.Toast != nil)
}

func (m AppModel) submitCmd(raw string) tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		return opDoneMsg{op: "search", err: controller.Submit(ctx, raw)}
	}
}

func (m AppModel) retryCmd() tea.Cmd {
	ctx, controller := m.ctx, m.controller
	return func() tea.Msg {
		return opDoneMsg{op: "retry", err: controller.Retry(ctx)}
	}
}

func (m AppModel) toggleThemeCmd() tea.Cmd {
	controller := m.controller
	return func() tea.Msg {
		controller.ToggleTheme()
		return opDoneMsg{op: "toggle_theme"}
	}
}

func (m AppModel) dismissToastCmd() tea.Cmd {
	controller := m.controller
	return func() tea.Msg {
		controller.DismissToast()
		return opDoneMsg{op: "dismiss_toast"}
	}
}

func revealCmd(seq int, step widget.RevealStep) tea.Cmd {
	if step.At <= 0 {
		return func() tea.Msg { return revealStepMsg{seq: seq, step: step} }
	}
	return tea.Tick(step.At, func(time.Time) tea.Msg {
		return revealStepMsg{seq: seq, step: step}
	})
}

// View renders the widget
func (m AppModel) View() string {
	palette := PaletteFor(m.Theme)
	styles := NewStyles(palette)
	m.Spinner.Style = styles.Spinner

	var b strings.Builder
	b.WriteString(styles.Title.Render("Weather"))
	b.WriteString("\n")
	b.WriteString(m.Input.View())
	b.WriteString("\n\n")

	switch m.State.Kind {
	case widget.StatePlaceholder:
		b.WriteString(styles.Subtitle.Render("Search for a city to see the current weather."))
	case widget.StateLoading:
		b.WriteString(fmt.Sprintf("%s Fetching weather...", m.Spinner.View()))
	case widget.StateError:
		b.WriteString(styles.Error.Render(m.State.Title + "\n\n" + m.State.Message))
	case widget.StateResults:
		b.WriteString(m.renderResults(palette, styles))
	}

	if m.Toast != nil {
		b.WriteString("\n\n")
		toastStyle := styles.Toast
		if m.Toast.Level == widget.ToastInfo {
			toastStyle = styles.Info
		}
		b.WriteString(toastStyle.Render(m.Toast.Message + "  ×"))
	}

	return RenderApplicationContainer(palette, b.String(), m.Help.View(m.Keys), m.Width, m.Height)
}

// renderResults renders the results card from the revealed fields
func (m AppModel) renderResults(p Palette, s Styles) string {
	bg := weather.Background(m.Display[widget.FieldBackground])
	accent := AccentFor(bg, p)

	location := m.Display[widget.FieldLocation]
	if country := m.Display[widget.FieldCountry]; country != "" {
		location += ", " + country
	}

	temp := m.Display[widget.FieldTemperature]
	if temp == "" {
		temp = "0"
	}

	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, s.Label.Render(label), s.Value.Render(value))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(p.Text).Render(location),
		lipgloss.NewStyle().Bold(true).Foreground(accent).Render(temp+"°C"),
		s.Subtitle.Render(m.Display[widget.FieldFeelsLike]),
		s.Subtitle.Render(m.Display[widget.FieldCondition]),
		"",
		row("Humidity", m.Display[widget.FieldHumidity]),
		row("Wind", m.Display[widget.FieldWind]),
		row("Icon", m.Display[widget.FieldIcon]),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(CalculateCardWidth(m.Width)).
		Render(body)
}
