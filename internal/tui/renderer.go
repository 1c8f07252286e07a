package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sravani-1304/weather-application/internal/weather"
	"github.com/sravani-1304/weather-application/internal/widget"
)

// Messages produced by the renderer
type stateMsg struct{ state widget.State }
type readingMsg struct {
	reading *weather.Reading
	plan    widget.Reveal
}
type toastMsg struct{ toast widget.Toast }
type toastHiddenMsg struct{ id uint64 }
type themeMsg struct{ theme widget.Theme }

// rendererBuffer bounds how far the controller can run ahead of Update.
const rendererBuffer = 64

// ChannelRenderer implements widget.Renderer by queueing tea messages.
type ChannelRenderer struct {
	ch chan tea.Msg
}

// NewChannelRenderer creates a renderer with a buffered queue.
func NewChannelRenderer() *ChannelRenderer {
	return &ChannelRenderer{ch: make(chan tea.Msg, rendererBuffer)}
}

func (r *ChannelRenderer) RenderState(s widget.State) { r.ch <- stateMsg{state: s} }

func (r *ChannelRenderer) RenderReading(reading *weather.Reading, plan widget.Reveal) {
	r.ch <- readingMsg{reading: reading, plan: plan}
}

func (r *ChannelRenderer) ShowToast(t widget.Toast) { r.ch <- toastMsg{toast: t} }

func (r *ChannelRenderer) HideToast(id uint64) { r.ch <- toastHiddenMsg{id: id} }

func (r *ChannelRenderer) ApplyTheme(t widget.Theme) { r.ch <- themeMsg{theme: t} }

// Listen waits for the next renderer message. The model re-issues it after
// handling each one.
func (r *ChannelRenderer) Listen() tea.Cmd {
	return func() tea.Msg {
		return <-r.ch
	}
}
