// Package tui implements the terminal rendition of the weather widget.
//
// The widget is a single full-screen Bubble Tea program. It follows the Elm
// architecture: AppModel holds what is on screen, Update reacts to messages
// and View draws it inside a bordered application container.
//
// # Architecture
//
// The widget.Controller owns the state machine. It renders into the model
// through a ChannelRenderer: every Renderer call becomes a tea.Msg on a
// buffered channel that the model listens to. Controller operations
// (search, retry, theme toggle, toast dismissal) run inside tea.Cmds so the
// Update loop never blocks on a network call or on the controller lock.
//
// # Framework Components
//
//   - bubbles/textinput: search field (Enter submits)
//   - bubbles/spinner: loading indicator
//   - bubbles/help + bubbles/key: context-sensitive key help
//   - lipgloss: styling, light and dark palettes, background accents
//
// # Usage Example
//
//	renderer := tui.NewChannelRenderer()
//	controller := widget.NewController(client, renderer, widget.WithPreferences(store))
//	app := tui.NewAppModel(ctx, controller, renderer)
//	program := tea.NewProgram(app, tea.WithAltScreen())
//
//	if _, err := program.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Key Bindings
//
//	enter   search
//	ctrl+r  retry (error state only)
//	ctrl+t  toggle light/dark theme
//	ctrl+x  close the notification
//	ctrl+l  clear the search field
//	esc     quit
//
// Results are revealed progressively: the background accent changes first,
// the fields follow after a short delay, and the temperature counts towards
// its new value one degree per tick.
package tui
