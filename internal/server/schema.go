package server

import (
	"reflect"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"

	"github.com/sravani-1304/weather-application/internal/weather"
	"github.com/sravani-1304/weather-application/internal/widget"
)

// Command actions accepted on /ws.
const (
	ActionSearch       = "search"
	ActionRetry        = "retry"
	ActionToggleTheme  = "toggle_theme"
	ActionDismissToast = "dismiss_toast"
)

// Event types sent on /ws.
const (
	EventState          = "state"
	EventReading        = "reading"
	EventToast          = "toast"
	EventToastDismissed = "toast_dismissed"
	EventTheme          = "theme"
	EventError          = "error"
)

// Command is a client-to-server message.
type Command struct {
	Action string `json:"action" jsonschema:"enum=search,enum=retry,enum=toggle_theme,enum=dismiss_toast"`
	Query  string `json:"query,omitempty" jsonschema:"description=City name, required for search"`
}

// Event is a server-to-client message. Only the fields relevant to Type
// are set.
type Event struct {
	Type    string           `json:"type" jsonschema:"enum=state,enum=reading,enum=toast,enum=toast_dismissed,enum=theme,enum=error"`
	State   *widget.State    `json:"state,omitempty"`
	Reading *weather.Reading `json:"reading,omitempty"`
	Reveal  *widget.Reveal   `json:"reveal,omitempty"`
	Toast   *widget.Toast    `json:"toast,omitempty"`
	ToastID uint64           `json:"toast_id,omitempty"`
	Theme   widget.Theme     `json:"theme,omitempty"`
	Error   *ErrorBody       `json:"error,omitempty"`
}

// ErrorBody is the error payload of the JSON API and of error events.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Schemas holds the JSON Schemas of the WebSocket envelopes.
type Schemas struct {
	Command *jsonschema.Schema `json:"command"`
	Event   *jsonschema.Schema `json:"event"`
}

// Schema reflects the command and event envelopes.
func Schema() Schemas {
	ref := jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
		Mapper:         mapType,
	}
	return Schemas{
		Command: ref.Reflect(&Command{}),
		Event:   ref.Reflect(&Event{}),
	}
}

// SchemaJSON returns Schema as indented JSON.
func SchemaJSON() ([]byte, error) {
	return json.MarshalIndent(Schema(), "", "  ")
}

// mapType describes types whose JSON form differs from their Go kind.
func mapType(t reflect.Type) *jsonschema.Schema {
	if t == reflect.TypeOf(widget.StateKind(0)) {
		return &jsonschema.Schema{
			Type: "string",
			Enum: []any{
				widget.StatePlaceholder.String(),
				widget.StateLoading.String(),
				widget.StateError.String(),
				widget.StateResults.String(),
			},
		}
	}
	return nil
}
