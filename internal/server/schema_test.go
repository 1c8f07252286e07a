package server

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_Command(t *testing.T) {
	s := Schema().Command
	require.NotNil(t, s)

	action, ok := s.Properties.Get("action")
	require.True(t, ok, "command schema should describe action")
	assert.ElementsMatch(t,
		[]any{ActionSearch, ActionRetry, ActionToggleTheme, ActionDismissToast},
		action.Enum)

	_, ok = s.Properties.Get("query")
	assert.True(t, ok)
	assert.Contains(t, s.Required, "action")
	assert.NotContains(t, s.Required, "query")
}

func TestSchema_Event(t *testing.T) {
	s := Schema().Event
	require.NotNil(t, s)

	typ, ok := s.Properties.Get("type")
	require.True(t, ok)
	assert.ElementsMatch(t,
		[]any{EventState, EventReading, EventToast, EventToastDismissed, EventTheme, EventError},
		typ.Enum)

	state, ok := s.Properties.Get("state")
	require.True(t, ok)
	kind, ok := state.Properties.Get("kind")
	require.True(t, ok)
	assert.Equal(t, "string", kind.Type)
	assert.Len(t, kind.Enum, 4)
}

func TestSchemaJSON(t *testing.T) {
	data, err := SchemaJSON()
	require.NoError(t, err)

	var decoded map[string]map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "command")
	assert.Contains(t, decoded, "event")
	assert.Equal(t, "object", decoded["command"]["type"])
}
