package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sravani-1304/weather-application/internal/config"
	"github.com/sravani-1304/weather-application/internal/weather"
	"github.com/sravani-1304/weather-application/internal/widget"
)

func wsURL(httpURL string) string {
	return "ws" + strings.TrimPrefix(httpURL, "http") + "/ws"
}

func dial(t *testing.T, baseURL string) (*websocket.Conn, *http.Response) {
	t.Helper()
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(baseURL), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn, resp
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(data, &ev), "event: %s", data)
	return ev
}

func sendCommand(t *testing.T, conn *websocket.Conn, cmd Command) {
	t.Helper()
	data, err := json.Marshal(cmd)
	require.NoError(t, err)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, data))
}

// dialStarted connects and consumes the theme and placeholder events every
// session begins with.
func dialStarted(t *testing.T, baseURL string) *websocket.Conn {
	t.Helper()
	conn, _ := dial(t, baseURL)
	require.Equal(t, EventTheme, readEvent(t, conn).Type)
	ev := readEvent(t, conn)
	require.Equal(t, EventState, ev.Type)
	require.Equal(t, widget.StatePlaceholder, ev.State.Kind)
	return conn
}

func TestWebSocket_Start(t *testing.T) {
	srv, ts := newTestServer(t, Config{Fetcher: &stubFetcher{fn: succeed(parisReading())}})

	conn, resp := dial(t, ts.URL)
	_, err := uuid.Parse(resp.Header.Get(SessionIDHeader))
	assert.NoError(t, err, "session id should be a UUID")

	ev := readEvent(t, conn)
	assert.Equal(t, EventTheme, ev.Type)
	assert.Equal(t, widget.ThemeLight, ev.Theme)

	ev = readEvent(t, conn)
	require.Equal(t, EventState, ev.Type)
	assert.Equal(t, widget.StatePlaceholder, ev.State.Kind)

	assert.Eventually(t, func() bool { return srv.ActiveSessions() == 1 }, time.Second, 10*time.Millisecond)
}

func TestWebSocket_SearchSuccess(t *testing.T) {
	fetcher := &stubFetcher{fn: succeed(parisReading())}
	_, ts := newTestServer(t, Config{Fetcher: fetcher})
	conn := dialStarted(t, ts.URL)

	sendCommand(t, conn, Command{Action: ActionSearch, Query: "  Paris "})

	ev := readEvent(t, conn)
	require.Equal(t, EventState, ev.Type)
	assert.Equal(t, widget.StateLoading, ev.State.Kind)

	ev = readEvent(t, conn)
	require.Equal(t, EventReading, ev.Type)
	require.NotNil(t, ev.Reading)
	require.NotNil(t, ev.Reveal)
	assert.Equal(t, "Paris", ev.Reading.Location)
	assert.Equal(t, 0, ev.Reveal.From)
	assert.Equal(t, 18, ev.Reveal.To)
	assert.Equal(t, weather.BackgroundClouds, ev.Reveal.Background)
	assert.Equal(t, "18", ev.Reveal.Final()[widget.FieldTemperature])

	assert.Equal(t, []weather.Query{"Paris"}, fetcher.Queries())
}

func TestWebSocket_EmptySearch(t *testing.T) {
	fetcher := &stubFetcher{fn: succeed(parisReading())}
	_, ts := newTestServer(t, Config{Fetcher: fetcher})
	conn := dialStarted(t, ts.URL)

	sendCommand(t, conn, Command{Action: ActionSearch, Query: "   "})

	ev := readEvent(t, conn)
	require.Equal(t, EventState, ev.Type)
	assert.Equal(t, widget.StateError, ev.State.Kind)
	assert.Equal(t, weather.EmptyQueryTitle, ev.State.Title)
	assert.Equal(t, weather.EmptyQueryMessage, ev.State.Message)
	assert.Empty(t, fetcher.Queries())
}

func TestWebSocket_SearchFailureShowsToast(t *testing.T) {
	fetcher := &stubFetcher{fn: fail(weather.NewAPIError(404, "Atlantis", "city not found"))}
	_, ts := newTestServer(t, Config{Fetcher: fetcher})
	conn := dialStarted(t, ts.URL)

	sendCommand(t, conn, Command{Action: ActionSearch, Query: "Atlantis"})

	assert.Equal(t, widget.StateLoading, readEvent(t, conn).State.Kind)
	assert.Equal(t, widget.StatePlaceholder, readEvent(t, conn).State.Kind)

	ev := readEvent(t, conn)
	require.Equal(t, EventToast, ev.Type)
	require.NotNil(t, ev.Toast)
	assert.Equal(t, widget.ToastError, ev.Toast.Level)
	assert.Contains(t, ev.Toast.Message, `"Atlantis"`)

	sendCommand(t, conn, Command{Action: ActionDismissToast})
	dismissed := readEvent(t, conn)
	assert.Equal(t, EventToastDismissed, dismissed.Type)
	assert.Equal(t, ev.Toast.ID, dismissed.ToastID)
}

func TestWebSocket_ToastExpires(t *testing.T) {
	fetcher := &stubFetcher{fn: fail(weather.NewAPIError(503, "Paris", ""))}
	_, ts := newTestServer(t, Config{Fetcher: fetcher, ToastDuration: 20 * time.Millisecond})
	conn := dialStarted(t, ts.URL)

	sendCommand(t, conn, Command{Action: ActionSearch, Query: "Paris"})
	readEvent(t, conn) // loading
	readEvent(t, conn) // placeholder

	toast := readEvent(t, conn)
	require.Equal(t, EventToast, toast.Type)
	assert.Equal(t, weather.MessageServiceUnavailable, toast.Toast.Message)

	ev := readEvent(t, conn)
	assert.Equal(t, EventToastDismissed, ev.Type)
	assert.Equal(t, toast.Toast.ID, ev.ToastID)
}

func TestWebSocket_Retry(t *testing.T) {
	fetcher := &stubFetcher{fn: succeed(parisReading())}
	_, ts := newTestServer(t, Config{Fetcher: fetcher})
	conn := dialStarted(t, ts.URL)

	// Retry outside the error state is refused.
	sendCommand(t, conn, Command{Action: ActionRetry})
	ev := readEvent(t, conn)
	require.Equal(t, EventError, ev.Type)
	assert.Equal(t, KindRetryUnavailable, ev.Error.Kind)

	sendCommand(t, conn, Command{Action: ActionSearch, Query: "Paris"})
	readEvent(t, conn) // loading
	require.Equal(t, EventReading, readEvent(t, conn).Type)

	sendCommand(t, conn, Command{Action: ActionSearch, Query: ""})
	require.Equal(t, widget.StateError, readEvent(t, conn).State.Kind)

	sendCommand(t, conn, Command{Action: ActionRetry})
	assert.Equal(t, widget.StateLoading, readEvent(t, conn).State.Kind)
	ev = readEvent(t, conn)
	require.Equal(t, EventReading, ev.Type)
	assert.Equal(t, 18, ev.Reveal.From, "second reveal counts from the displayed value")

	assert.Equal(t, []weather.Query{"Paris", "Paris"}, fetcher.Queries())
}

func TestWebSocket_RetryWithoutQuery(t *testing.T) {
	_, ts := newTestServer(t, Config{Fetcher: &stubFetcher{fn: succeed(parisReading())}})
	conn := dialStarted(t, ts.URL)

	sendCommand(t, conn, Command{Action: ActionSearch})
	require.Equal(t, widget.StateError, readEvent(t, conn).State.Kind)

	sendCommand(t, conn, Command{Action: ActionRetry})
	ev := readEvent(t, conn)
	require.Equal(t, EventError, ev.Type)
	assert.Equal(t, KindRetryUnavailable, ev.Error.Kind)
	assert.Equal(t, widget.ErrNoQuery.Error(), ev.Error.Message)
}

func TestWebSocket_ToggleThemePersists(t *testing.T) {
	store := config.NewMemoryStore()
	_, ts := newTestServer(t, Config{
		Fetcher:     &stubFetcher{fn: succeed(parisReading())},
		Preferences: store,
	})
	conn := dialStarted(t, ts.URL)

	sendCommand(t, conn, Command{Action: ActionToggleTheme})
	ev := readEvent(t, conn)
	require.Equal(t, EventTheme, ev.Type)
	assert.Equal(t, widget.ThemeDark, ev.Theme)

	v, _ := store.Get(config.KeyTheme)
	assert.Equal(t, "dark", v)

	// A new session starts with the stored theme.
	second, _ := dial(t, ts.URL)
	ev = readEvent(t, second)
	require.Equal(t, EventTheme, ev.Type)
	assert.Equal(t, widget.ThemeDark, ev.Theme)
}

func TestWebSocket_ToggleThemeAcrossSessions(t *testing.T) {
	store := config.NewMemoryStore()
	_, ts := newTestServer(t, Config{
		Fetcher:     &stubFetcher{fn: succeed(parisReading())},
		Preferences: store,
	})
	first := dialStarted(t, ts.URL)
	second := dialStarted(t, ts.URL)

	sendCommand(t, first, Command{Action: ActionToggleTheme})
	ev := readEvent(t, first)
	require.Equal(t, EventTheme, ev.Type)
	assert.Equal(t, widget.ThemeDark, ev.Theme)

	// The second session started light but must flip the stored dark.
	sendCommand(t, second, Command{Action: ActionToggleTheme})
	ev = readEvent(t, second)
	require.Equal(t, EventTheme, ev.Type)
	assert.Equal(t, widget.ThemeLight, ev.Theme)

	v, _ := store.Get(config.KeyTheme)
	assert.Equal(t, "light", v)
}

func TestWebSocket_BadCommands(t *testing.T) {
	_, ts := newTestServer(t, Config{Fetcher: &stubFetcher{fn: succeed(parisReading())}})
	conn := dialStarted(t, ts.URL)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	ev := readEvent(t, conn)
	require.Equal(t, EventError, ev.Type)
	assert.Equal(t, KindBadCommand, ev.Error.Kind)

	sendCommand(t, conn, Command{Action: "explode"})
	ev = readEvent(t, conn)
	require.Equal(t, EventError, ev.Type)
	assert.Equal(t, KindUnknownAction, ev.Error.Kind)
	assert.Contains(t, ev.Error.Message, "explode")
}

func TestWebSocket_DisconnectRemovesSession(t *testing.T) {
	srv, ts := newTestServer(t, Config{Fetcher: &stubFetcher{fn: succeed(parisReading())}})
	conn := dialStarted(t, ts.URL)
	require.Equal(t, 1, srv.ActiveSessions())

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	_ = conn.Close()

	assert.Eventually(t, func() bool { return srv.ActiveSessions() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestServe_ShutdownClosesSessions(t *testing.T) {
	srv, err := New(Config{
		Fetcher:         &stubFetcher{fn: succeed(parisReading())},
		ShutdownTimeout: 2 * time.Second,
	})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ctx, ln) }()

	conn := dialStarted(t, "http://"+ln.Addr().String())

	cancel()

	select {
	case err := <-served:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.Error(t, err, "session should be closed by shutdown")
	assert.Equal(t, 0, srv.ActiveSessions())
}

func TestHandleWebSocket_RejectsPlainRequest(t *testing.T) {
	srv, err := New(Config{Fetcher: &stubFetcher{fn: succeed(parisReading())}})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, srv.ActiveSessions())
}
