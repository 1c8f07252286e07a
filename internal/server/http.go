package server

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sravani-1304/weather-application/internal/config"
	"github.com/sravani-1304/weather-application/internal/logging"
	"github.com/sravani-1304/weather-application/internal/version"
	"github.com/sravani-1304/weather-application/internal/weather"
	"github.com/sravani-1304/weather-application/internal/widget"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Error kinds that do not come from the weather client.
const (
	KindEmptyInput       = "empty_input"
	KindBadCommand       = "bad_command"
	KindUnknownAction    = "unknown_action"
	KindRetryUnavailable = "retry_unavailable"
	KindPreferences      = "preferences"
	KindInternal         = "internal"
)

type ctxKey int

const requestIDKey ctxKey = iota

// RequestID reuses the caller's X-Request-ID or generates a UUID, echoes it
// in the response and stores it in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.New().String()
			r.Header.Set(RequestIDHeader, reqID)
		}
		w.Header().Set(RequestIDHeader, reqID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, reqID)))
	})
}

// RequestIDFrom returns the id stored by RequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// Hijack lets the WebSocket upgrader take over the connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.LogServerRequest(r.RemoteAddr, RequestIDFrom(r.Context()), r.Method, r.URL.Path, rec.status)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("Failed to encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, kind, message string) {
	writeJSON(w, status, ErrorBody{Kind: kind, Message: message})
}

type themeResponse struct {
	Theme widget.Theme `json:"theme"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	q, err := weather.NewQuery(r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusBadRequest, KindEmptyInput, weather.UserMessage(err))
		return
	}

	reading, err := s.config.Fetcher.FetchWeather(r.Context(), q)
	if err != nil {
		status, kind := errorStatus(err)
		writeError(w, status, kind, weather.UserMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, weather.NewReport(reading))
}

// errorStatus maps a lookup failure to the HTTP status and kind reported to
// the caller. Provider statuses pass through; transport and decode failures
// become 502.
func errorStatus(err error) (int, string) {
	var werr *weather.WeatherError
	if !errors.As(err, &werr) {
		return http.StatusInternalServerError, KindInternal
	}
	switch werr.Kind {
	case weather.KindNetwork, weather.KindMalformedResponse:
		return http.StatusBadGateway, werr.Kind.String()
	}
	if werr.StatusCode < 400 {
		return http.StatusBadGateway, werr.Kind.String()
	}
	return werr.StatusCode, werr.Kind.String()
}

func (s *Server) currentTheme() widget.Theme {
	v, _ := s.config.Preferences.Get(config.KeyTheme)
	return widget.ParseTheme(v)
}

func (s *Server) handleGetTheme(w http.ResponseWriter, r *http.Request) {
	s.themeMu.Lock()
	t := s.currentTheme()
	s.themeMu.Unlock()
	writeJSON(w, http.StatusOK, themeResponse{Theme: t})
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	s.themeMu.Lock()
	defer s.themeMu.Unlock()

	t := s.currentTheme().Toggled()
	if err := s.config.Preferences.Set(config.KeyTheme, string(t)); err != nil {
		logging.Warn("Failed to save theme preference",
			zap.String("request_id", RequestIDFrom(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, KindPreferences, "The theme could not be saved.")
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: t})
}
