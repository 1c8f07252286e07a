package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/sravani-1304/weather-application/internal/logging"
	"github.com/sravani-1304/weather-application/internal/urls"
	"github.com/sravani-1304/weather-application/internal/version"
)

const (
	// DefaultUnits is the unit system requested from the provider
	DefaultUnits = "metric"

	// maxBodySize caps how much of a response body is read
	maxBodySize = 1 << 20
)

// Client represents an HTTP client for the provider's current-weather endpoint
type Client struct {
	// BaseURL is the current-weather endpoint
	// (default: https://api.openweathermap.org/data/2.5/weather)
	BaseURL string

	// APIKey is sent as the appid query parameter
	APIKey string

	// Units is the provider unit system (default: "metric")
	Units string

	// HTTPClient is the underlying HTTP client. Its zero Timeout leaves the
	// request bounded only by the caller's context.
	HTTPClient *http.Client
}

// NewClient creates a client for the public provider endpoint
func NewClient(apiKey string) *Client {
	return NewClientWithURL(urls.CurrentWeatherAPI, apiKey)
}

// NewClientWithURL creates a client with a custom endpoint
// baseURL: full endpoint URL (e.g., "http://localhost:9000/data/2.5/weather")
func NewClientWithURL(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL:    baseURL,
		APIKey:     apiKey,
		Units:      DefaultUnits,
		HTTPClient: &http.Client{},
	}
}

// SetTimeout sets the HTTP request timeout (0 = no client-side timeout)
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// RequestURL builds the lookup URL for q.
func (c *Client) RequestURL(q Query) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}

	units := c.Units
	if units == "" {
		units = DefaultUnits
	}

	params := u.Query()
	params.Set("q", q.String())
	params.Set("appid", c.APIKey)
	params.Set("units", units)
	u.RawQuery = params.Encode()

	return u.String(), nil
}

// FetchWeather performs exactly one round trip for q and returns the
// normalized reading. Every failure is a *WeatherError.
func (c *Client) FetchWeather(ctx context.Context, q Query) (*Reading, error) {
	reqURL, err := c.RequestURL(q)
	if err != nil {
		return nil, NewNetworkError("failed to build request URL", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, NewNetworkError("failed to create GET request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	logging.LogHTTPRequest(req.Method, reqURL)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		werr := NewNetworkError("GET request failed", err)
		werr.Query = q
		logging.Warn("Weather API unreachable",
			zap.String("query", q.String()),
			zap.Error(err),
		)
		return nil, werr
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		werr := NewNetworkError("failed to read response body", err)
		werr.NetworkSubtype = NetworkReadFailed
		werr.Query = q
		return nil, werr
	}

	logging.LogHTTPResponse(reqURL, resp.StatusCode, len(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr errorResponse
		// The error body is informational only; an undecodable one is ignored.
		_ = json.Unmarshal(body, &apiErr)
		werr := NewAPIError(resp.StatusCode, q, apiErr.Message)
		logging.Info("Weather API returned an error",
			zap.String("query", q.String()),
			zap.Int("status_code", resp.StatusCode),
			zap.String("kind", werr.Kind.String()),
			zap.String("provider_message", apiErr.Message),
		)
		return nil, werr
	}

	var payload currentResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, NewMalformedError("failed to parse JSON response", err)
	}

	if err := payload.validate(); err != nil {
		logging.Warn("Weather API returned an incomplete payload",
			zap.String("query", q.String()),
			zap.Error(err),
		)
		return nil, err
	}

	return payload.toReading(), nil
}
