package weather

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"
)

// Kind represents the category of a weather lookup failure
type Kind int

const (
	// KindUnauthorized indicates the provider rejected the API key (HTTP 401)
	KindUnauthorized Kind = iota
	// KindNotFound indicates the provider has no data for the query (HTTP 404)
	KindNotFound
	// KindRateLimited indicates too many requests (HTTP 429)
	KindRateLimited
	// KindServiceUnavailable indicates a provider-side failure (HTTP 5xx)
	KindServiceUnavailable
	// KindUnknown indicates any other non-success HTTP status
	KindUnknown
	// KindMalformedResponse indicates a success status with an unusable payload
	KindMalformedResponse
	// KindNetwork indicates a transport-level failure (DNS, refused, timeout)
	KindNetwork
)

// NetworkSubtype provides more specific network error classification
type NetworkSubtype int

const (
	NetworkGeneral NetworkSubtype = iota
	NetworkTimeout
	NetworkConnectionRefused
	NetworkDNS
	NetworkHostUnreachable
	NetworkUnreachable
	NetworkCanceled
	NetworkReadFailed
)

// User-facing messages, one per failure kind.
const (
	MessageUnauthorized       = "Invalid API key. Please check your OpenWeatherMap API key configuration."
	MessageRateLimited        = "Too many requests. Please wait a moment and try again."
	MessageServiceUnavailable = "The weather service is temporarily unavailable. Please try again later."
	MessageGeneric            = "Something went wrong. Please try again."
	MessageConnect            = "Unable to connect to the weather service. Please check your internet connection."
	MessageConnection         = "Please check your internet connection and try again."

	messageNotFoundFormat = "We couldn't find weather data for \"%s\". Please check the spelling and try again."
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindRateLimited:
		return "rate_limited"
	case KindServiceUnavailable:
		return "service_unavailable"
	case KindUnknown:
		return "unknown"
	case KindMalformedResponse:
		return "malformed_response"
	case KindNetwork:
		return "network"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// WeatherError is returned for every failed lookup
type WeatherError struct {
	Kind           Kind
	Message        string // provider or internal detail, not the user-facing text
	StatusCode     int    // HTTP status (0 for network and decode failures)
	Query          Query  // query that failed, used by the NotFound message
	NetworkSubtype NetworkSubtype
	Err            error
}

// Error implements the error interface
func (e *WeatherError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = UserMessage(e)
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap returns the underlying error for error chain inspection
func (e *WeatherError) Unwrap() error {
	return e.Err
}

// NewAPIError classifies a non-success HTTP status. providerMessage is the
// "message" field of the provider's error body, if any.
func NewAPIError(statusCode int, q Query, providerMessage string) *WeatherError {
	kind := KindUnknown
	switch {
	case statusCode == http.StatusUnauthorized:
		kind = KindUnauthorized
	case statusCode == http.StatusNotFound:
		kind = KindNotFound
	case statusCode == http.StatusTooManyRequests:
		kind = KindRateLimited
	case statusCode >= 500 && statusCode <= 599:
		kind = KindServiceUnavailable
	}

	return &WeatherError{
		Kind:       kind,
		Message:    providerMessage,
		StatusCode: statusCode,
		Query:      q,
	}
}

// NewMalformedError reports a success response that cannot be used
func NewMalformedError(message string, err error) *WeatherError {
	return &WeatherError{
		Kind:    KindMalformedResponse,
		Message: message,
		Err:     err,
	}
}

// NewNetworkError creates a network-level error with automatic classification
func NewNetworkError(message string, err error) *WeatherError {
	classified := ClassifyNetworkError(err)
	classified.Message = message
	return classified
}

// ClassifyNetworkError analyzes a transport error and returns a Network
// WeatherError with the most specific subtype it can determine.
func ClassifyNetworkError(err error) *WeatherError {
	werr := &WeatherError{
		Kind:           KindNetwork,
		Err:            err,
		NetworkSubtype: NetworkGeneral,
	}
	if err == nil {
		return werr
	}

	if errors.Is(err, context.Canceled) {
		werr.NetworkSubtype = NetworkCanceled
		return werr
	}

	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		werr.NetworkSubtype = NetworkTimeout
		return werr
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		werr.NetworkSubtype = NetworkDNS
		return werr
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		switch {
		case errors.Is(opErr.Err, syscall.ECONNREFUSED):
			werr.NetworkSubtype = NetworkConnectionRefused
		case errors.Is(opErr.Err, syscall.EHOSTUNREACH):
			werr.NetworkSubtype = NetworkHostUnreachable
		case errors.Is(opErr.Err, syscall.ENETUNREACH):
			werr.NetworkSubtype = NetworkUnreachable
		}
		return werr
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil && urlErr.Err != err {
		inner := ClassifyNetworkError(urlErr.Err)
		inner.Err = err
		return inner
	}

	return werr
}

// IsNetworkError checks if an error is a transport-level failure
func IsNetworkError(err error) bool {
	return kindOf(err) == KindNetwork
}

// IsMalformed checks if an error is a malformed-response failure
func IsMalformed(err error) bool {
	return kindOf(err) == KindMalformedResponse
}

// IsAPIError checks if an error came from a non-success HTTP status
func IsAPIError(err error) bool {
	var werr *WeatherError
	if !errors.As(err, &werr) {
		return false
	}
	return werr.Kind <= KindUnknown
}

// KindOf returns the Kind of err and whether err is a *WeatherError.
func KindOf(err error) (Kind, bool) {
	var werr *WeatherError
	if !errors.As(err, &werr) {
		return KindUnknown, false
	}
	return werr.Kind, true
}

func kindOf(err error) Kind {
	k, ok := KindOf(err)
	if !ok {
		return -1
	}
	return k
}

// UserMessage returns the message shown to the user for any lookup error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var inErr *InputError
	if errors.As(err, &inErr) {
		return inErr.Message
	}

	var werr *WeatherError
	if !errors.As(err, &werr) {
		return MessageGeneric
	}

	switch werr.Kind {
	case KindUnauthorized:
		return MessageUnauthorized
	case KindNotFound:
		return fmt.Sprintf(messageNotFoundFormat, werr.Query.String())
	case KindRateLimited:
		return MessageRateLimited
	case KindServiceUnavailable:
		return MessageServiceUnavailable
	case KindUnknown:
		if werr.Message != "" {
			return werr.Message
		}
		return MessageGeneric
	case KindMalformedResponse:
		return MessageGeneric
	case KindNetwork:
		if werr.NetworkSubtype == NetworkReadFailed {
			return MessageConnection
		}
		return MessageConnect
	default:
		return MessageGeneric
	}
}
