package weather

import (
	"errors"
	"strings"
)

// EmptyQueryMessage is shown when the user submits blank input.
const EmptyQueryMessage = "Please enter a city name"

// EmptyQueryTitle is the error-state title for blank input.
const EmptyQueryTitle = "Empty search query"

// InputError reports user input that was rejected before any network call.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// ErrEmptyInput is returned by NewQuery for empty or whitespace-only input.
var ErrEmptyInput = &InputError{Message: EmptyQueryMessage}

// Query is a trimmed, non-empty location string.
type Query string

// NewQuery trims raw and rejects it if nothing is left.
func NewQuery(raw string) (Query, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyInput
	}
	return Query(trimmed), nil
}

// String returns the query text
func (q Query) String() string {
	return string(q)
}

// IsEmptyInput reports whether err is the empty-input rejection.
func IsEmptyInput(err error) bool {
	return errors.Is(err, ErrEmptyInput)
}
