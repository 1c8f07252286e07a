package widget

import (
	"fmt"

	"github.com/sravani-1304/weather-application/internal/weather"
)

// StateKind identifies one of the four mutually exclusive widget states.
type StateKind int

const (
	StatePlaceholder StateKind = iota
	StateLoading
	StateError
	StateResults
)

// String returns the wire name of the state.
func (k StateKind) String() string {
	switch k {
	case StatePlaceholder:
		return "placeholder"
	case StateLoading:
		return "loading"
	case StateError:
		return "error"
	case StateResults:
		return "results"
	default:
		return fmt.Sprintf("StateKind(%d)", k)
	}
}

// MarshalText encodes the state kind by name.
func (k StateKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a state kind name.
func (k *StateKind) UnmarshalText(text []byte) error {
	for _, kind := range []StateKind{StatePlaceholder, StateLoading, StateError, StateResults} {
		if kind.String() == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown state kind %q", text)
}

// State is a snapshot of what the widget is showing.
type State struct {
	Kind StateKind `json:"kind"`

	// Error state only
	Title   string `json:"title,omitempty"`
	Message string `json:"message,omitempty"`

	// Results state only
	Reading *weather.Reading `json:"reading,omitempty"`
}

func placeholderState() State { return State{Kind: StatePlaceholder} }

func loadingState() State { return State{Kind: StateLoading} }

func errorState(title, message string) State {
	return State{Kind: StateError, Title: title, Message: message}
}

func resultsState(r *weather.Reading) State {
	return State{Kind: StateResults, Reading: r}
}

// Theme is the colour theme. An empty Theme is treated as light.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme accepts the persisted theme value. Anything other than "dark"
// selects the light theme.
func ParseTheme(s string) Theme {
	if s == string(ThemeDark) {
		return ThemeDark
	}
	return ThemeLight
}

// Toggled returns the opposite theme.
func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool {
	return t == ThemeDark
}

// ToastLevel is the visual class of a toast.
type ToastLevel string

const (
	ToastError ToastLevel = "error"
	ToastInfo  ToastLevel = "info"
)

// Toast is a transient notification. IDs increase monotonically per
// controller so that a late dismissal of an evicted toast can be told apart.
type Toast struct {
	ID      uint64     `json:"id"`
	Level   ToastLevel `json:"level"`
	Message string     `json:"message"`
}
