package widget

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/sravani-1304/weather-application/internal/config"
	"github.com/sravani-1304/weather-application/internal/logging"
	"github.com/sravani-1304/weather-application/internal/weather"
)

// ToastDuration is how long a toast stays up unless replaced or dismissed.
const ToastDuration = 5 * time.Second

var (
	// ErrSuperseded is returned by Search when a newer search was issued
	// before this one completed. Its result was discarded.
	ErrSuperseded = errors.New("search superseded by a newer request")

	// ErrRetryUnavailable is returned by Retry outside the Error state.
	ErrRetryUnavailable = errors.New("retry is only available in the error state")

	// ErrNoQuery is returned by Retry when no valid query was ever submitted.
	ErrNoQuery = errors.New("no previous query to retry")
)

// Renderer draws controller output. Calls are made with the controller's
// lock held and must not call back into the controller.
type Renderer interface {
	// RenderState shows the placeholder, loading or error state.
	RenderState(s State)
	// RenderReading shows the results state for r, played back per plan.
	RenderReading(r *weather.Reading, plan Reveal)
	// ShowToast shows t, replacing any visible toast.
	ShowToast(t Toast)
	// HideToast removes toast id if it is still visible.
	HideToast(id uint64)
	// ApplyTheme switches the colour theme.
	ApplyTheme(t Theme)
}

// Fetcher performs a weather lookup. *weather.Client implements it.
type Fetcher interface {
	FetchWeather(ctx context.Context, q weather.Query) (*weather.Reading, error)
}

// Timer is the part of *time.Timer the controller needs.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc is the default.
type AfterFunc func(d time.Duration, f func()) Timer

// Option configures a Controller.
type Option func(*Controller)

// WithPreferences sets the store the theme is loaded from and saved to.
func WithPreferences(store config.PreferenceStore) Option {
	return func(c *Controller) { c.prefs = store }
}

// WithAfterFunc replaces the timer source used for toast expiry.
func WithAfterFunc(fn AfterFunc) Option {
	return func(c *Controller) { c.afterFunc = fn }
}

// WithToastDuration overrides ToastDuration.
func WithToastDuration(d time.Duration) Option {
	return func(c *Controller) { c.toastDuration = d }
}

// WithLogger attaches a logger with per-session fields.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller is the widget state machine. It is safe for concurrent use.
type Controller struct {
	fetcher  Fetcher
	renderer Renderer

	prefs         config.PreferenceStore
	afterFunc     AfterFunc
	toastDuration time.Duration
	log           *zap.Logger

	mu         sync.Mutex
	state      State
	theme      Theme
	lastQuery  weather.Query
	latest     ulid.ULID
	displayed  int // temperature currently on screen
	toast      *Toast
	toastTimer Timer
	toastSeq   uint64
}

// NewController creates a controller in the Placeholder state. Call Start
// before any other method to apply the stored theme.
func NewController(fetcher Fetcher, renderer Renderer, opts ...Option) *Controller {
	c := &Controller{
		fetcher:       fetcher,
		renderer:      renderer,
		prefs:         config.NewMemoryStore(),
		toastDuration: ToastDuration,
		afterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
		state: placeholderState(),
		theme: ThemeLight,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logging.GetLogger()
	}
	return c
}

// Start loads the persisted theme, applies it and renders the placeholder.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.prefs.Get(config.KeyTheme); ok {
		c.theme = ParseTheme(v)
	}
	c.renderer.ApplyTheme(c.theme)
	c.state = placeholderState()
	c.renderer.RenderState(c.state)
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Theme returns the current theme.
func (c *Controller) Theme() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.theme
}

// Toast returns the visible toast, if any.
func (c *Controller) Toast() (Toast, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.toast == nil {
		return Toast{}, false
	}
	return *c.toast, true
}

// LastQuery returns the last valid query submitted, or "" if none.
func (c *Controller) LastQuery() weather.Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastQuery
}

// Submit validates raw input and searches for it. Empty input moves the
// widget to the Error state without a lookup and returns the input error.
func (c *Controller) Submit(ctx context.Context, raw string) error {
	q, err := weather.NewQuery(raw)
	if err != nil {
		c.mu.Lock()
		// Any search still in flight no longer reflects the input.
		c.latest = ulid.Make()
		c.setStateLocked(errorState(weather.EmptyQueryTitle, weather.EmptyQueryMessage), "")
		c.mu.Unlock()
		return err
	}
	return c.Search(ctx, q)
}

// Search looks up q. The widget is in Loading when the lookup starts and in
// Results or Placeholder (with an error toast) when it returns, unless a
// newer search was issued meanwhile, in which case ErrSuperseded is returned
// and nothing is rendered.
func (c *Controller) Search(ctx context.Context, q weather.Query) error {
	id := ulid.Make()

	c.mu.Lock()
	c.latest = id
	c.lastQuery = q
	c.setStateLocked(loadingState(), id.String())
	c.mu.Unlock()

	reading, err := c.fetcher.FetchWeather(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.latest != id {
		c.log.Debug("Discarding superseded result",
			zap.String("request_id", id.String()),
			zap.String("latest", c.latest.String()),
			zap.String("query", q.String()),
		)
		return ErrSuperseded
	}

	if err != nil {
		c.setStateLocked(placeholderState(), id.String())
		c.showToastLocked(ToastError, weather.UserMessage(err))
		return err
	}

	plan := PlanReveal(c.displayed, reading)
	c.displayed = plan.To
	logging.LogStateTransition(c.state.Kind.String(), StateResults.String(), id.String())
	c.state = resultsState(reading)
	c.renderer.RenderReading(reading, plan)
	return nil
}

// Retry repeats the last valid query. It is only available in the Error state.
func (c *Controller) Retry(ctx context.Context) error {
	c.mu.Lock()
	if c.state.Kind != StateError {
		c.mu.Unlock()
		return ErrRetryUnavailable
	}
	q := c.lastQuery
	c.mu.Unlock()

	if q == "" {
		return ErrNoQuery
	}
	return c.Search(ctx, q)
}

// ToggleTheme flips the persisted theme, applies it and saves it. The store
// is re-read first since other controllers may share it. A persistence
// failure is logged and otherwise ignored.
func (c *Controller) ToggleTheme() Theme {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.prefs.Get(config.KeyTheme); ok {
		c.theme = ParseTheme(v)
	}
	c.theme = c.theme.Toggled()
	c.renderer.ApplyTheme(c.theme)

	if err := c.prefs.Set(config.KeyTheme, string(c.theme)); err != nil {
		c.log.Warn("Failed to save theme preference",
			zap.String("theme", string(c.theme)),
			zap.Error(err),
		)
	}
	return c.theme
}

// ShowToast displays an informational or error message in the toast slot.
func (c *Controller) ShowToast(level ToastLevel, message string) Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showToastLocked(level, message)
}

// DismissToast closes the visible toast. It reports whether one was visible.
func (c *Controller) DismissToast() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.toast == nil {
		return false
	}
	c.hideToastLocked()
	return true
}

func (c *Controller) setStateLocked(s State, requestID string) {
	if c.state.Kind != s.Kind {
		logging.LogStateTransition(c.state.Kind.String(), s.Kind.String(), requestID)
	}
	c.state = s
	c.renderer.RenderState(s)
}

func (c *Controller) showToastLocked(level ToastLevel, message string) Toast {
	if c.toastTimer != nil {
		c.toastTimer.Stop()
		c.toastTimer = nil
	}

	c.toastSeq++
	t := Toast{ID: c.toastSeq, Level: level, Message: message}
	c.toast = &t
	c.renderer.ShowToast(t)

	id := t.ID
	c.toastTimer = c.afterFunc(c.toastDuration, func() { c.expireToast(id) })
	return t
}

// expireToast hides toast id unless it has already been replaced or closed.
func (c *Controller) expireToast(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.toast == nil || c.toast.ID != id {
		return
	}
	c.toastTimer = nil
	c.hideToastLocked()
}

func (c *Controller) hideToastLocked() {
	if c.toastTimer != nil {
		c.toastTimer.Stop()
		c.toastTimer = nil
	}
	id := c.toast.ID
	c.toast = nil
	c.renderer.HideToast(id)
}

// Close stops the toast timer. The controller must not be used afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.toastTimer != nil {
		c.toastTimer.Stop()
		c.toastTimer = nil
	}
}
