package widget

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sravani-1304/weather-application/internal/weather"
)

type renderCall struct {
	method  string
	state   State
	reading *weather.Reading
	plan    Reveal
	toast   Toast
	toastID uint64
	theme   Theme
}

type fakeRenderer struct {
	mu    sync.Mutex
	calls []renderCall
}

func (f *fakeRenderer) record(c renderCall) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeRenderer) RenderState(s State) { f.record(renderCall{method: "state", state: s}) }
func (f *fakeRenderer) RenderReading(r *weather.Reading, plan Reveal) {
	f.record(renderCall{method: "reading", reading: r, plan: plan})
}
func (f *fakeRenderer) ShowToast(t Toast)   { f.record(renderCall{method: "show_toast", toast: t}) }
func (f *fakeRenderer) HideToast(id uint64) { f.record(renderCall{method: "hide_toast", toastID: id}) }
func (f *fakeRenderer) ApplyTheme(t Theme)  { f.record(renderCall{method: "theme", theme: t}) }

func (f *fakeRenderer) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.method
	}
	return out
}

func (f *fakeRenderer) last(method string) (renderCall, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].method == method {
			return f.calls[i], true
		}
	}
	return renderCall{}, false
}

func (f *fakeRenderer) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// fakeFetcher returns canned results. When gate is non-nil, each call blocks
// until a value is received from it.
type fakeFetcher struct {
	mu      sync.Mutex
	queries []weather.Query
	results map[weather.Query]*weather.Reading
	errs    map[weather.Query]error
	gates   map[weather.Query]chan struct{}
	started chan weather.Query
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		results: make(map[weather.Query]*weather.Reading),
		errs:    make(map[weather.Query]error),
		gates:   make(map[weather.Query]chan struct{}),
	}
}

func (f *fakeFetcher) FetchWeather(ctx context.Context, q weather.Query) (*weather.Reading, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	gate := f.gates[q]
	started := f.started
	f.mu.Unlock()

	if started != nil {
		started <- q
	}
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, weather.NewNetworkError("GET request failed", ctx.Err())
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[q]; err != nil {
		return nil, err
	}
	if r := f.results[q]; r != nil {
		return r, nil
	}
	return nil, errors.New("no canned result")
}

func (f *fakeFetcher) calls() []weather.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]weather.Query(nil), f.queries...)
}

// fakeClock collects scheduled callbacks so tests can fire them by hand.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// fire runs timer i regardless of whether it was stopped, the way a
// time.AfterFunc callback can race with Stop.
func (c *fakeClock) fire(i int) {
	c.mu.Lock()
	t := c.timers[i]
	c.mu.Unlock()
	t.f()
}

func (c *fakeClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

func parisReading() *weather.Reading {
	return &weather.Reading{
		Location:    "Paris",
		Country:     "FR",
		Temperature: 18.4,
		FeelsLike:   17.9,
		Humidity:    64,
		WindSpeed:   5,
		Condition:   "Clouds",
		Description: "few clouds",
		Icon:        "02d",
	}
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool) { return "", false }
func (failingStore) Set(string, string) error  { return errors.New("disk full") }
