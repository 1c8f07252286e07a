// Package widget holds the presentation logic of the weather widget.
//
// A Controller owns the widget state (placeholder, loading, error, results),
// the colour theme and the single toast slot. It drives a Renderer, which is
// implemented by each surface: the terminal UI and the WebSocket session of
// the browser widget server.
//
// # State Machine
//
//	Placeholder --submit(valid)--> Loading --ok--> Results
//	                                  \----fail--> Placeholder (+ error toast)
//	any --submit(empty)--> Error("Empty search query")
//	Error --retry--> Loading (last valid query)
//
// Every search is tagged with a ULID. Only the result of the most recently
// issued search is applied; earlier results are discarded with ErrSuperseded.
//
// # Reveal Plan
//
// Successful results come with a Reveal: a schedule of cosmetic updates
// (background first, fields after 300ms, temperature counting one degree per
// 50ms tick). Surfaces may play it back or apply it at once.
package widget
