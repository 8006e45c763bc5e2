// Package chrome holds the page furniture that is independent of the task
// list: the hide-on-scroll header and the task-creation panel.
package chrome

import "sync"

// Header classes.
const (
	ClassHidden  = "hidden"
	ClassVisible = "visible"
)

// HeaderVisibility hides the header while the user scrolls down and shows
// it again on any scroll that does not go further down.
type HeaderVisibility struct {
	mu     sync.Mutex
	last   int
	hidden bool
}

// Scroll records a new vertical offset. Every call updates the state.
func (h *HeaderVisibility) Scroll(offset int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.hidden = offset > h.last
	h.last = max(offset, 0)
}

// Hidden reports whether the header is hidden.
func (h *HeaderVisibility) Hidden() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hidden
}

// Offset returns the last recorded offset.
func (h *HeaderVisibility) Offset() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

// Class returns the header class for the current state.
func (h *HeaderVisibility) Class() string {
	if h.Hidden() {
		return ClassHidden
	}
	return ClassVisible
}
