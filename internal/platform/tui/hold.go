package tui

import (
	"time"

	"github.com/vovakirdan/mortgage-runner/internal/core"
)

// holdTracker turns key repeats into held input. Terminals report presses
// only, so an action counts as held until no repeat arrives within the window.
type holdTracker struct {
	window time.Duration
	last   map[core.Action]time.Time
}

func newHoldTracker(window time.Duration) *holdTracker {
	return &holdTracker{
		window: window,
		last:   make(map[core.Action]time.Time),
	}
}

// see records a press or repeat of a.
func (h *holdTracker) see(a core.Action, now time.Time) {
	h.last[a] = now
}

// expire returns the actions whose last repeat is older than the window and
// forgets them.
func (h *holdTracker) expire(now time.Time) []core.Action {
	var released []core.Action
	for a, t := range h.last {
		if now.Sub(t) > h.window {
			released = append(released, a)
			delete(h.last, a)
		}
	}
	return released
}

// held reports whether a is currently held.
func (h *holdTracker) held(a core.Action) bool {
	_, ok := h.last[a]
	return ok
}

// reset forgets every held action.
func (h *holdTracker) reset() {
	clear(h.last)
}
