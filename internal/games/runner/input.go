package runner

import "github.com/vovakirdan/mortgage-runner/internal/core"

// Intent is a held movement input.
type Intent int

const (
	IntentLeft Intent = iota
	IntentRight
	IntentJump
	IntentDuck
	intentCount
)

func (i Intent) String() string {
	switch i {
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	case IntentJump:
		return "jump"
	case IntentDuck:
		return "duck"
	default:
		return "unknown"
	}
}

// IntentFor maps a platform action to a held intent.
func IntentFor(a core.Action) (Intent, bool) {
	switch a {
	case core.ActionLeft:
		return IntentLeft, true
	case core.ActionRight:
		return IntentRight, true
	case core.ActionJump:
		return IntentJump, true
	case core.ActionDuck:
		return IntentDuck, true
	default:
		return 0, false
	}
}

// Tracker holds the four movement intents. Presses and releases land
// whenever they arrive; physics only reads the held state once per frame.
type Tracker struct {
	held [intentCount]bool
}

// Press marks an intent as held.
func (t *Tracker) Press(i Intent) {
	if i >= 0 && i < intentCount {
		t.held[i] = true
	}
}

// Release clears an intent.
func (t *Tracker) Release(i Intent) {
	if i >= 0 && i < intentCount {
		t.held[i] = false
	}
}

// Held reports whether an intent is currently held.
func (t Tracker) Held(i Intent) bool {
	if i < 0 || i >= intentCount {
		return false
	}
	return t.held[i]
}

// Any reports whether any intent is held.
func (t Tracker) Any() bool {
	for _, h := range t.held {
		if h {
			return true
		}
	}
	return false
}

// Reset releases everything.
func (t *Tracker) Reset() {
	t.held = [intentCount]bool{}
}
