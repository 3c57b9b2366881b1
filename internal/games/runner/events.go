package runner

import "github.com/vovakirdan/mortgage-runner/internal/core"

// CoinCollected is emitted once per coin.
type CoinCollected struct {
	Value int
}

// PowerupCollected is emitted once per mystery box.
type PowerupCollected struct {
	Value   int
	Special bool
}

// HazardHit is emitted once per hazard.
type HazardHit struct {
	Kind  HazardKind
	Value int
}

// RunEnded is emitted once when the run reaches a terminal phase.
type RunEnded struct {
	Victory    bool
	Reason     DefeatReason // ReasonNone on victory
	FinalScore int
}

func (CoinCollected) EventName() string    { return "coin_collected" }
func (PowerupCollected) EventName() string { return "powerup_collected" }
func (HazardHit) EventName() string        { return "hazard_hit" }
func (RunEnded) EventName() string         { return "run_ended" }

// Notifier receives events as they happen, in addition to the events
// returned from each step.
type Notifier interface {
	Notify(core.Event)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(core.Event)

// Notify calls f(e).
func (f NotifierFunc) Notify(e core.Event) {
	f(e)
}
