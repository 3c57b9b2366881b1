package runner

// Phase is the lifecycle state of a run.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseRunning
	PhasePaused
	PhaseVictory
	PhaseDefeat
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase is final for the run.
func (p Phase) Terminal() bool {
	return p == PhaseVictory || p == PhaseDefeat
}

// DefeatReason explains a defeat.
type DefeatReason int

const (
	ReasonNone DefeatReason = iota
	ReasonFellIntoPit
	ReasonBankrupt
	ReasonTimeExpired
)

func (r DefeatReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonFellIntoPit:
		return "fell-into-pit"
	case ReasonBankrupt:
		return "bankrupt"
	case ReasonTimeExpired:
		return "time-expired"
	default:
		return "unknown"
	}
}

// Lifecycle is the run state machine:
//
//	NotStarted -> Running <-> Paused
//	Running -> Victory | Defeat(reason)
//
// Terminal phases only leave through a restart, which builds a new Lifecycle.
type Lifecycle struct {
	Phase  Phase
	Reason DefeatReason
}

// newLifecycle returns the initial lifecycle. Gated runs wait for the first
// movement input; ungated runs start immediately.
func newLifecycle(gated bool) Lifecycle {
	if gated {
		return Lifecycle{Phase: PhaseNotStarted}
	}
	return Lifecycle{Phase: PhaseRunning}
}

// Start moves NotStarted to Running.
func (l *Lifecycle) Start() bool {
	if l.Phase != PhaseNotStarted {
		return false
	}
	l.Phase = PhaseRunning
	return true
}

// TogglePause flips between Running and Paused. Other phases ignore it.
func (l *Lifecycle) TogglePause() bool {
	switch l.Phase {
	case PhaseRunning:
		l.Phase = PhasePaused
	case PhasePaused:
		l.Phase = PhaseRunning
	default:
		return false
	}
	return true
}

// Win enters Victory from Running.
func (l *Lifecycle) Win() bool {
	if l.Phase != PhaseRunning {
		return false
	}
	l.Phase = PhaseVictory
	return true
}

// Lose enters Defeat from Running.
func (l *Lifecycle) Lose(reason DefeatReason) bool {
	if l.Phase != PhaseRunning {
		return false
	}
	l.Phase = PhaseDefeat
	l.Reason = reason
	return true
}

// AcceptsPress reports whether movement presses are taken.
func (l Lifecycle) AcceptsPress() bool {
	return l.Phase == PhaseRunning || l.Phase == PhaseNotStarted
}

// Simulating reports whether frames and the countdown advance.
func (l Lifecycle) Simulating() bool {
	return l.Phase == PhaseRunning
}
