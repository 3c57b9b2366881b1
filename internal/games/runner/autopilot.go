package runner

// Autopilot is a simple bot used by headless simulation: it runs right and
// jumps whenever a pit edge or an unhit hazard comes within Lookahead of the
// player's leading edge. It does not plan landings, so it loses some runs.
type Autopilot struct {
	Lookahead float64
}

// NewAutopilot returns a bot with a lookahead tuned for the default physics.
func NewAutopilot() *Autopilot {
	return &Autopilot{Lookahead: 40}
}

// Drive updates the held intents on s from the latest snapshot.
func (a *Autopilot) Drive(s *Session, sn Snapshot) {
	if sn.Phase.Terminal() || sn.Phase == PhasePaused {
		return
	}

	s.Press(IntentRight)
	if a.obstacleAhead(sn) {
		s.Press(IntentJump)
	} else {
		s.Release(IntentJump)
	}
}

func (a *Autopilot) obstacleAhead(sn Snapshot) bool {
	front := sn.Player.X + sn.Player.Width
	near := func(x float64) bool {
		d := x - front
		return d >= 0 && d <= a.Lookahead
	}

	for _, p := range sn.Platforms {
		// A ground segment ending before the level does is a pit edge
		if p.Ground && p.Right() < sn.LevelLength && near(p.Right()) {
			return true
		}
	}
	for _, h := range sn.Hazards {
		if !h.Hit && near(h.Rect.X) {
			return true
		}
	}
	return false
}
