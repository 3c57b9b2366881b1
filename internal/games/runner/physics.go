package runner

import (
	"math"

	"github.com/vovakirdan/mortgage-runner/internal/config"
	"github.com/vovakirdan/mortgage-runner/internal/core"
)

// JumpLimits bound what a single jump can clear.
type JumpLimits struct {
	MaxHeight   float64 // rise of the player's feet at the apex
	MaxDistance float64 // horizontal travel while airborne at full speed
}

// JumpLimitsFor derives jump limits from physics tuning:
// height v²/2g and distance speed·2v/g.
func JumpLimitsFor(ph config.RunnerPhysics) JumpLimits {
	v := -ph.JumpImpulse
	return JumpLimits{
		MaxHeight:   v * v / (2 * ph.Gravity),
		MaxDistance: ph.Speed * 2 * v / ph.Gravity,
	}
}

// integratePlayer advances the player by dt nominal frames.
func integratePlayer(p *Player, in Tracker, ph config.RunnerPhysics, levelLength, dt float64) {
	// Left wins when both directions are held
	switch {
	case in.Held(IntentLeft):
		p.VX = -ph.Speed * dt
	case in.Held(IntentRight):
		p.VX = ph.Speed * dt
	default:
		p.VX *= ph.Friction
	}

	if in.Held(IntentJump) && !p.Jumping {
		p.VY = ph.JumpImpulse
		p.Jumping = true
	}

	p.Ducking = in.Held(IntentDuck)

	p.VY += ph.Gravity * dt

	p.X += p.VX
	p.Y += p.VY

	p.X = core.ClampF(p.X, 0, levelLength-p.Width)
}

// patrol moves a crash hazard inside its band, reversing at either end.
func patrol(h *Hazard, dt float64) {
	if !h.Patrols() {
		return
	}

	h.Rect.X += h.VX * dt

	left := h.StartX - h.Range
	if h.Rect.X < left {
		h.Rect.X = left
		h.VX = math.Abs(h.VX)
	} else if h.Rect.X > h.StartX {
		h.Rect.X = h.StartX
		h.VX = -math.Abs(h.VX)
	}
}
