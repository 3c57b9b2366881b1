package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mortgage-runner/internal/config"
	"github.com/vovakirdan/mortgage-runner/internal/core"
)

func TestJumpLimitsFor(t *testing.T) {
	limits := JumpLimitsFor(config.DefaultRunnerConfig().Physics)
	assert.InDelta(t, 187.5, limits.MaxHeight, 1e-9)
	assert.InDelta(t, 250.0, limits.MaxDistance, 1e-9)
}

// Holding right on flat ground for 60 frames moves strictly forward at
// full speed while staying grounded.
func TestHoldRightOnGround(t *testing.T) {
	s := newTestSession(t, false)
	s.st.Level = flatLevel(3200)
	s.st.Level.Platforms[0].W = 2400
	s.st.Player.X, s.st.Player.Y = 0, testH-80

	s.Press(IntentRight)
	prev := s.st.Player.X
	for i := 0; i < 60; i++ {
		s.Frame(1)
		p := s.st.Player
		require.Greater(t, p.X, prev, "frame %d", i)
		require.LessOrEqual(t, p.X, s.st.Level.Length-p.Width)
		require.Equal(t, testH-80, p.Y, "player should stay on the ground")
		require.False(t, p.Jumping)
		prev = p.X
	}
	assert.Equal(t, 300.0, s.st.Player.X)
}

func TestFrictionDecaysWithoutStopping(t *testing.T) {
	p := Player{Width: 40, Height: 60, VX: 5}
	var in Tracker
	ph := config.DefaultRunnerConfig().Physics

	for i := 0; i < 20; i++ {
		before := p.VX
		integratePlayer(&p, in, ph, 3200, 1)
		assert.InDelta(t, before*0.8, p.VX, 1e-12)
	}
	assert.Greater(t, p.VX, 0.0, "friction never snaps to zero")
}

func TestLeftWinsOverRight(t *testing.T) {
	p := Player{X: 100, Width: 40, Height: 60}
	var in Tracker
	in.Press(IntentLeft)
	in.Press(IntentRight)

	integratePlayer(&p, in, config.DefaultRunnerConfig().Physics, 3200, 1)
	assert.Equal(t, -5.0, p.VX)
	assert.Equal(t, 95.0, p.X)
}

func TestHorizontalClamp(t *testing.T) {
	ph := config.DefaultRunnerConfig().Physics
	var in Tracker

	p := Player{X: 2, Width: 40, Height: 60}
	in.Press(IntentLeft)
	integratePlayer(&p, in, ph, 3200, 1)
	assert.Equal(t, 0.0, p.X)

	p = Player{X: 3158, Width: 40, Height: 60}
	in.Reset()
	in.Press(IntentRight)
	integratePlayer(&p, in, ph, 3200, 1)
	assert.Equal(t, 3160.0, p.X)
}

func TestJumpOnlyFromGround(t *testing.T) {
	ph := config.DefaultRunnerConfig().Physics
	var in Tracker
	in.Press(IntentJump)

	p := Player{Y: 320, Width: 40, Height: 60}
	integratePlayer(&p, in, ph, 3200, 1)
	assert.True(t, p.Jumping)
	assert.InDelta(t, -15+0.6, p.VY, 1e-12)

	// Still holding jump while airborne applies no second impulse
	integratePlayer(&p, in, ph, 3200, 1)
	assert.InDelta(t, -15+1.2, p.VY, 1e-12)
}

func TestDuckKeepsHitbox(t *testing.T) {
	ph := config.DefaultRunnerConfig().Physics
	var in Tracker
	in.Press(IntentDuck)

	p := Player{Width: 40, Height: 60}
	integratePlayer(&p, in, ph, 3200, 1)
	assert.True(t, p.Ducking)
	assert.Equal(t, 60.0, p.Rect().H)

	in.Release(IntentDuck)
	integratePlayer(&p, in, ph, 3200, 1)
	assert.False(t, p.Ducking)
}

func TestNoVerticalClamp(t *testing.T) {
	p := Player{Y: 390, Width: 40, Height: 60, Jumping: true}
	integratePlayer(&p, Tracker{}, config.DefaultRunnerConfig().Physics, 3200, 1)
	assert.Greater(t, p.Y, 390.0)
}

func TestPatrolStaysInBand(t *testing.T) {
	h := Hazard{
		Kind:   HazardCrash,
		Rect:   core.NewRect(600, 330, 50, 50),
		StartX: 600,
		Range:  100,
		VX:     -2.5,
	}

	reversals := 0
	lastDir := h.VX
	for i := 0; i < 1000; i++ {
		patrol(&h, 1)
		require.GreaterOrEqual(t, h.Rect.X, 500.0)
		require.LessOrEqual(t, h.Rect.X, 600.0)
		if (h.VX > 0) != (lastDir > 0) {
			reversals++
		}
		lastDir = h.VX
	}
	assert.Greater(t, reversals, 10)
}

func TestLuxuryDoesNotPatrol(t *testing.T) {
	h := Hazard{Kind: HazardLuxury, Rect: core.NewRect(300, 340, 40, 40), VX: 3}
	patrol(&h, 1)
	assert.Equal(t, 300.0, h.Rect.X)
}
