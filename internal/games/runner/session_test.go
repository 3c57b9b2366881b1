package runner

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mortgage-runner/internal/core"
)

func TestGatedRunWaitsForMovement(t *testing.T) {
	s := newTestSession(t, true)
	require.Equal(t, PhaseNotStarted, s.Phase())

	before := s.Snapshot()
	s.Frame(1)
	s.TickSecond()
	s.TogglePause()
	after := s.Snapshot()
	assert.Equal(t, before.Player, after.Player, "no physics before the first move")
	assert.Equal(t, 100, after.TimeLeft, "countdown is gated")
	assert.Equal(t, PhaseNotStarted, after.Phase, "pause does nothing before start")

	s.Press(IntentRight)
	assert.Equal(t, PhaseRunning, s.Phase())
	assert.True(t, s.st.Input.Held(IntentRight), "the starting press is kept")
}

func TestRushRunStartsImmediately(t *testing.T) {
	s := newTestSession(t, false)
	assert.Equal(t, PhaseRunning, s.Phase())
}

func TestInitialState(t *testing.T) {
	s := newTestSession(t, false)
	sn := s.Snapshot()

	assert.Equal(t, 50.0, sn.Player.X)
	assert.Equal(t, testH-80, sn.Player.Y)
	assert.Equal(t, 40.0, sn.Player.Width)
	assert.Equal(t, 60.0, sn.Player.Height)
	assert.Equal(t, 1000, sn.NetWorth)
	assert.Equal(t, 100, sn.TimeLeft)
	assert.NotEmpty(t, sn.RunID)
	assert.Equal(t, int64(42), sn.Seed)
}

// The countdown runs out after exactly 100 ticks, and later ticks are no-ops.
func TestCountdownExpires(t *testing.T) {
	s := newTestSession(t, false)

	for i := 0; i < 99; i++ {
		require.Empty(t, s.TickSecond())
	}
	require.Equal(t, 1, s.Snapshot().TimeLeft)

	events := s.TickSecond()
	require.Len(t, events, 1)
	assert.Equal(t, RunEnded{Reason: ReasonTimeExpired, FinalScore: 1000}, events[0])
	assert.Equal(t, PhaseDefeat, s.Phase())

	for i := 0; i < 5; i++ {
		assert.Empty(t, s.TickSecond())
	}
	sn := s.Snapshot()
	assert.Equal(t, 0, sn.TimeLeft)
	assert.Equal(t, ReasonTimeExpired, sn.Reason)
}

func TestFallIntoPit(t *testing.T) {
	s := newTestSession(t, false)
	s.st.Level = flatLevel(3200)
	s.st.Level.Platforms = nil
	s.st.Player.Y = testH + 1

	events := s.Frame(1)
	require.Len(t, events, 1)
	ended := events[0].(RunEnded)
	assert.False(t, ended.Victory)
	assert.Equal(t, ReasonFellIntoPit, ended.Reason)
	assert.Equal(t, PhaseDefeat, s.Phase())
}

func TestBankruptcy(t *testing.T) {
	s := newTestSession(t, false)
	s.st.Level = flatLevel(3200)
	p := s.st.Player.Rect()
	s.st.Level.Hazards = []Hazard{{Kind: HazardCrash, Rect: p, Value: 1000, StartX: p.X}}

	events := s.Frame(1)
	hits := eventsOf[HazardHit](events)
	require.Len(t, hits, 1)
	ends := eventsOf[RunEnded](events)
	require.Len(t, ends, 1)
	assert.Equal(t, ReasonBankrupt, ends[0].Reason)
	assert.Equal(t, 0, ends[0].FinalScore)
}

func TestTerminalPhasesAreFinal(t *testing.T) {
	s := newTestSession(t, false)
	s.st.Level = flatLevel(3200)
	s.st.Level.Platforms = nil
	s.st.Player.Y = testH + 1
	s.Frame(1)
	require.Equal(t, PhaseDefeat, s.Phase())

	before := s.Snapshot()
	s.Press(IntentRight)
	s.TogglePause()
	for i := 0; i < 30; i++ {
		assert.Empty(t, s.Frame(1))
		assert.Empty(t, s.TickSecond())
	}
	after := s.Snapshot()

	assert.Equal(t, before.Player, after.Player)
	assert.Equal(t, before.NetWorth, after.NetWorth)
	assert.Equal(t, before.TimeLeft, after.TimeLeft)
	assert.Equal(t, PhaseDefeat, after.Phase)
	assert.False(t, s.st.Input.Held(IntentRight), "presses are dropped after the run ends")
}

func TestVictorySubmitsOnce(t *testing.T) {
	rec := &recordingSubmitter{}
	s := newTestSession(t, false, func(o *Options) { o.Submitter = rec })
	s.st.Level = flatLevel(3200)
	s.st.Level.Finish = s.st.Player.Rect()
	s.st.Player.VX = 3

	events := s.Frame(1)
	ends := eventsOf[RunEnded](events)
	require.Len(t, ends, 1)
	assert.True(t, ends[0].Victory)
	assert.Equal(t, 1000, ends[0].FinalScore)

	sn := s.Snapshot()
	assert.Equal(t, PhaseVictory, sn.Phase)
	assert.Zero(t, sn.Player.VX, "victory zeroes velocity")
	assert.Zero(t, sn.Player.VY)

	for i := 0; i < 10; i++ {
		s.Frame(1)
	}
	s.Wait()
	require.Equal(t, 1, rec.count())
	assert.Equal(t, Submission{RunID: sn.RunID, GameID: GameID, Player: "tester", Score: 1000}, rec.subs[0])
}

func TestVictoryWinsOverSameFrameDefeat(t *testing.T) {
	rec := &recordingSubmitter{}
	s := newTestSession(t, false, func(o *Options) { o.Submitter = rec })
	s.st.Level = flatLevel(3200)
	p := s.st.Player.Rect()
	s.st.Level.Finish = p
	s.st.Level.Hazards = []Hazard{{Kind: HazardLuxury, Rect: p, Value: 5000}}

	events := s.Frame(1)
	ends := eventsOf[RunEnded](events)
	require.Len(t, ends, 1)
	assert.True(t, ends[0].Victory)
	assert.Equal(t, -4000, ends[0].FinalScore)
	assert.Equal(t, PhaseVictory, s.Phase())
	s.Wait()
	assert.Equal(t, 1, rec.count())
}

func TestVictoryFrameDoesNotWaitForStorage(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	slow := SubmitterFunc(func(ctx context.Context, _ Submission) error {
		calls.Add(1)
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	})
	s := newTestSession(t, false, func(o *Options) { o.Submitter = slow })
	s.st.Level = flatLevel(3200)
	s.st.Level.Finish = s.st.Player.Rect()

	done := make(chan struct{})
	go func() {
		s.Frame(1)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Frame blocked on a slow submitter")
	}
	assert.Equal(t, PhaseVictory, s.Phase())

	close(release)
	s.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

func TestDefeatDoesNotSubmit(t *testing.T) {
	rec := &recordingSubmitter{}
	s := newTestSession(t, false, func(o *Options) { o.Submitter = rec })
	for i := 0; i < 100; i++ {
		s.TickSecond()
	}
	require.Equal(t, PhaseDefeat, s.Phase())
	assert.Zero(t, rec.count())
}

func TestPauseFreezesEverything(t *testing.T) {
	s := newTestSession(t, false)
	s.Press(IntentRight)
	for i := 0; i < 5; i++ {
		s.Frame(1)
	}
	s.TogglePause()
	require.Equal(t, PhasePaused, s.Phase())

	before := s.Snapshot()
	for i := 0; i < 20; i++ {
		s.Frame(1)
		s.TickSecond()
	}
	after := s.Snapshot()
	assert.Equal(t, before.Player, after.Player)
	assert.Equal(t, before.Camera, after.Camera)
	assert.Equal(t, before.Hazards, after.Hazards)
	assert.Equal(t, before.TimeLeft, after.TimeLeft)
	assert.Equal(t, before.Frame, after.Frame)

	s.TogglePause()
	assert.Equal(t, PhaseRunning, s.Phase())
}

func TestReleaseAppliesWhilePaused(t *testing.T) {
	s := newTestSession(t, false)
	s.Press(IntentRight)
	s.Frame(1)

	s.TogglePause()
	s.Release(IntentRight)
	s.Press(IntentJump)
	assert.False(t, s.st.Input.Held(IntentRight), "release lands while paused")
	assert.False(t, s.st.Input.Held(IntentJump), "press is dropped while paused")

	s.TogglePause()
	vx := s.st.Player.VX
	s.Frame(1)
	assert.InDelta(t, vx*0.8, s.st.Player.VX, 1e-12, "no intent stuck across the pause")
	assert.False(t, s.st.Player.Jumping)
}

func TestRestartDiscardsRun(t *testing.T) {
	rec := &recordingSubmitter{}
	s := newTestSession(t, true, func(o *Options) { o.Submitter = rec })
	s.Press(IntentRight)
	for i := 0; i < 3; i++ {
		s.TickSecond()
	}
	s.st.Level.Collectibles[0].Collected = true
	s.st.Level.Hazards[0].Hit = true
	old := s.Snapshot()

	require.NoError(t, s.Restart(7))
	sn := s.Snapshot()

	assert.NotEqual(t, old.RunID, sn.RunID)
	assert.Equal(t, int64(7), sn.Seed)
	assert.Equal(t, PhaseNotStarted, sn.Phase)
	assert.Equal(t, 100, sn.TimeLeft)
	assert.Equal(t, 1000, sn.NetWorth)
	assert.Equal(t, 50.0, sn.Player.X)
	assert.Zero(t, sn.Frame)
	assert.False(t, s.st.Input.Any(), "held intents are dropped")
	for _, c := range sn.Collectibles {
		assert.False(t, c.Collected)
	}
	for _, h := range sn.Hazards {
		assert.False(t, h.Hit)
	}

	// A fresh run may submit again
	s.Press(IntentRight)
	s.st.Level.Finish = s.st.Player.Rect()
	s.Frame(1)
	assert.Equal(t, 1, rec.count())
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestSession(t, false)
	sn := s.Snapshot()
	sn.Collectibles[0].Collected = true
	sn.Hazards[0].Hit = true
	sn.Platforms[0].W = 1

	fresh := s.Snapshot()
	assert.False(t, fresh.Collectibles[0].Collected)
	assert.False(t, fresh.Hazards[0].Hit)
	assert.NotEqual(t, 1.0, fresh.Platforms[0].W)
}

func TestNotifierSeesEveryEvent(t *testing.T) {
	var seen []core.Event
	s := newTestSession(t, false, func(o *Options) {
		o.Notifier = NotifierFunc(func(e core.Event) { seen = append(seen, e) })
	})
	s.st.Level = flatLevel(3200)
	p := s.st.Player.Rect()
	s.st.Level.Collectibles = []Collectible{
		{Kind: KindCoin, Rect: p, Value: 100},
		{Kind: KindPowerup, Rect: p, Value: 300},
	}

	events := s.Frame(1)
	require.Len(t, events, 2)
	assert.Equal(t, events, seen)
	assert.Equal(t, "coin_collected", seen[0].EventName())
	assert.Equal(t, "powerup_collected", seen[1].EventName())
	assert.Equal(t, 1400, s.NetWorth())
}

func TestAdvanceRunsFixedSteps(t *testing.T) {
	s := newTestSession(t, false)

	s.Advance(16 * 1000 * 1000) // 16ms
	assert.Equal(t, 1, s.Snapshot().Frame)

	// 100 seconds of idling in 250ms slices runs the clock out
	for i := 0; i < 400 && s.Phase() == PhaseRunning; i++ {
		s.Advance(250 * 1000 * 1000)
	}
	sn := s.Snapshot()
	assert.Equal(t, PhaseDefeat, sn.Phase)
	assert.Equal(t, ReasonTimeExpired, sn.Reason)
}
