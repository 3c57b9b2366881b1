package runner

import "github.com/vovakirdan/mortgage-runner/internal/core"

// Snapshot is a read-only copy of a run for renderers. Mutating it has no
// effect on the session.
type Snapshot struct {
	Player       Player
	Platforms    []Platform
	Collectibles []Collectible
	Hazards      []Hazard
	Finish       core.Rect
	Camera       Camera
	LevelLength  float64
	ViewportW    float64
	ViewportH    float64
	NetWorth     int
	Stake        int
	TimeLeft     int
	Countdown    int
	Phase        Phase
	Reason       DefeatReason
	RunID        string
	Seed         int64
	Frame        int
}

// Snapshot publishes a deep copy of the current run.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	lvl := s.st.Level.clone()
	return Snapshot{
		Player:       s.st.Player,
		Platforms:    lvl.Platforms,
		Collectibles: lvl.Collectibles,
		Hazards:      lvl.Hazards,
		Finish:       lvl.Finish,
		Camera:       s.st.Camera,
		LevelLength:  lvl.Length,
		ViewportW:    s.cfg.Viewport.Width,
		ViewportH:    s.cfg.Viewport.Height,
		NetWorth:     s.netWorth(),
		Stake:        s.cfg.Economy.Stake,
		TimeLeft:     s.st.TimeLeft,
		Countdown:    s.cfg.Economy.Countdown,
		Phase:        s.st.Life.Phase,
		Reason:       s.st.Life.Reason,
		RunID:        s.st.RunID,
		Seed:         lvl.Seed,
		Frame:        s.st.Frame,
	}
}

// CoinCount returns collected and total coins.
func (sn Snapshot) CoinCount() (collected, total int) {
	for _, c := range sn.Collectibles {
		if c.Kind != KindCoin {
			continue
		}
		total++
		if c.Collected {
			collected++
		}
	}
	return collected, total
}

// Progress returns how far the player is toward the finish line, in [0, 1].
func (sn Snapshot) Progress() float64 {
	if sn.Finish.X <= 0 {
		return 0
	}
	return core.ClampF(sn.Player.X/sn.Finish.X, 0, 1)
}
