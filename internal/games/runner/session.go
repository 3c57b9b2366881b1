package runner

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/mortgage-runner/internal/config"
	"github.com/vovakirdan/mortgage-runner/internal/core"
)

const defaultSubmitTimeout = 3 * time.Second

// Options wires a session to its collaborators. Everything is optional.
type Options struct {
	Gated         bool // wait for the first movement input before running
	GameID        string
	Player        string
	Notifier      Notifier
	Submitter     ScoreSubmitter
	Logger        *log.Logger
	SubmitTimeout time.Duration
}

// RunState is everything that changes during a run.
type RunState struct {
	Player   Player
	Level    *Level
	Camera   Camera
	Input    Tracker
	Life     Lifecycle
	TimeLeft int
	RunID    string
	Frame    int
}

// Session owns the single mutable RunState. All mutation goes through its
// methods; readers on other goroutines take a Snapshot.
type Session struct {
	mu        sync.Mutex
	cfg       config.RunnerConfig
	opts      Options
	gen       *Generator
	st        RunState
	stepper   *Stepper
	submitted bool
	pending   sync.WaitGroup // in-flight submissions
	log       *log.Logger
}

// NewSession generates the first level and returns a session ready to run.
func NewSession(cfg config.RunnerConfig, seed int64, opts Options) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.SubmitTimeout <= 0 {
		opts.SubmitTimeout = defaultSubmitTimeout
	}
	s := &Session{
		cfg:     cfg,
		opts:    opts,
		gen:     NewGenerator(cfg),
		stepper: NewStepper(time.Duration(cfg.Physics.FrameMs) * time.Millisecond),
		log:     opts.Logger,
	}
	if s.log == nil {
		s.log = logger
	}
	if err := s.Restart(seed); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart discards the current run and builds a new one from seed. Nothing
// is emitted for the discarded run. On error the current run is kept.
func (s *Session) Restart(seed int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lvl, err := s.gen.Generate(seed)
	if err != nil {
		return err
	}

	s.st = RunState{
		Player: Player{
			X:      s.cfg.Player.SpawnX,
			Y:      s.cfg.Viewport.Height - s.cfg.Player.SpawnY,
			Width:  s.cfg.Player.Width,
			Height: s.cfg.Player.Height,
		},
		Level:    lvl,
		Life:     newLifecycle(s.opts.Gated),
		TimeLeft: s.cfg.Economy.Countdown,
		RunID:    uuid.NewString(),
	}
	s.stepper.Reset()
	s.submitted = false

	s.log.Debug("run created", "run", s.st.RunID, "seed", seed, "gated", s.opts.Gated)
	return nil
}

// Press holds an intent. Presses are dropped while paused or after the run
// ends; the first press of a gated run starts it.
func (s *Session) Press(i Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.st.Life.AcceptsPress() {
		return
	}
	if s.st.Life.Start() {
		s.log.Info("run started", "run", s.st.RunID)
	}
	s.st.Input.Press(i)
}

// Release clears an intent. Releases always apply so nothing stays held
// across a pause.
func (s *Session) Release(i Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Input.Release(i)
}

// TogglePause flips Running and Paused.
func (s *Session) TogglePause() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.st.Life.TogglePause() {
		s.log.Debug("pause toggled", "phase", s.st.Life.Phase, "time_left", s.st.TimeLeft)
	}
}

// Frame runs one simulation frame of dt nominal frames: physics, collision,
// camera, lifecycle. It does nothing outside Running.
func (s *Session) Frame(dt float64) []core.Event {
	s.mu.Lock()
	events, sub := s.frame(dt)
	s.mu.Unlock()

	s.dispatch(events, sub)
	return events
}

// TickSecond counts down one real second. It does nothing outside Running.
func (s *Session) TickSecond() []core.Event {
	s.mu.Lock()
	events := s.tickSecond()
	s.mu.Unlock()

	s.dispatch(events, nil)
	return events
}

// Advance feeds elapsed wall time through the fixed-step accumulator and
// runs the resulting frames and countdown seconds.
func (s *Session) Advance(elapsed time.Duration) []core.Event {
	s.mu.Lock()
	frames, seconds := s.stepper.Advance(elapsed, s.st.Life.Simulating())

	var events []core.Event
	var sub *Submission
	for i := 0; i < frames; i++ {
		ev, sb := s.frame(1)
		events = append(events, ev...)
		if sb != nil {
			sub = sb
		}
	}
	for i := 0; i < seconds; i++ {
		events = append(events, s.tickSecond()...)
	}
	s.mu.Unlock()

	s.dispatch(events, sub)
	return events
}

func (s *Session) frame(dt float64) ([]core.Event, *Submission) {
	st := &s.st
	if !st.Life.Simulating() {
		return nil, nil
	}
	st.Frame++

	prevBottom := st.Player.Y + st.Player.Height
	integratePlayer(&st.Player, st.Input, s.cfg.Physics, st.Level.Length, dt)
	for i := range st.Level.Hazards {
		patrol(&st.Level.Hazards[i], dt)
	}

	ground(&st.Player, prevBottom, st.Level.Platforms)
	r := st.Player.Rect()
	events := collect(r, st.Level.Collectibles)
	events = append(events, strike(r, st.Level.Hazards)...)
	finished := r.Intersects(st.Level.Finish)

	st.Camera.follow(st.Player.X, s.cfg.Viewport.Width, st.Level.Length, s.cfg.Camera)

	return s.settle(events, finished)
}

// settle applies end conditions. Victory wins over a defeat in the same frame.
func (s *Session) settle(events []core.Event, finished bool) ([]core.Event, *Submission) {
	st := &s.st
	worth := s.netWorth()

	switch {
	case finished:
		st.Life.Win()
		st.Player.VX, st.Player.VY = 0, 0
		events = append(events, RunEnded{Victory: true, FinalScore: worth})
		return events, s.submission(worth)
	case st.Player.Y > s.cfg.Viewport.Height:
		st.Life.Lose(ReasonFellIntoPit)
	case worth <= 0:
		st.Life.Lose(ReasonBankrupt)
	default:
		return events, nil
	}
	return append(events, RunEnded{Reason: st.Life.Reason, FinalScore: worth}), nil
}

func (s *Session) tickSecond() []core.Event {
	st := &s.st
	if !st.Life.Simulating() {
		return nil
	}
	st.TimeLeft--
	if st.TimeLeft > 0 {
		return nil
	}
	st.TimeLeft = 0
	st.Life.Lose(ReasonTimeExpired)
	return []core.Event{RunEnded{Reason: ReasonTimeExpired, FinalScore: s.netWorth()}}
}

// submission returns the leaderboard entry for a win, at most once per run.
func (s *Session) submission(score int) *Submission {
	if s.submitted {
		return nil
	}
	s.submitted = true
	if s.opts.Submitter == nil {
		return nil
	}
	return &Submission{
		RunID:  s.st.RunID,
		GameID: s.opts.GameID,
		Player: s.opts.Player,
		Score:  score,
	}
}

// dispatch runs outside the lock so collaborators may read a Snapshot.
// Submissions run on their own goroutine.
func (s *Session) dispatch(events []core.Event, sub *Submission) {
	for _, e := range events {
		switch ev := e.(type) {
		case RunEnded:
			s.log.Info("run ended", "victory", ev.Victory, "reason", ev.Reason, "score", ev.FinalScore)
		case HazardHit:
			s.log.Debug(ev.EventName(), "kind", ev.Kind, "value", ev.Value)
		default:
			s.log.Debug(e.EventName())
		}
		if s.opts.Notifier != nil {
			s.opts.Notifier.Notify(e)
		}
	}

	if sub == nil {
		return
	}
	// The frame must not wait on storage
	s.pending.Add(1)
	go func(sub Submission) {
		defer s.pending.Done()
		s.submit(sub)
	}(*sub)
}

func (s *Session) submit(sub Submission) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.SubmitTimeout)
	defer cancel()
	if err := s.opts.Submitter.Submit(ctx, sub); err != nil {
		s.log.Warn("score submission failed", "run", sub.RunID, "err", err)
		return
	}
	s.log.Info("score submitted", "run", sub.RunID, "player", sub.Player, "score", sub.Score)
}

// Wait blocks until every score submission already started has finished.
// Call it before closing the submitter's storage.
func (s *Session) Wait() {
	s.pending.Wait()
}

func (s *Session) netWorth() int {
	return NetWorth(s.cfg.Economy.Stake, s.st.Level.Collectibles, s.st.Level.Hazards)
}

// NetWorth returns the current derived money.
func (s *Session) NetWorth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.netWorth()
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Life.Phase
}

// Config returns the tuning the session runs with.
func (s *Session) Config() config.RunnerConfig {
	return s.cfg
}
