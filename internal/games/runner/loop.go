package runner

import (
	"context"
	"errors"
	"sync"
	"time"
)

// maxCatchUp bounds how much wall time one Advance may simulate, so a stalled
// terminal does not trigger a burst of frames.
const maxCatchUp = 250 * time.Millisecond

// Stepper is a fixed-timestep accumulator. Elapsed wall time is converted to
// whole frames of one nominal step each; leftover time carries over.
// Seconds accumulate separately and only while the clock runs.
type Stepper struct {
	step  time.Duration
	acc   time.Duration
	clock time.Duration
}

// NewStepper creates a stepper with the given nominal frame length.
func NewStepper(step time.Duration) *Stepper {
	if step <= 0 {
		step = 16 * time.Millisecond
	}
	return &Stepper{step: step}
}

// Advance adds elapsed time and returns the number of frames and whole
// countdown seconds to run.
func (s *Stepper) Advance(elapsed time.Duration, clockRunning bool) (frames, seconds int) {
	if elapsed <= 0 {
		return 0, 0
	}
	if elapsed > maxCatchUp {
		elapsed = maxCatchUp
	}

	s.acc += elapsed
	frames = int(s.acc / s.step)
	s.acc -= time.Duration(frames) * s.step

	if clockRunning {
		s.clock += elapsed
		seconds = int(s.clock / time.Second)
		s.clock -= time.Duration(seconds) * time.Second
	}
	return frames, seconds
}

// Step returns the nominal frame length.
func (s *Stepper) Step() time.Duration {
	return s.step
}

// Reset drops accumulated time.
func (s *Stepper) Reset() {
	s.acc = 0
	s.clock = 0
}

// ErrLoopRunning is returned by Run when the loop is already running.
var ErrLoopRunning = errors.New("runner: loop already running")

// Loop drives a session in real time: a frame ticker and a one-second ticker
// selected from a single goroutine, so there is still only one writer.
type Loop struct {
	session     *Session
	frameEvery  time.Duration
	secondEvery time.Duration

	// OnFrame, when set, is called after every frame with a fresh snapshot.
	OnFrame func(Snapshot)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewLoop creates a loop. Shorter intervals than the nominal frame and one
// second speed the run up.
func NewLoop(s *Session, frameEvery, secondEvery time.Duration) *Loop {
	return &Loop{
		session:     s,
		frameEvery:  frameEvery,
		secondEvery: secondEvery,
	}
}

// Run blocks until the run reaches a terminal phase (nil), or until ctx is
// cancelled or Stop is called (ctx error).
func (l *Loop) Run(ctx context.Context) error {
	l.mu.Lock()
	if l.done != nil {
		l.mu.Unlock()
		return ErrLoopRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	l.cancel, l.done = cancel, done
	l.mu.Unlock()

	defer func() {
		cancel()
		l.mu.Lock()
		l.cancel, l.done = nil, nil
		l.mu.Unlock()
		close(done)
	}()

	frames := time.NewTicker(l.frameEvery)
	defer frames.Stop()
	seconds := time.NewTicker(l.secondEvery)
	defer seconds.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-frames.C:
			l.session.Frame(1)
			if l.OnFrame != nil {
				l.OnFrame(l.session.Snapshot())
			}
		case <-seconds.C:
			l.session.TickSecond()
		}
		if l.session.Phase().Terminal() {
			return nil
		}
	}
}

// Stop halts both clocks and waits for Run to return. It is safe to call
// when the loop is not running.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}
