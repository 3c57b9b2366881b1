package runner

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mortgage-runner/internal/config"
	"github.com/vovakirdan/mortgage-runner/internal/core"
)

const (
	testW = 800.0
	testH = 400.0
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestSession(t *testing.T, gated bool, opts ...func(*Options)) *Session {
	t.Helper()
	o := Options{
		Gated:  gated,
		GameID: GameID,
		Player: "tester",
		Logger: quietLogger(),
	}
	for _, f := range opts {
		f(&o)
	}
	s, err := NewSession(config.DefaultRunnerConfig(), 42, o)
	require.NoError(t, err)
	return s
}

// flatLevel is one unbroken ground segment with nothing on it and the flag
// at the usual place.
func flatLevel(length float64) *Level {
	return &Level{
		Length: length,
		Platforms: []Platform{
			{Rect: core.NewRect(0, testH-20, length, 20), Ground: true},
		},
		Finish: core.NewRect(length-150, testH-80, 50, 60),
	}
}

type recordingSubmitter struct {
	mu   sync.Mutex
	subs []Submission
}

func (r *recordingSubmitter) Submit(_ context.Context, s Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, s)
	return nil
}

func (r *recordingSubmitter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

func eventsOf[T core.Event](events []core.Event) []T {
	var out []T
	for _, e := range events {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
