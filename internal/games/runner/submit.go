package runner

import "context"

// Submission is a finished run offered to the leaderboard.
type Submission struct {
	RunID  string
	GameID string
	Player string
	Score  int
}

// ScoreSubmitter persists winning runs. Implementations must tolerate the
// same RunID arriving more than once without counting it twice.
type ScoreSubmitter interface {
	Submit(ctx context.Context, s Submission) error
}

// SubmitterFunc adapts a function to a ScoreSubmitter.
type SubmitterFunc func(ctx context.Context, s Submission) error

// Submit calls f(ctx, s).
func (f SubmitterFunc) Submit(ctx context.Context, s Submission) error {
	return f(ctx, s)
}
