// Package runner implements Mortgage Runner, a side-scrolling runner where
// the player races a countdown to the finish line collecting money and
// dodging expenses, and must arrive with a positive net worth.
//
// The simulation (Session) is independent of the terminal. Game adapts it to
// the registry so the platform can drive and draw it.
package runner

import (
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mortgage-runner/internal/config"
	"github.com/vovakirdan/mortgage-runner/internal/core"
	"github.com/vovakirdan/mortgage-runner/internal/registry"
)

// Registered mode IDs.
const (
	GameID     = "runner"      // countdown waits for the first move
	RushGameID = "runner_rush" // countdown starts at load
)

var (
	// configPath stores the custom config path set via CLI
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "runner"})
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset ("easy", "normal", "hard",
// "fixed"). Anything else uses the config file as is.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger replaces the package logger. The TUI points it at a file since
// the terminal belongs to the UI.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// LoadConfig loads the runner config with the CLI path and preset applied.
func LoadConfig() config.RunnerConfig {
	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		logger.Warn("using default config", "path", configPath, "err", err)
		cfg = config.DefaultRunnerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyRunnerPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// Game implements registry.Game and registry.Clocked on top of a Session.
type Game struct {
	id      string
	title   string
	gated   bool
	runtime core.RuntimeConfig
	session *Session
	stepper *Stepper

	player    string
	submitter ScoreSubmitter
	notifier  Notifier
}

// New creates the gated mode: the countdown starts on the first move.
func New() *Game {
	return &Game{id: GameID, title: "Mortgage Runner", gated: true}
}

// NewRush creates the ungated mode: the countdown starts at load.
func NewRush() *Game {
	return &Game{id: RushGameID, title: "Mortgage Runner: Rush"}
}

// SetPlayer sets the name stored with leaderboard entries.
func (g *Game) SetPlayer(name string) {
	g.player = name
}

// SetSubmitter sets where winning runs are submitted. Takes effect on Reset.
func (g *Game) SetSubmitter(s ScoreSubmitter) {
	g.submitter = s
}

// SetNotifier sets the event listener. Takes effect on Reset.
func (g *Game) SetNotifier(n Notifier) {
	g.notifier = n
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the config and starts a fresh session.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	cfg := LoadConfig()

	opts := Options{
		Gated:     g.gated,
		GameID:    g.id,
		Player:    g.player,
		Notifier:  g.notifier,
		Submitter: g.submitter,
		Logger:    logger,
	}

	s, err := NewSession(cfg, g.seed(), opts)
	if err != nil {
		logger.Warn("config cannot build a level, using defaults", "err", err)
		s, err = NewSession(config.DefaultRunnerConfig(), g.seed(), opts)
		if err != nil {
			// Defaults always generate; reaching this is a programming error.
			panic(err)
		}
	}
	g.session = s
	g.stepper = NewStepper(time.Duration(s.Config().Physics.FrameMs) * time.Millisecond)
}

// seed returns the configured seed, or a fresh one when unset.
func (g *Game) seed() int64 {
	if g.runtime.Seed != 0 {
		return g.runtime.Seed
	}
	return time.Now().UnixNano()
}

// Step applies input edges and advances the simulation by the frame's
// elapsed time in fixed steps.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.Restart()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.session.TogglePause()
	}
	for a := range in.Released {
		if i, ok := IntentFor(a); ok {
			g.session.Release(i)
		}
	}
	for a := range in.Pressed {
		if i, ok := IntentFor(a); ok {
			g.session.Press(i)
		}
	}

	elapsed := in.Elapsed
	if elapsed <= 0 {
		elapsed = g.stepper.Step()
	}
	frames, _ := g.stepper.Advance(elapsed, false)

	var events []core.Event
	for i := 0; i < frames; i++ {
		events = append(events, g.session.Frame(1)...)
	}
	return core.StepResult{State: g.State(), Events: events}
}

// TickSecond counts down the run clock.
func (g *Game) TickSecond() core.StepResult {
	events := g.session.TickSecond()
	return core.StepResult{State: g.State(), Events: events}
}

// Restart discards the run and starts a new level.
func (g *Game) Restart() {
	if err := g.session.Restart(g.seed()); err != nil {
		logger.Error("restart failed", "err", err)
		return
	}
	g.stepper.Reset()
}

// Snapshot returns a read-only copy of the current run.
func (g *Game) Snapshot() Snapshot {
	return g.session.Snapshot()
}

// Wait blocks until in-flight score submissions finish.
func (g *Game) Wait() {
	if g.session != nil {
		g.session.Wait()
	}
}

// Session exposes the underlying simulation.
func (g *Game) Session() *Session {
	return g.session
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	phase := g.session.Phase()
	return core.GameState{
		Score:    g.session.NetWorth(),
		GameOver: phase.Terminal(),
		Won:      phase == PhaseVictory,
		Paused:   phase == PhasePaused,
		Started:  phase != PhaseNotStarted,
	}
}

// Register the modes with the registry
func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
	registry.Register(RushGameID, func() registry.Game {
		return NewRush()
	})
}
