package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mortgage-runner/internal/core"
	"github.com/vovakirdan/mortgage-runner/internal/games/runner"
	"github.com/vovakirdan/mortgage-runner/internal/registry"
)

func newTestModel(t *testing.T, id string) GameModel {
	t.Helper()
	runner.SetLogger(log.New(io.Discard))

	game, err := registry.Create(id)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", id, err)
	}
	m := NewGameModel(game, nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 42}, "tester")
	m.Init()
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func playerX(m GameModel) float64 {
	return m.game.(*runner.Game).Snapshot().Player.X
}

func TestModelMovesAndReleases(t *testing.T) {
	m := newTestModel(t, runner.GameID)
	t0 := time.Now()

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, TickMsg{Gen: m.gen, At: t0})
	if !m.State().Started {
		t.Fatal("first move should start a gated run")
	}
	if x := playerX(m); x != 55 {
		t.Errorf("player x = %v after one frame, expected 55", x)
	}

	// No repeat within the hold window: the key is released
	later := t0.Add(time.Second)
	m = update(t, m, TickMsg{Gen: m.gen, At: later})
	if m.holds.held(core.ActionRight) {
		t.Error("Right should be released after the hold window")
	}
	x := playerX(m)
	m = update(t, m, TickMsg{Gen: m.gen, At: later.Add(16 * time.Millisecond)})
	if playerX(m)-x >= 5 {
		t.Error("player should coast, not run, after the release")
	}
}

func TestModelDropsStaleTicks(t *testing.T) {
	m := newTestModel(t, runner.RushGameID)
	m = update(t, m, TickMsg{Gen: m.gen, At: time.Now()})
	frame := m.game.(*runner.Game).Snapshot().Frame

	m = update(t, m, TickMsg{Gen: m.gen - 1, At: time.Now()})
	m = update(t, m, SecondMsg{Gen: m.gen - 1})
	sn := m.game.(*runner.Game).Snapshot()
	if sn.Frame != frame {
		t.Errorf("stale tick advanced the run: frame %d -> %d", frame, sn.Frame)
	}
	if sn.TimeLeft != sn.Countdown {
		t.Errorf("stale second ticked the clock: %d", sn.TimeLeft)
	}

	m = update(t, m, SecondMsg{Gen: m.gen})
	if got := m.game.(*runner.Game).Snapshot().TimeLeft; got != sn.Countdown-1 {
		t.Errorf("current second should tick: time left %d", got)
	}
}

func TestModelPauseRealignsClocks(t *testing.T) {
	m := newTestModel(t, runner.RushGameID)
	m = update(t, m, TickMsg{Gen: m.gen, At: time.Now()})
	gen := m.gen

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m = update(t, m, TickMsg{Gen: m.gen, At: time.Now()})
	if !m.State().Paused {
		t.Fatal("expected paused")
	}
	if m.gen == gen {
		t.Error("pause should start a new clock generation")
	}

	m = update(t, m, SecondMsg{Gen: m.gen})
	sn := m.game.(*runner.Game).Snapshot()
	if sn.TimeLeft != sn.Countdown {
		t.Errorf("countdown moved while paused: %d", sn.TimeLeft)
	}
}

func TestModelBackOnlyWhenStopped(t *testing.T) {
	m := newTestModel(t, runner.RushGameID)
	m = update(t, m, TickMsg{Gen: m.gen, At: time.Now()})

	esc := tea.KeyMsg{Type: tea.KeyEsc}
	m = update(t, m, esc)
	if m.BackToMenu() {
		t.Fatal("back should be ignored mid-run")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("p")})
	m = update(t, m, TickMsg{Gen: m.gen, At: time.Now()})
	m = update(t, m, esc)
	if !m.BackToMenu() {
		t.Error("back should work while paused")
	}
}

func TestModelToastsAndView(t *testing.T) {
	m := newTestModel(t, runner.GameID)
	now := time.Now()
	m.absorb([]core.Event{
		runner.CoinCollected{Value: 100},
		runner.HazardHit{Kind: runner.HazardCrash, Value: 1000},
	}, now)

	if len(m.toasts) != 2 {
		t.Fatalf("expected 2 toasts, got %d", len(m.toasts))
	}
	if m.toasts[0].text != "+$100" {
		t.Errorf("coin toast = %q", m.toasts[0].text)
	}
	if m.toasts[1].text != "-$1,000 crash" {
		t.Errorf("crash toast = %q", m.toasts[1].text)
	}

	// Toasts render on the screen buffer
	m.game.Render(m.screen)
	drawToasts(m.screen, m.toasts)
	if !strings.Contains(m.screen.String(), "+$100") {
		t.Error("toast not drawn")
	}

	m.pruneToasts(now.Add(2 * toastLife))
	if len(m.toasts) != 0 {
		t.Errorf("toasts should expire, %d left", len(m.toasts))
	}

	if v := m.View(); v == "" {
		t.Error("View() should render the game")
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	m := newTestModel(t, runner.RushGameID)
	runID := m.game.(*runner.Game).Snapshot().RunID

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, expected 120x40", m.screen.Width(), m.screen.Height())
	}
	if got := m.game.(*runner.Game).Snapshot().RunID; got != runID {
		t.Error("resize should not restart the run")
	}
}
