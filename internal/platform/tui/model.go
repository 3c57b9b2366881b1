package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/mortgage-runner/internal/core"
	"github.com/vovakirdan/mortgage-runner/internal/games/runner"
	"github.com/vovakirdan/mortgage-runner/internal/registry"
	"github.com/vovakirdan/mortgage-runner/internal/storage"
)

const (
	toastLife = 1500 * time.Millisecond
	maxToasts = 4
)

// toast is a short-lived money change shown next to the HUD.
type toast struct {
	text  string
	color core.Color
	until time.Time
}

// GameModel is the Bubble Tea model for one game: it maps keys to actions,
// drives the frame and second clocks and draws the screen.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	holds      *holdTracker
	inputFrame core.InputFrame
	gameState  core.GameState
	gen        uint64
	lastTick   time.Time
	toasts     []toast
	standalone bool // quit the program instead of returning to a menu
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. Winning runs are submitted to store
// under player; a nil store plays without a leaderboard.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if rg, ok := game.(*runner.Game); ok {
		rg.SetPlayer(player)
		if store != nil {
			rg.SetSubmitter(store)
		}
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		holds:      newHoldTracker(holdWindow(runner.LoadConfig().Input.HoldMs)),
		inputFrame: core.NewInputFrame(),
		gen:        nextGen(),
	}
}

func holdWindow(ms int) time.Duration {
	if ms <= 0 {
		ms = 180
	}
	return time.Duration(ms) * time.Millisecond
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return m.clocks()
}

// clocks starts the frame and second tickers for the current generation.
func (m GameModel) clocks() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.config.TickRate, m.gen)}
	if _, ok := m.game.(registry.Clocked); ok {
		cmds = append(cmds, secondCmd(m.gen))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The world is projected onto whatever size the terminal has, so a
		// resize never resets the run.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick(msg.At)

	case SecondMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleSecond()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.IsScreenshot(msg) {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		m.gen = nextGen()
		return m, tea.Quit
	}

	switch {
	case action == core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused || !m.gameState.Started {
			m.backToMenu = true
			m.gen = nextGen()
			if m.standalone {
				return m, tea.Quit
			}
		}
	case action == core.ActionRestart:
		if m.gameState.GameOver || m.gameState.Paused {
			m.inputFrame.Set(action)
		}
	case action == core.ActionPause:
		m.inputFrame.Set(action)
	case isHeld(action):
		// Every repeat is a press; the session ignores duplicates
		m.holds.see(action, time.Now())
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	for _, a := range m.holds.expire(now) {
		m.inputFrame.Release(a)
	}

	if !m.lastTick.IsZero() {
		m.inputFrame.Elapsed = now.Sub(m.lastTick)
	}
	m.lastTick = now

	restart := m.inputFrame.Has(core.ActionRestart)
	pause := m.inputFrame.Has(core.ActionPause)
	wasStarted := m.gameState.Started

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.absorb(result.Events, now)
	m.inputFrame.Clear()

	if restart {
		m.holds.reset()
		m.toasts = nil
	}
	m.pruneToasts(now)

	// Pause, restart and the first move of a gated run realign both clocks so
	// no partial second leaks across the boundary.
	if restart || pause || (!wasStarted && m.gameState.Started) {
		m.gen = nextGen()
		m.lastTick = time.Time{}
		return m, m.clocks()
	}

	return m, tickCmd(m.config.TickRate, m.gen)
}

// handleSecond counts the run clock down by one second.
func (m GameModel) handleSecond() (tea.Model, tea.Cmd) {
	clocked, ok := m.game.(registry.Clocked)
	if !ok {
		return m, nil
	}
	result := clocked.TickSecond()
	m.gameState = result.State
	m.absorb(result.Events, time.Now())
	return m, secondCmd(m.gen)
}

// absorb turns money events into toasts.
func (m *GameModel) absorb(events []core.Event, now time.Time) {
	for _, e := range events {
		t, ok := toastFor(e)
		if !ok {
			continue
		}
		t.until = now.Add(toastLife)
		m.toasts = append(m.toasts, t)
	}
	if len(m.toasts) > maxToasts {
		m.toasts = m.toasts[len(m.toasts)-maxToasts:]
	}
}

func (m *GameModel) pruneToasts(now time.Time) {
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if now.Before(t.until) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

func toastFor(e core.Event) (toast, bool) {
	switch ev := e.(type) {
	case runner.CoinCollected:
		return toast{text: "+" + runner.FormatMoney(ev.Value), color: core.ColorGold}, true
	case runner.PowerupCollected:
		if ev.Special {
			return toast{text: "★ +" + runner.FormatMoney(ev.Value), color: core.ColorHighTier}, true
		}
		return toast{text: "? +" + runner.FormatMoney(ev.Value), color: core.ColorPurple}, true
	case runner.HazardHit:
		label := "splurge"
		color := core.ColorOrange
		if ev.Kind == runner.HazardCrash {
			label = "crash"
			color = core.ColorRed
		}
		return toast{text: fmt.Sprintf("%s %s", runner.FormatMoney(-ev.Value), label), color: color}, true
	}
	return toast{}, false
}

// drawToasts stacks toasts under the HUD on the right, newest on top.
func drawToasts(dst *core.Screen, toasts []toast) {
	row := 1
	for i := len(toasts) - 1; i >= 0; i-- {
		t := toasts[i]
		x := dst.Width() - len([]rune(t.text)) - 2
		dst.DrawTextColor(x, row, t.text, t.color)
		row++
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".runner", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	drawToasts(m.screen, m.toasts)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last known game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays game in its own Bubble Tea program until the player quits or
// goes back.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) error {
	model := NewGameModel(game, store, cfg, player)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()

	// Let a winning submission land before the caller closes the store
	if w, ok := game.(interface{ Wait() }); ok {
		w.Wait()
	}
	return err
}
