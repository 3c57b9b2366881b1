package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mortgage-runner/internal/core"
	"github.com/vovakirdan/mortgage-runner/internal/games/runner"
	"github.com/vovakirdan/mortgage-runner/internal/platform/tui"
	"github.com/vovakirdan/mortgage-runner/internal/registry"
)

var flagPlayer string

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode (default: runner).

Modes:
  runner       - the countdown waits for your first move
  runner_rush  - the countdown starts the moment the level loads

Controls:
  Left/Right, A/D  - Run
  Space/Up/W       - Jump
  Down/S           - Duck
  P                - Pause
  R                - Restart (paused or after the run ends)
  Esc/B            - Back (paused or after the run ends)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More stake, gentler market crashes
  normal - Default tuning
  hard   - Less stake, faster and wider market crashes
  fixed  - Every market crash moves at the base speed

Examples:
  runner play
  runner play runner_rush
  runner play --difficulty hard
  runner play --seed 42 --player alice
  runner play --config ./my-runner.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded on the leaderboard (default: OS user)")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := runner.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	// Check if mode exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'runner list' to see available modes.")
		os.Exit(1)
	}

	logs := useLogFile()
	defer logs.Close()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	runErr := tui.Run(game, store, runtimeConfig(), playerName())

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// runtimeConfig sizes the run to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// playerName is --player, else the OS user.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "anonymous"
}
