// runner is Mortgage Runner, a side-scrolling runner for the terminal: reach
// the flag before the countdown runs out and arrive with money left to pay
// off the mortgage.
//
// Usage:
//
//	runner play [mode]       - Play a mode (default: runner)
//	runner menu              - Start menu to pick a mode interactively
//	runner scores [mode]     - Show the leaderboard
//	runner list              - List available modes
//	runner level             - Generate and validate a level
//	runner simulate [mode]   - Run a headless bot through a level
//	runner serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible levels
//	--db <path>          - Set database path (default: ~/.runner/scores.db)
//	--config <path>      - Custom tuning file (YAML or TOML)
//	--difficulty <name>  - Difficulty preset: easy, normal, hard, fixed
//	--log-level <level>  - debug, info, warn, error
//	--log-file <path>    - Log file for interactive play
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mortgage-runner/internal/games/runner"
	"github.com/vovakirdan/mortgage-runner/internal/platform/tui"
	"github.com/vovakirdan/mortgage-runner/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string

	logLevel = log.InfoLevel
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Mortgage Runner - race the bank to the finish line",
	Long: `Mortgage Runner is a side-scrolling runner for your terminal.

Start with $1,000 and 100 seconds. Collect coins and mystery boxes, dodge
luxury purchases and market crashes, and reach the flag with a positive net
worth to pay off the mortgage.

Available commands:
  play      - Play a mode directly
  menu      - Interactive mode picker
  scores    - View the leaderboard
  list      - Show all available modes
  level     - Generate and validate a level
  simulate  - Run a headless bot through a level
  serve     - Start SSH server for remote play

Examples:
  runner play
  runner play runner_rush --difficulty hard
  runner menu
  runner scores --daily
  runner level --seed 42 --dump
  runner serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logLevel = level

		runner.SetConfigPath(flagConfig)
		runner.SetDifficultyPreset(flagDifficulty)
		runner.SetLogger(stderrLogger())
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runner/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning file (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.runner/runner.log", "Log file used while the terminal UI is running")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
}

func stderrLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "runner",
		Level:           logLevel,
	})
}

// useLogFile points the runner logger at --log-file while the UI owns the
// terminal. Logging is discarded if the file cannot be opened.
func useLogFile() io.Closer {
	logger, closer, err := tui.OpenLogFile(flagLogFile, logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, logging disabled\n", err)
		runner.SetLogger(log.New(io.Discard))
		return io.NopCloser(nil)
	}
	runner.SetLogger(logger)
	return closer
}

// openStore opens the leaderboard. A failure downgrades to playing without
// one, so the returned store may be nil.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
