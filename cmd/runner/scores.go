package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mortgage-runner/internal/games/runner"
	"github.com/vovakirdan/mortgage-runner/internal/registry"
	"github.com/vovakirdan/mortgage-runner/internal/storage"
)

var (
	flagDaily bool
	flagStats bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the leaderboard",
	Long: `Display the top net worths of winning runs for the specified mode
(default: runner). Only runs that reached the flag are recorded.

Examples:
  runner scores
  runner scores --daily
  runner scores runner_rush --limit 20
  runner scores --stats`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagDaily, "daily", false, "Show only today's runs (UTC)")
	scoresCmd.Flags().BoolVar(&flagStats, "stats", false, "Show win statistics for every mode")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := runner.GameID
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'runner list' to see available modes.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagStats {
		printStats(store)
		return
	}

	var scores []storage.ScoreEntry
	period := "All time"
	if flagDaily {
		period = "Today"
		scores, err = store.DailyTopScores(gameID, time.Now(), flagLimit)
	} else {
		scores, err = store.TopScores(gameID, flagLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("Mortgages paid off - %s (%s)\n", title, period)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No winning runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'runner play %s' and reach the flag to set the first score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-16s  %12s  %s\n", "Rank", "Player", "Net worth", "Date")
	fmt.Printf("  %-4s  %-16s  %12s  %s\n", "----", "------", "---------", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-16s  %12s  %s\n", i+1, entry.Player, runner.FormatMoney(entry.Score), dateStr)
	}

	fmt.Println()
	if highScore, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best ever: %s\n", runner.FormatMoney(highScore))
	}
}

func printStats(store *storage.Store) {
	stats, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	if len(stats) == 0 {
		fmt.Println("No winning runs recorded yet.")
		return
	}

	fmt.Printf("  %-12s  %5s  %12s  %12s  %s\n", "Mode", "Wins", "Best", "Average", "Last win")
	for _, g := range registry.List() {
		s, ok := stats[g.ID]
		if !ok {
			continue
		}
		fmt.Printf("  %-12s  %5d  %12s  %12s  %s\n",
			g.ID, s.Wins,
			runner.FormatMoney(s.HighScore),
			runner.FormatMoney(int(s.AvgScore)),
			s.LastPlayed.Local().Format("2006-01-02 15:04"),
		)
	}
}
