package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mortgage-runner/internal/core"
	"github.com/vovakirdan/mortgage-runner/internal/games/runner"
	"github.com/vovakirdan/mortgage-runner/internal/registry"
)

var (
	flagTimescale float64
	flagRecord    bool
	flagTimeout   time.Duration
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [mode]",
	Short: "Run a headless bot through a level",
	Long: `Run the simulation without a terminal UI. A simple bot holds right and
jumps at pits and hazards while the real-time loop drives frames and the
countdown. Every pickup, hit and the final outcome are logged.

--timescale speeds up both clocks (2 = twice as fast). With --record a
winning run is submitted to the leaderboard under the name "autopilot".

Examples:
  runner simulate
  runner simulate --seed 42 --timescale 10
  runner simulate runner_rush --log-level debug
  runner simulate --record --timescale 50`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&flagTimescale, "timescale", 1, "Clock speed multiplier")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Submit a winning run to the leaderboard")
	simulateCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "Abort after this much wall time (0 = no limit)")
}

func runSimulate(_ *cobra.Command, args []string) {
	gameID := runner.GameID
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", gameID)
		os.Exit(1)
	}
	if flagTimescale <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --timescale must be positive")
		os.Exit(1)
	}

	logger := stderrLogger()
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := runner.Options{
		Gated:    gameID == runner.GameID,
		GameID:   gameID,
		Player:   "autopilot",
		Logger:   logger,
		Notifier: logNotifier(logger),
	}
	if flagRecord {
		if store := openStore(); store != nil {
			defer store.Close()
			opts.Submitter = store
		}
	}

	cfg := runner.LoadConfig()
	session, err := runner.NewSession(cfg, seed, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	frameEvery := time.Duration(float64(time.Duration(cfg.Physics.FrameMs)*time.Millisecond) / flagTimescale)
	secondEvery := time.Duration(float64(time.Second) / flagTimescale)
	loop := runner.NewLoop(session, max(frameEvery, time.Microsecond), max(secondEvery, time.Microsecond))

	bot := runner.NewAutopilot()
	loop.OnFrame = func(sn runner.Snapshot) {
		bot.Drive(session, sn)
	}
	// A gated run waits for the bot's first move
	bot.Drive(session, session.Snapshot())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if flagTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flagTimeout)
		defer cancel()
	}

	started := time.Now()
	err = loop.Run(ctx)
	session.Wait()
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sn := session.Snapshot()
	collected, total := sn.CoinCount()
	fmt.Println()
	fmt.Printf("Outcome:   %s\n", outcome(sn))
	fmt.Printf("Net worth: %s\n", runner.FormatMoney(sn.NetWorth))
	fmt.Printf("Coins:     %d/%d\n", collected, total)
	fmt.Printf("Progress:  %.0f%%\n", sn.Progress()*100)
	fmt.Printf("Time left: %ds\n", sn.TimeLeft)
	fmt.Printf("Frames:    %d in %s\n", sn.Frame, time.Since(started).Round(time.Millisecond))
	fmt.Printf("Seed:      %d\n", sn.Seed)
}

// logNotifier logs every event as it happens.
func logNotifier(logger *log.Logger) runner.Notifier {
	return runner.NotifierFunc(func(e core.Event) {
		switch ev := e.(type) {
		case runner.CoinCollected:
			logger.Info("coin", "value", runner.FormatMoney(ev.Value))
		case runner.PowerupCollected:
			logger.Info("mystery box", "value", runner.FormatMoney(ev.Value), "special", ev.Special)
		case runner.HazardHit:
			logger.Info("hazard", "kind", ev.Kind, "cost", runner.FormatMoney(ev.Value))
		case runner.RunEnded:
			logger.Info("run ended", "victory", ev.Victory, "reason", ev.Reason, "score", runner.FormatMoney(ev.FinalScore))
		}
	})
}

func outcome(sn runner.Snapshot) string {
	switch sn.Phase {
	case runner.PhaseVictory:
		return "mortgage paid off"
	case runner.PhaseDefeat:
		title, detail := runner.DefeatMessage(sn.Reason)
		return title + ": " + detail
	}
	return "stopped (" + sn.Phase.String() + ")"
}
