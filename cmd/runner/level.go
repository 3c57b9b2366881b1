package main

import (
	"fmt"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mortgage-runner/internal/games/runner"
)

var (
	flagDump  bool
	flagCheck int
)

var levelCmd = &cobra.Command{
	Use:   "level",
	Short: "Generate and validate a level",
	Long: `Generate the level for --seed with the current tuning, check that it
is completable and print a summary.

With --check N, generates N levels from consecutive seeds and reports every
one that fails validation.

Examples:
  runner level --seed 42
  runner level --seed 42 --dump
  runner level --check 1000 --difficulty hard
  runner level --config ./my-runner.yaml --check 200`,
	Run: runLevel,
}

func init() {
	levelCmd.Flags().BoolVar(&flagDump, "dump", false, "Dump the full level structure")
	levelCmd.Flags().IntVar(&flagCheck, "check", 0, "Validate this many consecutive seeds")
}

func runLevel(_ *cobra.Command, _ []string) {
	cfg := runner.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	limits := runner.JumpLimitsFor(cfg.Physics)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	if flagCheck > 0 {
		failed := 0
		for i := 0; i < flagCheck; i++ {
			s := seed + int64(i)
			lvl, err := runner.Generate(cfg, s)
			if err == nil {
				err = lvl.Validate(limits)
			}
			if err != nil {
				failed++
				fmt.Printf("  seed %d: %v\n", s, err)
			}
		}
		fmt.Printf("%d of %d levels valid\n", flagCheck-failed, flagCheck)
		if failed > 0 {
			os.Exit(1)
		}
		return
	}

	lvl, err := runner.Generate(cfg, seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating level: %v\n", err)
		os.Exit(1)
	}

	if flagDump {
		spew.Config.Indent = "  "
		spew.Dump(lvl)
	}

	fmt.Printf("Seed:      %d\n", lvl.Seed)
	fmt.Printf("Length:    %.0f\n", lvl.Length)
	fmt.Printf("Pits:      %d\n", len(lvl.Gaps))
	fmt.Printf("Platforms: %d\n", len(lvl.Platforms))
	fmt.Printf("Pickups:   %d (worth %s)\n", len(lvl.Collectibles), runner.FormatMoney(pickupValue(lvl)))
	fmt.Printf("Hazards:   %d (cost %s)\n", len(lvl.Hazards), runner.FormatMoney(hazardCost(lvl)))
	fmt.Printf("Finish:    x=%.0f\n", lvl.Finish.X)
	fmt.Printf("Max jump:  %.0f high, %.0f wide\n", limits.MaxHeight, limits.MaxDistance)

	if err := lvl.Validate(limits); err != nil {
		fmt.Printf("Invalid:   %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Valid:     yes")
}

func pickupValue(lvl *runner.Level) int {
	total := 0
	for _, c := range lvl.Collectibles {
		total += c.Value
	}
	return total
}

func hazardCost(lvl *runner.Level) int {
	total := 0
	for _, h := range lvl.Hazards {
		total += h.Value
	}
	return total
}
