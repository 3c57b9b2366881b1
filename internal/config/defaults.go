package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default Mortgage Runner configuration.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Viewport: RunnerViewport{
			Width:  800,
			Height: 400,
		},
		Physics: RunnerPhysics{
			Gravity:     0.6,
			JumpImpulse: -15,
			Speed:       5,
			Friction:    0.8,
			FrameMs:     16,
		},
		Player: RunnerPlayer{
			Width:  40,
			Height: 60,
			SpawnX: 50,
			SpawnY: 80,
		},
		Level: RunnerLevel{
			Multiplier:      4,
			GroundHeight:    20,
			GapCount:        5,
			GapStart:        500,
			GapStride:       500,
			GapJitter:       150,
			GapMinWidth:     60,
			GapWidthJitter:  60,
			PlatformCount:   10,
			PlatformStart:   300,
			PlatformStride:  250,
			PlatformJitter:  40,
			PlatformWidths:  []float64{100, 130, 160},
			PlatformHeight:  20,
			PlatformBaseY:   100,
			PlatformMaxLift: 80,
			FinishOffset:    150,
			FinishWidth:     50,
			FinishHeight:    60,
		},
		Items: RunnerItems{
			CoinSize:          20,
			CoinValue:         100,
			CoinRow:           3,
			ArcCoins:          5,
			ArcStart:          450,
			ArcEvery:          600,
			ArcRadius:         50,
			ArcCenterY:        150,
			PowerupSize:       30,
			PowerupMinValue:   250,
			PowerupValueRange: 750,
			SpecialPositions:  []float64{1250, 2450},
			SpecialValue:      1500,
		},
		Hazards: RunnerHazards{
			LuxuryCount:  6,
			LuxuryStart:  300,
			LuxuryStride: 400,
			LuxurySize:   40,
			LuxuryValue:  500,
			CrashCount:   4,
			CrashStart:   600,
			CrashStride:  550,
			CrashSize:    50,
			CrashValue:   1000,
			CrashSpeed:   1.0,
			CrashRange:   100,
			Jitter:       150,
		},
		Economy: RunnerEconomy{
			Stake:     1000,
			Countdown: 100,
		},
		Camera: RunnerCamera{
			Lead:      1.0 / 3.0,
			Smoothing: 0.1,
			Far:       0.2,
			Mid:       0.5,
			Near:      0.8,
		},
		Input: RunnerInput{
			HoldMs: 180,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "index",
				MaxAt: 3,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				RangeMultiplier: 1.0,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "runner", "runner_rush":
		return defaultRunnerYAML
	default:
		return nil
	}
}
