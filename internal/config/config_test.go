package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var cfg RunnerConfig
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		t.Fatalf("embedded runner.yaml does not parse: %v", err)
	}
	if want := DefaultRunnerConfig(); !reflect.DeepEqual(cfg, want) {
		t.Errorf("embedded YAML differs from DefaultRunnerConfig:\n got  %+v\n want %+v", cfg, want)
	}
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := DefaultRunnerConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.LevelLength() != 3200 {
		t.Errorf("LevelLength() = %v, expected 3200", cfg.LevelLength())
	}
	if cfg.GroundY() != 380 {
		t.Errorf("GroundY() = %v, expected 380", cfg.GroundY())
	}
}

func TestLoadRunnerCustomYAMLOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := []byte("economy:\n  stake: 2500\nlevel:\n  platform_widths: [90]\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner: %v", err)
	}
	if cfg.Economy.Stake != 2500 {
		t.Errorf("Stake = %d, expected 2500", cfg.Economy.Stake)
	}
	if !reflect.DeepEqual(cfg.Level.PlatformWidths, []float64{90}) {
		t.Errorf("PlatformWidths = %v, expected [90]", cfg.Level.PlatformWidths)
	}
	if cfg.Economy.Countdown != 100 {
		t.Errorf("unset keys should keep defaults, Countdown = %d", cfg.Economy.Countdown)
	}
}

func TestLoadRunnerTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.toml")
	data := []byte("[physics]\ngravity = 0.5\n\n[input]\nhold_ms = 250\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner: %v", err)
	}
	if cfg.Physics.Gravity != 0.5 {
		t.Errorf("Gravity = %v, expected 0.5", cfg.Physics.Gravity)
	}
	if cfg.Input.HoldMs != 250 {
		t.Errorf("HoldMs = %d, expected 250", cfg.Input.HoldMs)
	}
	if cfg.Physics.Speed != 5 {
		t.Errorf("Speed = %v, expected default 5", cfg.Physics.Speed)
	}
}

func TestLoadRunnerErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadRunner(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom file should return an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRunner(bad); err == nil {
		t.Error("malformed YAML should return an error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("physics:\n  jump_impulse: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRunner(invalid); err == nil {
		t.Error("downward jump impulse should fail validation")
	}
}

func TestApplyRunnerPreset(t *testing.T) {
	tests := []struct {
		preset    DifficultyPreset
		enabled   bool
		initial   float64
		stake     int
		countdown int
	}{
		{DifficultyEasy, true, 0.0, 1500, 120},
		{DifficultyNormal, true, 0.3, 1000, 100},
		{DifficultyHard, true, 0.7, 750, 80},
		{DifficultyFixed, false, 0.0, 1000, 100},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyRunnerPreset(&cfg, tt.preset)

			if cfg.Difficulty.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tt.enabled)
			}
			if cfg.Difficulty.InitialLevel != tt.initial {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tt.initial)
			}
			if cfg.Economy.Stake != tt.stake || cfg.Economy.Countdown != tt.countdown {
				t.Errorf("economy = %d/%ds, expected %d/%ds",
					cfg.Economy.Stake, cfg.Economy.Countdown, tt.stake, tt.countdown)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if ParsePreset("hard") != DifficultyHard {
		t.Error("ParsePreset(hard) should map to DifficultyHard")
	}
	if ParsePreset("insane") != "" {
		t.Error("unknown preset should map to empty")
	}
}

func TestDifficultyRamp(t *testing.T) {
	dm := NewDifficultyManager(DefaultRunnerConfig().Difficulty)

	tests := []struct {
		index int
		speed float64
		rng   float64
	}{
		{0, 1.0, 100},
		{1, 1.0 + 1.0/3.0, 100 + 100.0/3.0},
		{3, 2.0, 200},
		{10, 2.0, 200}, // clamped past max_at
	}
	for _, tt := range tests {
		if got := dm.Speed(1.0, tt.index); math.Abs(got-tt.speed) > 1e-9 {
			t.Errorf("Speed(index=%d) = %v, expected %v", tt.index, got, tt.speed)
		}
		if got := dm.Range(100, tt.index); math.Abs(got-tt.rng) > 1e-9 {
			t.Errorf("Range(index=%d) = %v, expected %v", tt.index, got, tt.rng)
		}
	}
}

func TestDifficultyDisabledUsesInitialLevel(t *testing.T) {
	cfg := DefaultRunnerConfig().Difficulty
	cfg.InitialLevel = 0.5
	cfg.Enabled = false
	dm := NewDifficultyManager(cfg)

	if dm.IsEnabled() {
		t.Error("IsEnabled should be false when disabled in config")
	}
	for _, idx := range []int{0, 2, 3} {
		if got := dm.Level(idx); got != 0.5 {
			t.Errorf("Level(%d) = %v, expected fixed 0.5", idx, got)
		}
	}

	cfg.InitialLevel = 4
	if got := NewDifficultyManager(cfg).Level(0); got != 1.0 {
		t.Errorf("initial level should clamp to 1.0, got %v", got)
	}
}

func TestDifficultyUnknownProgressionStaysFlat(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	})
	if got := dm.Level(3); got != 0.2 {
		t.Errorf("Level with unsupported progression = %v, expected initial 0.2", got)
	}
}
