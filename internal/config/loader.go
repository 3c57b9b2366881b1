package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadRunner loads Mortgage Runner configuration.
// Search order: customPath -> ~/.runner/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
//
// Files are decoded over the hardcoded defaults, so a file only needs the keys
// it changes. A customPath ending in .toml is decoded as TOML.
func LoadRunner(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg := DefaultRunnerConfig()
		if err := decodeFile(customPath, &cfg); err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("runner.yaml"); userCfgPath != "" {
		cfg := DefaultRunnerConfig()
		if err := decodeFile(userCfgPath, &cfg); err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	cfg := DefaultRunnerConfig()
	if err := decodeFile(filepath.Join("configs", "runner.yaml"), &cfg); err == nil && cfg.Validate() == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg = DefaultRunnerConfig()
	if err := yaml.Unmarshal(defaultRunnerYAML, &cfg); err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func decodeFile(path string, cfg *RunnerConfig) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".runner", "configs", filename)
}

// Validate rejects configs the simulation cannot run with.
func (c RunnerConfig) Validate() error {
	switch {
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("config: viewport must be positive, got %vx%v", c.Viewport.Width, c.Viewport.Height)
	case c.Level.Multiplier < 1:
		return fmt.Errorf("config: level multiplier must be at least 1, got %d", c.Level.Multiplier)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("config: gravity must be positive, got %v", c.Physics.Gravity)
	case c.Physics.JumpImpulse >= 0:
		return fmt.Errorf("config: jump impulse must be negative (up), got %v", c.Physics.JumpImpulse)
	case c.Physics.Friction < 0 || c.Physics.Friction >= 1:
		return fmt.Errorf("config: friction must be in [0, 1), got %v", c.Physics.Friction)
	case c.Physics.FrameMs <= 0:
		return fmt.Errorf("config: frame_ms must be positive, got %d", c.Physics.FrameMs)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("config: player size must be positive")
	case len(c.Level.PlatformWidths) == 0:
		return fmt.Errorf("config: platform_widths must not be empty")
	case c.Economy.Stake <= 0:
		return fmt.Errorf("config: stake must be positive, got %d", c.Economy.Stake)
	case c.Economy.Countdown <= 0:
		return fmt.Errorf("config: countdown must be positive, got %d", c.Economy.Countdown)
	}
	return nil
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the economy based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Economy.Stake = 1500
		cfg.Economy.Countdown = 120
	case DifficultyHard:
		cfg.Economy.Stake = 750
		cfg.Economy.Countdown = 80
	}
}
