package config

import "math"

// DifficultyManager calculates dynamic game parameters based on how far
// along the level an object sits.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) for the object at index.
func (d *DifficultyManager) Level(index int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	if d.cfg.Progression.Type != "index" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(index)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the patrol speed for the given difficulty step.
func (d *DifficultyManager) Speed(baseSpeed float64, index int) float64 {
	level := d.Level(index)
	// Speed increases from base to base * (1 + speedMultiplier)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// Range returns the patrol range for the given difficulty step.
func (d *DifficultyManager) Range(baseRange float64, index int) float64 {
	level := d.Level(index)
	return baseRange * (1.0 + level*d.cfg.Scaling.RangeMultiplier)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
