// Package config provides YAML-based game configuration loading and
// difficulty management for the runner.
package config

// RunnerConfig contains all tuning for Mortgage Runner. The generator,
// physics and camera all read from the same value so the level is always
// built for the jump the player can actually make.
type RunnerConfig struct {
	Viewport   RunnerViewport   `yaml:"viewport" toml:"viewport"`
	Physics    RunnerPhysics    `yaml:"physics" toml:"physics"`
	Player     RunnerPlayer     `yaml:"player" toml:"player"`
	Level      RunnerLevel      `yaml:"level" toml:"level"`
	Items      RunnerItems      `yaml:"items" toml:"items"`
	Hazards    RunnerHazards    `yaml:"hazards" toml:"hazards"`
	Economy    RunnerEconomy    `yaml:"economy" toml:"economy"`
	Camera     RunnerCamera     `yaml:"camera" toml:"camera"`
	Input      RunnerInput      `yaml:"input" toml:"input"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// RunnerViewport is the visible window onto the world, in world units.
type RunnerViewport struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// RunnerPhysics defines player kinematics. Velocities are per nominal 16ms frame.
type RunnerPhysics struct {
	Gravity     float64 `yaml:"gravity" toml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse" toml:"jump_impulse"`
	Speed       float64 `yaml:"speed" toml:"speed"`
	Friction    float64 `yaml:"friction" toml:"friction"`
	FrameMs     int     `yaml:"frame_ms" toml:"frame_ms"`
}

// RunnerPlayer defines the player hitbox and spawn point.
type RunnerPlayer struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	SpawnX float64 `yaml:"spawn_x" toml:"spawn_x"`
	SpawnY float64 `yaml:"spawn_y" toml:"spawn_y"` // offset up from the viewport bottom
}

// RunnerLevel defines terrain generation.
type RunnerLevel struct {
	Multiplier      int       `yaml:"multiplier" toml:"multiplier"` // level length in viewport widths
	GroundHeight    float64   `yaml:"ground_height" toml:"ground_height"`
	GapCount        int       `yaml:"gap_count" toml:"gap_count"`
	GapStart        float64   `yaml:"gap_start" toml:"gap_start"`
	GapStride       float64   `yaml:"gap_stride" toml:"gap_stride"`
	GapJitter       float64   `yaml:"gap_jitter" toml:"gap_jitter"`
	GapMinWidth     float64   `yaml:"gap_min_width" toml:"gap_min_width"`
	GapWidthJitter  float64   `yaml:"gap_width_jitter" toml:"gap_width_jitter"`
	PlatformCount   int       `yaml:"platform_count" toml:"platform_count"`
	PlatformStart   float64   `yaml:"platform_start" toml:"platform_start"`
	PlatformStride  float64   `yaml:"platform_stride" toml:"platform_stride"`
	PlatformJitter  float64   `yaml:"platform_jitter" toml:"platform_jitter"`
	PlatformWidths  []float64 `yaml:"platform_widths" toml:"platform_widths"`
	PlatformHeight  float64   `yaml:"platform_height" toml:"platform_height"`
	PlatformBaseY   float64   `yaml:"platform_base_y" toml:"platform_base_y"`     // offset up from the viewport bottom
	PlatformMaxLift float64   `yaml:"platform_max_lift" toml:"platform_max_lift"` // extra height from noise
	FinishOffset    float64   `yaml:"finish_offset" toml:"finish_offset"`         // distance of the flag from the level end
	FinishWidth     float64   `yaml:"finish_width" toml:"finish_width"`
	FinishHeight    float64   `yaml:"finish_height" toml:"finish_height"`
}

// RunnerItems defines coins and mystery boxes.
type RunnerItems struct {
	CoinSize          float64   `yaml:"coin_size" toml:"coin_size"`
	CoinValue         int       `yaml:"coin_value" toml:"coin_value"`
	CoinRow           int       `yaml:"coin_row" toml:"coin_row"`
	ArcCoins          int       `yaml:"arc_coins" toml:"arc_coins"`
	ArcStart          float64   `yaml:"arc_start" toml:"arc_start"`
	ArcEvery          float64   `yaml:"arc_every" toml:"arc_every"`
	ArcRadius         float64   `yaml:"arc_radius" toml:"arc_radius"`
	ArcCenterY        float64   `yaml:"arc_center_y" toml:"arc_center_y"` // offset up from the viewport bottom
	PowerupSize       float64   `yaml:"powerup_size" toml:"powerup_size"`
	PowerupMinValue   int       `yaml:"powerup_min_value" toml:"powerup_min_value"`
	PowerupValueRange int       `yaml:"powerup_value_range" toml:"powerup_value_range"`
	SpecialPositions  []float64 `yaml:"special_positions" toml:"special_positions"`
	SpecialValue      int       `yaml:"special_value" toml:"special_value"`
}

// RunnerHazards defines luxury purchases and market crashes.
type RunnerHazards struct {
	LuxuryCount  int     `yaml:"luxury_count" toml:"luxury_count"`
	LuxuryStart  float64 `yaml:"luxury_start" toml:"luxury_start"`
	LuxuryStride float64 `yaml:"luxury_stride" toml:"luxury_stride"`
	LuxurySize   float64 `yaml:"luxury_size" toml:"luxury_size"`
	LuxuryValue  int     `yaml:"luxury_value" toml:"luxury_value"`
	CrashCount   int     `yaml:"crash_count" toml:"crash_count"`
	CrashStart   float64 `yaml:"crash_start" toml:"crash_start"`
	CrashStride  float64 `yaml:"crash_stride" toml:"crash_stride"`
	CrashSize    float64 `yaml:"crash_size" toml:"crash_size"`
	CrashValue   int     `yaml:"crash_value" toml:"crash_value"`
	CrashSpeed   float64 `yaml:"crash_speed" toml:"crash_speed"` // patrol speed of the first crash
	CrashRange   float64 `yaml:"crash_range" toml:"crash_range"` // patrol range of the first crash
	Jitter       float64 `yaml:"jitter" toml:"jitter"`
}

// RunnerEconomy defines the starting stake and the countdown.
type RunnerEconomy struct {
	Stake     int `yaml:"stake" toml:"stake"`
	Countdown int `yaml:"countdown" toml:"countdown"` // seconds
}

// RunnerCamera defines scroll smoothing and parallax ratios.
type RunnerCamera struct {
	Lead      float64 `yaml:"lead" toml:"lead"` // fraction of the viewport kept ahead of the player
	Smoothing float64 `yaml:"smoothing" toml:"smoothing"`
	Far       float64 `yaml:"far" toml:"far"`
	Mid       float64 `yaml:"mid" toml:"mid"`
	Near      float64 `yaml:"near" toml:"near"`
}

// RunnerInput defines how terminal key repeats become held intents.
type RunnerInput struct {
	HoldMs int `yaml:"hold_ms" toml:"hold_ms"`
}

// LevelLength returns the world length for this config.
func (c RunnerConfig) LevelLength() float64 {
	return c.Viewport.Width * float64(c.Level.Multiplier)
}

// GroundY returns the top edge of the ground.
func (c RunnerConfig) GroundY() float64 {
	return c.Viewport.Height - c.Level.GroundHeight
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines how difficulty increases along the level.
type ProgressionConfig struct {
	Type  string `yaml:"type" toml:"type"`     // "index" or "none"
	MaxAt int    `yaml:"max_at" toml:"max_at"` // hazard index at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" toml:"speed_multiplier"` // Multiplier added to patrol speed at max difficulty
	RangeMultiplier float64 `yaml:"range_multiplier" toml:"range_multiplier"` // Multiplier added to patrol range at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
