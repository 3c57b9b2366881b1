package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mortgage-runner/internal/config"
)

func TestCarveGround(t *testing.T) {
	segs, err := CarveGround(3200, 380, 20, []Gap{{Start: 1500, Width: 100}, {Start: 600, Width: 80}})
	require.NoError(t, err)
	require.Len(t, segs, 3)

	assert.Equal(t, 0.0, segs[0].X)
	assert.Equal(t, 600.0, segs[0].W)
	assert.Equal(t, 680.0, segs[1].X)
	assert.Equal(t, 820.0, segs[1].W)
	assert.Equal(t, 1600.0, segs[2].X)
	assert.Equal(t, 1600.0, segs[2].W)

	total := 0.0
	for _, s := range segs {
		assert.True(t, s.Ground)
		assert.Equal(t, 380.0, s.Y)
		total += s.W
	}
	assert.Equal(t, 3200.0-180, total)
}

func TestCarveGroundErrors(t *testing.T) {
	tests := []struct {
		name string
		gaps []Gap
	}{
		{"overlapping", []Gap{{Start: 500, Width: 100}, {Start: 550, Width: 100}}},
		{"touching", []Gap{{Start: 500, Width: 100}, {Start: 600, Width: 50}}},
		{"at level start", []Gap{{Start: 0, Width: 50}}},
		{"past level end", []Gap{{Start: 3190, Width: 50}}},
		{"zero width", []Gap{{Start: 800, Width: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CarveGround(3200, 380, 20, tt.gaps)
			assert.Error(t, err)
		})
	}
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := config.DefaultRunnerConfig()

	a, err := Generate(cfg, 1234)
	require.NoError(t, err)
	b, err := Generate(cfg, 1234)
	require.NoError(t, err)
	assert.Equal(t, a, b, "same seed should build the same level")

	c, err := Generate(cfg, 4321)
	require.NoError(t, err)
	assert.NotEqual(t, a.Gaps, c.Gaps, "different seeds should carve different pits")
}

func TestGenerateValidForManySeeds(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	limits := JumpLimitsFor(cfg.Physics)

	for seed := int64(1); seed <= 300; seed++ {
		lvl, err := Generate(cfg, seed)
		require.NoError(t, err, "seed %d", seed)
		require.NoError(t, lvl.Validate(limits), "seed %d", seed)
	}
}

func TestGenerateLayout(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	lvl, err := Generate(cfg, 99)
	require.NoError(t, err)

	assert.Equal(t, 3200.0, lvl.Length)

	var ground, ledges int
	for _, p := range lvl.Platforms {
		if p.Ground {
			ground++
			continue
		}
		ledges++
		assert.Contains(t, []float64{100, 130, 160}, p.W)
		assert.GreaterOrEqual(t, p.Y, 300.0-80)
		assert.LessOrEqual(t, p.Y, 300.0)
	}
	assert.Equal(t, cfg.Level.GapCount+1, ground)
	assert.Equal(t, cfg.Level.PlatformCount, ledges)

	var coins, boxes, specials int
	for _, c := range lvl.Collectibles {
		switch {
		case c.Kind == KindCoin:
			coins++
			assert.Equal(t, 100, c.Value)
			assert.Equal(t, 20.0, c.Rect.W)
		case c.Special:
			specials++
			assert.Equal(t, 1500, c.Value)
		default:
			boxes++
			assert.GreaterOrEqual(t, c.Value, 250)
			assert.Less(t, c.Value, 1000)
		}
	}
	// 5 rows of 3 plus 5 arcs of 5
	assert.Equal(t, 5*3+5*5, coins)
	assert.Equal(t, 4, boxes)
	assert.Equal(t, 2, specials)

	assert.Equal(t, 3050.0, lvl.Finish.X)
	assert.Equal(t, 320.0, lvl.Finish.Y)
	assert.Equal(t, 50.0, lvl.Finish.W)
	assert.Equal(t, 60.0, lvl.Finish.H)
}

func TestCrashHazardsRampWithIndex(t *testing.T) {
	lvl, err := Generate(config.DefaultRunnerConfig(), 7)
	require.NoError(t, err)

	var crashes []Hazard
	luxury := 0
	for _, h := range lvl.Hazards {
		if h.Kind == HazardCrash {
			crashes = append(crashes, h)
		} else {
			luxury++
			assert.Equal(t, 500, h.Value)
			assert.Zero(t, h.VX)
		}
	}
	require.Len(t, crashes, 4)
	assert.Equal(t, 6, luxury)

	assert.InDelta(t, 1.0, -crashes[0].VX, 1e-9)
	assert.InDelta(t, 100.0, crashes[0].Range, 1e-9)
	for i := 1; i < len(crashes); i++ {
		assert.Greater(t, -crashes[i].VX, -crashes[i-1].VX, "speed should grow with index")
		assert.Greater(t, crashes[i].Range, crashes[i-1].Range, "range should grow with index")
	}
	assert.InDelta(t, 2.0, -crashes[3].VX, 1e-9)
	assert.InDelta(t, 200.0, crashes[3].Range, 1e-9)
}

func TestFixedPresetFlattensRamp(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	config.ApplyRunnerPreset(&cfg, config.DifficultyFixed)

	lvl, err := Generate(cfg, 7)
	require.NoError(t, err)
	for _, h := range lvl.Hazards {
		if h.Kind == HazardCrash {
			assert.InDelta(t, 1.0, -h.VX, 1e-9)
		}
	}
}

func TestValidateRejectsUnreachableLedge(t *testing.T) {
	lvl := flatLevel(3200)
	lvl.Platforms = append(lvl.Platforms, Platform{Rect: lvl.Platforms[0].Rect})
	lvl.Platforms[1].X, lvl.Platforms[1].W, lvl.Platforms[1].Y = 500, 100, 100

	err := lvl.Validate(JumpLimitsFor(config.DefaultRunnerConfig().Physics))
	assert.ErrorContains(t, err, "ledge")
}

func TestValidateRejectsWidePit(t *testing.T) {
	lvl := flatLevel(3200)
	lvl.Gaps = []Gap{{Start: 1000, Width: 300}}

	err := lvl.Validate(JumpLimitsFor(config.DefaultRunnerConfig().Physics))
	assert.ErrorContains(t, err, "pit")
}
