package runner

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/aquilax/go-perlin"

	"github.com/vovakirdan/mortgage-runner/internal/config"
	"github.com/vovakirdan/mortgage-runner/internal/core"
)

// Perlin parameters for the ledge height profile. A low n keeps the profile
// smooth so neighbouring ledges step up and down instead of jumping around.
const (
	noiseAlpha = 2.0
	noiseBeta  = 2.0
	noiseN     = 3
	noiseStep  = 0.45 // noise-space distance between neighbouring ledges

	specialLift = 100.0 // height of special boxes above the ground
	rowLift     = 20.0  // gap between a ledge and the coin row above it
	boxLift     = 50.0  // gap between a ledge and the box above it
)

// Gap is a pit carved into the ground.
type Gap struct {
	Start float64
	Width float64
}

// End returns the first x past the gap.
func (g Gap) End() float64 {
	return g.Start + g.Width
}

// Level is the static world for one run. Platforms never change after
// generation; collectible and hazard state lives in the run.
type Level struct {
	Length       float64
	Seed         int64
	Gaps         []Gap
	Platforms    []Platform
	Collectibles []Collectible
	Hazards      []Hazard
	Finish       core.Rect
}

// CarveGround splits one full-length ground segment by the given gaps.
// Every gap must lie strictly inside the level, and gaps must not overlap
// or touch, so every resulting segment has positive width.
func CarveGround(length, y, height float64, gaps []Gap) ([]Platform, error) {
	sorted := make([]Gap, len(gaps))
	copy(sorted, gaps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	segments := []Platform{{Rect: core.NewRect(0, y, length, height), Ground: true}}
	for _, g := range sorted {
		if g.Width <= 0 {
			return nil, fmt.Errorf("runner: gap at %.1f has non-positive width %.1f", g.Start, g.Width)
		}
		if g.Start <= 0 || g.End() >= length {
			return nil, fmt.Errorf("runner: gap [%.1f, %.1f) is outside the level (0, %.1f)", g.Start, g.End(), length)
		}

		last := &segments[len(segments)-1]
		if g.Start <= last.X || g.End() >= last.Right() {
			return nil, fmt.Errorf("runner: gap [%.1f, %.1f) overlaps the previous gap", g.Start, g.End())
		}

		rest := last.Right() - g.End()
		last.W = g.Start - last.X
		segments = append(segments, Platform{
			Rect:   core.NewRect(g.End(), y, rest, height),
			Ground: true,
		})
	}
	return segments, nil
}

// Generator builds levels from a config. It is deterministic for a given
// (config, seed) pair.
type Generator struct {
	cfg        config.RunnerConfig
	rng        *rand.Rand
	noise      *perlin.Perlin
	difficulty *config.DifficultyManager
}

// NewGenerator creates a generator for the given config.
func NewGenerator(cfg config.RunnerConfig) *Generator {
	return &Generator{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
}

// Generate builds the world for a run.
func Generate(cfg config.RunnerConfig, seed int64) (*Level, error) {
	return NewGenerator(cfg).Generate(seed)
}

// Generate builds the world for a run from the given seed.
func (g *Generator) Generate(seed int64) (*Level, error) {
	g.rng = rand.New(rand.NewSource(seed))
	g.noise = perlin.NewPerlin(noiseAlpha, noiseBeta, noiseN, seed)

	lvl := &Level{
		Length: g.cfg.LevelLength(),
		Seed:   seed,
	}

	lvl.Gaps = g.gaps()
	ground, err := CarveGround(lvl.Length, g.cfg.GroundY(), g.cfg.Level.GroundHeight, lvl.Gaps)
	if err != nil {
		return nil, err
	}
	ledges := g.ledges(lvl.Length)

	lvl.Platforms = append(ground, ledges...)
	lvl.Collectibles = g.collectibles(lvl.Length, ledges)
	lvl.Hazards = g.hazards(lvl.Length, lvl.Gaps)

	lvl.Finish = core.NewRect(
		lvl.Length-g.cfg.Level.FinishOffset,
		g.cfg.GroundY()-g.cfg.Level.FinishHeight,
		g.cfg.Level.FinishWidth,
		g.cfg.Level.FinishHeight,
	)
	return lvl, nil
}

func (g *Generator) jitter(max float64) float64 {
	if max <= 0 {
		return 0
	}
	return g.rng.Float64() * max
}

func (g *Generator) gaps() []Gap {
	lc := g.cfg.Level
	gaps := make([]Gap, 0, lc.GapCount)
	for i := 0; i < lc.GapCount; i++ {
		gaps = append(gaps, Gap{
			Start: lc.GapStart + float64(i)*lc.GapStride + g.jitter(lc.GapJitter),
			Width: lc.GapMinWidth + g.jitter(lc.GapWidthJitter),
		})
	}
	return gaps
}

// ledges places elevated platforms at a regular stride. Heights follow a
// perlin profile bounded to [0, PlatformMaxLift] above the base height.
func (g *Generator) ledges(length float64) []Platform {
	lc := g.cfg.Level
	base := g.cfg.Viewport.Height - lc.PlatformBaseY

	ledges := make([]Platform, 0, lc.PlatformCount)
	for i := 0; i < lc.PlatformCount; i++ {
		w := lc.PlatformWidths[i%len(lc.PlatformWidths)]
		x := lc.PlatformStart + float64(i)*lc.PlatformStride + g.jitter(lc.PlatformJitter)
		x = core.ClampF(x, 0, length-w)

		n := g.noise.Noise1D((float64(i) + 0.5) * noiseStep)
		lift := core.ClampF((n+1)/2, 0, 1) * lc.PlatformMaxLift

		ledges = append(ledges, Platform{
			Rect: core.NewRect(x, base-lift, w, lc.PlatformHeight),
		})
	}
	return ledges
}

func (g *Generator) collectibles(length float64, ledges []Platform) []Collectible {
	ic := g.cfg.Items
	var items []Collectible

	coin := func(x, y float64) {
		items = append(items, Collectible{
			Kind:  KindCoin,
			Rect:  core.NewRect(core.ClampF(x, 0, length-ic.CoinSize), y, ic.CoinSize, ic.CoinSize),
			Value: ic.CoinValue,
		})
	}

	// Rows over every other ledge
	for i := 0; i < len(ledges); i += 2 {
		p := ledges[i]
		spacing := p.W / float64(ic.CoinRow+1)
		for j := 1; j <= ic.CoinRow; j++ {
			coin(p.X+spacing*float64(j)-ic.CoinSize/2, p.Y-rowLift-ic.CoinSize)
		}
	}

	// Half-circle arcs at intervals along the level
	if ic.ArcCoins > 1 && ic.ArcEvery > 0 {
		cy := g.cfg.Viewport.Height - ic.ArcCenterY
		for x0 := ic.ArcStart; x0+2*ic.ArcRadius+ic.CoinSize <= length; x0 += ic.ArcEvery {
			cx := x0 + ic.ArcRadius
			for k := 0; k < ic.ArcCoins; k++ {
				theta := math.Pi * float64(k) / float64(ic.ArcCoins-1)
				coin(cx-ic.ArcRadius*math.Cos(theta)-ic.CoinSize/2,
					cy-ic.ArcRadius*math.Sin(theta)-ic.CoinSize/2)
			}
		}
	}

	// Mystery boxes over every third ledge
	for i := 0; i < len(ledges); i += 3 {
		p := ledges[i]
		value := ic.PowerupMinValue
		if ic.PowerupValueRange > 0 {
			value += g.rng.Intn(ic.PowerupValueRange)
		}
		items = append(items, Collectible{
			Kind:  KindPowerup,
			Rect:  core.NewRect(p.X+(p.W-ic.PowerupSize)/2, p.Y-boxLift-ic.PowerupSize, ic.PowerupSize, ic.PowerupSize),
			Value: value,
		})
	}

	for _, x := range ic.SpecialPositions {
		items = append(items, Collectible{
			Kind:    KindPowerup,
			Rect:    core.NewRect(core.ClampF(x, 0, length-ic.PowerupSize), g.cfg.GroundY()-specialLift-ic.PowerupSize, ic.PowerupSize, ic.PowerupSize),
			Value:   ic.SpecialValue,
			Special: true,
		})
	}
	return items
}

// hazards places luxury purchases and market crashes on the ground. A hazard
// that would hang over a pit is pushed past it.
func (g *Generator) hazards(length float64, gaps []Gap) []Hazard {
	hc := g.cfg.Hazards
	groundY := g.cfg.GroundY()
	hazards := make([]Hazard, 0, hc.LuxuryCount+hc.CrashCount)

	for i := 0; i < hc.LuxuryCount; i++ {
		x := hc.LuxuryStart + float64(i)*hc.LuxuryStride + g.jitter(hc.Jitter)
		x = core.ClampF(clearOfGaps(x, hc.LuxurySize, gaps), 0, length-hc.LuxurySize)
		hazards = append(hazards, Hazard{
			Kind:  HazardLuxury,
			Rect:  core.NewRect(x, groundY-hc.LuxurySize, hc.LuxurySize, hc.LuxurySize),
			Value: hc.LuxuryValue,
		})
	}

	for i := 0; i < hc.CrashCount; i++ {
		x := hc.CrashStart + float64(i)*hc.CrashStride + g.jitter(hc.Jitter)
		x = core.ClampF(clearOfGaps(x, hc.CrashSize, gaps), 0, length-hc.CrashSize)

		speed := g.difficulty.Speed(hc.CrashSpeed, i)
		patrol := math.Min(g.difficulty.Range(hc.CrashRange, i), x)
		hazards = append(hazards, Hazard{
			Kind:   HazardCrash,
			Rect:   core.NewRect(x, groundY-hc.CrashSize, hc.CrashSize, hc.CrashSize),
			Value:  hc.CrashValue,
			StartX: x,
			Range:  patrol,
			VX:     -speed,
		})
	}
	return hazards
}

func clearOfGaps(x, w float64, gaps []Gap) float64 {
	for _, gap := range gaps {
		if x < gap.End() && x+w > gap.Start {
			x = gap.End()
		}
	}
	return x
}

// Validate checks that the level is inside its bounds and completable with
// the given jump: every pit can be cleared and every ledge can be reached
// from the ground.
func (l *Level) Validate(limits JumpLimits) error {
	inBounds := func(what string, r core.Rect) error {
		if r.X < 0 || r.Right() > l.Length {
			return fmt.Errorf("runner: %s at x=%.1f w=%.1f is outside [0, %.1f]", what, r.X, r.W, l.Length)
		}
		return nil
	}

	var groundY float64
	for _, p := range l.Platforms {
		if err := inBounds("platform", p.Rect); err != nil {
			return err
		}
		if p.W < 0 {
			return fmt.Errorf("runner: platform at x=%.1f has negative width", p.X)
		}
		if p.Ground {
			groundY = p.Y
		}
	}
	for _, p := range l.Platforms {
		if !p.Ground && groundY-p.Y > limits.MaxHeight {
			return fmt.Errorf("runner: ledge at x=%.1f is %.1f above the ground, max jump is %.1f",
				p.X, groundY-p.Y, limits.MaxHeight)
		}
	}
	for _, g := range l.Gaps {
		if g.Width >= limits.MaxDistance {
			return fmt.Errorf("runner: pit at x=%.1f is %.1f wide, max jump is %.1f", g.Start, g.Width, limits.MaxDistance)
		}
	}
	for _, c := range l.Collectibles {
		if err := inBounds(c.Kind.String(), c.Rect); err != nil {
			return err
		}
	}
	for _, h := range l.Hazards {
		if err := inBounds(h.Kind.String(), h.Rect); err != nil {
			return err
		}
		if h.Patrols() && h.StartX-h.Range < 0 {
			return fmt.Errorf("runner: crash at x=%.1f patrols past the level start", h.StartX)
		}
	}
	return inBounds("finish line", l.Finish)
}

// clone returns a deep copy so a run can mutate flags without touching the
// generated level.
func (l *Level) clone() *Level {
	c := *l
	c.Gaps = append([]Gap(nil), l.Gaps...)
	c.Platforms = append([]Platform(nil), l.Platforms...)
	c.Collectibles = append([]Collectible(nil), l.Collectibles...)
	c.Hazards = append([]Hazard(nil), l.Hazards...)
	return &c
}
