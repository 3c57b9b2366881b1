package runner

import "github.com/vovakirdan/mortgage-runner/internal/core"

// Player is the runner. The hitbox never changes size, ducking included.
type Player struct {
	X, Y          float64
	Width, Height float64
	VX, VY        float64
	Jumping       bool // airborne
	Ducking       bool
}

// Rect returns the player's collision rectangle.
func (p Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.Width, p.Height)
}

// Platform is a static surface the player can stand on.
type Platform struct {
	core.Rect
	Ground bool // ground segment rather than an elevated ledge
}

// CollectibleKind distinguishes pickups.
type CollectibleKind int

const (
	KindCoin CollectibleKind = iota
	KindPowerup
)

func (k CollectibleKind) String() string {
	switch k {
	case KindCoin:
		return "coin"
	case KindPowerup:
		return "powerup"
	default:
		return "unknown"
	}
}

// Collectible is a coin or mystery box. Collected flips once and never reverts.
type Collectible struct {
	Kind      CollectibleKind
	Rect      core.Rect
	Value     int
	Collected bool
	Special   bool // placed at a fixed high-tier position
}

// HazardKind distinguishes stationary and patrolling hazards.
type HazardKind int

const (
	HazardLuxury HazardKind = iota // stationary luxury purchase
	HazardCrash                    // patrolling market crash
)

func (k HazardKind) String() string {
	switch k {
	case HazardLuxury:
		return "luxury"
	case HazardCrash:
		return "crash"
	default:
		return "unknown"
	}
}

// Hazard costs Value on first contact. Crash hazards patrol the band
// [StartX-Range, StartX]; luxury hazards leave the patrol fields zero.
type Hazard struct {
	Kind   HazardKind
	Rect   core.Rect
	Value  int
	Hit    bool
	StartX float64
	Range  float64
	VX     float64
}

// Patrols reports whether the hazard moves.
func (h Hazard) Patrols() bool {
	return h.Kind == HazardCrash
}

// Camera is the scroll position of the viewport plus derived parallax offsets.
// Y is nominal and always zero.
type Camera struct {
	X, Y           float64
	Far, Mid, Near float64
}
