package runner

import "github.com/vovakirdan/mortgage-runner/internal/core"

// ground snaps a descending player onto the highest platform whose top their
// feet reached this frame. prevBottom is where the feet were before the
// frame's move, so a fast fall that skips a platform's whole band still lands.
// With no support the player is airborne.
func ground(p *Player, prevBottom float64, platforms []Platform) {
	if p.VY <= 0 {
		p.Jumping = true
		return
	}

	bottom := p.Y + p.Height
	top, found := 0.0, false
	for _, pl := range platforms {
		if !p.Rect().OverlapsX(pl.Rect) || bottom < pl.Y {
			continue
		}
		crossed := prevBottom <= pl.Y
		inBand := bottom <= pl.Bottom()
		if (crossed || inBand) && (!found || pl.Y < top) {
			top, found = pl.Y, true
		}
	}

	if found {
		p.Y = top - p.Height
		p.VY = 0
	}
	p.Jumping = !found
}

// collect marks every untouched collectible the player overlaps.
func collect(r core.Rect, items []Collectible) []core.Event {
	var events []core.Event
	for i := range items {
		c := &items[i]
		if c.Collected || !r.Intersects(c.Rect) {
			continue
		}
		c.Collected = true
		switch c.Kind {
		case KindCoin:
			events = append(events, CoinCollected{Value: c.Value})
		case KindPowerup:
			events = append(events, PowerupCollected{Value: c.Value, Special: c.Special})
		}
	}
	return events
}

// strike marks every untouched hazard the player overlaps.
func strike(r core.Rect, hazards []Hazard) []core.Event {
	var events []core.Event
	for i := range hazards {
		h := &hazards[i]
		if h.Hit || !r.Intersects(h.Rect) {
			continue
		}
		h.Hit = true
		events = append(events, HazardHit{Kind: h.Kind, Value: h.Value})
	}
	return events
}

// NetWorth derives the player's money from the stake and the flags alone.
func NetWorth(stake int, items []Collectible, hazards []Hazard) int {
	total := stake
	for _, c := range items {
		if c.Collected {
			total += c.Value
		}
	}
	for _, h := range hazards {
		if h.Hit {
			total -= h.Value
		}
	}
	return total
}
