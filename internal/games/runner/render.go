package runner

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/mortgage-runner/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar   = '█'
	PlayerHead   = '◉'
	GroundChar   = '█'
	GrassChar    = '▀'
	LedgeChar    = '▄'
	CoinChar     = '$'
	BoxChar      = '?'
	SpecialChar  = '★'
	LuxuryChar   = '♦'
	CrashChar    = '▼'
	FlagChar     = '⚑'
	PoleChar     = '│'
	MountainChar = '░'
	HillChar     = '▒'
	BushChar     = '♣'
)

const hudRows = 1

// FormatMoney renders an amount as $1,234 or -$1,234.
func FormatMoney(v int) string {
	if v < 0 {
		return "-$" + humanize.Comma(int64(-v))
	}
	return "$" + humanize.Comma(int64(v))
}

// projection maps world units onto screen cells below the HUD.
type projection struct {
	camX   float64
	sx, sy float64 // world units per cell
	top    int
}

func newProjection(sn Snapshot, w, h int) projection {
	rows := core.Max(h-hudRows, 1)
	return projection{
		camX: sn.Camera.X,
		sx:   sn.ViewportW / float64(core.Max(w, 1)),
		sy:   sn.ViewportH / float64(rows),
		top:  hudRows,
	}
}

func (p projection) col(x float64) int {
	return int(math.Floor((x - p.camX) / p.sx))
}

func (p projection) row(y float64) int {
	return p.top + int(math.Floor(y/p.sy))
}

// cells returns the screen rectangle covering r, at least one cell in size.
func (p projection) cells(r core.Rect) (x, y, w, h int) {
	x = p.col(r.X)
	y = p.row(r.Y)
	x1 := int(math.Ceil((r.Right() - p.camX) / p.sx))
	y1 := p.top + int(math.Ceil(r.Bottom()/p.sy))
	return x, y, core.Max(x1-x, 1), core.Max(y1-y, 1)
}

// Render draws the current run to the screen.
func (g *Game) Render(dst *core.Screen) {
	Draw(dst, g.session.Snapshot())
}

// Draw projects a snapshot onto the screen.
func Draw(dst *core.Screen, sn Snapshot) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 {
		return
	}
	p := newProjection(sn, dst.Width(), dst.Height())

	drawBackground(dst, sn, p)
	drawPlatforms(dst, sn, p)

	for _, c := range sn.Collectibles {
		if c.Collected {
			continue
		}
		ch, color := CoinChar, core.ColorGold
		if c.Kind == KindPowerup {
			ch, color = BoxChar, core.ColorPurple
			if c.Special {
				ch, color = SpecialChar, core.ColorHighTier
			}
		}
		x, y, w, h := p.cells(c.Rect)
		dst.FillRect(x, y, w, h, ch, color)
	}

	for _, hz := range sn.Hazards {
		if hz.Hit {
			continue
		}
		ch, color := LuxuryChar, core.ColorOrange
		if hz.Kind == HazardCrash {
			ch, color = CrashChar, core.ColorRed
		}
		x, y, w, h := p.cells(hz.Rect)
		dst.FillRect(x, y, w, h, ch, color)
	}

	drawFinish(dst, sn, p)
	drawPlayer(dst, sn, p)
	drawHUD(dst, sn)
	drawOverlay(dst, sn)
}

// drawBackground paints the parallax layers. Each layer scrolls with its own
// camera offset so distant scenery moves slower.
func drawBackground(dst *core.Screen, sn Snapshot, p projection) {
	horizon := p.row(sn.ViewportH) - 1
	for _, pl := range sn.Platforms {
		if pl.Ground {
			horizon = p.row(pl.Y) - 1
			break
		}
	}
	worldRows := horizon - p.top
	if worldRows <= 0 {
		return
	}

	for col := 0; col < dst.Width(); col++ {
		base := float64(col) * p.sx

		far := skyline(base+sn.Camera.Far, 173, 61)
		for r := 0; r < int(far*float64(worldRows)/2); r++ {
			dst.SetColor(col, horizon-r, MountainChar, core.ColorSky)
		}

		mid := skyline(base+sn.Camera.Mid, 97, 41)
		for r := 0; r < int(mid*float64(worldRows)/4); r++ {
			dst.SetColor(col, horizon-r, HillChar, core.ColorHill)
		}

		// Bushes every few hundred units on the near layer
		wx := base + sn.Camera.Near
		if math.Mod(wx, 280) < p.sx {
			dst.SetColor(col, horizon, BushChar, core.ColorGrass)
		}
	}
}

// skyline returns a smooth height in [0, 1] for a background layer.
func skyline(x, long, short float64) float64 {
	v := math.Sin(x/long) + 0.5*math.Sin(x/short+1.3)
	return (v + 1.5) / 3
}

func drawPlatforms(dst *core.Screen, sn Snapshot, p projection) {
	for _, pl := range sn.Platforms {
		x, y, w, h := p.cells(pl.Rect)
		if pl.Ground {
			// Ground extends to the bottom of the screen
			h = core.Max(h, dst.Height()-y)
			dst.FillRect(x, y, w, h, GroundChar, core.ColorDirt)
			dst.DrawHLine(x, y, w, GrassChar, core.ColorGrass)
			continue
		}
		dst.FillRect(x, y, w, h, LedgeChar, core.ColorDirt)
	}
}

func drawFinish(dst *core.Screen, sn Snapshot, p projection) {
	x, y, _, h := p.cells(sn.Finish)
	for dy := 0; dy < h; dy++ {
		dst.SetColor(x, y+dy, PoleChar, core.ColorWhite)
	}
	dst.SetColor(x+1, y, FlagChar, core.ColorGreen)
}

func drawPlayer(dst *core.Screen, sn Snapshot, p projection) {
	x, y, w, h := p.cells(sn.Player.Rect())
	if sn.Player.Ducking {
		// Crouched: only the lower half is drawn, the hitbox is unchanged
		half := core.Max(h/2, 1)
		dst.FillRect(x, y+h-half, w, half, PlayerChar, core.ColorPlayer)
		return
	}
	dst.FillRect(x, y, w, h, PlayerChar, core.ColorPlayer)
	dst.SetColor(x+w/2, y, PlayerHead, core.ColorPlayer)
}

func drawHUD(dst *core.Screen, sn Snapshot) {
	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorGray)

	moneyColor := core.ColorGreen
	if sn.NetWorth < sn.Stake {
		moneyColor = core.ColorRed
	}
	money := " " + FormatMoney(sn.NetWorth) + " "
	dst.DrawTextColor(1, 0, money, moneyColor)

	timeColor := core.ColorWhite
	if sn.TimeLeft <= 10 {
		timeColor = core.ColorRed
	}
	clock := fmt.Sprintf(" %ds ", sn.TimeLeft)
	x := 1 + utf8.RuneCountInString(money) + 1
	dst.DrawTextColor(x, 0, clock, timeColor)
	x += utf8.RuneCountInString(clock) + 1

	got, total := sn.CoinCount()
	coins := fmt.Sprintf(" %c %d/%d ", CoinChar, got, total)
	dst.DrawTextColor(x, 0, coins, core.ColorGold)
	x += utf8.RuneCountInString(coins) + 1

	const barW = 12
	filled := int(math.Round(sn.Progress() * barW))
	bar := "[" + strings.Repeat("=", filled) + strings.Repeat("·", barW-filled) + "]"
	dst.DrawTextColor(x, 0, bar, core.ColorGray)

	if sn.Phase == PhasePaused {
		label := " PAUSED "
		dst.DrawTextColor(dst.Width()-utf8.RuneCountInString(label)-1, 0, label, core.ColorWhite)
	}
}

func drawOverlay(dst *core.Screen, sn Snapshot) {
	switch sn.Phase {
	case PhaseNotStarted:
		drawCenteredMessage(dst, "READY?", "Move or jump to start the clock", core.ColorWhite)
	case PhasePaused:
		drawCenteredMessage(dst, "PAUSED", "P resume  ·  R restart  ·  B menu", core.ColorWhite)
	case PhaseVictory:
		drawCenteredMessage(dst, "MORTGAGE PAID OFF!",
			fmt.Sprintf("Net worth %s  ·  R to run again", FormatMoney(sn.NetWorth)), core.ColorGreen)
	case PhaseDefeat:
		title, sub := DefeatMessage(sn.Reason)
		drawCenteredMessage(dst, title, sub+"  ·  R to retry", core.ColorRed)
	}
}

// DefeatMessage returns the headline and explanation for a defeat.
func DefeatMessage(r DefeatReason) (title, detail string) {
	switch r {
	case ReasonFellIntoPit:
		return "FORECLOSED", "You fell into a pit"
	case ReasonBankrupt:
		return "BANKRUPT", "Your net worth hit zero"
	case ReasonTimeExpired:
		return "TIME'S UP", "The bank called in the loan"
	default:
		return "GAME OVER", ""
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := core.Max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH, core.ColorGray)

	// Draw text
	titleX := boxX + (boxW-utf8.RuneCountInString(title))/2
	dst.DrawTextColor(titleX, boxY+1, title, c)

	subtitleX := boxX + (boxW-utf8.RuneCountInString(subtitle))/2
	dst.DrawTextColor(subtitleX, boxY+3, subtitle, core.ColorWhite)
}
