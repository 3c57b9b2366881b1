package core

// Color is a palette slot for a screen cell. The platform maps each slot to
// an ANSI 256-color code, so games never deal with terminal escapes.
type Color uint8

// Palette slots used by the runner scene.
const (
	ColorDefault Color = iota
	ColorSky           // far parallax layer (mountains, clouds)
	ColorHill          // mid parallax layer
	ColorGrass         // ground top edge
	ColorDirt          // platforms
	ColorPlayer
	ColorGold    // coins
	ColorPurple  // mystery boxes
	ColorOrange  // luxury purchases
	ColorRed     // market crashes, negative money
	ColorGreen   // finish flag, positive money
	ColorWhite   // HUD text
	ColorGray    // HUD chrome
	ColorHighTier
)
