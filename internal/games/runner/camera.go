package runner

import (
	"math"

	"github.com/vovakirdan/mortgage-runner/internal/config"
	"github.com/vovakirdan/mortgage-runner/internal/core"
)

// follow eases the camera toward keeping the player a third of the way into
// the viewport, then clamps to the level.
func (c *Camera) follow(playerX, viewportW, levelLength float64, cc config.RunnerCamera) {
	target := math.Max(0, playerX-viewportW*cc.Lead)
	c.X += (target - c.X) * cc.Smoothing
	c.X = core.ClampF(c.X, 0, math.Max(0, levelLength-viewportW))
	c.Y = 0

	c.Far = c.X * cc.Far
	c.Mid = c.X * cc.Mid
	c.Near = c.X * cc.Near
}
