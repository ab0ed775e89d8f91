package dash

import (
	"math/rand"

	"github.com/vovakirdan/tui-dash/internal/config"
)

// Camera is the horizontal scroll offset plus screen shake.
type Camera struct {
	X     float64
	Shake float64
	cfg   config.CameraConfig
}

// NewCamera creates a camera at the level start.
func NewCamera(cfg config.CameraConfig) Camera {
	return Camera{cfg: cfg}
}

// Reset returns to the level start without shake.
func (c *Camera) Reset() {
	c.X = 0
	c.Shake = 0
}

// Follow eases the camera toward a point ahead of the player. The camera
// never snaps, it closes a fixed fraction of the gap every tick.
func (c *Camera) Follow(playerX float64) {
	target := playerX - c.cfg.LeadOffset
	c.X += (target - c.X) * c.cfg.Follow
}

// Drift scrolls the menu background.
func (c *Camera) Drift() {
	c.X += c.cfg.MenuDrift
}

// Pan moves the camera by a raw world-space delta.
func (c *Camera) Pan(dx float64) {
	c.X += dx
}

// Kick starts a screen shake of the given magnitude.
func (c *Camera) Kick(magnitude float64) {
	c.Shake = magnitude
}

// Settle decays the shake.
func (c *Camera) Settle() {
	if c.Shake <= 0 {
		return
	}
	c.Shake *= c.cfg.ShakeDecay
	if c.Shake < c.cfg.ShakeCutoff {
		c.Shake = 0
	}
}

// ShakeOffset returns a random render offset within half the shake
// magnitude on each axis.
func (c *Camera) ShakeOffset(rng *rand.Rand) (dx, dy float64) {
	if c.Shake <= 0 {
		return 0, 0
	}
	dx = (rng.Float64() - 0.5) * c.Shake
	dy = (rng.Float64() - 0.5) * c.Shake
	return dx, dy
}
