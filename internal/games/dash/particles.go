package dash

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
)

// ParticleShape selects how a particle is drawn.
type ParticleShape int

const (
	ShapeSquare ParticleShape = iota
	ShapeCircle
)

// Effect colors.
const (
	colorJumpBurst  core.Color = "#A5F3FC"
	colorBoost      core.Color = "#FFFF00"
	colorCheckpoint core.Color = "#00FF00"
	colorUncheck    core.Color = "#FF0000"
	colorTrail      core.Color = "#FFFFFF"
	colorGlowTrail  core.Color = "#FFFF66"
)

// Particle is a short-lived visual effect in world space.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // 1 when spawned, removed at 0
	Size   float64
	Color  core.Color
	Shape  ParticleShape
}

// Particles is the particle pool. All randomness comes from one seeded
// source so runs are reproducible.
type Particles struct {
	items []Particle
	rng   *rand.Rand
	cfg   config.ParticleConfig
	speed float64 // Player move speed, scales the trail drift
	size  float64 // Player size, scales trail particles
}

// NewParticles creates an empty pool.
func NewParticles(cfg config.DashConfig, seed int64) *Particles {
	return &Particles{
		items: make([]Particle, 0, 128),
		rng:   rand.New(rand.NewSource(seed)),
		cfg:   cfg.Particles,
		speed: cfg.Physics.MoveSpeed,
		size:  cfg.Physics.PlayerSize,
	}
}

// SetDensity changes the density multiplier. 0 disables particles.
func (ps *Particles) SetDensity(d float64) {
	if d < 0 {
		d = 0
	}
	ps.cfg.Density = d
}

// Density returns the density multiplier.
func (ps *Particles) Density() float64 {
	return ps.cfg.Density
}

// Burst spawns n particles (scaled by density) flying out of (x, y) in
// random directions.
func (ps *Particles) Burst(x, y float64, n int, c core.Color, shape ParticleShape) {
	count := int(math.Floor(float64(n) * ps.cfg.Density))
	for i := 0; i < count; i++ {
		angle := ps.rng.Float64() * math.Pi * 2
		v := ps.cfg.MinSpeed + ps.rng.Float64()*(ps.cfg.MaxSpeed-ps.cfg.MinSpeed)
		ps.items = append(ps.items, Particle{
			X:     x,
			Y:     y,
			VX:    math.Cos(angle) * v,
			VY:    math.Sin(angle) * v,
			Life:  1,
			Size:  ps.cfg.MinSize + ps.rng.Float64()*(ps.cfg.MaxSize-ps.cfg.MinSize),
			Color: c,
			Shape: shape,
		})
	}
}

// TrailPeriod returns how many ticks pass between trail particles.
func (ps *Particles) TrailPeriod(glowing bool) int {
	if glowing {
		return 1
	}
	period := int(math.Round(ps.cfg.TrailEvery / math.Max(0.1, ps.cfg.Density)))
	if period < 1 {
		period = 1
	}
	return period
}

// Trail drops one trail particle at the center of a player standing at
// (x, y). The orb glow trail is longer lived and rounder.
func (ps *Particles) Trail(x, y float64, glowing bool) {
	if ps.cfg.Density <= 0 {
		return
	}
	half := ps.size / 2
	p := Particle{X: x + half, Y: y + half}
	if glowing {
		p.VX = -ps.speed * 0.1
		p.VY = (ps.rng.Float64() - 0.5) * 2
		p.Life = 0.6
		p.Size = ps.size * 0.5
		p.Color = colorGlowTrail
		p.Shape = ShapeCircle
	} else {
		p.VX = -ps.speed * 0.2
		p.VY = ps.rng.Float64() - 0.5
		p.Life = 0.4
		p.Size = ps.size * 0.6
		p.Color = colorTrail
		p.Shape = ShapeSquare
	}
	ps.items = append(ps.items, p)
}

// Update ages and moves every particle, dropping the expired ones.
func (ps *Particles) Update() {
	alive := ps.items[:0]
	for _, p := range ps.items {
		p.Life -= ps.cfg.LifeDecay
		if p.Life <= 0 {
			continue
		}
		p.X += p.VX
		p.Y += p.VY
		alive = append(alive, p)
	}
	ps.items = alive
}

// Clear removes all particles.
func (ps *Particles) Clear() {
	ps.items = ps.items[:0]
}

// Len returns the number of live particles.
func (ps *Particles) Len() int {
	return len(ps.items)
}

// Items returns the live particles. The slice must not be modified.
func (ps *Particles) Items() []Particle {
	return ps.items
}

// Rand exposes the pool's random source for other cosmetic effects.
func (ps *Particles) Rand() *rand.Rand {
	return ps.rng
}
