package dash

import (
	"math"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/games/dash/level"
)

// EventKind identifies something the resolver wants the game to react to.
type EventKind int

const (
	EventJump  EventKind = iota // Jump from the floor or a block
	EventPad                    // Launched by a jump pad
	EventOrb                    // Boosted by a jump orb
	EventDeath                  // Fatal contact
)

// Event is a resolver outcome. X and Y are the world position effects
// should spawn at.
type Event struct {
	Kind     EventKind
	X, Y     float64
	ObjectID int64
}

// Boost reports whether the event counts as a jump for stats.
func (e Event) Boost() bool {
	return e.Kind == EventJump || e.Kind == EventPad || e.Kind == EventOrb
}

// noOrb marks that no orb has been used since the last landing.
const noOrb int64 = -1

// OrbState tracks the last orb used and the glow it left behind.
type OrbState struct {
	LastID int64
	Glow   int // Ticks left
}

// Reset forgets the last orb.
func (o *OrbState) Reset() {
	o.LastID = noOrb
	o.Glow = 0
}

// Glowing reports whether the orb trail is active.
func (o OrbState) Glowing() bool {
	return o.Glow > 0
}

// Tick counts the glow down. When it runs out the last orb may fire again.
func (o *OrbState) Tick() {
	if o.Glow <= 0 {
		return
	}
	o.Glow--
	if o.Glow == 0 {
		o.LastID = noOrb
	}
}

// Resolver moves the player and resolves contacts with level objects.
// It holds only tuning values; all mutable state is passed in.
type Resolver struct {
	phys config.PhysicsConfig
	hit  config.HitboxConfig
}

// NewResolver creates a resolver from the game configuration.
func NewResolver(cfg config.DashConfig) Resolver {
	return Resolver{phys: cfg.Physics, hit: cfg.Hitbox}
}

// Integrate applies one tick of jump input, forward motion, gravity and the
// floor. It returns a jump event when the player left the ground.
func (r Resolver) Integrate(p *Player, orb *OrbState, jumpHeld bool) []Event {
	var events []Event

	if p.Grounded && jumpHeld {
		p.DY = r.phys.JumpForce
		p.Grounded = false
		events = append(events, Event{
			Kind: EventJump,
			X:    p.X + r.phys.PlayerSize/2,
			Y:    p.Y + 5,
		})
	}

	p.X += r.phys.MoveSpeed
	p.DY -= r.phys.Gravity
	if r.phys.ClampFallSpeed && p.DY < -r.phys.TerminalVelocity {
		p.DY = -r.phys.TerminalVelocity
	}
	p.Y += p.DY

	if p.Y < 0 {
		p.settle(0, r.phys.RotationSmoothing)
		orb.LastID = noOrb
	} else {
		p.Grounded = false
		p.Angle += r.phys.RotationSpeed
	}

	return events
}

// Candidates returns the objects close enough to the player to be checked,
// preserving list order.
func (r Resolver) Candidates(objs []level.Object, x float64) []level.Object {
	var nearby []level.Object
	for _, o := range objs {
		if o.X > x-r.hit.WindowBehind && o.X < x+r.hit.WindowAhead {
			nearby = append(nearby, o)
		}
	}
	return nearby
}

// PlayerBox returns the player's hitbox, narrower than its drawn square.
func (r Resolver) PlayerBox(p Player) core.Box {
	size := r.phys.PlayerSize
	return core.Box{
		Left:   p.X + r.hit.PlayerInsetX,
		Bottom: p.Y,
		Right:  p.X + size - r.hit.PlayerInsetX,
		Top:    p.Y + size - r.hit.PlayerInsetTop,
	}
}

// ObjectBox returns the full tile an object occupies.
func (r Resolver) ObjectBox(o level.Object) core.Box {
	tile := r.phys.TileSize
	return core.NewBox(o.X, float64(o.Y)*tile, tile, tile)
}

// Collide resolves contacts between the player and objs in list order.
// Resolution stops at the first fatal contact, which marks the player dead.
func (r Resolver) Collide(p *Player, orb *OrbState, objs []level.Object, jumpHeld bool) []Event {
	var events []Event
	tile := r.phys.TileSize

	for _, o := range r.Candidates(objs, p.X) {
		pb := r.PlayerBox(*p)
		ob := r.ObjectBox(o)

		switch o.Type {
		case level.EntityPad:
			band := ob.Inset(r.hit.PadInsetX, 0)
			if !pb.OverlapsX(band) || p.DY >= 0 {
				continue
			}
			if pb.Bottom < ob.Bottom+r.hit.PadHeight && pb.Bottom > ob.Bottom-r.hit.PadBelow {
				p.DY = r.phys.JumpForce * r.phys.PadMultiplier
				p.Grounded = false
				events = append(events, Event{Kind: EventPad, X: o.X + tile/2, Y: ob.Bottom, ObjectID: o.ID})
			}

		case level.EntityBlock:
			if !pb.Overlaps(ob.Inset(r.hit.MarginX, r.hit.MarginY)) {
				continue
			}
			prevY := p.Y - p.DY
			if prevY >= ob.Top-r.phys.LandingTolerance && p.DY <= 0 {
				p.settle(ob.Top, r.phys.RotationSmoothing)
				orb.LastID = noOrb
				continue
			}
			return append(events, r.kill(p))

		case level.EntitySpike:
			if !pb.Overlaps(ob.Inset(r.hit.SpikeMarginX, r.hit.SpikeMarginY)) {
				continue
			}
			return append(events, r.kill(p))

		case level.EntityOrb:
			if !pb.Overlaps(ob.Inset(r.hit.MarginX, r.hit.MarginY)) {
				continue
			}
			if !jumpHeld || orb.LastID == o.ID {
				continue
			}
			p.DY = r.phys.JumpForce * r.phys.OrbMultiplier
			p.Grounded = false
			orb.LastID = o.ID
			orb.Glow = r.phys.OrbGlowTicks
			events = append(events, Event{
				Kind:     EventOrb,
				X:        o.X + tile/2,
				Y:        p.Y + r.phys.PlayerSize/2,
				ObjectID: o.ID,
			})

		default:
			// Unknown objects are inert.
		}
	}

	return events
}

func (r Resolver) kill(p *Player) Event {
	p.Dead = true
	half := r.phys.PlayerSize / 2
	return Event{Kind: EventDeath, X: p.X + half, Y: p.Y + half}
}

// Progress returns the completion percentage for a player at x.
func (r Resolver) Progress(x, length float64) int {
	if length <= 0 {
		return 100
	}
	pct := int(math.Floor(x / length * 100))
	return core.Clamp(pct, 0, 100)
}
