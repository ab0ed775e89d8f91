package dash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/games/dash/level"
)

func testResolver() Resolver {
	return NewResolver(config.DefaultDashConfig())
}

func newOrbState() OrbState {
	var o OrbState
	o.Reset()
	return o
}

func TestGroundedIdleStaysOnFloor(t *testing.T) {
	r := testResolver()
	orb := newOrbState()
	p := Player{Grounded: true}

	for i := 0; i < 120; i++ {
		events := r.Integrate(&p, &orb, false)
		require.Empty(t, events)
		assert.Equal(t, 0.0, p.Y, "tick %d", i)
		assert.Equal(t, 0.0, p.DY, "tick %d", i)
		assert.True(t, p.Grounded, "tick %d", i)
	}
	assert.InDelta(t, 120*7.0, p.X, 1e-9)
}

func TestFallingIsEulerWithoutClamp(t *testing.T) {
	cfg := config.DefaultDashConfig()
	r := NewResolver(cfg)
	orb := newOrbState()
	p := Player{Y: 5000}

	for i := 0; i < 40; i++ {
		prevY, prevDY := p.Y, p.DY
		r.Integrate(&p, &orb, false)
		assert.InDelta(t, prevDY-cfg.Physics.Gravity, p.DY, 1e-9, "tick %d", i)
		assert.InDelta(t, prevY+p.DY, p.Y, 1e-9, "tick %d", i)
		assert.False(t, p.Grounded)
	}
	assert.Less(t, p.DY, -cfg.Physics.TerminalVelocity, "fall speed is uncapped by default")
}

func TestClampFallSpeedOption(t *testing.T) {
	cfg := config.DefaultDashConfig()
	cfg.Physics.ClampFallSpeed = true
	r := NewResolver(cfg)
	orb := newOrbState()
	p := Player{Y: 5000}

	for i := 0; i < 40; i++ {
		r.Integrate(&p, &orb, false)
	}
	assert.Equal(t, -cfg.Physics.TerminalVelocity, p.DY)
}

func TestJumpFromGround(t *testing.T) {
	r := testResolver()
	orb := newOrbState()
	p := Player{Grounded: true}

	events := r.Integrate(&p, &orb, true)
	require.Len(t, events, 1)
	assert.Equal(t, EventJump, events[0].Kind)
	assert.InDelta(t, 19.5-1.3, p.DY, 1e-9)
	assert.InDelta(t, 19.5-1.3, p.Y, 1e-9)
	assert.False(t, p.Grounded)

	// No double jump in the air.
	events = r.Integrate(&p, &orb, true)
	assert.Empty(t, events)
}

func TestFloorLandingSmoothsRotation(t *testing.T) {
	r := testResolver()
	orb := newOrbState()
	orb.LastID = 12
	p := Player{Y: 1, DY: -5, Angle: 0.5}

	r.Integrate(&p, &orb, false)
	assert.Equal(t, 0.0, p.Y)
	assert.True(t, p.Grounded)
	assert.InDelta(t, 0.5*0.8, p.Angle, 1e-9, "angle eases a fifth of the way toward 0")
	assert.Equal(t, noOrb, orb.LastID, "landing clears the last orb")
}

func TestBlockLandingFromAbove(t *testing.T) {
	r := testResolver()
	block := []level.Object{{ID: 1, Type: level.EntityBlock, X: 0, Y: 0}}

	t.Run("single contact", func(t *testing.T) {
		orb := newOrbState()
		p := Player{X: 0, Y: 40, DY: -10}
		events := r.Collide(&p, &orb, block, false)
		assert.Empty(t, events)
		assert.Equal(t, 50.0, p.Y)
		assert.Equal(t, 0.0, p.DY)
		assert.True(t, p.Grounded)
		assert.False(t, p.Dead)
	})

	t.Run("falling from y=80", func(t *testing.T) {
		orb := newOrbState()
		p := Player{X: 0, Y: 80, DY: -10}
		landed := false
		for i := 0; i < 5 && !landed; i++ {
			r.Integrate(&p, &orb, false)
			for _, ev := range r.Collide(&p, &orb, block, false) {
				require.NotEqual(t, EventDeath, ev.Kind)
			}
			landed = p.Grounded
		}
		require.True(t, landed)
		assert.Equal(t, 50.0, p.Y)
		assert.False(t, p.Dead)
	})
}

func TestBlockSideHitIsFatal(t *testing.T) {
	r := testResolver()
	orb := newOrbState()
	objs := []level.Object{{ID: 1, Type: level.EntityBlock, X: 200, Y: 0}}
	p := Player{Grounded: true}

	var died bool
	for i := 0; i < 60 && !died; i++ {
		r.Integrate(&p, &orb, false)
		for _, ev := range r.Collide(&p, &orb, objs, false) {
			died = died || ev.Kind == EventDeath
		}
	}
	require.True(t, died)
	assert.True(t, p.Dead)
	assert.Less(t, p.X, 200.0, "died on the side, not on top")
}

func TestSpikeIsAlwaysFatal(t *testing.T) {
	r := testResolver()
	spike := []level.Object{{ID: 1, Type: level.EntitySpike, X: 0, Y: 0}}

	tests := []struct {
		name string
		p    Player
	}{
		{"falling onto it", Player{Y: 20, DY: -10}},
		{"rising into it", Player{Y: 10, DY: 5}},
		{"running into it", Player{Y: 0, DY: 0, Grounded: true}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			orb := newOrbState()
			p := tc.p
			events := r.Collide(&p, &orb, spike, false)
			require.Len(t, events, 1)
			assert.Equal(t, EventDeath, events[0].Kind)
			assert.True(t, p.Dead)
		})
	}
}

func TestSpikeMarginsForgiveGrazing(t *testing.T) {
	r := testResolver()
	orb := newOrbState()
	spike := []level.Object{{ID: 1, Type: level.EntitySpike, X: 0, Y: 0}}

	// Left edge of the player box is already past the tip.
	p := Player{X: 30, Y: 0}
	assert.Empty(t, r.Collide(&p, &orb, spike, false))

	// Hovering above the spike's hitbox.
	p = Player{X: 0, Y: 36}
	assert.Empty(t, r.Collide(&p, &orb, spike, false))
}

func TestOrbTriggersOncePerHold(t *testing.T) {
	r := testResolver()
	orb := newOrbState()
	first := level.Object{ID: 7, Type: level.EntityOrb, X: 0, Y: 1}
	second := level.Object{ID: 8, Type: level.EntityOrb, X: 0, Y: 1}

	touch := func(o level.Object, held bool) []Event {
		p := Player{X: 0, Y: 60, DY: -1}
		return r.Collide(&p, &orb, []level.Object{o}, held)
	}

	assert.Empty(t, touch(first, false), "orb needs jump held")

	events := touch(first, true)
	require.Len(t, events, 1)
	assert.Equal(t, EventOrb, events[0].Kind)
	assert.Equal(t, int64(7), orb.LastID)
	assert.Equal(t, 20, orb.Glow)

	for i := 0; i < 10; i++ {
		assert.Empty(t, touch(first, true), "same orb must not re-trigger while held")
	}

	events = touch(second, true)
	require.Len(t, events, 1, "a different orb triggers")
	assert.Equal(t, int64(8), orb.LastID)

	for i := 0; i < 19; i++ {
		orb.Tick()
	}
	assert.Empty(t, touch(second, true), "glow still active")
	orb.Tick()
	assert.False(t, orb.Glowing())
	assert.Len(t, touch(second, true), 1, "expired glow re-arms the orb")
}

func TestOrbImpulse(t *testing.T) {
	r := testResolver()
	orb := newOrbState()
	p := Player{X: 0, Y: 60, DY: -4}
	r.Collide(&p, &orb, []level.Object{{ID: 1, Type: level.EntityOrb, X: 0, Y: 1}}, true)
	assert.InDelta(t, 19.5*1.15, p.DY, 1e-9)
}

func TestPadLaunchesOnlyWhenFalling(t *testing.T) {
	r := testResolver()
	pad := []level.Object{{ID: 3, Type: level.EntityPad, X: 0, Y: 0}}

	orb := newOrbState()
	p := Player{X: 0, Y: 5, DY: -3}
	events := r.Collide(&p, &orb, pad, false)
	require.Len(t, events, 1)
	assert.Equal(t, EventPad, events[0].Kind)
	assert.InDelta(t, 19.5*1.5, p.DY, 1e-9)

	p = Player{X: 0, Y: 5, DY: 3}
	assert.Empty(t, r.Collide(&p, &orb, pad, false))
	assert.Equal(t, 3.0, p.DY)

	// Re-triggerable on every contact.
	p = Player{X: 0, Y: 5, DY: -3}
	assert.Len(t, r.Collide(&p, &orb, pad, false), 1)
}

func TestUnknownObjectsAreInert(t *testing.T) {
	r := testResolver()
	orb := newOrbState()
	objs := []level.Object{{ID: 1, Type: level.EntityType(42), X: 0, Y: 0}}
	p := Player{X: 0, Y: 10, DY: -2}
	before := p

	assert.Empty(t, r.Collide(&p, &orb, objs, true))
	assert.Equal(t, before, p)
}

func TestFirstFatalContactEndsResolution(t *testing.T) {
	r := testResolver()
	orb := newOrbState()
	objs := []level.Object{
		{ID: 1, Type: level.EntitySpike, X: 0, Y: 0},
		{ID: 2, Type: level.EntityOrb, X: 0, Y: 0},
		{ID: 3, Type: level.EntitySpike, X: 0, Y: 0},
	}
	p := Player{X: 0, Y: 10}

	events := r.Collide(&p, &orb, objs, true)
	require.Len(t, events, 1)
	assert.Equal(t, EventDeath, events[0].Kind)
	assert.Equal(t, noOrb, orb.LastID, "objects after the death are skipped")
}

func TestCandidatesWindow(t *testing.T) {
	r := testResolver()
	objs := []level.Object{
		{ID: 1, X: 100},
		{ID: 2, X: 301},
		{ID: 3, X: 449},
		{ID: 4, X: 450},
		{ID: 5, X: 250},
	}
	got := r.Candidates(objs, 300)
	ids := make([]int64, 0, len(got))
	for _, o := range got {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []int64{2, 3, 5}, ids, "list order is preserved")
}

func TestProgress(t *testing.T) {
	r := testResolver()
	tests := []struct {
		x, length float64
		expected  int
	}{
		{250, 1000, 25},
		{0, 1000, 0},
		{-50, 1000, 0},
		{999, 1000, 99},
		{1000, 1000, 100},
		{1500, 1000, 100},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, r.Progress(tc.x, tc.length), "x=%v", tc.x)
	}
}
