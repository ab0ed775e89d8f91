package dash

// Snapshot captures the simulation state for determinism testing.
type Snapshot struct {
	Tick        uint64
	Mode        Mode
	LevelID     int
	Practice    bool
	Attempt     int
	Percent     int
	Player      Player
	CameraX     float64
	Shake       float64
	Orb         OrbState
	Checkpoints int
	Particles   int
	Objects     int
	Tool        Tool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:        g.tick,
		Mode:        g.mode,
		LevelID:     g.level.ID,
		Practice:    g.practice,
		Attempt:     g.attempt,
		Percent:     g.percent,
		Player:      g.player,
		CameraX:     g.camera.X,
		Shake:       g.camera.Shake,
		Orb:         g.orb,
		Checkpoints: g.checkpoints.Len(),
		Particles:   g.particles.Len(),
		Objects:     len(g.level.Objects),
		Tool:        g.editor.Tool,
	}
}
