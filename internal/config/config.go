// Package config provides YAML-based tuning for the game simulation and the
// difficulty ratings used by levels.
package config

// DashConfig contains all tunable parameters of the game.
type DashConfig struct {
	Physics   PhysicsConfig  `yaml:"physics"`
	Hitbox    HitboxConfig   `yaml:"hitbox"`
	Camera    CameraConfig   `yaml:"camera"`
	Particles ParticleConfig `yaml:"particles"`
	Audio     AudioConfig    `yaml:"audio"`
	Input     InputConfig    `yaml:"input"`
	Timing    TimingConfig   `yaml:"timing"`
}

// PhysicsConfig defines per-tick physics constants. All speeds are in world
// units per tick, y grows upwards from the floor.
type PhysicsConfig struct {
	Gravity           float64 `yaml:"gravity"`
	JumpForce         float64 `yaml:"jump_force"`
	MoveSpeed         float64 `yaml:"move_speed"`
	TerminalVelocity  float64 `yaml:"terminal_velocity"`
	ClampFallSpeed    bool    `yaml:"clamp_fall_speed"`   // Enforce terminal_velocity on descent
	RotationSpeed     float64 `yaml:"rotation_speed"`     // Radians per airborne tick
	RotationSmoothing float64 `yaml:"rotation_smoothing"` // Fraction of the snap applied per grounded tick
	TileSize          float64 `yaml:"tile_size"`
	PlayerSize        float64 `yaml:"player_size"`
	PadMultiplier     float64 `yaml:"pad_multiplier"`
	OrbMultiplier     float64 `yaml:"orb_multiplier"`
	LandingTolerance  float64 `yaml:"landing_tolerance"`
	OrbGlowTicks      int     `yaml:"orb_glow_ticks"`
}

// HitboxConfig defines collision margins. Margins shrink the object box,
// insets shrink the player box.
type HitboxConfig struct {
	PlayerInsetX   float64 `yaml:"player_inset_x"`
	PlayerInsetTop float64 `yaml:"player_inset_top"`
	MarginX        float64 `yaml:"margin_x"`
	MarginY        float64 `yaml:"margin_y"`
	SpikeMarginX   float64 `yaml:"spike_margin_x"`
	SpikeMarginY   float64 `yaml:"spike_margin_y"`
	PadInsetX      float64 `yaml:"pad_inset_x"`
	PadHeight      float64 `yaml:"pad_height"`
	PadBelow       float64 `yaml:"pad_below"`
	WindowBehind   float64 `yaml:"window_behind"` // Candidate objects start this far behind the player
	WindowAhead    float64 `yaml:"window_ahead"`  // and end this far ahead of it
}

// CameraConfig defines camera follow and screen shake behavior.
type CameraConfig struct {
	LeadOffset    float64 `yaml:"lead_offset"`
	Follow        float64 `yaml:"follow"` // Fraction of the distance closed per tick
	MenuDrift     float64 `yaml:"menu_drift"`
	ShakeDecay    float64 `yaml:"shake_decay"`
	ShakeCutoff   float64 `yaml:"shake_cutoff"`
	DeathShake    float64 `yaml:"death_shake"`
	RespawnShake  float64 `yaml:"respawn_shake"`
	EditorPanStep float64 `yaml:"editor_pan_step"`
}

// ParticleConfig defines particle effect sizes and counts.
type ParticleConfig struct {
	Density         float64 `yaml:"density"` // 0 disables bursts
	LifeDecay       float64 `yaml:"life_decay"`
	MinSpeed        float64 `yaml:"min_speed"`
	MaxSpeed        float64 `yaml:"max_speed"`
	MinSize         float64 `yaml:"min_size"`
	MaxSize         float64 `yaml:"max_size"`
	JumpBurst       int     `yaml:"jump_burst"`
	PadBurst        int     `yaml:"pad_burst"`
	OrbBurst        int     `yaml:"orb_burst"`
	DeathBurst      int     `yaml:"death_burst"`
	CheckpointBurst int     `yaml:"checkpoint_burst"`
	TrailEvery      float64 `yaml:"trail_every"` // Base trail period in ticks at density 1
}

// AudioConfig defines sequencer timing and output parameters.
type AudioConfig struct {
	Enabled       bool    `yaml:"enabled"`
	SampleRate    int     `yaml:"sample_rate"`
	DefaultBPM    int     `yaml:"default_bpm"`
	LookaheadMS   int     `yaml:"lookahead_ms"`   // Scheduler wake-up period
	ScheduleAhead float64 `yaml:"schedule_ahead"` // Seconds of audio scheduled past now
	Volume        float64 `yaml:"volume"`
}

// InputConfig defines how terminal input is interpreted.
type InputConfig struct {
	// HoldTicks is how long a jump key press counts as held. Terminals do not
	// report key releases, auto-repeat refreshes the hold.
	HoldTicks int `yaml:"hold_ticks"`
}

// TimingConfig defines the fixed step and state machine delays.
type TimingConfig struct {
	StepHz     int `yaml:"step_hz"`
	MaxFrameMS int `yaml:"max_frame_ms"`
	GameOverMS int `yaml:"game_over_ms"`
	ToastMS    int `yaml:"toast_ms"`
}
