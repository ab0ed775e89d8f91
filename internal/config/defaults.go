package config

import (
	_ "embed"
)

//go:embed defaults/dash.yaml
var defaultDashYAML []byte

// DefaultDashConfig returns the built-in game configuration.
func DefaultDashConfig() DashConfig {
	return DashConfig{
		Physics: PhysicsConfig{
			Gravity:           1.3,
			JumpForce:         19.5,
			MoveSpeed:         7.0,
			TerminalVelocity:  20,
			ClampFallSpeed:    false,
			RotationSpeed:     0.18,
			RotationSmoothing: 0.2,
			TileSize:          50,
			PlayerSize:        40,
			PadMultiplier:     1.5,
			OrbMultiplier:     1.15,
			LandingTolerance:  25,
			OrbGlowTicks:      20,
		},
		Hitbox: HitboxConfig{
			PlayerInsetX:   8,
			PlayerInsetTop: 5,
			MarginX:        6,
			MarginY:        6,
			SpikeMarginX:   18,
			SpikeMarginY:   15,
			PadInsetX:      10,
			PadHeight:      15,
			PadBelow:       10,
			WindowBehind:   100,
			WindowAhead:    150,
		},
		Camera: CameraConfig{
			LeadOffset:    200,
			Follow:        0.5,
			MenuDrift:     2,
			ShakeDecay:    0.9,
			ShakeCutoff:   0.5,
			DeathShake:    20,
			RespawnShake:  5,
			EditorPanStep: 50,
		},
		Particles: ParticleConfig{
			Density:         1.0,
			LifeDecay:       0.03,
			MinSpeed:        2,
			MaxSpeed:        7,
			MinSize:         4,
			MaxSize:         10,
			JumpBurst:       15,
			PadBurst:        10,
			OrbBurst:        15,
			DeathBurst:      30,
			CheckpointBurst: 10,
			TrailEvery:      3,
		},
		Audio: AudioConfig{
			Enabled:       true,
			SampleRate:    44100,
			DefaultBPM:    155,
			LookaheadMS:   25,
			ScheduleAhead: 0.1,
			Volume:        0.8,
		},
		Input: InputConfig{
			HoldTicks: 8,
		},
		Timing: TimingConfig{
			StepHz:     60,
			MaxFrameMS: 50,
			GameOverMS: 800,
			ToastMS:    3000,
		},
	}
}
