package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDash loads the game configuration.
// Search order: customPath -> ~/.dash/configs/dash.yaml -> ./configs/dash.yaml -> embedded default
// Files only need to set the keys they override.
func LoadDash(customPath string) (DashConfig, error) {
	cfg := DefaultDashConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return normalize(cfg), nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("dash.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return normalize(cfg), nil
			}
			cfg = DefaultDashConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/dash.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return normalize(cfg), nil
		}
		cfg = DefaultDashConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultDashYAML, &cfg); err != nil {
		return DefaultDashConfig(), nil // Fallback to hardcoded if embed fails
	}
	return normalize(cfg), nil
}

// normalize replaces values that would stall or break the simulation.
func normalize(cfg DashConfig) DashConfig {
	def := DefaultDashConfig()
	if cfg.Timing.StepHz <= 0 {
		cfg.Timing.StepHz = def.Timing.StepHz
	}
	if cfg.Timing.MaxFrameMS <= 0 {
		cfg.Timing.MaxFrameMS = def.Timing.MaxFrameMS
	}
	if cfg.Physics.TileSize <= 0 {
		cfg.Physics.TileSize = def.Physics.TileSize
	}
	if cfg.Particles.Density < 0 {
		cfg.Particles.Density = 0
	}
	if cfg.Audio.DefaultBPM <= 0 {
		cfg.Audio.DefaultBPM = def.Audio.DefaultBPM
	}
	if cfg.Audio.SampleRate <= 0 {
		cfg.Audio.SampleRate = def.Audio.SampleRate
	}
	if cfg.Input.HoldTicks < 1 {
		cfg.Input.HoldTicks = 1
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dash", "configs", filename)
}
