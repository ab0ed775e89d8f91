package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dash/internal/audio"
	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/games/dash/level"
	"github.com/vovakirdan/tui-dash/internal/platform/tui"
	"github.com/vovakirdan/tui-dash/internal/registry"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

// session holds everything a local game needs. Close releases it.
type session struct {
	cfg    config.DashConfig
	logger *log.Logger
	store  *storage.Store
	audio  *audio.Engine
	logOut io.Closer
}

// openSession loads config and levels, then opens storage and audio.
// Storage and audio failures are not fatal.
func openSession() (*session, error) {
	logger, logOut, err := newLogger()
	if err != nil {
		return nil, err
	}
	s := &session{logger: logger, logOut: logOut}

	cfg, err := loadConfig()
	if err != nil {
		s.Close()
		return nil, err
	}
	s.cfg = cfg

	loadUserLevels(logger)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open stats database: %v\n", err)
		logger.Warn("running without stats", "error", err)
	} else {
		s.store = store
	}

	s.audio = audio.New(cfg.Audio, logger)
	if flagMute {
		s.audio.SetMuted(true)
	}
	return s, nil
}

// options returns the TUI options for this session.
func (s *session) options(start tui.StartMode) tui.Options {
	return tui.Options{
		Config:    s.cfg,
		Runtime:   runtimeConfig(),
		Store:     s.store,
		Audio:     s.audio,
		Start:     start,
		Clipboard: true,
		Logger:    s.logger,
	}
}

func (s *session) Close() {
	if s.audio != nil {
		s.audio.Close()
	}
	if s.store != nil {
		s.store.Close()
	}
	if s.logOut != nil {
		s.logOut.Close()
	}
}

// newLogger writes to --log-file, or discards everything. The terminal
// belongs to the game.
func newLogger() (*log.Logger, io.Closer, error) {
	if flagLogFile == "" {
		return log.New(io.Discard), nil, nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          "dash",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, f, nil
}

// loadConfig reads the game tuning and applies flag overrides.
func loadConfig() (config.DashConfig, error) {
	cfg, err := config.LoadDash(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagParticles >= 0 {
		cfg.Particles.Density = flagParticles
	}
	return cfg, nil
}

// userLevelsDir is where players drop their own level files.
func userLevelsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dash", "levels")
}

// loadUserLevels registers level files from the user levels directory.
// Broken files and duplicate ids are logged and skipped.
func loadUserLevels(logger *log.Logger) {
	dir := userLevelsDir()
	if dir == "" {
		return
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return
	}

	levels, errs := level.NewLoader(os.DirFS(dir), ".", registry.ReferenceTileSize).LoadAll()
	for _, err := range errs {
		logger.Warn("skipping level file", "dir", dir, "error", err)
	}
	for _, l := range levels {
		if err := registry.TryRegister(l.ID, registry.FromLevel(l, registry.ReferenceTileSize)); err != nil {
			logger.Warn("skipping level", "id", l.ID, "name", l.Name, "error", err)
			continue
		}
		logger.Debug("registered user level", "id", l.ID, "name", l.Name)
	}
}

// terminalSize returns the size of stdout, or 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func runtimeConfig() core.RuntimeConfig {
	width, height := terminalSize()
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
