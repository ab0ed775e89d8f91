package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-dash/internal/audio"
	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/games/dash"
	"github.com/vovakirdan/tui-dash/internal/games/dash/level"
	"github.com/vovakirdan/tui-dash/internal/registry"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

// statusFor is how long a status message replaces the help bar.
const statusFor = 2 * time.Second

// StartMode selects the first screen of a session.
type StartMode int

const (
	StartMenu StartMode = iota
	StartPlay
	StartEditor
)

// Options configures a game session.
type Options struct {
	Config  config.DashConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional
	Audio   *audio.Engine  // Optional

	Start    StartMode
	LevelID  int // Level for StartPlay
	Practice bool

	// Clipboard enables copying the custom level with "c". Off for SSH
	// sessions, where the clipboard belongs to the host.
	Clipboard bool

	Logger *log.Logger
}

// Model is the Bubble Tea model running one game session.
type Model struct {
	game    *dash.Game
	tracker *dash.StatsTracker
	audio   *audio.Engine
	screen  *core.Screen
	cfg     config.DashConfig
	rc      core.RuntimeConfig
	keys    KeyMap
	help    help.Model
	frame   core.InputFrame
	hold    *holdTracker
	logger  *log.Logger

	clipboard   bool
	showHelp    bool
	status      string
	statusUntil time.Time
	lastTick    time.Time
	quitting    bool
}

// NewModel creates the session model and its game.
func NewModel(opts Options) (Model, error) {
	rc := opts.Runtime
	// Use time-based seed if not specified
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	tile := opts.Config.Physics.TileSize

	var statsStore dash.StatsStore
	if opts.Store != nil {
		statsStore = opts.Store
	}
	tracker := dash.NewStatsTracker(statsStore, time.Duration(opts.Config.Timing.ToastMS)*time.Millisecond)

	observers := dash.Observers{tracker}
	if opts.Store != nil {
		observers = append(observers, &levelSaver{store: opts.Store, tileSize: tile, logger: logger})
	}

	gameOpts := []dash.Option{
		dash.WithObserver(observers),
		dash.WithBests(tracker),
		dash.WithCustomLevel(loadCustomLevel(opts.Store, tile, logger)),
	}
	if opts.Audio != nil {
		gameOpts = append(gameOpts, dash.WithSound(opts.Audio))
	}

	m := Model{
		tracker:   tracker,
		audio:     opts.Audio,
		cfg:       opts.Config,
		rc:        rc,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		frame:     core.NewInputFrame(),
		hold:      newHoldTracker(opts.Config.Input.HoldTicks),
		logger:    logger,
		clipboard: opts.Clipboard,
		showHelp:  true,
	}
	m.screen = core.NewScreen(rc.ScreenW, m.gameHeight())
	gameRC := rc
	gameRC.ScreenH = m.gameHeight()
	m.game = dash.New(opts.Config, gameRC, gameOpts...)

	switch opts.Start {
	case StartPlay:
		l, err := registry.Create(opts.LevelID, tile)
		if err != nil {
			return Model{}, err
		}
		m.game.StartLevel(l, opts.Practice)
	case StartEditor:
		m.game.OpenEditor()
	}

	return m, nil
}

// loadCustomLevel reads the saved editor level. Missing or broken data
// yields an empty level.
func loadCustomLevel(store *storage.Store, tileSize float64, logger *log.Logger) []level.Object {
	if store == nil {
		return nil
	}
	data, err := store.CustomLevel()
	if err != nil {
		logger.Warn("could not load custom level", "error", err)
		return nil
	}
	if data == nil {
		return nil
	}
	l, err := level.Parse(data, tileSize)
	if err != nil {
		logger.Warn("saved custom level is invalid", "error", err)
		return nil
	}
	return l.Objects
}

// levelSaver persists the custom level after every editor change.
type levelSaver struct {
	dash.NopObserver
	store    *storage.Store
	tileSize float64
	logger   *log.Logger
}

func (s *levelSaver) CustomLevelChanged(objs []level.Object) {
	data, err := level.MarshalObjects(objs, s.tileSize)
	if err != nil {
		s.logger.Error("could not encode custom level", "error", err)
		return
	}
	if err := s.store.SaveCustomLevel(data); err != nil {
		s.logger.Warn("could not save custom level", "error", err)
	}
}

// gameHeight is the screen height left for the game.
func (m Model) gameHeight() int {
	if m.showHelp {
		return core.Max(m.rc.ScreenH-1, 1)
	}
	return m.rc.ScreenH
}

// layout resizes the screen and the game after a size or help change.
func (m *Model) layout() {
	m.screen.Resize(m.rc.ScreenW, m.gameHeight())
	m.game.Resize(m.rc.ScreenW, m.gameHeight())
	m.help.Width = m.rc.ScreenW
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.rc.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.rc.ScreenW = msg.Width
		m.rc.ScreenH = msg.Height
		m.layout()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		m.layout()
		return m, nil
	}

	for _, a := range m.keys.MapKey(msg) {
		switch a {
		case core.ActionQuit:
			m.quitting = true
			m.tracker.Flush()
			return m, tea.Quit
		case core.ActionMute:
			m.toggleMute()
		case core.ActionExport:
			if m.game.Mode() == dash.ModeEditor {
				m.exportLevel()
			}
		case core.ActionJump:
			m.frame.Set(a)
			m.hold.press()
		default:
			m.frame.Set(a)
		}
	}
	return m, nil
}

// handleMouse processes mouse input. The primary button jumps during a
// run; every event is also forwarded for the editor.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ev, ok := pointerEvent(msg)
	if !ok {
		return m, nil
	}

	switch ev.Kind {
	case core.PointerPress:
		if ev.Button == core.PointerPrimary && m.game.Mode().InRun() {
			m.frame.Set(core.ActionJump)
			m.hold.setMouse(true)
		}
	case core.PointerRelease:
		m.hold.setMouse(false)
	}
	m.frame.AddPointer(ev)
	return m, nil
}

// handleTick advances the simulation by the real time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	var dt time.Duration
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick)
	}
	m.lastTick = now

	before := m.game.Mode()
	m.frame.Hold(core.ActionJump, m.hold.held())
	m.game.Advance(dt, m.frame)
	m.frame.Clear()
	m.hold.tick()

	if before.InRun() && !m.game.Mode().InRun() {
		m.hold.release()
	}

	return m, tickCmd(m.rc.TickRate)
}

func (m *Model) toggleMute() {
	if m.audio == nil || m.audio.Silent() {
		m.setStatus("audio unavailable")
		return
	}
	if m.audio.ToggleMute() {
		m.setStatus("sound off")
	} else {
		m.setStatus("sound on")
	}
}

// exportLevel copies the custom level YAML to the system clipboard.
func (m *Model) exportLevel() {
	if !m.clipboard {
		m.setStatus("clipboard export is not available in this session")
		return
	}
	data, err := level.MarshalObjects(m.game.CustomLevel(), m.cfg.Physics.TileSize)
	if err != nil {
		m.setStatus("export failed: " + err.Error())
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		m.setStatus("clipboard unavailable")
		return
	}
	m.setStatus(fmt.Sprintf("copied %d objects to the clipboard", len(m.game.CustomLevel())))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusUntil = time.Now().Add(statusFor)
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// drawToast puts the latest achievement unlock in the top right corner.
func (m Model) drawToast() {
	a, ok := m.tracker.Toast()
	if !ok {
		return
	}
	text := fmt.Sprintf(" ★ %s ", a.Title)
	x := core.Max(m.screen.Width()-len([]rune(text))-1, 0)
	m.screen.DrawTextColored(x, 1, text, core.Color("#FFD700"))
	if m.screen.Height() > 2 {
		desc := a.Description
		m.screen.DrawTextColored(core.Max(m.screen.Width()-len([]rune(desc))-2, 0), 2, desc, core.ColorGray)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	m.drawToast()
	out := RenderScreen(m.screen)

	if !m.showHelp {
		return out
	}
	if m.status != "" && time.Now().Before(m.statusUntil) {
		return out + "\n" + statusStyle.Render(m.status)
	}
	return out + "\n" + helpStyle.Render(m.help.View(modeHelp{keys: m.keys, mode: m.game.Mode()}))
}

// Game returns the running game.
func (m Model) Game() *dash.Game {
	return m.game
}

// Tracker returns the session's stats tracker.
func (m Model) Tracker() *dash.StatsTracker {
	return m.tracker
}

// Run starts the Bubble Tea program for a local session.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Clicks, drags and releases
	)

	_, err = p.Run()
	model.tracker.Flush()
	return err
}
