package dash

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/games/dash/level"
	"github.com/vovakirdan/tui-dash/internal/registry"
)

// Option configures a Game.
type Option func(*Game)

// WithSound sets the audio sink.
func WithSound(s Sound) Option {
	return func(g *Game) {
		if s != nil {
			g.sound = s
		}
	}
}

// WithObserver sets the stats and persistence observer.
func WithObserver(o Observer) Option {
	return func(g *Game) {
		if o != nil {
			g.observer = o
		}
	}
}

// WithBests sets where level select reads best percentages from.
func WithBests(b BestSource) Option {
	return func(g *Game) {
		g.bests = b
	}
}

// WithCustomLevel sets the editor's starting objects.
func WithCustomLevel(objs []level.Object) Option {
	return func(g *Game) {
		g.custom = append([]level.Object(nil), objs...)
	}
}

// WithLevels sets the level select list instead of reading the registry.
func WithLevels(list []registry.LevelInfo) Option {
	return func(g *Game) {
		g.levels = list
	}
}

// floater is a drifting square in the menu background.
type floater struct {
	X, Y  float64
	Size  float64
	Speed float64
	Rot   float64
}

// Game is the simulation context. It owns every piece of mutable state and
// is driven by one goroutine through Advance or Step.
type Game struct {
	cfg      config.DashConfig
	rc       core.RuntimeConfig
	resolver Resolver
	sound    Sound
	observer Observer
	bests    BestSource
	handlers map[Mode]func(*Game, core.InputFrame)

	mode     Mode
	levels   []registry.LevelInfo
	cursor   int
	level    level.Level
	custom   []level.Object
	practice bool
	attempt  int
	notice   string

	player      Player
	orb         OrbState
	camera      Camera
	particles   *Particles
	checkpoints Checkpoints
	editor      Editor
	decor       []floater

	percent     int
	tick        uint64
	modeTicks   int
	acc         time.Duration
	pending     *core.InputFrame
	jumpLatched bool
	fx          *rand.Rand // Render-only randomness
}

// New creates a game in the main menu.
func New(cfg config.DashConfig, rc core.RuntimeConfig, opts ...Option) *Game {
	g := &Game{
		cfg:       cfg,
		rc:        rc,
		resolver:  NewResolver(cfg),
		sound:     nopSound{},
		observer:  NopObserver{},
		camera:    NewCamera(cfg.Camera),
		particles: NewParticles(cfg, rc.Seed),
		editor:    NewEditor(time.Now().UnixMilli()),
		fx:        rand.New(rand.NewSource(rc.Seed + 1)),
		mode:      ModeMenu,
		attempt:   1,
		handlers: map[Mode]func(*Game, core.InputFrame){
			ModeMenu:        (*Game).updateMenu,
			ModeLevelSelect: (*Game).updateLevelSelect,
			ModePlaying:     (*Game).updatePlaying,
			ModeGameOver:    (*Game).updateGameOver,
			ModeVictory:     (*Game).updateVictory,
			ModeEditor:      (*Game).updateEditor,
		},
	}
	g.levels = registry.List()
	for _, opt := range opts {
		opt(g)
	}
	g.level = level.NewCustom(g.custom, cfg.Physics.TileSize)
	g.initDecor()
	g.orb.Reset()
	g.resetRun()
	return g
}

// Resize adapts to a new screen size.
func (g *Game) Resize(w, h int) {
	g.rc.ScreenW = w
	g.rc.ScreenH = h
}

// Advance runs as many fixed steps as dt covers. dt is clamped so one
// stalled frame cannot produce a large jump. One-shot input applies to the
// first step only; when dt covers no step it is kept for the next call.
// Returns the number of steps run.
func (g *Game) Advance(dt time.Duration, in core.InputFrame) int {
	if limit := time.Duration(g.cfg.Timing.MaxFrameMS) * time.Millisecond; dt > limit {
		dt = limit
	}
	if dt < 0 {
		dt = 0
	}

	if g.pending != nil {
		in = mergeInput(*g.pending, in)
		g.pending = nil
	}

	step := g.stepDuration()
	g.acc += dt
	n := 0
	for g.acc >= step {
		g.acc -= step
		if n == 0 {
			g.Step(in)
		} else {
			g.Step(in.HeldOnly())
		}
		n++
	}

	if n == 0 && (len(in.Actions) > 0 || len(in.Pointer) > 0) {
		kept := in.Clone()
		g.pending = &kept
	}
	return n
}

func (g *Game) stepDuration() time.Duration {
	hz := g.cfg.Timing.StepHz
	if hz <= 0 {
		hz = 60
	}
	return time.Second / time.Duration(hz)
}

// mergeInput combines an earlier frame with a later one.
func mergeInput(earlier, later core.InputFrame) core.InputFrame {
	out := later.Clone()
	for a, ok := range earlier.Actions {
		if ok {
			out.Set(a)
		}
	}
	out.Pointer = append(append([]core.PointerEvent(nil), earlier.Pointer...), later.Pointer...)
	return out
}

// Step advances the simulation by exactly one tick.
func (g *Game) Step(in core.InputFrame) {
	g.tick++
	g.modeTicks++

	if h, ok := g.handlers[g.mode]; ok {
		h(g, in)
	}

	g.particles.Update()
	g.camera.Settle()
}

// --- mode handlers ---

func (g *Game) updateMenu(in core.InputFrame) {
	g.camera.Drift()
	g.updateDecor()

	switch {
	case in.Has(core.ActionConfirm):
		g.setMode(ModeLevelSelect)
	case in.Has(core.ActionEditor):
		g.OpenEditor()
	}
}

func (g *Game) updateLevelSelect(in core.InputFrame) {
	g.camera.Drift()
	g.updateDecor()

	n := len(g.levels)
	switch {
	case in.Has(core.ActionBack):
		g.setMode(ModeMenu)
	case n == 0:
	case in.Has(core.ActionUp):
		g.cursor = (g.cursor - 1 + n) % n
	case in.Has(core.ActionDown):
		g.cursor = (g.cursor + 1) % n
	case in.Has(core.ActionConfirm):
		g.startSelected(false)
	case in.Has(core.ActionPractice):
		g.startSelected(true)
	}
}

func (g *Game) updatePlaying(in core.InputFrame) {
	if in.Has(core.ActionBack) {
		g.leaveRun(ModeMenu)
		return
	}
	if in.Has(core.ActionCheckpoint) {
		g.PlaceCheckpoint()
	}
	if in.Has(core.ActionRemoveCheckpoint) {
		g.RemoveCheckpoint()
	}

	g.simulate(g.jumpHeld(in))
	g.camera.Follow(g.player.X)
}

func (g *Game) updateGameOver(in core.InputFrame) {
	g.camera.Follow(g.player.X)

	if in.Has(core.ActionBack) {
		g.leaveRun(ModeMenu)
		return
	}
	if g.modeTicks >= g.gameOverTicks() {
		g.setMode(ModePlaying)
		g.resetRun()
	}
}

func (g *Game) updateVictory(in core.InputFrame) {
	g.camera.Follow(g.player.X)

	switch {
	case in.Has(core.ActionRestart):
		g.attempt++
		g.setMode(ModePlaying)
		g.resetRun()
	case in.Has(core.ActionConfirm), in.Has(core.ActionBack):
		g.leaveRun(ModeLevelSelect)
	}
}

func (g *Game) updateEditor(in core.InputFrame) {
	switch {
	case in.Has(core.ActionBack):
		g.setMode(ModeMenu)
		return
	case in.Has(core.ActionTest):
		g.PlayCustom()
		return
	}

	for _, k := range toolKeys {
		if in.Has(k.action) {
			g.editor.Tool = k.tool
		}
	}

	if in.Has(core.ActionLeft) {
		g.camera.Pan(-g.cfg.Camera.EditorPanStep)
	}
	if in.Has(core.ActionRight) {
		g.camera.Pan(g.cfg.Camera.EditorPanStep)
	}

	for _, ev := range in.Pointer {
		switch ev.Kind {
		case core.PointerPress:
			switch ev.Button {
			case core.PointerPrimary:
				g.EditorClick(ev.Col, ev.Row)
			case core.PointerSecondary, core.PointerMiddle:
				g.editor.StartPan(ev.Col)
			}
		case core.PointerMotion:
			if d, ok := g.editor.Drag(ev.Col); ok {
				g.camera.Pan(-float64(d) * ColUnits)
			}
		case core.PointerRelease:
			g.editor.StopPan()
		}
	}
}

// toolKeys maps tool selection actions to tools.
var toolKeys = []struct {
	action core.Action
	tool   Tool
}{
	{core.ActionToolBlock, ToolBlock},
	{core.ActionToolSpike, ToolSpike},
	{core.ActionToolOrb, ToolOrb},
	{core.ActionToolPad, ToolPad},
	{core.ActionToolErase, ToolErase},
}

// --- simulation ---

// jumpHeld reports whether jump counts as held this tick. After a reset a
// held jump is ignored until it is pressed again or released.
func (g *Game) jumpHeld(in core.InputFrame) bool {
	pressed := in.Has(core.ActionJump)
	held := pressed || in.IsHeld(core.ActionJump)
	if g.jumpLatched && (pressed || !held) {
		g.jumpLatched = false
	}
	return held && !g.jumpLatched
}

// simulate runs one playing tick of physics and collision.
func (g *Game) simulate(jumpHeld bool) {
	p := &g.player
	burst := g.cfg.Particles

	events := g.resolver.Integrate(p, &g.orb, jumpHeld)

	glowing := g.orb.Glowing()
	if g.tick%uint64(g.particles.TrailPeriod(glowing)) == 0 {
		g.particles.Trail(p.X, p.Y, glowing)
	}
	g.orb.Tick()

	events = append(events, g.resolver.Collide(p, &g.orb, g.level.Objects, jumpHeld)...)

	var jumped bool
	var death *Event
	for i, ev := range events {
		switch ev.Kind {
		case EventJump:
			g.particles.Burst(ev.X, ev.Y, burst.JumpBurst, colorJumpBurst, ShapeCircle)
		case EventPad:
			g.particles.Burst(ev.X, ev.Y, burst.PadBurst, colorBoost, ShapeCircle)
		case EventOrb:
			g.particles.Burst(ev.X, ev.Y, burst.OrbBurst, colorBoost, ShapeCircle)
		case EventDeath:
			death = &events[i]
		}
		if ev.Boost() {
			g.sound.PlayJump()
			jumped = true
		}
	}

	g.percent = g.resolver.Progress(p.X, g.level.Length)
	g.observer.TickReport(jumped, death != nil)
	g.observer.Progress(g.level.ID, g.percent)

	if death != nil {
		g.die(*death)
		return
	}
	if p.X >= g.level.Length {
		g.setMode(ModeVictory)
	}
}

func (g *Game) die(ev Event) {
	g.sound.PlayDeath()
	g.particles.Burst(ev.X, ev.Y, g.cfg.Particles.DeathBurst, colorBoost, ShapeSquare)
	g.camera.Kick(g.cfg.Camera.DeathShake)

	if g.practice {
		g.respawn()
		return
	}
	g.attempt++
	g.setMode(ModeGameOver)
}

// respawn restores the newest checkpoint without removing it, or restarts
// the level when there is none.
func (g *Game) respawn() {
	cp, ok := g.checkpoints.Top()
	if !ok {
		g.resetRun()
		return
	}
	cp.Apply(&g.player)
	g.camera.X = cp.CameraX
	g.camera.Kick(g.cfg.Camera.RespawnShake)
}

// PlaceCheckpoint saves the player position. Only works while playing
// alive in practice mode.
func (g *Game) PlaceCheckpoint() bool {
	if g.mode != ModePlaying || !g.practice || g.player.Dead {
		return false
	}
	g.checkpoints.Push(checkpointOf(g.player, g.camera.X))
	half := g.cfg.Physics.PlayerSize / 2
	g.particles.Burst(g.player.X+half, g.player.Y+half, g.cfg.Particles.CheckpointBurst, colorCheckpoint, ShapeCircle)
	return true
}

// RemoveCheckpoint drops the newest checkpoint. No-op when there is none.
func (g *Game) RemoveCheckpoint() bool {
	if g.mode != ModePlaying || !g.practice {
		return false
	}
	cp, ok := g.checkpoints.Pop()
	if !ok {
		return false
	}
	half := g.cfg.Physics.PlayerSize / 2
	g.particles.Burst(cp.X+half, cp.Y+half, g.cfg.Particles.CheckpointBurst, colorUncheck, ShapeSquare)
	return true
}

// --- transitions ---

// setMode switches the active mode and notifies the observer. Leaving the
// run for anything but the game over pause drops practice checkpoints.
func (g *Game) setMode(to Mode) {
	from := g.mode
	g.mode = to
	g.modeTicks = 0

	if to != ModePlaying && to != ModeGameOver {
		g.checkpoints.Clear()
	}
	switch to {
	case ModeMenu:
		g.practice = false
		g.resetRun()
	case ModeEditor:
		g.sound.StopMusic()
	}

	g.observer.Transition(from, to, g.runInfo())
}

// resetRun puts the player back at the level start. Checkpoints survive
// only in practice mode.
func (g *Game) resetRun() {
	g.player = Player{Grounded: true}
	g.camera.Reset()
	g.particles.Clear()
	g.orb.Reset()
	g.percent = 0
	g.jumpLatched = true
	if !g.practice {
		g.checkpoints.Clear()
	}
	if g.mode != ModeEditor {
		g.sound.StartMusic(g.musicBPM())
	}
}

func (g *Game) runInfo() RunInfo {
	return RunInfo{
		LevelID:  g.level.ID,
		Percent:  g.percent,
		Practice: g.practice,
		Attempt:  g.attempt,
	}
}

func (g *Game) musicBPM() int {
	if g.mode.InRun() && g.level.BPM > 0 {
		return g.level.BPM
	}
	return g.cfg.Audio.DefaultBPM
}

func (g *Game) gameOverTicks() int {
	return g.cfg.Timing.GameOverMS * g.cfg.Timing.StepHz / 1000
}

// StartLevel begins a run of l from its start.
func (g *Game) StartLevel(l level.Level, practice bool) {
	g.level = l
	g.practice = practice
	g.attempt = 1
	g.percent = 0
	g.checkpoints.Clear()
	g.setMode(ModePlaying)
	g.resetRun()
}

func (g *Game) startSelected(practice bool) {
	if g.cursor >= len(g.levels) {
		return
	}
	l, err := registry.Create(g.levels[g.cursor].ID, g.cfg.Physics.TileSize)
	if err != nil {
		g.notice = err.Error()
		return
	}
	g.notice = ""
	g.StartLevel(l, practice)
}

// leaveRun exits a run to the editor for the custom level, otherwise to
// the given mode.
func (g *Game) leaveRun(to Mode) {
	if g.level.IsCustom() {
		g.OpenEditor()
		return
	}
	g.setMode(to)
}

// OpenEditor switches to the level editor.
func (g *Game) OpenEditor() {
	g.practice = false
	g.level = level.NewCustom(g.custom, g.cfg.Physics.TileSize)
	g.setMode(ModeEditor)
	g.resetRun()
}

// PlayCustom test-plays the editor's level.
func (g *Game) PlayCustom() {
	g.StartLevel(level.NewCustom(g.custom, g.cfg.Physics.TileSize), false)
}

// EditorClick applies the active tool at a screen cell.
func (g *Game) EditorClick(col, row int) bool {
	if g.mode != ModeEditor {
		return false
	}
	px, py := PointerWorld(col, row)
	floorY := float64(FloorRow(g.rc.ScreenH)) * RowUnits
	tile := g.cfg.Physics.TileSize
	gx, gy := PointerToGrid(px, py, g.camera.X, floorY, tile)

	var id int64
	if g.editor.Tool != ToolErase {
		id = g.editor.NewID(g.custom)
	}
	objs, changed := Place(g.custom, gx, gy, tile, g.editor.Tool, id)
	if !changed {
		return false
	}
	g.SetCustomLevel(objs)
	g.observer.CustomLevelChanged(g.CustomLevel())
	return true
}

// SetCustomLevel replaces the editor's objects.
func (g *Game) SetCustomLevel(objs []level.Object) {
	g.custom = append([]level.Object(nil), objs...)
	if g.level.IsCustom() {
		g.level.Objects = append([]level.Object(nil), objs...)
	}
}

// CustomLevel returns a copy of the editor's objects.
func (g *Game) CustomLevel() []level.Object {
	return append([]level.Object(nil), g.custom...)
}

// SetTool selects the editor tool.
func (g *Game) SetTool(t Tool) {
	g.editor.Tool = t
}

// --- menu background ---

func (g *Game) initDecor() {
	rng := rand.New(rand.NewSource(g.rc.Seed + 2))
	g.decor = make([]floater, 20)
	for i := range g.decor {
		g.decor[i] = floater{
			X:     rng.Float64() * 2000,
			Y:     rng.Float64() * 1000,
			Size:  rng.Float64()*100 + 20,
			Speed: rng.Float64()*2 + 0.5,
			Rot:   rng.Float64() * math.Pi,
		}
	}
}

func (g *Game) updateDecor() {
	width := float64(g.rc.ScreenW) * ColUnits
	for i := range g.decor {
		f := &g.decor[i]
		f.X -= f.Speed
		if f.X < -200 {
			f.X = width + 200
		}
		f.Rot += 0.01
	}
}

// --- accessors ---

// Mode returns the active mode.
func (g *Game) Mode() Mode { return g.mode }

// Level returns the level being played or edited.
func (g *Game) Level() level.Level { return g.level }

// Player returns the player state.
func (g *Game) Player() Player { return g.player }

// Practice reports whether practice mode is on.
func (g *Game) Practice() bool { return g.practice }

// Attempt returns the attempt number of the current session.
func (g *Game) Attempt() int { return g.attempt }

// Percent returns the completion percentage of the current run.
func (g *Game) Percent() int { return g.percent }

// Checkpoints returns the practice checkpoints, oldest first.
func (g *Game) Checkpoints() []Checkpoint { return g.checkpoints.All() }

// Tool returns the active editor tool.
func (g *Game) Tool() Tool { return g.editor.Tool }

// CameraX returns the camera offset.
func (g *Game) CameraX() float64 { return g.camera.X }

// SetParticleDensity scales particle effects. 0 disables them.
func (g *Game) SetParticleDensity(d float64) { g.particles.SetDensity(d) }

// Notice returns the last level load error, if any.
func (g *Game) Notice() string { return g.notice }
