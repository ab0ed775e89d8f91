package dash

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/games/dash/level"
)

// Terminal cells are about twice as tall as wide, so a 50 unit tile
// covers 4 columns and 2 rows.
const (
	ColUnits = 12.5 // World units per column
	RowUnits = 25.0 // World units per row
)

// Render colors that do not depend on the level theme.
const (
	colorPlayer      core.Color = "#FFFF00"
	colorPlayerInner core.Color = "#00FFFF"
	colorOrb         core.Color = "#FFFF00"
	colorOutline     core.Color = "#FFFFFF"
	colorEditorFloor core.Color = "#00FF00"
	colorEditorGrid  core.Color = "#555555"
	colorMenuGrid    core.Color = "#a000c0"
	colorMenuDecor   core.Color = "#600090"
	colorHUD         core.Color = core.ColorBrightWhite
	colorDim         core.Color = core.ColorGray
)

// FloorRow returns the screen row of the floor line for a screen height.
// World y = 0 is the bottom edge of the row above it.
func FloorRow(h int) int {
	return h - 2
}

// PointerWorld converts a screen cell to canvas coordinates at the cell
// center, y growing downwards.
func PointerWorld(col, row int) (px, py float64) {
	return (float64(col) + 0.5) * ColUnits, (float64(row) + 0.5) * RowUnits
}

// view maps world coordinates to screen cells for one frame.
type view struct {
	camX     float64
	shakeX   float64
	floorRow int
	shakeRow int
}

func (v view) col(x float64) int {
	return int(math.Floor((x - v.camX + v.shakeX) / ColUnits))
}

// row returns the screen row holding world height y.
func (v view) row(y float64) int {
	return v.floorRow - 1 - int(math.Floor(y/RowUnits)) + v.shakeRow
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w <= 0 || h <= 0 {
		return
	}

	dx, dy := g.camera.ShakeOffset(g.fx)
	v := view{
		camX:     g.camera.X,
		shakeX:   dx,
		floorRow: FloorRow(h),
		shakeRow: int(math.Round(dy / RowUnits)),
	}

	switch g.mode {
	case ModeMenu:
		g.drawMenuBackground(dst)
		g.drawMainMenu(dst)
		return
	case ModeLevelSelect:
		g.drawMenuBackground(dst)
		g.drawLevelSelect(dst)
		return
	case ModeEditor:
		g.drawEditorGrid(dst, v)
	default:
		g.drawBackground(dst, v)
		g.drawFloor(dst, v)
	}

	if g.practice && g.mode == ModePlaying {
		for _, cp := range g.checkpoints.All() {
			dst.SetColored(v.col(cp.X+g.cfg.Physics.PlayerSize/2), v.row(cp.Y), '◆', colorCheckpoint)
		}
	}

	g.drawParticles(dst, v)
	g.drawObjects(dst, v)

	switch g.mode {
	case ModeEditor:
		g.drawEditorHUD(dst)
	case ModePlaying:
		g.drawPlayer(dst, v)
		g.drawHUD(dst)
	case ModeGameOver:
		g.drawHUD(dst)
		dst.DrawTextCentered(h/2-1, " CRASHED! ", core.ColorBrightRed)
		dst.DrawTextCentered(h/2, fmt.Sprintf(" Attempt %d ", g.attempt), colorHUD)
	case ModeVictory:
		g.drawPlayer(dst, v)
		g.drawVictory(dst)
	}
}

func (g *Game) drawBackground(dst *core.Screen, v view) {
	c := g.level.Theme.Background
	if c == "" {
		c = colorDim
	}
	// Parallax grid: one line per 100 units, scrolling at a tenth of the camera.
	spacing := 100.0 / ColUnits
	offset := math.Mod(-g.camera.X*0.1/ColUnits, spacing)
	for x := offset; x < float64(dst.Width()); x += spacing {
		col := int(math.Floor(x))
		for y := 1; y < v.floorRow; y += 2 {
			dst.SetColored(col, y, '·', c)
		}
	}
}

func (g *Game) drawFloor(dst *core.Screen, v view) {
	w, h := dst.Width(), dst.Height()
	floor := g.level.Theme.Floor
	if floor == "" {
		floor = colorDim
	}

	edge := colorDim
	if g.mode == ModePlaying && g.Pulse() > 0.8 {
		edge = colorOutline
	}
	dst.DrawHLine(0, v.floorRow, w, '▀', edge)
	for y := v.floorRow + 1; y < h; y++ {
		dst.DrawHLine(0, y, w, '░', floor)
	}

	// Tile seams scroll with the camera.
	tileCols := g.cfg.Physics.TileSize / ColUnits
	offset := math.Mod(-g.camera.X/ColUnits, tileCols)
	for x := offset; x < float64(w); x += tileCols {
		for y := v.floorRow + 1; y < h; y++ {
			dst.SetColored(int(math.Floor(x)), y, '▒', floor)
		}
	}
}

func (g *Game) drawEditorGrid(dst *core.Screen, v view) {
	w := dst.Width()
	tileCols := g.cfg.Physics.TileSize / ColUnits
	tileRows := core.Max(int(g.cfg.Physics.TileSize/RowUnits), 1)
	offset := math.Mod(-g.camera.X/ColUnits, tileCols)
	if offset < 0 {
		offset += tileCols
	}
	for x := offset; x < float64(w); x += tileCols {
		for y := v.floorRow - 1; y > 0; y -= tileRows {
			dst.SetColored(int(math.Floor(x)), y, '┼', colorEditorGrid)
		}
	}
	dst.DrawHLine(0, v.floorRow, w, '━', colorEditorFloor)
}

func (g *Game) drawObjects(dst *core.Screen, v view) {
	tile := g.cfg.Physics.TileSize
	theme := g.level.Theme
	w := float64(dst.Width()) * ColUnits
	cols := int(tile / ColUnits)

	for _, o := range g.level.Objects {
		if o.X < g.camera.X-100 || o.X > g.camera.X+w+100 {
			continue
		}
		x0 := v.col(o.X)
		bottom := v.row(float64(o.Y) * tile)
		top := bottom - 1

		switch o.Type {
		case level.EntityBlock:
			for i := 0; i < cols; i++ {
				c, r := theme.ObjPrimary, '█'
				if i > 0 && i < cols-1 {
					c, r = theme.ObjSecondary, '▓'
				}
				dst.SetColored(x0+i, top, r, c)
				dst.SetColored(x0+i, bottom, r, c)
			}
		case level.EntitySpike:
			dst.SetColored(x0+1, top, '◢', colorOutline)
			dst.SetColored(x0+2, top, '◣', colorOutline)
			dst.SetColored(x0, bottom, '◢', colorOutline)
			for i := 1; i < cols-1; i++ {
				dst.SetColored(x0+i, bottom, '█', theme.Spike)
			}
			dst.SetColored(x0+cols-1, bottom, '◣', colorOutline)
		case level.EntityOrb:
			dst.DrawTextColored(x0, top, " ▄▄ ", colorOrb)
			dst.DrawTextColored(x0, bottom, " ▀▀ ", colorOrb)
		case level.EntityPad:
			dst.DrawTextColored(x0, bottom, "▁▂▂▁", colorOrb)
		default:
			// Unknown objects are not drawn.
		}
	}
}

// playerGlyphs show the rotation, one per quarter turn.
var playerGlyphs = []rune{'◰', '◳', '◲', '◱'}

func (g *Game) drawPlayer(dst *core.Screen, v view) {
	p := g.player
	x0 := v.col(p.X)
	bottom := v.row(p.Y)
	for y := bottom - 1; y <= bottom; y++ {
		for x := x0; x < x0+3; x++ {
			dst.SetColored(x, y, '█', colorPlayer)
		}
	}

	q := int(math.Round(p.Angle/(math.Pi/2))) % 4
	if q < 0 {
		q += 4
	}
	dst.SetColored(x0+1, bottom-1, playerGlyphs[q], colorPlayerInner)
}

func (g *Game) drawParticles(dst *core.Screen, v view) {
	for _, p := range g.particles.Items() {
		r := '■'
		if p.Shape == ShapeCircle {
			r = '•'
		}
		if p.Life < 0.3 {
			r = '·'
		}
		dst.SetColored(v.col(p.X), v.row(p.Y), r, p.Color)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	w := dst.Width()
	dst.DrawTextColored(1, 0, fmt.Sprintf("Attempt %d", g.attempt), colorHUD)

	const barW = 20
	filled := g.percent * barW / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barW-filled)
	dst.DrawTextCentered(0, fmt.Sprintf("%s %3d%%", bar, g.percent), core.ColorBrightGreen)

	if g.practice {
		badge := fmt.Sprintf("PRACTICE ◆%d", g.checkpoints.Len())
		dst.DrawTextColored(w-len([]rune(badge))-1, 0, badge, core.ColorBrightGreen)
	}
}

func (g *Game) drawVictory(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	lines := []string{
		"LEVEL COMPLETE!",
		g.level.Name,
		fmt.Sprintf("Attempts: %d", g.attempt),
		"",
		"Enter continue · R retry",
	}
	drawPanel(dst, w, h, lines, core.ColorBrightYellow)
}

func (g *Game) drawMenuBackground(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()

	spacing := 150.0 / ColUnits
	offset := math.Mod(-g.camera.X*0.2/ColUnits, spacing)
	for x := offset; x < float64(w); x += spacing {
		dst.DrawVLine(int(math.Floor(x)), 0, h, '│', colorMenuGrid)
	}
	for y := 0; y < h; y += int(150 / RowUnits) {
		dst.DrawHLine(0, y, w, '─', colorMenuGrid)
	}

	for _, f := range g.decor {
		cols := int(f.Size / ColUnits)
		rows := int(f.Size / RowUnits)
		r := '▪'
		if int(f.Rot/(math.Pi/4))%2 == 1 {
			r = '◆'
		}
		x0 := int((f.X - f.Size/2) / ColUnits)
		y0 := int((f.Y - f.Size/2) / RowUnits)
		dst.DrawRect(core.NewRect(x0, y0, core.Max(cols, 1), core.Max(rows, 1)), r, colorMenuDecor)
	}
}

// titleArt is the main menu banner.
var titleArt = []string{
	"▀█▀ █ █ █   █▀▄ ▄▀█ █▀ █ █",
	" █  █▄█ █   █▄▀ █▀█ ▄█ █▀█",
}

func (g *Game) drawMainMenu(dst *core.Screen) {
	h := dst.Height()
	top := h/2 - 4
	for i, line := range titleArt {
		dst.DrawTextCentered(top+i, line, core.ColorBrightYellow)
	}
	items := []string{"Enter  Play", "E      Editor", "Q      Quit"}
	for i, item := range items {
		dst.DrawTextCentered(top+len(titleArt)+2+i, item, colorHUD)
	}
	if g.notice != "" {
		dst.DrawTextCentered(h-2, g.notice, core.ColorBrightRed)
	}
}

func (g *Game) drawLevelSelect(dst *core.Screen) {
	w, h := dst.Width(), dst.Height()
	dst.DrawTextCentered(1, "SELECT LEVEL", core.ColorBrightYellow)

	if len(g.levels) == 0 {
		dst.DrawTextCentered(h/2, "No levels installed", colorDim)
		return
	}

	rows := core.Max(h-6, 1)
	start := 0
	if g.cursor >= rows {
		start = g.cursor - rows + 1
	}

	x := core.Max((w-48)/2, 0)
	for i := start; i < len(g.levels) && i-start < rows; i++ {
		info := g.levels[i]
		y := 3 + i - start
		prefix := "  "
		c := colorHUD
		if i == g.cursor {
			prefix = "▶ "
			c = core.ColorBrightCyan
		}
		dst.DrawTextColored(x, y, fmt.Sprintf("%s%2d. %-20s", prefix, info.ID, truncate(info.Name, 20)), c)
		dst.DrawTextColored(x+26, y, fmt.Sprintf("%-7s", info.Difficulty.Label()), info.Difficulty.Color())
		if g.bests != nil {
			dst.DrawTextColored(x+35, y, fmt.Sprintf("best %3d%%", g.bests.Best(info.ID)), colorDim)
		}
	}

	dst.DrawTextCentered(h-2, "Enter play · P practice · Esc back", colorDim)
	if g.notice != "" {
		dst.DrawTextCentered(h-1, g.notice, core.ColorBrightRed)
	}
}

func (g *Game) drawEditorHUD(dst *core.Screen) {
	x := 1
	for i, t := range Tools {
		key := fmt.Sprintf("%d", i+1)
		if t == ToolErase {
			key = "0"
		}
		label := fmt.Sprintf("[%s]%s", key, t)
		c := colorDim
		if t == g.editor.Tool {
			c = core.ColorBrightYellow
		}
		dst.DrawTextColored(x, 0, label, c)
		x += len(label) + 1
	}
	info := fmt.Sprintf("T test · Esc menu · objects %d", len(g.custom))
	dst.DrawTextColored(core.Max(dst.Width()-len([]rune(info))-1, x+1), 0, info, colorDim)
}

// drawPanel draws a centered box with one line of text per row.
func drawPanel(dst *core.Screen, w, h int, lines []string, c core.Color) {
	width := 0
	for _, l := range lines {
		width = core.Max(width, len([]rune(l)))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	r := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)
	dst.DrawRect(r, ' ', core.ColorDefault)
	dst.DrawBox(r, c)
	for i, l := range lines {
		dst.DrawTextCentered(r.Y+1+i, l, c)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Pulse returns the beat pulse in [0, 1]. It follows the simulation clock
// so it stays in step with the fixed tick.
func (g *Game) Pulse() float64 {
	ms := float64(g.tick) * g.stepDuration().Seconds() * 1000
	return (math.Sin(ms/200) + 1) * 0.5
}
