package dash

import (
	"math"

	"github.com/vovakirdan/tui-dash/internal/games/dash/level"
)

// Tool is the active editor tool.
type Tool int

const (
	ToolBlock Tool = iota
	ToolSpike
	ToolOrb
	ToolPad
	ToolErase
)

// String returns the label shown in the tool bar.
func (t Tool) String() string {
	switch t {
	case ToolBlock:
		return "Block"
	case ToolSpike:
		return "Spike"
	case ToolOrb:
		return "Orb"
	case ToolPad:
		return "Pad"
	case ToolErase:
		return "Erase"
	default:
		return "?"
	}
}

// Entity returns the entity type the tool places. Erase places nothing.
func (t Tool) Entity() (level.EntityType, bool) {
	switch t {
	case ToolBlock:
		return level.EntityBlock, true
	case ToolSpike:
		return level.EntitySpike, true
	case ToolOrb:
		return level.EntityOrb, true
	case ToolPad:
		return level.EntityPad, true
	default:
		return level.EntityUnknown, false
	}
}

// Tools lists the tools in tool bar order.
var Tools = []Tool{ToolBlock, ToolSpike, ToolOrb, ToolPad, ToolErase}

// cellTolerance is how close, in world units, an object must be to a cell
// to occupy it.
const cellTolerance = 5

// PointerToGrid converts a pointer position into a grid cell. px and py are
// canvas coordinates with y growing downwards, floorY is the canvas row of
// the floor line. gy counts cells up from the floor and is negative below it.
func PointerToGrid(px, py, cameraX, floorY, tileSize float64) (gx, gy int) {
	gx = int(math.Floor((px + cameraX) / tileSize))
	gy = int(math.Floor((floorY - py) / tileSize))
	return gx, gy
}

// Place applies a primary click at cell (gx, gy). The first object
// occupying the cell is removed; unless the tool is erase, a new object
// with the given id takes its place. Cells below the floor are ignored.
// Returns the new list and whether it changed; objs is not modified.
func Place(objs []level.Object, gx, gy int, tileSize float64, tool Tool, id int64) ([]level.Object, bool) {
	if gy < 0 {
		return objs, false
	}

	x := float64(gx) * tileSize
	out := make([]level.Object, 0, len(objs)+1)
	removed := false
	for _, o := range objs {
		if !removed && math.Abs(o.X-x) < cellTolerance && math.Abs(float64(o.Y-gy)*tileSize) < cellTolerance {
			removed = true
			continue
		}
		out = append(out, o)
	}

	typ, ok := tool.Entity()
	if !ok {
		if !removed {
			return objs, false
		}
		return out, true
	}

	out = append(out, level.Object{ID: id, Type: typ, X: x, Y: gy})
	return out, true
}

// Editor holds editor interaction state.
type Editor struct {
	Tool    Tool
	panning bool
	lastCol int
	nextID  int64
}

// NewEditor creates an editor whose ids start at seed.
func NewEditor(seed int64) Editor {
	if seed < 1 {
		seed = 1
	}
	return Editor{Tool: ToolBlock, nextID: seed}
}

// NewID returns a fresh object id greater than any id in objs.
func (e *Editor) NewID(objs []level.Object) int64 {
	for _, o := range objs {
		if o.ID >= e.nextID {
			e.nextID = o.ID + 1
		}
	}
	id := e.nextID
	e.nextID++
	return id
}

// StartPan begins a drag at the given column.
func (e *Editor) StartPan(col int) {
	e.panning = true
	e.lastCol = col
}

// Drag returns the column delta since the last drag position.
func (e *Editor) Drag(col int) (int, bool) {
	if !e.panning {
		return 0, false
	}
	d := col - e.lastCol
	e.lastCol = col
	return d, true
}

// StopPan ends a drag.
func (e *Editor) StopPan() {
	e.panning = false
}

// Panning reports whether a drag is in progress.
func (e *Editor) Panning() bool {
	return e.panning
}
