// Package builtin registers the levels shipped with the game.
// Import it for side effects.
package builtin

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/vovakirdan/tui-dash/internal/games/dash/level"
	"github.com/vovakirdan/tui-dash/internal/registry"
)

//go:embed levels/*.yaml
var files embed.FS

// FS exposes the embedded level files.
func FS() fs.FS {
	return files
}

func init() {
	levels, errs := level.NewLoader(files, "levels", registry.ReferenceTileSize).LoadAll()
	if len(errs) > 0 {
		panic(fmt.Sprintf("builtin levels: %v", errs[0]))
	}
	for _, l := range levels {
		registry.Register(l.ID, registry.FromLevel(l, registry.ReferenceTileSize))
	}
}
