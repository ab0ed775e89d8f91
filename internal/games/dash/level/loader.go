package level

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// Loader loads level files from a file system (embedded or on disk).
type Loader struct {
	FS       fs.FS
	Root     string
	TileSize float64
}

// NewLoader creates a new level loader rooted at root inside fsys.
func NewLoader(fsys fs.FS, root string, tileSize float64) *Loader {
	return &Loader{FS: fsys, Root: root, TileSize: tileSize}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering. Files that fail
// to parse are skipped and reported in the returned error list.
func (l *Loader) LoadAll() ([]Level, []error) {
	var levels []Level
	var errs []error

	err := fs.WalkDir(l.FS, l.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		lvl, err := l.LoadFile(p)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		levels = append(levels, lvl)
		return nil
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("level: walk %s: %w", l.Root, err))
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, errs
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("level: read %s: %w", p, err)
	}
	lvl, err := Parse(data, l.TileSize)
	if err != nil {
		return Level{}, fmt.Errorf("%s: %w", p, err)
	}
	return lvl, nil
}

func isSupportedExtension(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}
