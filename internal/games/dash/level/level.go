// Package level defines level data: entity types, placed objects, color
// themes and the YAML level format.
package level

import (
	"strings"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
)

// CustomID is the id of the level built in the editor. It is never
// recorded in level progress.
const CustomID = 999

// CustomLengthTiles is the length of the custom level in tiles.
const CustomLengthTiles = 100

// EntityType is the kind of a level object. The set is closed: values
// outside the declared constants are inert in both physics and rendering.
type EntityType int

const (
	EntityUnknown EntityType = iota
	EntityBlock
	EntitySpike
	EntityOrb
	EntityPad
)

// String returns the lower-case name used in level files.
func (t EntityType) String() string {
	switch t {
	case EntityBlock:
		return "block"
	case EntitySpike:
		return "spike"
	case EntityOrb:
		return "orb"
	case EntityPad:
		return "pad"
	default:
		return "unknown"
	}
}

// Known reports whether the type is one of the declared entity kinds.
func (t EntityType) Known() bool {
	switch t {
	case EntityBlock, EntitySpike, EntityOrb, EntityPad:
		return true
	default:
		return false
	}
}

// ParseEntityType maps a level file name to an entity type. Unrecognized
// names become EntityUnknown rather than an error.
func ParseEntityType(s string) EntityType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "block":
		return EntityBlock
	case "spike":
		return EntitySpike
	case "orb":
		return EntityOrb
	case "pad":
		return EntityPad
	default:
		return EntityUnknown
	}
}

// Object is a placed level element. X is in world units; Y is the grid
// row counted up from the floor (0 sits on the floor).
type Object struct {
	ID   int64
	Type EntityType
	X    float64
	Y    int
}

// Theme holds the colors a level is drawn with.
type Theme struct {
	Background   core.Color
	Floor        core.Color
	ObjPrimary   core.Color
	ObjSecondary core.Color
	Spike        core.Color
}

// Level is a complete level definition.
type Level struct {
	ID         int
	Name       string
	Difficulty config.Difficulty
	BPM        int
	Length     float64 // World units; reaching it wins the level
	Theme      Theme
	Objects    []Object
}

// IsCustom reports whether this is the editor's level.
func (l Level) IsCustom() bool {
	return l.ID == CustomID
}

// Clone returns a copy whose object list can be mutated independently.
func (l Level) Clone() Level {
	l.Objects = append([]Object(nil), l.Objects...)
	return l
}

// CustomTheme is the neutral grey theme of the editor level.
var CustomTheme = Theme{
	Background:   "#444444",
	Floor:        "#222222",
	ObjPrimary:   "#888888",
	ObjSecondary: "#666666",
	Spike:        "#DDDDDD",
}

// NewCustom builds the editor level around the given objects.
func NewCustom(objects []Object, tileSize float64) Level {
	return Level{
		ID:         CustomID,
		Name:       "Custom Level",
		Difficulty: config.DifficultyUnknown,
		BPM:        150,
		Length:     CustomLengthTiles * tileSize,
		Theme:      CustomTheme,
		Objects:    append([]Object(nil), objects...),
	}
}
