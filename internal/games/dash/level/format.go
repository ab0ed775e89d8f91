package level

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
)

// YAMLLevel represents the YAML structure for a level file.
// Positions and length are in tiles.
type YAMLLevel struct {
	ID         int               `yaml:"id"`
	Name       string            `yaml:"name"`
	Difficulty config.Difficulty `yaml:"difficulty"`
	BPM        int               `yaml:"bpm"`
	Length     int               `yaml:"length"`
	Theme      YAMLTheme         `yaml:"theme"`
	Objects    []YAMLObject      `yaml:"objects"`
}

// YAMLTheme represents level colors as hex strings.
type YAMLTheme struct {
	Background   string `yaml:"background"`
	Floor        string `yaml:"floor"`
	ObjPrimary   string `yaml:"obj_primary"`
	ObjSecondary string `yaml:"obj_secondary"`
	Spike        string `yaml:"spike"`
}

// YAMLObject is one object entry. Run repeats it to the right, each copy
// raised by Rise rows.
type YAMLObject struct {
	Type string `yaml:"type"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y,omitempty"`
	Run  int    `yaml:"run,omitempty"`
	Rise int    `yaml:"rise,omitempty"`
}

// DefaultBPM is used when a level file omits its tempo.
const DefaultBPM = 150

// Parse parses a YAML level file. Objects are assigned ids in file order.
// Unknown object types are kept as inert entities.
func Parse(data []byte, tileSize float64) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("level: yaml unmarshal: %w", err)
	}
	if yl.ID <= 0 {
		return Level{}, fmt.Errorf("level: missing or invalid id %d", yl.ID)
	}
	if yl.Length <= 0 {
		return Level{}, fmt.Errorf("level %d: length must be positive", yl.ID)
	}

	bpm := yl.BPM
	if bpm <= 0 {
		bpm = DefaultBPM
	}
	diff := yl.Difficulty
	if diff == "" {
		diff = config.DifficultyUnknown
	}

	l := Level{
		ID:         yl.ID,
		Name:       yl.Name,
		Difficulty: diff,
		BPM:        bpm,
		Length:     float64(yl.Length) * tileSize,
		Theme:      yl.Theme.toTheme(),
	}
	if l.Name == "" {
		l.Name = fmt.Sprintf("Level %d", yl.ID)
	}

	var id int64
	for _, o := range yl.Objects {
		typ := ParseEntityType(o.Type)
		run := o.Run
		if run <= 0 {
			run = 1
		}
		for i := 0; i < run; i++ {
			l.Objects = append(l.Objects, Object{
				ID:   id,
				Type: typ,
				X:    float64(o.X+i) * tileSize,
				Y:    o.Y + i*o.Rise,
			})
			id++
		}
	}

	return l, nil
}

// Marshal encodes a level in the YAML file format, one entry per object.
func Marshal(l Level, tileSize float64) ([]byte, error) {
	yl := YAMLLevel{
		ID:         l.ID,
		Name:       l.Name,
		Difficulty: l.Difficulty,
		BPM:        l.BPM,
		Length:     int(math.Round(l.Length / tileSize)),
		Theme:      fromTheme(l.Theme),
		Objects:    make([]YAMLObject, 0, len(l.Objects)),
	}
	for _, o := range l.Objects {
		yl.Objects = append(yl.Objects, YAMLObject{
			Type: o.Type.String(),
			X:    int(math.Round(o.X / tileSize)),
			Y:    o.Y,
		})
	}

	data, err := yaml.Marshal(&yl)
	if err != nil {
		return nil, fmt.Errorf("level: yaml marshal: %w", err)
	}
	return data, nil
}

// MarshalObjects encodes only an object list, used for the custom level.
func MarshalObjects(objects []Object, tileSize float64) ([]byte, error) {
	return Marshal(NewCustom(objects, tileSize), tileSize)
}

func (t YAMLTheme) toTheme() Theme {
	return Theme{
		Background:   core.Color(t.Background),
		Floor:        core.Color(t.Floor),
		ObjPrimary:   core.Color(t.ObjPrimary),
		ObjSecondary: core.Color(t.ObjSecondary),
		Spike:        core.Color(t.Spike),
	}
}

func fromTheme(t Theme) YAMLTheme {
	return YAMLTheme{
		Background:   string(t.Background),
		Floor:        string(t.Floor),
		ObjPrimary:   string(t.ObjPrimary),
		ObjSecondary: string(t.ObjSecondary),
		Spike:        string(t.Spike),
	}
}
