package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed *.json
var LevelsFS embed.FS

const DefaultTileSize = 16

// Level is a top-down tile map. Layers are row-major with row 0 at the top;
// any tile > 0 on a physics layer is solid.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  float64     `json:"tile_size,omitempty"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Name    string `json:"name,omitempty"`
	Physics bool   `json:"physics"`
	// Raycast marks a layer that blocks sight but not movement.
	Raycast bool `json:"raycast,omitempty"`
}

// Entity is a placed object. X and Y are cell coordinates.
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Load reads a level from disk when the path exists, falling back to the
// embedded copy. The .json extension is optional.
func Load(name string) (*Level, error) {
	if filepath.Ext(name) == "" {
		name += ".json"
	}
	data, err := os.ReadFile(name)
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, filepath.ToSlash(filepath.Base(name)))
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", name, err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("levels: bad dimensions %dx%d", l.Width, l.Height)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("levels: layer %d has %d tiles, want %d", i, len(layer), l.Width*l.Height)
		}
	}
	return nil
}

func (l *Level) CellSize() float64 {
	if l.TileSize > 0 {
		return l.TileSize
	}
	return DefaultTileSize
}

func (l *Level) layerMeta(i int) LayerMeta {
	if i < len(l.LayerMeta) {
		return l.LayerMeta[i]
	}
	return LayerMeta{}
}

// Solid reports whether any physics layer has a tile at (x, y).
func (l *Level) Solid(x, y int) bool {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return true
	}
	for i, layer := range l.Layers {
		if l.layerMeta(i).Physics && layer[y*l.Width+x] > 0 {
			return true
		}
	}
	return false
}

// Walkable returns the trespassable matrix indexed [x][y].
func (l *Level) Walkable() [][]bool {
	cells := make([][]bool, l.Width)
	for x := range cells {
		cells[x] = make([]bool, l.Height)
		for y := range cells[x] {
			cells[x][y] = !l.Solid(x, y)
		}
	}
	return cells
}

// SolidLayers returns the row-major masks of physics and raycast-only layers.
func (l *Level) SolidLayers() (physics [][]int, raycast [][]int) {
	for i, layer := range l.Layers {
		meta := l.layerMeta(i)
		switch {
		case meta.Physics:
			physics = append(physics, layer)
		case meta.Raycast:
			raycast = append(raycast, layer)
		}
	}
	return physics, raycast
}
