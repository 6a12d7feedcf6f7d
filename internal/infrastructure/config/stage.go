package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// StageConfig is the root config for stage YAML files
type StageConfig struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	TileSize    int                `yaml:"tileSize"`
	Background  string             `yaml:"background"` // #rrggbb
	PlayerSpawn PositionConfig     `yaml:"playerSpawn"`
	Layout      []string           `yaml:"layout"`      // top row first
	TileMapping map[string]string  `yaml:"tileMapping"` // layout char -> template
	Groups      []GroupSpawnConfig `yaml:"groups"`
}

type PositionConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// GroupSpawnConfig places a grid of one template as a single group entity.
type GroupSpawnConfig struct {
	Template string  `yaml:"template"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	CountX   int     `yaml:"countX"`
	CountY   int     `yaml:"countY"`
}

// TileSpawn is one entity to create from the layout.
type TileSpawn struct {
	Template string
	X, Y     float64 // world position, Y up
}

// Spawns walks the layout and returns the templates to create. Layout rows
// are written top row first; world Y grows upward, so the last row sits
// at y=0. Unmapped characters are empty cells.
func (s *StageConfig) Spawns() []TileSpawn {
	var out []TileSpawn
	rows := len(s.Layout)
	size := float64(s.TileSize)
	for r, row := range s.Layout {
		y := float64(rows-1-r) * size
		for c, ch := range row {
			tmpl, ok := s.TileMapping[string(ch)]
			if !ok {
				continue
			}
			out = append(out, TileSpawn{Template: tmpl, X: float64(c) * size, Y: y})
		}
	}
	return out
}

// Height returns the stage height in pixels.
func (s *StageConfig) Height() float64 {
	return float64(len(s.Layout) * s.TileSize)
}

// BackgroundColor parses Background. Empty means black.
func (s *StageConfig) BackgroundColor() (color.RGBA, error) {
	if s.Background == "" {
		return color.RGBA{A: 255}, nil
	}
	hex := strings.TrimPrefix(s.Background, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: background %q", ErrInvalidConfig, s.Background)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: background %q: %v", ErrInvalidConfig, s.Background, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// Validate checks the stage against the known templates.
func (s *StageConfig) Validate(templates map[string]TemplateConfig) error {
	if s.TileSize <= 0 {
		return fmt.Errorf("%w: stage %q tile size %d", ErrInvalidConfig, s.ID, s.TileSize)
	}
	for ch, tmpl := range s.TileMapping {
		if _, ok := templates[tmpl]; !ok {
			return fmt.Errorf("%w: stage %q maps %q to unknown template %q", ErrInvalidConfig, s.ID, ch, tmpl)
		}
	}
	for _, g := range s.Groups {
		if _, ok := templates[g.Template]; !ok {
			return fmt.Errorf("%w: stage %q group uses unknown template %q", ErrInvalidConfig, s.ID, g.Template)
		}
		if g.CountX <= 0 || g.CountY <= 0 {
			return fmt.Errorf("%w: stage %q group %q count %dx%d", ErrInvalidConfig, s.ID, g.Template, g.CountX, g.CountY)
		}
	}
	return nil
}
