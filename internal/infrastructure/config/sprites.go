package config

import (
	"fmt"
	"sort"

	"github.com/younwookim/wage/internal/domain/animation"
	"github.com/younwookim/wage/internal/domain/hitbox"
)

// SpritesConfig is the root config for sprites.yaml
type SpritesConfig struct {
	Sheets map[string]SheetConfig `yaml:"sheets"`
	Sounds map[string]string      `yaml:"sounds"` // name -> wav path
}

// SheetConfig is one texture and the animations cut from it
type SheetConfig struct {
	Texture    string                     `yaml:"texture"`
	Animations map[string]AnimationConfig `yaml:"animations"`
}

type AnimationConfig struct {
	Mode   string        `yaml:"mode"`   // normal, reverse, alternate
	Repeat *int          `yaml:"repeat"` // omitted = infinite
	Frames []FrameConfig `yaml:"frames"`
}

type FrameConfig struct {
	Source   RectConfig     `yaml:"source"`
	Size     SizeConfig     `yaml:"size"` // zero = entity size
	Offset   PointConfig    `yaml:"offset"`
	Delay    int64          `yaml:"delay"` // ms
	Hitboxes []HitboxConfig `yaml:"hitboxes"`
}

type RectConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type SizeConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type HitboxConfig struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offsetX"`
	OffsetY float64 `yaml:"offsetY"`
}

// SpriteSet is the animation definitions built from a SpritesConfig, keyed
// by sheet then animation name. Defs are shared by every entity using them.
type SpriteSet map[string]map[string]*animation.Def

// Def returns the named animation of a sheet.
func (s SpriteSet) Def(sheet, anim string) (*animation.Def, bool) {
	defs, ok := s[sheet]
	if !ok {
		return nil, false
	}
	d, ok := defs[anim]
	return d, ok
}

// Sheets returns the sheet names, sorted.
func (s SpriteSet) Sheets() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Animations returns the animation names of a sheet, sorted.
func (s SpriteSet) Animations(sheet string) []string {
	names := make([]string, 0, len(s[sheet]))
	for name := range s[sheet] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build converts the config into animation definitions.
func (c *SpritesConfig) Build() (SpriteSet, error) {
	set := make(SpriteSet, len(c.Sheets))
	for sheetName, sheet := range c.Sheets {
		if sheet.Texture == "" {
			return nil, fmt.Errorf("%w: sheet %q has no texture", ErrInvalidConfig, sheetName)
		}
		defs := make(map[string]*animation.Def, len(sheet.Animations))
		for animName, ac := range sheet.Animations {
			def, err := ac.build(sheet.Texture)
			if err != nil {
				return nil, fmt.Errorf("failed to build %s/%s: %w", sheetName, animName, err)
			}
			defs[animName] = def
		}
		set[sheetName] = defs
	}
	return set, nil
}

func (ac AnimationConfig) build(texture string) (*animation.Def, error) {
	mode, err := animation.ParseMode(ac.Mode)
	if err != nil {
		return nil, err
	}
	if len(ac.Frames) == 0 {
		return nil, fmt.Errorf("%w: no frames", ErrInvalidConfig)
	}

	def := animation.NewDef(texture)
	def.Mode = mode
	if ac.Repeat != nil {
		if *ac.Repeat < animation.Infinite {
			return nil, fmt.Errorf("%w: repeat %d", ErrInvalidConfig, *ac.Repeat)
		}
		def.Repeat = *ac.Repeat
	}

	for i, fc := range ac.Frames {
		if fc.Delay < 0 {
			return nil, fmt.Errorf("%w: frame %d has negative delay", ErrInvalidConfig, i)
		}
		var boxes []hitbox.Hitbox
		for _, hc := range fc.Hitboxes {
			boxes = append(boxes, hitbox.New(hc.Width, hc.Height, hc.OffsetX, hc.OffsetY))
		}
		def.AddFrame(animation.Frame{
			Source:   animation.Rect{X: fc.Source.X, Y: fc.Source.Y, Width: fc.Source.Width, Height: fc.Source.Height},
			DrawSize: animation.Size{Width: fc.Size.Width, Height: fc.Size.Height},
			Offset:   animation.Point{X: fc.Offset.X, Y: fc.Offset.Y},
			DelayMs:  fc.Delay,
			Hitboxes: boxes,
		})
	}
	return def, nil
}

// Textures returns the distinct texture paths referenced by the sheets,
// sorted.
func (c *SpritesConfig) Textures() []string {
	seen := make(map[string]bool)
	var out []string
	for _, sheet := range c.Sheets {
		if sheet.Texture != "" && !seen[sheet.Texture] {
			seen[sheet.Texture] = true
			out = append(out, sheet.Texture)
		}
	}
	sort.Strings(out)
	return out
}
