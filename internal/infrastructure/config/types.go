package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("config: invalid")

// EngineConfig is the root config for engine.yaml
type EngineConfig struct {
	Display   DisplayConfig   `yaml:"display"`
	Debug     DebugConfig     `yaml:"debug"`
	Log       LogConfig       `yaml:"log"`
	Audio     AudioConfig     `yaml:"audio"`
	Collision CollisionConfig `yaml:"collision"`
}

type DisplayConfig struct {
	Title        string `yaml:"title"`
	ScreenWidth  int    `yaml:"screenWidth"`
	ScreenHeight int    `yaml:"screenHeight"`
	Scale        int    `yaml:"scale"`
	TPS          int    `yaml:"tps"`
}

type DebugConfig struct {
	Hitboxes bool `yaml:"hitboxes"`
	HUD      bool `yaml:"hud"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

type AudioConfig struct {
	Enabled    bool `yaml:"enabled"`
	SampleRate int  `yaml:"sampleRate"`
	BufferMs   int  `yaml:"bufferMs"`
}

type CollisionConfig struct {
	Threshold float64 `yaml:"threshold"` // deepest penetration a solid policy corrects
}

// DefaultEngineConfig returns the settings used for fields engine.yaml
// leaves out.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Display: DisplayConfig{
			Title:        "WAGE",
			ScreenWidth:  320,
			ScreenHeight: 240,
			Scale:        2,
			TPS:          60,
		},
		Log:       LogConfig{Level: "info"},
		Audio:     AudioConfig{SampleRate: 44100, BufferMs: 100},
		Collision: CollisionConfig{Threshold: 10},
	}
}

// Validate checks value ranges.
func (c *EngineConfig) Validate() error {
	d := c.Display
	if d.ScreenWidth <= 0 || d.ScreenHeight <= 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, d.ScreenWidth, d.ScreenHeight)
	}
	if d.Scale <= 0 {
		return fmt.Errorf("%w: scale %d", ErrInvalidConfig, d.Scale)
	}
	if d.TPS <= 0 {
		return fmt.Errorf("%w: tps %d", ErrInvalidConfig, d.TPS)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.Log.Level)
	}
	if c.Audio.Enabled && c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, c.Audio.SampleRate)
	}
	if c.Collision.Threshold <= 0 {
		return fmt.Errorf("%w: collision threshold %v", ErrInvalidConfig, c.Collision.Threshold)
	}
	return nil
}
