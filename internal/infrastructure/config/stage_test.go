package config

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStage() *StageConfig {
	return &StageConfig{
		ID:       "test",
		TileSize: 16,
		Layout: []string{
			"..o",
			"#.#",
			"###",
		},
		TileMapping: map[string]string{"#": "brick", "o": "coin"},
	}
}

func TestStageConfig_Spawns(t *testing.T) {
	stage := createTestStage()
	spawns := stage.Spawns()

	require.Len(t, spawns, 6)
	assert.Equal(t, TileSpawn{Template: "coin", X: 32, Y: 32}, spawns[0])
	assert.Equal(t, TileSpawn{Template: "brick", X: 0, Y: 16}, spawns[1])
	assert.Equal(t, TileSpawn{Template: "brick", X: 0, Y: 0}, spawns[3])
	assert.Equal(t, 48.0, stage.Height())
}

func TestStageConfig_BackgroundColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"", color.RGBA{A: 255}, false},
		{"#1a1a2e", color.RGBA{R: 0x1a, G: 0x1a, B: 0x2e, A: 255}, false},
		{"ffffff", color.RGBA{R: 255, G: 255, B: 255, A: 255}, false},
		{"#fff", color.RGBA{}, true},
		{"#zzzzzz", color.RGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			s := &StageConfig{Background: tt.in}
			got, err := s.BackgroundColor()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStageConfig_Validate(t *testing.T) {
	templates := map[string]TemplateConfig{"brick": {}, "coin": {}}

	stage := createTestStage()
	assert.NoError(t, stage.Validate(templates))

	stage.Groups = []GroupSpawnConfig{{Template: "cloud", CountX: 2, CountY: 1}}
	assert.ErrorIs(t, stage.Validate(templates), ErrInvalidConfig)

	stage = createTestStage()
	stage.TileMapping["x"] = "spike"
	assert.ErrorIs(t, stage.Validate(templates), ErrInvalidConfig)

	stage = createTestStage()
	stage.TileSize = 0
	assert.ErrorIs(t, stage.Validate(templates), ErrInvalidConfig)

	for _, g := range []GroupSpawnConfig{
		{Template: "brick", CountX: 0, CountY: 1},
		{Template: "brick", CountX: 3, CountY: 0},
		{Template: "brick", CountX: -1, CountY: 2},
	} {
		stage = createTestStage()
		stage.Groups = []GroupSpawnConfig{g}
		assert.ErrorIs(t, stage.Validate(templates), ErrInvalidConfig, "count %dx%d", g.CountX, g.CountY)
	}
}
