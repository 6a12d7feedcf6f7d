package playing

import (
	"io"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/wage/internal/application/scene"
	"github.com/younwookim/wage/internal/application/system"
	"github.com/younwookim/wage/internal/domain/clock"
	"github.com/younwookim/wage/internal/domain/entity"
	"github.com/younwookim/wage/internal/infrastructure/config"
)

const frameMs = 20

// recordingSounds records played sound names.
type recordingSounds struct {
	played []string
}

func (r *recordingSounds) Play(name string) bool {
	r.played = append(r.played, name)
	return true
}

func oneFrame(w, h float64) config.AnimationConfig {
	return config.AnimationConfig{Frames: []config.FrameConfig{{
		Source:   config.RectConfig{Width: w, Height: h},
		Delay:    100,
		Hitboxes: []config.HitboxConfig{{Width: w, Height: h}},
	}}}
}

// createTestConfig creates a minimal config for testing
func createTestConfig() *config.GameConfig {
	engineCfg := config.DefaultEngineConfig()
	return &config.GameConfig{
		Engine: &engineCfg,
		Sprites: &config.SpritesConfig{Sheets: map[string]config.SheetConfig{
			"hero": {Texture: "hero.png", Animations: map[string]config.AnimationConfig{
				"idle": oneFrame(12, 14),
				"run":  oneFrame(12, 14),
				"jump": oneFrame(12, 14),
			}},
			"tiles": {Texture: "tiles.png", Animations: map[string]config.AnimationConfig{
				"idle": oneFrame(16, 16),
			}},
			"coin": {Texture: "coin.png", Animations: map[string]config.AnimationConfig{
				"idle": oneFrame(8, 8),
			}},
		}},
		Entities: &config.EntitiesConfig{
			Player: config.PlayerConfig{
				Sprite: "hero", Width: 12, Height: 14,
				Speed: 100, JumpSpeed: 600, JumpMs: 400, Gravity: 240,
				Curve: "outQuad", JumpSound: "jump",
			},
			Templates: map[string]config.TemplateConfig{
				"floor": {Sprite: "tiles", Width: 16, Height: 16, Solid: "top"},
				"wall":  {Sprite: "tiles", Width: 16, Height: 16, Solid: "all"},
				"coin":  {Sprite: "coin", Width: 8, Height: 8, Pickup: true, Sound: "coin"},
			},
		},
	}
}

func createTestStage() *config.StageConfig {
	return &config.StageConfig{
		ID:          "test",
		TileSize:    16,
		Background:  "#1a1a2e",
		PlayerSpawn: config.PositionConfig{X: 2, Y: 16},
		Layout: []string{
			"...o",
			"....",
		},
		TileMapping: map[string]string{"o": "coin"},
		Groups: []config.GroupSpawnConfig{
			{Template: "floor", X: 0, Y: 0, CountX: 8, CountY: 1},
		},
	}
}

func newTestPlaying(t *testing.T) (*Playing, *clock.Manual, *recordingSounds) {
	t.Helper()
	clk := clock.NewManual(1000)
	sounds := &recordingSounds{}
	p, err := New(createTestConfig(), createTestStage(), Options{
		Logger: log.New(io.Discard),
		Clock:  clk,
		Sounds: sounds,
	})
	require.NoError(t, err)
	p.OnEnter()
	return p, clk, sounds
}

func run(p *Playing, clk *clock.Manual, frames int) {
	for i := 0; i < frames; i++ {
		clk.Advance(frameMs)
		p.step()
	}
}

func keyDown(k ebiten.Key) system.Event { return system.Event{Type: system.KeyDown, Key: k} }
func keyUp(k ebiten.Key) system.Event   { return system.Event{Type: system.KeyUp, Key: k} }

func TestPlaying_ImplementsScene(t *testing.T) {
	var _ scene.Scene = (*Playing)(nil)
}

func TestNewPlaying(t *testing.T) {
	p, _, _ := newTestPlaying(t)

	assert.Equal(t, 3, p.Engine().Stats().Entities, "coin, floor group, hero")
	assert.True(t, p.Engine().HasEntity(p.Hero()))
	assert.Equal(t, KindHero, p.Hero().Kind)
	assert.Equal(t, "idle", p.Hero().AnimationName())
	assert.True(t, p.Hero().HasEffect("gravity"))
	assert.True(t, p.Engine().Running())
}

func TestNewPlaying_Errors(t *testing.T) {
	cfg := createTestConfig()
	cfg.Entities.Player.Sprite = "ghost"
	_, err := New(cfg, createTestStage(), Options{Logger: log.New(io.Discard)})
	assert.ErrorIs(t, err, ErrUnknownSprite)

	cfg = createTestConfig()
	cfg.Entities.Templates["floor"] = config.TemplateConfig{Sprite: "tiles", Width: 16, Height: 16, Solid: "sideways"}
	_, err = New(cfg, createTestStage(), Options{Logger: log.New(io.Discard)})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	stage := createTestStage()
	stage.TileMapping["."] = "lava"
	_, err = New(createTestConfig(), stage, Options{Logger: log.New(io.Discard)})
	assert.Error(t, err)
}

func TestPlaying_HeroLandsOnFloor(t *testing.T) {
	p, clk, _ := newTestPlaying(t)

	run(p, clk, 10)

	assert.True(t, p.heroB.Grounded())
	// gravity sinks the hero by one frame of fall after each correction
	assert.InDelta(t, 16-240*0.02, p.Hero().Y, 0.001)
	assert.Equal(t, 2.0, p.Hero().X)
	assert.Empty(t, p.Engine().Errors())
}

func TestPlaying_WalkAndCollect(t *testing.T) {
	p, clk, sounds := newTestPlaying(t)
	run(p, clk, 5)

	p.handleEvent(keyDown(ebiten.KeyArrowRight))
	run(p, clk, 35)

	assert.Greater(t, p.Hero().X, 40.0)
	assert.Equal(t, "run", p.Hero().AnimationName())
	assert.Equal(t, 1, p.Score())
	assert.Contains(t, sounds.played, "coin")

	for _, e := range p.Engine().Entities() {
		assert.NotEqual(t, entity.Kind("coin"), e.Kind, "coin removed after collect")
	}

	p.handleEvent(keyUp(ebiten.KeyArrowRight))
	run(p, clk, 2)
	assert.Equal(t, "idle", p.Hero().AnimationName())
}

func TestPlaying_Jump(t *testing.T) {
	p, clk, sounds := newTestPlaying(t)
	run(p, clk, 5)
	startY := p.Hero().Y

	p.handleEvent(keyDown(ebiten.KeySpace))
	run(p, clk, 5)

	assert.Greater(t, p.Hero().Y, startY+10)
	assert.Equal(t, "jump", p.Hero().AnimationName())
	assert.True(t, p.Hero().HasEffect("ease-vector"))
	assert.Equal(t, []string{"jump"}, sounds.played)

	run(p, clk, 100)
	assert.True(t, p.heroB.Grounded(), "back on the floor")
	assert.False(t, p.Hero().HasEffect("ease-vector"))
}

func TestPlaying_PauseAndDebugKeys(t *testing.T) {
	p, clk, _ := newTestPlaying(t)
	run(p, clk, 5)

	p.handleEvent(keyDown(ebiten.KeyEscape))
	assert.False(t, p.Engine().Running())

	p.handleEvent(keyDown(ebiten.KeyArrowRight))
	x := p.Hero().X
	run(p, clk, 5)
	assert.Equal(t, x, p.Hero().X, "paused, input dropped")

	p.handleEvent(keyDown(ebiten.KeyEscape))
	assert.True(t, p.Engine().Running())
	run(p, clk, 5)
	assert.Equal(t, x, p.Hero().X, "key pressed while paused was not delivered")

	assert.False(t, p.Engine().DebugHitboxes())
	p.handleEvent(keyDown(ebiten.KeyF1))
	assert.True(t, p.Engine().DebugHitboxes())
}

func TestPlaying_OnEnterOnExit(t *testing.T) {
	p, _, _ := newTestPlaying(t)

	p.OnExit()
	assert.False(t, p.Engine().Running())
	p.OnEnter()
	assert.True(t, p.Engine().Running())
}

const reloadEntities = `
player:
  sprite: hero
  width: 12
  height: 14
  speed: 50
  jumpSpeed: 300
  jumpMs: 300
  gravity: 120
templates:
  floor: {sprite: tiles, width: 16, height: 16, solid: top}
`

const reloadSprites = `
sheets:
  hero:
    texture: hero.png
    animations:
      idle:
        frames:
          - source: {width: 12, height: 14}
            hitboxes: [{width: 12, height: 14}]
  tiles:
    texture: tiles.png
    animations:
      idle:
        frames:
          - source: {width: 16, height: 16}
            hitboxes: [{width: 16, height: 16}]
`

const reloadStage = `
id: test
tileSize: 16
playerSpawn: {x: 4, y: 16}
layout:
  - "##"
tileMapping:
  "#": floor
`

func TestPlaying_Reload(t *testing.T) {
	p, clk, _ := newTestPlaying(t)
	run(p, clk, 3)
	oldHero := p.Hero()

	p.opts.Loader = config.NewFSLoader(fstest.MapFS{
		"sprites.yaml":     {Data: []byte(reloadSprites)},
		"entities.yaml":    {Data: []byte(reloadEntities)},
		"stages/test.yaml": {Data: []byte(reloadStage)},
	}, "mem")

	require.NoError(t, p.Reload())

	assert.NotSame(t, oldHero, p.Hero())
	assert.False(t, p.Engine().HasEntity(oldHero))
	assert.Equal(t, 3, p.Engine().Stats().Entities, "two floor tiles and the hero")
	assert.Equal(t, 4.0, p.Hero().X)

	p.opts.Loader = config.NewFSLoader(fstest.MapFS{}, "mem")
	assert.Error(t, p.Reload())
	assert.Equal(t, 3, p.Engine().Stats().Entities, "failed reload keeps the world")
}

func TestPlaying_ReloadFailureKeepsWorld(t *testing.T) {
	badGroup := reloadStage + `
groups:
  - {template: floor, x: 0, y: 0, countX: 0, countY: 1}
`
	ghostEntities := reloadEntities + `  ghost: {sprite: missing, width: 16, height: 16}
`
	ghostStage := `
id: test
tileSize: 16
playerSpawn: {x: 4, y: 16}
layout:
  - "##g"
tileMapping:
  "#": floor
  "g": ghost
`

	tests := []struct {
		name     string
		entities string
		stage    string
		wantErr  error
	}{
		{"zero group count", reloadEntities, badGroup, config.ErrInvalidConfig},
		{"template with unknown sprite", ghostEntities, ghostStage, ErrUnknownSprite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, clk, _ := newTestPlaying(t)
			run(p, clk, 3)
			hero := p.Hero()
			before := p.Engine().Entities()

			p.opts.Loader = config.NewFSLoader(fstest.MapFS{
				"sprites.yaml":     {Data: []byte(reloadSprites)},
				"entities.yaml":    {Data: []byte(tt.entities)},
				"stages/test.yaml": {Data: []byte(tt.stage)},
			}, "mem")

			assert.ErrorIs(t, p.Reload(), tt.wantErr)
			assert.Same(t, hero, p.Hero())
			assert.True(t, p.Engine().HasEntity(hero))
			assert.Len(t, p.Engine().Entities(), len(before))
			for _, e := range before {
				assert.True(t, p.Engine().HasEntity(e), "kept %s", e.Kind)
			}

			run(p, clk, 2)
			assert.True(t, p.Engine().HasEntity(hero), "the old world keeps running")
		})
	}
}
