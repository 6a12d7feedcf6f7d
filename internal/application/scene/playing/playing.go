// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/wage/internal/application/engine"
	"github.com/younwookim/wage/internal/application/scene"
	"github.com/younwookim/wage/internal/application/system"
	"github.com/younwookim/wage/internal/domain/clock"
	"github.com/younwookim/wage/internal/domain/effect"
	"github.com/younwookim/wage/internal/domain/entity"
	"github.com/younwookim/wage/internal/infrastructure/assets"
	"github.com/younwookim/wage/internal/infrastructure/config"
	"github.com/younwookim/wage/internal/infrastructure/render"
)

// Colors for rendering
var (
	colorHUD    = color.RGBA{230, 230, 230, 255}
	colorPaused = color.RGBA{255, 215, 0, 255}
)

const (
	collectMs      = 200 // pickup lingers, shaking, before it is removed
	collectShakePx = 2
)

// Options are the collaborators of a Playing scene. Zero values fall back
// to defaults: system clock, default logger, no textures, no sounds.
type Options struct {
	Logger   *log.Logger
	Clock    clock.Clock
	Textures render.Textures
	Sounds   Sounds
	// Watcher and Loader enable hot reload: a changed YAML file rebuilds
	// the stage from Loader.
	Watcher *config.Watcher
	Loader  *config.Loader
}

// Playing is the main gameplay scene
type Playing struct {
	cfg     *config.GameConfig
	stage   *config.StageConfig
	opts    Options
	logger  *log.Logger
	eng     *engine.Engine
	surface *render.EbitenSurface
	input   *system.InputSystem
	pending system.Queue[system.Event]

	hero       *entity.Entity
	heroB      *Hero
	background color.RGBA
	score      int
	screenW    int
	screenH    int
}

// New creates a new Playing scene for stage.
func New(cfg *config.GameConfig, stage *config.StageConfig, opts Options) (*Playing, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Sounds == nil {
		opts.Sounds = noSounds{}
	}

	engCfg := engine.DefaultConfig()
	engCfg.DebugHitboxes = cfg.Engine.Debug.Hitboxes

	p := &Playing{
		cfg:     cfg,
		opts:    opts,
		logger:  opts.Logger,
		eng:     engine.New(engCfg, opts.Clock, opts.Logger),
		surface: render.NewEbitenSurface(opts.Textures, float64(cfg.Engine.Display.ScreenHeight)),
		input:   system.NewInputSystem(),
		screenW: cfg.Engine.Display.ScreenWidth,
		screenH: cfg.Engine.Display.ScreenHeight,
	}
	p.eng.AllowInput(func(ev system.Event, _ *engine.Engine) error {
		p.heroB.HandleEvent(ev)
		return nil
	})

	if err := p.build(cfg, stage); err != nil {
		return nil, err
	}
	return p, nil
}

// build replaces every entity with a fresh world from cfg and stage.
func (p *Playing) build(cfg *config.GameConfig, stage *config.StageConfig) error {
	bg, err := stage.BackgroundColor()
	if err != nil {
		return err
	}
	sprites, err := cfg.Sprites.Build()
	if err != nil {
		return fmt.Errorf("failed to build sprites: %w", err)
	}
	col, err := Templates(*cfg.Entities, sprites, cfg.Engine.Collision.Threshold, p.collect)
	if err != nil {
		return err
	}
	hero, heroB, err := NewHero(cfg.Entities.Player, sprites, p.opts.Sounds)
	if err != nil {
		return fmt.Errorf("failed to create hero: %w", err)
	}
	if err := hero.Spawn(stage.PlayerSpawn.X, stage.PlayerSpawn.Y); err != nil {
		return err
	}

	built, err := BuildStage(col, stage)
	if err != nil {
		return fmt.Errorf("failed to build stage %q: %w", stage.ID, err)
	}

	for _, e := range p.eng.Entities() {
		p.eng.RemoveEntity(e)
	}
	for _, e := range built {
		p.eng.AddEntity(e)
	}
	p.eng.AddEntity(hero)

	p.cfg = cfg
	p.stage = stage
	p.hero, p.heroB = hero, heroB
	p.background = bg
	p.score = 0
	p.logger.Info("stage built", "stage", stage.ID, "entities", len(built)+1, "templates", col.Len())
	return nil
}

// collect plays the pickup's sound, shakes it briefly and removes it.
func (p *Playing) collect(e *entity.Entity, tmpl config.TemplateConfig) {
	p.score++
	if tmpl.Sound != "" {
		p.opts.Sounds.Play(tmpl.Sound)
	}
	if shake, err := effect.NewShake(collectShakePx, 50, collectMs, nil); err == nil {
		e.AddEffect(shake)
	}
	done, err := effect.NewCallback(collectMs, func(*effect.Effect) {
		p.eng.RemoveEntity(e)
	})
	if err != nil {
		p.eng.RemoveEntity(e)
		return
	}
	e.AddEffect(done)
}

// Engine returns the scene's engine.
func (p *Playing) Engine() *engine.Engine {
	return p.eng
}

// Hero returns the controllable entity.
func (p *Playing) Hero() *entity.Entity {
	return p.hero
}

// Score returns the number of pickups collected.
func (p *Playing) Score() int {
	return p.score
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	p.input.Poll(&p.pending)
	p.step()
	return nil, nil // nil = stay on this scene
}

// step handles queued input and reloads, then advances the engine.
func (p *Playing) step() {
	p.pending.Drain(p.handleEvent)
	p.pollReload()
	p.eng.Update()
}

// handleEvent applies scene keys and forwards the rest to the engine.
func (p *Playing) handleEvent(ev system.Event) {
	if ev.Type == system.KeyDown {
		switch ev.Key {
		case ebiten.KeyEscape:
			if p.eng.Running() {
				p.eng.Pause()
			} else {
				p.eng.Start()
			}
			return
		case ebiten.KeyF1:
			p.eng.SetDebugHitboxes(!p.eng.DebugHitboxes())
			return
		}
	}
	if !p.eng.Running() {
		return
	}
	if err := p.eng.PushInput(ev); err != nil {
		p.logger.Warn("input dropped", "event", ev.Type, "error", err)
	}
}

func (p *Playing) pollReload() {
	if p.opts.Watcher == nil || p.opts.Loader == nil {
		return
	}
	changed := false
	for {
		name, ok := p.opts.Watcher.Poll()
		if !ok {
			break
		}
		p.logger.Debug("reload requested", "file", name)
		changed = true
	}
	if changed {
		if err := p.Reload(); err != nil {
			p.logger.Warn("reload failed, keeping current stage", "error", err)
		}
	}
}

// Reload re-reads sprites, entities and the current stage from the loader
// and rebuilds the world. On error the current world is kept.
func (p *Playing) Reload() error {
	if p.opts.Loader == nil {
		return nil
	}
	sprites, err := p.opts.Loader.LoadSprites()
	if err != nil {
		return err
	}
	ents, err := p.opts.Loader.LoadEntities()
	if err != nil {
		return err
	}
	stage, err := p.opts.Loader.LoadStage(p.stage.ID, ents.Templates)
	if err != nil {
		return err
	}
	next := *p.cfg
	next.Sprites = sprites
	next.Entities = ents
	return p.build(&next, stage)
}

// Draw renders the game (implements scene.Scene)
func (p *Playing) Draw(screen *ebiten.Image) {
	p.surface.Begin(screen)
	p.surface.Fill(p.background)
	p.surface.SetCamera(p.camera())
	p.eng.RenderFrame(p.surface)

	if p.cfg.Engine.Debug.HUD {
		stats := p.eng.Stats()
		p.surface.DrawText(fmt.Sprintf("TPS %.0f  entities %d  errors %d", ebiten.ActualTPS(), stats.Entities, stats.Errors), 4, 4, colorHUD)
	}
	p.surface.DrawText(fmt.Sprintf("Score %d", p.score), 4, p.screenH-16, colorHUD)
	if !p.eng.Running() {
		p.surface.DrawText("PAUSED", p.screenW/2-21, p.screenH/2-6, colorPaused)
	}
}

// camera keeps the hero horizontally centered, never left of the stage.
func (p *Playing) camera() (float64, float64) {
	x := p.hero.X + p.hero.Width/2 - float64(p.screenW)/2
	if x < 0 {
		x = 0
	}
	return x, 0
}

// OnEnter is called when entering the scene (implements scene.Scene)
func (p *Playing) OnEnter() {
	p.eng.Start()
}

// OnExit is called when leaving the scene (implements scene.Scene)
func (p *Playing) OnExit() {
	p.eng.Pause()
}

// AudioOut plays sounds from a library through a speaker.
type AudioOut struct {
	Library interface {
		Sound(name string) (*assets.Sound, bool)
	}
	Speaker *assets.Speaker
}

// Play implements Sounds.
func (a AudioOut) Play(name string) bool {
	s, ok := a.Library.Sound(name)
	if !ok {
		return false
	}
	return a.Speaker.Play(s)
}
