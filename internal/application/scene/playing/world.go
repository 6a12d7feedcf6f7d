package playing

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/wage/internal/application/engine"
	"github.com/younwookim/wage/internal/application/system"
	"github.com/younwookim/wage/internal/domain/curve"
	"github.com/younwookim/wage/internal/domain/effect"
	"github.com/younwookim/wage/internal/domain/entity"
	"github.com/younwookim/wage/internal/domain/hitbox"
	"github.com/younwookim/wage/internal/infrastructure/config"
)

// KindHero is the kind of the controllable entity.
const KindHero entity.Kind = "hero"

// ErrUnknownSprite is returned for a sprite sheet missing from sprites.yaml.
var ErrUnknownSprite = errors.New("playing: unknown sprite sheet")

// Sounds plays named sounds. Implementations drop unknown names.
type Sounds interface {
	Play(name string) bool
}

type noSounds struct{}

func (noSounds) Play(string) bool { return false }

// registerSheet registers every animation of a sheet on e and selects
// "idle" when the sheet has one.
func registerSheet(e *entity.Entity, sprites config.SpriteSet, sheet string) error {
	names := sprites.Animations(sheet)
	if len(names) == 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSprite, sheet)
	}
	for _, name := range names {
		def, _ := sprites.Def(sheet, name)
		e.RegisterAnimation(name, def)
	}
	e.SetAnimation("idle")
	return nil
}

// Hero is the player behavior: walk with the arrow keys or A/D, jump with
// space, up or W while standing on something.
type Hero struct {
	cfg     config.PlayerConfig
	sprites config.SpriteSet
	jump    curve.Func
	sounds  Sounds

	held       map[ebiten.Key]bool
	jumpQueued bool
	grounded   bool
}

// NewHero creates the hero entity.
func NewHero(cfg config.PlayerConfig, sprites config.SpriteSet, sounds Sounds) (*entity.Entity, *Hero, error) {
	if sounds == nil {
		sounds = noSounds{}
	}
	fn, ok := curve.ByName(cfg.Curve)
	if !ok {
		fn = curve.OutQuad
	}
	h := &Hero{
		cfg:     cfg,
		sprites: sprites,
		jump:    fn,
		sounds:  sounds,
		held:    make(map[ebiten.Key]bool),
	}
	e, err := entity.New(KindHero, h)
	if err != nil {
		return nil, nil, err
	}
	return e, h, nil
}

func (h *Hero) Init(e *entity.Entity) error {
	e.SetWidth(h.cfg.Width)
	e.SetHeight(h.cfg.Height)
	return registerSheet(e, h.sprites, h.cfg.Sprite)
}

// OnSpawn starts the constant pull of gravity.
func (h *Hero) OnSpawn(e *entity.Entity) error {
	e.RemoveAllEffects(effect.KindGravity)
	g, err := effect.NewGravity(h.cfg.Gravity, effect.Indefinite, nil)
	if err != nil {
		return err
	}
	e.AddEffect(g)
	return nil
}

// HandleEvent updates the held keys from an input event.
func (h *Hero) HandleEvent(ev system.Event) {
	switch ev.Type {
	case system.KeyDown:
		h.held[ev.Key] = true
		switch ev.Key {
		case ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW:
			h.jumpQueued = true
		}
	case system.KeyUp:
		delete(h.held, ev.Key)
	}
}

// Grounded reports whether the hero stood on a solid last frame.
func (h *Hero) Grounded() bool {
	return h.grounded
}

func (h *Hero) Process(e *entity.Entity, _ float64, _ entity.Env) error {
	left := h.held[ebiten.KeyArrowLeft] || h.held[ebiten.KeyA]
	right := h.held[ebiten.KeyArrowRight] || h.held[ebiten.KeyD]

	e.Vector[entity.Left], e.Vector[entity.Right] = 0, 0
	if left && !right {
		e.Vector[entity.Left] = h.cfg.Speed
	}
	if right && !left {
		e.Vector[entity.Right] = h.cfg.Speed
	}

	if h.jumpQueued && h.grounded {
		if err := h.startJump(e); err != nil {
			return err
		}
		h.grounded = false
	}
	h.jumpQueued = false

	switch {
	case !h.grounded:
		e.SetAnimation("jump")
	case left != right:
		e.SetAnimation("run")
	default:
		e.SetAnimation("idle")
	}

	// set again by this frame's collisions
	h.grounded = false
	return nil
}

func (h *Hero) startJump(e *entity.Entity) error {
	e.RemoveAllEffects(effect.KindEaseVector)
	e.Vector[entity.Up] = h.cfg.JumpSpeed
	ease, err := effect.NewEaseVector(entity.Up, 0, h.cfg.JumpMs, h.jump, nil)
	if err != nil {
		return fmt.Errorf("failed to start jump: %w", err)
	}
	e.AddEffect(ease)
	if h.cfg.JumpSound != "" {
		h.sounds.Play(h.cfg.JumpSound)
	}
	return nil
}

func (h *Hero) ResolveCollision(_ *entity.Entity, c entity.Collision) error {
	if c.Side == hitbox.Bottom && isSolid(c.Other) {
		h.grounded = true
	}
	return nil
}

// Solid is a static block that pushes other entities out of itself.
type Solid struct {
	tmpl      config.TemplateConfig
	sprites   config.SpriteSet
	resolve   system.Resolver
	threshold float64
}

func (s *Solid) Init(e *entity.Entity) error {
	e.SetWidth(s.tmpl.Width)
	e.SetHeight(s.tmpl.Height)
	return registerSheet(e, s.sprites, s.tmpl.Sprite)
}

func (s *Solid) Process(*entity.Entity, float64, entity.Env) error { return nil }

func (s *Solid) ResolveCollision(_ *entity.Entity, c entity.Collision) error {
	if c.Other.Kind != KindHero {
		return nil
	}
	s.resolve(c, s.threshold)
	return nil
}

// Pickup is collected once when the hero touches it.
type Pickup struct {
	tmpl      config.TemplateConfig
	sprites   config.SpriteSet
	onCollect func(e *entity.Entity, tmpl config.TemplateConfig)
	collected bool
}

func (p *Pickup) Init(e *entity.Entity) error {
	e.SetWidth(p.tmpl.Width)
	e.SetHeight(p.tmpl.Height)
	return registerSheet(e, p.sprites, p.tmpl.Sprite)
}

func (p *Pickup) Process(*entity.Entity, float64, entity.Env) error { return nil }

func (p *Pickup) ResolveCollision(e *entity.Entity, c entity.Collision) error {
	if p.collected || c.Other.Kind != KindHero {
		return nil
	}
	p.collected = true
	if p.onCollect != nil {
		p.onCollect(e, p.tmpl)
	}
	return nil
}

// Collected reports whether the hero has picked this up.
func (p *Pickup) Collected() bool {
	return p.collected
}

// isSolid reports whether e blocks the hero, directly or as a group of
// solids.
func isSolid(e *entity.Entity) bool {
	switch b := e.Behavior().(type) {
	case *Solid:
		return true
	case *entity.Group:
		_, ok := b.Members[0][0].Behavior().(*Solid)
		return ok
	}
	return false
}

// Templates registers a factory per entities.yaml template. Templates with
// neither a solid policy nor pickup become decoration.
func Templates(ents config.EntitiesConfig, sprites config.SpriteSet, threshold float64, onCollect func(*entity.Entity, config.TemplateConfig)) (*engine.Collector, error) {
	col := engine.NewCollector()
	for name, tmpl := range ents.Templates {
		kind := entity.Kind(name)
		var build func() (entity.Behavior, error)
		switch {
		case tmpl.Pickup:
			build = func() (entity.Behavior, error) {
				return &Pickup{tmpl: tmpl, sprites: sprites, onCollect: onCollect}, nil
			}
		default:
			resolve := system.Resolver(func(entity.Collision, float64) {})
			if tmpl.Solid != "" {
				r, ok := system.ResolverByName(tmpl.Solid)
				if !ok {
					return nil, fmt.Errorf("%w: template %q solid %q", config.ErrInvalidConfig, name, tmpl.Solid)
				}
				resolve = r
			}
			build = func() (entity.Behavior, error) {
				return &Solid{tmpl: tmpl, sprites: sprites, resolve: resolve, threshold: threshold}, nil
			}
		}
		col.Add(name, func() (*entity.Entity, error) {
			b, err := build()
			if err != nil {
				return nil, err
			}
			return entity.New(kind, b)
		})
	}
	return col, nil
}

// BuildStage creates and spawns the stage's tiles and groups. Nothing is
// added to an engine, so a failure leaves the caller's world untouched.
func BuildStage(col *engine.Collector, stage *config.StageConfig) ([]*entity.Entity, error) {
	var built []*entity.Entity
	for _, sp := range stage.Spawns() {
		e, err := col.New(sp.Template)
		if err != nil {
			return nil, err
		}
		if err := e.Spawn(sp.X, sp.Y); err != nil {
			return nil, err
		}
		built = append(built, e)
	}

	for _, g := range stage.Groups {
		tmpl := g.Template
		e, _, err := entity.NewGroup(entity.Kind(tmpl), func() (*entity.Entity, error) {
			return col.New(tmpl)
		}, g.CountX, g.CountY)
		if err != nil {
			return nil, fmt.Errorf("failed to build group %q: %w", tmpl, err)
		}
		if err := e.Spawn(g.X, g.Y); err != nil {
			return nil, err
		}
		built = append(built, e)
	}
	return built, nil
}
