// Package entity provides game objects: position, size, velocity, named
// animations and a set of active effects, with behavior supplied by the
// game through the Behavior interface.
package entity

import (
	"errors"
	"fmt"

	"github.com/younwookim/wage/internal/domain/animation"
	"github.com/younwookim/wage/internal/domain/hitbox"
)

var (
	// ErrNilBehavior is returned when creating an entity without behavior.
	ErrNilBehavior = errors.New("entity: behavior is required")
	// ErrNoAnimation is returned when spawning an entity that has no
	// registered animation.
	ErrNoAnimation = errors.New("entity: at least one animation must be registered before spawn")
	// ErrInvalidGroup is returned for groups with a zero axis count.
	ErrInvalidGroup = errors.New("entity: group counts must be 1 or more")
)

// Env is the engine as seen by entity behavior during a frame.
type Env interface {
	// Now returns the absolute frame time in milliseconds.
	Now() int64
	// Entities returns the live entities.
	Entities() []*Entity
}

// Collision describes one overlapping hitbox pair from the receiving
// entity's point of view.
type Collision struct {
	Other        *Entity
	Side         hitbox.Side // own edge in contact
	Penetrations hitbox.Penetrations
	OwnBox       hitbox.Hitbox
	OtherBox     hitbox.Hitbox
}

// Behavior is the game-specific part of an entity.
type Behavior interface {
	// Init sets up size and animations. Called once from New.
	Init(e *Entity) error
	// Process runs entity physics for one frame of dt seconds.
	Process(e *Entity, dt float64, env Env) error
	// ResolveCollision reacts to an overlap with another entity.
	ResolveCollision(e *Entity, c Collision) error
}

// Spawner is implemented by behavior that needs to react to Spawn.
type Spawner interface {
	OnSpawn(e *Entity) error
}

// Composite is implemented by behavior owning child entities that are
// rendered after their parent.
type Composite interface {
	Children() []*Entity
}

// Entity is a game object.
type Entity struct {
	ID     EntityID
	Kind   Kind
	X, Y   float64
	Width  float64
	Height float64
	Vector Vector

	behavior   Behavior
	animations map[string]*animation.Player
	order      []string // registration order
	current    string
	effects    []Effect
	spawned    bool
}

// New creates an entity of the given kind and runs its Init hook.
func New(kind Kind, b Behavior) (*Entity, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: kind %q", ErrNilBehavior, kind)
	}
	e := &Entity{
		Kind:       kind,
		behavior:   b,
		animations: make(map[string]*animation.Player),
	}
	if err := b.Init(e); err != nil {
		return nil, fmt.Errorf("failed to init entity %q: %w", kind, err)
	}
	return e, nil
}

// Behavior returns the entity's behavior.
func (e *Entity) Behavior() Behavior {
	return e.behavior
}

// SetWidth updates the entity's width.
func (e *Entity) SetWidth(w float64) {
	e.Width = w
}

// SetHeight updates the entity's height.
func (e *Entity) SetHeight(h float64) {
	e.Height = h
}

// Position returns the entity origin.
func (e *Entity) Position() hitbox.Point {
	return hitbox.Point{X: e.X, Y: e.Y}
}

// RegisterAnimation adds a named animation backed by def and returns this
// entity's own player for it. The first registered animation becomes the
// current one.
func (e *Entity) RegisterAnimation(name string, def *animation.Def) *animation.Player {
	p := def.NewPlayer()
	if _, exists := e.animations[name]; !exists {
		e.order = append(e.order, name)
	}
	e.animations[name] = p
	if e.current == "" {
		e.current = name
	}
	return p
}

// SetAnimation switches to the named animation. Returns false if no such
// animation is registered.
func (e *Entity) SetAnimation(name string) bool {
	if _, ok := e.animations[name]; !ok {
		return false
	}
	e.current = name
	return true
}

// Animation returns the current animation player, or nil.
func (e *Entity) Animation() *animation.Player {
	return e.animations[e.current]
}

// AnimationName returns the current animation name.
func (e *Entity) AnimationName() string {
	return e.current
}

// Animations returns the registered animation names in registration order.
func (e *Entity) Animations() []string {
	names := make([]string, len(e.order))
	copy(names, e.order)
	return names
}

// Spawn places the entity at (x, y). The entity must have at least one
// registered animation.
func (e *Entity) Spawn(x, y float64) error {
	if len(e.animations) == 0 {
		return fmt.Errorf("%w: kind %q", ErrNoAnimation, e.Kind)
	}
	e.X = x
	e.Y = y
	e.spawned = true
	if s, ok := e.behavior.(Spawner); ok {
		if err := s.OnSpawn(e); err != nil {
			return fmt.Errorf("failed to spawn entity %q: %w", e.Kind, err)
		}
	}
	return nil
}

// Spawned reports whether Spawn has succeeded.
func (e *Entity) Spawned() bool {
	return e.spawned
}

// Process runs the behavior's per-frame update.
func (e *Entity) Process(dt float64, env Env) error {
	return e.behavior.Process(e, dt, env)
}

// ResolveCollision hands a collision to the behavior.
func (e *Entity) ResolveCollision(c Collision) error {
	return e.behavior.ResolveCollision(e, c)
}

// DispatchVector integrates velocity over dt seconds into position.
func (e *Entity) DispatchVector(dt float64) {
	dx, dy := e.Vector.Delta(dt)
	e.X += dx
	e.Y += dy
}

// Hitboxes returns the hitboxes of the current animation frame.
func (e *Entity) Hitboxes() []hitbox.Hitbox {
	p := e.Animation()
	if p == nil {
		return nil
	}
	f, ok := p.Current()
	if !ok {
		return nil
	}
	return f.Hitboxes
}

// Children returns child entities for composite behavior.
func (e *Entity) Children() []*Entity {
	if c, ok := e.behavior.(Composite); ok {
		return c.Children()
	}
	return nil
}
