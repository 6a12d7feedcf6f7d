// Package engine runs the frame loop over a set of entities.
//
// Each tick runs a process phase (scheduled tasks, input, effects, entity
// physics, the collision pass, position integration) followed by a render
// phase (animation advance, render effects, drawing). Both phases run to
// completion before the next tick.
package engine

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/charmbracelet/log"
	"golang.org/x/image/colornames"

	"github.com/younwookim/wage/internal/application/state"
	"github.com/younwookim/wage/internal/application/system"
	"github.com/younwookim/wage/internal/domain/animation"
	"github.com/younwookim/wage/internal/domain/clock"
	"github.com/younwookim/wage/internal/domain/entity"
	"github.com/younwookim/wage/internal/domain/hitbox"
)

// ErrInputDisabled is returned by PushInput before AllowInput was called.
var ErrInputDisabled = errors.New("engine: input is not enabled")

// Surface is the draw target of the render phase. Coordinates are world
// space; the surface maps them to the screen.
type Surface interface {
	DrawImage(texture string, src animation.Rect, dst animation.Rect)
	DrawRect(r hitbox.Rect, c color.Color)
}

// InputHandler receives queued input events at the start of each process
// phase.
type InputHandler func(ev system.Event, eng *Engine) error

// Config holds engine settings
type Config struct {
	DebugHitboxes bool
	HitboxColor   color.Color
	MaxErrors     int // per-frame entity errors kept for Errors
}

// DefaultConfig returns the default engine settings
func DefaultConfig() Config {
	return Config{
		HitboxColor: colornames.Red,
		MaxErrors:   64,
	}
}

// EntityError is a failure raised by one entity during a frame.
type EntityError struct {
	ID    entity.EntityID
	Kind  entity.Kind
	Phase string
	Err   error
}

func (e EntityError) Error() string {
	return fmt.Sprintf("entity %d (%s) failed in %s: %v", e.ID, e.Kind, e.Phase, e.Err)
}

func (e EntityError) Unwrap() error {
	return e.Err
}

// Stats is a snapshot of engine counters
type Stats struct {
	Frames   uint64
	Entities int
	Pending  int // scheduled tasks not yet run
	Errors   int // entity errors in the last frame
}

// Engine owns the entities and drives their frames.
type Engine struct {
	cfg    Config
	clock  clock.Clock
	logger *log.Logger

	registry   *Registry
	scheduler  *system.Scheduler
	collisions *system.CollisionSystem

	input        system.Queue[system.Event]
	inputHandler InputHandler

	state  state.RunState
	now    int64
	frames uint64

	errs   []EntityError
	failed map[*entity.Entity]bool
}

// New creates a new engine. A nil clock uses the system clock and a nil
// logger uses log.Default(). The engine starts paused.
func New(cfg Config, clk clock.Clock, logger *log.Logger) *Engine {
	if clk == nil {
		clk = clock.NewSystem()
	}
	if logger == nil {
		logger = log.Default()
	}
	if cfg.HitboxColor == nil {
		cfg.HitboxColor = colornames.Red
	}
	if cfg.MaxErrors <= 0 {
		cfg.MaxErrors = 64
	}

	eng := &Engine{
		cfg:       cfg,
		clock:     clk,
		logger:    logger,
		registry:  NewRegistry(),
		scheduler: system.NewScheduler(),
		state:     state.StateLoading,
		failed:    make(map[*entity.Entity]bool),
	}
	eng.collisions = system.NewCollisionSystem(func(e *entity.Entity, err error) {
		eng.fail(e, "collision", err)
	})
	eng.now = clk.Now()
	return eng
}

// Now returns the time of the current frame in milliseconds.
func (eng *Engine) Now() int64 {
	return eng.now
}

// Entities returns the live entities in insertion order.
func (eng *Engine) Entities() []*entity.Entity {
	return eng.registry.All()
}

// Logger returns the engine's logger.
func (eng *Engine) Logger() *log.Logger {
	return eng.logger
}

// AddEntity registers e. Returns false if it is already registered.
func (eng *Engine) AddEntity(e *entity.Entity) bool {
	if !eng.registry.Add(e) {
		return false
	}
	eng.logger.Debug("entity added", "entity", e.ID, "kind", e.Kind)
	return true
}

// RemoveEntity unregisters e. Returns false if it was not registered.
func (eng *Engine) RemoveEntity(e *entity.Entity) bool {
	if !eng.registry.Remove(e) {
		return false
	}
	eng.logger.Debug("entity removed", "entity", e.ID, "kind", e.Kind)
	return true
}

// HasEntity reports whether e is registered.
func (eng *Engine) HasEntity(e *entity.Entity) bool {
	return eng.registry.Has(e)
}

// AddEffect attaches ef to e after delayMs. A delay of zero or less
// attaches immediately. Delayed attachment cannot be cancelled.
func (eng *Engine) AddEffect(e *entity.Entity, ef entity.Effect, delayMs int64) {
	if delayMs <= 0 {
		e.AddEffect(ef)
		return
	}
	eng.scheduler.After(eng.clock.Now(), delayMs, func(int64) {
		e.AddEffect(ef)
	})
}

// Schedule runs fn at the start of the first process phase at least
// delayMs from now.
func (eng *Engine) Schedule(delayMs int64, fn func(now int64)) {
	eng.scheduler.After(eng.clock.Now(), delayMs, fn)
}

// AllowInput installs the input handler and enables PushInput.
func (eng *Engine) AllowInput(h InputHandler) {
	eng.inputHandler = h
}

// PushInput queues an input event for the next process phase.
func (eng *Engine) PushInput(ev system.Event) error {
	if eng.inputHandler == nil {
		return ErrInputDisabled
	}
	eng.input.Add(ev)
	return nil
}

// InputQueue exposes the pending input events, e.g. for an InputSystem to
// poll into. Events added before AllowInput are dropped.
func (eng *Engine) InputQueue() *system.Queue[system.Event] {
	return &eng.input
}

// Start resumes the frame loop.
func (eng *Engine) Start() {
	if eng.state == state.StateRunning {
		return
	}
	eng.state = state.StateRunning
	eng.logger.Info("engine started", "entities", eng.registry.Len())
}

// Pause stops processing at the next tick boundary.
func (eng *Engine) Pause() {
	if eng.state != state.StateRunning {
		return
	}
	eng.state = state.StatePaused
	eng.logger.Info("engine paused", "frames", eng.frames)
}

// Running reports whether ticks are processed.
func (eng *Engine) Running() bool {
	return eng.state.Advances()
}

// State returns the run state.
func (eng *Engine) State() state.RunState {
	return eng.state
}

// SetDebugHitboxes toggles the hitbox overlay.
func (eng *Engine) SetDebugHitboxes(on bool) {
	eng.cfg.DebugHitboxes = on
}

// DebugHitboxes reports whether the hitbox overlay is on.
func (eng *Engine) DebugHitboxes() bool {
	return eng.cfg.DebugHitboxes
}

// Errors returns the entity errors raised during the last frame.
func (eng *Engine) Errors() []EntityError {
	out := make([]EntityError, len(eng.errs))
	copy(out, eng.errs)
	return out
}

// Stats returns the engine counters.
func (eng *Engine) Stats() Stats {
	return Stats{
		Frames:   eng.frames,
		Entities: eng.registry.Len(),
		Pending:  eng.scheduler.Len(),
		Errors:   len(eng.errs),
	}
}

// Update consumes one clock tick and, while running, processes a frame of
// that length. The tick is consumed even when paused so resuming does not
// produce one huge step.
func (eng *Engine) Update() {
	dt := float64(eng.clock.Tick()) / 1000
	if !eng.Running() {
		return
	}
	eng.ProcessFrame(dt)
}

// Step runs one full tick: Update then RenderFrame.
func (eng *Engine) Step(s Surface) {
	eng.Update()
	eng.RenderFrame(s)
}

// ProcessFrame runs the process phase for dt seconds.
func (eng *Engine) ProcessFrame(dt float64) {
	eng.now = eng.clock.Now()
	eng.frames++
	eng.errs = eng.errs[:0]
	clear(eng.failed)

	eng.scheduler.Run(eng.now)
	eng.drainInput()

	entities := eng.registry.All()
	live := make([]*entity.Entity, 0, len(entities))
	for _, e := range entities {
		if !e.Spawned() {
			continue
		}
		err := system.Guard(func() error {
			e.ProcessEffects(eng.now)
			return e.Process(dt, eng)
		})
		if err != nil {
			eng.fail(e, "process", err)
			continue
		}
		live = append(live, e)
	}

	eng.collisions.Update(live)

	for _, e := range live {
		if eng.failed[e] {
			continue
		}
		e.DispatchVector(dt)
	}
}

func (eng *Engine) drainInput() {
	if eng.inputHandler == nil {
		// nothing may be queued without a handler
		eng.input.Drain(func(system.Event) {})
		return
	}
	eng.input.Drain(func(ev system.Event) {
		err := system.Guard(func() error { return eng.inputHandler(ev, eng) })
		if err != nil {
			eng.logger.Error("input handler failed", "event", ev.Type, "error", err)
		}
	})
}

// RenderFrame draws every spawned entity, then its children, onto s.
func (eng *Engine) RenderFrame(s Surface) {
	eng.now = eng.clock.Now()
	for _, e := range eng.registry.All() {
		if !e.Spawned() {
			continue
		}
		eng.render(s, e)
	}
}

func (eng *Engine) render(s Surface, e *entity.Entity) {
	p := e.Animation()
	if p == nil {
		return
	}
	frame, ok := p.Next(eng.now)
	if !ok {
		return
	}

	err := system.Guard(func() error {
		e.RenderEffects(eng.now, &frame)
		return nil
	})
	if err != nil {
		eng.fail(e, "render", err)
		return
	}

	if tex := p.Def().Texture; tex != "" {
		dst := animation.Rect{
			X:      e.X + frame.Offset.X,
			Y:      e.Y + frame.Offset.Y,
			Width:  frame.DrawWidth(e.Width),
			Height: frame.DrawHeight(e.Height),
		}
		s.DrawImage(tex, frame.Source, dst)
	}

	if eng.cfg.DebugHitboxes {
		pos := e.Position()
		for _, hb := range frame.Hitboxes {
			s.DrawRect(hb.World(pos), eng.cfg.HitboxColor)
		}
	}

	for _, child := range e.Children() {
		eng.render(s, child)
	}
}

func (eng *Engine) fail(e *entity.Entity, phase string, err error) {
	eng.failed[e] = true
	eng.logger.Error("entity failed", "entity", e.ID, "kind", e.Kind, "phase", phase, "error", err)
	if len(eng.errs) < eng.cfg.MaxErrors {
		eng.errs = append(eng.errs, EntityError{ID: e.ID, Kind: e.Kind, Phase: phase, Err: err})
	}
}
