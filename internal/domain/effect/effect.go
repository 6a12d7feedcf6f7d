// Package effect implements timed per-entity modifiers.
//
// An Effect wraps a Behavior with a two-phase lifecycle. While active it
// dispatches the behavior on every tick. Once its duration is reached it
// resets the behavior's modification, becomes terminal and fires its
// completion callback. Delete makes it terminal without the reset.
package effect

import (
	"errors"
	"fmt"

	"github.com/younwookim/wage/internal/domain/entity"
)

var (
	// ErrNilBehavior is returned when creating an effect without behavior.
	ErrNilBehavior = errors.New("effect: behavior is required")
	// ErrNegativeDuration is returned for durations below zero.
	ErrNegativeDuration = errors.New("effect: duration must not be negative")
	// ErrNoDuration is returned by effects that need a finite duration.
	ErrNoDuration = errors.New("effect: duration must be positive")
)

// Indefinite is the duration of effects that run until deleted.
const Indefinite = 0

// Timing is the effect's time window, relative to its first tick.
type Timing struct {
	Elapsed  int64 // ms since first tick
	Start    int64
	End      int64
	Span     int64
	Duration int64
}

// Progress returns Elapsed/Duration clamped to [0,1]. Indefinite effects
// report 0.
func (t Timing) Progress() float64 {
	if t.Span <= 0 {
		return 0
	}
	p := 1 - float64(t.Span-(t.Elapsed-t.Start))/float64(t.Span)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Behavior is the effect-specific logic.
type Behavior interface {
	// OnRender reports whether the effect ticks during the render phase.
	OnRender() bool
	// OnProcess reports whether the effect ticks during the process phase.
	OnProcess() bool
	// Dispatch applies the effect for one tick. Called every tick while
	// active, so it must be safe to repeat.
	Dispatch(e *entity.Entity, fc entity.FrameContext, t Timing)
	// Reset undoes whatever Dispatch changed on the entity.
	Reset(e *entity.Entity, fc entity.FrameContext)
}

// Finisher is implemented by behavior that needs a final hook whenever the
// effect becomes terminal, by expiry or by Delete.
type Finisher interface {
	Finish()
}

// Effect is a running instance of a Behavior.
type Effect struct {
	kind     string
	duration int64
	behavior Behavior
	onDone   func(*Effect)

	removed   bool
	started   bool
	startedAt int64
	timed     bool
	timing    Timing
}

// New creates an effect of the given kind lasting durationMs milliseconds
// (Indefinite for no limit). onDone may be nil.
func New(kind string, durationMs int64, b Behavior, onDone func(*Effect)) (*Effect, error) {
	if b == nil {
		return nil, fmt.Errorf("%w: kind %q", ErrNilBehavior, kind)
	}
	if durationMs < 0 {
		return nil, fmt.Errorf("%w: kind %q got %d", ErrNegativeDuration, kind, durationMs)
	}
	return &Effect{
		kind:     kind,
		duration: durationMs,
		behavior: b,
		onDone:   onDone,
	}, nil
}

// Kind returns the effect's type id.
func (ef *Effect) Kind() string {
	return ef.kind
}

// Behavior returns the wrapped behavior.
func (ef *Effect) Behavior() Behavior {
	return ef.behavior
}

// Duration returns the configured duration in ms.
func (ef *Effect) Duration() int64 {
	return ef.duration
}

// OnRender reports whether the effect ticks during rendering.
func (ef *Effect) OnRender() bool {
	return ef.behavior.OnRender()
}

// OnProcess reports whether the effect ticks during processing.
func (ef *Effect) OnProcess() bool {
	return ef.behavior.OnProcess()
}

// Removed reports whether the effect is terminal.
func (ef *Effect) Removed() bool {
	return ef.removed
}

// Started reports whether the effect has been ticked at least once.
func (ef *Effect) Started() bool {
	return ef.started
}

// Timing returns the timing as of the last tick.
func (ef *Effect) Timing() Timing {
	return ef.timing
}

// Tick runs one step of the effect. The first tick starts the timer.
func (ef *Effect) Tick(e *entity.Entity, fc entity.FrameContext) {
	if ef.removed {
		return
	}
	if !ef.started {
		ef.started = true
		ef.startedAt = fc.Now
	}
	ef.timing.Elapsed = fc.Now - ef.startedAt

	if ef.duration > 0 {
		if !ef.timed {
			ef.timed = true
			ef.timing.Start = ef.timing.Elapsed
			ef.timing.End = ef.timing.Elapsed + ef.duration
			ef.timing.Duration = ef.duration
			ef.timing.Span = ef.timing.End - ef.timing.Start
		}
		if ef.timing.Elapsed >= ef.duration {
			ef.behavior.Reset(e, fc)
			ef.finish()
			return
		}
	}

	ef.behavior.Dispatch(e, fc, ef.timing)
}

// Delete makes the effect terminal without resetting it. The completion
// callback still fires. Deleting a terminal effect does nothing.
func (ef *Effect) Delete() {
	if ef.removed {
		return
	}
	ef.finish()
}

func (ef *Effect) finish() {
	ef.removed = true
	if f, ok := ef.behavior.(Finisher); ok {
		f.Finish()
	}
	if ef.onDone != nil {
		ef.onDone(ef)
	}
}
