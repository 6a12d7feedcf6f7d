package entity

import "github.com/younwookim/wage/internal/domain/animation"

// FrameContext is passed to effects on every tick.
type FrameContext struct {
	Now int64 // absolute ms, same source as animation scheduling
	// Frame is the frame about to be drawn during the render phase and nil
	// during the process phase. Render effects may modify it; the change
	// only affects this draw.
	Frame *animation.Frame
}

// Effect is an active modifier attached to an entity.
type Effect interface {
	Kind() string
	OnRender() bool
	OnProcess() bool
	Tick(e *Entity, fc FrameContext)
	Delete()
	Removed() bool
}

// AddEffect attaches ef immediately.
func (e *Entity) AddEffect(ef Effect) {
	e.effects = append(e.effects, ef)
}

// Effects returns the active effects in attach order.
func (e *Entity) Effects() []Effect {
	out := make([]Effect, len(e.effects))
	copy(out, e.effects)
	return out
}

// HasEffect reports whether an effect of the given kind is active.
func (e *Entity) HasEffect(kind string) bool {
	for _, ef := range e.effects {
		if ef.Kind() == kind && !ef.Removed() {
			return true
		}
	}
	return false
}

// RemoveEffect deletes the first active effect of the given kind. Returns
// false if none was found. The deleted effect is purged at the next
// effect pass.
func (e *Entity) RemoveEffect(kind string) bool {
	for _, ef := range e.effects {
		if ef.Kind() == kind && !ef.Removed() {
			ef.Delete()
			return true
		}
	}
	return false
}

// RemoveAllEffects deletes every active effect of the given kind and
// returns how many were deleted.
func (e *Entity) RemoveAllEffects(kind string) int {
	n := 0
	for _, ef := range e.effects {
		if ef.Kind() == kind && !ef.Removed() {
			ef.Delete()
			n++
		}
	}
	return n
}

// ProcessEffects ticks every process-phase effect.
func (e *Entity) ProcessEffects(now int64) {
	fc := FrameContext{Now: now}
	for _, ef := range e.effects {
		if !ef.Removed() && ef.OnProcess() {
			ef.Tick(e, fc)
		}
	}
	e.cleanupEffects()
}

// RenderEffects ticks every render-phase effect against the frame about to
// be drawn.
func (e *Entity) RenderEffects(now int64, frame *animation.Frame) {
	fc := FrameContext{Now: now, Frame: frame}
	for _, ef := range e.effects {
		if !ef.Removed() && ef.OnRender() {
			ef.Tick(e, fc)
		}
	}
	e.cleanupEffects()
}

// cleanupEffects purges terminal effects.
func (e *Entity) cleanupEffects() {
	kept := e.effects[:0]
	for _, ef := range e.effects {
		if !ef.Removed() {
			kept = append(kept, ef)
		}
	}
	for i := len(kept); i < len(e.effects); i++ {
		e.effects[i] = nil
	}
	e.effects = kept
}
