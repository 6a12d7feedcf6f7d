package effect

import "github.com/younwookim/wage/internal/domain/entity"

// KindGravity is the kind of effects built by NewGravity.
const KindGravity = "gravity"

// Gravity pulls an entity along its Down magnitude with constant strength.
type Gravity struct {
	Strength float64

	prev     float64
	captured bool
}

// NewGravity creates a process-phase gravity effect. durationMs may be
// Indefinite.
func NewGravity(strength float64, durationMs int64, onDone func(*Effect)) (*Effect, error) {
	return New(KindGravity, durationMs, &Gravity{Strength: strength}, onDone)
}

func (g *Gravity) OnRender() bool  { return false }
func (g *Gravity) OnProcess() bool { return true }

// Dispatch writes Strength to the Down magnitude.
func (g *Gravity) Dispatch(e *entity.Entity, _ entity.FrameContext, _ Timing) {
	if !g.captured {
		g.captured = true
		g.prev = e.Vector[entity.Down]
	}
	e.Vector[entity.Down] = g.Strength
}

// Reset restores the Down magnitude seen before the first dispatch.
func (g *Gravity) Reset(e *entity.Entity, _ entity.FrameContext) {
	if g.captured {
		e.Vector[entity.Down] = g.prev
	}
}
