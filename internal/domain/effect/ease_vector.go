package effect

import (
	"fmt"

	"github.com/younwookim/wage/internal/domain/curve"
	"github.com/younwookim/wage/internal/domain/entity"
)

// KindEaseVector is the kind of effects built by NewEaseVector.
const KindEaseVector = "ease-vector"

// EaseVector moves one velocity magnitude from its value at the first
// dispatch to To over the effect's duration.
type EaseVector struct {
	Index int
	To    float64
	Curve curve.Func

	target *entity.Entity
	from   float64
	diff   float64
}

// NewEaseVector creates a process-phase effect easing e.Vector[index] to
// `to`. A nil curve defaults to InOutCubic.
func NewEaseVector(index int, to float64, durationMs int64, fn curve.Func, onDone func(*Effect)) (*Effect, error) {
	if durationMs <= 0 {
		return nil, fmt.Errorf("%w: ease vector got %d", ErrNoDuration, durationMs)
	}
	if index < 0 || index >= len(entity.Vector{}) {
		return nil, fmt.Errorf("ease vector index %d out of range", index)
	}
	if fn == nil {
		fn = curve.InOutCubic
	}
	return New(KindEaseVector, durationMs, &EaseVector{Index: index, To: to, Curve: fn}, onDone)
}

func (ev *EaseVector) OnRender() bool  { return false }
func (ev *EaseVector) OnProcess() bool { return true }

// Dispatch sets the magnitude to from + diff*curve(progress).
func (ev *EaseVector) Dispatch(e *entity.Entity, _ entity.FrameContext, t Timing) {
	if ev.target == nil {
		ev.target = e
		ev.from = e.Vector[ev.Index]
		ev.diff = ev.To - ev.from
	}
	e.Vector[ev.Index] = ev.from + ev.diff*ev.Curve(t.Progress())
}

// Reset leaves the magnitude where it is; Finish snaps it to the target.
func (ev *EaseVector) Reset(*entity.Entity, entity.FrameContext) {}

// Finish snaps the magnitude to To.
func (ev *EaseVector) Finish() {
	if ev.target != nil {
		ev.target.Vector[ev.Index] = ev.To
	}
}
