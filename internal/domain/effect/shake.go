package effect

import (
	"math"

	"github.com/younwookim/wage/internal/domain/entity"
)

// KindShake is the kind of effects built by NewShake.
const KindShake = "shake"

// Shake jitters the drawn frame horizontally. It only touches the frame
// handed to the render phase, so the entity's position is never changed.
type Shake struct {
	Amplitude float64
	PeriodMs  int64
}

// NewShake creates a render-phase effect offsetting the frame by up to
// amplitude pixels, one full swing every periodMs.
func NewShake(amplitude float64, periodMs, durationMs int64, onDone func(*Effect)) (*Effect, error) {
	if periodMs <= 0 {
		periodMs = 100
	}
	return New(KindShake, durationMs, &Shake{Amplitude: amplitude, PeriodMs: periodMs}, onDone)
}

func (s *Shake) OnRender() bool  { return true }
func (s *Shake) OnProcess() bool { return false }

// Dispatch shifts the frame's draw offset.
func (s *Shake) Dispatch(_ *entity.Entity, fc entity.FrameContext, t Timing) {
	if fc.Frame == nil {
		return
	}
	phase := 2 * math.Pi * float64(t.Elapsed%s.PeriodMs) / float64(s.PeriodMs)
	fc.Frame.Offset.X += s.Amplitude * math.Sin(phase)
}

func (s *Shake) Reset(*entity.Entity, entity.FrameContext) {}
