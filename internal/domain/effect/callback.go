package effect

import "github.com/younwookim/wage/internal/domain/entity"

// KindCallback is the kind of effects built by NewCallback.
const KindCallback = "callback"

type callback struct{}

// NewCallback creates an effect that does nothing but fire onDone after
// durationMs.
func NewCallback(durationMs int64, onDone func(*Effect)) (*Effect, error) {
	if durationMs <= 0 {
		return nil, ErrNoDuration
	}
	return New(KindCallback, durationMs, callback{}, onDone)
}

func (callback) OnRender() bool                                       { return false }
func (callback) OnProcess() bool                                      { return true }
func (callback) Dispatch(*entity.Entity, entity.FrameContext, Timing) {}
func (callback) Reset(*entity.Entity, entity.FrameContext)            {}
