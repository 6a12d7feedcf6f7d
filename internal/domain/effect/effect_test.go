package effect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/wage/internal/domain/animation"
	"github.com/younwookim/wage/internal/domain/entity"
)

type stubBehavior struct{}

func (stubBehavior) Init(e *entity.Entity) error {
	e.SetWidth(10)
	e.SetHeight(10)
	e.RegisterAnimation("idle", animation.NewDef("t").AddFrame(animation.Frame{DelayMs: 100}))
	return nil
}
func (stubBehavior) Process(*entity.Entity, float64, entity.Env) error       { return nil }
func (stubBehavior) ResolveCollision(*entity.Entity, entity.Collision) error { return nil }

func newEntity(t *testing.T) *entity.Entity {
	t.Helper()
	e, err := entity.New("stub", stubBehavior{})
	require.NoError(t, err)
	return e
}

// recorder counts lifecycle calls.
type recorder struct {
	render   bool
	dispatch []int64
	resets   int
	finishes int
}

func (r *recorder) OnRender() bool  { return r.render }
func (r *recorder) OnProcess() bool { return !r.render }
func (r *recorder) Dispatch(_ *entity.Entity, _ entity.FrameContext, t Timing) {
	r.dispatch = append(r.dispatch, t.Elapsed)
}
func (r *recorder) Reset(*entity.Entity, entity.FrameContext) { r.resets++ }
func (r *recorder) Finish()                                   { r.finishes++ }

func TestNew_Validation(t *testing.T) {
	_, err := New("x", 0, nil, nil)
	assert.ErrorIs(t, err, ErrNilBehavior)

	_, err = New("x", -1, &recorder{}, nil)
	assert.ErrorIs(t, err, ErrNegativeDuration)

	ef, err := New("x", 0, &recorder{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "x", ef.Kind())
	assert.False(t, ef.Started())
	assert.False(t, ef.Removed())
}

func TestEffect_ExpiresAfterDuration(t *testing.T) {
	e := newEntity(t)
	rec := &recorder{}
	done := 0
	ef, err := New("timed", 500, rec, func(*Effect) { done++ })
	require.NoError(t, err)

	// first tick starts the timer at 1000
	ef.Tick(e, entity.FrameContext{Now: 1000})
	for _, elapsed := range []int64{100, 300, 600} {
		ef.Tick(e, entity.FrameContext{Now: 1000 + elapsed})
	}

	assert.Equal(t, []int64{0, 100, 300}, rec.dispatch)
	assert.Equal(t, 1, rec.resets)
	assert.Equal(t, 1, rec.finishes)
	assert.Equal(t, 1, done)
	assert.True(t, ef.Removed())

	// ticks after expiry are ignored
	ef.Tick(e, entity.FrameContext{Now: 5000})
	assert.Len(t, rec.dispatch, 3)
	assert.Equal(t, 1, rec.resets)
	assert.Equal(t, 1, done)
}

func TestEffect_Indefinite(t *testing.T) {
	e := newEntity(t)
	rec := &recorder{}
	ef, err := New("forever", Indefinite, rec, nil)
	require.NoError(t, err)

	for now := int64(0); now < 100000; now += 10000 {
		ef.Tick(e, entity.FrameContext{Now: now})
	}
	assert.Len(t, rec.dispatch, 10)
	assert.False(t, ef.Removed())
	assert.Equal(t, 0, rec.resets)
}

func TestEffect_DeleteSkipsReset(t *testing.T) {
	e := newEntity(t)
	rec := &recorder{}
	done := 0
	ef, err := New("timed", 500, rec, func(*Effect) { done++ })
	require.NoError(t, err)

	ef.Tick(e, entity.FrameContext{Now: 0})
	ef.Delete()
	ef.Delete()

	assert.True(t, ef.Removed())
	assert.Equal(t, 0, rec.resets)
	assert.Equal(t, 1, rec.finishes)
	assert.Equal(t, 1, done)

	ef.Tick(e, entity.FrameContext{Now: 100})
	assert.Len(t, rec.dispatch, 1)
}

func TestEffect_DeleteBeforeFirstTick(t *testing.T) {
	e := newEntity(t)
	rec := &recorder{}
	ef, err := New("timed", 500, rec, nil)
	require.NoError(t, err)

	ef.Delete()
	ef.Tick(e, entity.FrameContext{Now: 0})
	assert.Empty(t, rec.dispatch)
	assert.False(t, ef.Started())
}

func TestTiming_Progress(t *testing.T) {
	tests := []struct {
		name   string
		timing Timing
		want   float64
	}{
		{"indefinite", Timing{Elapsed: 50}, 0},
		{"start", Timing{Elapsed: 0, End: 100, Span: 100, Duration: 100}, 0},
		{"half", Timing{Elapsed: 50, End: 100, Span: 100, Duration: 100}, 0.5},
		{"clamped", Timing{Elapsed: 150, End: 100, Span: 100, Duration: 100}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.timing.Progress(), 1e-9)
		})
	}
}

func TestEffect_ThroughEntityPhases(t *testing.T) {
	e := newEntity(t)
	proc := &recorder{}
	rend := &recorder{render: true}
	pe, err := New("proc", 0, proc, nil)
	require.NoError(t, err)
	re, err := New("rend", 0, rend, nil)
	require.NoError(t, err)
	e.AddEffect(pe)
	e.AddEffect(re)

	e.ProcessEffects(0)
	assert.Len(t, proc.dispatch, 1)
	assert.Empty(t, rend.dispatch)

	frame := animation.Frame{}
	e.RenderEffects(0, &frame)
	assert.Len(t, proc.dispatch, 1)
	assert.Len(t, rend.dispatch, 1)

	assert.True(t, e.RemoveEffect("proc"))
	assert.False(t, e.HasEffect("proc"))
	assert.True(t, e.HasEffect("rend"))
	e.ProcessEffects(10)
	assert.Len(t, e.Effects(), 1)
}
