package engine

import (
	"errors"
	"image/color"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/wage/internal/domain/animation"
	"github.com/younwookim/wage/internal/domain/clock"
	"github.com/younwookim/wage/internal/domain/entity"
	"github.com/younwookim/wage/internal/domain/hitbox"
)

var errProcess = errors.New("process failed")

// drawCall is one recorded surface call.
type drawCall struct {
	texture string
	src     animation.Rect
	dst     animation.Rect
	rect    hitbox.Rect
	isRect  bool
}

// recordingSurface records draw calls instead of drawing.
type recordingSurface struct {
	calls []drawCall
}

func (s *recordingSurface) DrawImage(texture string, src, dst animation.Rect) {
	s.calls = append(s.calls, drawCall{texture: texture, src: src, dst: dst})
}

func (s *recordingSurface) DrawRect(r hitbox.Rect, _ color.Color) {
	s.calls = append(s.calls, drawCall{rect: r, isRect: true})
}

func (s *recordingSurface) images() []drawCall {
	var out []drawCall
	for _, c := range s.calls {
		if !c.isRect {
			out = append(out, c)
		}
	}
	return out
}

func (s *recordingSurface) rects() []hitbox.Rect {
	var out []hitbox.Rect
	for _, c := range s.calls {
		if c.isRect {
			out = append(out, c.rect)
		}
	}
	return out
}

// testBehavior is a configurable square entity.
type testBehavior struct {
	name     string
	size     float64
	frame    animation.Frame
	trace    *[]string
	fail     error
	panics   bool
	resolve  func(e *entity.Entity, c entity.Collision)
	envSeen  entity.Env
	dtSeen   float64
	collided int
}

func (b *testBehavior) Init(e *entity.Entity) error {
	e.SetWidth(b.size)
	e.SetHeight(b.size)
	f := b.frame
	if f.DelayMs == 0 {
		f.DelayMs = 100
	}
	if f.Hitboxes == nil {
		f.Hitboxes = []hitbox.Hitbox{hitbox.New(b.size, b.size, 0, 0)}
	}
	e.RegisterAnimation("idle", animation.NewDef(b.name).AddFrame(f))
	return nil
}

func (b *testBehavior) Process(e *entity.Entity, dt float64, env entity.Env) error {
	if b.trace != nil {
		*b.trace = append(*b.trace, "process:"+b.name)
	}
	b.envSeen = env
	b.dtSeen = dt
	if b.panics {
		panic("process exploded")
	}
	return b.fail
}

func (b *testBehavior) ResolveCollision(e *entity.Entity, c entity.Collision) error {
	b.collided++
	if b.trace != nil {
		*b.trace = append(*b.trace, "collide:"+b.name)
	}
	if b.resolve != nil {
		b.resolve(e, c)
	}
	return nil
}

// traceEffect records its ticks into a shared trace.
type traceEffect struct {
	name    string
	trace   *[]string
	removed bool
}

func (f *traceEffect) Kind() string    { return "trace" }
func (f *traceEffect) OnRender() bool  { return false }
func (f *traceEffect) OnProcess() bool { return true }
func (f *traceEffect) Tick(*entity.Entity, entity.FrameContext) {
	*f.trace = append(*f.trace, "effect:"+f.name)
}
func (f *traceEffect) Delete()       { f.removed = true }
func (f *traceEffect) Removed() bool { return f.removed }

func newTestEngine(t *testing.T) (*Engine, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(1000)
	logger := log.New(io.Discard)
	return New(DefaultConfig(), clk, logger), clk
}

func spawnBox(t *testing.T, eng *Engine, b *testBehavior, x, y float64) *entity.Entity {
	t.Helper()
	if b.size == 0 {
		b.size = 10
	}
	e, err := entity.New(entity.Kind(b.name), b)
	require.NoError(t, err)
	require.NoError(t, e.Spawn(x, y))
	require.True(t, eng.AddEntity(e))
	return e
}
