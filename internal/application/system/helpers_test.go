package system

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/younwookim/wage/internal/domain/animation"
	"github.com/younwookim/wage/internal/domain/entity"
	"github.com/younwookim/wage/internal/domain/hitbox"
)

// boxBehavior is a square entity with one full-size hitbox per box.
type boxBehavior struct {
	size     float64
	boxes    []hitbox.Hitbox
	resolver Resolver
	fail     error
	panics   bool

	got []entity.Collision
}

func (b *boxBehavior) Init(e *entity.Entity) error {
	e.SetWidth(b.size)
	e.SetHeight(b.size)
	boxes := b.boxes
	if boxes == nil {
		boxes = []hitbox.Hitbox{hitbox.New(b.size, b.size, 0, 0)}
	}
	def := animation.NewDef("box").AddFrame(animation.Frame{DelayMs: 100, Hitboxes: boxes})
	e.RegisterAnimation("idle", def)
	return nil
}

func (b *boxBehavior) Process(*entity.Entity, float64, entity.Env) error { return nil }

func (b *boxBehavior) ResolveCollision(e *entity.Entity, c entity.Collision) error {
	if b.panics {
		panic("resolver exploded")
	}
	b.got = append(b.got, c)
	if b.resolver != nil {
		b.resolver(c, DefaultThreshold)
	}
	return b.fail
}

var errResolve = errors.New("resolve failed")

func newBox(t testing.TB, kind entity.Kind, size, x, y float64) (*entity.Entity, *boxBehavior) {
	t.Helper()
	b := &boxBehavior{size: size}
	e, err := entity.New(kind, b)
	require.NoError(t, err)
	require.NoError(t, e.Spawn(x, y))
	return e, b
}
