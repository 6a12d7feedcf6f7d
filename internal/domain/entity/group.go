package entity

import (
	"fmt"

	"github.com/younwookim/wage/internal/domain/animation"
	"github.com/younwookim/wage/internal/domain/hitbox"
)

// GroupAnimation is the name of the single animation a group registers.
const GroupAnimation = "none"

// Factory builds a fresh entity instance.
type Factory func() (*Entity, error)

// Group lays out CountX by CountY member entities as one collidable block.
// Members are distinct instances positioned relative to the group origin.
type Group struct {
	Members      [][]*Entity // [y][x]
	CountX       int
	CountY       int
	MemberWidth  float64
	MemberHeight float64
}

// NewGroup builds a group entity of countX by countY members created by
// factory.
func NewGroup(kind Kind, factory Factory, countX, countY int) (*Entity, *Group, error) {
	if countX <= 0 || countY <= 0 {
		return nil, nil, fmt.Errorf("%w: got %dx%d", ErrInvalidGroup, countX, countY)
	}

	g := &Group{
		Members: make([][]*Entity, countY),
		CountX:  countX,
		CountY:  countY,
	}
	for y := 0; y < countY; y++ {
		g.Members[y] = make([]*Entity, countX)
		for x := 0; x < countX; x++ {
			m, err := factory()
			if err != nil {
				return nil, nil, fmt.Errorf("failed to build group member %d,%d: %w", x, y, err)
			}
			g.Members[y][x] = m
		}
	}
	g.MemberWidth = g.Members[0][0].Width
	g.MemberHeight = g.Members[0][0].Height

	e, err := New(kind, g)
	if err != nil {
		return nil, nil, err
	}
	return e, g, nil
}

// Init sizes the group and registers one frame whose hitbox covers the
// whole block.
func (g *Group) Init(e *Entity) error {
	e.SetWidth(g.MemberWidth * float64(g.CountX))
	e.SetHeight(g.MemberHeight * float64(g.CountY))

	def := animation.NewDef("")
	def.AddFrame(animation.Frame{
		DelayMs:  1000,
		Hitboxes: []hitbox.Hitbox{hitbox.New(e.Width, e.Height, 0, 0)},
	})
	e.RegisterAnimation(GroupAnimation, def)
	return nil
}

// OnSpawn places every member at its grid cell.
func (g *Group) OnSpawn(e *Entity) error {
	g.layout(e)
	for _, row := range g.Members {
		for _, m := range row {
			if err := m.Spawn(m.X, m.Y); err != nil {
				return err
			}
		}
	}
	return nil
}

// Process keeps members attached to the group and runs their updates.
func (g *Group) Process(e *Entity, dt float64, env Env) error {
	g.layout(e)
	for _, row := range g.Members {
		for _, m := range row {
			if err := m.Process(dt, env); err != nil {
				return err
			}
		}
	}
	return nil
}

// ResolveCollision delegates to the first member's behavior, applied to the
// group entity.
func (g *Group) ResolveCollision(e *Entity, c Collision) error {
	return g.Members[0][0].Behavior().ResolveCollision(e, c)
}

// Children returns the members row by row.
func (g *Group) Children() []*Entity {
	out := make([]*Entity, 0, g.CountX*g.CountY)
	for _, row := range g.Members {
		out = append(out, row...)
	}
	return out
}

func (g *Group) layout(e *Entity) {
	for y, row := range g.Members {
		for x, m := range row {
			m.X = e.X + float64(x)*g.MemberWidth
			m.Y = e.Y + float64(y)*g.MemberHeight
		}
	}
}
