package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/wage/internal/domain/entity"
	"github.com/younwookim/wage/internal/domain/hitbox"
)

func TestSolidFromTop(t *testing.T) {
	tests := []struct {
		name   string
		side   hitbox.Side
		down   float64
		minY   float64
		wantDY float64
	}{
		{"falling onto top", hitbox.Top, 50, 3, 3},
		{"not moving down", hitbox.Top, 0, 3, 0},
		{"beyond threshold", hitbox.Top, 50, 12, 0},
		{"wrong side", hitbox.Left, 50, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, _ := newBox(t, "player", 10, 0, 100)
			other.Vector[entity.Down] = tt.down
			c := entity.Collision{
				Other:        other,
				Side:         tt.side,
				Penetrations: hitbox.Penetrations{tt.minY, 20, 20, 20},
			}
			SolidFromTop(c, DefaultThreshold)
			assert.Equal(t, 100+tt.wantDY, other.Y)
			assert.Equal(t, 0.0, other.X)
		})
	}
}

func TestSolidFromSides(t *testing.T) {
	p := hitbox.Penetrations{4, 2, 5, 6} // minX=2, minY=4

	tests := []struct {
		name     string
		resolver Resolver
		side     hitbox.Side
		moving   int
		wantX    float64
		wantY    float64
	}{
		{"bottom", SolidFromBottom, hitbox.Bottom, entity.Up, 0, -4},
		{"right", SolidFromRight, hitbox.Right, entity.Left, 2, 0},
		{"left", SolidFromLeft, hitbox.Left, entity.Right, -2, 0},
		{"horizontal right", SolidFromHorizontal, hitbox.Right, entity.Left, 2, 0},
		{"horizontal ignores top", SolidFromHorizontal, hitbox.Top, entity.Down, 0, 0},
		{"vertical top", SolidFromVertical, hitbox.Top, entity.Down, 0, 4},
		{"vertical ignores left", SolidFromVertical, hitbox.Left, entity.Right, 0, 0},
		{"all left", SolidFromAll, hitbox.Left, entity.Right, -2, 0},
		{"all bottom", SolidFromAll, hitbox.Bottom, entity.Up, 0, -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other, _ := newBox(t, "player", 10, 0, 0)
			other.Vector[tt.moving] = 30
			tt.resolver(entity.Collision{Other: other, Side: tt.side, Penetrations: p}, DefaultThreshold)
			assert.Equal(t, tt.wantX, other.X)
			assert.Equal(t, tt.wantY, other.Y)
		})
	}
}

func TestResolverByName(t *testing.T) {
	for _, name := range []string{"top", "bottom", "right", "left", "horizontal", "vertical", "all"} {
		r, ok := ResolverByName(name)
		assert.True(t, ok, name)
		assert.NotNil(t, r, name)
	}
	_, ok := ResolverByName("diagonal")
	assert.False(t, ok)
}

// A player falling onto a floor ends up resting on it after the pass.
func TestSolidFromTop_ThroughCollisionPass(t *testing.T) {
	floor, fb := newBox(t, "floor", 10, 0, 0)
	fb.resolver = SolidFromTop
	player, _ := newBox(t, "player", 10, 0, 8)
	player.Vector[entity.Down] = 100

	n := NewCollisionSystem(nil).Update([]*entity.Entity{floor, player})
	assert.Equal(t, 1, n)
	assert.Equal(t, 10.0, player.Y)
	assert.Equal(t, 0.0, floor.Y)
}
