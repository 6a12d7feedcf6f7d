package system

import (
	"github.com/younwookim/wage/internal/domain/entity"
	"github.com/younwookim/wage/internal/domain/hitbox"
)

// DefaultThreshold is the deepest penetration a solid policy corrects.
// Deeper overlaps are assumed to be pass-through and left alone.
const DefaultThreshold = 10.0

// Resolver is a collision policy applied by a solid entity to the entity
// it collided with.
type Resolver func(c entity.Collision, threshold float64)

// SolidFromTop stops c.Other from falling through the receiver's top edge.
func SolidFromTop(c entity.Collision, threshold float64) {
	other := c.Other
	if c.Side == hitbox.Top && other.Vector[entity.Down] > 0 {
		if y := c.Penetrations.MinY(); y < threshold {
			other.Y += y
		}
	}
}

// SolidFromBottom stops c.Other from rising through the receiver's bottom
// edge.
func SolidFromBottom(c entity.Collision, threshold float64) {
	other := c.Other
	if c.Side == hitbox.Bottom && other.Vector[entity.Up] > 0 {
		if y := c.Penetrations.MinY(); y < threshold {
			other.Y -= y
		}
	}
}

// SolidFromRight stops c.Other from passing the receiver's right edge.
func SolidFromRight(c entity.Collision, threshold float64) {
	other := c.Other
	if c.Side == hitbox.Right && other.Vector[entity.Left] > 0 {
		if x := c.Penetrations.MinX(); x < threshold {
			other.X += x
		}
	}
}

// SolidFromLeft stops c.Other from passing the receiver's left edge.
func SolidFromLeft(c entity.Collision, threshold float64) {
	other := c.Other
	if c.Side == hitbox.Left && other.Vector[entity.Right] > 0 {
		if x := c.Penetrations.MinX(); x < threshold {
			other.X -= x
		}
	}
}

// SolidFromHorizontal combines SolidFromRight and SolidFromLeft.
func SolidFromHorizontal(c entity.Collision, threshold float64) {
	SolidFromRight(c, threshold)
	SolidFromLeft(c, threshold)
}

// SolidFromVertical combines SolidFromTop and SolidFromBottom.
func SolidFromVertical(c entity.Collision, threshold float64) {
	SolidFromTop(c, threshold)
	SolidFromBottom(c, threshold)
}

// SolidFromAll makes the receiver solid from every side.
func SolidFromAll(c entity.Collision, threshold float64) {
	SolidFromRight(c, threshold)
	SolidFromLeft(c, threshold)
	SolidFromTop(c, threshold)
	SolidFromBottom(c, threshold)
}

// ResolverByName maps config names to policies.
func ResolverByName(name string) (Resolver, bool) {
	switch name {
	case "top":
		return SolidFromTop, true
	case "bottom":
		return SolidFromBottom, true
	case "right":
		return SolidFromRight, true
	case "left":
		return SolidFromLeft, true
	case "horizontal":
		return SolidFromHorizontal, true
	case "vertical":
		return SolidFromVertical, true
	case "all":
		return SolidFromAll, true
	}
	return nil, false
}
