package animation

import "github.com/younwookim/wage/internal/domain/hitbox"

// Rect is a region of a texture in pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Size is an optional draw size override. A zero component falls back to
// the owning entity's size.
type Size struct {
	Width, Height float64
}

// Point is a draw offset relative to the entity origin.
type Point struct {
	X, Y float64
}

// Frame is one visual state of an animation. Frames are immutable once
// added to a Def.
type Frame struct {
	Source   Rect
	DrawSize Size
	Offset   Point
	DelayMs  int64
	Hitboxes []hitbox.Hitbox // zero, one or many collision regions
}

// DrawWidth returns the frame's draw width, or fallback when unset.
func (f Frame) DrawWidth(fallback float64) float64 {
	if f.DrawSize.Width != 0 {
		return f.DrawSize.Width
	}
	return fallback
}

// DrawHeight returns the frame's draw height, or fallback when unset.
func (f Frame) DrawHeight(fallback float64) float64 {
	if f.DrawSize.Height != 0 {
		return f.DrawSize.Height
	}
	return fallback
}

// HasHitbox reports whether the frame defines at least one hitbox.
func (f Frame) HasHitbox() bool {
	return len(f.Hitboxes) > 0
}

func (f Frame) clone() Frame {
	if f.Hitboxes != nil {
		boxes := make([]hitbox.Hitbox, len(f.Hitboxes))
		copy(boxes, f.Hitboxes)
		f.Hitboxes = boxes
	}
	return f
}
