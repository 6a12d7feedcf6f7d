// Package hitbox implements axis-aligned collision regions, the overlap
// test and contact side classification.
//
// Coordinates follow the engine's velocity convention: Up and Top name the
// +Y direction, Right names the +X direction.
package hitbox

// Side is the edge of a box that is in contact.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

// Sides lists every side in tie-break order.
var Sides = [4]Side{Top, Right, Bottom, Left}

// String returns the string representation of the side
func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Opposite returns the complementary side.
func (s Side) Opposite() Side {
	return (s + 2) % 4
}

// Hitbox is a rectangle relative to its owner's origin.
type Hitbox struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

// New creates a hitbox with the given size and offset.
func New(width, height, offsetX, offsetY float64) Hitbox {
	return Hitbox{Width: width, Height: height, OffsetX: offsetX, OffsetY: offsetY}
}

// Point is an owner origin in world coordinates.
type Point struct {
	X, Y float64
}

// Rect is a hitbox placed in the world.
type Rect struct {
	X1, Y1 float64 // minimum corner
	X2, Y2 float64 // maximum corner
}

// World places the hitbox at its owner's position.
func (h Hitbox) World(owner Point) Rect {
	x := owner.X + h.OffsetX
	y := owner.Y + h.OffsetY
	return Rect{X1: x, Y1: y, X2: x + h.Width, Y2: y + h.Height}
}

// Overlaps reports whether two placed boxes intersect. Touching edges do
// not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X1 < o.X2 && r.X2 > o.X1 && r.Y1 < o.Y2 && r.Y2 > o.Y1
}

// Overlaps tests box a owned at posA against box b owned at posB.
func Overlaps(a Hitbox, posA Point, b Hitbox, posB Point) bool {
	return a.World(posA).Overlaps(b.World(posB))
}

// Penetrations holds, per side of the first participant, how far that
// edge reaches into the other box. Indexed by Side.
type Penetrations [4]float64

// MinX returns the shallower horizontal penetration.
func (p Penetrations) MinX() float64 {
	return min(p[Right], p[Left])
}

// MinY returns the shallower vertical penetration.
func (p Penetrations) MinY() float64 {
	return min(p[Top], p[Bottom])
}

// Mirror returns the penetrations as seen from the other participant.
func (p Penetrations) Mirror() Penetrations {
	return Penetrations{p[Bottom], p[Left], p[Top], p[Right]}
}

// Contact is the classification of one overlapping pair.
type Contact struct {
	FromA        Side // contact edge of the first box
	FromB        Side // contact edge of the second box
	Penetrations Penetrations
}

// Classify measures the four penetration depths of box a into box b and
// picks the shallowest as the contact side. Ties resolve in Sides order.
func Classify(a Hitbox, posA Point, b Hitbox, posB Point) Contact {
	ra := a.World(posA)
	rb := b.World(posB)

	p := Penetrations{
		Top:    ra.Y2 - rb.Y1,
		Right:  ra.X2 - rb.X1,
		Bottom: rb.Y2 - ra.Y1,
		Left:   rb.X2 - ra.X1,
	}

	side := Top
	for _, s := range Sides[1:] {
		if p[s] < p[side] {
			side = s
		}
	}

	return Contact{
		FromA:        side,
		FromB:        side.Opposite(),
		Penetrations: p,
	}
}

// Flip returns the contact as seen from the second participant.
func (c Contact) Flip() Contact {
	return Contact{
		FromA:        c.FromB,
		FromB:        c.FromA,
		Penetrations: c.Penetrations.Mirror(),
	}
}
