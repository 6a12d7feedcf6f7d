package entity

// EntityID is a unique identifier for an entity. Zero means the entity has
// not been registered with an engine yet.
type EntityID uint64

// Kind names an entity type, e.g. "player" or "platform".
type Kind string

// Vector indices. Velocity is four independent non-negative magnitudes so
// that concurrent effects can write opposing forces without clobbering
// each other.
const (
	Up    = 0
	Right = 1
	Down  = 2
	Left  = 3
)

// Vector holds velocity magnitudes in pixels per second, indexed by
// Up, Right, Down and Left.
type Vector [4]float64

// Delta returns the displacement over dt seconds. Right and Up are
// positive.
func (v Vector) Delta(dt float64) (dx, dy float64) {
	dx = dt * (v[Right] - v[Left])
	dy = dt * (v[Up] - v[Down])
	return dx, dy
}

// Clear zeroes every magnitude.
func (v *Vector) Clear() {
	*v = Vector{}
}
