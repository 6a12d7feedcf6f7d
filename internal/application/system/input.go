package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EventType classifies an input event.
type EventType int

const (
	KeyDown EventType = iota
	KeyUp
	MouseDown
	MouseUp
)

// String returns the string representation of the event type
func (t EventType) String() string {
	switch t {
	case KeyDown:
		return "keydown"
	case KeyUp:
		return "keyup"
	case MouseDown:
		return "mousedown"
	case MouseUp:
		return "mouseup"
	default:
		return "unknown"
	}
}

// Event is one raw input event.
type Event struct {
	Type   EventType
	Key    ebiten.Key
	Button ebiten.MouseButton
	X, Y   int // cursor position in screen pixels
}

// Queue is a FIFO of pending items drained once per frame.
type Queue[T any] struct {
	items []T
}

// Add appends an item.
func (q *Queue[T]) Add(item T) {
	q.items = append(q.items, item)
}

// Peek returns the oldest item without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	return q.items[0], true
}

// Remove pops the oldest item.
func (q *Queue[T]) Remove() (T, bool) {
	item, ok := q.Peek()
	if !ok {
		return item, false
	}
	var zero T
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Empty reports whether the queue is empty.
func (q *Queue[T]) Empty() bool {
	return len(q.items) == 0
}

// Drain hands every queued item to fn in arrival order until the queue is
// empty, including items fn itself adds.
func (q *Queue[T]) Drain(fn func(T)) int {
	n := 0
	for {
		item, ok := q.Remove()
		if !ok {
			return n
		}
		fn(item)
		n++
	}
}

// InputSystem turns ebiten's per-frame input state into queued events.
type InputSystem struct {
	watched []ebiten.MouseButton
	keys    []ebiten.Key
}

// NewInputSystem creates a new input system reporting the left and right
// mouse buttons and every keyboard key.
func NewInputSystem() *InputSystem {
	return &InputSystem{
		watched: []ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonRight},
	}
}

// Poll appends this frame's key and mouse transitions to q. Must be called
// from the ebiten update goroutine.
func (s *InputSystem) Poll(q *Queue[Event]) int {
	x, y := ebiten.CursorPosition()

	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	pressed := append([]ebiten.Key(nil), s.keys...)
	s.keys = inpututil.AppendJustReleasedKeys(s.keys[:0])
	released := s.keys

	var down, up []ebiten.MouseButton
	for _, b := range s.watched {
		if inpututil.IsMouseButtonJustPressed(b) {
			down = append(down, b)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			up = append(up, b)
		}
	}

	events := translate(pressed, released, down, up, x, y)
	for _, ev := range events {
		q.Add(ev)
	}
	return len(events)
}

// translate builds events in a fixed order: key presses, key releases,
// mouse presses, mouse releases.
func translate(pressed, released []ebiten.Key, down, up []ebiten.MouseButton, x, y int) []Event {
	events := make([]Event, 0, len(pressed)+len(released)+len(down)+len(up))
	for _, k := range pressed {
		events = append(events, Event{Type: KeyDown, Key: k, X: x, Y: y})
	}
	for _, k := range released {
		events = append(events, Event{Type: KeyUp, Key: k, X: x, Y: y})
	}
	for _, b := range down {
		events = append(events, Event{Type: MouseDown, Button: b, X: x, Y: y})
	}
	for _, b := range up {
		events = append(events, Event{Type: MouseUp, Button: b, X: x, Y: y})
	}
	return events
}
