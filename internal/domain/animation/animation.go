// Package animation sequences sprite frames over time.
//
// A Def holds the frame list and playback defaults and is meant to be
// shared by every entity of the same visual type. Playback position lives
// in a State owned by exactly one Player, so entities sharing a Def never
// disturb each other's cursor.
package animation

import (
	"errors"
	"fmt"
)

// ErrUnknownMode is returned when parsing an unrecognised mode name.
var ErrUnknownMode = errors.New("animation: unknown mode")

// Infinite is the repeat limit for endlessly looping animations.
const Infinite = -1

// Mode selects how the cursor advances.
type Mode int

const (
	Normal Mode = iota
	Reverse
	Alternate
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Reverse:
		return "reverse"
	case Alternate:
		return "alternate"
	default:
		return "unknown"
	}
}

// ParseMode converts a config name into a Mode. Empty means Normal.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "normal":
		return Normal, nil
	case "reverse":
		return Reverse, nil
	case "alternate":
		return Alternate, nil
	}
	return Normal, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Def is the shared, read-mostly part of an animation.
type Def struct {
	Texture string // asset key resolved by the renderer
	Mode    Mode   // default mode for new players
	Repeat  int    // default repeat limit for new players

	frames   []Frame
	revision int
}

// NewDef creates an empty, endlessly looping Normal animation over texture.
func NewDef(texture string) *Def {
	return &Def{
		Texture: texture,
		Mode:    Normal,
		Repeat:  Infinite,
	}
}

// AddFrame appends a frame. Every player of this Def restarts from the
// beginning on its next Next call.
func (d *Def) AddFrame(f Frame) *Def {
	d.frames = append(d.frames, f.clone())
	d.revision++
	return d
}

// Len returns the number of frames.
func (d *Def) Len() int {
	return len(d.frames)
}

// Frame returns the frame at index i.
func (d *Def) Frame(i int) (Frame, bool) {
	if i < 0 || i >= len(d.frames) {
		return Frame{}, false
	}
	return d.frames[i], true
}

// NewPlayer creates an independent player over d using d's defaults.
func (d *Def) NewPlayer() *Player {
	p := &Player{def: d}
	p.state.Mode = d.Mode
	p.state.RepeatLimit = d.Repeat
	Reset(d, &p.state)
	return p
}

// State is the per-player playback state.
type State struct {
	Mode        Mode
	RepeatLimit int

	Cursor    int   // index of the next frame to show
	Shown     int   // index of the frame most recently returned
	Loops     int   // completed passes
	Done      bool  // repeat limit reached; playback frozen
	NextDueAt int64 // absolute ms at which the next frame is due

	backward bool // Alternate direction
	revision int
}

// Reset rewinds st to the mode's start position.
func Reset(def *Def, st *State) {
	start := 0
	if st.Mode == Reverse && def.Len() > 0 {
		start = def.Len() - 1
	}
	st.Cursor = start
	st.Shown = start
	st.Done = false
	st.Loops = 0
	st.NextDueAt = 0
	st.backward = false
	st.revision = def.revision
}

// Next returns the frame to display at time now, advancing st when the
// current frame's delay has elapsed. It reports false when def has no
// frames.
func Next(def *Def, st *State, now int64) (Frame, bool) {
	n := def.Len()
	if n == 0 {
		return Frame{}, false
	}
	if st.revision != def.revision {
		Reset(def, st)
	}

	if st.Done || now < st.NextDueAt {
		return def.frames[st.Shown], true
	}

	if st.RepeatLimit != Infinite && st.Loops >= st.RepeatLimit {
		st.Done = true
		return def.frames[st.Shown], true
	}

	frame := def.frames[st.Cursor]
	st.Shown = st.Cursor
	st.NextDueAt = now + frame.DelayMs
	advance(st, n)
	return frame, true
}

// advance moves the cursor one step according to the mode.
func advance(st *State, n int) {
	switch st.Mode {
	case Reverse:
		if st.Cursor == 0 {
			st.Loops++
		}
		st.Cursor += n - 1
	case Alternate:
		if n == 1 {
			st.Loops++
			break
		}
		if st.backward {
			st.Cursor--
			if st.Cursor == 0 {
				st.backward = false
			}
		} else {
			st.Cursor++
			if st.Cursor == n-1 {
				st.backward = true
			}
		}
		if st.Cursor == 0 {
			st.Loops++
		}
	default:
		st.Cursor++
		if st.Cursor == n {
			st.Loops++
		}
	}
	st.Cursor %= n
}

// Player drives one entity's playback of a shared Def.
type Player struct {
	def   *Def
	state State
}

// Def returns the shared definition.
func (p *Player) Def() *Def {
	return p.def
}

// Next advances playback to now and returns the frame to display.
func (p *Player) Next(now int64) (Frame, bool) {
	return Next(p.def, &p.state, now)
}

// Current returns the most recently shown frame without advancing.
func (p *Player) Current() (Frame, bool) {
	if p.def.Len() == 0 {
		return Frame{}, false
	}
	if p.state.revision != p.def.revision {
		Reset(p.def, &p.state)
	}
	return p.def.frames[p.state.Shown], true
}

// Reset rewinds playback.
func (p *Player) Reset() {
	Reset(p.def, &p.state)
}

// SetMode changes the playback mode and rewinds.
func (p *Player) SetMode(m Mode) {
	p.state.Mode = m
	p.Reset()
}

// SetRepeat changes the repeat limit. Use Infinite to loop forever.
func (p *Player) SetRepeat(count int) {
	p.state.RepeatLimit = count
}

// IsDone reports whether the repeat limit has been reached.
func (p *Player) IsDone() bool {
	return p.state.Done
}

// Loops returns the number of completed passes.
func (p *Player) Loops() int {
	return p.state.Loops
}

// Index returns the index of the most recently shown frame.
func (p *Player) Index() int {
	return p.state.Shown
}

// State returns a copy of the playback state.
func (p *Player) State() State {
	return p.state
}
