// Package state holds the engine's run state.
package state

// RunState represents whether the frame loop advances
type RunState int

const (
	StateLoading RunState = iota
	StateRunning
	StatePaused
)

// String returns the string representation of the run state
func (s RunState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Advances reports whether frames are processed in this state.
func (s RunState) Advances() bool {
	return s == StateRunning
}
