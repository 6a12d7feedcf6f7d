package assets

import (
	"fmt"
	"io/fs"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// Sound is a WAV asset decoded into memory so it can be played any number
// of times.
type Sound struct {
	path string

	mu     sync.Mutex
	buffer *beep.Buffer
}

// NewSound creates an unloaded sound for path.
func NewSound(path string) *Sound {
	return &Sound{path: path}
}

func (s *Sound) Path() string { return s.path }

// Load decodes the whole file into a buffer.
func (s *Sound) Load(fsys fs.FS) error {
	f, err := fsys.Open(s.path)
	if err != nil {
		return err
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return fmt.Errorf("failed to stream %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.buffer = buffer
	s.mu.Unlock()
	return nil
}

func (s *Sound) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer != nil
}

// Format returns the decoded format. ok is false before Load.
func (s *Sound) Format() (beep.Format, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buffer == nil {
		return beep.Format{}, false
	}
	return s.buffer.Format(), true
}

// Len returns the number of decoded samples.
func (s *Sound) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buffer == nil {
		return 0
	}
	return s.buffer.Len()
}

// Streamer returns a fresh streamer over the whole sound, or nil before
// Load.
func (s *Sound) Streamer() beep.StreamSeeker {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buffer == nil {
		return nil
	}
	return s.buffer.Streamer(0, s.buffer.Len())
}
