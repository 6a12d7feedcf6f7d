package assets

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Speaker plays sounds through one mixer on the audio device.
type Speaker struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	buffer      time.Duration
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeaker creates a speaker. Init must be called before sounds play.
func NewSpeaker(sampleRate, bufferMs int) *Speaker {
	return &Speaker{
		rate:   beep.SampleRate(sampleRate),
		buffer: time.Duration(bufferMs) * time.Millisecond,
		mixer:  &beep.Mixer{},
	}
}

// Init opens the audio device.
func (s *Speaker) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(s.buffer)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play mixes snd in, resampled to the device rate. It returns false when
// the speaker is not initialized or the sound is not loaded.
func (s *Speaker) Play(snd *Sound) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || snd == nil {
		return false
	}
	format, ok := snd.Format()
	if !ok {
		return false
	}

	var stream beep.Streamer = snd.Streamer()
	if format.SampleRate != s.rate {
		stream = beep.Resample(4, format.SampleRate, s.rate, stream)
	}

	speaker.Lock()
	s.mixer.Add(stream)
	speaker.Unlock()
	return true
}

// Close stops all sounds and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}
