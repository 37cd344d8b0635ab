// Package sfx plays short procedural effects for shots, hits and the end of a
// round. Audio is optional: if the output device cannot be opened every call
// becomes a no-op.
package sfx

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/Garsondee/Invaders-Duel/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Manager mixes effects onto the speaker.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64 // log2 gain, 0 = unity
	initialized bool
}

// NewManager creates a manager at the given log2 volume (-1 halves amplitude).
func NewManager(volume float64) *Manager {
	return &Manager{mixer: &beep.Mixer{}, volume: volume}
}

// Initialize opens the audio device. Calling it twice is harmless.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup silences everything still queued.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

// Shot is a short blip, pitched per side so players can tell them apart.
func (m *Manager) Shot(side game.Side) {
	freq := 880.0
	if side == game.SideRight {
		freq = 660
	}
	tone, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	m.play(beep.Take(sampleRate.N(40*time.Millisecond), tone))
}

// Hit is a falling chirp.
func (m *Manager) Hit(side game.Side) {
	from := 900.0
	if side == game.SideRight {
		from = 700
	}
	m.play(Chirp(sampleRate, from, 120, 180*time.Millisecond))
}

// RoundOver is a slow descending sweep.
func (m *Manager) RoundOver() {
	m.play(Chirp(sampleRate, 440, 110, 900*time.Millisecond))
}

func (m *Manager) play(s beep.Streamer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	v := &effects.Volume{Streamer: s, Base: 2, Volume: m.volume}
	speaker.Lock()
	m.mixer.Add(v)
	speaker.Unlock()
}

// Chirp sweeps linearly from one frequency to another with a linear fade out.
// It ends after d.
func Chirp(sr beep.SampleRate, from, to float64, d time.Duration) beep.Streamer {
	total := sr.N(d)
	pos := 0
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			t := float64(pos) / float64(total)
			freq := from + (to-from)*t
			phase += 2 * math.Pi * freq / float64(sr)
			v := math.Sin(phase) * (1 - t)
			samples[i][0], samples[i][1] = v, v
			pos++
			n++
		}
		return n, true
	})
}

// Muted satisfies game.Sounds without touching the audio device.
type Muted struct{}

func (Muted) Shot(game.Side) {}
func (Muted) Hit(game.Side)  {}
func (Muted) RoundOver()     {}

var (
	_ game.Sounds = (*Manager)(nil)
	_ game.Sounds = Muted{}
)
