package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/vi-life/constants"
)

const (
	sampleRate = beep.SampleRate(48000)
	cueVolume  = 0.2
)

// SoundManager plays the input cues. All methods are no-ops until Initialize succeeds
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	// beep has no speaker Close; an empty mixer plays silence
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted silences cues without tearing down the speaker
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// IsMuted reports the mute flag
func (sm *SoundManager) IsMuted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// PlayToggle plays a high blip when a cell comes alive and a lower one when it dies
func (sm *SoundManager) PlayToggle(alive bool) {
	freq := constants.ToggleOffFrequency
	if alive {
		freq = constants.ToggleOnFrequency
	}
	sm.play(NewToneGenerator(sampleRate, freq, constants.ToggleSoundDuration))
}

// PlayStep plays a short tick for a manual generation step
func (sm *SoundManager) PlayStep() {
	sm.play(NewToneGenerator(sampleRate, constants.StepFrequency, constants.StepSoundDuration))
}

func (sm *SoundManager) play(g *ToneGenerator) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	speaker.Lock()
	sm.mixer.Add(beep.Take(g.Len(), g))
	speaker.Unlock()
}

// ToneGenerator generates a sine blip with a linear release
type ToneGenerator struct {
	sr      beep.SampleRate
	freq    float64
	pos     int
	total   int
	release int
}

// NewToneGenerator creates a tone of the given frequency and length
func NewToneGenerator(sr beep.SampleRate, freq float64, d time.Duration) *ToneGenerator {
	total := sr.N(d)
	return &ToneGenerator{
		sr:      sr,
		freq:    freq,
		total:   total,
		release: min(sr.N(constants.SoundRelease), total),
	}
}

// Len returns the tone length in samples
func (g *ToneGenerator) Len() int {
	return g.total
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)

		envelope := 1.0
		if remaining := g.total - g.pos; remaining < g.release {
			envelope = float64(remaining) / float64(g.release)
		}
		sample := cueVolume * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}
