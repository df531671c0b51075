package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/opd-ai/go-arena/pkg/config"
)

const defaultSampleRate = 44100

// SoundManager synthesizes and mixes the game's sound effects. It satisfies
// entity.Sound and stays silent until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *beep.Ctrl
	rate        beep.SampleRate
	volume      float64
	enabled     bool
	initialized bool
	played      map[string]int

	// output starts playback of the master stream; replaced in tests
	output func(rate beep.SampleRate, s beep.Streamer) error
}

// NewSoundManager creates a sound manager from the audio config section
func NewSoundManager(cfg config.AudioConfig) *SoundManager {
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = defaultSampleRate
	}
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:   mixer,
		master:  &beep.Ctrl{Streamer: newVolume(mixer, cfg.Volume)},
		rate:    beep.SampleRate(rate),
		volume:  cfg.Volume,
		enabled: cfg.Enabled,
		played:  make(map[string]int),
		output:  startSpeaker,
	}
}

func startSpeaker(rate beep.SampleRate, s beep.Streamer) error {
	if err := speaker.Init(rate, rate.N(time.Millisecond*50)); err != nil {
		return err
	}
	speaker.Play(s)
	return nil
}

// Initialize sets up the audio device. A disabled manager stays silent and
// returns nil.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.enabled {
		return nil
	}
	if err := sm.output(sm.rate, sm.master); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	sm.initialized = true
	return nil
}

// Play starts a named effect. Unknown names and an uninitialized manager
// are silent.
func (sm *SoundManager) Play(name string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	streamer := GetSoundEffect(name, sm.rate)
	if streamer == nil {
		return
	}
	sm.played[name]++
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}

// SetPaused silences or resumes the whole mix
func (sm *SoundManager) SetPaused(paused bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.master.Paused = paused
	speaker.Unlock()
}

// Played returns how many times name has been started
func (sm *SoundManager) Played(name string) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played[name]
}

// Active returns the number of effects currently mixing
func (sm *SoundManager) Active() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.mixer.Len()
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	sm.mixer.Clear()
	sm.initialized = false
}
