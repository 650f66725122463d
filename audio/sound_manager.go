package audio

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output is a device that pulls from the manager's mixer
type Output interface {
	Init(rate beep.SampleRate, mixer beep.Streamer) error
	// Lock and Unlock guard the mixer against the output's pull goroutine
	Lock()
	Unlock()
	Close()
}

// SpeakerOutput plays through the system speaker
type SpeakerOutput struct{}

func (SpeakerOutput) Init(rate beep.SampleRate, mixer beep.Streamer) error {
	if err := speaker.Init(rate, rate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(mixer)
	return nil
}

func (SpeakerOutput) Lock()   { speaker.Lock() }
func (SpeakerOutput) Unlock() { speaker.Unlock() }

func (SpeakerOutput) Close() {
	speaker.Clear()
	speaker.Close()
}

// SoundManager mixes one-shot effects into a single output
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	output      Output
	mixer       *beep.Mixer
	rng         *rand.Rand
	initialized bool
	muted       atomic.Bool
	played      atomic.Int64
}

// NewSoundManager creates a sound manager; a nil config uses defaults and a nil output uses the speaker
func NewSoundManager(cfg *AudioConfig, output Output) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if output == nil {
		output = SpeakerOutput{}
	}
	return &SoundManager{
		cfg:    cfg,
		output: output,
		mixer:  &beep.Mixer{},
		rng:    rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed)),
	}
}

// Initialize starts the output. Disabled audio is not an error.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}
	if err := sm.output.Init(beep.SampleRate(sm.cfg.SampleRate), sm.mixer); err != nil {
		return fmt.Errorf("audio output: %w", err)
	}
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the output
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.output.Lock()
	sm.mixer.Clear()
	sm.output.Unlock()
	sm.output.Close()
	sm.initialized = false
}

// Play starts a one-shot sound. It is a no-op before Initialize, after Cleanup or while muted.
func (sm *SoundManager) Play(s SoundType) {
	if sm.muted.Load() {
		return
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}

	streamer := Synthesize(s, sm.cfg, sm.rng)
	if streamer == nil {
		return
	}
	sm.output.Lock()
	sm.mixer.Add(streamer)
	sm.output.Unlock()
	sm.played.Add(1)
}

// SetMuted silences new sounds
func (sm *SoundManager) SetMuted(muted bool) {
	sm.muted.Store(muted)
}

// ToggleMute flips the mute flag and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	for {
		old := sm.muted.Load()
		if sm.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Muted reports the mute flag
func (sm *SoundManager) Muted() bool {
	return sm.muted.Load()
}

// Initialized reports whether the output is running
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Active returns the number of sounds still mixing
func (sm *SoundManager) Active() int {
	sm.output.Lock()
	defer sm.output.Unlock()
	return sm.mixer.Len()
}

// Played returns the number of sounds started
func (sm *SoundManager) Played() int64 {
	return sm.played.Load()
}
