package audio

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/scotomap/parameter"
)

// Player receives finished streamers; the speaker mixer in production
type Player interface {
	Add(s ...beep.Streamer)
	Clear()
}

// SoundManager plays sweep cues through a single mixer
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	mixer       Player
	ctrl        *beep.Ctrl
	log         *slog.Logger
	muted       bool
	initialized bool
}

// NewSoundManager creates a sound manager; nil cfg selects defaults
func NewSoundManager(cfg *AudioConfig, log *slog.Logger) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &SoundManager{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		log:   log,
	}
}

// Initialize opens the speaker and starts the mixer
// Callers treat failure as non-fatal and continue silently
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return ErrAudioDisabled
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	mixer, ok := sm.mixer.(beep.Streamer)
	if !ok {
		return fmt.Errorf("mixer %T is not a streamer", sm.mixer)
	}
	sm.ctrl = &beep.Ctrl{Streamer: mixer, Paused: false}
	speaker.Play(sm.ctrl)
	sm.initialized = true
	sm.log.Info("audio initialized", "sample_rate", sm.cfg.SampleRate)
	return nil
}

// attach marks the manager ready with a custom player, bypassing the speaker
func (sm *SoundManager) attach(p Player) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.mixer = p
	sm.initialized = true
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	if sm.ctrl != nil {
		speaker.Lock()
		sm.ctrl.Paused = true
		speaker.Unlock()
	}
	// beep has no speaker close; clearing streamers avoids artifacts
	sm.mixer.Clear()
	sm.initialized = false
}

// Play queues a sound effect unless muted or uninitialized
func (sm *SoundManager) Play(st SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	s := GetSoundEffect(st, sm.cfg)
	if s == nil {
		return
	}
	if sm.ctrl != nil {
		speaker.Lock()
		sm.mixer.Add(s)
		speaker.Unlock()
		return
	}
	sm.mixer.Add(s)
}

func (sm *SoundManager) PlayProbe()    { sm.Play(SoundProbe) }
func (sm *SoundManager) PlayUndo()     { sm.Play(SoundUndo) }
func (sm *SoundManager) PlayComplete() { sm.Play(SoundComplete) }

// ToggleMute flips muting and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = !sm.muted
	return sm.muted
}

// Muted reports whether cues are suppressed
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Ready reports whether the manager can play
func (sm *SoundManager) Ready() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}
