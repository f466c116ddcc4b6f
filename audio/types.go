package audio

import (
	"errors"

	"github.com/lixenwraith/scotomap/parameter"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundProbe    SoundType = iota // New probe presented
	SoundUndo                      // Step taken back
	SoundComplete                  // Sweep finished
	soundTypeCount
)

// String returns the key used in volume overrides
func (s SoundType) String() string {
	switch s {
	case SoundProbe:
		return "probe"
	case SoundUndo:
		return "undo"
	case SoundComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// AudioConfig holds audio settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	EffectVolumes map[SoundType]float64
	SampleRate    int
}

// DefaultAudioConfig returns audio enabled at default volumes
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: parameter.AudioMasterVolume,
		EffectVolumes: map[SoundType]float64{
			SoundProbe:    parameter.ProbeSoundVolume,
			SoundUndo:     parameter.UndoSoundVolume,
			SoundComplete: parameter.CompleteSoundVolume,
		},
		SampleRate: parameter.AudioSampleRate,
	}
}

// Sentinel errors
var (
	ErrAudioDisabled = errors.New("audio disabled by configuration")
)
