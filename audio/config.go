package audio

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by ApplyEnv
const (
	EnvAudioEnabled = "SCOTOMAP_AUDIO_ENABLED"
	EnvMasterVolume = "SCOTOMAP_MASTER_VOLUME"
	EnvSFXVolumes   = "SCOTOMAP_SFX_VOLUMES"
	EnvSampleRate   = "SCOTOMAP_SAMPLE_RATE"
)

// ApplyEnv overlays audio settings from environment variables
// Malformed values are reported and leave the field unchanged
func ApplyEnv(cfg *AudioConfig, getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	var errs []error

	if enabled := getenv(EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", EnvAudioEnabled, err))
		}
	}

	// Master volume 0-100 converted to 0.0-1.0
	if volume := getenv(EnvMasterVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampUnit(float64(val) / 100.0)
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", EnvMasterVolume, err))
		}
	}

	// Effect volumes as JSON object keyed by sound name
	if effectVols := getenv(EnvSFXVolumes); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			SetEffectVolumes(cfg, volumes)
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSFXVolumes, err))
		}
	}

	if sampleRate := getenv(EnvSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		} else {
			errs = append(errs, fmt.Errorf("%s: invalid sample rate %q", EnvSampleRate, sampleRate))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SetEffectVolumes applies named volumes; unknown names are ignored
func SetEffectVolumes(cfg *AudioConfig, volumes map[string]float64) {
	if cfg.EffectVolumes == nil {
		cfg.EffectVolumes = make(map[SoundType]float64, int(soundTypeCount))
	}
	for st := SoundType(0); st < soundTypeCount; st++ {
		if v, ok := volumes[st.String()]; ok {
			cfg.EffectVolumes[st] = clampUnit(v)
		}
	}
}

func clampUnit(v float64) float64 {
	return min(max(v, 0), 1)
}
