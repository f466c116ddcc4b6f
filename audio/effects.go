package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/scotomap/parameter"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0

		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = max(float64(remaining)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s with a linear gain
// math.Log2(0) is -Inf, so 0 volume is rendered silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateProbeSound generates a short sine tick for each presented probe
func CreateProbeSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(parameter.ProbeSoundFrequency, parameter.ProbeSoundDuration, WaveSine, rate)
	shaped := NewEnvelope(osc, parameter.ProbeSoundDuration, parameter.ProbeSoundAttack, parameter.ProbeSoundRelease, rate)

	return newVolume(shaped, cfg.EffectVolumes[SoundProbe]*cfg.MasterVolume)
}

// CreateUndoSound generates a low saw blip for a step taken back
func CreateUndoSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(parameter.UndoSoundFrequency, parameter.UndoSoundDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, parameter.UndoSoundDuration, parameter.UndoSoundAttack, parameter.UndoSoundRelease, rate)

	return newVolume(shaped, cfg.EffectVolumes[SoundUndo]*cfg.MasterVolume)
}

// CreateCompleteSound generates a two-note chime for a finished sweep
func CreateCompleteSound(cfg *AudioConfig) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	n1 := NewOscillator(parameter.CompleteSoundNote1Frequency, parameter.CompleteSoundNote1Duration, WaveSine, rate)
	n1Shaped := NewEnvelope(n1, parameter.CompleteSoundNote1Duration, parameter.CompleteSoundAttack, parameter.CompleteSoundNote1Release, rate)

	n2 := NewOscillator(parameter.CompleteSoundNote2Frequency, parameter.CompleteSoundNote2Duration, WaveSine, rate)
	n2Shaped := NewEnvelope(n2, parameter.CompleteSoundNote2Duration, parameter.CompleteSoundAttack, parameter.CompleteSoundNote2Release, rate)

	sequence := beep.Seq(n1Shaped, n2Shaped)

	return newVolume(sequence, cfg.EffectVolumes[SoundComplete]*cfg.MasterVolume)
}

// GetSoundEffect returns the streamer for the given sound type
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	switch soundType {
	case SoundProbe:
		return CreateProbeSound(cfg)
	case SoundUndo:
		return CreateUndoSound(cfg)
	case SoundComplete:
		return CreateCompleteSound(cfg)
	default:
		return nil
	}
}
