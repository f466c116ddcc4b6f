package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond
)

// Default volumes, 0.0-1.0
const (
	AudioMasterVolume   = 0.5
	ProbeSoundVolume    = 0.4
	UndoSoundVolume     = 0.5
	CompleteSoundVolume = 0.8
)

// Probe Sound, a short tick per presented probe
const (
	ProbeSoundFrequency = 660.0
	ProbeSoundDuration  = 40 * time.Millisecond
	ProbeSoundAttack    = 5 * time.Millisecond
	ProbeSoundRelease   = 25 * time.Millisecond
)

// Undo Sound
const (
	UndoSoundFrequency = 180.0
	UndoSoundDuration  = 80 * time.Millisecond
	UndoSoundAttack    = 5 * time.Millisecond
	UndoSoundRelease   = 20 * time.Millisecond
)

// Complete Sound, two-note chime when the sweep finishes
const (
	CompleteSoundNote1Frequency = 987.77  // B5
	CompleteSoundNote2Frequency = 1318.51 // E6
	CompleteSoundNote1Duration  = 80 * time.Millisecond
	CompleteSoundNote2Duration  = 280 * time.Millisecond
	CompleteSoundAttack         = 5 * time.Millisecond
	CompleteSoundNote1Release   = 40 * time.Millisecond
	CompleteSoundNote2Release   = 200 * time.Millisecond
)
