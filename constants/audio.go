package constants

import "time"

// Cue Sound Timing
const (
	ToggleSoundDuration = 40 * time.Millisecond
	StepSoundDuration   = 25 * time.Millisecond
	SoundRelease        = 15 * time.Millisecond
)

// Cue Frequencies (Hz)
const (
	ToggleOnFrequency  = 880.0
	ToggleOffFrequency = 440.0
	StepFrequency      = 660.0
)
