package audio

import "errors"

// SoundType represents different sound effects
type SoundType int

const (
	SoundGlitch SoundType = iota // Visualizer glitch button
	SoundPulse                   // Visualizer hover
	SoundError                   // Visualizer error button
	soundTypeCount
)

var soundNames = [soundTypeCount]string{
	SoundGlitch: "glitch",
	SoundPulse:  "pulse",
	SoundError:  "error",
}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// SoundByName resolves a config volume key
func SoundByName(name string) (SoundType, bool) {
	for i, n := range soundNames {
		if n == name {
			return SoundType(i), true
		}
	}
	return 0, false
}

// Sentinel errors
var (
	ErrNoCapture   = errors.New("no audio capture configured")
	ErrCaptureOpen = errors.New("audio capture did not open in time")
)
