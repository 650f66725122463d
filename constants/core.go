package constants

import "time"

// Loop Timing Constants
const (
	// FrameUpdateInterval is the compositor frame interval (~30 FPS, terminal output bound)
	FrameUpdateInterval = 33 * time.Millisecond

	// BootDelay is the time from start until the system reports unstable
	BootDelay = 2 * time.Second

	// EventInterval is the period of the intensity/error event timer
	EventInterval = 3 * time.Second
)

// Effect loop intervals
const (
	GlitchBackgroundInterval = 50 * time.Millisecond
	CyberGridInterval        = 50 * time.Millisecond
	DistortedTextInterval    = 100 * time.Millisecond

	// Frame-driven effects share the compositor rate
	NeuralFrameInterval     = FrameUpdateInterval
	VisualizerFrameInterval = FrameUpdateInterval
	SceneFrameInterval      = FrameUpdateInterval
)

// Overlay durations
const (
	// GodModeDuration is how long the rainbow overlay runs after the key sequence
	GodModeDuration = 5 * time.Second

	// ScreenGlitchDuration is the length of the terminal "glitch" command shake
	ScreenGlitchDuration = 500 * time.Millisecond
)

// Pixel metrics for converting logical canvas units into cells
const (
	CellWidthPx  = 8.0
	CellHeightPx = 16.0
)
