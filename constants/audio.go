package constants

import "time"

// Glitch Sound Timing
const (
	GlitchSoundDuration = 180 * time.Millisecond
	GlitchSoundAttack   = 2 * time.Millisecond
	GlitchSoundRelease  = 60 * time.Millisecond
)

// Pulse Sound Timing
const (
	PulseSoundDuration = 120 * time.Millisecond
	PulseSoundAttack   = 5 * time.Millisecond
	PulseSoundRelease  = 90 * time.Millisecond
)

// Error Sound Timing
const (
	ErrorSoundDuration = 400 * time.Millisecond
	ErrorSoundAttack   = 5 * time.Millisecond
	ErrorSoundRelease  = 120 * time.Millisecond
)

// Visualizer input
const (
	// SpectrumBins is the bin count of the synthetic generator
	SpectrumBins = 128

	// CaptureFFTSize matches the analyser size of the live input path
	CaptureFFTSize = 512

	// CaptureTimeout bounds how long the visualizer waits for the capture device
	CaptureTimeout = 2 * time.Second

	// SpectrumSmoothing is the analyser's temporal smoothing constant
	SpectrumSmoothing = 0.8

	// SpectrumMinDecibels and SpectrumMaxDecibels map magnitudes to byte range
	SpectrumMinDecibels = -100.0
	SpectrumMaxDecibels = -30.0
)

// CaptureInterval is how often the capture source pulls decoded samples
const CaptureInterval = 20 * time.Millisecond
