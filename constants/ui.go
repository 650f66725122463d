package constants

import "time"

// System status values shown in the header
const (
	StatusInitializing = "INITIALIZING"
	StatusUnstable     = "SYSTEM_UNSTABLE"
	StatusEmergency    = "EMERGENCY_STOP"
)

// Intensity and error log tuning
const (
	// ErrorLogCap is the number of error messages kept on screen
	ErrorLogCap = 3

	// DistressStep is the intensity added by the distress action
	DistressStep = 0.2

	// ErrorChance is the probability that an event tick appends an error
	ErrorChance = 0.3
)

// Fixed messages
const (
	MessageManualOverride = "Manual override attempted"
	MessageEmergencyStop  = "Emergency stop engaged"
	SubtitleText          = "Neural pathways disconnected"
	DistressButtonText    = "INCREASE DISTORTION"
)

// Terminal panel
const (
	// BootTypeDelay is the per-character delay of the boot sequence
	BootTypeDelay = 30 * time.Millisecond

	// BootHideDelay is how long the completed boot sequence stays visible
	BootHideDelay = 1 * time.Second

	PromptUser = "user@void"
	PromptPath = ":~$"
)

// HoverPulseChance is the chance a pulse sound plays when the pointer enters the visualizer
const HoverPulseChance = 0.3
