// Package state holds the shared UI state: intensity, status, error log and
// panel toggles. All transitions are pure functions on State; Store applies
// them under a lock for the loops that read and write concurrently.
package state

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/voidglitch/constants"
)

// Panel identifies a toggleable view
type Panel int

const (
	PanelTerminal Panel = iota
	PanelAudio
	PanelGame
	PanelNeural
	panelCount
)

var panelNames = [panelCount]string{"terminal", "audio", "game", "neural"}

func (p Panel) String() string {
	if p < 0 || p >= panelCount {
		return "unknown"
	}
	return panelNames[p]
}

// Panels is the visibility set of all panels
type Panels [panelCount]bool

// AllPanels lists every panel in display order
func AllPanels() []Panel {
	return []Panel{PanelTerminal, PanelAudio, PanelGame, PanelNeural}
}

// State is the single UI state value
type State struct {
	Status    string
	Intensity float64
	Errors    ErrorLog
	Panels    Panels
	Score     int

	// Stopped suspends event timer mutations until reboot
	Stopped bool

	GodModeUntil time.Time
	GlitchUntil  time.Time
}

// Initial returns the boot state with the given panel visibility
func Initial(panels Panels) State {
	return State{
		Status:    constants.StatusInitializing,
		Intensity: 0,
		Errors:    NewErrorLog(constants.ErrorLogCap),
		Panels:    panels,
	}
}

// Clamp limits an intensity value to [0,1]
func Clamp(v float64) float64 {
	switch {
	case v != v: // NaN
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// WithIntensity returns s with a clamped intensity
func (s State) WithIntensity(v float64) State {
	s.Intensity = Clamp(v)
	return s
}

// AppendError returns s with msg pushed onto the error log
func (s State) AppendError(msg string) State {
	s.Errors = s.Errors.Append(msg)
	return s
}

// Booted is the transition fired by the boot timer
func (s State) Booted() State {
	if s.Stopped {
		return s
	}
	s.Status = constants.StatusUnstable
	return s.WithIntensity(1)
}

// Distort raises intensity by step and records the manual override
func (s State) Distort(step float64) State {
	s = s.WithIntensity(s.Intensity + step)
	return s.AppendError(constants.MessageManualOverride)
}

// EventTick is the transition of the periodic event timer: a random
// intensity and, with probability ErrorChance, one random error message
func (s State) EventTick(r *rand.Rand) State {
	if s.Stopped {
		return s
	}
	s = s.WithIntensity(r.Float64())
	if r.Float64() > 1-constants.ErrorChance {
		s = s.AppendError(RandomError(r))
	}
	return s
}

// EmergencyStop zeroes intensity and suspends the event timer
func (s State) EmergencyStop() State {
	s.Stopped = true
	s.Status = constants.StatusEmergency
	s = s.WithIntensity(0)
	return s.AppendError(constants.MessageEmergencyStop)
}

// Reboot resets to the boot state, keeping panel visibility
func (s State) Reboot() State {
	return Initial(s.Panels)
}

// TogglePanel flips visibility of p
func (s State) TogglePanel(p Panel) State {
	if p >= 0 && p < panelCount {
		s.Panels[p] = !s.Panels[p]
	}
	return s
}

// WithScore records the game score
func (s State) WithScore(score int) State {
	s.Score = score
	return s
}

// WithGodMode enables the rainbow overlay until the given time
func (s State) WithGodMode(until time.Time) State {
	s.GodModeUntil = until
	return s
}

// WithGlitch enables the screen shake overlay until the given time
func (s State) WithGlitch(until time.Time) State {
	s.GlitchUntil = until
	return s
}

// GodMode reports whether the rainbow overlay is active at now
func (s State) GodMode(now time.Time) bool {
	return now.Before(s.GodModeUntil)
}

// Glitching reports whether the screen shake is active at now
func (s State) Glitching(now time.Time) bool {
	return now.Before(s.GlitchUntil)
}
