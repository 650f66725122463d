package input

import "sort"

// Action is what a bound key asks the app to do
type Action uint8

const (
	ActionNone Action = iota
	ActionGlitchIncrease
	ActionTerminalToggle
	ActionAudioToggle
	ActionGameToggle
	ActionNeuralToggle
	ActionReboot
	ActionEmergencyStop
	ActionQuit
	actionCount
)

// Names used in keymap files
var actionNames = [actionCount]string{
	ActionNone:           "none",
	ActionGlitchIncrease: "glitch",
	ActionTerminalToggle: "terminal",
	ActionAudioToggle:    "audio",
	ActionGameToggle:     "game",
	ActionNeuralToggle:   "neural",
	ActionReboot:         "reboot",
	ActionEmergencyStop:  "emergency_stop",
	ActionQuit:           "quit",
}

var actionByName = func() map[string]Action {
	m := make(map[string]Action, actionCount)
	for a, n := range actionNames {
		m[n] = Action(a)
	}
	return m
}()

func (a Action) String() string {
	if a >= actionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ActionByName resolves a keymap action name
func ActionByName(name string) (Action, bool) {
	a, ok := actionByName[name]
	if a == ActionNone {
		return ActionNone, false
	}
	return a, ok
}

// ActionNames returns the bindable action names, sorted
func ActionNames() []string {
	names := make([]string, 0, actionCount-1)
	for a := ActionNone + 1; a < actionCount; a++ {
		names = append(names, actionNames[a])
	}
	sort.Strings(names)
	return names
}
