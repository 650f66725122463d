package input

// Keymap binds chords to actions
type Keymap struct {
	bindings map[Key]Action
}

// DefaultKeymap returns the stock bindings
func DefaultKeymap() *Keymap {
	km := &Keymap{bindings: make(map[Key]Action, 20)}

	for r, a := range map[rune]Action{
		'g': ActionGlitchIncrease,
		't': ActionTerminalToggle,
		'a': ActionAudioToggle,
		'p': ActionGameToggle,
		'n': ActionNeuralToggle,
		'r': ActionReboot,
		'e': ActionEmergencyStop,
		'q': ActionQuit,
		'c': ActionQuit,
	} {
		km.bindings[Ctrl(r)] = a
	}

	for c, a := range map[KeyCode]Action{
		KeyF1:     ActionTerminalToggle,
		KeyF2:     ActionAudioToggle,
		KeyF3:     ActionGameToggle,
		KeyF4:     ActionNeuralToggle,
		KeyF9:     ActionGlitchIncrease,
		KeyF12:    ActionReboot,
		KeyEscape: ActionEmergencyStop,
	} {
		km.bindings[Special(c)] = a
	}
	return km
}

// Lookup returns the action bound to k, after chord normalization
func (km *Keymap) Lookup(k Key) Action {
	return km.bindings[k.Chord()]
}

// Bind sets k to a, replacing any previous binding of k
func (km *Keymap) Bind(k Key, a Action) {
	km.bindings[k.Chord()] = a
}

// Unbind removes every binding of a
func (km *Keymap) Unbind(a Action) {
	for k, bound := range km.bindings {
		if bound == a {
			delete(km.bindings, k)
		}
	}
}

// Keys returns the chords bound to a
func (km *Keymap) Keys(a Action) []Key {
	var out []Key
	for k, bound := range km.bindings {
		if bound == a {
			out = append(out, k)
		}
	}
	return out
}

// Len returns the number of bound chords
func (km *Keymap) Len() int {
	return len(km.bindings)
}

// Clone returns an independent copy
func (km *Keymap) Clone() *Keymap {
	out := &Keymap{bindings: make(map[Key]Action, len(km.bindings))}
	for k, a := range km.bindings {
		out.bindings[k] = a
	}
	return out
}
