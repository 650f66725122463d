package input

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

type keymapFile struct {
	Keys map[string][]string `toml:"keys"`
}

// KeymapOverride is a parsed keymap file: every listed action replaces
// all of its default chords
type KeymapOverride struct {
	actions map[Action][]Key
}

// LoadKeymap parses TOML of the form
//
//	[keys]
//	glitch = ["ctrl+g", "f9"]
//
// Unknown action names, bad chords and chords bound twice are errors
func LoadKeymap(data []byte) (*KeymapOverride, error) {
	var f keymapFile
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("keymap parse: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("keymap: unknown key %q", undecoded[0].String())
	}

	names := make([]string, 0, len(f.Keys))
	for name := range f.Keys {
		names = append(names, name)
	}
	sort.Strings(names)

	ov := &KeymapOverride{actions: make(map[Action][]Key, len(f.Keys))}
	seen := make(map[Key]string)
	for _, name := range names {
		a, ok := ActionByName(name)
		if !ok {
			return nil, fmt.Errorf("keymap: unknown action %q", name)
		}
		keys := make([]Key, 0, len(f.Keys[name]))
		for _, chord := range f.Keys[name] {
			k, err := ParseChord(chord)
			if err != nil {
				return nil, fmt.Errorf("keymap action %q: %w", name, err)
			}
			k = k.Chord()
			if prev, dup := seen[k]; dup {
				return nil, fmt.Errorf("keymap: %s bound to both %q and %q", k, prev, name)
			}
			seen[k] = name
			keys = append(keys, k)
		}
		ov.actions[a] = keys
	}
	return ov, nil
}

// LoadKeymapFile reads and parses a keymap file
func LoadKeymapFile(path string) (*KeymapOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("keymap: %w", err)
	}
	return LoadKeymap(data)
}

// Len returns the number of overridden actions
func (ov *KeymapOverride) Len() int {
	if ov == nil {
		return 0
	}
	return len(ov.actions)
}

// Apply returns a copy of base with the override applied. A nil override returns a plain copy.
func (ov *KeymapOverride) Apply(base *Keymap) *Keymap {
	out := base.Clone()
	if ov == nil {
		return out
	}
	for a := range ov.actions {
		out.Unbind(a)
	}
	for a, keys := range ov.actions {
		for _, k := range keys {
			out.Bind(k, a)
		}
	}
	return out
}
