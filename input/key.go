// Package input turns key events from either frontend into actions and
// watches the key stream for the Easter-egg sequence.
package input

import (
	"fmt"
	"strings"
	"unicode"
)

// KeyCode identifies a non-character key, KeyRune carries a character
type KeyCode uint8

const (
	KeyNone KeyCode = iota
	KeyRune
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEscape
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Mod is a modifier bitmask
type Mod uint8

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Key is a single key press with modifiers. Comparable, usable as a map key.
type Key struct {
	Code KeyCode
	Rune rune
	Mod  Mod
}

// Rune builds a plain character key
func Rune(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Ctrl builds a ctrl+character key
func Ctrl(r rune) Key {
	return Key{Code: KeyRune, Rune: r, Mod: ModCtrl}
}

// Special builds a non-character key without modifiers
func Special(c KeyCode) Key {
	return Key{Code: c}
}

var codeNames = map[KeyCode]string{
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyEscape:    "escape",
	KeyDelete:    "delete",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

var codeByName = func() map[string]KeyCode {
	m := make(map[string]KeyCode, len(codeNames)+4)
	for c, n := range codeNames {
		m[n] = c
	}
	m["esc"] = KeyEscape
	m["return"] = KeyEnter
	m["del"] = KeyDelete
	m["bs"] = KeyBackspace
	return m
}()

// Alt and Meta act as Ctrl for shortcuts
const modCommand = ModCtrl | ModAlt | ModMeta

// Chord normalizes k for keymap lookup: command modifiers fold into Ctrl,
// letters fold to lower case, shift is dropped from characters
func (k Key) Chord() Key {
	out := Key{Code: k.Code, Rune: k.Rune}
	if k.Mod&modCommand != 0 {
		out.Mod |= ModCtrl
	}
	if k.Code == KeyRune {
		out.Rune = unicode.ToLower(k.Rune)
	} else {
		out.Rune = 0
		out.Mod |= k.Mod & ModShift
	}
	return out
}

// String formats k the way ParseChord reads it
func (k Key) String() string {
	var b strings.Builder
	if k.Mod&ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if k.Mod&ModAlt != 0 {
		b.WriteString("alt+")
	}
	if k.Mod&ModMeta != 0 {
		b.WriteString("meta+")
	}
	if k.Mod&ModShift != 0 {
		b.WriteString("shift+")
	}
	switch k.Code {
	case KeyRune:
		if k.Rune == ' ' {
			b.WriteString("space")
		} else {
			b.WriteRune(k.Rune)
		}
	case KeyNone:
		b.WriteString("none")
	default:
		b.WriteString(codeNames[k.Code])
	}
	return b.String()
}

// ParseChord reads "ctrl+g", "f9", "escape", "alt+shift+up" or a single character
func ParseChord(s string) (Key, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Key{}, fmt.Errorf("empty key chord")
	}

	var k Key
	parts := strings.Split(s, "+")
	// "ctrl++" names the plus key
	if strings.HasSuffix(s, "++") {
		parts = append(parts[:len(parts)-2], "+")
	}

	for _, p := range parts[:len(parts)-1] {
		switch p {
		case "ctrl", "control":
			k.Mod |= ModCtrl
		case "alt", "option":
			k.Mod |= ModAlt
		case "meta", "cmd", "super":
			k.Mod |= ModMeta
		case "shift":
			k.Mod |= ModShift
		default:
			return Key{}, fmt.Errorf("chord %q: unknown modifier %q", s, p)
		}
	}

	last := parts[len(parts)-1]
	if code, ok := codeByName[last]; ok {
		k.Code = code
		return k, nil
	}
	if last == "space" {
		k.Code, k.Rune = KeyRune, ' '
		return k, nil
	}
	if r := []rune(last); len(r) == 1 {
		k.Code, k.Rune = KeyRune, r[0]
		return k, nil
	}
	return Key{}, fmt.Errorf("chord %q: unknown key %q", s, last)
}
