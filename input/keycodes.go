package input

// physicalCodes maps physical key names (the W3C code names ebiten's Key.String
// reports) to key codes
var physicalCodes = map[string]KeyCode{
	"Enter":       KeyEnter,
	"NumpadEnter": KeyEnter,
	"Backspace":   KeyBackspace,
	"Tab":         KeyTab,
	"Escape":      KeyEscape,
	"Delete":      KeyDelete,
	"ArrowUp":     KeyUp,
	"ArrowDown":   KeyDown,
	"ArrowLeft":   KeyLeft,
	"ArrowRight":  KeyRight,
	"Home":        KeyHome,
	"End":         KeyEnd,
	"F1":          KeyF1,
	"F2":          KeyF2,
	"F3":          KeyF3,
	"F4":          KeyF4,
	"F5":          KeyF5,
	"F6":          KeyF6,
	"F7":          KeyF7,
	"F8":          KeyF8,
	"F9":          KeyF9,
	"F10":         KeyF10,
	"F11":         KeyF11,
	"F12":         KeyF12,
}

// FromPhysical converts one frame of windowed input into key presses.
// pressed holds the names of keys that went down this frame, chars the text
// typed this frame. Specials and modified letters come from pressed; plain
// text comes from chars so keyboard layouts and shift are honoured.
func FromPhysical(pressed []string, chars []rune, mods Mod) []Key {
	var out []Key
	chord := mods&(ModCtrl|ModAlt|ModMeta) != 0
	for _, name := range pressed {
		if code, ok := physicalCodes[name]; ok {
			out = append(out, Key{Code: code, Mod: mods})
			continue
		}
		if chord && len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z' {
			out = append(out, Key{Code: KeyRune, Rune: rune(name[0] - 'A' + 'a'), Mod: mods})
		}
	}
	if !chord {
		for _, r := range chars {
			out = append(out, Rune(r))
		}
	}
	return out
}
