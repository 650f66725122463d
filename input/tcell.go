package input

import "github.com/gdamore/tcell/v2"

var tcellCodes = map[tcell.Key]KeyCode{
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyTab:        KeyTab,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyF1:         KeyF1,
	tcell.KeyF2:         KeyF2,
	tcell.KeyF3:         KeyF3,
	tcell.KeyF4:         KeyF4,
	tcell.KeyF5:         KeyF5,
	tcell.KeyF6:         KeyF6,
	tcell.KeyF7:         KeyF7,
	tcell.KeyF8:         KeyF8,
	tcell.KeyF9:         KeyF9,
	tcell.KeyF10:        KeyF10,
	tcell.KeyF11:        KeyF11,
	tcell.KeyF12:        KeyF12,
}

// FromTcell converts a tcell key event. Control characters arrive as
// KeyCtrlA..KeyCtrlZ and become ctrl+letter, except those that double as
// Enter, Tab and Backspace.
func FromTcell(ev *tcell.EventKey) Key {
	var k Key
	mods := ev.Modifiers()
	if mods&tcell.ModShift != 0 {
		k.Mod |= ModShift
	}
	if mods&tcell.ModCtrl != 0 {
		k.Mod |= ModCtrl
	}
	if mods&tcell.ModAlt != 0 {
		k.Mod |= ModAlt
	}
	if mods&tcell.ModMeta != 0 {
		k.Mod |= ModMeta
	}

	key := ev.Key()
	if key == tcell.KeyRune {
		k.Code = KeyRune
		k.Rune = ev.Rune()
		return k
	}
	if code, ok := tcellCodes[key]; ok {
		k.Code = code
		return k
	}
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		k.Code = KeyRune
		k.Rune = rune('a' + (key - tcell.KeyCtrlA))
		k.Mod |= ModCtrl
		return k
	}
	return Key{Code: KeyNone, Mod: k.Mod}
}
