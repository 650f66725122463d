package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/lixenwraith/voidglitch/input"
)

// modifiers reads the held modifier keys
func modifiers() input.Mod {
	var m input.Mod
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		m |= input.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		m |= input.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		m |= input.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		m |= input.ModMeta
	}
	return m
}

// translate converts one tick of ebiten input into key presses
func translate(pressed []ebiten.Key, chars []rune, mods input.Mod) []input.Key {
	names := make([]string, len(pressed))
	for i, k := range pressed {
		names[i] = k.String()
	}
	return input.FromPhysical(names, chars, mods)
}
