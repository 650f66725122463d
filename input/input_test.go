package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func konami() []Key {
	return []Key{
		Special(KeyUp), Special(KeyUp), Special(KeyDown), Special(KeyDown),
		Special(KeyLeft), Special(KeyRight), Special(KeyLeft), Special(KeyRight),
		Rune('b'), Rune('a'),
	}
}

func TestDefaultBindings(t *testing.T) {
	km := DefaultKeymap()
	tests := []struct {
		key  Key
		want Action
	}{
		{Ctrl('g'), ActionGlitchIncrease},
		{Ctrl('t'), ActionTerminalToggle},
		{Ctrl('a'), ActionAudioToggle},
		{Ctrl('p'), ActionGameToggle},
		{Ctrl('n'), ActionNeuralToggle},
		{Ctrl('r'), ActionReboot},
		{Ctrl('e'), ActionEmergencyStop},
		{Ctrl('q'), ActionQuit},
		{Ctrl('c'), ActionQuit},
		{Key{Code: KeyRune, Rune: 'g', Mod: ModMeta}, ActionGlitchIncrease},
		{Key{Code: KeyRune, Rune: 'G', Mod: ModAlt | ModShift}, ActionGlitchIncrease},
		{Special(KeyF1), ActionTerminalToggle},
		{Special(KeyF2), ActionAudioToggle},
		{Special(KeyF3), ActionGameToggle},
		{Special(KeyF4), ActionNeuralToggle},
		{Special(KeyF9), ActionGlitchIncrease},
		{Special(KeyF12), ActionReboot},
		{Special(KeyEscape), ActionEmergencyStop},
		{Rune('g'), ActionNone},
		{Special(KeyF5), ActionNone},
	}
	for _, tt := range tests {
		if got := km.Lookup(tt.key); got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.key, tt.want, got)
		}
	}
}

func TestEscapeFiresOncePerPress(t *testing.T) {
	stops := 0
	d := NewDispatcher(nil, Handlers{ActionEmergencyStop: func() { stops++ }}, nil)

	if a := d.Dispatch(Special(KeyEscape)); a != ActionEmergencyStop {
		t.Fatalf("Expected emergency stop, got %s", a)
	}
	if stops != 1 {
		t.Errorf("Expected 1 call, got %d", stops)
	}
	d.Dispatch(Special(KeyEscape))
	if stops != 2 {
		t.Errorf("Expected 2 calls after second press, got %d", stops)
	}
}

func TestEasterEgg(t *testing.T) {
	eggs := 0
	d := NewDispatcher(nil, nil, func() { eggs++ })

	for _, k := range konami() {
		d.Dispatch(k)
	}
	if eggs != 1 {
		t.Fatalf("Expected easter egg once, got %d", eggs)
	}
	if len(d.Sequence()) != 0 {
		t.Errorf("Expected buffer reset after match, got %v", d.Sequence())
	}

	// Upper case B and A count
	seq := konami()
	seq[8], seq[9] = Rune('B'), Rune('A')
	for _, k := range seq {
		d.Dispatch(k)
	}
	if eggs != 2 {
		t.Errorf("Expected case-insensitive match, got %d", eggs)
	}
}

func TestEasterEggInterrupted(t *testing.T) {
	eggs := 0
	d := NewDispatcher(nil, nil, func() { eggs++ })

	seq := konami()
	for i, k := range seq {
		d.Dispatch(k)
		if i == 4 {
			d.Dispatch(Rune('x'))
		}
	}
	if eggs != 0 {
		t.Errorf("Expected no match after interruption, got %d", eggs)
	}

	// Leading noise is fine once the last ten keys match
	for _, k := range append([]Key{Rune('z'), Special(KeyUp)}, konami()...) {
		d.Dispatch(k)
	}
	if eggs != 1 {
		t.Errorf("Expected match after noise, got %d", eggs)
	}
}

func TestSequenceKeepsLastTen(t *testing.T) {
	d := NewDispatcher(nil, nil, nil)
	for _, r := range "abcdefghijkl" {
		d.Dispatch(Rune(r))
	}
	seq := d.Sequence()
	if len(seq) != SequenceLen {
		t.Fatalf("Expected %d tokens, got %d", SequenceLen, len(seq))
	}
	if seq[0] != "c" || seq[9] != "l" {
		t.Errorf("Expected c..l, got %v", seq)
	}
}

func TestParseChord(t *testing.T) {
	tests := []struct {
		in   string
		want Key
		err  bool
	}{
		{"ctrl+g", Ctrl('g'), false},
		{"Ctrl+G", Ctrl('g'), false},
		{"f9", Special(KeyF9), false},
		{"esc", Special(KeyEscape), false},
		{"alt+shift+up", Key{Code: KeyUp, Mod: ModAlt | ModShift}, false},
		{"space", Rune(' '), false},
		{"ctrl++", Ctrl('+'), false},
		{"x", Rune('x'), false},
		{"", Key{}, true},
		{"hyper+g", Key{}, true},
		{"ctrl+banana", Key{}, true},
	}
	for _, tt := range tests {
		got, err := ParseChord(tt.in)
		if tt.err {
			if err == nil {
				t.Errorf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %+v, got %+v", tt.in, tt.want, got)
		}
	}
}

func TestChordStringRoundTrip(t *testing.T) {
	for _, k := range []Key{Ctrl('g'), Special(KeyF12), Rune(' '), {Code: KeyLeft, Mod: ModShift}} {
		got, err := ParseChord(k.String())
		if err != nil || got != k {
			t.Errorf("%s: expected round trip, got %+v %v", k, got, err)
		}
	}
}

func TestLoadKeymap(t *testing.T) {
	data := []byte(`
[keys]
glitch = ["ctrl+x", "f5"]
quit = ["ctrl+q"]
`)
	ov, err := LoadKeymap(data)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if ov.Len() != 2 {
		t.Errorf("Expected 2 overridden actions, got %d", ov.Len())
	}

	km := ov.Apply(DefaultKeymap())
	if km.Lookup(Ctrl('x')) != ActionGlitchIncrease || km.Lookup(Special(KeyF5)) != ActionGlitchIncrease {
		t.Error("Expected new glitch bindings")
	}
	if km.Lookup(Ctrl('g')) != ActionNone || km.Lookup(Special(KeyF9)) != ActionNone {
		t.Error("Expected default glitch bindings removed")
	}
	// Ctrl+C is no longer quit, other actions keep their defaults
	if km.Lookup(Ctrl('c')) != ActionNone {
		t.Error("Expected ctrl+c unbound")
	}
	if km.Lookup(Ctrl('t')) != ActionTerminalToggle {
		t.Error("Expected untouched bindings to remain")
	}

	// The base map is not modified
	if DefaultKeymap().Lookup(Ctrl('g')) != ActionGlitchIncrease {
		t.Error("Expected defaults intact")
	}
}

func TestLoadKeymapErrors(t *testing.T) {
	tests := map[string]string{
		"bad toml":       `[keys`,
		"unknown action": "[keys]\nexplode = [\"ctrl+x\"]",
		"bad chord":      "[keys]\nglitch = [\"ctrl+\"]",
		"duplicate":      "[keys]\nglitch = [\"f5\"]\nreboot = [\"F5\"]",
		"stray section":  "[other]\nx = 1",
	}
	for name, data := range tests {
		if _, err := LoadKeymap([]byte(data)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestFromTcell(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want Key
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), Rune('x')},
		{tcell.NewEventKey(tcell.KeyCtrlG, 0, tcell.ModCtrl), Ctrl('g')},
		{tcell.NewEventKey(tcell.KeyF9, 0, tcell.ModNone), Special(KeyF9)},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), Special(KeyEscape)},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), Special(KeyUp)},
		{tcell.NewEventKey(tcell.KeyRune, 'g', tcell.ModAlt), Key{Code: KeyRune, Rune: 'g', Mod: ModAlt}},
	}
	for _, tt := range tests {
		if got := FromTcell(tt.ev); got != tt.want {
			t.Errorf("%v: expected %+v, got %+v", tt.ev.Name(), tt.want, got)
		}
	}

	km := DefaultKeymap()
	if km.Lookup(FromTcell(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))) != ActionQuit {
		t.Error("Expected ctrl+c to quit")
	}
}

func TestFromPhysical(t *testing.T) {
	tests := []struct {
		name    string
		pressed []string
		chars   []rune
		mods    Mod
		want    []Key
	}{
		{"plain text", []string{"A"}, []rune{'a'}, 0, []Key{Rune('a')}},
		{"shifted text", []string{"A"}, []rune{'A'}, ModShift, []Key{Rune('A')}},
		{"ctrl letter", []string{"G"}, nil, ModCtrl, []Key{Ctrl('g')}},
		{"ctrl ignores chars", []string{"T"}, []rune{'t'}, ModCtrl, []Key{Ctrl('t')}},
		{"meta letter", []string{"N"}, nil, ModMeta, []Key{{Code: KeyRune, Rune: 'n', Mod: ModMeta}}},
		{"function key", []string{"F9"}, nil, 0, []Key{Special(KeyF9)}},
		{"numpad enter", []string{"NumpadEnter"}, nil, 0, []Key{Special(KeyEnter)}},
		{"arrow with text", []string{"ArrowUp"}, []rune{'x'}, 0, []Key{Special(KeyUp), Rune('x')}},
		{"unknown key", []string{"CapsLock"}, nil, 0, nil},
		{"digit under ctrl", []string{"Digit1"}, nil, ModCtrl, nil},
	}
	for _, tt := range tests {
		got := FromPhysical(tt.pressed, tt.chars, tt.mods)
		if len(got) != len(tt.want) {
			t.Errorf("%s: expected %+v, got %+v", tt.name, tt.want, got)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: key %d expected %+v, got %+v", tt.name, i, tt.want[i], got[i])
			}
		}
	}

	km := DefaultKeymap()
	keys := FromPhysical([]string{"Escape"}, nil, 0)
	if len(keys) != 1 || km.Lookup(keys[0]) != ActionEmergencyStop {
		t.Errorf("Expected escape to map to emergency stop, got %+v", keys)
	}
}

func TestActionNames(t *testing.T) {
	for _, name := range ActionNames() {
		a, ok := ActionByName(name)
		if !ok || a.String() != name {
			t.Errorf("%s: expected round trip, got %s %v", name, a, ok)
		}
	}
	if _, ok := ActionByName("none"); ok {
		t.Error("Expected none to be unbindable")
	}
}
