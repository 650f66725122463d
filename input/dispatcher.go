package input

import (
	"sync"
	"unicode"
)

// SequenceLen is the number of recent keys kept for sequence detection
const SequenceLen = 10

// EasterEggSequence is the sequence that fires the Easter egg
var EasterEggSequence = [SequenceLen]string{
	"up", "up", "down", "down", "left", "right", "left", "right", "b", "a",
}

// Handlers maps actions to callbacks; missing entries are ignored
type Handlers map[Action]func()

// Dispatcher resolves keys through a keymap, invokes handlers and
// tracks the recent key sequence
type Dispatcher struct {
	mu        sync.Mutex
	keymap    *Keymap
	handlers  Handlers
	easterEgg func()

	// Ring buffer of recent key tokens
	seq   [SequenceLen]string
	head  int
	count int
}

// NewDispatcher creates a dispatcher; a nil keymap uses the defaults
func NewDispatcher(km *Keymap, handlers Handlers, easterEgg func()) *Dispatcher {
	if km == nil {
		km = DefaultKeymap()
	}
	if handlers == nil {
		handlers = Handlers{}
	}
	return &Dispatcher{
		keymap:    km,
		handlers:  handlers,
		easterEgg: easterEgg,
	}
}

// Dispatch handles one key press and returns the bound action, ActionNone if unbound.
// Each call invokes at most one action handler once. Callbacks run without the lock held.
func (d *Dispatcher) Dispatch(k Key) Action {
	d.mu.Lock()
	matched := d.pushLocked(sequenceToken(k))
	action := d.keymap.Lookup(k)
	fn := d.handlers[action]
	egg := d.easterEgg
	d.mu.Unlock()

	if matched && egg != nil {
		egg()
	}
	if action != ActionNone && fn != nil {
		fn()
	}
	return action
}

// SetKeymap swaps the active keymap
func (d *Dispatcher) SetKeymap(km *Keymap) {
	d.mu.Lock()
	d.keymap = km
	d.mu.Unlock()
}

// Keymap returns the active keymap
func (d *Dispatcher) Keymap() *Keymap {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.keymap
}

// Sequence returns the recorded key tokens, oldest first
func (d *Dispatcher) Sequence() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, d.count)
	start := (d.head - d.count + SequenceLen) % SequenceLen
	for i := 0; i < d.count; i++ {
		out = append(out, d.seq[(start+i)%SequenceLen])
	}
	return out
}

// pushLocked records a token and reports a full sequence match, resetting on match
func (d *Dispatcher) pushLocked(tok string) bool {
	d.seq[d.head] = tok
	d.head = (d.head + 1) % SequenceLen
	if d.count < SequenceLen {
		d.count++
	}
	if d.count < SequenceLen {
		return false
	}

	// Full buffer: head points at the oldest token
	for i := 0; i < SequenceLen; i++ {
		if d.seq[(d.head+i)%SequenceLen] != EasterEggSequence[i] {
			return false
		}
	}
	d.count = 0
	return true
}

// sequenceToken names a key for sequence matching; modifiers are ignored
func sequenceToken(k Key) string {
	if k.Code == KeyRune {
		return string(unicode.ToLower(k.Rune))
	}
	if n, ok := codeNames[k.Code]; ok {
		return n
	}
	return ""
}
