package console

import (
	"time"
	"unicode/utf8"

	"github.com/lixenwraith/voidglitch/constants"
)

// BootLines are typed when the console first opens
var BootLines = []string{
	"INITIALIZING NEURAL INTERFACE...",
	"LOADING CONSCIOUSNESS MATRIX...",
	"DETECTING REALITY ANOMALIES...",
	`SYSTEM READY. TYPE "help" FOR COMMANDS.`,
}

// BootSequence types lines one character at a time and hides itself
// a fixed delay after the last character. It is a pure function of elapsed time.
type BootSequence struct {
	lines     []string
	charDelay time.Duration
	hideDelay time.Duration
	total     int
}

// NewBootSequence creates the standard boot typer
func NewBootSequence() *BootSequence {
	return NewBootSequenceWith(BootLines, constants.BootTypeDelay, constants.BootHideDelay)
}

// NewBootSequenceWith creates a typer with custom lines and timing
func NewBootSequenceWith(lines []string, charDelay, hideDelay time.Duration) *BootSequence {
	total := 0
	for _, l := range lines {
		total += utf8.RuneCountInString(l)
	}
	if charDelay <= 0 {
		charDelay = time.Millisecond
	}
	return &BootSequence{
		lines:     lines,
		charDelay: charDelay,
		hideDelay: hideDelay,
		total:     total,
	}
}

// TypingDuration is the time until the last character appears
func (b *BootSequence) TypingDuration() time.Duration {
	return time.Duration(b.total) * b.charDelay
}

// At returns the partially typed lines at elapsed, and whether the sequence is still shown
func (b *BootSequence) At(elapsed time.Duration) ([]string, bool) {
	if elapsed >= b.TypingDuration()+b.hideDelay {
		return nil, false
	}
	if elapsed < 0 {
		elapsed = 0
	}

	typed := int(elapsed / b.charDelay)
	out := make([]string, 0, len(b.lines))
	for _, l := range b.lines {
		n := utf8.RuneCountInString(l)
		if typed >= n {
			out = append(out, l)
			typed -= n
			continue
		}
		if typed > 0 {
			out = append(out, string([]rune(l)[:typed]))
		}
		break
	}
	return out, true
}
