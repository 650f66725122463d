// Package console is the fake shell panel: a fixed command table with canned
// replies, an input line with recall and the typed boot sequence.
package console

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

// Entry is one executed command with its reply
type Entry struct {
	Input  string
	Output []string
	At     time.Time
}

// Console holds displayed entries, the recall list and the edit line
type Console struct {
	mu      sync.Mutex
	rng     *rand.Rand
	hooks   Hooks
	now     func() time.Time
	entries []Entry
	history []string
	index   int // recall position, -1 is the fresh line
	line    []rune
	cursor  int

	// pending hooks run after the lock is released
	pending []func()
}

// New creates an empty console
func New(rng *rand.Rand, hooks Hooks) *Console {
	return &Console{
		rng:   rng,
		hooks: hooks,
		now:   time.Now,
		index: -1,
	}
}

// Execute runs input through the command table and returns the reply.
// It does not touch the edit line or the recall list.
func (c *Console) Execute(input string) []string {
	c.mu.Lock()
	out := c.executeLocked(input)
	hooks := c.takePendingLocked()
	c.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	return out
}

func (c *Console) takePendingLocked() []func() {
	hooks := c.pending
	c.pending = nil
	return hooks
}

func (c *Console) executeLocked(input string) []string {
	cmd := strings.ToLower(strings.TrimSpace(input))
	fn, ok := commands[cmd]
	var out []string
	if ok {
		out = fn(c)
	} else {
		out = []string{NotFound(input)}
	}

	if cmd != "clear" {
		c.entries = append(c.entries, Entry{Input: input, Output: out, At: c.now()})
	}
	c.history = append(c.history, input)
	c.index = -1
	return out
}

// Submit executes the edit line. Blank input does nothing and returns false.
func (c *Console) Submit() bool {
	c.mu.Lock()
	line := string(c.line)
	if strings.TrimSpace(line) == "" {
		c.mu.Unlock()
		return false
	}
	c.line = c.line[:0]
	c.cursor = 0
	c.executeLocked(line)
	hooks := c.takePendingLocked()
	c.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	return true
}

// Insert types r at the cursor
func (c *Console) Insert(r rune) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.line = append(c.line, 0)
	copy(c.line[c.cursor+1:], c.line[c.cursor:])
	c.line[c.cursor] = r
	c.cursor++
}

// Backspace deletes the rune before the cursor
func (c *Console) Backspace() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor == 0 {
		return
	}
	c.line = append(c.line[:c.cursor-1], c.line[c.cursor:]...)
	c.cursor--
}

// CursorLeft moves the cursor one rune left
func (c *Console) CursorLeft() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor > 0 {
		c.cursor--
	}
}

// CursorRight moves the cursor one rune right
func (c *Console) CursorRight() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor < len(c.line) {
		c.cursor++
	}
}

// HistoryUp recalls the next older input
func (c *Console) HistoryUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.index < len(c.history)-1 {
		c.index++
		c.setLineLocked(c.history[len(c.history)-1-c.index])
	}
}

// HistoryDown recalls the next newer input, or the fresh line past the newest
func (c *Console) HistoryDown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.index > 0:
		c.index--
		c.setLineLocked(c.history[len(c.history)-1-c.index])
	case c.index == 0:
		c.index = -1
		c.setLineLocked("")
	}
}

func (c *Console) setLineLocked(s string) {
	c.line = []rune(s)
	c.cursor = utf8.RuneCountInString(s)
}

// Line returns the edit line and cursor position
func (c *Console) Line() (string, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return string(c.line), c.cursor
}

// Entries returns a copy of the displayed entries
func (c *Console) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// History returns a copy of every submitted input, oldest first
func (c *Console) History() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.history))
	copy(out, c.history)
	return out
}

// HistoryIndex returns the recall position, -1 on the fresh line
func (c *Console) HistoryIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}
