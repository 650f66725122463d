package core

import "sync"

// Finisher restores the output device before a crash report is printed
type Finisher interface {
	Fini()
}

var (
	crashMu       sync.Mutex
	crashTerminal Finisher
)

// SetCrashTerminal registers the screen to restore when a goroutine panics
func SetCrashTerminal(f Finisher) {
	crashMu.Lock()
	crashTerminal = f
	crashMu.Unlock()
}

func takeCrashTerminal() Finisher {
	crashMu.Lock()
	defer crashMu.Unlock()
	f := crashTerminal
	crashTerminal = nil
	return f
}

// Go runs a function in a new goroutine with panic recovery.
// Use this instead of the 'go' keyword to ensure terminal cleanup on crash.
func Go(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				HandleCrash(r)
			}
		}()
		fn()
	}()
}
