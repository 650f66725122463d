package core

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

const (
	LogDir      = "logs"
	LogFileName = "voidglitch.log"
	MaxLogSize  = 10 * 1024 * 1024
)

// SetupLogging routes the standard logger. Without debug all output is
// discarded since the screen belongs to the frontend. With debug it appends
// to dir/voidglitch.log, moving a file over MaxLogSize to voidglitch.log.old.
// The caller closes the returned file; nil when logging is off or the file
// cannot be opened.
func SetupLogging(debug bool, dir string) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}

	path := filepath.Join(dir, LogFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > MaxLogSize {
		_ = os.Rename(path, path+".old")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	log.Printf("logging started")
	return f
}
