package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/voidglitch/core"
)

func TestRealMainFlagErrors(t *testing.T) {
	t.Setenv("VOIDGLITCH_AUDIO_ENABLED", "false")
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	if code := realMain([]string{"-no-such-flag"}); code != 2 {
		t.Errorf("Expected exit code 2 for unknown flag, got %d", code)
	}
	if code := realMain([]string{"-h"}); code != 0 {
		t.Errorf("Expected exit code 0 for help, got %d", code)
	}
	if code := realMain([]string{"-color", "bogus"}); code != 1 {
		t.Errorf("Expected exit code 1 for invalid config, got %d", code)
	}
}

func TestRealMainLogsStartupFailure(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("VOIDGLITCH_AUDIO_ENABLED", "false")
	t.Cleanup(func() { log.SetOutput(io.Discard) })

	missing := filepath.Join(dir, "missing.toml")
	if code := realMain([]string{"-debug", "-keymap", missing}); code != 1 {
		t.Fatalf("Expected exit code 1, got %d", code)
	}

	data, err := os.ReadFile(filepath.Join(dir, core.LogDir, core.LogFileName))
	if err != nil {
		t.Fatalf("Expected log file: %v", err)
	}
	if !strings.Contains(string(data), "keymap") {
		t.Errorf("Expected startup error in log, got %q", data)
	}
}
