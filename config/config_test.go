package config

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lixenwraith/voidglitch/state"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected valid defaults, got %v", err)
	}
	if cfg.Serve.Port != 4173 || cfg.Serve.Host != "0.0.0.0" {
		t.Errorf("Expected 0.0.0.0:4173, got %s:%d", cfg.Serve.Host, cfg.Serve.Port)
	}
	if cfg.Particles != 5000 {
		t.Errorf("Expected 5000 particles, got %d", cfg.Particles)
	}

	panels := cfg.InitialPanels()
	if !panels[state.PanelTerminal] || !panels[state.PanelNeural] || panels[state.PanelGame] || panels[state.PanelAudio] {
		t.Errorf("Unexpected default panels %v", panels)
	}

	// Defaults are independent values
	a, b := Default(), Default()
	a.Audio.EffectVolumes["glitch"] = 0
	a.Serve.AllowedHosts[0] = "x"
	if b.Audio.EffectVolumes["glitch"] == 0 || b.Serve.AllowedHosts[0] == "x" {
		t.Error("Expected Default to return fresh maps and slices")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voidglitch.toml")
	data := `
seed = 42
particles = 1000

[panels]
game = true
terminal = false

[audio]
master_volume = 0.25

[audio.effect_volumes]
pulse = 0.9

[serve]
allowed_hosts = ["all"]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Seed != 42 || cfg.Particles != 1000 {
		t.Errorf("Expected seed 42 and 1000 particles, got %d %d", cfg.Seed, cfg.Particles)
	}
	if !cfg.Panels.Game || cfg.Panels.Terminal || !cfg.Panels.Neural {
		t.Errorf("Expected panel overrides merged over defaults, got %+v", cfg.Panels)
	}
	if cfg.Audio.MasterVolume != 0.25 || cfg.Audio.EffectVolumes["pulse"] != 0.9 {
		t.Errorf("Expected audio overrides, got %+v", cfg.Audio)
	}
	// Unlisted sounds keep defaults
	if cfg.Audio.EffectVolumes["error"] != 0.4 {
		t.Errorf("Expected default error volume, got %f", cfg.Audio.EffectVolumes["error"])
	}
	if cfg.Serve.Port != DefaultPort || len(cfg.Serve.AllowedHosts) != 1 {
		t.Errorf("Unexpected serve section %+v", cfg.Serve)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}

	tests := map[string]string{
		"syntax":      "seed = ",
		"unknown key": "sede = 4",
		"wrong type":  `particles = "many"`,
	}
	for name, data := range tests {
		path := filepath.Join(dir, strings.ReplaceAll(name, " ", "_")+".toml")
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	if cfg, err := Load(""); err != nil || cfg.Particles != 5000 {
		t.Errorf("Expected defaults for empty path, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":                     "8080",
		"VOIDGLITCH_ALLOWED_HOSTS": " example.com, .void.test ,",
		"VOIDGLITCH_SEED":          "7",
		"VOIDGLITCH_PARTICLES":     "oops",
		"VOIDGLITCH_MASTER_VOLUME": "80",
		"VOIDGLITCH_CAPTURE":       "/dev/stdin",
	}
	cfg := Default()
	cfg.ApplyEnv(func(k string) string { return env[k] })

	if cfg.Serve.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Serve.Port)
	}
	if len(cfg.Serve.AllowedHosts) != 2 || cfg.Serve.AllowedHosts[1] != ".void.test" {
		t.Errorf("Expected trimmed host list, got %v", cfg.Serve.AllowedHosts)
	}
	if cfg.Seed != 7 {
		t.Errorf("Expected seed 7, got %d", cfg.Seed)
	}
	if cfg.Particles != 5000 {
		t.Errorf("Expected malformed particles ignored, got %d", cfg.Particles)
	}
	if cfg.Audio.MasterVolume != 0.8 || cfg.Audio.CapturePath != "/dev/stdin" {
		t.Errorf("Expected audio env applied, got %+v", cfg.Audio)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Color = "sepia"
	cfg.Particles = -1
	cfg.Serve.Port = 70000
	cfg.Audio.EffectVolumes["kazoo"] = 1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	for _, want := range []string{"color", "particles", "serve.port", "kazoo"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected %q in %v", want, err)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Seed = 99
	cfg.Panels.Game = true

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	back := Default()
	if err := back.Decode(buf.String()); err != nil {
		t.Fatalf("Unexpected decode error: %v", err)
	}
	if back.Seed != 99 || !back.Panels.Game {
		t.Errorf("Expected encoded values back, got %+v", back)
	}
}

func TestFlagsOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voidglitch.toml")
	if err := os.WriteFile(path, []byte("seed = 5\nparticles = 100\ncolor = \"256\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)
	if err := fs.Parse([]string{"-config", path, "-seed", "9", "-capture", "/tmp/in.wav"}); err != nil {
		t.Fatal(err)
	}
	env := map[string]string{"VOIDGLITCH_PARTICLES": "200"}
	cfg, err := f.Resolve(func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if cfg.Seed != 9 {
		t.Errorf("Expected flag seed 9, got %d", cfg.Seed)
	}
	if cfg.Particles != 200 {
		t.Errorf("Expected env particles 200, got %d", cfg.Particles)
	}
	if cfg.Color != Color256 {
		t.Errorf("Expected file color %q kept over the unset flag default, got %q", Color256, cfg.Color)
	}
	if cfg.Audio.CapturePath != "/tmp/in.wav" {
		t.Errorf("Expected capture path from flag, got %q", cfg.Audio.CapturePath)
	}
}

func TestFlagsInvalid(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f := RegisterFlags(fs)
	if err := fs.Parse([]string{"-color", "sepia"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Resolve(func(string) string { return "" }); err == nil {
		t.Error("Expected invalid color to fail")
	}
}
