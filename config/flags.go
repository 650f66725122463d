package config

import (
	"flag"
	"fmt"
)

// Flags are the command-line settings shared by the frontends.
// Flags given explicitly win over the file and the environment.
type Flags struct {
	fs *flag.FlagSet

	ConfigPath string
	Keymap     string
	Seed       uint64
	Debug      bool
	Color      string
	Mute       bool
	Capture    string
	Particles  int
}

// RegisterFlags defines the shared flags on fs
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVar(&f.ConfigPath, "config", "", "TOML config file")
	fs.StringVar(&f.Keymap, "keymap", "", "TOML keymap override file")
	fs.Uint64Var(&f.Seed, "seed", 0, "Random seed, 0 picks one from the clock")
	fs.BoolVar(&f.Debug, "debug", false, "Write logs/voidglitch.log and show metrics")
	fs.StringVar(&f.Color, "color", ColorAuto, "Color mode: auto, truecolor, 256")
	fs.BoolVar(&f.Mute, "mute", false, "Start with sound effects muted")
	fs.StringVar(&f.Capture, "capture", "", "WAV file or FIFO feeding the audio visualizer")
	fs.IntVar(&f.Particles, "particles", 0, "Particle count of the 3D scene")
	return f
}

// Resolve loads the config file, applies the environment, then the flags
// that were set, and validates the result. Call after fs.Parse.
func (f *Flags) Resolve(getenv func(string) string) (*Config, error) {
	cfg, err := Load(f.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(getenv)

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "keymap":
			cfg.Keymap = f.Keymap
		case "seed":
			cfg.Seed = f.Seed
		case "debug":
			cfg.Debug = f.Debug
		case "color":
			cfg.Color = f.Color
		case "capture":
			cfg.Audio.CapturePath = f.Capture
		case "particles":
			cfg.Particles = f.Particles
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
