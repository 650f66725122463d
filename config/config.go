// Package config loads runtime settings: defaults, an optional TOML file,
// then VOIDGLITCH_* environment overrides. Command-line flags are applied
// last by each frontend.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/voidglitch/audio"
	"github.com/lixenwraith/voidglitch/scene"
	"github.com/lixenwraith/voidglitch/state"
)

// Color modes for the terminal frontend
const (
	ColorAuto      = "auto"
	ColorTrueColor = "truecolor"
	Color256       = "256"
)

// DefaultPort matches the static preview server convention
const DefaultPort = 4173

// PanelsConfig selects which panels are open at start
type PanelsConfig struct {
	Terminal bool `toml:"terminal"`
	Audio    bool `toml:"audio"`
	Game     bool `toml:"game"`
	Neural   bool `toml:"neural"`
}

// ServeConfig configures the static server
type ServeConfig struct {
	Host         string   `toml:"host"`
	Port         int      `toml:"port"`
	AllowedHosts []string `toml:"allowed_hosts"`
	Root         string   `toml:"root"`
}

// Config is the full runtime configuration
type Config struct {
	// Seed drives every random source; 0 picks one from the clock
	Seed      uint64            `toml:"seed"`
	Color     string            `toml:"color"`
	Particles int               `toml:"particles"`
	Keymap    string            `toml:"keymap"`
	Debug     bool              `toml:"debug"`
	Panels    PanelsConfig      `toml:"panels"`
	Audio     audio.AudioConfig `toml:"audio"`
	Serve     ServeConfig       `toml:"serve"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Color:     ColorAuto,
		Particles: scene.DefaultParticles,
		Panels: PanelsConfig{
			Terminal: true,
			Neural:   true,
		},
		Audio: *audio.DefaultAudioConfig(),
		Serve: ServeConfig{
			Host:         "0.0.0.0",
			Port:         DefaultPort,
			AllowedHosts: []string{"localhost", "127.0.0.1"},
			Root:         "web",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
// Unknown keys are an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Decode(string(data)); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode merges TOML data into c
func (c *Config) Decode(data string) error {
	md, err := toml.Decode(data, c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv applies environment overrides. Malformed numbers are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	audio.ApplyEnv(&c.Audio, getenv)

	if port := getenv("PORT"); port != "" {
		if v, err := strconv.Atoi(port); err == nil {
			c.Serve.Port = v
		}
	}
	if hosts := getenv("VOIDGLITCH_ALLOWED_HOSTS"); hosts != "" {
		c.Serve.AllowedHosts = splitList(hosts)
	}
	if seed := getenv("VOIDGLITCH_SEED"); seed != "" {
		if v, err := strconv.ParseUint(seed, 10, 64); err == nil {
			c.Seed = v
		}
	}
	if n := getenv("VOIDGLITCH_PARTICLES"); n != "" {
		if v, err := strconv.Atoi(n); err == nil {
			c.Particles = v
		}
	}
	if color := getenv("VOIDGLITCH_COLOR"); color != "" {
		c.Color = color
	}
	if km := getenv("VOIDGLITCH_KEYMAP"); km != "" {
		c.Keymap = km
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate reports every invalid setting
func (c *Config) Validate() error {
	var errs []error
	switch c.Color {
	case ColorAuto, ColorTrueColor, Color256:
	default:
		errs = append(errs, fmt.Errorf("color: unknown mode %q", c.Color))
	}
	if c.Particles < 0 || c.Particles > scene.MaxParticles {
		errs = append(errs, fmt.Errorf("particles: %d out of range 0..%d", c.Particles, scene.MaxParticles))
	}
	if c.Serve.Port < 1 || c.Serve.Port > 65535 {
		errs = append(errs, fmt.Errorf("serve.port: %d out of range", c.Serve.Port))
	}
	if c.Audio.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("audio.sample_rate: must be positive"))
	}
	for name := range c.Audio.EffectVolumes {
		if _, ok := audio.SoundByName(name); !ok {
			errs = append(errs, fmt.Errorf("audio.effect_volumes: unknown sound %q", name))
		}
	}
	return errors.Join(errs...)
}

// InitialPanels converts the panel section to the state's panel set
func (c *Config) InitialPanels() state.Panels {
	var p state.Panels
	p[state.PanelTerminal] = c.Panels.Terminal
	p[state.PanelAudio] = c.Panels.Audio
	p[state.PanelGame] = c.Panels.Game
	p[state.PanelNeural] = c.Panels.Neural
	return p
}

// Encode writes c as TOML
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
