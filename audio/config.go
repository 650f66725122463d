package audio

import (
	"encoding/json"
	"os"
	"strconv"
)

// AudioConfig holds sound and capture settings
type AudioConfig struct {
	Enabled       bool               `toml:"enabled"`
	MasterVolume  float64            `toml:"master_volume"`
	EffectVolumes map[string]float64 `toml:"effect_volumes"`
	SampleRate    int                `toml:"sample_rate"`

	// CapturePath is a WAV stream (file or FIFO) feeding the visualizer
	CapturePath string `toml:"capture"`
}

// DefaultAudioConfig returns the stock settings
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		EffectVolumes: map[string]float64{
			"glitch": 0.5,
			"pulse":  0.3,
			"error":  0.4,
		},
		SampleRate: 44100,
	}
}

// Volume returns the effective volume of a sound, master included
func (c *AudioConfig) Volume(s SoundType) float64 {
	v, ok := c.EffectVolumes[s.String()]
	if !ok {
		v = 1
	}
	return clampVolume(v) * clampVolume(c.MasterVolume)
}

func clampVolume(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// LoadAudioConfig loads audio configuration from environment variables
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()
	ApplyEnv(cfg, os.Getenv)
	return cfg
}

// ApplyEnv overrides cfg from VOIDGLITCH_* variables; malformed values are ignored
func ApplyEnv(cfg *AudioConfig, getenv func(string) string) {
	if enabled := getenv("VOIDGLITCH_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume is 0-100
	if volume := getenv("VOIDGLITCH_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = clampVolume(float64(val) / 100.0)
		}
	}

	if effectVols := getenv("VOIDGLITCH_SFX_VOLUMES"); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err == nil {
			if cfg.EffectVolumes == nil {
				cfg.EffectVolumes = make(map[string]float64, len(volumes))
			}
			for name, v := range volumes {
				if _, ok := SoundByName(name); ok {
					cfg.EffectVolumes[name] = v
				}
			}
		}
	}

	if sampleRate := getenv("VOIDGLITCH_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	if capture := getenv("VOIDGLITCH_CAPTURE"); capture != "" {
		cfg.CapturePath = capture
	}
}
