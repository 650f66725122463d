package engine

import (
	"fmt"

	"github.com/lixenwraith/voidglitch/audio"
	"github.com/lixenwraith/voidglitch/config"
	"github.com/lixenwraith/voidglitch/input"
)

// Configure builds app options from a resolved config, loading the keymap
// override file when one is set
func Configure(cfg *config.Config, sound *audio.SoundManager) (Options, error) {
	km := input.DefaultKeymap()
	if cfg.Keymap != "" {
		ov, err := input.LoadKeymapFile(cfg.Keymap)
		if err != nil {
			return Options{}, fmt.Errorf("keymap: %w", err)
		}
		km = ov.Apply(km)
	}
	return Options{
		Seed:      cfg.Seed,
		Particles: cfg.Particles,
		Panels:    cfg.InitialPanels(),
		Keymap:    km,
		Sound:     sound,
		Capture:   cfg.Audio.CapturePath,
		Debug:     cfg.Debug,
	}, nil
}
