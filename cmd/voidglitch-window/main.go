package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lixenwraith/voidglitch/audio"
	"github.com/lixenwraith/voidglitch/config"
	"github.com/lixenwraith/voidglitch/core"
	"github.com/lixenwraith/voidglitch/engine"
	"github.com/lixenwraith/voidglitch/window"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

// realMain returns the exit code so deferred cleanup runs before os.Exit
func realMain(args []string) int {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	fs := flag.NewFlagSet("voidglitch-window", flag.ContinueOnError)
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := flags.Resolve(os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "voidglitch-window: %v\n", err)
		return 1
	}

	if logFile := core.SetupLogging(cfg.Debug, core.LogDir); logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg, flags.Mute); err != nil {
		log.Printf("voidglitch-window: %v", err)
		fmt.Fprintf(os.Stderr, "voidglitch-window: %v\n", err)
		return 1
	}
	return 0
}

func run(cfg *config.Config, mute bool) error {
	out := &audio.PullOutput{}
	sound := audio.NewSoundManager(&cfg.Audio, out)
	if err := sound.Initialize(); err != nil {
		log.Printf("Audio initialization failed: %v (continuing without audio)", err)
	} else if sound.Initialized() {
		if player, err := window.StartAudio(out); err != nil {
			log.Printf("Audio player failed: %v (continuing without audio)", err)
		} else {
			defer player.Close()
		}
	}
	defer sound.Cleanup()
	sound.SetMuted(mute)

	opts, err := engine.Configure(cfg, sound)
	if err != nil {
		return err
	}

	app := engine.New(opts)
	w, err := window.New(app)
	if err != nil {
		return err
	}
	app.Start()
	defer app.Stop()

	return w.Run()
}
