package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/voidglitch/audio"
	"github.com/lixenwraith/voidglitch/config"
	"github.com/lixenwraith/voidglitch/constants"
	"github.com/lixenwraith/voidglitch/core"
	"github.com/lixenwraith/voidglitch/engine"
	"github.com/lixenwraith/voidglitch/input"
	"github.com/lixenwraith/voidglitch/render"
)

func main() {
	os.Exit(realMain(os.Args[1:]))
}

// realMain returns the exit code so deferred cleanup runs before os.Exit
func realMain(args []string) int {
	// Panic Recovery: Ensure terminal is reset even if main crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	fs := flag.NewFlagSet("voidglitch", flag.ContinueOnError)
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := flags.Resolve(os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "voidglitch: %v\n", err)
		return 1
	}

	if logFile := core.SetupLogging(cfg.Debug, core.LogDir); logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg, flags.Mute); err != nil {
		log.Printf("voidglitch: %v", err)
		fmt.Fprintf(os.Stderr, "voidglitch: %v\n", err)
		return 1
	}
	return 0
}

// applyColorMode steers tcell's color detection before the screen is created
func applyColorMode(mode string) {
	switch mode {
	case config.Color256:
		os.Setenv("TCELL_TRUECOLOR", "disable")
	case config.ColorTrueColor:
		os.Setenv("COLORTERM", "truecolor")
	}
}

func run(cfg *config.Config, mute bool) error {
	sound := audio.NewSoundManager(&cfg.Audio, nil)
	if err := sound.Initialize(); err != nil {
		log.Printf("Audio initialization failed: %v (continuing without audio)", err)
	}
	defer sound.Cleanup()
	sound.SetMuted(mute)

	opts, err := engine.Configure(cfg, sound)
	if err != nil {
		return err
	}

	applyColorMode(cfg.Color)
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	core.SetCrashTerminal(screen)
	defer screen.Fini()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	term := render.NewTermScreen(screen)

	app := engine.New(opts)
	app.Resize(screen.Size())
	app.Start()
	defer app.Stop()

	events := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	})

	frameTicker := time.NewTicker(constants.FrameUpdateInterval)
	defer frameTicker.Stop()

	var buttonDown bool
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !app.HandleKey(input.FromTcell(ev)) {
					return nil
				}
			case *tcell.EventMouse:
				x, y := ev.Position()
				pressed := ev.Buttons()&tcell.Button1 != 0
				app.HandleMouse(x, y, pressed && !buttonDown)
				buttonDown = pressed
			case *tcell.EventResize:
				app.Resize(ev.Size())
				term.Sync()
			}

		case <-app.Done():
			return nil

		case now := <-frameTicker.C:
			term.Show(app.Frame(now))
		}
	}
}
