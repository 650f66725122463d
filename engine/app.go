// Package engine wires the shared state, timers, effect loops and panels into
// one application that frontends feed with input and poll for frames.
package engine

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/lixenwraith/voidglitch/audio"
	"github.com/lixenwraith/voidglitch/console"
	"github.com/lixenwraith/voidglitch/constants"
	"github.com/lixenwraith/voidglitch/core"
	"github.com/lixenwraith/voidglitch/effect"
	"github.com/lixenwraith/voidglitch/game"
	"github.com/lixenwraith/voidglitch/input"
	"github.com/lixenwraith/voidglitch/loop"
	"github.com/lixenwraith/voidglitch/render"
	"github.com/lixenwraith/voidglitch/scene"
	"github.com/lixenwraith/voidglitch/state"
	"github.com/lixenwraith/voidglitch/status"
)

const loopGame = "game"

// Options configures an App
type Options struct {
	Seed      uint64 // 0 seeds from the clock
	Particles int
	Panels    state.Panels
	Keymap    *input.Keymap
	Sound     *audio.SoundManager // nil plays nothing
	Capture   string              // WAV stream for the visualizer, empty for synthetic
	Debug     bool
	Clock     TimeProvider
}

// App owns every loop of one running session
type App struct {
	opts     Options
	clock    TimeProvider
	store    *state.Store
	timers   *Timers
	registry *status.Registry
	comp     *render.Compositor
	keys     *input.Dispatcher
	sound    *audio.SoundManager

	console     *console.Console
	consoleView *console.View
	board       *game.Board
	gameView    *game.View
	visualizer  *effect.Visualizer
	synthetic   *audio.SyntheticSource
	scene       *scene.Scene
	title       *effect.DistortedText

	// always-on background runners
	background []*effect.Runner
	neural     *effect.Runner
	visual     *effect.Runner

	// layers redrawn on every Frame
	terminalLayer *render.Layer
	gameLayer     *render.Layer
	hudLayer      *render.Layer

	fullscreen []*render.Layer
	titleLayer *render.Layer
	subLayer   *render.Layer

	loops *loop.Group

	mu        sync.Mutex
	rng       *rand.Rand
	layout    Layout
	hovering  bool
	source    audio.Source
	sourceGen uint64
	started   bool

	quit     chan struct{}
	quitOnce sync.Once
}

// New builds a stopped app. Call Resize before the first Frame.
func New(opts Options) *App {
	if opts.Clock == nil {
		opts.Clock = NewMonotonicTimeProvider()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	if opts.Keymap == nil {
		opts.Keymap = input.DefaultKeymap()
	}

	a := &App{
		opts:     opts,
		clock:    opts.Clock,
		store:    state.NewStore(state.Initial(opts.Panels)),
		registry: status.NewRegistry(),
		comp:     render.NewCompositor(0, 0),
		sound:    opts.Sound,
		loops:    loop.NewGroup(),
		rng:      effect.NewRand(seed),
		quit:     make(chan struct{}),
	}
	a.timers = NewTimers(a.store, effect.NewRand(seed+1))

	a.console = console.New(effect.NewRand(seed+2), console.Hooks{Glitch: a.screenGlitch})
	a.consoleView = console.NewView(a.console, console.NewBootSequence(), a.clock.Now())

	a.board = game.NewBoard(game.DefaultConfig(), effect.NewRand(seed+3))
	a.board.OnScore(a.onScore)
	a.board.OnGameOver(a.onGameOver)
	a.gameView = game.NewView(a.board)

	a.synthetic = audio.NewSyntheticSource(effect.NewRand(seed + 4))
	a.visualizer = effect.NewVisualizer(a.synthetic)
	a.scene = scene.New(effect.NewRand(seed+5), opts.Particles)
	a.title = effect.NewDistortedText(constants.StatusInitializing)

	a.keys = input.NewDispatcher(opts.Keymap, a.handlers(), a.easterEgg)

	a.buildLayers(seed)
	a.store.Watch(a.onState)
	return a
}

func (a *App) runner(name string, d effect.Drawer, l *render.Layer, interval time.Duration, seed uint64) *effect.Runner {
	return effect.NewRunner(name, d, l, interval, a.store.Intensity, effect.NewRand(seed)).
		WithCounter(a.registry.Counter("ticks." + name))
}

func (a *App) buildLayers(seed uint64) {
	glitchLayer := render.NewLayer(render.BlendScreen)
	gridLayer := render.NewLayer(render.BlendAdd)
	sceneLayer := render.NewLayer(render.BlendAdd)
	a.titleLayer = render.NewLayer(render.BlendAlpha)
	a.subLayer = render.NewLayer(render.BlendAlpha)
	neuralLayer := render.NewLayer(render.BlendAlpha)
	visualLayer := render.NewLayer(render.BlendAlpha)
	a.terminalLayer = render.NewLayer(render.BlendAlpha)
	a.gameLayer = render.NewLayer(render.BlendAlpha)
	a.hudLayer = render.NewLayer(render.BlendAlpha)
	a.fullscreen = []*render.Layer{glitchLayer, gridLayer, sceneLayer, a.hudLayer}

	a.comp.Register(gridLayer, render.PriorityGrid)
	a.comp.Register(glitchLayer, render.PriorityGlitch)
	a.comp.Register(sceneLayer, render.PriorityScene)
	a.comp.Register(neuralLayer, render.PriorityNeural)
	a.comp.Register(visualLayer, render.PriorityVisualizer)
	a.comp.Register(a.titleLayer, render.PriorityPanel)
	a.comp.Register(a.subLayer, render.PriorityPanel)
	a.comp.Register(a.gameLayer, render.PriorityPanel)
	a.comp.Register(a.terminalLayer, render.PriorityPanel)
	a.comp.Register(a.hudLayer, render.PriorityOverlay)

	a.background = []*effect.Runner{
		a.runner("glitch", effect.GlitchBackground{}, glitchLayer, constants.GlitchBackgroundInterval, seed+10).
			WithOpacity(effect.TrianglePulse(0.5, 0.8, 2*time.Second)),
		a.runner("grid", &effect.CyberGrid{}, gridLayer, constants.CyberGridInterval, seed+11).
			WithOpacity(func(time.Duration, float64) float64 { return 0.6 }),
		a.runner("scene", a.scene, sceneLayer, constants.SceneFrameInterval, seed+12),
		a.runner("title", a.title, a.titleLayer, constants.DistortedTextInterval, seed+13),
		a.runner("subtitle", effect.NewDistortedText(constants.SubtitleText), a.subLayer, constants.DistortedTextInterval, seed+14),
	}
	a.neural = a.runner("neural", effect.NewNeuralNet(effect.NewRand(seed+15)), neuralLayer, constants.NeuralFrameInterval, seed+16).
		WithOpacity(effect.FadeIn(1, 500*time.Millisecond))
	a.visual = a.runner("visualizer", a.visualizer, visualLayer, constants.VisualizerFrameInterval, seed+17)

	a.terminalLayer.SetVisible(false)
	a.gameLayer.SetVisible(false)
}

func (a *App) handlers() input.Handlers {
	return input.Handlers{
		input.ActionGlitchIncrease: a.Distress,
		input.ActionTerminalToggle: func() { a.toggle(state.PanelTerminal) },
		input.ActionAudioToggle:    func() { a.toggle(state.PanelAudio) },
		input.ActionGameToggle:     func() { a.toggle(state.PanelGame) },
		input.ActionNeuralToggle:   func() { a.toggle(state.PanelNeural) },
		input.ActionReboot:         a.Reboot,
		input.ActionEmergencyStop:  a.EmergencyStop,
		input.ActionQuit:           a.requestQuit,
	}
}

// Start acquires the timers, background loops and the loops of visible panels
func (a *App) Start() {
	a.mu.Lock()
	if a.started {
		a.mu.Unlock()
		return
	}
	a.started = true
	a.mu.Unlock()

	for _, r := range a.background {
		r.Start()
	}
	a.applyPanels(state.Panels{}, a.store.Snapshot().Panels)
	a.timers.Start()
	log.Printf("engine started, panels %v", a.store.Snapshot().Panels)
}

// Stop releases every loop and the capture source. Safe to call twice.
func (a *App) Stop() {
	a.mu.Lock()
	if !a.started {
		a.mu.Unlock()
		return
	}
	a.started = false
	a.mu.Unlock()

	a.timers.Stop()
	a.loops.StopAll()
	for _, r := range a.background {
		r.Stop()
	}
	a.neural.Stop()
	a.visual.Stop()
	a.releaseSource()
	log.Printf("engine stopped")
}

// Done is closed when the quit action fires
func (a *App) Done() <-chan struct{} {
	return a.quit
}

// Store exposes the shared state
func (a *App) Store() *state.Store {
	return a.store
}

// Registry exposes loop and frame metrics
func (a *App) Registry() *status.Registry {
	return a.registry
}

// Console returns the terminal panel model
func (a *App) Console() *console.Console {
	return a.console
}

// Board returns the corruption game
func (a *App) Board() *game.Board {
	return a.board
}

// Visualizer returns the spectrum drawer
func (a *App) Visualizer() *effect.Visualizer {
	return a.visualizer
}

// Layout returns the current element placement
func (a *App) Layout() Layout {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.layout
}

// Resize re-lays out every layer for a w x h cell screen
func (a *App) Resize(w, h int) {
	lay := ComputeLayout(w, h)
	a.mu.Lock()
	a.layout = lay
	a.mu.Unlock()

	a.comp.Resize(w, h)
	for _, l := range a.fullscreen {
		l.SetBounds(0, 0, w, h)
	}
	setRect(a.titleLayer, lay.Title)
	setRect(a.subLayer, lay.Subtitle)
	setRect(a.neural.Layer(), lay.Neural)
	setRect(a.visual.Layer(), lay.Visualizer)
	setRect(a.terminalLayer, lay.Terminal)
	setRect(a.gameLayer, lay.Game)
}

func setRect(l *render.Layer, r Rect) {
	l.SetBounds(r.X, r.Y, r.W, r.H)
}

// Distress raises intensity by one step and logs the override
func (a *App) Distress() {
	a.store.Update(func(s state.State) state.State {
		return s.Distort(constants.DistressStep)
	})
}

// Reboot resets the state, re-arms the boot timer and replays the terminal boot text
func (a *App) Reboot() {
	a.store.Update(state.State.Reboot)
	a.timers.Rearm()
	a.consoleView.Restart(a.clock.Now())
}

// EmergencyStop zeroes intensity and suspends the event timer until reboot
func (a *App) EmergencyStop() {
	a.store.Update(state.State.EmergencyStop)
}

func (a *App) requestQuit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

func (a *App) toggle(p state.Panel) {
	a.store.Update(func(s state.State) state.State {
		return s.TogglePanel(p)
	})
}

func (a *App) easterEgg() {
	until := a.clock.Now().Add(constants.GodModeDuration)
	a.store.Update(func(s state.State) state.State {
		return s.WithGodMode(until)
	})
	log.Printf("god mode until %s", until.Format(time.TimeOnly))
}

func (a *App) screenGlitch() {
	until := a.clock.Now().Add(constants.ScreenGlitchDuration)
	a.store.Update(func(s state.State) state.State {
		return s.WithGlitch(until)
	})
}

func (a *App) onScore(score int) {
	a.store.Update(func(s state.State) state.State {
		return s.WithScore(score)
	})
}

func (a *App) onGameOver(score int) {
	log.Printf("game over, score %d", score)
	a.play(audio.SoundError)
}

func (a *App) play(s audio.SoundType) {
	if a.sound != nil {
		a.sound.Play(s)
	}
}

// onState follows store transitions. Runs in the goroutine that called Update.
func (a *App) onState(prev, next state.State) {
	a.registry.Gauge("intensity").Set(next.Intensity)
	if prev.Status != next.Status {
		a.title.SetText(next.Status)
		a.registry.Label("status").Store(next.Status)
	}
	if prev.Panels != next.Panels {
		a.mu.Lock()
		started := a.started
		a.mu.Unlock()
		if started {
			a.applyPanels(prev.Panels, next.Panels)
		}
	}
}

// applyPanels acquires or releases the loops of every panel that changed
func (a *App) applyPanels(prev, next state.Panels) {
	for _, p := range state.AllPanels() {
		if prev[p] == next[p] {
			continue
		}
		on := next[p]
		switch p {
		case state.PanelTerminal:
			if on {
				a.consoleView.Restart(a.clock.Now())
			}
			a.terminalLayer.SetVisible(on)
		case state.PanelAudio:
			if on {
				a.visual.Start()
				a.acquireSource()
			} else {
				a.visual.Stop()
				a.releaseSource()
			}
		case state.PanelGame:
			if on {
				a.board.Reset()
				a.gameLayer.SetVisible(true)
				a.loops.Set(loopGame, loop.Every(constants.GameTickInterval, a.gameTick))
			} else {
				a.loops.Release(loopGame)
				a.gameLayer.SetVisible(false)
			}
		case state.PanelNeural:
			if on {
				a.neural.Start()
			} else {
				a.neural.Stop()
			}
		}
		log.Printf("panel %s on=%v", p, on)
	}
}

func (a *App) gameTick(time.Time) {
	res := a.board.Tick()
	a.registry.Gauge("game.level").Set(res.Level)
}

// acquireSource opens the capture stream off the calling goroutine and swaps it
// into the visualizer unless the panel was closed meanwhile.
// The visualizer source only changes under a.mu.
func (a *App) acquireSource() {
	a.mu.Lock()
	a.sourceGen++
	gen := a.sourceGen
	rng := effect.NewRand(a.rng.Uint64())
	a.mu.Unlock()

	path := a.opts.Capture
	core.Go(func() {
		src, err := audio.Acquire(context.Background(), path, constants.CaptureTimeout, rng)
		if err != nil && !errors.Is(err, audio.ErrNoCapture) {
			log.Printf("audio capture unavailable, using synthetic source: %v", err)
		}

		a.mu.Lock()
		if gen != a.sourceGen {
			a.mu.Unlock()
			src.Close()
			return
		}
		old := a.source
		a.source = src
		a.visualizer.SetSource(src)
		a.mu.Unlock()

		a.registry.Label("audio.source").Store(a.visualizer.Label())
		if old != nil {
			old.Close()
		}
	})
}

// releaseSource returns the visualizer to the shared synthetic source
func (a *App) releaseSource() {
	a.mu.Lock()
	a.sourceGen++
	old := a.source
	a.source = nil
	a.visualizer.SetSource(a.synthetic)
	a.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			log.Printf("audio source close: %v", err)
		}
	}
}
