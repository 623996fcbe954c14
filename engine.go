package stage

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// frameSampler is implemented by trackers that read input once per frame
// before actors update.
type frameSampler interface {
	BeginFrame(e *Engine)
}

// Engine drives a scene at a fixed rate and renders it. It implements
// ebiten.Game.
type Engine struct {
	// Pointers receives the CapturePointer trait's calls. NewEngine sets an
	// EbitenPointerTracker; nil disables pointer notifications.
	Pointers PointerTracker

	config RunConfig
	scene  *Scene
	ctx    *EbitenContext
	fps    *fpsOverlay
	script *Script
	logger Logger
	frames uint64
}

// NewEngine creates an engine for cfg. Zero sizes and rates take their
// defaults.
func NewEngine(cfg RunConfig) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		Pointers: NewEbitenPointerTracker(),
		config:   cfg,
		ctx:      NewEbitenContext(cfg.Background),
	}
	if cfg.ShowFPS {
		e.fps = newFPSOverlay()
	}
	return e
}

// Config returns the engine's run config with defaults applied.
func (e *Engine) Config() RunConfig {
	return e.config
}

// SetScene makes s the scene updated and drawn each frame. A scene without
// a camera gets one covering the screen.
func (e *Engine) SetScene(s *Scene) {
	if e.scene != nil {
		e.scene.pointers = nil
	}
	e.scene = s
	if s == nil {
		return
	}
	s.pointers = e.Pointers
	if s.Camera == nil {
		s.Camera = NewCamera(e.ScreenBounds())
	}
	if e.config.Debug {
		s.SetDebug(true)
	}
	if s.logger == nil && e.logger != nil {
		s.SetLogger(e.logger)
	}
}

// Scene returns the current scene, or nil.
func (e *Engine) Scene() *Scene {
	return e.scene
}

// SetLogger sets the logger handed to scenes that have none.
func (e *Engine) SetLogger(l Logger) {
	e.logger = l
	if e.scene != nil && e.scene.logger == nil {
		e.scene.SetLogger(l)
	}
}

// Logger returns the engine logger, or the package default.
func (e *Engine) Logger() Logger {
	if e.logger == nil {
		return defaultLogger
	}
	return e.logger
}

// SetScript attaches a scripted input sequence, advanced once per update.
func (e *Engine) SetScript(s *Script) {
	e.script = s
}

// Delta returns the fixed frame step in milliseconds.
func (e *Engine) Delta() float64 {
	return 1000 / float64(e.config.TPS)
}

// Frames returns the number of updates run so far.
func (e *Engine) Frames() uint64 {
	return e.frames
}

// ScreenBounds returns the screen rectangle in screen coordinates. A nil
// engine has an empty screen.
func (e *Engine) ScreenBounds() BoundingBox {
	if e == nil {
		return BoundingBox{}
	}
	return BoxFromSize(0, 0, float64(e.config.Width), float64(e.config.Height))
}

// Update runs one frame: the input script, pointer sampling, then the scene.
func (e *Engine) Update() error {
	if e.script != nil {
		e.script.step(e)
	}
	if fs, ok := e.Pointers.(frameSampler); ok {
		fs.BeginFrame(e)
	}
	if e.scene != nil {
		e.scene.Update(e, e.Delta())
	}
	e.frames++
	return nil
}

// Draw renders the scene into screen.
func (e *Engine) Draw(screen *ebiten.Image) {
	e.ctx.SetTarget(screen)
	if e.scene != nil {
		e.scene.Draw(e.ctx, e.Delta())
	} else {
		e.ctx.Clear()
	}
	if e.fps != nil {
		e.fps.draw(screen, e.Delta())
	}
}

// Layout returns the configured screen size regardless of the window size.
func (e *Engine) Layout(_, _ int) (int, int) {
	return e.config.Width, e.config.Height
}

// Run opens a window for the engine's config and runs until the window
// closes.
func (e *Engine) Run() error {
	cfg := e.config
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(e)
}

// Run opens a window for cfg and runs scene until the window closes.
func Run(scene *Scene, cfg RunConfig) error {
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	e := NewEngine(cfg)
	e.SetScene(scene)
	return e.Run()
}
