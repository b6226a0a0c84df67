// Package experience coordinates the collaborators of an interactive 3D
// scene: it forwards resizes and ticks to the camera, world and renderer, and
// tears the whole scene graph down on Destroy.
package experience

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"stage/assets"
	"stage/experience/camera"
	"stage/experience/clock"
	"stage/experience/debug"
	"stage/experience/renderer"
	"stage/experience/resources"
	"stage/experience/sizes"
	"stage/experience/world"
	"stage/internal/config"
	"stage/internal/event"
	"stage/internal/logging"
	"stage/quark"
)

// ErrNilCanvas is returned when an experience is built without a canvas.
var ErrNilCanvas = errors.New("experience: nil canvas")

// Canvas is the drawing surface the experience renders into.
type Canvas = renderer.Canvas

// Camera is the part of the camera the experience drives.
type Camera interface {
	Resize()
	Update()
	Controls() quark.Disposer
}

// Renderer is the part of the renderer the experience drives.
type Renderer interface {
	Resize()
	Update()
	Instance() quark.Disposer
}

// World is the animated scene content.
type World interface {
	Update()
}

// DebugUI is the debug panel as far as teardown is concerned.
type DebugUI interface {
	Destroy()
}

// Debug reports whether the debug panel is active and exposes its UI.
type Debug interface {
	Active() bool
	UI() DebugUI
}

// Options configures New. The zero value of every field but Config has a
// usable default.
type Options struct {
	Config config.Config

	// Assets and Sources default to the embedded asset set.
	Assets  fs.FS
	Sources []resources.Source
	// WatchDir hot reloads sources from a directory when debug is on.
	WatchDir string

	// Now defaults to time.Now and seeds the frame clock.
	Now    func() time.Time
	Logger *zap.Logger

	// DebugInput and DebugOutput are the terminal of the debug panel.
	DebugInput  io.Reader
	DebugOutput io.Writer
}

// Experience is the single coordinator of a scene.
type Experience struct {
	log *zap.Logger

	canvas    Canvas
	scene     *quark.Scene
	debug     Debug
	sizes     *sizes.Sizes
	time      *clock.Time
	resources *resources.Resources
	camera    Camera
	world     World
	renderer  Renderer

	resizeTok event.Token
	tickTok   event.Token
	destroyed atomic.Bool
}

// New builds every collaborator in dependency order and subscribes to the
// resize and tick streams. Resources load synchronously; ctx bounds that load.
// If a collaborator fails, those already built are released and the error is
// returned.
func New(ctx context.Context, canvas Canvas, opts Options) (_ *Experience, err error) {
	if canvas == nil {
		return nil, ErrNilCanvas
	}
	log := logging.OrNop(opts.Logger).Named("experience")
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bg, err := quark.ParseHex(cfg.Renderer.ClearColor)
	if err != nil {
		return nil, fmt.Errorf("experience: clear color: %w", err)
	}

	e := &Experience{log: log, canvas: canvas}

	dbg, err := debug.New(debug.Options{
		Active: cfg.Debug,
		Input:  opts.DebugInput,
		Output: opts.DebugOutput,
	}, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("experience: debug: %w", err)
	}
	e.debug = debugPanel{dbg}
	defer func() {
		if err != nil {
			if p := dbg.UI(); p != nil {
				p.Destroy()
			}
		}
	}()

	w, h := canvas.Size()
	e.sizes = sizes.New(w, h, cfg.Renderer.MaxPixelRatio)

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	e.time = clock.New(now())
	e.scene = quark.NewScene()

	fsys, sources := opts.Assets, opts.Sources
	if fsys == nil {
		fsys = assets.FS
	}
	if sources == nil {
		sources = resources.Sources
	}
	e.resources = resources.New(fsys, sources, opts.Logger)
	defer func() {
		if err != nil {
			_ = e.resources.Close()
		}
	}()
	if err := e.resources.Load(ctx); err != nil {
		return nil, fmt.Errorf("experience: resources: %w", err)
	}
	if cfg.Debug && opts.WatchDir != "" {
		if err := e.resources.Watch(opts.WatchDir); err != nil {
			log.Warn("asset hot reload disabled", zap.String("dir", opts.WatchDir), zap.Error(err))
		}
	}

	cam := camera.New(e.sizes, e.scene, camera.Options{
		FOV:      cfg.Camera.FOV,
		Near:     cfg.Camera.Near,
		Far:      cfg.Camera.Far,
		Position: quark.V3(cfg.Camera.Position[0], cfg.Camera.Position[1], cfg.Camera.Position[2]),
		Damping:  cfg.Camera.Damping,
	})
	e.camera = cam
	e.world = world.New(e.scene, e.resources, e.time, dbg, opts.Logger)
	e.renderer = renderer.New(canvas, e.sizes, e.scene, cam.Instance(), renderer.Options{
		ClearColor: bg,
		Exposure:   cfg.Renderer.Exposure,
		Wireframe:  cfg.Renderer.Wireframe,
	}, opts.Logger)

	e.subscribe()
	log.Info("experience ready",
		zap.Int("width", w), zap.Int("height", h),
		zap.Bool("debug", cfg.Debug), zap.Int("sources", e.resources.Loaded()))
	return e, nil
}

func (e *Experience) subscribe() {
	e.resizeTok = e.sizes.OnResize(func(sizes.Viewport) { e.Resize() })
	e.tickTok = e.time.OnTick(func(clock.Frame) { e.Update() })
}

// Canvas returns the surface the experience was built with.
func (e *Experience) Canvas() Canvas { return e.canvas }

// Scene returns the root of the scene graph.
func (e *Experience) Scene() *quark.Scene { return e.scene }

// Sizes returns the viewport tracker the host feeds resizes into.
func (e *Experience) Sizes() *sizes.Sizes { return e.sizes }

// Time returns the frame clock the host steps every tick.
func (e *Experience) Time() *clock.Time { return e.time }

// Resources returns the asset loader.
func (e *Experience) Resources() *resources.Resources { return e.resources }

// Camera returns the camera driven on resize and tick.
func (e *Experience) Camera() Camera { return e.camera }

// Renderer returns the renderer driven on resize and tick.
func (e *Experience) Renderer() Renderer { return e.renderer }

// World returns the scene content updated every tick.
func (e *Experience) World() World { return e.world }

// Debug returns the debug flag and panel.
func (e *Experience) Debug() Debug { return e.debug }

// Destroyed reports whether Destroy has run.
func (e *Experience) Destroyed() bool { return e.destroyed.Load() }

// Resize forwards a viewport change to the camera, then the renderer.
func (e *Experience) Resize() {
	if e.destroyed.Load() {
		return
	}
	e.camera.Resize()
	e.renderer.Resize()
}

// Update runs one frame: camera, world, then renderer.
func (e *Experience) Update() {
	if e.destroyed.Load() {
		return
	}
	e.camera.Update()
	e.world.Update()
	e.renderer.Update()
}

// Destroy unsubscribes from the host streams and releases every resource the
// scene graph, the camera controls, the renderer and the loader hold. Failures
// are isolated so one broken node does not keep the rest alive; they are
// logged and returned combined. Only the first call does anything.
func (e *Experience) Destroy() error {
	if !e.destroyed.CompareAndSwap(false, true) {
		return nil
	}
	e.sizes.Off(e.resizeTok)
	e.time.Off(e.tickTok)

	err := quark.Dispose(e.scene)
	err = multierr.Append(err, guard("camera controls", func() error { return e.camera.Controls().Dispose() }))
	err = multierr.Append(err, guard("renderer", func() error { return e.renderer.Instance().Dispose() }))
	err = multierr.Append(err, guard("resources", e.resources.Close))

	if e.debug.Active() {
		err = multierr.Append(err, guard("debug ui", func() error {
			if ui := e.debug.UI(); ui != nil {
				ui.Destroy()
			}
			return nil
		}))
	}

	for _, ferr := range multierr.Errors(err) {
		e.log.Warn("teardown failure", zap.Error(ferr))
	}
	e.log.Info("experience destroyed", zap.Int("failures", len(multierr.Errors(err))))
	return err
}

// guard runs fn, turning a panic into an error.
func guard(what string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("experience: release %s: panic: %v", what, r)
		}
	}()
	if err := fn(); err != nil {
		return fmt.Errorf("experience: release %s: %w", what, err)
	}
	return nil
}

type debugPanel struct{ d *debug.Debug }

func (p debugPanel) Active() bool { return p.d.Active() }

func (p debugPanel) UI() DebugUI {
	if ui := p.d.UI(); ui != nil {
		return ui
	}
	return nil
}
