// Package renderer draws the experience's scene into its canvas.
package renderer

import (
	"go.uber.org/zap"

	"stage/experience/sizes"
	"stage/internal/logging"
	"stage/quark"
)

// Canvas is the drawing surface the renderer owns the size of.
type Canvas interface {
	quark.Target
	// Resize reallocates the surface in device pixels.
	Resize(w, h int)
	// Present publishes the finished frame to the host.
	Present() error
}

// Options describes renderer output.
type Options struct {
	ClearColor quark.Color
	Exposure   float32
	Wireframe  bool
}

// Renderer owns a quark renderer bound to a canvas, a scene and a camera.
type Renderer struct {
	log      *zap.Logger
	instance *quark.Renderer
	canvas   Canvas
	sizes    *sizes.Sizes
	scene    *quark.Scene
	camera   *quark.PerspectiveCamera

	failed bool
}

// New configures the renderer and sizes the canvas to the current viewport.
func New(canvas Canvas, sz *sizes.Sizes, scene *quark.Scene, cam *quark.PerspectiveCamera, opts Options, log *zap.Logger) *Renderer {
	inst := quark.NewRenderer()
	inst.ClearColor = opts.ClearColor
	inst.Exposure = opts.Exposure
	inst.Depth = true
	if opts.Wireframe {
		inst.Mode = quark.RenderWireframe
	}
	r := &Renderer{
		log:      logging.OrNop(log).Named("renderer"),
		instance: inst,
		canvas:   canvas,
		sizes:    sz,
		scene:    scene,
		camera:   cam,
	}
	r.Resize()
	return r
}

// Quark returns the underlying renderer for callers that tweak it.
func (r *Renderer) Quark() *quark.Renderer { return r.instance }

// Instance returns the underlying renderer as a releasable resource.
func (r *Renderer) Instance() quark.Disposer { return r.instance }

// Resize matches the canvas to the viewport in device pixels.
func (r *Renderer) Resize() {
	w, h := r.sizes.Viewport().Pixels()
	r.canvas.Resize(w, h)
}

// Update renders one frame and presents it.
func (r *Renderer) Update() {
	if err := r.instance.Render(r.canvas, r.scene, r.camera); err != nil {
		// Log once; a disposed renderer fails every frame.
		if !r.failed {
			r.log.Warn("render failed", zap.Error(err))
			r.failed = true
		}
		return
	}
	if err := r.canvas.Present(); err != nil {
		r.log.Warn("present failed", zap.Error(err))
	}
}
