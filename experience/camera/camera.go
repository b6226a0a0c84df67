// Package camera owns the experience's perspective camera and its orbit
// controls.
package camera

import (
	"stage/experience/sizes"
	"stage/quark"
)

// Options describes the initial camera.
type Options struct {
	FOV      float32 // vertical, degrees
	Near     float32
	Far      float32
	Position quark.Vec3
	Target   quark.Vec3
	// Damping enables eased orbit controls when positive.
	Damping float32
}

// Camera keeps the projection in sync with the viewport and steps the orbit
// controls every frame.
type Camera struct {
	instance *quark.PerspectiveCamera
	controls *quark.OrbitControls
	sizes    *sizes.Sizes
}

// New creates the camera, adds it to scene and attaches orbit controls.
func New(sz *sizes.Sizes, scene *quark.Scene, opts Options) *Camera {
	cam := quark.NewPerspectiveCamera(opts.FOV, sz.Viewport().Aspect(), opts.Near, opts.Far)
	cam.Position = opts.Position
	cam.LookAt(opts.Target)
	scene.Add(cam)

	controls := quark.NewOrbitControls(cam)
	if opts.Damping > 0 {
		controls.EnableDamping = true
		controls.DampingFactor = opts.Damping
	}
	return &Camera{instance: cam, controls: controls, sizes: sz}
}

func (c *Camera) Instance() *quark.PerspectiveCamera { return c.instance }

// Orbit returns the orbit controls for hosts that feed input into them.
func (c *Camera) Orbit() *quark.OrbitControls { return c.controls }

// Controls returns the orbit controls as a releasable resource.
func (c *Camera) Controls() quark.Disposer { return c.controls }

// Resize matches the projection to the current viewport aspect.
func (c *Camera) Resize() {
	c.instance.Aspect = c.sizes.Viewport().Aspect()
	c.instance.UpdateProjection()
}

// Update steps the orbit controls.
func (c *Camera) Update() { c.controls.Update() }
