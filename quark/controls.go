package quark

import "math"

// OrbitControls orbits a camera around a target point.
//
// Input is fed through Rotate and Zoom; Update applies it, easing it out over
// several frames when damping is enabled.
type OrbitControls struct {
	Target        Vec3
	EnableDamping bool
	DampingFactor float32
	MinDistance   float32
	MaxDistance   float32

	camera *PerspectiveCamera
	yaw    float32
	pitch  float32
	radius float32

	dYaw, dPitch, dZoom float32

	disposed bool
}

const maxPitch = math.Pi/2 - 0.01

// NewOrbitControls derives the orbit from the camera's current position
// around its target.
func NewOrbitControls(cam *PerspectiveCamera) *OrbitControls {
	c := &OrbitControls{camera: cam, DampingFactor: 0.05}
	if cam == nil {
		return c
	}
	c.Target = cam.Target
	off := cam.Position.Sub(c.Target)
	c.radius = off.Len()
	if c.radius > 0 {
		c.pitch = float32(math.Asin(float64(clamp(off.Y/c.radius, -1, 1))))
		c.yaw = float32(math.Atan2(float64(off.X), float64(off.Z)))
	}
	return c
}

func (c *OrbitControls) Rotate(dYaw, dPitch float32) { c.dYaw += dYaw; c.dPitch += dPitch }

func (c *OrbitControls) Zoom(delta float32) { c.dZoom += delta }

// Distance returns the current distance to the target.
func (c *OrbitControls) Distance() float32 { return c.radius }

// Update applies pending input and repositions the camera.
func (c *OrbitControls) Update() {
	if c.disposed || c.camera == nil {
		return
	}
	k := float32(1)
	if c.EnableDamping {
		k = clamp(c.DampingFactor, 0, 1)
	}
	c.yaw += c.dYaw * k
	c.pitch = clamp(c.pitch+c.dPitch*k, -maxPitch, maxPitch)
	c.radius += c.dZoom * k
	if c.MinDistance > 0 && c.radius < c.MinDistance {
		c.radius = c.MinDistance
	}
	if c.MaxDistance > 0 && c.radius > c.MaxDistance {
		c.radius = c.MaxDistance
	}
	c.dYaw *= 1 - k
	c.dPitch *= 1 - k
	c.dZoom *= 1 - k

	sy, cy := sincos(c.yaw)
	sp, cp := sincos(c.pitch)
	c.camera.Position = c.Target.Add(V3(c.radius*cp*sy, c.radius*sp, c.radius*cp*cy))
	c.camera.LookAt(c.Target)
}

// Dispose detaches the controls from the camera; Update does nothing after.
func (c *OrbitControls) Dispose() error {
	c.disposed = true
	c.camera = nil
	return nil
}

func (c *OrbitControls) Disposed() bool { return c.disposed }
