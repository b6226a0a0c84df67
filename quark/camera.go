package quark

// PerspectiveCamera projects with a vertical field of view.
type PerspectiveCamera struct {
	Object

	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32
	Up     Vec3
	Target Vec3

	projection Mat4
}

func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{FOV: fov, Aspect: aspect, Near: near, Far: far, Up: V3(0, 1, 0)}
	c.init(c, "camera")
	c.UpdateProjection()
	return c
}

// UpdateProjection recomputes the projection after FOV, Aspect, Near or Far
// change.
func (c *PerspectiveCamera) UpdateProjection() {
	c.projection = Perspective(Radians(c.FOV), c.Aspect, c.Near, c.Far)
}

func (c *PerspectiveCamera) Projection() Mat4 { return c.projection }

// LookAt points the camera at target.
func (c *PerspectiveCamera) LookAt(target Vec3) { c.Target = target }

// View returns the world-to-camera transform.
func (c *PerspectiveCamera) View() Mat4 {
	up := c.Up
	if up == (Vec3{}) {
		up = V3(0, 1, 0)
	}
	eye := c.World().Apply(Vec4{W: 1}).XYZ()
	return LookAt(eye, c.Target, up)
}
