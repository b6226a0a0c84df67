package quark

// Scene is the root of a scene graph.
type Scene struct {
	Object
}

func NewScene() *Scene {
	s := &Scene{}
	s.init(s, "scene")
	return s
}

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Object

	Color     Color
	Intensity float32
}

func NewAmbientLight(c Color, intensity float32) *AmbientLight {
	l := &AmbientLight{Color: c, Intensity: intensity}
	l.init(l, "ambient")
	return l
}

// DirectionalLight shines from its position towards Target.
type DirectionalLight struct {
	Object

	Color     Color
	Intensity float32
	Target    Vec3
}

func NewDirectionalLight(c Color, intensity float32) *DirectionalLight {
	l := &DirectionalLight{Color: c, Intensity: intensity}
	l.init(l, "directional")
	l.Position = V3(0, 1, 0)
	return l
}

// Direction returns the normalized direction the light travels.
func (l *DirectionalLight) Direction() Vec3 {
	return l.Target.Sub(l.Position).Normalize()
}
