package quark

// Disposer is implemented by resources that must be released explicitly.
type Disposer interface {
	Dispose() error
}

// Property is a named material input.
type Property struct {
	Name  string
	Value any
}

// Material describes how a surface is shaded. Properties lists every input;
// those that implement Disposer are released with the mesh.
type Material interface {
	Properties() []Property
}

// StandardMaterial is a lit material with optional color and normal maps.
type StandardMaterial struct {
	Color     Color
	Map       *Texture
	NormalMap *Texture
	Wireframe bool
}

func NewStandardMaterial(c Color) *StandardMaterial {
	return &StandardMaterial{Color: c}
}

func (m *StandardMaterial) Properties() []Property {
	props := []Property{
		{Name: "color", Value: m.Color},
		{Name: "wireframe", Value: m.Wireframe},
	}
	if m.Map != nil {
		props = append(props, Property{Name: "map", Value: m.Map})
	}
	if m.NormalMap != nil {
		props = append(props, Property{Name: "normalMap", Value: m.NormalMap})
	}
	return props
}

// albedo returns the surface color at uv.
func (m *StandardMaterial) albedo(u, v float32) Color {
	if m.Map == nil || m.Map.Disposed() {
		return m.Color
	}
	return m.Color.Modulate(m.Map.Sample(u, v))
}
