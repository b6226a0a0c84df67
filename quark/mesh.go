package quark

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// ErrNoGeometry is reported for meshes without geometry.
var ErrNoGeometry = errors.New("quark: mesh has no geometry")

// Holder is implemented by nodes that own releasable resources.
type Holder interface {
	Node
	// Disposables returns the resources owned by the node. A malformed
	// node returns what it can together with an error.
	Disposables() ([]Disposer, error)
}

// Mesh is a geometry drawn with one or more materials. Only the first
// material is used for shading.
type Mesh struct {
	Object

	Geometry  *Geometry
	Materials []Material
}

func NewMesh(name string, g *Geometry, materials ...Material) *Mesh {
	m := &Mesh{Geometry: g, Materials: materials}
	m.init(m, name)
	return m
}

// Material returns the first material or nil.
func (m *Mesh) Material() Material {
	if len(m.Materials) == 0 {
		return nil
	}
	return m.Materials[0]
}

// Disposables returns the geometry followed by every material property that
// implements Disposer. A material that fails to list its properties is
// reported and skipped; the rest are still returned.
func (m *Mesh) Disposables() ([]Disposer, error) {
	var out []Disposer
	var err error
	if m.Geometry == nil {
		err = fmt.Errorf("%w: %q", ErrNoGeometry, m.Name)
	} else {
		out = append(out, m.Geometry)
	}
	for i, mat := range m.Materials {
		if mat == nil {
			continue
		}
		props, perr := properties(mat)
		if perr != nil {
			err = multierr.Append(err, fmt.Errorf("material %d: %w", i, perr))
			continue
		}
		for _, p := range props {
			if d, ok := p.Value.(Disposer); ok {
				out = append(out, d)
			}
		}
	}
	return out, err
}

func properties(mat Material) (props []Property, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return mat.Properties(), nil
}
