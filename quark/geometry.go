package quark

import "math"

// Vertex is a mesh vertex.
type Vertex struct {
	Pos    Vec3
	Normal Vec3
	UV     [2]float32
}

// Geometry is an indexed triangle list.
type Geometry struct {
	Vertices []Vertex
	Indices  []uint32

	disposed bool
}

func NewGeometry(vertices []Vertex, indices []uint32) *Geometry {
	return &Geometry{Vertices: vertices, Indices: indices}
}

// Triangles returns the number of complete triangles.
func (g *Geometry) Triangles() int {
	if g == nil {
		return 0
	}
	return len(g.Indices) / 3
}

// Dispose releases the vertex and index data. Calling it again does nothing.
func (g *Geometry) Dispose() error {
	if g == nil || g.disposed {
		return nil
	}
	g.Vertices = nil
	g.Indices = nil
	g.disposed = true
	return nil
}

func (g *Geometry) Disposed() bool { return g != nil && g.disposed }

// NewPlaneGeometry returns a w×h plane in the XY plane facing +Z.
func NewPlaneGeometry(w, h float32) *Geometry {
	hw, hh := w/2, h/2
	n := V3(0, 0, 1)
	return NewGeometry([]Vertex{
		{Pos: V3(-hw, -hh, 0), Normal: n, UV: [2]float32{0, 0}},
		{Pos: V3(hw, -hh, 0), Normal: n, UV: [2]float32{1, 0}},
		{Pos: V3(hw, hh, 0), Normal: n, UV: [2]float32{1, 1}},
		{Pos: V3(-hw, hh, 0), Normal: n, UV: [2]float32{0, 1}},
	}, []uint32{0, 1, 2, 0, 2, 3})
}

// NewBoxGeometry returns an axis-aligned box centered on the origin.
func NewBoxGeometry(w, h, d float32) *Geometry {
	hw, hh, hd := w/2, h/2, d/2
	faces := []struct {
		n, u, v Vec3
	}{
		{V3(1, 0, 0), V3(0, 0, -1), V3(0, 1, 0)},
		{V3(-1, 0, 0), V3(0, 0, 1), V3(0, 1, 0)},
		{V3(0, 1, 0), V3(1, 0, 0), V3(0, 0, -1)},
		{V3(0, -1, 0), V3(1, 0, 0), V3(0, 0, 1)},
		{V3(0, 0, 1), V3(1, 0, 0), V3(0, 1, 0)},
		{V3(0, 0, -1), V3(-1, 0, 0), V3(0, 1, 0)},
	}
	half := V3(hw, hh, hd)
	mul := func(a, b Vec3) Vec3 { return V3(a.X*b.X, a.Y*b.Y, a.Z*b.Z) }

	verts := make([]Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(verts))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := f.n.Add(f.u.Scale(c[0])).Add(f.v.Scale(c[1]))
			verts = append(verts, Vertex{
				Pos:    mul(p, half),
				Normal: f.n,
				UV:     [2]float32{(c[0] + 1) / 2, (c[1] + 1) / 2},
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}
	return NewGeometry(verts, indices)
}

// NewTorusGeometry returns a torus around the Y axis.
func NewTorusGeometry(radius, tube float32, radialSegments, tubularSegments int) *Geometry {
	if radialSegments < 3 {
		radialSegments = 3
	}
	if tubularSegments < 3 {
		tubularSegments = 3
	}

	verts := make([]Vertex, 0, radialSegments*tubularSegments)
	indices := make([]uint32, 0, radialSegments*tubularSegments*6)

	const twoPi = 2 * math.Pi
	for u := 0; u < tubularSegments; u++ {
		theta := twoPi * float64(u) / float64(tubularSegments)
		st, ct := math.Sincos(theta)
		for v := 0; v < radialSegments; v++ {
			phi := twoPi * float64(v) / float64(radialSegments)
			sp, cp := math.Sincos(phi)

			r := float64(radius) + float64(tube)*cp
			pos := V3(float32(r*ct), float32(float64(tube)*sp), float32(r*st))
			center := V3(float32(float64(radius)*ct), 0, float32(float64(radius)*st))
			verts = append(verts, Vertex{
				Pos:    pos,
				Normal: pos.Sub(center).Normalize(),
				UV:     [2]float32{float32(u) / float32(tubularSegments), float32(v) / float32(radialSegments)},
			})
		}
	}

	idx := func(u, v int) uint32 {
		return uint32((u%tubularSegments)*radialSegments + v%radialSegments)
	}
	for u := 0; u < tubularSegments; u++ {
		for v := 0; v < radialSegments; v++ {
			i0, i1, i2, i3 := idx(u, v), idx(u+1, v), idx(u+1, v+1), idx(u, v+1)
			indices = append(indices, i0, i1, i2, i0, i2, i3)
		}
	}
	return NewGeometry(verts, indices)
}
