package quark

// RenderMode selects the rasterization mode.
type RenderMode uint8

const (
	RenderSolid RenderMode = iota
	RenderWireframe
)

// Stats describes the last rendered frame.
type Stats struct {
	Meshes    int
	Triangles int
}

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it; the depth buffer is kept between frames.
type Renderer struct {
	Mode       RenderMode
	Depth      bool
	ClearColor Color
	// Exposure scales the final color before it is clamped.
	Exposure float32

	depthBuf []float32
	stats    Stats
	disposed bool
}

func NewRenderer() *Renderer {
	return &Renderer{
		Mode:       RenderSolid,
		Depth:      true,
		ClearColor: RGB(0, 0, 0),
		Exposure:   1,
	}
}

// Stats returns counters for the last Render call.
func (r *Renderer) Stats() Stats { return r.stats }

// Dispose releases the depth buffer. Render fails with ErrDisposed after.
func (r *Renderer) Dispose() error {
	r.depthBuf = nil
	r.disposed = true
	return nil
}

func (r *Renderer) Disposed() bool { return r.disposed }

// Render draws the visible meshes of s as seen by cam into t.
func (r *Renderer) Render(t Target, s *Scene, cam *PerspectiveCamera) error {
	if r.disposed {
		return ErrDisposed
	}
	r.stats = Stats{}
	if t == nil || s == nil || cam == nil {
		return nil
	}
	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	t.Clear(r.ClearColor)
	if r.Depth {
		r.resetDepth(w * h)
	}

	var dl drawList
	dl.collect(s, Identity())

	f := frame{
		t:        t,
		w:        w,
		h:        h,
		vp:       cam.Projection().Mul(cam.View()),
		eye:      cam.World().Apply(Vec4{W: 1}).XYZ(),
		lights:   dl.lighting(),
		exposure: r.Exposure,
	}
	if f.exposure <= 0 {
		f.exposure = 1
	}
	for _, it := range dl.meshes {
		r.drawMesh(&f, it)
	}
	return nil
}

func (r *Renderer) resetDepth(n int) {
	if cap(r.depthBuf) < n {
		r.depthBuf = make([]float32, n)
	}
	r.depthBuf = r.depthBuf[:n]
	for i := range r.depthBuf {
		r.depthBuf[i] = 1e9
	}
}

type drawItem struct {
	mesh  *Mesh
	world Mat4
}

type dirLight struct {
	dir Vec3
	rgb [3]float32
}

type drawList struct {
	meshes  []drawItem
	ambient [3]float32
	dirs    []dirLight
	lit     bool
}

func (dl *drawList) collect(n Node, parent Mat4) {
	o := n.Base()
	if !o.Visible {
		return
	}
	world := parent.Mul(o.Local())
	switch v := n.(type) {
	case *Mesh:
		dl.meshes = append(dl.meshes, drawItem{mesh: v, world: world})
	case *AmbientLight:
		rgb := lightRGB(v.Color, v.Intensity)
		for i := range dl.ambient {
			dl.ambient[i] += rgb[i]
		}
		dl.lit = true
	case *DirectionalLight:
		pos := world.Apply(Vec4{W: 1}).XYZ()
		dl.dirs = append(dl.dirs, dirLight{dir: v.Target.Sub(pos).Normalize(), rgb: lightRGB(v.Color, v.Intensity)})
		dl.lit = true
	}
	for _, c := range o.children {
		dl.collect(c, world)
	}
}

type lighting struct {
	ambient [3]float32
	dirs    []dirLight
	unlit   bool
}

func (dl *drawList) lighting() lighting {
	return lighting{ambient: dl.ambient, dirs: dl.dirs, unlit: !dl.lit}
}

// at returns the light reaching a surface with normal n.
func (l *lighting) at(n Vec3) [3]float32 {
	if l.unlit {
		return [3]float32{1, 1, 1}
	}
	out := l.ambient
	for _, d := range l.dirs {
		k := n.Dot(d.dir.Scale(-1))
		if k <= 0 {
			continue
		}
		for i := range out {
			out[i] += d.rgb[i] * k
		}
	}
	return out
}

func lightRGB(c Color, intensity float32) [3]float32 {
	return [3]float32{
		float32(c.R) / 255 * intensity,
		float32(c.G) / 255 * intensity,
		float32(c.B) / 255 * intensity,
	}
}

type frame struct {
	t        Target
	w, h     int
	vp       Mat4
	eye      Vec3
	lights   lighting
	exposure float32
}

type screenVert struct {
	x, y int
	z    float32 // depth in [0,1]
	invW float32
	u, v float32
}

var defaultMaterial = NewStandardMaterial(RGB(0xCC, 0xCC, 0xCC))

func (r *Renderer) drawMesh(f *frame, it drawItem) {
	g := it.mesh.Geometry
	if g == nil || g.Disposed() || len(g.Indices) < 3 {
		return
	}
	mat, ok := it.mesh.Material().(*StandardMaterial)
	if !ok || mat == nil {
		mat = defaultMaterial
	}
	wire := r.Mode == RenderWireframe || mat.Wireframe
	mvp := f.vp.Mul(it.world)
	r.stats.Meshes++

	for i := 0; i+2 < len(g.Indices); i += 3 {
		i0, i1, i2 := int(g.Indices[i]), int(g.Indices[i+1]), int(g.Indices[i+2])
		if i0 >= len(g.Vertices) || i1 >= len(g.Vertices) || i2 >= len(g.Vertices) {
			continue
		}
		v0, v1, v2 := g.Vertices[i0], g.Vertices[i1], g.Vertices[i2]

		s0, ok0 := project(mvp, v0, f.w, f.h)
		s1, ok1 := project(mvp, v1, f.w, f.h)
		s2, ok2 := project(mvp, v2, f.w, f.h)
		// Triangles crossing the near plane are dropped rather than clipped.
		if !ok0 || !ok1 || !ok2 {
			continue
		}

		p0 := it.world.Apply(v0.Pos.Point()).XYZ()
		p1 := it.world.Apply(v1.Pos.Point()).XYZ()
		p2 := it.world.Apply(v2.Pos.Point()).XYZ()
		n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		if n.Dot(f.eye.Sub(p0)) < 0 {
			n = n.Scale(-1)
		}
		light := f.lights.at(n)
		r.stats.Triangles++

		if wire {
			c := shade(mat.albedo(s0.u, s0.v), light, f.exposure)
			r.drawLine(f.t, s0.x, s0.y, s1.x, s1.y, c)
			r.drawLine(f.t, s1.x, s1.y, s2.x, s2.y, c)
			r.drawLine(f.t, s2.x, s2.y, s0.x, s0.y, c)
			continue
		}
		r.fillTriangle(f, mat, light, s0, s1, s2)
	}
}

func project(mvp Mat4, v Vertex, w, h int) (screenVert, bool) {
	c := mvp.Apply(v.Pos.Point())
	if c.W <= 1e-6 {
		return screenVert{}, false
	}
	inv := 1 / c.W
	nx, ny, nz := c.X*inv, c.Y*inv, c.Z*inv
	sx := (nx*0.5 + 0.5) * float32(w-1)
	sy := (1 - (ny*0.5 + 0.5)) * float32(h-1)
	return screenVert{
		x:    int(sx + 0.5),
		y:    int(sy + 0.5),
		z:    clamp(nz*0.5+0.5, 0, 1),
		invW: inv,
		u:    v.UV[0],
		v:    v.UV[1],
	}, true
}

func shade(c Color, light [3]float32, exposure float32) Color {
	return Color{
		R: uint8(clamp(float32(c.R)*light[0]*exposure, 0, 255)),
		G: uint8(clamp(float32(c.G)*light[1]*exposure, 0, 255)),
		B: uint8(clamp(float32(c.B)*light[2]*exposure, 0, 255)),
		A: 0xFF,
	}
}

func (r *Renderer) depthTest(w, x, y int, z float32) bool {
	if !r.Depth || r.depthBuf == nil {
		return true
	}
	idx := y*w + x
	if idx < 0 || idx >= len(r.depthBuf) {
		return false
	}
	if z >= r.depthBuf[idx] {
		return false
	}
	r.depthBuf[idx] = z
	return true
}

func (r *Renderer) fillTriangle(f *frame, mat *StandardMaterial, light [3]float32, a, b, c screenVert) {
	minX, maxX := min(a.x, b.x, c.x), max(a.x, b.x, c.x)
	minY, maxY := min(a.y, b.y, c.y), max(a.y, b.y, c.y)
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, f.w-1), min(maxY, f.h-1)
	if minX > maxX || minY > maxY {
		return
	}

	area := edgeFn(a.x, a.y, b.x, b.y, c.x, c.y)
	if area == 0 {
		return
	}
	sign := 1
	if area < 0 {
		sign = -1
	}
	invArea := 1 / float32(area)

	textured := mat.Map != nil && !mat.Map.Disposed()
	flat := shade(mat.Color, light, f.exposure)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(b.x, b.y, c.x, c.y, x, y)
			w1 := edgeFn(c.x, c.y, a.x, a.y, x, y)
			w2 := edgeFn(a.x, a.y, b.x, b.y, x, y)
			if w0*sign < 0 || w1*sign < 0 || w2*sign < 0 {
				continue
			}
			l0, l1, l2 := float32(w0)*invArea, float32(w1)*invArea, float32(w2)*invArea
			z := l0*a.z + l1*b.z + l2*c.z
			if !r.depthTest(f.w, x, y, z) {
				continue
			}
			if !textured {
				f.t.SetPixel(x, y, flat)
				continue
			}
			iw := l0*a.invW + l1*b.invW + l2*c.invW
			if iw == 0 {
				continue
			}
			u := (l0*a.u*a.invW + l1*b.u*b.invW + l2*c.u*c.invW) / iw
			v := (l0*a.v*a.invW + l1*b.v*b.invW + l2*c.v*c.invW) / iw
			f.t.SetPixel(x, y, shade(mat.albedo(u, v), light, f.exposure))
		}
	}
}

func (r *Renderer) drawLine(t Target, x0, y0, x1, y1 int, c Color) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		t.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func edgeFn(x0, y0, x1, y1, x, y int) int {
	return (x-x0)*(y1-y0) - (y-y0)*(x1-x0)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
