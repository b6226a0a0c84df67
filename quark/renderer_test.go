package quark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clearBlue = RGB(0, 0, 0x40)

func boxScene(t *testing.T, c Color) (*Scene, *Mesh, *PerspectiveCamera) {
	t.Helper()
	s := NewScene()
	box := NewMesh("box", NewBoxGeometry(1, 1, 1), NewStandardMaterial(c))
	s.Add(box)
	cam := NewPerspectiveCamera(50, 1, 0.1, 100)
	cam.Position = V3(0, 0, 5)
	cam.LookAt(V3(0, 0, 0))
	s.Add(cam)
	return s, box, cam
}

func newTestRenderer() *Renderer {
	r := NewRenderer()
	r.ClearColor = clearBlue
	return r
}

func TestRenderUnlitBox(t *testing.T) {
	s, _, cam := boxScene(t, RGB(0xFF, 0, 0))
	target := NewImageTarget(64, 64)
	r := newTestRenderer()

	require.NoError(t, r.Render(target, s, cam))
	assert.Equal(t, RGB(0xFF, 0, 0), target.At(32, 32))
	assert.Equal(t, clearBlue, target.At(0, 0))
	assert.Equal(t, 1, r.Stats().Meshes)
	assert.Equal(t, 12, r.Stats().Triangles)
}

func TestRenderDirectionalLight(t *testing.T) {
	s, _, cam := boxScene(t, RGB(0xFF, 0xFF, 0xFF))
	sun := NewDirectionalLight(RGB(0xFF, 0xFF, 0xFF), 1)
	s.Add(sun)
	target := NewImageTarget(64, 64)
	r := newTestRenderer()

	sun.Position = V3(0, 0, 5)
	require.NoError(t, r.Render(target, s, cam))
	assert.Equal(t, RGB(0xFF, 0xFF, 0xFF), target.At(32, 32))

	// Lit from behind: the visible face only gets ambient light, of which
	// there is none.
	sun.Position = V3(0, 0, -5)
	require.NoError(t, r.Render(target, s, cam))
	assert.Equal(t, RGB(0, 0, 0), target.At(32, 32))
}

func TestRenderExposure(t *testing.T) {
	s, _, cam := boxScene(t, RGB(100, 100, 100))
	target := NewImageTarget(32, 32)
	r := newTestRenderer()
	r.Exposure = 2

	require.NoError(t, r.Render(target, s, cam))
	assert.Equal(t, RGB(200, 200, 200), target.At(16, 16))
}

func TestRenderSkipsHiddenAndDisposed(t *testing.T) {
	s, box, cam := boxScene(t, RGB(0xFF, 0, 0))
	target := NewImageTarget(32, 32)
	r := newTestRenderer()

	box.Visible = false
	require.NoError(t, r.Render(target, s, cam))
	assert.Equal(t, 0, r.Stats().Meshes)

	box.Visible = true
	require.NoError(t, box.Geometry.Dispose())
	require.NoError(t, r.Render(target, s, cam))
	assert.Equal(t, 0, r.Stats().Meshes)
	assert.Equal(t, clearBlue, target.At(16, 16))
}

func TestRenderWireframe(t *testing.T) {
	s, _, cam := boxScene(t, RGB(0, 0xFF, 0))
	target := NewImageTarget(64, 64)
	r := newTestRenderer()
	r.Mode = RenderWireframe

	require.NoError(t, r.Render(target, s, cam))
	lit := 0
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if target.At(x, y) != clearBlue {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 0)
	assert.Less(t, lit, 64*64/4)
}

func TestRenderTextured(t *testing.T) {
	s, box, cam := boxScene(t, RGB(0xFF, 0xFF, 0xFF))
	target := NewImageTarget(64, 64)
	box.Material().(*StandardMaterial).Map = NewTexture("solid", solidImage(4, 4, RGB(10, 20, 30)))

	require.NoError(t, newTestRenderer().Render(target, s, cam))
	assert.Equal(t, RGB(10, 20, 30), target.At(32, 32))
}

func TestRenderAfterDispose(t *testing.T) {
	s, _, cam := boxScene(t, RGB(0xFF, 0, 0))
	r := newTestRenderer()
	require.NoError(t, r.Dispose())
	assert.ErrorIs(t, r.Render(NewImageTarget(8, 8), s, cam), ErrDisposed)
	assert.True(t, r.Disposed())
}
