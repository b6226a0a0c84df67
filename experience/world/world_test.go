package world

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"stage/experience/clock"
	"stage/experience/debug"
	"stage/experience/resources"
	"stage/quark"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func newResources(t *testing.T, names ...string) *resources.Resources {
	t.Helper()
	fsys := fstest.MapFS{}
	var sources []resources.Source
	for _, n := range names {
		p := "textures/" + n + ".png"
		fsys[p] = &fstest.MapFile{Data: pngBytes(t)}
		sources = append(sources, resources.Source{Name: n, Type: resources.TextureSource, Path: p})
	}
	return resources.New(fsys, sources, zaptest.NewLogger(t))
}

func allTextures(t *testing.T) *resources.Resources {
	return newResources(t, "floorColorTexture", "floorNormalTexture", "subjectColorTexture")
}

func newDebug(t *testing.T, active bool) *debug.Debug {
	t.Helper()
	d, err := debug.New(debug.Options{Active: active}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return d
}

func TestBuildOnReady(t *testing.T) {
	scene := quark.NewScene()
	res := allTextures(t)
	w := New(scene, res, clock.New(epoch), newDebug(t, false), zaptest.NewLogger(t))
	assert.False(t, w.Ready())
	assert.Empty(t, scene.Children())

	require.NoError(t, res.Load(context.Background()))
	require.True(t, w.Ready())
	assert.Len(t, scene.Children(), 4)

	floorColor, _ := res.Texture("floorColorTexture")
	assert.Same(t, floorColor, w.Floor.Material.Map)
	assert.NotNil(t, w.Floor.Material.NormalMap)
	assert.NotNil(t, w.Subject.Material.Map)
	assert.Same(t, w.Floor.Mesh, scene.Children()[0])
}

func TestBuildWhenAlreadyReady(t *testing.T) {
	res := allTextures(t)
	require.NoError(t, res.Load(context.Background()))

	scene := quark.NewScene()
	w := New(scene, res, clock.New(epoch), newDebug(t, false), zaptest.NewLogger(t))
	assert.True(t, w.Ready())
	assert.Len(t, scene.Children(), 4)
}

func TestMissingTexture(t *testing.T) {
	res := newResources(t, "floorColorTexture")
	require.NoError(t, res.Load(context.Background()))

	w := New(quark.NewScene(), res, clock.New(epoch), newDebug(t, false), zaptest.NewLogger(t))
	require.True(t, w.Ready())
	assert.Nil(t, w.Subject.Material.Map)
	assert.Nil(t, w.Floor.Material.NormalMap)
}

func TestUpdateBeforeReady(t *testing.T) {
	w := New(quark.NewScene(), allTextures(t), clock.New(epoch), newDebug(t, false), zaptest.NewLogger(t))
	assert.NotPanics(t, w.Update)
}

func TestUpdateSpinsSubject(t *testing.T) {
	res := allTextures(t)
	require.NoError(t, res.Load(context.Background()))
	tm := clock.New(epoch)
	w := New(quark.NewScene(), res, tm, newDebug(t, false), zaptest.NewLogger(t))

	tm.Step(epoch.Add(50 * time.Millisecond))
	w.Update()
	assert.InDelta(t, 0.6*0.05, w.Subject.Mesh.Rotation.Y, 1e-5)

	tm.Step(epoch.Add(100 * time.Millisecond))
	w.Update()
	assert.InDelta(t, 0.6*0.1, w.Subject.Mesh.Rotation.Y, 1e-5)
}

func TestDebugParams(t *testing.T) {
	res := allTextures(t)
	require.NoError(t, res.Load(context.Background()))
	dbg := newDebug(t, true)
	tm := clock.New(epoch)
	w := New(quark.NewScene(), res, tm, dbg, zaptest.NewLogger(t))

	folders := map[string]*debug.Folder{}
	for _, f := range dbg.UI().Folders() {
		folders[f.Name] = f
	}
	require.Contains(t, folders, "environment")
	require.Contains(t, folders, "subject")

	for _, p := range folders["subject"].Params() {
		switch p := p.(type) {
		case *debug.Float:
			p.Set(0)
		case *debug.Toggle:
			p.Set(true)
		}
	}
	for _, p := range folders["environment"].Params() {
		if p.Label() == "sunLightIntensity" {
			p.(*debug.Float).Set(2)
		}
	}

	tm.Step(epoch.Add(20 * time.Millisecond))
	w.Update()
	assert.Zero(t, w.Subject.Mesh.Rotation.Y)
	assert.True(t, w.Subject.Material.Wireframe)
	assert.InDelta(t, 2, w.Environment.Sun.Intensity, 1e-6)
	assert.InDelta(t, 50, dbg.UI().FPS(), 1e-6)
}
