package app

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"stage/experience"
	"stage/hal"
	"stage/internal/config"
	"stage/quark"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newApp(t *testing.T, cfg config.Config) (*App, *hal.Canvas) {
	t.Helper()
	c := hal.NewCanvas(32, 18)
	a, err := New(context.Background(), Options{Config: cfg, Logger: zaptest.NewLogger(t)})(c)
	require.NoError(t, err)
	return a.(*App), c
}

func TestUpdateAndLayout(t *testing.T) {
	a, c := newApp(t, config.Default())
	defer a.Close()

	require.NoError(t, a.Update(time.Now()))
	assert.Equal(t, uint64(1), c.Frames())

	a.Layout(20, 10, 2)
	w, h := c.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 20, h)
}

func TestCloseDestroysExperience(t *testing.T) {
	a, c := newApp(t, config.Default())
	require.NoError(t, a.Close())
	assert.True(t, a.Experience().Destroyed())

	require.NoError(t, a.Update(time.Now()))
	assert.Zero(t, c.Frames())
}

func TestSharedFactory(t *testing.T) {
	f := experience.NewFactory(zaptest.NewLogger(t))
	opts := Options{Config: config.Default(), Logger: zaptest.NewLogger(t), Factory: f}

	a, err := New(context.Background(), opts)(hal.NewCanvas(8, 8))
	require.NoError(t, err)
	defer a.Close()
	b, err := New(context.Background(), opts)(hal.NewCanvas(16, 16))
	require.NoError(t, err)

	assert.Same(t, a.(*App).Experience(), b.(*App).Experience())
	assert.Same(t, f.Current(), a.(*App).Experience())
}

func TestRecoverFrame(t *testing.T) {
	a := &App{log: zaptest.NewLogger(t)}
	err := func() (err error) {
		defer a.recoverFrame(&err)
		panic("collaborator exploded")
	}()
	assert.ErrorContains(t, err, "collaborator exploded")
}

func writePNG(t *testing.T, path string, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		img.Set(i%2, i/2, c)
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestAssetDirOverride(t *testing.T) {
	dir := t.TempDir()
	manifest := `sources:
  - name: floorColorTexture
    type: texture
    path: tex/floor.png
  - name: subjectColorTexture
    type: texture
    path: tex/subject.png
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(manifest), 0o644))
	writePNG(t, filepath.Join(dir, "tex", "floor.png"), color.RGBA{R: 1, A: 255})
	writePNG(t, filepath.Join(dir, "tex", "subject.png"), color.RGBA{G: 2, A: 255})

	cfg := config.Default()
	cfg.Assets = dir
	a, _ := newApp(t, cfg)
	defer a.Close()

	res := a.Experience().Resources()
	assert.Equal(t, 2, res.Loaded())
	tex, ok := res.Texture("subjectColorTexture")
	require.True(t, ok)
	assert.Equal(t, quark.RGB(0, 2, 0), tex.Sample(0.5, 0.5))
}

func TestAssetDirWithoutManifest(t *testing.T) {
	_, sources, err := LoadAssetDir(t.TempDir())
	require.NoError(t, err)
	assert.NotEmpty(t, sources)
}

func TestAssetDirBadManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte("sources: [{name: x, type: mesh, path: a}]"), 0o644))
	_, _, err := LoadAssetDir(dir)
	assert.Error(t, err)
}

func TestRunHeadlessSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	cfg := config.Default()
	err := hal.RunHeadless(context.Background(), hal.HeadlessConfig{
		Width: 48, Height: 27, Hz: 500, Ticks: 3, Snapshot: path,
	}, New(context.Background(), Options{Config: cfg, Logger: zaptest.NewLogger(t)}))
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 48, 27), img.Bounds())

	// Corners show the clear color.
	bg, err := quark.ParseHex(cfg.Renderer.ClearColor)
	require.NoError(t, err)
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, [3]uint8{bg.R, bg.G, bg.B}, [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
}
