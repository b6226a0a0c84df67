package quark

import (
	"errors"
	"image"
	"image/draw"
	"math"
)

// ErrDisposed is returned when a released resource is used.
var ErrDisposed = errors.New("quark: resource disposed")

// Texture is an RGBA image sampled with repeat wrapping and nearest filtering.
type Texture struct {
	Name string

	img      *image.RGBA
	disposed bool
}

// NewTexture copies img into a new texture.
func NewTexture(name string, img image.Image) *Texture {
	return &Texture{Name: name, img: toRGBA(img)}
}

func (t *Texture) Size() (w, h int) {
	if t == nil || t.img == nil {
		return 0, 0
	}
	b := t.img.Bounds()
	return b.Dx(), b.Dy()
}

// Sample returns the texel at uv. The v axis points up: v=0 is the bottom row.
func (t *Texture) Sample(u, v float32) Color {
	w, h := t.Size()
	if w == 0 || h == 0 {
		return RGB(0xFF, 0xFF, 0xFF)
	}
	x := wrap(int(math.Floor(float64(u*float32(w)))), w)
	y := wrap(h-1-int(math.Floor(float64(v*float32(h)))), h)
	off := t.img.PixOffset(x, y)
	p := t.img.Pix[off : off+4 : off+4]
	return Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Replace swaps the pixels of t, keeping its identity for materials that
// reference it.
func (t *Texture) Replace(img image.Image) error {
	if t == nil || t.disposed {
		return ErrDisposed
	}
	t.img = toRGBA(img)
	return nil
}

// Dispose releases the pixel data. Calling it again does nothing.
func (t *Texture) Dispose() error {
	if t == nil || t.disposed {
		return nil
	}
	t.img = nil
	t.disposed = true
	return nil
}

func (t *Texture) Disposed() bool { return t != nil && t.disposed }

func toRGBA(img image.Image) *image.RGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
