package hal

import (
	"image"
	"sync"

	"stage/quark"
)

// Canvas is a double-buffered RGBA surface. The app draws into the back
// buffer; Present publishes it to the front buffer the runner displays.
//
// Canvas is safe for concurrent use.
type Canvas struct {
	mu     sync.Mutex
	back   *image.RGBA
	front  *image.RGBA
	frames uint64
}

// NewCanvas returns a w×h canvas. Sizes below one pixel are raised to one.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

func (c *Canvas) Size() (w, h int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := c.back.Bounds()
	return b.Dx(), b.Dy()
}

// Resize reallocates both buffers. The content is lost; the same size is a
// no-op.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.back != nil && c.back.Bounds().Dx() == w && c.back.Bounds().Dy() == h {
		return
	}
	r := image.Rect(0, 0, w, h)
	c.back = image.NewRGBA(r)
	c.front = image.NewRGBA(r)
}

func (c *Canvas) SetPixel(x, y int, col quark.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b := c.back.Bounds()
	if x < 0 || y < 0 || x >= b.Dx() || y >= b.Dy() {
		return
	}
	off := c.back.PixOffset(x, y)
	p := c.back.Pix[off : off+4 : off+4]
	p[0], p[1], p[2], p[3] = col.R, col.G, col.B, 0xFF
}

func (c *Canvas) Clear(col quark.Color) {
	c.mu.Lock()
	defer c.mu.Unlock()
	pix := c.back.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i+0] = col.R
		pix[i+1] = col.G
		pix[i+2] = col.B
		pix[i+3] = 0xFF
	}
}

// Present publishes the back buffer.
func (c *Canvas) Present() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	copy(c.front.Pix, c.back.Pix)
	c.frames++
	return nil
}

// Frames returns how many frames were presented.
func (c *Canvas) Frames() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// Snapshot returns a copy of the last presented frame.
func (c *Canvas) Snapshot() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	img := image.NewRGBA(c.front.Bounds())
	copy(img.Pix, c.front.Pix)
	return img
}

// copyFront copies the front buffer into dst, growing it as needed, and
// returns it with the frame size.
func (c *Canvas) copyFront(dst []byte) ([]byte, int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cap(dst) < len(c.front.Pix) {
		dst = make([]byte, len(c.front.Pix))
	}
	dst = dst[:len(c.front.Pix)]
	copy(dst, c.front.Pix)
	b := c.front.Bounds()
	return dst, b.Dx(), b.Dy()
}
