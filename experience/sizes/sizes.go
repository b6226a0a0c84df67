// Package sizes tracks the viewport the experience is drawn into.
package sizes

import (
	"math"

	"stage/internal/event"
)

// DefaultMaxPixelRatio caps the device scale so high density screens do not
// quadruple the software rasterizer's work.
const DefaultMaxPixelRatio = 2

// Viewport is a snapshot of the viewport size.
type Viewport struct {
	Width      int
	Height     int
	PixelRatio float64
}

// Aspect returns Width/Height.
func (v Viewport) Aspect() float32 {
	if v.Height == 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// Pixels returns the viewport size in device pixels.
func (v Viewport) Pixels() (w, h int) {
	return int(math.Round(float64(v.Width) * v.PixelRatio)), int(math.Round(float64(v.Height) * v.PixelRatio))
}

// Sizes holds the current viewport and emits a resize on every change.
type Sizes struct {
	max    float64
	cur    Viewport
	resize event.Emitter[Viewport]
}

// New returns a tracker starting at w×h with pixel ratio 1.
func New(w, h int, maxPixelRatio float64) *Sizes {
	if maxPixelRatio < 1 {
		maxPixelRatio = DefaultMaxPixelRatio
	}
	s := &Sizes{max: maxPixelRatio}
	s.cur = s.normalize(w, h, 1)
	return s
}

func (s *Sizes) Viewport() Viewport  { return s.cur }
func (s *Sizes) Width() int          { return s.cur.Width }
func (s *Sizes) Height() int         { return s.cur.Height }
func (s *Sizes) PixelRatio() float64 { return s.cur.PixelRatio }

// Set updates the viewport from the host. It emits only when the normalized
// viewport differs from the current one.
func (s *Sizes) Set(w, h int, scale float64) bool {
	v := s.normalize(w, h, scale)
	if v == s.cur {
		return false
	}
	s.cur = v
	s.resize.Emit(v)
	return true
}

func (s *Sizes) OnResize(fn func(Viewport)) event.Token { return s.resize.On(fn) }

// Off unsubscribes a resize handler. Unknown tokens are ignored.
func (s *Sizes) Off(tok event.Token) { s.resize.Off(tok) }

func (s *Sizes) normalize(w, h int, scale float64) Viewport {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if scale <= 0 || math.IsNaN(scale) {
		scale = 1
	}
	return Viewport{Width: w, Height: h, PixelRatio: math.Min(scale, s.max)}
}
