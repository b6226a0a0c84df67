package hal

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stage/quark"
)

var _ quark.Target = (*Canvas)(nil)

func TestCanvasPresentPublishesBackBuffer(t *testing.T) {
	c := NewCanvas(4, 2)
	red := quark.RGB(255, 0, 0)
	c.Clear(quark.RGB(0, 0, 255))
	c.SetPixel(1, 1, red)
	c.SetPixel(-1, 0, red)
	c.SetPixel(4, 0, red)

	snap := c.Snapshot()
	assert.Equal(t, uint8(0), snap.Pix[3], "nothing presented yet")

	require.NoError(t, c.Present())
	assert.Equal(t, uint64(1), c.Frames())
	snap = c.Snapshot()
	assert.Equal(t, []uint8{255, 0, 0, 255}, snap.Pix[snap.PixOffset(1, 1):snap.PixOffset(1, 1)+4])
	assert.Equal(t, []uint8{0, 0, 255, 255}, snap.Pix[0:4])

	// The snapshot is a copy.
	snap.Pix[0] = 9
	assert.Equal(t, uint8(0), c.Snapshot().Pix[0])
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(0, -3)
	w, h := c.Size()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)

	c.Resize(8, 6)
	w, h = c.Size()
	assert.Equal(t, 8, w)
	assert.Equal(t, 6, h)
	assert.Equal(t, 8, c.Snapshot().Bounds().Dx())

	c.Clear(quark.RGB(1, 1, 1))
	c.Resize(8, 6)
	require.NoError(t, c.Present())
	assert.Equal(t, uint8(1), c.Snapshot().Pix[0], "same size keeps content")
}

func TestCanvasCopyFront(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Clear(quark.RGB(7, 7, 7))
	require.NoError(t, c.Present())

	buf, w, h := c.copyFront(nil)
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)
	assert.Len(t, buf, 16)

	c.Resize(1, 1)
	buf, w, h = c.copyFront(buf)
	assert.Len(t, buf, 4)
	assert.Equal(t, 1, w*h)
}

func TestCanvasConcurrentUse(t *testing.T) {
	c := NewCanvas(16, 16)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			c.Clear(quark.RGB(uint8(i), 0, 0))
			_ = c.Present()
		}
	}()
	go func() {
		defer wg.Done()
		var buf []byte
		for i := 0; i < 100; i++ {
			buf, _, _ = c.copyFront(buf)
			_ = c.Snapshot()
		}
	}()
	wg.Wait()
	assert.Equal(t, uint64(100), c.Frames())
}
