//go:build cgo

package hal

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/multierr"

	"stage/internal/buildinfo"
)

// RunWindow opens a resizable desktop window that displays the canvas. It
// blocks until the window closes or the app fails, then closes the app.
func RunWindow(cfg WindowConfig, newApp NewApp) error {
	c := NewCanvas(cfg.Width, cfg.Height)
	app, err := newApp(c)
	if err != nil {
		return err
	}

	g := &windowGame{canvas: c, app: app}
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.TPS > 0 {
		ebiten.SetTPS(cfg.TPS)
	}
	err = ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	return multierr.Append(err, app.Close())
}

type windowGame struct {
	canvas  *Canvas
	app     App
	img     *ebiten.Image
	scratch []byte
}

func (g *windowGame) Update() error {
	return g.app.Update(time.Now())
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	var w, h int
	g.scratch, w, h = g.canvas.copyFront(g.scratch)
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(w, h)
	}
	g.img.WritePixels(g.scratch)
	screen.DrawImage(g.img, nil)
}

// Layout reports the window size to the app and renders at the canvas
// resolution, which the app keeps in device pixels.
func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.app.Layout(outsideWidth, outsideHeight, ebiten.Monitor().DeviceScaleFactor())
	return g.canvas.Size()
}
