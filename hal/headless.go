package hal

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// RunHeadless runs the app without opening a window, ticking it at cfg.Hz
// until cfg.Ticks is reached, the app fails or ctx is done. The app is closed
// before RunHeadless returns.
func RunHeadless(ctx context.Context, cfg HeadlessConfig, newApp NewApp) (err error) {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("hal: invalid headless hz: %d", cfg.Hz)
	}

	c := NewCanvas(cfg.Width, cfg.Height)
	app, err := newApp(c)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, app.Close()) }()

	w, h := c.Size()
	app.Layout(w, h, 1)

	err = loop(ctx, app, d, cfg.Ticks)
	if cfg.Snapshot != "" && c.Frames() > 0 {
		err = multierr.Append(err, WriteSnapshot(cfg.Snapshot, c.Snapshot()))
	}
	return err
}

func loop(ctx context.Context, app App, d time.Duration, ticks uint64) error {
	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			if err := app.Update(now); err != nil {
				return err
			}
			tick++
			if ticks > 0 && tick >= ticks {
				return nil
			}
		}
	}
}
