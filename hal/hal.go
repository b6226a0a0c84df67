// Package hal hosts an App: it owns the canvas the app draws into and drives
// the app's update and layout from a desktop window or a headless ticker.
package hal

import (
	"errors"
	"time"
)

// ErrNoWindow is returned by RunWindow in builds without a window backend.
var ErrNoWindow = errors.New("hal: window mode requires cgo (build/run with CGO_ENABLED=1)")

// App is driven by a runner. All methods are called on the runner's loop
// goroutine.
type App interface {
	// Update advances the app by one frame.
	Update(now time.Time) error
	// Layout reports the viewport in logical pixels and the device scale.
	Layout(w, h int, scale float64)
	// Close releases the app. It is called once when the runner stops.
	Close() error
}

// NewApp builds the app once the runner's canvas exists.
type NewApp func(c *Canvas) (App, error)

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	TPS    int
}

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Width  int
	Height int
	Hz     int
	// Ticks stops the runner after N ticks (0 = run until ctx is done).
	Ticks uint64
	// Snapshot writes the final frame as PNG when set.
	Snapshot string
}
