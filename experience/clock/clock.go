// Package clock is the frame clock driving per-tick updates.
package clock

import (
	"time"

	"stage/internal/event"
)

const (
	// InitialDelta is reported before a second frame exists.
	InitialDelta = 16 * time.Millisecond
	// MaxDelta caps the step after a stall so animation does not jump.
	MaxDelta = 100 * time.Millisecond
)

// Frame is the payload of a tick.
type Frame struct {
	Now     time.Time
	Elapsed time.Duration
	Delta   time.Duration
}

// Time tracks elapsed and per-frame time and emits one tick per Step.
type Time struct {
	Start   time.Time
	Current time.Time
	Elapsed time.Duration
	Delta   time.Duration

	tick event.Emitter[Frame]
}

// New starts the clock at now.
func New(now time.Time) *Time {
	return &Time{Start: now, Current: now, Delta: InitialDelta}
}

// Step advances the clock to now and emits a tick. A now before the current
// time is treated as no time passing.
func (t *Time) Step(now time.Time) Frame {
	d := now.Sub(t.Current)
	if d < 0 {
		d = 0
		now = t.Current
	}
	if d > MaxDelta {
		d = MaxDelta
	}
	t.Delta = d
	t.Current = now
	t.Elapsed = now.Sub(t.Start)

	f := Frame{Now: now, Elapsed: t.Elapsed, Delta: d}
	t.tick.Emit(f)
	return f
}

func (t *Time) OnTick(fn func(Frame)) event.Token { return t.tick.On(fn) }

// Off unsubscribes a tick handler. Unknown tokens are ignored.
func (t *Time) Off(tok event.Token) { t.tick.Off(tok) }
