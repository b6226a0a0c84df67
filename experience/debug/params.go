package debug

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
)

// Param is a value the panel can display and adjust.
type Param interface {
	Label() string
	String() string
	Inc()
	Dec()
}

// Float is a bounded number adjusted in fixed steps. Safe for concurrent use.
type Float struct {
	Name           string
	Min, Max, Step float64

	bits atomic.Uint64
}

func (f *Float) Get() float64 { return math.Float64frombits(f.bits.Load()) }

// Set stores v clamped to [Min, Max].
func (f *Float) Set(v float64) {
	v = math.Max(f.Min, math.Min(f.Max, v))
	f.bits.Store(math.Float64bits(v))
}

func (f *Float) Label() string  { return f.Name }
func (f *Float) String() string { return fmt.Sprintf("%.3f", f.Get()) }
func (f *Float) Inc()           { f.Set(f.Get() + f.Step) }
func (f *Float) Dec()           { f.Set(f.Get() - f.Step) }

// Toggle is a boolean switch. Safe for concurrent use.
type Toggle struct {
	Name string

	v atomic.Bool
}

func (t *Toggle) Get() bool      { return t.v.Load() }
func (t *Toggle) Set(v bool)     { t.v.Store(v) }
func (t *Toggle) Label() string  { return t.Name }
func (t *Toggle) String() string { return fmt.Sprintf("%t", t.Get()) }
func (t *Toggle) Inc()           { t.Set(!t.Get()) }
func (t *Toggle) Dec()           { t.Set(!t.Get()) }

// Folder groups related parameters under a title.
type Folder struct {
	Name string

	mu     sync.Mutex
	params []Param
}

// AddFloat registers a bounded number starting at value.
func (f *Folder) AddFloat(name string, value, min, max, step float64) *Float {
	p := &Float{Name: name, Min: min, Max: max, Step: step}
	p.Set(value)
	f.add(p)
	return p
}

// AddToggle registers a boolean switch.
func (f *Folder) AddToggle(name string, value bool) *Toggle {
	p := &Toggle{Name: name}
	p.Set(value)
	f.add(p)
	return p
}

func (f *Folder) add(p Param) {
	f.mu.Lock()
	f.params = append(f.params, p)
	f.mu.Unlock()
}

// Params returns a copy of the registered parameters.
func (f *Folder) Params() []Param {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Param, len(f.params))
	copy(out, f.params)
	return out
}
