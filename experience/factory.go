package experience

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"stage/internal/logging"
)

// Factory hands out the one Experience of a process or session.
//
// The first Get builds the instance; every later Get returns it and ignores
// its arguments. The instance is kept after Destroy.
type Factory struct {
	log *zap.Logger

	mu   sync.Mutex
	inst *Experience
}

func NewFactory(log *zap.Logger) *Factory {
	return &Factory{log: logging.OrNop(log).Named("experience")}
}

// Get returns the existing instance, or builds it on the first call.
func (f *Factory) Get(ctx context.Context, canvas Canvas, opts Options) (*Experience, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.inst != nil {
		f.logger().Warn("experience already created; canvas and options ignored")
		return f.inst, nil
	}
	e, err := New(ctx, canvas, opts)
	if err != nil {
		return nil, err
	}
	f.inst = e
	return e, nil
}

// Current returns the instance built by Get, or nil.
func (f *Factory) Current() *Experience {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inst
}

func (f *Factory) logger() *zap.Logger {
	if f.log == nil {
		return zap.NewNop()
	}
	return f.log
}
