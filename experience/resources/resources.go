// Package resources loads the assets named by a manifest.
package resources

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"stage/internal/event"
	"stage/internal/logging"
	"stage/quark"
)

// loadConcurrency bounds the number of sources decoded at once.
const loadConcurrency = 4

// Resources decodes every source of a manifest and keeps the results by name.
type Resources struct {
	log     *zap.Logger
	fsys    fs.FS
	sources []Source

	items  map[string]*quark.Texture
	loaded int
	ready  event.Emitter[struct{}]
	done   bool

	mu      sync.Mutex
	pending []reload
	watch   *watcher
	closed  bool
}

type reload struct {
	name string
	img  image.Image
}

// New returns a loader for sources read from fsys. Nothing is read until Load.
func New(fsys fs.FS, sources []Source, log *zap.Logger) *Resources {
	return &Resources{
		log:     logging.OrNop(log).Named("resources"),
		fsys:    fsys,
		sources: sources,
		items:   make(map[string]*quark.Texture, len(sources)),
	}
}

func (r *Resources) ToLoad() int { return len(r.sources) }
func (r *Resources) Loaded() int { return r.loaded }
func (r *Resources) Ready() bool { return r.done }

// Texture returns a loaded texture by source name.
func (r *Resources) Texture(name string) (*quark.Texture, bool) {
	t, ok := r.items[name]
	return t, ok
}

// Load decodes every source and then fires the ready stream. A second call
// returns immediately.
func (r *Resources) Load(ctx context.Context) error {
	if r.done {
		return nil
	}
	imgs := make([]image.Image, len(r.sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, s := range r.sources {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decode(r.fsys, s)
			if err != nil {
				return err
			}
			imgs[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, s := range r.sources {
		r.items[s.Name] = quark.NewTexture(s.Name, imgs[i])
		r.loaded++
		r.log.Debug("source loaded", zap.String("name", s.Name), zap.Int("loaded", r.loaded), zap.Int("toLoad", len(r.sources)))
	}
	r.done = true
	r.log.Info("resources ready", zap.Int("count", r.loaded))
	r.ready.Emit(struct{}{})
	return nil
}

// OnReady registers fn for the ready stream. If loading already finished fn
// runs immediately and the returned token is zero.
func (r *Resources) OnReady(fn func()) event.Token {
	if fn == nil {
		return 0
	}
	if r.done {
		fn()
		return 0
	}
	return r.ready.On(func(struct{}) { fn() })
}

// Off unsubscribes a ready handler. Unknown tokens are ignored.
func (r *Resources) Off(tok event.Token) { r.ready.Off(tok) }

// Sync applies reloaded images queued by the watcher to their textures and
// returns how many were applied. It does no I/O.
func (r *Resources) Sync() int {
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	r.mu.Unlock()

	n := 0
	for _, p := range pending {
		t, ok := r.items[p.name]
		if !ok {
			continue
		}
		if err := t.Replace(p.img); err != nil {
			r.log.Warn("reload skipped", zap.String("name", p.name), zap.Error(err))
			continue
		}
		r.log.Info("source reloaded", zap.String("name", p.name))
		n++
	}
	return n
}

func (r *Resources) enqueue(name string, img image.Image) {
	r.mu.Lock()
	r.pending = append(r.pending, reload{name: name, img: img})
	r.mu.Unlock()
}

// Close stops watching and releases every loaded texture. Calling it again
// does nothing.
func (r *Resources) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	w := r.watch
	r.watch = nil
	r.pending = nil
	r.mu.Unlock()

	var err error
	if w != nil {
		err = w.close()
	}
	for _, t := range r.items {
		_ = t.Dispose()
	}
	return err
}

func decode(fsys fs.FS, s Source) (image.Image, error) {
	if s.Type != TextureSource {
		return nil, fmt.Errorf("%w %q for %q", ErrUnknownSource, s.Type, s.Name)
	}
	f, err := fsys.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("resources: open %q: %w", s.Name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("resources: decode %q: %w", s.Name, err)
	}
	return img, nil
}
