package resources

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ErrClosed is returned by Watch after Close.
var ErrClosed = errors.New("resources: closed")

type watcher struct {
	fw   *fsnotify.Watcher
	done chan struct{}
}

// Watch reloads sources whose files under dir change. Decoding happens on the
// watcher goroutine; the results are applied by Sync.
func (r *Resources) Watch(dir string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrClosed
	}
	if r.watch != nil {
		return nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("resources: watch: %w", err)
	}
	byPath := make(map[string]Source, len(r.sources))
	dirs := make(map[string]bool)
	for _, s := range r.sources {
		p := filepath.Clean(filepath.Join(dir, filepath.FromSlash(s.Path)))
		byPath[p] = s
		dirs[filepath.Dir(p)] = true
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			fw.Close()
			return fmt.Errorf("resources: watch %s: %w", d, err)
		}
	}

	w := &watcher{fw: fw, done: make(chan struct{})}
	r.watch = w
	go r.watchLoop(w, byPath)
	r.log.Info("watching assets", zap.String("dir", dir), zap.Int("dirs", len(dirs)))
	return nil
}

func (r *Resources) watchLoop(w *watcher, byPath map[string]Source) {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			s, ok := byPath[filepath.Clean(ev.Name)]
			if !ok {
				continue
			}
			img, err := decode(os.DirFS(filepath.Dir(ev.Name)), Source{Name: s.Name, Type: s.Type, Path: filepath.Base(ev.Name)})
			if err != nil {
				// Editors often write files in several steps; the next event retries.
				r.log.Debug("reload decode failed", zap.String("name", s.Name), zap.Error(err))
				continue
			}
			r.enqueue(s.Name, img)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			r.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *watcher) close() error {
	err := w.fw.Close()
	<-w.done
	return err
}
