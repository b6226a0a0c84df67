// Package app wires the configuration and the host canvas into an
// Experience and adapts it to the hal runner contract.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"stage/experience"
	"stage/experience/resources"
	"stage/hal"
	"stage/internal/config"
	"stage/internal/logging"
)

// ManifestFile is the source manifest looked up in an asset directory.
const ManifestFile = "sources.yaml"

// Options configures New.
type Options struct {
	Config config.Config
	Logger *zap.Logger
	// Factory hands out the experience; a fresh one is used when nil.
	Factory *experience.Factory

	DebugInput  io.Reader
	DebugOutput io.Writer
}

// App drives an Experience from a hal runner.
type App struct {
	log *zap.Logger
	exp *experience.Experience
}

// New returns the constructor the hal runners call once their canvas exists.
func New(ctx context.Context, opts Options) hal.NewApp {
	return func(c *hal.Canvas) (hal.App, error) {
		log := logging.OrNop(opts.Logger)
		f := opts.Factory
		if f == nil {
			f = experience.NewFactory(log)
		}

		eopts := experience.Options{
			Config:      opts.Config,
			Logger:      log,
			DebugInput:  opts.DebugInput,
			DebugOutput: opts.DebugOutput,
		}
		if dir := opts.Config.Assets; dir != "" {
			fsys, sources, err := LoadAssetDir(dir)
			if err != nil {
				return nil, err
			}
			eopts.Assets, eopts.Sources, eopts.WatchDir = fsys, sources, dir
		}

		e, err := f.Get(ctx, c, eopts)
		if err != nil {
			return nil, err
		}
		return &App{log: log.Named("app"), exp: e}, nil
	}
}

// LoadAssetDir opens dir as the asset tree. The manifest in dir is used when
// present, otherwise the built-in one.
func LoadAssetDir(dir string) (fs.FS, []resources.Source, error) {
	fsys := os.DirFS(dir)
	b, err := fs.ReadFile(fsys, ManifestFile)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fsys, resources.Sources, nil
	case err != nil:
		return nil, nil, fmt.Errorf("app: assets: %w", err)
	}
	sources, err := resources.ParseSources(b)
	if err != nil {
		return nil, nil, fmt.Errorf("app: assets %s: %w", dir, err)
	}
	return fsys, sources, nil
}

func (a *App) Experience() *experience.Experience { return a.exp }

// Update steps the frame clock, which ticks the experience.
func (a *App) Update(now time.Time) (err error) {
	defer a.recoverFrame(&err)
	a.exp.Time().Step(now)
	return nil
}

// Layout feeds the host viewport to the experience.
func (a *App) Layout(w, h int, scale float64) {
	a.exp.Sizes().Set(w, h, scale)
}

// Close destroys the experience.
func (a *App) Close() error {
	return a.exp.Destroy()
}
