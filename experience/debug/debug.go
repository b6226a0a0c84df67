// Package debug provides the optional tweak panel of the experience.
package debug

import (
	"io"

	"go.uber.org/zap"

	"stage/internal/logging"
)

// Options configures Debug.
type Options struct {
	Active bool
	// Input and Output are the terminal the panel runs on. The panel is
	// created but not started when Output is nil.
	Input  io.Reader
	Output io.Writer
}

// Debug holds the active flag and, when active, the panel UI.
type Debug struct {
	active bool
	ui     *Panel
}

// New builds the debug panel when opts.Active is set.
func New(opts Options, log *zap.Logger) (*Debug, error) {
	d := &Debug{active: opts.Active}
	if !d.active {
		return d, nil
	}
	d.ui = NewPanel(logging.OrNop(log).Named("debug"))
	if opts.Output != nil {
		if err := d.ui.Start(opts.Input, opts.Output); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (d *Debug) Active() bool { return d.active }

// UI returns the panel, or nil when inactive.
func (d *Debug) UI() *Panel { return d.ui }

// Folder returns a new folder on the panel, or a detached folder when the
// panel is inactive so callers need not branch.
func (d *Debug) Folder(name string) *Folder {
	if d.ui == nil {
		return &Folder{Name: name}
	}
	return d.ui.AddFolder(name)
}
