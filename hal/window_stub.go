//go:build !cgo

package hal

// RunWindow always fails: the window backend needs cgo.
func RunWindow(WindowConfig, NewApp) error { return ErrNoWindow }
