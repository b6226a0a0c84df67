package hal

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"go.uber.org/multierr"
)

// WriteSnapshot encodes img as PNG at path.
func WriteSnapshot(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("hal: snapshot: %w", err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("hal: snapshot: %w", err)
	}
	return nil
}
