package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"stage/experience/resources"
)

type texture struct {
	source resources.Source
	w, h   int
	pixel  func(x, y, w, h int) color.RGBA
}

func textures(size int) []texture {
	return []texture{
		{
			source: resources.Source{Name: "floorColorTexture", Type: resources.TextureSource, Path: "textures/floor_color.png"},
			w:      size, h: size,
			pixel: floorColor,
		},
		{
			source: resources.Source{Name: "floorNormalTexture", Type: resources.TextureSource, Path: "textures/floor_normal.png"},
			w:      size, h: size,
			pixel: floorNormal,
		},
		{
			source: resources.Source{Name: "subjectColorTexture", Type: resources.TextureSource, Path: "textures/subject_color.png"},
			w:      size, h: size / 2,
			pixel: subjectColor,
		},
	}
}

// generate writes every texture and the manifest under dir and returns the
// written paths.
func generate(dir string, size int) ([]string, error) {
	var (
		written []string
		sources []resources.Source
	)
	for _, t := range textures(size) {
		path := filepath.Join(dir, filepath.FromSlash(t.source.Path))
		if err := writePNG(path, render(t)); err != nil {
			return written, err
		}
		written = append(written, path)
		sources = append(sources, t.source)
	}

	b, err := yaml.Marshal(struct {
		Sources []resources.Source `yaml:"sources"`
	}{sources})
	if err != nil {
		return written, fmt.Errorf("mkassets: manifest: %w", err)
	}
	manifest := filepath.Join(dir, "sources.yaml")
	header := []byte("# Static asset manifest. Paths are relative to the asset root.\n")
	if err := os.WriteFile(manifest, append(header, b...), 0o644); err != nil {
		return written, fmt.Errorf("mkassets: %w", err)
	}
	return append(written, manifest), nil
}

func render(t texture) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.w, t.h))
	for y := 0; y < t.h; y++ {
		for x := 0; x < t.w; x++ {
			img.SetRGBA(x, y, t.pixel(x, y, t.w, t.h))
		}
	}
	return img
}

func writePNG(path string, img image.Image) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkassets: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("mkassets: %w", err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("mkassets: encode %s: %w", path, err)
	}
	return nil
}

// floorColor is an earthy checkerboard with a little per-cell variation.
func floorColor(x, y, w, h int) color.RGBA {
	cell := max(w/8, 1)
	cx, cy := x/cell, y/cell
	base := uint8(96)
	if (cx+cy)%2 == 0 {
		base = 128
	}
	jitter := uint8((cx*7 + cy*13) % 16)
	return color.RGBA{R: base + jitter, G: base*3/4 + jitter, B: base / 2, A: 255}
}

// floorNormal encodes the normals of a shallow sine bump field.
func floorNormal(x, y, w, h int) color.RGBA {
	const amp = 0.35
	fx := 2 * math.Pi * 4 / float64(w)
	fy := 2 * math.Pi * 4 / float64(h)
	dx := amp * math.Cos(float64(x)*fx)
	dy := amp * math.Cos(float64(y)*fy)
	n := [3]float64{-dx, -dy, 1}
	l := math.Sqrt(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
	enc := func(v float64) uint8 { return uint8(math.Round((v/l*0.5 + 0.5) * 255)) }
	return color.RGBA{R: enc(n[0]), G: enc(n[1]), B: enc(n[2]), A: 255}
}

// subjectColor is a warm horizontal gradient with bands.
func subjectColor(x, y, w, h int) color.RGBA {
	t := float64(x) / float64(w-1)
	band := uint8(0)
	if (y*8/h)%2 == 0 {
		band = 24
	}
	return color.RGBA{
		R: uint8(200+55*t) - band/2,
		G: uint8(90 + 80*t),
		B: uint8(60+40*(1-t)) + band,
		A: 255,
	}
}
