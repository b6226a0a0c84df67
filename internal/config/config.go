// Package config holds the runtime configuration of stage.
//
// Values start from Default, are overlaid by an optional YAML file and then by
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"stage/quark"
)

// Config is the full runtime configuration.
type Config struct {
	LogLevel string `yaml:"log_level"`
	// Debug enables the debug panel and asset hot reload.
	Debug bool `yaml:"debug"`
	// Assets is a directory to load assets from instead of the embedded set.
	Assets string `yaml:"assets"`

	Window   WindowConfig   `yaml:"window"`
	Headless HeadlessConfig `yaml:"headless"`
	Camera   CameraConfig   `yaml:"camera"`
	Renderer RendererConfig `yaml:"renderer"`
}

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	TPS    int    `yaml:"tps"`
}

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Enabled bool `yaml:"enabled"`
	Hz      int  `yaml:"hz"`
	// Ticks stops the runner after N ticks (0 = run until cancelled).
	Ticks uint64 `yaml:"ticks"`
	// Snapshot writes the last frame as PNG to this path when set.
	Snapshot string `yaml:"snapshot"`
}

// CameraConfig describes the initial camera.
type CameraConfig struct {
	FOV      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
	Position [3]float32 `yaml:"position"`
	Damping  float32    `yaml:"damping"`
}

// RendererConfig describes renderer output.
type RendererConfig struct {
	ClearColor    string  `yaml:"clear_color"`
	Exposure      float32 `yaml:"exposure"`
	Wireframe     bool    `yaml:"wireframe"`
	MaxPixelRatio float64 `yaml:"max_pixel_ratio"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Window: WindowConfig{
			Title:  "stage",
			Width:  960,
			Height: 540,
			TPS:    60,
		},
		Headless: HeadlessConfig{Hz: 60},
		Camera: CameraConfig{
			FOV:      35,
			Near:     0.1,
			Far:      100,
			Position: [3]float32{6, 4, 8},
			Damping:  0.05,
		},
		Renderer: RendererConfig{
			ClearColor:    "#211d20",
			Exposure:      1.75,
			MaxPixelRatio: 2,
		},
	}
}

// Load reads path over the defaults. An empty path returns Default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log level: %w", err))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("window tps must be positive, got %d", c.Window.TPS))
	}
	if c.Headless.Hz <= 0 {
		errs = append(errs, fmt.Errorf("headless hz must be positive, got %d", c.Headless.Hz))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera fov must be in (0, 180), got %v", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera planes must satisfy 0 < near < far, got %v/%v", c.Camera.Near, c.Camera.Far))
	}
	if _, err := quark.ParseHex(c.Renderer.ClearColor); err != nil {
		errs = append(errs, err)
	}
	if c.Renderer.Exposure <= 0 {
		errs = append(errs, fmt.Errorf("renderer exposure must be positive, got %v", c.Renderer.Exposure))
	}
	if c.Renderer.MaxPixelRatio < 1 {
		errs = append(errs, fmt.Errorf("renderer max pixel ratio must be >= 1, got %v", c.Renderer.MaxPixelRatio))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
