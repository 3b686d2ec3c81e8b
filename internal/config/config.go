package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"softgpu/internal/export"
	"softgpu/internal/pixel"
)

// Config holds the settings shared by the render and texconvert tools.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`

	// Render settings
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Frames      int    `json:"frames"`
	Supersample int    `json:"supersample"`
	Wireframe   bool   `json:"wireframe"`
	Output      string `json:"output"`

	// Conversion settings
	Format  string  `json:"format"`
	Type    string  `json:"type"`
	Scale   float64 `json:"scale"`
	Workers int     `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Wireframe {
		c.Wireframe = true
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Type != "" {
		c.Type = flags.Type
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if c.InputDir != "" && !filepath.IsAbs(c.InputDir) {
		if abs, err := filepath.Abs(c.InputDir); err == nil {
			c.InputDir = abs
		}
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 640
	}
	if c.Height <= 0 {
		c.Height = 480
	}
	if c.Frames <= 0 {
		c.Frames = 1
	}
	if c.Supersample <= 0 {
		c.Supersample = 1
	}
	if c.Output == "" {
		c.Output = string(export.WebP)
	}

	// Defaults for conversion settings
	if c.Format == "" {
		c.Format = pixel.RGBA.String()
	}
	if c.Type == "" {
		c.Type = pixel.UnsignedByte.String()
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Target parses Format and Type into the conversion target.
func (c *Config) Target() (pixel.Encoding, error) {
	f, err := pixel.ParseFormat(c.Format)
	if err != nil {
		return pixel.Encoding{}, fmt.Errorf("config: %w", err)
	}
	t, err := pixel.ParseType(c.Type)
	if err != nil {
		return pixel.Encoding{}, fmt.Errorf("config: %w", err)
	}
	e := pixel.Encoding{Format: f, Type: t}
	if e.Size() == 0 {
		return pixel.Encoding{}, fmt.Errorf("config: target %s: %w", e, pixel.ErrUnsupportedType)
	}
	return e, nil
}

// OutputKind parses Output into an image file kind.
func (c *Config) OutputKind() (export.Kind, error) {
	return export.ParseKind(c.Output)
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir    string
	OutputDir   string
	Width       int
	Height      int
	Frames      int
	Supersample int
	Wireframe   bool
	Output      string
	Format      string
	Type        string
	Scale       float64
	Workers     int
}
