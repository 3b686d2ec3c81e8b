package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"softgpu/internal/config"
	"softgpu/internal/export"
	"softgpu/internal/mathutil"
	"softgpu/internal/postprocess"
	"softgpu/internal/raster"
)

var (
	background = color.RGBA{0x20, 0x24, 0x2C, 0xFF}
	captionInk = color.RGBA{0xF0, 0xC0, 0x40, 0xFF}
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	outputDir := flag.String("output", "", "Output directory (default: out)")
	width := flag.Int("width", 0, "Frame width in pixels (default: 640)")
	height := flag.Int("height", 0, "Frame height in pixels (default: 480)")
	frames := flag.Int("frames", 0, "Number of frames over one full turn (default: 1)")
	supersample := flag.Int("supersample", 0, "Render at N× size and downsample (default: 1)")
	wireframe := flag.Bool("wireframe", false, "Outline triangles instead of filling them")
	format := flag.String("format", "", "Image format: webp, bmp, tiff or ppm (default: webp)")
	raw := flag.Bool("raw", false, "Also blit each frame to a .raw file in the configured pixel format/type")
	pixFormat := flag.String("pixel-format", "", "Raw pixel format, e.g. BGRA (default: RGBA)")
	pixType := flag.String("pixel-type", "", "Raw pixel type, e.g. UNSIGNED_INT_8_8_8_8_REV (default: UNSIGNED_BYTE)")
	caption := flag.Bool("caption", true, "Draw frame number and triangle count")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		OutputDir:   *outputDir,
		Width:       *width,
		Height:      *height,
		Frames:      *frames,
		Supersample: *supersample,
		Wireframe:   *wireframe,
		Output:      *format,
		Format:      *pixFormat,
		Type:        *pixType,
	})

	kind, err := cfg.OutputKind()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	target, err := cfg.Target()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mode := raster.Solid
	if cfg.Wireframe {
		mode = raster.Wireframe
	}

	rw, rh := cfg.Width*cfg.Supersample, cfg.Height*cfg.Supersample
	sc := scene{width: rw, height: rh, distance: 4, axis: mathutil.Vec3{1, 1, 0.3}}
	mesh := cube(1)

	fmt.Printf("Software rasterizer → %s\n", kind)
	fmt.Printf("Frames: %d, Size: %dx%d (%dx supersample), Mode: %s\n",
		cfg.Frames, cfg.Width, cfg.Height, cfg.Supersample, mode)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	fb := raster.NewFrameBuffer(rw, rh)
	var blit []byte
	if *raw {
		blit = make([]byte, rw*rh*target.Size())
	}

	failed := 0
	for i := 0; i < cfg.Frames; i++ {
		fb.Clear(background)
		drawn := raster.DrawVertices(fb, sc.project(mesh, frameAngle(i, cfg.Frames)), mode)

		if blit != nil {
			rawPath := filepath.Join(cfg.OutputDir, fmt.Sprintf("frame_%03d.raw", i))
			if err := fb.Blit(blit, target); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: frame %d blit: %v\n", i, err)
			} else if err := os.WriteFile(rawPath, blit, 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: frame %d raw write: %v\n", i, err)
			}
		}

		img := fb.Image()
		if cfg.Supersample > 1 {
			img = postprocess.Downsample(img, cfg.Width, cfg.Height)
		}
		if *caption {
			export.Caption(img, fmt.Sprintf("frame %d  %d/%d tris", i, drawn, len(mesh)/3), captionInk)
		}

		path := filepath.Join(cfg.OutputDir, fmt.Sprintf("frame_%03d.%s", i, kind))
		if err := export.Save(path, img); err != nil {
			fmt.Fprintf(os.Stderr, "Error: frame %d: %v\n", i, err)
			failed++
			continue
		}
		fmt.Printf("  [%d/%d] %s (%d triangles)\n", i+1, cfg.Frames, path, drawn)
	}

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())
	fmt.Printf("Rendered: %d/%d\n", cfg.Frames-failed, cfg.Frames)
	if *raw {
		fmt.Printf("Raw frames: %s at %dx%d\n", target, rw, rh)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
