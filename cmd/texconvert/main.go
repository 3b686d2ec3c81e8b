package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"softgpu/internal/batch"
	"softgpu/internal/config"
	"softgpu/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	inputDir := flag.String("input", "", "Directory to scan for textures")
	outputDir := flag.String("output", "", "Output directory (default: out)")
	format := flag.String("format", "", "Target pixel format, e.g. RGB, BGRA, LUMINANCE (default: RGBA)")
	typ := flag.String("type", "", "Target pixel type, e.g. UNSIGNED_SHORT_4_4_4_4 (default: UNSIGNED_BYTE)")
	scale := flag.Float64("scale", 0, "Nearest-neighbor resample ratio (default: 1)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Convert only first N textures for testing")

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
		InputDir:  *inputDir,
		OutputDir: *outputDir,
		Format:    *format,
		Type:      *typ,
		Scale:     *scale,
		Workers:   *workers,
	})

	if cfg.InputDir == "" {
		fmt.Fprintln(os.Stderr, "Error: no input directory. Use -input flag or config.json.")
		os.Exit(1)
	}
	target, err := cfg.Target()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Build texture index; extra arguments pick textures by name.
	texIndex := texture.BuildIndex(cfg.InputDir)
	fmt.Printf("Textures: %d indexed\n", texIndex.Len())

	files := texIndex.Paths()
	if flag.NArg() > 0 {
		files = files[:0:0]
		for _, name := range flag.Args() {
			path, ok := texIndex.ResolvePath(name)
			if !ok {
				fmt.Fprintf(os.Stderr, "Warning: texture %q not found\n", name)
				continue
			}
			files = append(files, path)
		}
	}

	// Limit for testing
	if *testN > 0 && *testN < len(files) {
		files = files[:*testN]
	}

	if len(files) == 0 {
		fmt.Println("No textures to convert.")
		os.Exit(0)
	}

	fmt.Printf("Texture conversion → %s (scale %g)\n", target, cfg.Scale)
	fmt.Printf("Textures: %d, Workers: %d\n", len(files), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		OutputDir: cfg.OutputDir,
		Target:    target,
		Scale:     cfg.Scale,
		Workers:   cfg.Workers,
	}, files)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	var errors []batch.Result
	for _, r := range results {
		if !r.Success {
			errors = append(errors, r)
		}
	}

	fmt.Printf("Converted: %d/%d\n", len(results)-len(errors), len(files))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(errors))
		for _, e := range errors[:min(len(errors), 20)] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, target, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(errors) > 0 {
		os.Exit(1)
	}
}
