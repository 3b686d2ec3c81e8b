package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"softgpu/internal/export"
	"softgpu/internal/pixel"
	"softgpu/internal/texture"
)

// Config holds all shared settings for a batch run.
type Config struct {
	OutputDir string
	Target    pixel.Encoding
	Scale     float64
	Workers   int
	// Progress is called every ProgressEvery with the number of finished
	// textures. Nil prints a status line to stdout.
	Progress      func(done, total int, rate float64)
	ProgressEvery time.Duration
}

// Result holds the outcome of converting one texture.
type Result struct {
	Name    string
	Source  string
	ID      int
	Width   int
	Height  int
	Raw     string
	PPM     string
	Success bool
	Error   string
}

// Run converts all files using a worker pool. Results are in the order
// of files; the index of a file is also its PPM id.
func Run(cfg Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := max(cfg.Workers, 1)
	every := cfg.ProgressEvery
	if every <= 0 {
		every = 2 * time.Second
	}
	progress := cfg.Progress
	if progress == nil {
		progress = func(done, total int, rate float64) {
			fmt.Printf("  [%d/%d] %.1f textures/sec\n", done, total, rate)
		}
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	var reporter sync.WaitGroup
	reporter.Add(1)
	go func() {
		defer reporter.Done()
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					progress(int(p), total, float64(p)/elapsed)
				}
			}
		}
	}()

	// Worker pool
	idxChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range idxChan {
				results[idx] = processTexture(cfg, idx, files[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range files {
		idxChan <- i
	}
	close(idxChan)

	wg.Wait()
	close(done)
	reporter.Wait()

	return results
}

func processTexture(cfg Config, id int, path string) Result {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	res := Result{Name: name, Source: path, ID: id}
	fail := func(err error) Result {
		res.Error = err.Error()
		return res
	}

	tex, err := texture.Load(path)
	if err != nil {
		return fail(err)
	}

	pix, err := pixel.ConvertImage(tex.Pix, tex.Width, tex.Height, tex.Encoding(), cfg.Target)
	if err != nil {
		return fail(fmt.Errorf("convert %s: %w", name, err))
	}
	w, h := tex.Width, tex.Height

	if cfg.Scale > 0 && cfg.Scale != 1 {
		pix, w, h, err = pixel.Scale(pix, w, h, cfg.Scale, cfg.Target)
		if err != nil {
			return fail(fmt.Errorf("scale %s: %w", name, err))
		}
	}
	res.Width, res.Height = w, h

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fail(err)
	}

	res.Raw = filepath.Join(cfg.OutputDir, name+".raw")
	if err := os.WriteFile(res.Raw, pix, 0644); err != nil {
		return fail(err)
	}

	res.PPM, err = export.ExportPPM(cfg.OutputDir, pix, w, h, cfg.Target, id)
	if err != nil {
		return fail(err)
	}

	res.Success = true
	return res
}
