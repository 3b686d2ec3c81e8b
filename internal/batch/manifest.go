package batch

import (
	"encoding/json"
	"os"
	"path/filepath"

	"softgpu/internal/pixel"
)

// ManifestEntry represents one converted texture in the output manifest.
type ManifestEntry struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Type   string `json:"type"`
	Raw    string `json:"raw"`
	PPM    string `json:"ppm"`
}

// WriteManifest writes the successful results to path as JSON. Output
// paths are stored relative to the manifest's directory.
func WriteManifest(path string, target pixel.Encoding, results []Result) error {
	dir := filepath.Dir(path)
	rel := func(p string) string {
		if r, err := filepath.Rel(dir, p); err == nil {
			return filepath.ToSlash(r)
		}
		return p
	}

	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Success {
			continue
		}
		entries = append(entries, ManifestEntry{
			Name:   r.Name,
			Source: r.Source,
			Width:  r.Width,
			Height: r.Height,
			Format: target.Format.String(),
			Type:   target.Type.String(),
			Raw:    rel(r.Raw),
			PPM:    rel(r.PPM),
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
