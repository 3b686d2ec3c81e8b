package texture

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Index maps lowercase texture stems to filesystem paths.
// Formats that carry alpha take priority over ones that don't for the
// same stem.
type Index struct {
	entries map[string]string // stem.lower() → full path
}

var alphaExt = map[string]bool{
	".tga":  true,
	".png":  true,
	".webp": true,
	".tif":  true,
	".tiff": true,
}

// BuildIndex scans dir and its subdirectories for supported textures.
func BuildIndex(dir string) *Index {
	idx := &Index{entries: make(map[string]string)}

	filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !Supported(path) {
			return nil
		}
		stem := stemOf(path)

		existing, exists := idx.entries[stem]
		switch {
		case !exists:
			idx.entries[stem] = path
		case alphaExt[strings.ToLower(filepath.Ext(path))] && !alphaExt[strings.ToLower(filepath.Ext(existing))]:
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// ResolvePath returns the filesystem path for a texture name, or ("", false).
func (idx *Index) ResolvePath(texName string) (string, bool) {
	// Strip path prefix (e.g., "models\\skin.jpg" → "skin")
	texName = strings.ReplaceAll(texName, "\\", "/")
	path, ok := idx.entries[stemOf(texName)]
	return path, ok
}

// Paths returns every indexed path, sorted.
func (idx *Index) Paths() []string {
	paths := make([]string, 0, len(idx.entries))
	for _, p := range idx.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
