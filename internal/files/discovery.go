package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SourceExtensions lists the tabular formats a trip source may use, in lookup order.
var SourceExtensions = []string{".csv", ".xlsx"}

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Ext returns the lower-cased extension
func (f FileInfo) Ext() string {
	return strings.ToLower(filepath.Ext(f.Name))
}

// Discovery locates trip sources under a base directory
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// BasePath returns the directory sources are resolved against
func (d *Discovery) BasePath() string {
	return d.basePath
}

// Resolve finds the source for name. Relative names are joined to the base
// path. A name without an extension is tried with each SourceExtensions entry.
// The returned error wraps os.ErrNotExist when nothing matches.
func (d *Discovery) Resolve(name string) (FileInfo, error) {
	fullPath := name
	if !filepath.IsAbs(name) {
		fullPath = filepath.Join(d.basePath, name)
	}

	candidates := []string{fullPath}
	if filepath.Ext(fullPath) == "" {
		candidates = candidates[:0]
		for _, ext := range SourceExtensions {
			candidates = append(candidates, fullPath+ext)
		}
	}

	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		return FileInfo{
			Path:    candidate,
			Name:    info.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}, nil
	}

	return FileInfo{}, fmt.Errorf("no source for %s in %s: %w", name, d.basePath, os.ErrNotExist)
}

// FindSources lists every CSV and XLSX file directly under dir, sorted by name.
// Spreadsheet lock files (~$name.xlsx) are skipped.
func (d *Discovery) FindSources(dir string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "~$") {
			continue
		}
		if !IsSourceExtension(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// IsSourceExtension reports whether name ends in a supported extension
func IsSourceExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range SourceExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
