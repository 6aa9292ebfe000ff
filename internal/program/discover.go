package program

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/VKCOM/langbench/internal/config"
)

// configSuffixes are never treated as programs when a directory is scanned.
var configSuffixes = map[string]bool{
	".yaml": true,
	".yml":  true,
	".toml": true,
}

// Discover applies filters and returns the selected programs sorted by
// path. Files with an unsupported suffix are skipped with a warning.
func Discover(filters config.Filters, log *slog.Logger) ([]Program, error) {
	var paths []string

	for _, dir := range filters.Directories {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.Type().IsRegular() || configSuffixes[filepath.Ext(e.Name())] {
				continue
			}
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}

	for _, path := range filters.Include {
		if _, err := os.Stat(path); err == nil {
			paths = append(paths, path)
		} else {
			log.Warn("included program does not exist", "path", path)
		}
	}

	excluded := make(map[string]bool, len(filters.Exclude))
	for _, path := range filters.Exclude {
		excluded[absPath(path)] = true
	}
	ignored := make(map[string]bool, len(filters.Ignore))
	for _, suffix := range filters.Ignore {
		ignored[suffix] = true
	}

	seen := make(map[string]bool)
	var programs []Program
	for _, path := range paths {
		abs := absPath(path)
		if excluded[abs] || ignored[filepath.Ext(abs)] || seen[abs] {
			continue
		}
		seen[abs] = true

		p, err := New(abs)
		if err != nil {
			log.Warn("skipping program", "path", abs, "err", err)
			continue
		}
		programs = append(programs, p)
	}

	sort.Slice(programs, func(i, j int) bool {
		return programs[i].Path() < programs[j].Path()
	})
	return programs, nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}
