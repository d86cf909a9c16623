package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// skipDirs names directories DiscoverFiles never descends into: VCS
// metadata and dependency trees that never contain source a validator
// should touch.
var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
	"vendor":       {},
	".venv":        {},
	"__pycache__":  {},
	".terraform":   {},
}

// DiscoverFiles expands paths (files and directories) into a flat,
// deduplicated list of regular file paths. A directory is walked
// recursively, skipping skipDirs; a file is included as-is regardless
// of extension, since CanHandle decides relevance per validator.
func DiscoverFiles(paths []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string

	add := func(path string) {
		clean := filepath.Clean(path)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			add(p)
			continue
		}

		err = filepath.Walk(p, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fi.IsDir() {
				if _, skip := skipDirs[fi.Name()]; skip && path != p {
					return filepath.SkipDir
				}
				if strings.HasPrefix(fi.Name(), ".") && path != p {
					return filepath.SkipDir
				}
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}
