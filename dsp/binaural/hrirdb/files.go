package hrirdb

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ListFiles returns the regular files under root in lexical order. Without
// recurse only the top level is listed.
func ListFiles(root string, recurse bool) ([]string, error) {
	var files []string

	if !recurse {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("hrirdb: list %s: %w", root, err)
		}
		for _, e := range entries {
			if e.Type().IsRegular() {
				files = append(files, filepath.Join(root, e.Name()))
			}
		}
		return files, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("hrirdb: walk %s: %w", root, err)
	}

	sort.Strings(files)
	return files, nil
}
