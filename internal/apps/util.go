package apps

import (
	"io/fs"
	"path/filepath"
)

// countRegularFiles walks root and counts regular files. Used to report how
// many files a directory copy moved without threading counters through the
// copy itself.
func countRegularFiles(root string) int {
	count := 0
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			count++
		}
		return nil
	})
	return count
}
