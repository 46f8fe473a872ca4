// Package fsutil provides file system helpers that work over io/fs so that
// embedded layouts and on-disk layouts are walked the same way.
package fsutil

import (
	"io/fs"
	"sort"
	"strings"
)

// FindFilesByExtension walks fsys from root and returns the paths of all files
// ending with one of the given extensions, sorted.
func FindFilesByExtension(fsys fs.FS, root string, extensions ...string) ([]string, error) {
	if len(extensions) == 0 {
		panic("at least one extension is required")
	}

	var files []string
	err := fs.WalkDir(fsys, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range extensions {
			if strings.HasSuffix(d.Name(), ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
