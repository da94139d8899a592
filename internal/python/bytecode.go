// SPDX-License-Identifier: MPL-2.0

package python

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// PurgeBytecode removes the named cache directories under root. Paths
// that do not exist are skipped silently; the return lists what was
// actually removed. Removal failures are joined and reported but do
// not stop the sweep.
func PurgeBytecode(root string, dirs []string) ([]string, error) {
	var removed []string
	var errs []error
	for _, d := range dirs {
		p := d
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := os.RemoveAll(p); err != nil {
			errs = append(errs, err)
			continue
		}
		removed = append(removed, p)
	}
	return removed, errors.Join(errs...)
}

// FindBytecodeDirs walks root and returns every __pycache__ directory,
// skipping the virtual environment itself since its caches belong to
// pip.
func FindBytecodeDirs(root, envDir string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if envDir != "" && path == envDir {
			return filepath.SkipDir
		}
		if d.Name() == "__pycache__" {
			found = append(found, path)
			return filepath.SkipDir
		}
		return nil
	})
	return found, err
}
