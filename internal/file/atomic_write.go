package file

import (
	"fmt"
	"os"
	"path"

	"github.com/spf13/afero"
)

// WriteAtomic writes the contents to a sibling temp file and renames it over the destination, so readers never
// observe a partially written file.
func WriteAtomic(fs afero.Fs, dst string, contents []byte, perm os.FileMode) error {
	dir := path.Dir(dst)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("unable to create directory %q: %w", dir, err)
	}

	tmp, err := afero.TempFile(fs, dir, "."+path.Base(dst)+"-*")
	if err != nil {
		return fmt.Errorf("unable to create temp file in %q: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(contents); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return fmt.Errorf("unable to write %q: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("unable to close %q: %w", tmpName, err)
	}
	if err := fs.Chmod(tmpName, perm); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("unable to set permissions on %q: %w", tmpName, err)
	}
	if err := fs.Rename(tmpName, dst); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("unable to move %q into place: %w", dst, err)
	}
	return nil
}
