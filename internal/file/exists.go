package file

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

// Exists reports whether a regular file is present at the path. Directories are not files.
func Exists(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, fmt.Errorf("unable to stat %q: %w", path, err)
	}
	return !info.IsDir(), nil
}
