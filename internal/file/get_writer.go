package file

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// GetWriter returns the default writer when no output file is given, otherwise a truncated file at that path along
// with its closer.
func GetWriter(fs afero.Fs, defaultWriter io.Writer, outputFile string) (io.Writer, func() error, error) {
	nop := func() error { return nil }
	location := strings.TrimSpace(outputFile)
	if location == "" {
		return defaultWriter, nop, nil
	}

	fh, err := fs.OpenFile(location, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nop, fmt.Errorf("unable to create report file: %w", err)
	}

	return fh, fh.Close, nil
}
