package runner

import (
	"fmt"
	"io"
	"os"
)

// createWriter returns a writer for the named output file, or the fallback
// writer if no name is given. The returned function closes the file.
func createWriter(name string, fallback io.Writer) (io.Writer, func(), error) {
	if name == "" {
		return fallback, func() {}, nil
	}

	file, err := os.Create(name)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file %s: %w", name, err)
	}
	return file, func() { _ = file.Close() }, nil
}
