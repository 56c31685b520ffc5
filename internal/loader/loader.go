// Package loader handles program image file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/retroenv/retrochip8/internal/memory"
)

// ErrInvalidImage is the base error of all image loading failures.
var ErrInvalidImage = errors.New("invalid program image")

var (
	// ErrFileNotFound is returned when the image file does not exist.
	ErrFileNotFound = fmt.Errorf("%w: file not found", ErrInvalidImage)
	// ErrImageTooLarge is returned when the image does not fit into the
	// program area of the memory.
	ErrImageTooLarge = fmt.Errorf("%w: image too large", ErrInvalidImage)
	// ErrIO is returned when the image file can not be read.
	ErrIO = fmt.Errorf("%w: read failure", ErrInvalidImage)
)

// Loader handles loading program images from disk.
type Loader struct {
	maxSize int
}

// New creates a new program image loader.
func New() *Loader {
	return &Loader{
		maxSize: memory.MaxProgramSize,
	}
}

// Load reads the raw program image from the file at the given path.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: opening file %s: %w", ErrIO, path, err)
	}
	defer func() { _ = file.Close() }()

	return l.LoadFromReader(file)
}

// LoadFromReader reads the raw program image from the reader.
func (l *Loader) LoadFromReader(reader io.Reader) ([]byte, error) {
	// read one byte more than allowed to detect oversized images
	image, err := io.ReadAll(io.LimitReader(reader, int64(l.maxSize)+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading image: %w", ErrIO, err)
	}
	if len(image) > l.maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrImageTooLarge, l.maxSize)
	}
	return image, nil
}
