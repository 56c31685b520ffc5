package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/retroenv/retrochip8/internal/memory"
	"github.com/retroenv/retrogolib/assert"
)

//nolint:funlen // test functions can be long
func TestLoad(t *testing.T) {
	t.Run("load program file", func(t *testing.T) {
		tmpFile := createTempFile(t, []byte{0x12, 0x34, 0x56, 0x78})

		image, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, image)
	})

	t.Run("load empty file", func(t *testing.T) {
		tmpFile := createTempFile(t, nil)

		image, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Empty(t, image)
	})

	t.Run("load largest image", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, memory.MaxProgramSize))

		image, err := New().Load(tmpFile)
		assert.NoError(t, err)
		assert.Len(t, image, memory.MaxProgramSize)
	})

	t.Run("error on oversized image", func(t *testing.T) {
		tmpFile := createTempFile(t, make([]byte, memory.MaxProgramSize+1))

		_, err := New().Load(tmpFile)
		assert.True(t, errors.Is(err, ErrImageTooLarge))
		assert.True(t, errors.Is(err, ErrInvalidImage))
	})

	t.Run("error on non-existent file", func(t *testing.T) {
		_, err := New().Load(filepath.Join(t.TempDir(), "missing.ch8"))
		assert.True(t, errors.Is(err, ErrFileNotFound))
		assert.True(t, errors.Is(err, ErrInvalidImage))
		assert.False(t, errors.Is(err, ErrIO))
	})

	t.Run("error on directory", func(t *testing.T) {
		_, err := New().Load(t.TempDir())
		assert.True(t, errors.Is(err, ErrIO))
		assert.True(t, errors.Is(err, ErrInvalidImage))
	})
}

func TestLoadFromReader(t *testing.T) {
	t.Run("read failure", func(t *testing.T) {
		_, err := New().LoadFromReader(iotest.ErrReader(errors.New("disk on fire")))
		assert.True(t, errors.Is(err, ErrIO))
		assert.ErrorContains(t, err, "disk on fire")
	})
}

func createTempFile(t *testing.T, data []byte) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "test.ch8")
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
