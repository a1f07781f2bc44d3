// Package output provides PixelSink implementations that persist rendered images.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

var (
	// ErrUnsupportedFormat is returned by Create for unknown file extensions.
	ErrUnsupportedFormat = errors.New("output: unsupported image format")

	// ErrInvalidSize is returned by Begin for non-positive dimensions.
	ErrInvalidSize = errors.New("output: invalid image size")

	// ErrPixelCount is returned when a sink receives more or fewer pixels than announced.
	ErrPixelCount = errors.New("output: pixel count mismatch")
)

// Formats lists the file extensions Create understands
var Formats = []string{".ppm", ".png"}

// Create opens path for writing and returns a sink chosen by its extension
func Create(path string) (renderer.PixelSink, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".ppm":
		file, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("output: create %s: %w", path, err)
		}
		return NewPPMWriter(file), nil
	case ".png":
		return NewPNGFileSink(path), nil
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedFormat, ext, strings.Join(Formats, ", "))
	}
}

func checkSize(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return nil
}
