package output

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// ImageSink collects pixels into an in-memory RGBA image.
// When created with a path, End encodes the image there as PNG.
type ImageSink struct {
	img    *image.RGBA
	path   string
	next   int
	width  int
	height int
}

// NewImageSink creates an in-memory sink
func NewImageSink() *ImageSink {
	return &ImageSink{}
}

// NewPNGFileSink creates a sink that writes a PNG to path when the render ends
func NewPNGFileSink(path string) *ImageSink {
	return &ImageSink{path: path}
}

// Begin allocates the image
func (s *ImageSink) Begin(width, height int) error {
	if err := checkSize(width, height); err != nil {
		return err
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
	s.width, s.height = width, height
	s.next = 0
	return nil
}

// WritePixel stores the next pixel in row-major order
func (s *ImageSink) WritePixel(c core.Color) error {
	if s.img == nil || s.next >= s.width*s.height {
		return fmt.Errorf("%w: more than %d pixels", ErrPixelCount, s.width*s.height)
	}
	r, g, b := renderer.ToBytes(c)
	s.img.SetRGBA(s.next%s.width, s.next/s.width, color.RGBA{R: r, G: g, B: b, A: 255})
	s.next++
	return nil
}

// End verifies the pixel count and writes the PNG file, if any
func (s *ImageSink) End() error {
	if s.img == nil || s.next != s.width*s.height {
		return fmt.Errorf("%w: wrote %d of %d pixels", ErrPixelCount, s.next, s.width*s.height)
	}
	if s.path == "" {
		return nil
	}

	file, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", s.path, err)
	}
	if err := s.EncodePNG(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Image returns the collected image, or nil before Begin
func (s *ImageSink) Image() *image.RGBA {
	return s.img
}

// EncodePNG writes the collected image to w
func (s *ImageSink) EncodePNG(w io.Writer) error {
	if s.img == nil {
		return fmt.Errorf("%w: no image", ErrPixelCount)
	}
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("output: encode png: %w", err)
	}
	return nil
}
