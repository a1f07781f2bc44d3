package output

import (
	"bufio"
	"fmt"
	"io"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// PPMWriter streams pixels as a plain-text (P3) PPM image
type PPMWriter struct {
	w        *bufio.Writer
	closer   io.Closer
	expected int
	written  int
}

// NewPPMWriter creates a PPM sink on w. If w is also an io.Closer it is
// closed by End or Close.
func NewPPMWriter(w io.Writer) *PPMWriter {
	p := &PPMWriter{w: bufio.NewWriter(w)}
	if closer, ok := w.(io.Closer); ok {
		p.closer = closer
	}
	return p
}

// Begin writes the header
func (p *PPMWriter) Begin(width, height int) error {
	if err := checkSize(width, height); err != nil {
		return err
	}
	p.expected = width * height
	p.written = 0
	_, err := fmt.Fprintf(p.w, "P3\n%d %d\n255\n", width, height)
	return err
}

// WritePixel writes one "r g b" line
func (p *PPMWriter) WritePixel(c core.Color) error {
	if p.written >= p.expected {
		return fmt.Errorf("%w: more than %d pixels", ErrPixelCount, p.expected)
	}
	r, g, b := renderer.ToBytes(c)
	if _, err := fmt.Fprintf(p.w, "%d %d %d\n", r, g, b); err != nil {
		return err
	}
	p.written++
	return nil
}

// End flushes buffered output and closes the underlying writer when it owns one
func (p *PPMWriter) End() error {
	err := p.w.Flush()
	if closeErr := p.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	if p.written != p.expected {
		return fmt.Errorf("%w: wrote %d of %d pixels", ErrPixelCount, p.written, p.expected)
	}
	return nil
}

// Close releases the underlying writer without flushing. It is safe to call
// after End and more than once.
func (p *PPMWriter) Close() error {
	if p.closer == nil {
		return nil
	}
	closer := p.closer
	p.closer = nil
	return closer.Close()
}
