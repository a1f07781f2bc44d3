package renderer

import "github.com/df07/go-pathtracer/pkg/core"

// PixelSink receives a rendered image one pixel at a time.
//
// Render calls Begin once, then WritePixel width*height times in row-major
// order starting at the top-left pixel, then End. Colors passed to
// WritePixel are already tone mapped (see ToneMap).
type PixelSink interface {
	Begin(width, height int) error
	WritePixel(c core.Color) error
	End() error
}
