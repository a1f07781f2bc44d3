package renderer

import "errors"

var (
	// ErrNilSink is returned by Render when no sink is supplied.
	ErrNilSink = errors.New("renderer: nil pixel sink")

	// ErrSink wraps any error reported by a PixelSink.
	ErrSink = errors.New("renderer: pixel sink failed")
)
