package renderer

import "time"

// RenderStats contains statistics about a finished render
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	SamplesPerPixel int           // Samples averaged per pixel
	TotalSamples    int           // Camera rays traced
	Rays            int           // Rays intersected against the world, including bounces
	Escaped         int           // Rays that left the scene and picked up sky color
	Absorbed        int           // Rays terminated by a material
	DepthExhausted  int           // Paths cut off by the bounce limit
	Elapsed         time.Duration // Wall-clock render time
}

// TotalPixels returns the number of pixels in the image
func (s RenderStats) TotalPixels() int {
	return s.Width * s.Height
}

// RaysPerSecond returns the average ray throughput, or 0 when no time elapsed
func (s RenderStats) RaysPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Rays) / s.Elapsed.Seconds()
}

// AverageBounces returns the mean number of world intersections per camera ray
func (s RenderStats) AverageBounces() float64 {
	if s.TotalSamples == 0 {
		return 0
	}
	return float64(s.Rays) / float64(s.TotalSamples)
}
