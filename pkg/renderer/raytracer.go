package renderer

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
)

var (
	skyHorizon = core.NewColor(1.0, 1.0, 1.0)
	skyZenith  = core.NewColor(0.5, 0.7, 1.0)
	black      = core.NewColor(0, 0, 0)
)

// Raytracer renders a world through a camera
type Raytracer struct {
	world  geometry.Hittable
	camera *Camera
	seed   int64
	random *rand.Rand
	logger log.Logger

	stats RenderStats
}

// NewRaytracer creates a new raytracer. A nil world renders as an empty sky.
// Every call to Render restarts the random sequence from seed.
func NewRaytracer(world geometry.Hittable, camera *Camera, seed int64) *Raytracer {
	if world == nil {
		world = geometry.NewHittableList()
	}
	if camera == nil {
		camera = NewCamera(DefaultCameraConfig())
	}
	return &Raytracer{
		world:  world,
		camera: camera,
		seed:   seed,
		random: core.NewRandom(seed),
		logger: log.New("renderer"),
	}
}

// Camera returns the camera used for rendering
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// backgroundGradient blends from white at the horizon to light blue overhead
func (rt *Raytracer) backgroundGradient(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return skyHorizon.Multiply(1.0 - a).Add(skyZenith.Multiply(a))
}

// RayColor returns the radiance carried back along r with at most depth bounces
func (rt *Raytracer) RayColor(r core.Ray, depth int) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		rt.stats.DepthExhausted++
		return black
	}

	rt.stats.Rays++
	hit, isHit := rt.world.Hit(r, core.NewInterval(0.001, math.Inf(1)))
	if !isHit {
		rt.stats.Escaped++
		return rt.backgroundGradient(r)
	}

	scatter, didScatter := hit.Material.Scatter(r, hit, rt.random)
	if !didScatter {
		rt.stats.Absorbed++
		return black
	}

	return scatter.Attenuation.MultiplyVec(rt.RayColor(scatter.Scattered, depth-1))
}

// Render traces every pixel and streams the tone-mapped result into sink
func (rt *Raytracer) Render(sink PixelSink) (RenderStats, error) {
	return rt.RenderContext(context.Background(), sink)
}

// RenderContext is Render with cancellation checked between rows
func (rt *Raytracer) RenderContext(ctx context.Context, sink PixelSink) (RenderStats, error) {
	if sink == nil {
		return RenderStats{}, ErrNilSink
	}

	width, height := rt.camera.Width(), rt.camera.Height()
	samples := rt.camera.SamplesPerPixel()
	maxDepth := rt.camera.MaxDepth()

	rt.random = core.NewRandom(rt.seed)
	rt.stats = RenderStats{Width: width, Height: height, SamplesPerPixel: samples}
	start := time.Now()

	rt.logger.Infof("rendering %dx%d, %d samples/pixel, max depth %d", width, height, samples, maxDepth)

	if err := sink.Begin(width, height); err != nil {
		return rt.finish(start), fmt.Errorf("%w: begin: %w", ErrSink, err)
	}

	for j := 0; j < height; j++ {
		if err := ctx.Err(); err != nil {
			return rt.finish(start), fmt.Errorf("renderer: stopped at row %d: %w", j, err)
		}
		rt.logger.Debugf("scanlines remaining: %d", height-j)

		for i := 0; i < width; i++ {
			pixelColor := core.NewColor(0, 0, 0)
			for sample := 0; sample < samples; sample++ {
				ray := rt.camera.GetRay(i, j, rt.random)
				pixelColor = pixelColor.Add(rt.RayColor(ray, maxDepth))
			}
			rt.stats.TotalSamples += samples

			pixelColor = pixelColor.Multiply(rt.camera.pixelSamplesScale)
			if err := sink.WritePixel(ToneMap(pixelColor)); err != nil {
				return rt.finish(start), fmt.Errorf("%w: pixel (%d, %d): %w", ErrSink, i, j, err)
			}
		}
	}

	if err := sink.End(); err != nil {
		return rt.finish(start), fmt.Errorf("%w: end: %w", ErrSink, err)
	}

	stats := rt.finish(start)
	rt.logger.Infof("done in %v (%d rays, %.0f rays/s)", stats.Elapsed, stats.Rays, stats.RaysPerSecond())
	return stats, nil
}

func (rt *Raytracer) finish(start time.Time) RenderStats {
	rt.stats.Elapsed = time.Since(start)
	return rt.stats
}
