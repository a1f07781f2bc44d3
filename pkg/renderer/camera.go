package renderer

import (
	"math"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// CameraConfig describes the image and the viewpoint it is rendered from
type CameraConfig struct {
	ImageWidth      int     // Rendered image width in pixels
	AspectRatio     float64 // Ideal width over height
	SamplesPerPixel int     // Random samples averaged per pixel
	MaxDepth        int     // Maximum number of ray bounces
	VFov            float64 // Vertical field of view in degrees

	LookFrom core.Point // Point the camera is looking from
	LookAt   core.Point // Point the camera is looking at
	VUp      core.Vec3  // Camera-relative "up" direction

	DefocusAngle float64 // Variation angle of rays through each pixel, in degrees
	FocusDist    float64 // Distance from LookFrom to the plane of perfect focus
}

// DefaultCameraConfig returns sensible default values
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		ImageWidth:      400,
		AspectRatio:     16.0 / 9.0,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		VUp:             core.NewVec3(0, 1, 0),
		DefocusAngle:    0,
		FocusDist:       10,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied on top
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.ImageWidth != 0 {
		result.ImageWidth = override.ImageWidth
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.LookFrom != (core.Vec3{}) {
		result.LookFrom = override.LookFrom
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.VUp != (core.Vec3{}) {
		result.VUp = override.VUp
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.FocusDist != 0 {
		result.FocusDist = override.FocusDist
	}
	return result
}

// Camera generates rays for rendering
type Camera struct {
	config      CameraConfig // Normalized configuration
	imageHeight int

	center      core.Point // Camera center
	pixel00Loc  core.Point // Location of pixel 0, 0
	pixelDeltaU core.Vec3  // Offset to pixel to the right
	pixelDeltaV core.Vec3  // Offset to pixel below

	u, v, w core.Vec3 // Camera frame basis vectors

	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius

	pixelSamplesScale float64
}

// NewCamera derives the viewport from config. Out-of-range values are
// normalized rather than rejected, see normalizeConfig.
func NewCamera(config CameraConfig) *Camera {
	config = normalizeConfig(config)

	imageHeight := int(float64(config.ImageWidth) / config.AspectRatio)
	if imageHeight < 1 {
		imageHeight = 1
	}

	c := &Camera{
		config:            config,
		imageHeight:       imageHeight,
		center:            config.LookFrom,
		pixelSamplesScale: 1.0 / float64(config.SamplesPerPixel),
	}

	theta := core.DegreesToRadians(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDist
	viewportWidth := viewportHeight * float64(config.ImageWidth) / float64(imageHeight)

	c.w = config.LookFrom.Subtract(config.LookAt).Normalize()
	c.u = config.VUp.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	// Vectors across the horizontal and down the vertical viewport edges
	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Negate().Multiply(viewportHeight)

	c.pixelDeltaU = viewportU.Divide(float64(config.ImageWidth))
	c.pixelDeltaV = viewportV.Divide(float64(imageHeight))

	viewportUpperLeft := c.center.
		Subtract(c.w.Multiply(config.FocusDist)).
		Subtract(viewportU.Multiply(0.5)).
		Subtract(viewportV.Multiply(0.5))
	c.pixel00Loc = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDist * math.Tan(core.DegreesToRadians(config.DefocusAngle/2))
	c.defocusDiskU = c.u.Multiply(defocusRadius)
	c.defocusDiskV = c.v.Multiply(defocusRadius)

	return c
}

// normalizeConfig replaces values that cannot produce an image with the
// nearest usable ones.
func normalizeConfig(config CameraConfig) CameraConfig {
	if config.ImageWidth < 1 {
		config.ImageWidth = 1
	}
	if config.AspectRatio <= 0 || math.IsNaN(config.AspectRatio) || math.IsInf(config.AspectRatio, 0) {
		config.AspectRatio = 16.0 / 9.0
	}
	if config.SamplesPerPixel < 1 {
		config.SamplesPerPixel = 1
	}
	if config.MaxDepth < 0 {
		config.MaxDepth = 0
	}
	config.VFov = math.Max(1, math.Min(179, config.VFov))
	if math.IsNaN(config.VFov) {
		config.VFov = 90
	}
	if config.DefocusAngle < 0 || math.IsNaN(config.DefocusAngle) {
		config.DefocusAngle = 0
	}
	config.DefocusAngle = math.Min(config.DefocusAngle, 179)

	viewDir := config.LookFrom.Subtract(config.LookAt)
	if viewDir.NearZero() {
		config.LookAt = config.LookFrom.Add(core.NewVec3(0, 0, -1))
		viewDir = core.NewVec3(0, 0, 1)
	}

	if config.FocusDist <= 0 || math.IsNaN(config.FocusDist) {
		config.FocusDist = viewDir.Length()
		if config.FocusDist == 0 {
			config.FocusDist = 1
		}
	}

	config.VUp = upVector(config.VUp, viewDir.Normalize())
	return config
}

// upVector returns up unless it is degenerate or parallel to w, in which
// case the first world axis not parallel to w is used.
func upVector(up, w core.Vec3) core.Vec3 {
	const minCross = 1e-6
	if up.Normalize().Cross(w).Length() > minCross {
		return up
	}
	for _, candidate := range []core.Vec3{
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 0, 0),
	} {
		if candidate.Cross(w).Length() > minCross {
			return candidate
		}
	}
	return core.NewVec3(0, 1, 0)
}

// GetRay returns a ray from the defocus disk towards a randomly jittered
// point inside pixel (i, j). Pixel (0, 0) is the top-left corner.
func (c *Camera) GetRay(i, j int, random *rand.Rand) core.Ray {
	offsetX := random.Float64() - 0.5
	offsetY := random.Float64() - 0.5
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offsetX)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offsetY))

	rayOrigin := c.center
	if c.config.DefocusAngle > 0 {
		rayOrigin = c.defocusDiskSample(random)
	}

	return core.NewRay(rayOrigin, pixelSample.Subtract(rayOrigin))
}

// pixelCenter returns the un-jittered center of pixel (i, j) on the focus plane
func (c *Camera) pixelCenter(i, j int) core.Point {
	return c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i))).
		Add(c.pixelDeltaV.Multiply(float64(j)))
}

// CenterRay returns the ray from the camera center through the middle of
// pixel (i, j), without jitter or defocus.
func (c *Camera) CenterRay(i, j int) core.Ray {
	return core.NewRay(c.center, c.pixelCenter(i, j).Subtract(c.center))
}

func (c *Camera) defocusDiskSample(random *rand.Rand) core.Point {
	p := core.RandomInUnitDisk(random)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// Config returns the normalized configuration the camera was built from
func (c *Camera) Config() CameraConfig { return c.config }

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.config.ImageWidth }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.imageHeight }

// SamplesPerPixel returns the number of samples averaged per pixel
func (c *Camera) SamplesPerPixel() int { return c.config.SamplesPerPixel }

// MaxDepth returns the bounce limit
func (c *Camera) MaxDepth() int { return c.config.MaxDepth }
