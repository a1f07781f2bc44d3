package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// oklchToRGB converts OKLCH color values to linear RGB clamped to [0, 1].
// L: lightness (0-1), C: chroma (0-0.4), H: hue in degrees
func oklchToRGB(l, c, h float64) core.Color {
	hRad := core.DegreesToRadians(h)

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, then cube
	lms := [3]float64{
		l + 0.3963377774*a + 0.2158037573*b,
		l - 0.1055613458*a - 0.0638541728*b,
		l - 0.0894841775*a - 1.2914855480*b,
	}
	for i := range lms {
		lms[i] = lms[i] * lms[i] * lms[i]
	}

	unit := core.NewInterval(0, 1)
	return core.NewColor(
		unit.Clamp(+4.0767416621*lms[0]-3.3077115913*lms[1]+0.2309699292*lms[2]),
		unit.Clamp(-1.2684380046*lms[0]+2.6097574011*lms[1]-0.3413193965*lms[2]),
		unit.Clamp(-0.0041960863*lms[0]-0.7034186147*lms[1]+1.7076147010*lms[2]),
	)
}

// NewSphereGridScene creates a grid of metal spheres whose hue varies across
// X and chroma across Z.
func NewSphereGridScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.ImageWidth = 800
	cameraConfig.SamplesPerPixel = 100
	cameraConfig.MaxDepth = 40
	cameraConfig.VFov = 40
	cameraConfig.LookFrom = core.NewVec3(4.5, 6, 18)
	cameraConfig.LookAt = core.NewVec3(4.5, 0.8, 4.5)
	cameraConfig.DefocusAngle = 0.3
	cameraConfig.FocusDist = 0 // Focus on LookAt
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(4.5, -1000, 4.5), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))),
	)

	gridSize := 10
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			position := core.NewVec3(float64(i)*spacing, sphereRadius, float64(j)*spacing)

			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			roughness := 0.05 + 0.1*float64((i+j)%3)/2.0
			metal := material.NewMetal(oklchToRGB(lightness, chroma, hue), roughness)

			world.Add(geometry.NewSphere(position, sphereRadius, metal))
		}
	}

	return &Scene{
		Name:        "sphere-grid",
		Description: "A 10x10 grid of colored metal spheres",
		World:       world,
		Camera:      cameraConfig,
	}
}
