package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewDefaultScene creates the classic three-sphere scene: a diffuse sphere
// flanked by a hollow glass sphere and fuzzy gold, resting on a large ground sphere.
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	// Create materials
	materialGround := material.NewLambertian(core.NewColor(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))
	materialLeft := material.NewDielectric(1.5)
	materialBubble := material.NewDielectric(1.0 / 1.5) // Air inside glass
	materialRight := material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.1)

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, 0, -1.5), 0.5, materialCenter),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, materialGround),
		geometry.NewSphere(core.NewVec3(-0.8, 0, -1), 0.5, materialLeft),
		geometry.NewSphere(core.NewVec3(-0.8, 0, -1), 0.4, materialBubble),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, materialRight),
	)

	return &Scene{
		Name:        "default",
		Description: "Diffuse, hollow glass and fuzzy gold spheres on a yellow ground",
		World:       world,
		Camera:      cameraConfig,
	}
}

// NewSingleSphereScene creates one diffuse sphere in front of the camera with no ground
func NewSingleSphereScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	return &Scene{
		Name:        "single-sphere",
		Description: "A single gray sphere against the sky",
		World: geometry.NewHittableList(
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))),
		),
		Camera: cameraConfig,
	}
}

// NewMaterialsScene lines up one sphere per material variant
func NewMaterialsScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.LookFrom = core.NewVec3(0, 1, 4)
	cameraConfig.LookAt = core.NewVec3(0, 0.4, 0)
	cameraConfig.VFov = 40
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(cameraConfig, cameraOverrides[0])
	}

	glass := material.NewDielectric(1.5)
	variants := []material.Material{
		material.NewLambertian(core.NewColor(0.65, 0.25, 0.2)),
		material.NewMetal(core.NewColor(0.8, 0.8, 0.8), 0.0),
		material.NewMetal(core.NewColor(0.8, 0.6, 0.2), 0.5),
		glass,
	}

	world := geometry.NewHittableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))),
	)

	spacing := 1.1
	startX := -spacing * float64(len(variants)) / 2
	for i, m := range variants {
		x := startX + spacing*float64(i)
		world.Add(geometry.NewSphere(core.NewVec3(x, 0.5, 0), 0.5, m))
	}

	// Hollow glass: an outer shell with an air bubble, holding a small diffuse core
	hollowCenter := core.NewVec3(startX+spacing*float64(len(variants)), 0.5, 0)
	world.Add(geometry.NewHittableList(
		geometry.NewSphere(hollowCenter, 0.5, glass),
		geometry.NewSphere(hollowCenter, 0.45, material.NewDielectric(1.0/1.5)),
		geometry.NewSphere(hollowCenter, 0.25, material.NewLambertian(core.NewColor(0.1, 0.2, 0.5))),
	))

	return &Scene{
		Name:        "materials",
		Description: "Diffuse, mirror, brushed gold, glass and hollow glass spheres side by side",
		World:       world,
		Camera:      cameraConfig,
	}
}
