package scene

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

func TestDefaultScene_Contents(t *testing.T) {
	s := NewDefaultScene()

	if s.World.Len() != 5 {
		t.Fatalf("Expected 5 spheres, got %d", s.World.Len())
	}

	tests := []struct {
		index    int
		center   core.Vec3
		radius   float64
		material string
	}{
		{0, core.NewVec3(0, 0, -1.5), 0.5, "lambertian(0.1 0.2 0.5)"},
		{1, core.NewVec3(0, -100.5, -1), 100, "lambertian(0.8 0.8 0)"},
		{2, core.NewVec3(-0.8, 0, -1), 0.5, "dielectric(ior 1.5)"},
		{3, core.NewVec3(-0.8, 0, -1), 0.4, "dielectric(ior 0.6666666666666666)"},
		{4, core.NewVec3(1, 0, -1), 0.5, "metal(0.8 0.6 0.2, fuzz 0.1)"},
	}

	for _, tt := range tests {
		sphere, ok := s.World.Objects[tt.index].(*geometry.Sphere)
		if !ok {
			t.Fatalf("Object %d is not a sphere", tt.index)
		}
		if sphere.Center != tt.center || sphere.Radius != tt.radius {
			t.Errorf("Object %d: expected center %v radius %g, got %v %g",
				tt.index, tt.center, tt.radius, sphere.Center, sphere.Radius)
		}
		if got := sphere.Material.Describe(); got != tt.material {
			t.Errorf("Object %d: expected material %s, got %s", tt.index, tt.material, got)
		}
	}

	if s.Camera != renderer.DefaultCameraConfig() {
		t.Errorf("Expected default camera, got %+v", s.Camera)
	}
}

func TestScene_CameraOverride(t *testing.T) {
	s := NewDefaultScene(renderer.CameraConfig{ImageWidth: 64, SamplesPerPixel: 2})

	if s.Camera.ImageWidth != 64 || s.Camera.SamplesPerPixel != 2 {
		t.Errorf("Expected overrides to apply, got %+v", s.Camera)
	}
	if s.Camera.MaxDepth != 50 {
		t.Errorf("Expected default depth 50 to be kept, got %d", s.Camera.MaxDepth)
	}
}

func TestScene_Stats(t *testing.T) {
	gray := material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))
	glass := material.NewDielectric(1.5)

	s := &Scene{
		World: geometry.NewHittableList(
			geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, gray),
			geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, gray),
			geometry.NewHittableList(
				geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, glass),
			),
		),
	}

	stats := s.Stats()
	if stats.Spheres != 3 {
		t.Errorf("Expected 3 spheres, got %d", stats.Spheres)
	}
	if stats.Lists != 1 {
		t.Errorf("Expected 1 nested list, got %d", stats.Lists)
	}
	if stats.Materials[gray.Describe()] != 2 || stats.Materials[glass.Describe()] != 1 {
		t.Errorf("Unexpected material counts: %v", stats.Materials)
	}

	var buf bytes.Buffer
	s.WriteStats(&buf)
	out := buf.String()
	for _, want := range []string{"Material", "lambertian(0.5 0.5 0.5)", "dielectric(ior 1.5)", "TOTAL", "3"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected stats table to contain %q, got:\n%s", want, out)
		}
	}
}

func TestScene_StatsEmpty(t *testing.T) {
	s := &Scene{}
	if stats := s.Stats(); stats.Spheres != 0 || len(stats.Materials) != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}
}

func TestFinalScene_Deterministic(t *testing.T) {
	first := NewFinalScene()
	second := NewFinalScene()

	if first.World.Len() != second.World.Len() {
		t.Fatalf("Expected identical layouts, got %d and %d objects", first.World.Len(), second.World.Len())
	}
	// ground + 3 large spheres + at least a few hundred small ones
	if first.World.Len() < 300 {
		t.Errorf("Expected a dense sphere field, got %d objects", first.World.Len())
	}

	for i := range first.World.Objects {
		a := first.World.Objects[i].(*geometry.Sphere)
		b := second.World.Objects[i].(*geometry.Sphere)
		if a.Center != b.Center {
			t.Fatalf("Sphere %d differs between builds: %v vs %v", i, a.Center, b.Center)
		}
	}

	if first.Camera.DefocusAngle != 0.6 || first.Camera.VFov != 20 {
		t.Errorf("Expected depth of field camera, got %+v", first.Camera)
	}
}

func TestOklchToRGB_Range(t *testing.T) {
	for hue := 0.0; hue < 360; hue += 30 {
		c := oklchToRGB(0.65, 0.25, hue)
		for _, channel := range []float64{c.X, c.Y, c.Z} {
			if channel < 0 || channel > 1 || math.IsNaN(channel) {
				t.Fatalf("oklchToRGB(0.65, 0.25, %g) = %v, outside [0, 1]", hue, c)
			}
		}
	}

	// Zero chroma is a neutral gray
	gray := oklchToRGB(0.5, 0, 0)
	if math.Abs(gray.X-gray.Y) > 1e-6 || math.Abs(gray.Y-gray.Z) > 1e-6 {
		t.Errorf("Expected neutral gray, got %v", gray)
	}
}
