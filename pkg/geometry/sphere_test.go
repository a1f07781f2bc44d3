package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

var testMaterial = material.NewLambertian(core.NewColor(0.5, 0.5, 0.5))

func hitRange(min, max float64) core.Interval {
	return core.NewInterval(min, max)
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, hitRange(0.001, math.Inf(1)))
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "non-unit direction",
			rayOrigin:      core.NewVec3(0, 0, 3),
			rayDirection:   core.NewVec3(0, 0, -2),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, hitRange(0.001, math.Inf(1)))

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			tolerance := 1e-9
			if math.Abs(hit.Normal.X-tt.expectedNormal.X) > tolerance ||
				math.Abs(hit.Normal.Y-tt.expectedNormal.Y) > tolerance ||
				math.Abs(hit.Normal.Z-tt.expectedNormal.Z) > tolerance {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}

			if hit.Material != testMaterial {
				t.Error("Expected hit record to carry the sphere's material")
			}
		})
	}
}

// A ray tangent to the unit sphere has a double root at t=2 (discriminant exactly 0).
// The root counts when it lies strictly inside the search interval and is
// rejected when it coincides with a bound.
func TestSphere_Hit_Tangent(t *testing.T) {
	const tolerance = 1e-9
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, hitRange(0.001, math.Inf(1)))
	if !isHit {
		t.Fatal("Expected tangent root inside the interval to count as a hit")
	}
	if math.Abs(hit.T-2) > tolerance {
		t.Errorf("Expected tangent hit at t=2, got t=%f", hit.T)
	}

	expectedPoint := core.NewVec3(1, 0, 0)
	if hit.Point.Subtract(expectedPoint).Length() > tolerance {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}

	if _, isHit := sphere.Hit(ray, hitRange(0.001, 2)); isHit {
		t.Error("Expected tangent root at the upper bound to be rejected")
	}
	if _, isHit := sphere.Hit(ray, hitRange(2, math.Inf(1))); isHit {
		t.Error("Expected tangent root at the lower bound to be rejected")
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	// Both roots beyond tMax
	hit, isHit := sphere.Hit(ray, hitRange(0.001, 0.5))
	if isHit {
		t.Errorf("Expected miss due to tMax bound, but got hit at t=%f", hit.T)
	}

	// Both roots before tMin
	hit, isHit = sphere.Hit(ray, hitRange(3.5, 1000.0))
	if isHit {
		t.Errorf("Expected miss due to tMin bound, but got hit at t=%f", hit.T)
	}

	// Near root excluded, far root accepted
	hit, isHit = sphere.Hit(ray, hitRange(1.5, 1000.0))
	if !isHit {
		t.Fatal("Expected far root to be accepted")
	}
	if math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("Expected t=3, got t=%f", hit.T)
	}
	if hit.FrontFace {
		t.Error("Expected far root to be a back face hit")
	}

	// Root exactly on the bound does not count
	if _, isHit := sphere.Hit(ray, hitRange(0.001, 1.0)); isHit {
		t.Error("Expected root at t == tMax to be rejected")
	}
}

func TestNewSphere_NegativeRadius(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), -0.5, testMaterial)
	if sphere.Radius != 0 {
		t.Fatalf("Expected radius clamped to 0, got %f", sphere.Radius)
	}

	// A zero-radius sphere yields no hit rather than NaN normals
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if hit, isHit := sphere.Hit(ray, hitRange(0.001, math.Inf(1))); isHit {
		t.Errorf("Expected miss for zero radius sphere, got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_DegenerateDirection(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, testMaterial)
	ray := core.NewRay(core.NewVec3(0, 0, 0.5), core.NewVec3(0, 0, 0))

	if _, isHit := sphere.Hit(ray, hitRange(0.001, math.Inf(1))); isHit {
		t.Error("Expected miss for zero-length ray direction")
	}
}

func TestSphere_Hit_NormalOpposesRay(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0.3, -0.2, -1), 0.7, testMaterial)
	random := rand.New(rand.NewSource(42))

	hits := 0
	for i := 0; i < 2000; i++ {
		origin := core.RandomVec3Range(random, -2, 2)
		direction := core.RandomUnitVector(random).Multiply(core.RandomFloat(random, 0.1, 3))
		ray := core.NewRay(origin, direction)

		hit, isHit := sphere.Hit(ray, hitRange(0.001, math.Inf(1)))
		if !isHit {
			continue
		}
		hits++

		if d := ray.Direction.Dot(hit.Normal); d > 0 {
			t.Fatalf("Normal %v does not oppose ray direction %v (dot %f)", hit.Normal, ray.Direction, d)
		}
		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit normal, got length %f", hit.Normal.Length())
		}
	}

	if hits == 0 {
		t.Fatal("Test setup error: no ray hit the sphere")
	}
}
