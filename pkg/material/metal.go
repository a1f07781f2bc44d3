package material

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Color // Metal color
	Fuzzness float64    // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Color, fuzzness float64) *Metal {
	// Clamp fuzzness to valid range
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}
}

// Scatter implements the Material interface for metal scattering
func (m *Metal) Scatter(rayIn core.Ray, hit *HitRecord, random *rand.Rand) (ScatterResult, bool) {
	// Calculate perfect reflection direction
	reflected := rayIn.Direction.Reflect(hit.Normal).Normalize()

	// Add fuzziness by perturbing the reflection direction
	reflected = reflected.Add(core.RandomUnitVector(random).Multiply(m.Fuzzness))

	scattered := core.NewRay(hit.Point, reflected)

	// Fuzz can push the ray below the surface, where it is absorbed
	if scattered.Direction.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: m.Albedo,
	}, true
}

// Describe returns a short label for the material
func (m *Metal) Describe() string {
	return fmt.Sprintf("metal(%v, fuzz %g)", m.Albedo, m.Fuzzness)
}

func (m *Metal) sealed() {}
