package material

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo core.Color // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Color) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit *HitRecord, random *rand.Rand) (ScatterResult, bool) {
	// Normal plus a unit vector gives a cosine-weighted direction about the normal
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(random))

	// The unit vector can cancel the normal almost exactly
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return ScatterResult{
		Scattered:   core.NewRay(hit.Point, scatterDirection),
		Attenuation: l.Albedo,
	}, true
}

// Describe returns a short label for the material
func (l *Lambertian) Describe() string {
	return fmt.Sprintf("lambertian(%v)", l.Albedo)
}

func (l *Lambertian) sealed() {}
