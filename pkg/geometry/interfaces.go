package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Hittable interface for objects that can be hit by rays.
//
// Implemented by Sphere and HittableList only.
type Hittable interface {
	// Hit returns the nearest intersection whose parameter lies strictly inside rayT
	Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)

	sealed()
}
