package core

import (
	"math"
	"math/rand"
)

// minUnitSampleLengthSquared rejects candidates so short that normalizing them
// would underflow to infinity
const minUnitSampleLengthSquared = 1e-160

// NewRandom creates a random source with a fixed seed so renders are reproducible
func NewRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// RandomFloat returns a random float64 in [min, max)
func RandomFloat(random *rand.Rand, min, max float64) float64 {
	return min + (max-min)*random.Float64()
}

// RandomVec3 returns a vector with each component in [0, 1)
func RandomVec3(random *rand.Rand) Vec3 {
	return NewVec3(random.Float64(), random.Float64(), random.Float64())
}

// RandomVec3Range returns a vector with each component in [min, max)
func RandomVec3Range(random *rand.Rand, min, max float64) Vec3 {
	return NewVec3(
		RandomFloat(random, min, max),
		RandomFloat(random, min, max),
		RandomFloat(random, min, max),
	)
}

// RandomUnitVector generates a uniform random direction on the unit sphere
func RandomUnitVector(random *rand.Rand) Vec3 {
	for {
		// Generate random point in [-1,1]³ cube
		p := RandomVec3Range(random, -1, 1)
		// Accept if inside unit sphere and long enough to normalize
		lensq := p.LengthSquared()
		if minUnitSampleLengthSquared < lensq && lensq <= 1 {
			return p.Divide(math.Sqrt(lensq))
		}
	}
}

// RandomOnHemisphere generates a uniform random direction in the hemisphere around normal
func RandomOnHemisphere(random *rand.Rand, normal Vec3) Vec3 {
	onUnitSphere := RandomUnitVector(random)
	if onUnitSphere.Dot(normal) > 0.0 {
		return onUnitSphere
	}
	return onUnitSphere.Negate()
}

// RandomInUnitDisk generates a random point in a unit disk (for depth of field)
func RandomInUnitDisk(random *rand.Rand) Vec3 {
	for {
		// Generate random point in [-1,1] x [-1,1] square
		p := NewVec3(RandomFloat(random, -1, 1), RandomFloat(random, -1, 1), 0)
		// Accept if inside unit disk
		if p.LengthSquared() < 1 {
			return p
		}
	}
}
