package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Tone-mapped channels stay below 1 so that 256*c truncates to at most 255
var intensity = core.NewInterval(0.000, 0.999)

func linearToGamma(linear float64) float64 {
	if linear > 0 {
		return math.Sqrt(linear)
	}
	return 0
}

// ToneMap applies gamma 2 and clamps every channel to [0, 0.999].
// Non-positive and NaN channels map to 0.
func ToneMap(linear core.Color) core.Color {
	return core.NewColor(
		intensity.Clamp(linearToGamma(linear.X)),
		intensity.Clamp(linearToGamma(linear.Y)),
		intensity.Clamp(linearToGamma(linear.Z)),
	)
}

// ToBytes converts a tone-mapped color to 8-bit channels
func ToBytes(c core.Color) (r, g, b uint8) {
	return toByte(c.X), toByte(c.Y), toByte(c.Z)
}

func toByte(channel float64) uint8 {
	if math.IsNaN(channel) {
		return 0
	}
	return uint8(256 * intensity.Clamp(channel))
}
