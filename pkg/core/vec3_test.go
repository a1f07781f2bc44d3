package core

import (
	"math"
	"testing"
)

func vecApproxEqual(a, b Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func TestVec3_Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{"add", a.Add(b), NewVec3(5, -3, 9)},
		{"subtract", a.Subtract(b), NewVec3(-3, 7, -3)},
		{"negate", a.Negate(), NewVec3(-1, -2, -3)},
		{"multiply scalar", a.Multiply(2), NewVec3(2, 4, 6)},
		{"divide scalar", b.Divide(2), NewVec3(2, -2.5, 3)},
		{"multiply component-wise", a.MultiplyVec(b), NewVec3(4, -10, 18)},
		{"divide component-wise", b.DivideVec(a), NewVec3(4, -2.5, 2)},
		{"cross", NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), NewVec3(0, 0, 1)},
		{"cross anticommutative", NewVec3(0, 1, 0).Cross(NewVec3(1, 0, 0)), NewVec3(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !vecApproxEqual(tt.result, tt.expected, 1e-12) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}
}

func TestVec3_DotAndLength(t *testing.T) {
	v := NewVec3(2, 3, 6)

	if got := v.Dot(NewVec3(1, 1, 1)); got != 11 {
		t.Errorf("Expected dot 11, got %f", got)
	}
	if got := v.LengthSquared(); got != 49 {
		t.Errorf("Expected length squared 49, got %f", got)
	}
	if got := v.Length(); math.Abs(got-7) > 1e-12 {
		t.Errorf("Expected length 7, got %f", got)
	}
}

func TestVec3_Normalize(t *testing.T) {
	tests := []Vec3{
		NewVec3(1, 0, 0),
		NewVec3(3, 4, 0),
		NewVec3(-1e-5, 2e-5, 3e-5),
		NewVec3(1e6, -2e6, 3e6),
	}

	for _, v := range tests {
		length := v.Normalize().Length()
		if math.Abs(length-1) > 1e-6 {
			t.Errorf("Normalize(%v) has length %f, expected 1", v, length)
		}
	}

	if zero := (Vec3{}).Normalize(); zero != (Vec3{}) {
		t.Errorf("Expected zero vector to stay zero, got %v", zero)
	}
}

func TestVec3_NearZero(t *testing.T) {
	if !NewVec3(1e-9, -1e-9, 0).NearZero() {
		t.Error("Expected tiny vector to be near zero")
	}
	if NewVec3(1e-9, 1e-7, 0).NearZero() {
		t.Error("Expected vector with one component above epsilon not to be near zero")
	}
}

func TestVec3_Reflect(t *testing.T) {
	v := NewVec3(1, -1, 0)
	n := NewVec3(0, 1, 0)

	reflected := v.Reflect(n)
	expected := NewVec3(1, 1, 0)
	if !vecApproxEqual(reflected, expected, 1e-12) {
		t.Errorf("Expected reflection %v, got %v", expected, reflected)
	}
}

func TestVec3_Refract(t *testing.T) {
	n := NewVec3(0, 1, 0)

	// Along the normal the direction is unchanged for any ratio
	straight := NewVec3(0, -1, 0).Refract(n, 1.0/1.5)
	if !vecApproxEqual(straight, NewVec3(0, -1, 0), 1e-12) {
		t.Errorf("Expected straight-through refraction, got %v", straight)
	}

	// Ratio 1 leaves any direction unchanged
	v := NewVec3(1, -1, 0).Normalize()
	same := v.Refract(n, 1.0)
	if !vecApproxEqual(same, v, 1e-9) {
		t.Errorf("Expected unchanged direction %v, got %v", v, same)
	}

	// Entering a denser medium bends toward the normal
	bent := v.Refract(n, 1.0/1.5)
	if math.Abs(bent.X) >= math.Abs(v.X) {
		t.Errorf("Expected refraction toward the normal, got %v", bent)
	}
	if math.Abs(bent.Length()-1) > 1e-9 {
		t.Errorf("Expected unit refracted direction, got length %f", bent.Length())
	}
}

func TestDegreesToRadians(t *testing.T) {
	if got := DegreesToRadians(180); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("Expected pi, got %f", got)
	}
}
