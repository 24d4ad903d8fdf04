package core

import (
	"math"
	"testing"
)

func TestVec3_BasicOps(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	tests := []struct {
		name     string
		result   Vec3
		expected Vec3
	}{
		{name: "Add", result: a.Add(b), expected: NewVec3(5, -3, 9)},
		{name: "Subtract", result: a.Subtract(b), expected: NewVec3(-3, 7, -3)},
		{name: "Multiply scalar", result: a.Multiply(2), expected: NewVec3(2, 4, 6)},
		{name: "MultiplyVec", result: a.MultiplyVec(b), expected: NewVec3(4, -10, 18)},
		{name: "Cross", result: NewVec3(1, 0, 0).Cross(NewVec3(0, 1, 0)), expected: NewVec3(0, 0, 1)},
		{name: "Clamp", result: b.Clamp(0, 5), expected: NewVec3(4, 0, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const tolerance = 1e-12
			if tt.result.Subtract(tt.expected).Length() > tolerance {
				t.Errorf("Expected %v, got %v", tt.expected, tt.result)
			}
		})
	}
}

func TestVec3_Dot(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, -5, 6)

	if got, want := a.Dot(b), 12.0; got != want {
		t.Errorf("Dot = %v, expected %v", got, want)
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4).Normalize()

	const tolerance = 1e-12
	if math.Abs(v.Length()-1) > tolerance {
		t.Errorf("Normalized length = %v, expected 1", v.Length())
	}
	if v.Subtract(NewVec3(0.6, 0, 0.8)).Length() > tolerance {
		t.Errorf("Normalize = %v, expected (0.6, 0, 0.8)", v)
	}

	// Zero vector stays zero rather than producing NaNs
	if z := (Vec3{}).Normalize(); z != (Vec3{}) {
		t.Errorf("Normalize of zero vector = %v, expected zero", z)
	}
}

func TestVec3_MaxComponent(t *testing.T) {
	tests := []struct {
		v        Vec3
		expected float64
	}{
		{v: NewVec3(1, 2, 3), expected: 3},
		{v: NewVec3(5, -2, 3), expected: 5},
		{v: NewVec3(-1, -2, -3), expected: -1},
	}

	for _, tt := range tests {
		if got := tt.v.MaxComponent(); got != tt.expected {
			t.Errorf("MaxComponent(%v) = %v, expected %v", tt.v, got, tt.expected)
		}
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 0, 0), NewVec3(0, 2, 0))

	if got, want := ray.At(1.5), NewVec3(1, 3, 0); got != want {
		t.Errorf("At(1.5) = %v, expected %v", got, want)
	}
}
