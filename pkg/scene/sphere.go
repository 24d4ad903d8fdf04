package scene

import (
	"math"

	"github.com/pvoss/go-halton-tracer/pkg/core"
)

// Sphere is a sphere surface with a material
type Sphere struct {
	Center core.Vec3
	Radius float64
	Mat    core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat core.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Mat: mat}
}

// Intersect returns the nearest intersection distance within (tMin, tMax)
func (s *Sphere) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return 0, false
	}

	// Try the closer root first, then the farther one
	sqrtD := math.Sqrt(discriminant)
	root := (-halfB - sqrtD) / a
	if root < tMin || root > tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root > tMax {
			return 0, false
		}
	}

	return root, true
}

// NormalAt returns the outward unit normal at a point on the sphere
func (s *Sphere) NormalAt(p core.Vec3) core.Vec3 {
	return p.Subtract(s.Center).Multiply(1 / s.Radius)
}

// Material returns the sphere's material
func (s *Sphere) Material() core.Material {
	return s.Mat
}
