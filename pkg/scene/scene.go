// Package scene provides a simple sphere-list implementation of the
// renderer's scene contract, plus the default demo scene.
package scene

import "github.com/pvoss/go-halton-tracer/pkg/core"

const (
	// tMin keeps secondary rays from re-intersecting the surface they
	// just left
	tMin = 1e-4
	tMax = 1e4
)

// Scene is a list of spheres satisfying core.Scene
type Scene struct {
	Spheres []*Sphere
}

// NewScene creates a scene from a list of spheres
func NewScene(spheres ...*Sphere) *Scene {
	return &Scene{Spheres: spheres}
}

// NearestIntersection returns the closest sphere hit by the ray
func (sc *Scene) NearestIntersection(ray core.Ray) (core.Surface, float64, bool) {
	var nearest *Sphere
	nearestT := tMax

	for _, s := range sc.Spheres {
		if t, ok := s.Intersect(ray, tMin, nearestT); ok {
			nearest = s
			nearestT = t
		}
	}

	if nearest == nil {
		return nil, 0, false
	}
	return nearest, nearestT, true
}

// Clone returns an independent deep copy for exclusive use by one worker
func (sc *Scene) Clone() core.Scene {
	spheres := make([]*Sphere, len(sc.Spheres))
	for i, s := range sc.Spheres {
		dup := *s
		spheres[i] = &dup
	}
	return &Scene{Spheres: spheres}
}

// NewDefaultScene builds the demo scene: a gray ground sphere, a diffuse
// sphere, a glossy Fresnel sphere and a small emissive sphere, all sized
// for the orbiting camera looking at (0, -0.125, 0).
func NewDefaultScene() *Scene {
	ground := NewSphere(core.NewVec3(0, -100.6, 0), 100, core.Material{
		Albedo: core.NewVec3(0.55, 0.55, 0.55),
	})
	diffuse := NewSphere(core.NewVec3(-0.55, -0.25, 0), 0.35, core.Material{
		Albedo: core.NewVec3(0.65, 0.22, 0.16),
	})
	glossy := NewSphere(core.NewVec3(0.45, -0.3, 0.2), 0.3, core.Material{
		Albedo:     core.NewVec3(0.2, 0.35, 0.55),
		UseFresnel: true,
		R0:         0.05,
	})
	glow := NewSphere(core.NewVec3(0, -0.45, -0.5), 0.15, core.Material{
		Emission: core.NewVec3(4.0, 3.2, 2.1),
	})

	return NewScene(ground, diffuse, glossy, glow)
}
