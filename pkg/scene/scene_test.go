package scene

import (
	"math"
	"testing"

	"github.com/pvoss/go-halton-tracer/pkg/core"
)

func TestSphere_Intersect(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -5), 1, core.Material{})

	tests := []struct {
		name      string
		ray       core.Ray
		expectHit bool
		expectT   float64
	}{
		{
			name:      "Head-on hit",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)),
			expectHit: true,
			expectT:   4,
		},
		{
			name:      "Miss to the side",
			ray:       core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)),
			expectHit: false,
		},
		{
			name:      "Origin inside hits far wall",
			ray:       core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, -1)),
			expectHit: true,
			expectT:   1,
		},
		{
			name:      "Sphere behind origin",
			ray:       core.NewRay(core.NewVec3(0, 0, -10), core.NewVec3(0, 0, -1)),
			expectHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotT, ok := sphere.Intersect(tt.ray, tMin, tMax)
			if ok != tt.expectHit {
				t.Fatalf("Intersect hit = %v, expected %v", ok, tt.expectHit)
			}
			if ok && math.Abs(gotT-tt.expectT) > 1e-9 {
				t.Errorf("Intersect t = %v, expected %v", gotT, tt.expectT)
			}
		})
	}
}

func TestSphere_NormalAt(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 2, core.Material{})

	normal := sphere.NormalAt(core.NewVec3(3, 2, 3))
	expected := core.NewVec3(1, 0, 0)

	if normal.Subtract(expected).Length() > 1e-9 {
		t.Errorf("NormalAt = %v, expected %v", normal, expected)
	}
}

func TestScene_NearestIntersection(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -3), 1, core.Material{Albedo: core.NewVec3(1, 0, 0)})
	far := NewSphere(core.NewVec3(0, 0, -10), 1, core.Material{Albedo: core.NewVec3(0, 1, 0)})
	sc := NewScene(far, near)

	surf, dist, ok := sc.NearestIntersection(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected a hit")
	}
	if math.Abs(dist-2) > 1e-9 {
		t.Errorf("Nearest distance = %v, expected 2", dist)
	}
	if surf.Material().Albedo != near.Mat.Albedo {
		t.Errorf("Expected nearest sphere, got material %v", surf.Material())
	}
}

func TestScene_NearestIntersection_Miss(t *testing.T) {
	sc := NewDefaultScene()

	if _, _, ok := sc.NearestIntersection(core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, 1, 0))); ok {
		t.Error("Ray pointing at the sky should miss")
	}
}

func TestScene_CloneIsIndependent(t *testing.T) {
	original := NewScene(NewSphere(core.NewVec3(0, 0, -3), 1, core.Material{}))
	cloned := original.Clone().(*Scene)

	cloned.Spheres[0].Center = core.NewVec3(99, 0, 0)

	if original.Spheres[0].Center == cloned.Spheres[0].Center {
		t.Error("Mutating a clone affected the original scene")
	}
}
