package core

// Logger interface for render progress output
type Logger interface {
	Printf(format string, args ...interface{})
}

// Material describes a surface: a Lambertian albedo, an emission color,
// and an optional Schlick-Fresnel specular lobe parameterized by R0
// (the reflectance at normal incidence).
type Material struct {
	Albedo     Vec3
	Emission   Vec3
	UseFresnel bool
	R0         float64
}

// Surface is one piece of scene geometry returned by an intersection query.
type Surface interface {
	// NormalAt returns the outward unit normal at a point on the surface.
	NormalAt(p Vec3) Vec3
	Material() Material
}

// Scene is the geometry collaborator consumed by the integrator. The
// renderer gives each worker its own Clone, so implementations are free
// to mutate internal state (caches, lazily built structures) during a
// render as long as clones stay independent.
type Scene interface {
	// NearestIntersection returns the closest surface hit by the ray and
	// its distance along the ray, or ok=false when the ray escapes.
	NearestIntersection(ray Ray) (surf Surface, t float64, ok bool)

	// Clone returns an independent copy safe for exclusive use by one worker.
	Clone() Scene
}
