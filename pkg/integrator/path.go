// Package integrator implements the unidirectional path tracer: a
// single camera path per invocation, with Fresnel-weighted specular
// selection, direct lighting from one point light, and Russian roulette
// termination.
package integrator

import (
	"math"

	"github.com/pvoss/go-halton-tracer/pkg/core"
	"github.com/pvoss/go-halton-tracer/pkg/sampler"
)

// Termination identifies why a path stopped tracing.
type Termination int

const (
	TerminatedMiss Termination = iota
	TerminatedMaxBounces
	TerminatedZeroAlbedo
	TerminatedRouletteKill
	numTerminations
)

// NumTerminations is the number of distinct termination reasons.
const NumTerminations = int(numTerminations)

func (t Termination) String() string {
	switch t {
	case TerminatedMiss:
		return "miss"
	case TerminatedMaxBounces:
		return "max-bounces"
	case TerminatedZeroAlbedo:
		return "zero-albedo"
	case TerminatedRouletteKill:
		return "roulette-kill"
	}
	return "unknown"
}

// Config contains the integrator's lighting and termination parameters
type Config struct {
	MaxBounces     int       // Maximum bounce count before forced termination
	RouletteAfter  int       // Bounce count after which Russian roulette applies
	LightPos       core.Vec3 // World position of the single point light
	LightIntensity float64   // Scale applied to the light's Lambertian falloff
	SkyTop         core.Vec3 // Sky color straight up
	SkyHorizon     core.Vec3 // Sky color at the horizon
}

// DefaultConfig returns the reference lighting setup
func DefaultConfig() Config {
	return Config{
		MaxBounces:     5,
		RouletteAfter:  2,
		LightPos:       core.NewVec3(8, 12, -6),
		LightIntensity: 720,
		SkyTop:         core.NewVec3(53, 112, 128).Multiply(0.75 / 255),
		SkyHorizon:     core.NewVec3(182, 175, 157).Multiply(0.8 / 255),
	}
}

const (
	// minAlbedo is the cutoff below which a path cannot contribute further
	minAlbedo = 1e-8
	// specularAlbedo is the effective reflectance of a Fresnel specular bounce
	specularAlbedo = 0.95
)

// PathResult carries one sample's radiance estimate plus the
// first-bounce auxiliary channels.
type PathResult struct {
	Contribution core.Vec3 // Radiance estimate for this path
	Normal       core.Vec3 // First-bounce normal, remapped into [0,1]
	Albedo       core.Vec3 // First-bounce material albedo
	Bounces      int
	Termination  Termination
}

// PathTracer traces single camera paths through a scene
type PathTracer struct {
	config Config
}

// New creates a path tracer with the given configuration
func New(config Config) *PathTracer {
	return &PathTracer{config: config}
}

// TracePath follows one path from ray through the scene, accumulating
// radiance until the path escapes, runs out of bounces, or dies in
// roulette. All stochastic decisions draw from seq in a fixed dimension
// order, so results are reproducible for a fixed sequence.
func (pt *PathTracer) TracePath(ray core.Ray, scene core.Scene, seq *sampler.Sequence) PathResult {
	var res PathResult
	throughput := core.NewVec3(1, 1, 1)
	bounce := 0

	for {
		surf, t, ok := scene.NearestIntersection(ray)
		if !ok {
			res.Contribution = res.Contribution.Add(throughput.MultiplyVec(pt.sky(ray.Direction)))
			res.Termination = TerminatedMiss
			break
		}

		hitPoint := ray.At(t)
		normal := surf.NormalAt(hitPoint)
		mat := surf.Material()

		if bounce == 0 {
			// Swap Y and Z and bias into [0,1] for the normal channel
			res.Normal = core.NewVec3(normal.X, normal.Z, normal.Y).Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
			res.Albedo = mat.Albedo
		}

		res.Contribution = res.Contribution.Add(throughput.MultiplyVec(mat.Emission))

		// Schlick's Fresnel approximation decides between the specular
		// lobe and the diffuse base for materials that carry one
		sampleSpecular := false
		albedo := mat.Albedo
		if mat.UseFresnel {
			p1 := 1 - math.Abs(normal.Dot(ray.Direction))
			p2 := p1 * p1
			fresnel := mat.R0 + (1-mat.R0)*p2*p2*p1
			if seq.Next() < fresnel {
				sampleSpecular = true
				albedo = core.NewVec3(specularAlbedo, specularAlbedo, specularAlbedo)
			}
		}

		// Direct lighting from the point light, diffuse bounces only
		if !sampleSpecular {
			res.Contribution = res.Contribution.Add(throughput.MultiplyVec(pt.directLight(scene, hitPoint, normal, albedo)))
		}

		bounce++
		if bounce > pt.config.MaxBounces {
			res.Termination = TerminatedMaxBounces
			break
		}

		// A path that can reflect nothing further is not worth extending
		maxAlbedo := albedo.MaxComponent()
		if maxAlbedo < minAlbedo {
			res.Termination = TerminatedZeroAlbedo
			break
		}

		if bounce > pt.config.RouletteAfter {
			survival := math.Max(0, math.Min(1, maxAlbedo))
			if seq.Next() > survival {
				res.Termination = TerminatedRouletteKill
				break
			}
			// Survivors compensate so the estimate stays unbiased
			throughput = throughput.Multiply(1 / survival)
		}

		var newDir core.Vec3
		if sampleSpecular {
			newDir = ray.Direction.Subtract(normal.Multiply(2 * normal.Dot(ray.Direction)))
		} else {
			// Uniform sphere point picking offset along the normal yields
			// a cosine-weighted hemisphere direction
			u1, u2 := seq.Next(), seq.Next()
			a := u1 * 2 * math.Pi
			s := 2 * math.Sqrt(math.Max(0, u2*(1-u2)))
			sphere := core.NewVec3(math.Cos(a)*s, math.Sin(a)*s, 1-2*u2)
			newDir = normal.Add(sphere).Normalize()
		}

		throughput = throughput.MultiplyVec(albedo)
		ray = core.NewRay(hitPoint, newDir)
	}

	res.Bounces = bounce
	return res
}

// sky returns the skylight color for an escaped ray: a vertical gradient
// between the horizon and zenith colors
func (pt *PathTracer) sky(dir core.Vec3) core.Vec3 {
	height := 1 - math.Max(0, dir.Y)
	h2 := height * height
	return pt.config.SkyTop.Add(pt.config.SkyHorizon.Subtract(pt.config.SkyTop).Multiply(h2 * h2))
}

// directLight returns the Lambertian contribution of the point light at
// a diffuse hit, or zero if the light is behind the surface or shadowed.
// The falloff divides by distance cubed: inverse square plus one factor
// that normalizes the light direction inline.
func (pt *PathTracer) directLight(scene core.Scene, p, normal, albedo core.Vec3) core.Vec3 {
	lightVec := pt.config.LightPos.Subtract(p)

	nDotL := normal.Dot(lightVec)
	if nDotL <= 0 {
		return core.Vec3{}
	}

	lightLenSq := lightVec.Dot(lightVec)
	lightLen := math.Sqrt(lightLenSq)
	lightDir := lightVec.Multiply(1 / lightLen)

	shadowRay := core.NewRay(p, lightDir)
	if _, t, blocked := scene.NearestIntersection(shadowRay); blocked && t < lightLen {
		return core.Vec3{}
	}

	return albedo.Multiply(nDotL / (lightLenSq * lightLen) * pt.config.LightIntensity)
}
