package renderer

import (
	"math"

	"github.com/pvoss/go-halton-tracer/pkg/core"
	"github.com/pvoss/go-halton-tracer/pkg/sampler"
)

// CameraConfig contains the camera's optical parameters
type CameraConfig struct {
	Width      int       // Output width in pixels
	Height     int       // Output height in pixels
	FOVDegrees float64   // Horizontal field of view
	LookAt     core.Vec3 // Orbit target
	LensRadius float64   // Lens radius for depth of field; 0 disables it
	FocalScale float64   // Focal distance as a fraction of the look-at distance
}

// DefaultCameraConfig returns the reference camera: 80° field of view,
// orbiting the scene center, no depth of field.
func DefaultCameraConfig(width, height int) CameraConfig {
	return CameraConfig{
		Width:      width,
		Height:     height,
		FOVDegrees: 80,
		LookAt:     core.NewVec3(0, -0.125, 0),
		LensRadius: 0,
		FocalScale: 0.75,
	}
}

// Camera maps pixels to world-space rays. The camera position orbits the
// look-at target over the animation, so rays depend on the frame index
// and, through per-pass time jitter, on the sample stream (motion blur
// accumulates across passes).
type Camera struct {
	config           CameraConfig
	sensorW, sensorH float64
}

// NewCamera creates a camera, deriving sensor dimensions from the field
// of view and aspect ratio
func NewCamera(config CameraConfig) *Camera {
	fovRad := config.FOVDegrees * math.Pi / 180
	sensorW := 2 * math.Tan(fovRad/2)
	aspect := float64(config.Width) / float64(config.Height)
	return &Camera{
		config:  config,
		sensorW: sensorW,
		sensorH: sensorW / aspect,
	}
}

// GenerateRay builds the world-space ray for one sample of pixel (x, y).
// It draws two sampler dimensions for sub-pixel jitter, one more for
// time jitter when frames > 0, and two more for the lens when depth of
// field is enabled. frames <= 0 freezes the orbit at time zero.
func (c *Camera) GenerateRay(x, y, frame, frames int, seq *sampler.Sequence) core.Ray {
	jitterX := sampler.TriangleWarp(seq.Next())
	jitterY := sampler.TriangleWarp(seq.Next())

	var time float64
	if frames > 0 {
		time = 2 * math.Pi * (float64(frame) + sampler.TriangleWarp(seq.Next())) / float64(frames)
	}
	cosT, sinT := math.Cos(time), math.Sin(time)

	camPos := core.NewVec3(4*cosT+10*sinT, 5, -10*cosT+4*sinT).Multiply(0.3)
	forward := c.config.LookAt.Subtract(camPos).Normalize()
	right := core.NewVec3(0, 1, 0).Cross(forward)
	up := forward.Cross(right)

	// Image rows grow downward, hence the negated vertical basis
	pixelX := right.Multiply(c.sensorW / float64(c.config.Width))
	pixelY := up.Multiply(-c.sensorH / float64(c.config.Height))

	origin := camPos
	direction := forward.
		Add(pixelX.Multiply(float64(x) - float64(c.config.Width)*0.5 + jitterX + 0.5)).
		Add(pixelY.Multiply(float64(y) - float64(c.config.Height)*0.5 + jitterY + 0.5)).
		Normalize()

	if c.config.LensRadius > 0 {
		focalDist := camPos.Subtract(c.config.LookAt).Length() * c.config.FocalScale

		// Random point on the lens disc, then re-aim at the focal plane
		lensR := math.Sqrt(seq.Next()) * c.config.LensRadius
		lensA := 2 * math.Pi * seq.Next()
		focalPoint := origin.Add(direction.Multiply(focalDist / direction.Dot(forward)))

		origin = origin.
			Add(right.Multiply(math.Cos(lensA) * lensR)).
			Add(up.Multiply(math.Sin(lensA) * lensR))
		direction = focalPoint.Subtract(origin).Normalize()
	}

	return core.NewRay(origin, direction)
}
