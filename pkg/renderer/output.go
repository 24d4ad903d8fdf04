package renderer

import (
	"image"
	"image/color"

	"github.com/pvoss/go-halton-tracer/pkg/core"
)

// Output is the accumulation buffer: per-pixel running radiance sums for
// the beauty channel plus normal and albedo auxiliaries, and the number
// of passes accumulated so far. Sums are never overwritten, only added
// to, so dividing by Passes yields the current mean estimate. Workers
// write disjoint pixels within a pass and the scheduler orders passes,
// so no locking is needed.
type Output struct {
	Width, Height int
	Passes        int
	Beauty        []core.Vec3
	Normal        []core.Vec3
	Albedo        []core.Vec3
}

// NewOutput creates a zeroed accumulation buffer
func NewOutput(width, height int) *Output {
	n := width * height
	return &Output{
		Width:  width,
		Height: height,
		Beauty: make([]core.Vec3, n),
		Normal: make([]core.Vec3, n),
		Albedo: make([]core.Vec3, n),
	}
}

// Clear resets all sums and the pass counter to zero
func (o *Output) Clear() {
	o.Passes = 0
	clear(o.Beauty)
	clear(o.Normal)
	clear(o.Albedo)
}

// Index returns the linear index of pixel (x, y)
func (o *Output) Index(x, y int) int {
	return y*o.Width + x
}

// Accumulate adds one sample's contributions to a pixel
func (o *Output) Accumulate(idx int, beauty, normal, albedo core.Vec3) {
	o.Beauty[idx] = o.Beauty[idx].Add(beauty)
	o.Normal[idx] = o.Normal[idx].Add(normal)
	o.Albedo[idx] = o.Albedo[idx].Add(albedo)
}

// MeanBeauty returns the mean radiance estimate for pixel (x, y)
func (o *Output) MeanBeauty(x, y int) core.Vec3 {
	return o.mean(o.Beauty, x, y)
}

// MeanNormal returns the mean remapped normal for pixel (x, y)
func (o *Output) MeanNormal(x, y int) core.Vec3 {
	return o.mean(o.Normal, x, y)
}

// MeanAlbedo returns the mean surface albedo for pixel (x, y)
func (o *Output) MeanAlbedo(x, y int) core.Vec3 {
	return o.mean(o.Albedo, x, y)
}

func (o *Output) mean(channel []core.Vec3, x, y int) core.Vec3 {
	if o.Passes == 0 {
		return core.Vec3{}
	}
	return channel[o.Index(x, y)].Multiply(1 / float64(o.Passes))
}

// BeautyImage tone maps the mean beauty channel into an 8-bit image
// with gamma-2 correction
func (o *Output) BeautyImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, o.Width, o.Height))
	for y := 0; y < o.Height; y++ {
		for x := 0; x < o.Width; x++ {
			img.SetRGBA(x, y, vec3ToColor(o.MeanBeauty(x, y)))
		}
	}
	return img
}

// vec3ToColor converts linear radiance to a display color with clamping
// and gamma correction
func vec3ToColor(v core.Vec3) color.RGBA {
	v = v.GammaCorrect(2.0).Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * v.X),
		G: uint8(255 * v.Y),
		B: uint8(255 * v.Z),
		A: 255,
	}
}
