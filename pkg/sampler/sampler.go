// Package sampler produces the deterministic low-discrepancy sample
// streams that drive every random decision in the renderer: pixel
// jitter, time jitter, Fresnel lobe selection, bounce directions and
// Russian roulette. For a fixed (frame, pixel, pass) the stream is
// bit-for-bit reproducible regardless of thread timing.
package sampler

import "math"

// primes are the radical inverse bases a Sequence cycles through, one
// per sample dimension. Six bases bound correlation between nearby
// dimensions while keeping the table small.
var primes = [6]int{2, 3, 5, 7, 11, 13}

// oneMinusEpsilon is the largest float64 strictly below 1.0, used to
// keep samples off the closed upper boundary of the domain.
var oneMinusEpsilon = math.Nextafter(1, 0)

// RadicalInverse returns the base-b digit reversal of index a as a
// fraction in [0,1). From PBRT.
func RadicalInverse(a, base int) float64 {
	invBase := 1.0 / float64(base)

	reversed := 0
	invBaseN := 1.0
	for a > 0 {
		next := a / base
		digit := a - base*next
		reversed = reversed*base + digit
		invBaseN *= invBase
		a = next
	}

	return math.Min(float64(reversed)*invBaseN, oneMinusEpsilon)
}

// Hash is Thomas Wang's 32-bit integer hash, used to decorrelate the
// radical inverse streams of neighboring pixels.
func Hash(x uint32) uint32 {
	x = (x ^ 12345391) * 2654435769
	x ^= (x << 6) ^ (x >> 26)
	x *= 2654435769
	x += (x << 5) ^ (x >> 12)
	return x
}

// unitInterval maps a 32-bit integer uniformly onto [0,1).
func unitInterval(v uint32) float64 {
	return float64(v) * (1.0 / (1 << 32))
}

// Wrap1 adds u and v modulo 1, assuming both are in [0,1).
func Wrap1(u, v float64) float64 {
	s := u + v
	if s < 1 {
		return s
	}
	return s - 1
}

func sign(v float64) float64 {
	if v >= 0 {
		return 1
	}
	return -1
}

// TriangleWarp converts a uniform value in [0,1) into a value in [-1,1]
// with triangular probability density, so that pixel jitter reconstructs
// a tent filter. From https://www.shadertoy.com/view/4t2SDh
func TriangleWarp(u float64) float64 {
	orig := u*2 - 1
	v := orig / math.Sqrt(math.Abs(orig))
	if !(v >= -1) {
		return -1 // 0/sqrt(0) at the center of the distribution; pin to the lower edge
	}
	return v - sign(orig)
}

// Sequence is the sample stream cursor for one pixel evaluation during
// one pass. Each draw takes the radical inverse of the pass index in the
// next prime base and offsets it by a hash-derived pixel shift, so every
// pixel sees its own scrambled copy of the same Halton-style sequence.
// Sequences share no state and are safe to use from any goroutine.
type Sequence struct {
	pass   int
	offset float64
	dim    int
}

// NewSequence creates the sample stream for a pixel. pixel is the linear
// index y*width+x and pixelsPerFrame is width*height, so that the
// decorrelation offset also varies across animation frames.
func NewSequence(frame, pass, pixel, pixelsPerFrame int) *Sequence {
	seed := uint32(frame*pixelsPerFrame + pixel)
	return &Sequence{pass: pass, offset: unitInterval(Hash(seed))}
}

// Next returns the next dimension's sample in [0,1) and advances the
// cursor. After the sixth dimension the prime cycle wraps around.
func (s *Sequence) Next() float64 {
	u := RadicalInverse(s.pass, primes[s.dim])
	s.dim++
	if s.dim == len(primes) {
		s.dim = 0
	}
	return Wrap1(u, s.offset)
}
