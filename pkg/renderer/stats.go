package renderer

import (
	"time"

	"github.com/pvoss/go-halton-tracer/pkg/integrator"
)

// RenderStats summarizes one render invocation
type RenderStats struct {
	Units        int                             // Work units rendered
	Samples      int                             // Paths traced (pixels × passes)
	Bounces      int                             // Total bounces across all paths
	Terminations [integrator.NumTerminations]int // Path counts by termination reason
	Elapsed      time.Duration
}

// addPath records one traced path
func (s *RenderStats) addPath(res integrator.PathResult) {
	s.Samples++
	s.Bounces += res.Bounces
	s.Terminations[res.Termination]++
}

// merge folds another worker's statistics into this one
func (s *RenderStats) merge(other RenderStats) {
	s.Units += other.Units
	s.Samples += other.Samples
	s.Bounces += other.Bounces
	for i, n := range other.Terminations {
		s.Terminations[i] += n
	}
}

// AverageBounces returns the mean path length
func (s *RenderStats) AverageBounces() float64 {
	if s.Samples == 0 {
		return 0
	}
	return float64(s.Bounces) / float64(s.Samples)
}
