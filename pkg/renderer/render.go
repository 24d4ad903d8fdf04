// Package renderer drives the progressive render: it partitions the
// image into buckets, distributes bucket × sub-pass work units to a
// fixed pool of workers, and accumulates per-pixel radiance estimates
// across passes.
package renderer

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pvoss/go-halton-tracer/pkg/core"
	"github.com/pvoss/go-halton-tracer/pkg/integrator"
	"github.com/pvoss/go-halton-tracer/pkg/sampler"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Config contains configuration for a render invocation
type Config struct {
	Width      int // Output width in pixels
	Height     int // Output height in pixels
	BucketSize int // Edge length of square work buckets (32 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultConfig returns sensible default values
func DefaultConfig(width, height int) Config {
	return Config{
		Width:      width,
		Height:     height,
		BucketSize: 32,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// Renderer renders progressive passes of a scene into an accumulation
// buffer. The scene, camera and integrator are fixed at construction;
// each Render call owns its own work queue, so a Renderer can be reused
// across frames.
type Renderer struct {
	scene  core.Scene
	camera *Camera
	tracer *integrator.PathTracer
	config Config
	logger core.Logger
}

// NewRenderer creates a renderer. A nil logger falls back to stdout.
func NewRenderer(scene core.Scene, camera *Camera, tracer *integrator.PathTracer, config Config, logger core.Logger) *Renderer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &Renderer{
		scene:  scene,
		camera: camera,
		tracer: tracer,
		config: config,
		logger: logger,
	}
}

// Render accumulates `passes` additional passes for one frame into out,
// blocking until the work queue drains. basePass is the index of the
// first pass rendered (sample streams continue from it, so successive
// invocations refine the same estimate), frames is the animation length
// (0 for a static camera). On success out.Passes is advanced by passes;
// on cancellation the buffer holds a partial, unusable accumulation and
// the counter is left untouched.
func (r *Renderer) Render(ctx context.Context, out *Output, frame, basePass, frames, passes int) (RenderStats, error) {
	if out.Width != r.config.Width || out.Height != r.config.Height {
		return RenderStats{}, fmt.Errorf("output buffer is %dx%d, renderer expects %dx%d",
			out.Width, out.Height, r.config.Width, r.config.Height)
	}

	numWorkers := r.config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	queue := NewQueue(r.config.Width, r.config.Height, r.config.BucketSize, passes)
	r.logger.Printf("Frame %d: rendering %d passes as %d units on %d workers\n",
		frame, passes, queue.Units(), numWorkers)

	start := time.Now()
	var mu sync.Mutex
	var total RenderStats

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < numWorkers; i++ {
		g.Go(func() error {
			// Workers mutate their scene copy freely during traversal
			workerScene := r.scene.Clone()
			var stats RenderStats

			for {
				unit, ok := queue.Claim()
				if !ok {
					break
				}
				queue.Wait(unit.SubPass)

				// A claimed unit must be finished even when abandoned,
				// or workers gated on later sub-passes stall
				if err := ctx.Err(); err != nil {
					queue.Finish()
					return err
				}

				r.renderUnit(unit, workerScene, out, frame, basePass, frames, &stats)
				queue.Finish()
			}

			mu.Lock()
			total.merge(stats)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return RenderStats{}, err
	}

	out.Passes += passes
	total.Elapsed = time.Since(start)
	r.logger.Printf("Frame %d: %d passes in %v (%d paths, %.2f avg bounces, %d roulette kills)\n",
		frame, passes, total.Elapsed.Round(time.Millisecond), total.Samples,
		total.AverageBounces(), total.Terminations[integrator.TerminatedRouletteKill])
	return total, nil
}

// renderUnit evaluates one path per pixel in the unit's rectangle for
// its sub-pass. Within a pass every pixel belongs to exactly one unit,
// and Wait ordered this sub-pass after all earlier ones, so plain
// read-modify-write accumulation is safe.
func (r *Renderer) renderUnit(unit Unit, workerScene core.Scene, out *Output, frame, basePass, frames int, stats *RenderStats) {
	pass := basePass + unit.SubPass
	pixelsPerFrame := r.config.Width * r.config.Height

	for y := unit.Y0; y < unit.Y1; y++ {
		for x := unit.X0; x < unit.X1; x++ {
			idx := out.Index(x, y)
			seq := sampler.NewSequence(frame, pass, idx, pixelsPerFrame)
			ray := r.camera.GenerateRay(x, y, frame, frames, seq)
			res := r.tracer.TracePath(ray, workerScene, seq)
			out.Accumulate(idx, res.Contribution, res.Normal, res.Albedo)
			stats.addPath(res)
		}
	}
	stats.Units++
}
