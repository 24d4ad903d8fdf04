package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/pvoss/go-halton-tracer/pkg/core"
	"github.com/pvoss/go-halton-tracer/pkg/integrator"
	"github.com/pvoss/go-halton-tracer/pkg/renderer"
	"github.com/pvoss/go-halton-tracer/pkg/scene"
)

// glogLogger bridges the renderer's logger interface onto glog
type glogLogger struct{}

func (glogLogger) Printf(format string, args ...interface{}) {
	glog.InfoDepthf(1, strings.TrimSuffix(format, "\n"), args...)
}

func main() {
	width := flag.Int("width", 960, "output width in pixels")
	height := flag.Int("height", 540, "output height in pixels")
	passes := flag.Int("passes", 64, "samples per pixel")
	frame := flag.Int("frame", 0, "frame index to render")
	frames := flag.Int("frames", 0, "total frames in the camera orbit (0 = static camera)")
	animate := flag.Bool("animate", false, "render every frame of the orbit instead of just -frame")
	workers := flag.Int("workers", 0, "worker goroutines (0 = all CPUs)")
	bucketSize := flag.Int("bucket", 32, "bucket edge length in pixels")
	lensRadius := flag.Float64("lens-radius", 0, "camera lens radius (0 disables depth of field)")
	outDir := flag.String("out", "output", "output directory")
	writeEXR := flag.Bool("exr", false, "also write beauty/normal/albedo EXR channels")
	flag.Parse()
	defer glog.Flush()

	if err := run(*width, *height, *passes, *frame, *frames, *workers, *bucketSize,
		*lensRadius, *outDir, *animate, *writeEXR); err != nil {
		glog.Exitf("render failed: %v", err)
	}
}

func run(width, height, passes, frame, frames, workers, bucketSize int,
	lensRadius float64, outDir string, animate, writeEXR bool) error {

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	cameraConfig := renderer.DefaultCameraConfig(width, height)
	cameraConfig.LensRadius = lensRadius

	config := renderer.DefaultConfig(width, height)
	config.BucketSize = bucketSize
	config.NumWorkers = workers

	r := renderer.NewRenderer(
		scene.NewDefaultScene(),
		renderer.NewCamera(cameraConfig),
		integrator.New(integrator.DefaultConfig()),
		config,
		glogLogger{},
	)
	out := renderer.NewOutput(width, height)

	first, last := frame, frame
	if animate {
		if frames <= 0 {
			return fmt.Errorf("-animate requires -frames > 0")
		}
		first, last = 0, frames-1
	}

	for f := first; f <= last; f++ {
		out.Clear()
		if _, err := r.Render(context.Background(), out, f, 0, frames, passes); err != nil {
			return fmt.Errorf("rendering frame %d: %w", f, err)
		}

		pngPath := filepath.Join(outDir, fmt.Sprintf("frame_%04d.png", f))
		if err := writePNG(pngPath, out.BeautyImage()); err != nil {
			return err
		}
		glog.Infof("wrote %s", pngPath)

		if writeEXR {
			if err := writeAOVs(outDir, f, out); err != nil {
				return err
			}
		}
	}
	return nil
}

func writePNG(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// writeAOVs writes the mean of each accumulation channel as a separate
// HDR EXR file, the layout denoisers expect
func writeAOVs(outDir string, frame int, out *renderer.Output) error {
	channels := []struct {
		name string
		mean func(x, y int) core.Vec3
	}{
		{"beauty", out.MeanBeauty},
		{"normal", out.MeanNormal},
		{"albedo", out.MeanAlbedo},
	}

	for _, ch := range channels {
		img := exr.NewRGBAImage(image.Rect(0, 0, out.Width, out.Height))
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				v := ch.mean(x, y)
				img.SetRGBA(x, y, float32(v.X), float32(v.Y), float32(v.Z), 1)
			}
		}

		path := filepath.Join(outDir, fmt.Sprintf("frame_%04d_%s.exr", frame, ch.name))
		if err := exr.EncodeFile(path, img); err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		glog.Infof("wrote %s", path)
	}
	return nil
}
