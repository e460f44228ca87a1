package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/Oygron/raytracer/frame"
	"github.com/Oygron/raytracer/renderer"
	"github.com/Oygron/raytracer/scene"
	"github.com/Oygron/raytracer/scene/reader"
	"github.com/Oygron/raytracer/tracer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

var (
	errMissingSceneArg = errors.New("missing scene file argument")
	errInvalidSpp      = errors.New("--spp must be at least 1")
	errInvalidBounces  = errors.New("--bounces must be at least 1")
)

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	opts, err := renderOptions(ctx)
	if err != nil {
		return err
	}

	// Load scene
	if ctx.NArg() != 1 {
		return errMissingSceneArg
	}

	sc, err := reader.ReadScene(ctx.Args().First(), cameraOverrides(ctx)...)
	if err != nil {
		return err
	}

	// Create renderer
	r, err := renderer.New(sc, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	logger.Noticef("rendering %dx%d frame (mode: %s, spp: %d, bounces: %d)", sc.Camera.Width(), sc.Camera.Height(), opts.Mode, opts.SamplesPerPixel, opts.NumBounces)
	f, err := r.Render()
	if err != nil {
		return err
	}

	// Display stats
	displayFrameStats(r.Stats())

	imgFile := ctx.String("out")
	start := time.Now()
	if err = frame.Write(f, imgFile, ctx.Float64("scale")); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", imgFile, time.Since(start).Nanoseconds()/1e6)

	return nil
}

// Build render options from the command flags.
func renderOptions(ctx *cli.Context) (renderer.Options, error) {
	opts := renderer.DefaultOptions()

	mode, err := renderer.ParseMode(ctx.String("mode"))
	if err != nil {
		return opts, err
	}
	opts.Mode = mode

	if ctx.IsSet("spp") {
		spp := ctx.Int("spp")
		if spp < 1 {
			return opts, errInvalidSpp
		}
		opts.SamplesPerPixel = uint32(spp)
	}
	if ctx.IsSet("bounces") {
		bounces := ctx.Int("bounces")
		if bounces < 1 {
			return opts, errInvalidBounces
		}
		opts.NumBounces = uint32(bounces)
	}
	if minBlock := ctx.Int("min-block"); minBlock > 0 {
		opts.MinBlockSize = uint32(minBlock)
	}
	if ctx.IsSet("workers") && ctx.Int("workers") > 0 {
		opts.NumWorkers = uint32(ctx.Int("workers"))
	}
	if ctx.IsSet("seed") {
		opts.Seed = ctx.Int64("seed")
	}
	if ctx.Bool("shadow-miss-visible") {
		opts.Visibility = tracer.MissIsVisible
	}

	return opts, nil
}

// Camera settings supplied on the command line override the scene ones.
func cameraOverrides(ctx *cli.Context) []scene.CameraOption {
	var opts []scene.CameraOption

	width, height := uint32(ctx.Int("width")), uint32(ctx.Int("height"))
	if width > 0 && height > 0 {
		opts = append(opts, scene.WithResolution(width, height))
	} else if width > 0 || height > 0 {
		logger.Warning("both width and height must be specified to override the camera resolution")
	}

	if fov := ctx.Float64("fov"); fov > 0 {
		opts = append(opts, scene.WithFOV(fov))
	}
	return opts
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Samples", "% of frame"})
	for _, stat := range stats.Workers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.Samples),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
		})
	}
	table.SetFooter([]string{fmt.Sprintf("%d rays", stats.Rays), "TOTAL", stats.RenderTime.String()})

	table.Render()
	logger.Noticef("frame statistics (%s, %dx%d, %d spp)\n%s", stats.Mode, stats.FrameW, stats.FrameH, stats.SamplesPerPixel, buf.String())
}
