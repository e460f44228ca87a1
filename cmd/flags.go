package cmd

import (
	"runtime"

	"github.com/Oygron/raytracer/renderer"
	"github.com/urfave/cli"
)

// Flags accepted by the render command.
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "out, o",
		Value:  "frame.png",
		Usage:  "image filename for the rendered frame (.png, .webp or .tga)",
		EnvVar: "RAYTRACER_OUT",
	},
	cli.StringFlag{
		Name:   "mode, m",
		Value:  renderer.Sequential.String(),
		Usage:  "sample distribution mode (sequential, pool or reduce)",
		EnvVar: "RAYTRACER_MODE",
	},
	cli.IntFlag{
		Name:   "spp",
		Value:  int(renderer.DefaultOptions().SamplesPerPixel),
		Usage:  "samples per pixel",
		EnvVar: "RAYTRACER_SPP",
	},
	cli.IntFlag{
		Name:   "bounces",
		Value:  int(renderer.DefaultOptions().NumBounces),
		Usage:  "max number of reflection bounces",
		EnvVar: "RAYTRACER_BOUNCES",
	},
	cli.IntFlag{
		Name:   "workers",
		Value:  runtime.NumCPU(),
		Usage:  "number of workers for the parallel modes",
		EnvVar: "RAYTRACER_WORKERS",
	},
	cli.IntFlag{
		Name:   "min-block",
		Usage:  "minimum number of samples per block in reduce mode",
		EnvVar: "RAYTRACER_MIN_BLOCK",
	},
	cli.Int64Flag{
		Name:   "seed",
		Value:  renderer.DefaultOptions().Seed,
		Usage:  "seed for the sample random streams",
		EnvVar: "RAYTRACER_SEED",
	},
	cli.IntFlag{
		Name:  "width",
		Usage: "override the camera frame width",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "override the camera frame height",
	},
	cli.Float64Flag{
		Name:  "fov",
		Usage: "override the camera horizontal field of view in degrees",
	},
	cli.Float64Flag{
		Name:  "scale",
		Value: 1.0,
		Usage: "resample the output image by this factor",
	},
	cli.BoolFlag{
		Name:   "shadow-miss-visible",
		Usage:  "treat lights whose shadow ray hits nothing as visible",
		EnvVar: "RAYTRACER_SHADOW_MISS_VISIBLE",
	},
}
