package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/golang/glog"
	"golang.org/x/xerrors"
)

// options holds the parsed command line
type options struct {
	scene      string
	integrator string
	width      int
	height     int
	spp        int
	depth      int
	workers    int
	seed       int64
	background string
	out        string
}

func main() {
	defaults := renderer.DefaultConfig()

	var opts options
	flag.StringVar(&opts.scene, "scene", "default", "Scene to render (see -help)")
	flag.StringVar(&opts.integrator, "integrator", "whitted", "Integrator: raycast, direct or whitted")
	flag.IntVar(&opts.width, "width", 400, "Image width in pixels")
	flag.IntVar(&opts.height, "height", 300, "Image height in pixels")
	flag.IntVar(&opts.spp, "spp", 4, "Samples per pixel")
	flag.IntVar(&opts.depth, "depth", defaults.MaxDepth, "Maximum recursion depth")
	flag.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = number of CPUs)")
	flag.Int64Var(&opts.seed, "seed", defaults.Seed, "Base seed for pixel jitter")
	flag.StringVar(&opts.background, "background", "0,0,0", "Background color as r,g,b in [0,1]")
	flag.StringVar(&opts.out, "out", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()
	defer glog.Flush()

	if *help {
		printHelp()
		return
	}

	if err := run(opts); err != nil {
		glog.Exitf("render failed: %v", err)
	}
}

func printHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	writeSceneList(os.Stdout)
}

// writeSceneList prints one line per built-in scene
func writeSceneList(w io.Writer) {
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-10s %-12s %s\n", info.ID, info.DisplayName, info.Description)
	}
}

// run renders the requested scene and writes it as a PNG
func run(opts options) error {
	if opts.width <= 0 || opts.height <= 0 {
		return xerrors.Errorf("invalid image size %dx%d", opts.width, opts.height)
	}

	integratorType, err := integrator.ParseType(opts.integrator)
	if err != nil {
		return err
	}

	background, err := parseColor(opts.background)
	if err != nil {
		return err
	}

	s, camera, err := scene.Create(opts.scene, float64(opts.width)/float64(opts.height))
	if err != nil {
		return err
	}
	glog.Infof("scene %q: %d primitives, %d lights", opts.scene, s.PrimitiveCount(), len(s.Lights()))

	config := renderer.DefaultConfig()
	config.SamplesPerPixel = opts.spp
	config.MaxDepth = opts.depth
	config.Seed = opts.seed
	if opts.workers > 0 {
		config.Workers = opts.workers
	}

	r := renderer.NewRenderer(config, core.NewDefaultLogger())
	if err := r.SetIntegrator(integratorType); err != nil {
		return err
	}
	r.SetBackgroundColor(background)

	fb := renderer.NewTexture(opts.width, opts.height)
	elapsed := r.RenderImage(s, camera, fb)
	img := fb.ToImage()
	glog.Infof("render completed in %v, average luminance %.3f", elapsed, renderer.CalculateAverageLuminance(img))

	filename := opts.out
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", opts.scene, fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := writePNG(filename, img); err != nil {
		return err
	}

	glog.Infof("render saved as %s", filename)
	return nil
}

// writePNG encodes img to filename, creating parent directories
func writePNG(filename string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return xerrors.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return xerrors.Errorf("creating %s: %w", filename, err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return xerrors.Errorf("encoding %s: %w", filename, err)
	}
	if err := file.Close(); err != nil {
		return xerrors.Errorf("closing %s: %w", filename, err)
	}
	return nil
}

// parseColor parses an "r,g,b" triple with components in [0,1]
func parseColor(s string) (core.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return core.Vec3{}, xerrors.Errorf("color %q: want r,g,b", s)
	}

	var c [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, xerrors.Errorf("color %q: %w", s, err)
		}
		if v < 0 || v > 1 {
			return core.Vec3{}, xerrors.Errorf("color %q: component %g outside [0,1]", s, v)
		}
		c[i] = v
	}
	return core.NewVec3(c[0], c[1], c[2]), nil
}
