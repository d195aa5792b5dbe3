package renderer

import (
	"math/rand"
	"runtime"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

// Config contains rendering configuration
type Config struct {
	SamplesPerPixel int   // Number of jittered camera rays per pixel
	MaxDepth        int   // Recursion limit handed to the integrator
	Workers         int   // Number of parallel workers, 0 means runtime.NumCPU()
	Seed            int64 // Base seed, worker w samples with Seed+w
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		SamplesPerPixel: 1,
		MaxDepth:        10,
		Workers:         runtime.NumCPU(),
		Seed:            42,
	}
}

// Renderer owns the active integrator and runs the sampling loop.
// Its setters must not be called while RenderImage is running.
type Renderer struct {
	integrator integrator.Integrator
	config     Config
	logger     core.Logger
	lastStats  RenderStats
}

// NewRenderer creates a renderer with a RayCast integrator installed
func NewRenderer(config Config, logger core.Logger) *Renderer {
	if logger == nil {
		logger = core.NewDefaultLogger()
	}
	return &Renderer{
		integrator: integrator.NewRayCastIntegrator(),
		config:     config,
		logger:     logger,
	}
}

func (r *Renderer) log() core.Logger {
	if r.logger == nil {
		r.logger = core.NewDefaultLogger()
	}
	return r.logger
}

// SetIntegrator replaces the active integrator with a fresh one of type t.
// On error the current integrator stays installed.
func (r *Renderer) SetIntegrator(t integrator.Type) error {
	next, err := integrator.New(t)
	if err != nil {
		return xerrors.Errorf("set integrator: %w", err)
	}
	r.integrator = next
	return nil
}

// Integrator returns the active integrator, nil if none is installed
func (r *Renderer) Integrator() integrator.Integrator {
	return r.integrator
}

// SetBackgroundColor forwards to the active integrator
func (r *Renderer) SetBackgroundColor(color core.Vec3) {
	if r.integrator == nil {
		r.log().Printf("renderer: no integrator installed, ignoring background color %v\n", color)
		return
	}
	r.integrator.SetBackgroundColor(color)
}

// SetSamplesPerPixel sets the number of camera rays per pixel
func (r *Renderer) SetSamplesPerPixel(n int) {
	if n < 1 {
		r.log().Printf("renderer: ignoring invalid samples per pixel %d\n", n)
		return
	}
	r.config.SamplesPerPixel = n
}

// SetMaxDepth sets the recursion limit passed to the integrator
func (r *Renderer) SetMaxDepth(depth int) {
	if depth < 0 {
		r.log().Printf("renderer: ignoring negative max depth %d\n", depth)
		return
	}
	r.config.MaxDepth = depth
}

// Config returns the current configuration
func (r *Renderer) Config() Config {
	return r.config
}

// LastStats returns statistics of the most recent RenderImage call
func (r *Renderer) LastStats() RenderStats {
	return r.lastStats
}

// RenderImage renders every pixel of fb and returns the elapsed wall-clock time.
// Without an integrator it logs and renders nothing.
func (r *Renderer) RenderImage(scene integrator.Scene, camera Camera, fb Framebuffer) time.Duration {
	start := time.Now()

	if r.integrator == nil {
		r.log().Printf("renderer: no integrator installed, skipping render\n")
		return 0
	}

	width, height := fb.Width(), fb.Height()
	totalPixels := width * height
	if totalPixels <= 0 {
		return time.Since(start)
	}

	samples := max(r.config.SamplesPerPixel, 1)
	workers := r.config.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, totalPixels)

	// Contiguous blocks of the flattened pixel range, one per worker
	blockSize := (totalPixels + workers - 1) / workers

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		first := w * blockSize
		last := min(first+blockSize, totalPixels)
		if first >= last {
			continue
		}

		g.Go(func() error {
			random := rand.New(rand.NewSource(r.config.Seed + int64(w)))
			for p := first; p < last; p++ {
				x, y := p%width, p/width
				fb.SetPixel(x, y, r.samplePixel(scene, camera, random, x, y, width, height, samples))
			}
			return nil
		})
	}
	// Workers never fail, Wait is only the join
	_ = g.Wait()

	elapsed := time.Since(start)
	r.lastStats = RenderStats{
		TotalPixels:  totalPixels,
		TotalSamples: totalPixels * samples,
		Workers:      workers,
		Elapsed:      elapsed,
	}
	r.log().Printf("rendered %dx%d with %s integrator: %d samples on %d workers in %v (%.0f samples/s)\n",
		width, height, r.integrator.Type(), r.lastStats.TotalSamples, workers, elapsed, r.lastStats.SamplesPerSecond())

	return elapsed
}

// samplePixel averages jittered camera samples through pixel (x, y) and
// clamps the result to [0,1]
func (r *Renderer) samplePixel(scene integrator.Scene, camera Camera, random *rand.Rand, x, y, width, height, samples int) core.Vec3 {
	colorAccum := core.Vec3{}
	for s := 0; s < samples; s++ {
		u := (float64(x) + random.Float64()) / float64(width)
		v := (float64(y) + random.Float64()) / float64(height)

		ray := camera.GenerateRay(u, v)
		colorAccum = colorAccum.Add(r.integrator.Li(scene, ray, 0, r.config.MaxDepth))
	}

	return colorAccum.Multiply(1.0/float64(samples)).ZeroNaN().Clamp(0, 1)
}
