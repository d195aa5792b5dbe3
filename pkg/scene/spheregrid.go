package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"golang.org/x/xerrors"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// sphereGridSize is the number of spheres along each side of the grid
const sphereGridSize = 20

// NewSphereGridScene creates a grid of glossy spheres on a ground quad.
// The many small primitives make it a BVH workout.
func NewSphereGridScene(aspectRatio float64) (*Scene, *renderer.PerspectiveCamera, error) {
	camera := renderer.NewPerspectiveCamera(renderer.CameraConfig{
		Position:    core.NewVec3(4.5, 6, 18),    // Back and above the grid
		LookAt:      core.NewVec3(4.5, 0.8, 4.5), // Centre of the grid, slightly lower
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: aspectRatio,
	})

	ground, err := geometry.NewQuadMesh("ground",
		core.NewVec3(-15.5, 0, -15.5),
		core.NewVec3(0, 0, 40),
		core.NewVec3(40, 0, 0),
		material.NewDiffuseBRDF(core.NewVec3(0.5, 0.5, 0.5)))
	if err != nil {
		return nil, nil, xerrors.Errorf("building sphere grid scene: %w", err)
	}

	s := New()
	s.AddMesh(ground)

	// Fit the grid in a 9x9 area
	targetArea := 9.0
	spacing := targetArea / float64(sphereGridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	baseLightness := 0.65
	minChroma, maxChroma := 0.05, 0.25

	for i := 0; i < sphereGridSize; i++ {
		for j := 0; j < sphereGridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			// Hue varies across X, chroma across Z
			hue := (float64(i) / float64(sphereGridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(sphereGridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			// Every third sphere is a tinted mirror
			reflec := core.NewVec3(0.05, 0.05, 0.05)
			if (i+j)%3 == 0 {
				reflec = color.Multiply(0.8)
			}
			brdf := material.NewPhongBRDF(color.Multiply(0.7), reflec, 64)

			s.AddShape(geometry.NewSphere(core.NewVec3(x, sphereRadius, z), sphereRadius, brdf))
		}
	}

	s.AddLight(lights.NewPointLight(core.NewVec3(20, 25, 20), core.NewVec3(1.0, 0.96, 0.9), 1500))
	s.AddLight(lights.NewDirectionalLight(core.NewVec3(-1, -2, -1), core.NewVec3(0.3, 0.3, 0.35)))
	s.Build()

	return s, camera, nil
}
