package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"golang.org/x/xerrors"
)

// NewEmptyScene creates a scene with no primitives and no lights
func NewEmptyScene(aspectRatio float64) (*Scene, *renderer.PerspectiveCamera) {
	camera := renderer.NewPerspectiveCamera(renderer.CameraConfig{
		Position:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        60,
		AspectRatio: aspectRatio,
	})

	s := New()
	s.Build()
	return s, camera
}

// NewQuadScene creates a flat 2x2 quad centered at the origin in the XZ
// plane, lit by a single point light straight above it. The camera looks
// straight down so the quad fills the middle of the frame.
func NewQuadScene(aspectRatio float64) (*Scene, *renderer.PerspectiveCamera, error) {
	camera := renderer.NewPerspectiveCamera(renderer.CameraConfig{
		Position:    core.NewVec3(0, 4, 0),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 0, -1),
		VFov:        40,
		AspectRatio: aspectRatio,
	})

	white := material.NewDiffuseBRDF(core.NewVec3(0.8, 0.8, 0.8))
	quad, err := geometry.NewQuadMesh("quad",
		core.NewVec3(-1, 0, -1), // corner
		core.NewVec3(0, 0, 2),   // u vector (Z direction)
		core.NewVec3(2, 0, 0),   // v vector (X direction), u x v points up
		white)
	if err != nil {
		return nil, nil, xerrors.Errorf("building quad scene: %w", err)
	}

	s := New()
	s.AddMesh(quad)
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 3, 0), core.NewVec3(1, 1, 1), 25))
	s.Build()

	return s, camera, nil
}

// NewDefaultScene creates a floor, a mirror panel and two spheres lit by a
// point light and a directional light. It exercises every integrator.
func NewDefaultScene(aspectRatio float64) (*Scene, *renderer.PerspectiveCamera, error) {
	camera := renderer.NewPerspectiveCamera(renderer.CameraConfig{
		Position:    core.NewVec3(0, 1.5, 4),
		LookAt:      core.NewVec3(0, 0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        45,
		AspectRatio: aspectRatio,
	})

	floorBRDF := material.NewPhongBRDF(core.NewVec3(0.6, 0.6, 0.6), core.NewVec3(0.05, 0.05, 0.05), 8)
	mirrorBRDF := material.NewPhongBRDF(core.NewVec3(0.05, 0.05, 0.05), core.NewVec3(0.9, 0.9, 0.9), 200)
	redBRDF := material.NewPhongBRDF(core.NewVec3(0.7, 0.15, 0.1), core.NewVec3(0.2, 0.2, 0.2), 64)
	blueBRDF := material.NewDiffuseBRDF(core.NewVec3(0.1, 0.2, 0.6))

	floor, err := geometry.NewQuadMesh("floor",
		core.NewVec3(-4, 0, -4),
		core.NewVec3(0, 0, 8),
		core.NewVec3(8, 0, 0),
		floorBRDF)
	if err != nil {
		return nil, nil, xerrors.Errorf("building default scene: %w", err)
	}

	// Mirror panel behind the spheres, facing the camera
	mirror, err := geometry.NewQuadMesh("mirror",
		core.NewVec3(-2, 0, -1.5),
		core.NewVec3(4, 0, 0),
		core.NewVec3(0, 2, 0),
		mirrorBRDF)
	if err != nil {
		return nil, nil, xerrors.Errorf("building default scene: %w", err)
	}

	s := New()
	s.AddMesh(floor)
	s.AddMesh(mirror)
	s.AddShape(geometry.NewSphere(core.NewVec3(-0.6, 0.5, 0), 0.5, redBRDF))
	s.AddShape(geometry.NewSphere(core.NewVec3(0.7, 0.35, 0.6), 0.35, blueBRDF))
	s.AddLight(lights.NewPointLight(core.NewVec3(1, 3, 2), core.NewVec3(1, 0.95, 0.9), 20))
	s.AddLight(lights.NewDirectionalLight(core.NewVec3(-1, -2, -1), core.NewVec3(0.3, 0.3, 0.35)))
	s.Build()

	return s, camera, nil
}
