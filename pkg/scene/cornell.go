package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"golang.org/x/xerrors"
)

// NewCornellScene creates a Cornell box built from quad meshes, lit by a
// point light under the ceiling, with a mirror sphere and a diffuse sphere
func NewCornellScene(aspectRatio float64) (*Scene, *renderer.PerspectiveCamera, error) {
	const boxSize = 555.0

	camera := renderer.NewPerspectiveCamera(renderer.CameraConfig{
		Position:    core.NewVec3(278, 278, -800),
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: aspectRatio,
	})

	white := material.NewDiffuseBRDF(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuseBRDF(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuseBRDF(core.NewVec3(0.12, 0.45, 0.15))
	mirror := material.NewPhongBRDF(core.NewVec3(0.02, 0.02, 0.02), core.NewVec3(0.85, 0.85, 0.9), 500)

	walls := []struct {
		name   string
		corner core.Vec3
		u, v   core.Vec3
		brdf   *material.PhongBRDF
	}{
		// Floor - XZ plane at y=0
		{"floor", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), white},
		// Ceiling - XZ plane at y=boxSize
		{"ceiling", core.NewVec3(0, boxSize, 0), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, 0, boxSize), white},
		// Back wall - XY plane at z=boxSize
		{"back", core.NewVec3(0, 0, boxSize), core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), white},
		// Left wall - YZ plane at x=0
		{"left", core.NewVec3(0, 0, 0), core.NewVec3(0, 0, boxSize), core.NewVec3(0, boxSize, 0), red},
		// Right wall - YZ plane at x=boxSize
		{"right", core.NewVec3(boxSize, 0, 0), core.NewVec3(0, boxSize, 0), core.NewVec3(0, 0, boxSize), green},
	}

	s := New()
	for _, wall := range walls {
		mesh, err := geometry.NewQuadMesh(wall.name, wall.corner, wall.u, wall.v, wall.brdf)
		if err != nil {
			return nil, nil, xerrors.Errorf("building cornell scene: %w", err)
		}
		s.AddMesh(mesh)
	}

	s.AddShape(geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5, mirror))
	s.AddShape(geometry.NewSphere(core.NewVec3(370, 90, 351), 90, white))
	s.AddLight(lights.NewPointLight(core.NewVec3(278, boxSize-20, 278), core.NewVec3(1, 1, 1), 600000))
	s.Build()

	return s, camera, nil
}
