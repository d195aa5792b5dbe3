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

// NewTriangleMeshScene creates a scene showcasing indexed triangle meshes:
// a flat-shaded box and pyramid next to a smooth-shaded icosahedron
func NewTriangleMeshScene(aspectRatio float64) (*Scene, *renderer.PerspectiveCamera, error) {
	camera := renderer.NewPerspectiveCamera(renderer.CameraConfig{
		Position:    core.NewVec3(0, 2, 6), // Position camera to see the meshes
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        45,
		AspectRatio: aspectRatio,
	})

	groundBRDF := material.NewPhongBRDF(core.NewVec3(0.7, 0.7, 0.7), core.NewVec3(0.1, 0.1, 0.1), 16)
	redBRDF := material.NewPhongBRDF(core.NewVec3(0.8, 0.2, 0.2), core.NewVec3(0.3, 0.3, 0.3), 32)
	blueBRDF := material.NewDiffuseBRDF(core.NewVec3(0.2, 0.3, 0.8))
	goldBRDF := material.NewPhongBRDF(core.NewVec3(0.3, 0.2, 0.05), core.NewVec3(0.8, 0.6, 0.2), 128)

	builders := []func() (*geometry.TriangleMesh, error){
		func() (*geometry.TriangleMesh, error) {
			return geometry.NewQuadMesh("ground", core.NewVec3(-6, 0, -6), core.NewVec3(0, 0, 12), core.NewVec3(12, 0, 0), groundBRDF)
		},
		func() (*geometry.TriangleMesh, error) {
			return createBoxMesh(core.NewVec3(-2, 0.5, 0), core.NewVec3(1, 1, 1), math.Pi/6, redBRDF)
		},
		func() (*geometry.TriangleMesh, error) {
			return createPyramidMesh(core.NewVec3(0, 1, 0), 1.5, 2.0, math.Pi/4, blueBRDF)
		},
		func() (*geometry.TriangleMesh, error) {
			return createIcosahedronMesh(core.NewVec3(2, 0.8, 0), 0.8, goldBRDF)
		},
	}

	s := New()
	for _, build := range builders {
		mesh, err := build()
		if err != nil {
			return nil, nil, xerrors.Errorf("building triangle mesh scene: %w", err)
		}
		s.AddMesh(mesh)
	}

	// Warm key light and a cool fill
	s.AddLight(lights.NewPointLight(core.NewVec3(2, 6, 3), core.NewVec3(1.0, 0.92, 0.8), 120))
	s.AddLight(lights.NewDirectionalLight(core.NewVec3(3, -4, -2), core.NewVec3(0.2, 0.25, 0.3)))
	s.Build()

	return s, camera, nil
}

// rotateY rotates each vertex about the vertical axis through center
func rotateY(vertices []core.Vec3, center core.Vec3, angle float64) []core.Vec3 {
	if angle == 0 {
		return vertices
	}
	sin, cos := math.Sincos(angle)
	rotated := make([]core.Vec3, len(vertices))
	for i, v := range vertices {
		d := v.Subtract(center)
		rotated[i] = center.Add(core.NewVec3(cos*d.X+sin*d.Z, d.Y, -sin*d.X+cos*d.Z))
	}
	return rotated
}

// createBoxMesh creates a flat-shaded box rotated by angle around Y
func createBoxMesh(center, size core.Vec3, angle float64, brdf *material.PhongBRDF) (*geometry.TriangleMesh, error) {
	h := size.Multiply(0.5)
	vertices := []core.Vec3{
		center.Add(core.NewVec3(-h.X, -h.Y, -h.Z)), // 0: left-bottom-back
		center.Add(core.NewVec3(+h.X, -h.Y, -h.Z)), // 1: right-bottom-back
		center.Add(core.NewVec3(+h.X, +h.Y, -h.Z)), // 2: right-top-back
		center.Add(core.NewVec3(-h.X, +h.Y, -h.Z)), // 3: left-top-back
		center.Add(core.NewVec3(-h.X, -h.Y, +h.Z)), // 4: left-bottom-front
		center.Add(core.NewVec3(+h.X, -h.Y, +h.Z)), // 5: right-bottom-front
		center.Add(core.NewVec3(+h.X, +h.Y, +h.Z)), // 6: right-top-front
		center.Add(core.NewVec3(-h.X, +h.Y, +h.Z)), // 7: left-top-front
	}

	// Two triangles per face
	faces := []int{
		0, 1, 2, 0, 2, 3, // back (Z-)
		4, 6, 5, 4, 7, 6, // front (Z+)
		0, 3, 7, 0, 7, 4, // left (X-)
		1, 5, 6, 1, 6, 2, // right (X+)
		0, 4, 5, 0, 5, 1, // bottom (Y-)
		3, 2, 6, 3, 6, 7, // top (Y+)
	}

	return geometry.NewTriangleMesh("box", rotateY(vertices, center, angle), nil, faces, brdf)
}

// createPyramidMesh creates a square-based pyramid rotated by angle around Y
func createPyramidMesh(center core.Vec3, baseSize, height, angle float64, brdf *material.PhongBRDF) (*geometry.TriangleMesh, error) {
	halfBase := baseSize * 0.5
	halfHeight := height * 0.5

	vertices := []core.Vec3{
		center.Add(core.NewVec3(-halfBase, -halfHeight, -halfBase)), // 0: left-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, -halfBase)), // 1: right-back
		center.Add(core.NewVec3(+halfBase, -halfHeight, +halfBase)), // 2: right-front
		center.Add(core.NewVec3(-halfBase, -halfHeight, +halfBase)), // 3: left-front
		center.Add(core.NewVec3(0, +halfHeight, 0)),                 // 4: apex
	}

	faces := []int{
		0, 2, 1, 0, 3, 2, // base
		0, 1, 4, // back
		1, 2, 4, // right
		2, 3, 4, // front
		3, 0, 4, // left
	}

	return geometry.NewTriangleMesh("pyramid", rotateY(vertices, center, angle), nil, faces, brdf)
}

// createIcosahedronMesh creates an icosahedron whose vertex normals point
// away from its centre, so it shades like a sphere
func createIcosahedronMesh(center core.Vec3, radius float64, brdf *material.PhongBRDF) (*geometry.TriangleMesh, error) {
	phi := (1.0 + math.Sqrt(5)) / 2.0

	// Unscaled vertices lie at distance sqrt(1+phi^2) from the origin
	scale := radius / math.Sqrt(1+phi*phi)

	directions := []core.Vec3{
		core.NewVec3(-1, phi, 0), core.NewVec3(1, phi, 0), core.NewVec3(-1, -phi, 0), core.NewVec3(1, -phi, 0),
		core.NewVec3(0, -1, phi), core.NewVec3(0, 1, phi), core.NewVec3(0, -1, -phi), core.NewVec3(0, 1, -phi),
		core.NewVec3(phi, 0, -1), core.NewVec3(phi, 0, 1), core.NewVec3(-phi, 0, -1), core.NewVec3(-phi, 0, 1),
	}

	vertices := make([]core.Vec3, len(directions))
	normals := make([]core.Vec3, len(directions))
	for i, d := range directions {
		vertices[i] = center.Add(d.Multiply(scale))
		normals[i] = d
	}

	faces := []int{
		// 5 faces around point 0
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		// 5 adjacent faces
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		// 5 faces around point 3
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		// 5 adjacent faces
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return geometry.NewTriangleMesh("icosahedron", vertices, normals, faces, brdf)
}
