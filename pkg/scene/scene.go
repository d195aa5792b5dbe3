package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Scene holds the primitives and lights to render. Build it once with the
// Add* methods and Build; after that it is read-only and safe for concurrent
// queries.
type Scene struct {
	shapes []geometry.Shape
	meshes []*geometry.TriangleMesh
	lights []lights.Light
	bvh    *geometry.BVH // Acceleration structure, nil until Build
}

// New creates an empty scene
func New() *Scene {
	return &Scene{}
}

// AddShape adds a single primitive
func (s *Scene) AddShape(shape geometry.Shape) {
	s.shapes = append(s.shapes, shape)
	s.bvh = nil
}

// AddMesh adds every triangle of a mesh
func (s *Scene) AddMesh(mesh *geometry.TriangleMesh) {
	s.meshes = append(s.meshes, mesh)
	for _, tri := range mesh.Triangles() {
		s.shapes = append(s.shapes, tri)
	}
	s.bvh = nil
}

// AddLight adds a light source
func (s *Scene) AddLight(light lights.Light) {
	s.lights = append(s.lights, light)
}

// Build creates the BVH over all primitives
func (s *Scene) Build() {
	s.bvh = geometry.NewBVH(s.shapes)
}

// NearestHit returns the closest intersection inside the ray's interval.
// Unbuilt scenes fall back to a linear scan.
func (s *Scene) NearestHit(ray core.Ray) (geometry.HitRecord, bool) {
	if s.bvh != nil {
		return s.bvh.Hit(ray)
	}

	var closest geometry.HitRecord
	hitAnything := false
	for _, shape := range s.shapes {
		if hit, ok := shape.Hit(ray); ok {
			hitAnything = true
			closest = hit
			ray = ray.WithTMax(hit.T)
		}
	}
	return closest, hitAnything
}

// Occluded reports whether any primitive intersects the ray
func (s *Scene) Occluded(ray core.Ray) bool {
	if s.bvh != nil {
		return s.bvh.AnyHit(ray)
	}

	for _, shape := range s.shapes {
		if _, ok := shape.Hit(ray); ok {
			return true
		}
	}
	return false
}

// Lights returns the scene's light sources
func (s *Scene) Lights() []lights.Light {
	return s.lights
}

// Meshes returns the meshes added with AddMesh
func (s *Scene) Meshes() []*geometry.TriangleMesh {
	return s.meshes
}

// PrimitiveCount returns the total number of primitives in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.shapes)
}
