package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"golang.org/x/xerrors"
)

// TriangleMesh owns the vertex and normal buffers shared by its triangles
type TriangleMesh struct {
	name      string
	vertices  []core.Vec3
	normals   []core.Vec3 // One per vertex, or empty for flat shading
	brdf      *material.PhongBRDF
	triangles []*MeshTriangle
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices
// vertices: array of 3D points
// normals: per-vertex normals, either empty or one per vertex
// faces: array of triangle indices (each group of 3 indices forms a triangle)
// brdf: reflectance model shared by all triangles
func NewTriangleMesh(name string, vertices, normals []core.Vec3, faces []int, brdf *material.PhongBRDF) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, xerrors.Errorf("mesh %q: face index count %d is not a multiple of 3", name, len(faces))
	}
	if len(normals) != 0 && len(normals) != len(vertices) {
		return nil, xerrors.Errorf("mesh %q: %d normals for %d vertices", name, len(normals), len(vertices))
	}
	if brdf == nil {
		return nil, xerrors.Errorf("mesh %q: missing BRDF", name)
	}

	m := &TriangleMesh{
		name:     name,
		vertices: vertices,
		brdf:     brdf,
	}
	for _, n := range normals {
		m.normals = append(m.normals, n.Normalize())
	}

	numTriangles := len(faces) / 3
	m.triangles = make([]*MeshTriangle, 0, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		for _, idx := range []int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, xerrors.Errorf("mesh %q: triangle %d references vertex %d, have %d vertices", name, i, idx, len(vertices))
			}
		}
		m.triangles = append(m.triangles, newMeshTriangle(i0, i1, i2, m))
	}

	return m, nil
}

// NewQuadMesh creates a two-triangle mesh for the parallelogram spanned by
// u and v from corner. The face normal is u x v.
func NewQuadMesh(name string, corner, u, v core.Vec3, brdf *material.PhongBRDF) (*TriangleMesh, error) {
	vertices := []core.Vec3{
		corner,
		corner.Add(u),
		corner.Add(u).Add(v),
		corner.Add(v),
	}
	faces := []int{0, 1, 2, 0, 2, 3}
	return NewTriangleMesh(name, vertices, nil, faces, brdf)
}

// Name returns the mesh name used in diagnostics
func (m *TriangleMesh) Name() string {
	return m.name
}

// VertexPosition returns the position of a vertex
func (m *TriangleMesh) VertexPosition(index int) core.Vec3 {
	return m.vertices[index]
}

// VertexNormal returns the unit normal of a vertex
func (m *TriangleMesh) VertexNormal(index int) core.Vec3 {
	return m.normals[index]
}

// HasVertexNormals reports whether the mesh carries per-vertex normals
func (m *TriangleMesh) HasVertexNormals() bool {
	return len(m.normals) > 0
}

// BRDF returns the reflectance model shared by the mesh's triangles
func (m *TriangleMesh) BRDF() *material.PhongBRDF {
	return m.brdf
}

// Triangles returns the mesh primitives
func (m *TriangleMesh) Triangles() []*MeshTriangle {
	return m.triangles
}

// TriangleCount returns the number of triangles in this mesh
func (m *TriangleMesh) TriangleCount() int {
	return len(m.triangles)
}
