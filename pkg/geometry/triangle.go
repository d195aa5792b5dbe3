package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// determinantEpsilon rejects rays (nearly) parallel to the triangle plane
const determinantEpsilon = 1e-12

// MeshTriangle is a single triangle whose vertices live in a shared TriangleMesh
type MeshTriangle struct {
	indices [3]int        // Vertex indices into the mesh buffers
	mesh    *TriangleMesh // Owning mesh, not owned
	normal  core.Vec3     // Cached unit face normal, follows winding order
	bbox    core.AABB     // Cached bounding box
}

func newMeshTriangle(i0, i1, i2 int, mesh *TriangleMesh) *MeshTriangle {
	t := &MeshTriangle{
		indices: [3]int{i0, i1, i2},
		mesh:    mesh,
	}

	p0, p1, p2 := t.vertices()
	t.normal = p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()
	t.bbox = core.NewAABBFromPoints(p0, p1, p2)

	return t
}

// V0 returns the mesh index of the first vertex
func (t *MeshTriangle) V0() int { return t.indices[0] }

// V1 returns the mesh index of the second vertex
func (t *MeshTriangle) V1() int { return t.indices[1] }

// V2 returns the mesh index of the third vertex
func (t *MeshTriangle) V2() int { return t.indices[2] }

// Mesh returns the owning mesh
func (t *MeshTriangle) Mesh() *TriangleMesh { return t.mesh }

// Vertex returns the position of corner i (0, 1 or 2)
func (t *MeshTriangle) Vertex(i int) core.Vec3 {
	return t.mesh.VertexPosition(t.indices[i])
}

func (t *MeshTriangle) vertices() (core.Vec3, core.Vec3, core.Vec3) {
	return t.Vertex(0), t.Vertex(1), t.Vertex(2)
}

// Intersect solves the ray-triangle system with the Moller-Trumbore algorithm.
// It returns the ray parameter t and the barycentric coordinates (u, v) of
// the hit, weighting V1 and V2 respectively.
func (t *MeshTriangle) Intersect(ray core.Ray) (tHit, u, v float64, ok bool) {
	p0, p1, p2 := t.vertices()

	edge1 := p1.Subtract(p0)
	edge2 := p2.Subtract(p0)

	h := ray.Direction.Cross(edge2)
	det := edge1.Dot(h)

	// Parallel ray or zero-area triangle
	if det > -determinantEpsilon && det < determinantEpsilon {
		return 0, 0, 0, false
	}

	f := 1.0 / det
	s := ray.Origin.Subtract(p0)
	u = f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return 0, 0, 0, false
	}

	tHit = f * edge2.Dot(q)
	if !ray.Contains(tHit) {
		return 0, 0, 0, false
	}

	return tHit, u, v, true
}

// Hit implements Shape
func (t *MeshTriangle) Hit(ray core.Ray) (HitRecord, bool) {
	tHit, u, v, ok := t.Intersect(ray)
	if !ok {
		return HitRecord{}, false
	}

	hit := HitRecord{
		T:     tHit,
		U:     u,
		V:     v,
		Point: ray.At(tHit),
		BRDF:  t.mesh.BRDF(),
	}
	hit.SetFaceNormal(ray, t.normal, t.NormalInterpolation(u, v))

	return hit, true
}

// FaceNormal returns the unit geometric normal, following vertex winding
func (t *MeshTriangle) FaceNormal() core.Vec3 {
	return t.normal
}

// NormalInterpolation blends the vertex normals with weights (1-u-v, u, v).
// The blend is renormalized; a blend that cancels out yields the zero vector.
// Meshes without vertex normals return the face normal.
func (t *MeshTriangle) NormalInterpolation(u, v float64) core.Vec3 {
	if !t.mesh.HasVertexNormals() {
		return t.normal
	}

	n0 := t.mesh.VertexNormal(t.indices[0])
	n1 := t.mesh.VertexNormal(t.indices[1])
	n2 := t.mesh.VertexNormal(t.indices[2])

	w := 1 - u - v
	return n0.Multiply(w).Add(n1.Multiply(u)).Add(n2.Multiply(v)).Normalize()
}

// Centre returns the arithmetic mean of the three vertices
func (t *MeshTriangle) Centre() core.Vec3 {
	p0, p1, p2 := t.vertices()
	return p0.Add(p1).Add(p2).Multiply(1.0 / 3.0)
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *MeshTriangle) BoundingBox() core.AABB {
	return t.bbox
}
