package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T          float64             // Parameter t along the ray
	U, V       float64             // Barycentric coordinates on triangles, zero elsewhere
	Point      core.Vec3           // Point of intersection
	Normal     core.Vec3           // Shading normal, facing against the incoming ray
	FaceNormal core.Vec3           // Geometric normal, facing against the incoming ray
	FrontFace  bool                // Whether ray hit the front face
	BRDF       *material.PhongBRDF // Reflectance model of the hit surface
}

// SetFaceNormal orients the geometric and shading normals against the ray
// and records which side was hit
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal, shadingNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.FaceNormal = outwardNormal
	} else {
		h.FaceNormal = outwardNormal.Negate()
	}
	if shadingNormal.Dot(h.FaceNormal) < 0 {
		shadingNormal = shadingNormal.Negate()
	}
	h.Normal = shadingNormal
}

// Degenerate reports whether the hit cannot be shaded: its shading normal is
// not unit length (zero-area or cancelled interpolation) or it has no BRDF
func (h *HitRecord) Degenerate() bool {
	if h.BRDF == nil || h.Normal.HasNaN() {
		return true
	}
	return math.Abs(h.Normal.LengthSquared()-1) > 1e-6
}

// Shape interface for objects that can be hit by rays.
// Hit only reports intersections inside the ray's [TMin, TMax] interval.
type Shape interface {
	Hit(ray core.Ray) (HitRecord, bool)
	BoundingBox() core.AABB
	Centre() core.Vec3
}
