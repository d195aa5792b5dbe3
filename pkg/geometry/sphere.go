package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
	BRDF   *material.PhongBRDF
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, brdf *material.PhongBRDF) *Sphere {
	return &Sphere{
		Center: center,
		Radius: radius,
		BRDF:   brdf,
	}
}

// Hit tests if a ray intersects with the sphere
func (s *Sphere) Hit(ray core.Ray) (HitRecord, bool) {
	if s.Radius <= 0 {
		return HitRecord{}, false
	}

	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return HitRecord{}, false
	}

	sqrtD := math.Sqrt(discriminant)

	// Try the closer root first
	root := (-halfB - sqrtD) / a
	if !ray.Contains(root) {
		root = (-halfB + sqrtD) / a
		if !ray.Contains(root) {
			return HitRecord{}, false
		}
	}

	hit := HitRecord{
		T:     root,
		Point: ray.At(root),
		BRDF:  s.BRDF,
	}
	outwardNormal := hit.Point.Subtract(s.Center).Normalize()
	hit.SetFaceNormal(ray, outwardNormal, outwardNormal)

	return hit, true
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(
		s.Center.Subtract(radius),
		s.Center.Add(radius),
	)
}

// Centre returns the sphere center
func (s *Sphere) Centre() core.Vec3 {
	return s.Center
}
