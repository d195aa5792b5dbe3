package core

import "math"

const (
	// RayEpsilon is the default lower bound of a ray's parametric interval
	RayEpsilon = 1e-6

	// ShadowEpsilon offsets secondary ray origins off the surface they leave
	ShadowEpsilon = 1e-4
)

// Ray represents a ray with an origin, a unit direction and a valid
// parametric interval [TMin, TMax]. Rays are values and are never modified
// in place; use WithTMax to derive a narrower ray.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

// NewRay creates a ray with a normalized direction and the interval [RayEpsilon, +Inf)
func NewRay(origin, direction Vec3) Ray {
	return NewRayWithInterval(origin, direction, RayEpsilon, math.Inf(1))
}

// NewRayWithInterval creates a ray with a normalized direction and an explicit interval
func NewRayWithInterval(origin, direction Vec3, tMin, tMax float64) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction.Normalize(),
		TMin:      tMin,
		TMax:      tMax,
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// Contains reports whether t lies inside the ray's valid interval
func (r Ray) Contains(t float64) bool {
	return t >= r.TMin && t <= r.TMax
}

// WithTMax returns a copy of the ray with its upper bound replaced
func (r Ray) WithTMax(tMax float64) Ray {
	r.TMax = tMax
	return r
}
