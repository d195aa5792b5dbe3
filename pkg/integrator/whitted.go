package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// WhittedIntegrator adds perfect mirror reflection on top of direct lighting.
// Reflective surfaces spawn one reflected ray per hit, weighted by the
// surface's reflective coefficient, until maxDepth is reached.
type WhittedIntegrator struct {
	background
}

// NewWhittedIntegrator creates a new Whitted integrator
func NewWhittedIntegrator() *WhittedIntegrator {
	return &WhittedIntegrator{}
}

func (w *WhittedIntegrator) Type() Type {
	return TypeWhitted
}

// Li implements Integrator
func (w *WhittedIntegrator) Li(scene Scene, ray core.Ray, depth, maxDepth int) core.Vec3 {
	if depth >= maxDepth {
		return w.BackgroundColor()
	}

	hit, ok := shadeableHit(scene, ray)
	if !ok {
		return w.BackgroundColor()
	}

	radiance := directLighting(scene, ray, hit)

	if hit.BRDF.IsReflective() {
		radiance = radiance.Add(w.reflection(scene, ray, hit, depth, maxDepth))
	}

	return radiance
}

// reflection traces the mirror ray and weights it by the reflective coefficient
func (w *WhittedIntegrator) reflection(scene Scene, ray core.Ray, hit geometry.HitRecord, depth, maxDepth int) core.Vec3 {
	direction := ray.Direction.Reflect(hit.Normal)
	if direction.LengthSquared() == 0 || direction.HasNaN() {
		return core.Vec3{}
	}

	origin := hit.Point.Add(hit.FaceNormal.Multiply(core.ShadowEpsilon))
	reflected := core.NewRay(origin, direction)

	return hit.BRDF.Reflec().MultiplyVec(w.Li(scene, reflected, depth+1, maxDepth))
}
