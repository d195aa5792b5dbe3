package integrator

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RayCastIntegrator shows visible surfaces without lighting: the diffuse
// color scaled by how directly the surface faces the camera
type RayCastIntegrator struct {
	background
}

// NewRayCastIntegrator creates a new ray cast integrator
func NewRayCastIntegrator() *RayCastIntegrator {
	return &RayCastIntegrator{}
}

func (rc *RayCastIntegrator) Type() Type {
	return TypeRayCast
}

// Li implements Integrator
func (rc *RayCastIntegrator) Li(scene Scene, ray core.Ray, depth, maxDepth int) core.Vec3 {
	if depth >= maxDepth {
		return rc.BackgroundColor()
	}

	hit, ok := shadeableHit(scene, ray)
	if !ok {
		return rc.BackgroundColor()
	}

	facing := math.Max(0, hit.Normal.Dot(ray.Direction.Negate()))
	return hit.BRDF.Kd().Multiply(facing)
}
