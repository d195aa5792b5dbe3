package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DirectLightingIntegrator shades the first hit with the unoccluded light
// of every source in the scene. It never recurses.
type DirectLightingIntegrator struct {
	background
}

// NewDirectLightingIntegrator creates a new direct lighting integrator
func NewDirectLightingIntegrator() *DirectLightingIntegrator {
	return &DirectLightingIntegrator{}
}

func (dl *DirectLightingIntegrator) Type() Type {
	return TypeDirectLighting
}

// Li implements Integrator
func (dl *DirectLightingIntegrator) Li(scene Scene, ray core.Ray, depth, maxDepth int) core.Vec3 {
	if depth >= maxDepth {
		return dl.BackgroundColor()
	}

	hit, ok := shadeableHit(scene, ray)
	if !ok {
		return dl.BackgroundColor()
	}

	return directLighting(scene, ray, hit)
}
