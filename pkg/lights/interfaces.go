package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
)

// Light interface for sources that can be sampled for direct lighting
type Light interface {
	Type() LightType

	// Sample returns the light arriving at point.
	// Direction points FROM the shading point TO the light.
	Sample(point core.Vec3) LightSample
}

// LightSample contains the light arriving at a shading point
type LightSample struct {
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance to light, +Inf for directional lights
	Radiance  core.Vec3 // Incident radiance at the shading point
}

// ShadowRay returns the ray used to test visibility between a surface point
// with normal n and the sampled light. The origin is offset along n and the
// interval stops short of the light.
func (ls LightSample) ShadowRay(point, normal core.Vec3) core.Ray {
	origin := point.Add(normal.Multiply(core.ShadowEpsilon))
	return core.NewRayWithInterval(origin, ls.Direction, core.ShadowEpsilon, ls.Distance-core.ShadowEpsilon)
}
