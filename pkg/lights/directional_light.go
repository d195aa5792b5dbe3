package lights

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DirectionalLight is a light infinitely far away, like the sun
type DirectionalLight struct {
	direction core.Vec3 // Unit direction the light travels in
	radiance  core.Vec3
}

// NewDirectionalLight creates a light travelling along direction
func NewDirectionalLight(direction, radiance core.Vec3) *DirectionalLight {
	return &DirectionalLight{
		direction: direction.Normalize(),
		radiance:  radiance,
	}
}

func (dl *DirectionalLight) Type() LightType {
	return LightTypeDirectional
}

// Sample implements Light; radiance does not fall off with distance
func (dl *DirectionalLight) Sample(point core.Vec3) LightSample {
	return LightSample{
		Direction: dl.direction.Negate(),
		Distance:  math.Inf(1),
		Radiance:  dl.radiance,
	}
}
