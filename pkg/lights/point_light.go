package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight emits uniformly in all directions from a single position
type PointLight struct {
	position core.Vec3 // Light position in world space
	color    core.Vec3 // Light color
	power    float64   // Scalar intensity
}

// NewPointLight creates a new point light
func NewPointLight(position, color core.Vec3, power float64) *PointLight {
	return &PointLight{
		position: position,
		color:    color,
		power:    power,
	}
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Position returns the light position
func (pl *PointLight) Position() core.Vec3 {
	return pl.position
}

// Sample implements Light with inverse-square falloff
func (pl *PointLight) Sample(point core.Vec3) LightSample {
	toLight := pl.position.Subtract(point)
	distance := toLight.Length()

	// A shading point on the light itself receives nothing
	if distance == 0 {
		return LightSample{
			Direction: core.NewVec3(0, 1, 0),
			Distance:  0,
			Radiance:  core.Vec3{},
		}
	}

	return LightSample{
		Direction: toLight.Multiply(1 / distance),
		Distance:  distance,
		Radiance:  pl.color.Multiply(pl.power / (distance * distance)),
	}
}
