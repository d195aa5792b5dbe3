package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"golang.org/x/xerrors"
)

// Scene is the read-only view of the world integrators trace against
type Scene interface {
	// NearestHit returns the closest intersection inside the ray's interval
	NearestHit(ray core.Ray) (geometry.HitRecord, bool)
	// Occluded reports whether anything intersects the ray
	Occluded(ray core.Ray) bool
	Lights() []lights.Light
}

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Li returns the radiance arriving along ray. depth is the current bounce
	// (0 for camera rays); at depth >= maxDepth the background is returned
	// without tracing.
	Li(scene Scene, ray core.Ray, depth, maxDepth int) core.Vec3

	Type() Type
	SetBackgroundColor(color core.Vec3)
	BackgroundColor() core.Vec3
}

// Type enumerates the available integrators
type Type int

const (
	TypeRayCast Type = iota
	TypeDirectLighting
	TypeWhitted
)

var typeNames = map[Type]string{
	TypeRayCast:        "raycast",
	TypeDirectLighting: "direct",
	TypeWhitted:        "whitted",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseType maps an integrator name back to its Type
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, xerrors.Errorf("unknown integrator %q", name)
}

// New constructs a fresh integrator of the given type with a black background
func New(t Type) (Integrator, error) {
	switch t {
	case TypeRayCast:
		return NewRayCastIntegrator(), nil
	case TypeDirectLighting:
		return NewDirectLightingIntegrator(), nil
	case TypeWhitted:
		return NewWhittedIntegrator(), nil
	default:
		return nil, xerrors.Errorf("unknown integrator type %d", int(t))
	}
}

// background holds the color returned for rays that escape the scene
type background struct {
	color core.Vec3
}

func (b *background) SetBackgroundColor(color core.Vec3) {
	b.color = color
}

func (b *background) BackgroundColor() core.Vec3 {
	return b.color
}

// shadeableHit returns the nearest hit if it can be shaded. Degenerate hits
// are reported as misses so they never feed NaNs into the estimate.
func shadeableHit(scene Scene, ray core.Ray) (geometry.HitRecord, bool) {
	hit, ok := scene.NearestHit(ray)
	if !ok || hit.Degenerate() {
		return geometry.HitRecord{}, false
	}
	return hit, true
}

// directLighting sums the unoccluded contribution of every light at hit,
// as seen from the direction opposite to ray
func directLighting(scene Scene, ray core.Ray, hit geometry.HitRecord) core.Vec3 {
	viewDir := ray.Direction.Negate()
	radiance := core.Vec3{}

	for _, light := range scene.Lights() {
		sample := light.Sample(hit.Point)

		cosTheta := hit.Normal.Dot(sample.Direction)
		if cosTheta <= 0 || sample.Radiance.IsZero() {
			continue
		}

		if scene.Occluded(sample.ShadowRay(hit.Point, hit.FaceNormal)) {
			continue
		}

		f := hit.BRDF.Evaluate(hit.Normal, viewDir, sample.Direction)
		radiance = radiance.Add(f.MultiplyVec(sample.Radiance).Multiply(cosTheta))
	}

	return radiance
}
