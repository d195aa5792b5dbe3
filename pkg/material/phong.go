package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// CosThetaEpsilon is the floor applied to the incident cosine in the specular lobe.
// At grazing incidence the specular term would otherwise divide by zero.
const CosThetaEpsilon = 1e-6

// reflectiveThreshold is the smallest reflec channel treated as a mirror
const reflectiveThreshold = 1e-3

// PhongBRDF is a Lambertian diffuse lobe plus a Blinn-Phong specular lobe.
// It is immutable and meant to be shared by every primitive using the material.
type PhongBRDF struct {
	kd        core.Vec3 // Diffuse coefficient, each channel in [0,1]
	reflec    core.Vec3 // Specular/reflective coefficient
	shininess float64   // Specular exponent
}

// NewPhongBRDF creates a new Phong BRDF.
// Coefficients are clamped to [0,1] and a negative shininess to 0.
func NewPhongBRDF(kd, reflec core.Vec3, shininess float64) *PhongBRDF {
	return &PhongBRDF{
		kd:        kd.Clamp(0, 1),
		reflec:    reflec.Clamp(0, 1),
		shininess: math.Max(0, shininess),
	}
}

// NewDiffuseBRDF creates a purely Lambertian BRDF
func NewDiffuseBRDF(kd core.Vec3) *PhongBRDF {
	return NewPhongBRDF(kd, core.Vec3{}, 0)
}

// Evaluate returns the fraction of light arriving along lightDir that leaves
// along viewDir. All directions point away from the surface and are unit length.
// The caller multiplies by incident radiance and the incident cosine.
func (p *PhongBRDF) Evaluate(normal, viewDir, lightDir core.Vec3) core.Vec3 {
	diffuse := p.kd.Multiply(1 / math.Pi)
	if p.reflec.IsZero() {
		return diffuse
	}

	cosThetaI := math.Max(CosThetaEpsilon, normal.Dot(lightDir))

	// Opposite view and light directions leave no half-vector
	h := viewDir.Add(lightDir).Normalize()
	cosAlpha := math.Max(0, normal.Dot(h))

	specular := p.reflec.Multiply(math.Pow(cosAlpha, p.shininess) / cosThetaI)
	return diffuse.Add(specular)
}

// Kd returns the diffuse coefficient
func (p *PhongBRDF) Kd() core.Vec3 {
	return p.kd
}

// Reflec returns the specular/reflective coefficient
func (p *PhongBRDF) Reflec() core.Vec3 {
	return p.reflec
}

// Shininess returns the specular exponent
func (p *PhongBRDF) Shininess() float64 {
	return p.shininess
}

// IsReflective reports whether the surface reflects enough to spawn mirror rays
func (p *PhongBRDF) IsReflective() bool {
	return p.reflec.MaxComponent() > reflectiveThreshold
}
