package integrator

import (
	"math"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// MockScene implements Scene with a programmable hit function and counts queries
type MockScene struct {
	hitFn        func(ray core.Ray) (geometry.HitRecord, bool)
	occluded     bool
	lights       []lights.Light
	nearestCalls int
}

func (m *MockScene) NearestHit(ray core.Ray) (geometry.HitRecord, bool) {
	m.nearestCalls++
	if m.hitFn == nil {
		return geometry.HitRecord{}, false
	}
	return m.hitFn(ray)
}
func (m *MockScene) Occluded(ray core.Ray) bool { return m.occluded }
func (m *MockScene) Lights() []lights.Light     { return m.lights }

// ShapeScene implements Scene as a linear scan over real shapes
type ShapeScene struct {
	shapes []geometry.Shape
	lights []lights.Light
}

func (s *ShapeScene) NearestHit(ray core.Ray) (geometry.HitRecord, bool) {
	var closest geometry.HitRecord
	found := false
	for _, shape := range s.shapes {
		if hit, ok := shape.Hit(ray); ok {
			found = true
			closest = hit
			ray = ray.WithTMax(hit.T)
		}
	}
	return closest, found
}

func (s *ShapeScene) Occluded(ray core.Ray) bool {
	for _, shape := range s.shapes {
		if _, ok := shape.Hit(ray); ok {
			return true
		}
	}
	return false
}

func (s *ShapeScene) Lights() []lights.Light { return s.lights }

// mirrorHitFn returns a hit facing straight back at every ray, so a mirror
// BRDF would bounce forever without a depth limit
func mirrorHitFn(brdf *material.PhongBRDF) func(ray core.Ray) (geometry.HitRecord, bool) {
	return func(ray core.Ray) (geometry.HitRecord, bool) {
		n := ray.Direction.Negate()
		return geometry.HitRecord{
			T:          1,
			Point:      ray.At(1),
			Normal:     n,
			FaceNormal: n,
			FrontFace:  true,
			BRDF:       brdf,
		}, true
	}
}

func allIntegrators(t *testing.T) []Integrator {
	t.Helper()
	var result []Integrator
	for _, typ := range []Type{TypeRayCast, TypeDirectLighting, TypeWhitted} {
		integrator, err := New(typ)
		if err != nil {
			t.Fatalf("New(%v): %v", typ, err)
		}
		if integrator.Type() != typ {
			t.Fatalf("New(%v) built a %v", typ, integrator.Type())
		}
		result = append(result, integrator)
	}
	return result
}

func newFloor(t *testing.T, brdf *material.PhongBRDF) *geometry.TriangleMesh {
	t.Helper()
	// The shared diagonal runs from (-5,-6) to (7,4) in XZ, clear of the points the tests aim at
	floor, err := geometry.NewQuadMesh("floor", core.NewVec3(-5, 0, -6), core.NewVec3(0, 0, 10), core.NewVec3(12, 0, 0), brdf)
	if err != nil {
		t.Fatalf("NewQuadMesh: %v", err)
	}
	return floor
}

func meshShapes(mesh *geometry.TriangleMesh) []geometry.Shape {
	var shapes []geometry.Shape
	for _, tri := range mesh.Triangles() {
		shapes = append(shapes, tri)
	}
	return shapes
}

func TestIntegrators_MissReturnsBackground(t *testing.T) {
	background := core.NewVec3(0.2, 0.3, 0.8)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	for _, integrator := range allIntegrators(t) {
		t.Run(integrator.Type().String(), func(t *testing.T) {
			integrator.SetBackgroundColor(background)
			got := integrator.Li(&MockScene{}, ray, 0, 5)
			if diff := cmp.Diff(got, background); diff != "" {
				t.Errorf("Li on empty scene (-got +want)\n%s", diff)
			}
		})
	}
}

func TestIntegrators_DefaultBackgroundIsBlack(t *testing.T) {
	for _, integrator := range allIntegrators(t) {
		if !integrator.BackgroundColor().IsZero() {
			t.Errorf("%v: expected black default background, got %v", integrator.Type(), integrator.BackgroundColor())
		}
	}
}

func TestIntegrators_MaxDepthStopsBeforeTracing(t *testing.T) {
	background := core.NewVec3(0.1, 0.2, 0.3)
	mirror := material.NewPhongBRDF(core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1), 10)
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	for _, integrator := range allIntegrators(t) {
		t.Run(integrator.Type().String(), func(t *testing.T) {
			integrator.SetBackgroundColor(background)
			for _, depth := range []int{3, 4} {
				scene := &MockScene{hitFn: mirrorHitFn(mirror)}
				got := integrator.Li(scene, ray, depth, 3)

				if diff := cmp.Diff(got, background); diff != "" {
					t.Errorf("depth %d: Li (-got +want)\n%s", depth, diff)
				}
				if scene.nearestCalls != 0 {
					t.Errorf("depth %d: expected no scene queries, got %d", depth, scene.nearestCalls)
				}
			}
		})
	}
}

func TestWhitted_RecursionIsBoundedByMaxDepth(t *testing.T) {
	mirror := material.NewPhongBRDF(core.NewVec3(0, 0, 0), core.NewVec3(0.5, 0.5, 0.5), 10)
	integrator := NewWhittedIntegrator()
	integrator.SetBackgroundColor(core.NewVec3(1, 1, 1))
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	for _, maxDepth := range []int{1, 2, 5, 10} {
		scene := &MockScene{hitFn: mirrorHitFn(mirror)}
		got := integrator.Li(scene, ray, 0, maxDepth)

		if scene.nearestCalls != maxDepth {
			t.Errorf("maxDepth %d: expected %d scene queries, got %d", maxDepth, maxDepth, scene.nearestCalls)
		}

		// Each bounce halves the background seen at the end of the chain
		want := math.Pow(0.5, float64(maxDepth))
		if diff := cmp.Diff(got, core.NewVec3(want, want, want), approx); diff != "" {
			t.Errorf("maxDepth %d: Li (-got +want)\n%s", maxDepth, diff)
		}
	}
}

func TestWhitted_NonReflectiveSurfaceDoesNotRecurse(t *testing.T) {
	diffuse := material.NewDiffuseBRDF(core.NewVec3(0.5, 0.5, 0.5))
	scene := &MockScene{hitFn: mirrorHitFn(diffuse)}
	integrator := NewWhittedIntegrator()
	integrator.SetBackgroundColor(core.NewVec3(1, 1, 1))

	got := integrator.Li(scene, core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0, 10)
	if scene.nearestCalls != 1 {
		t.Errorf("Expected a single scene query, got %d", scene.nearestCalls)
	}
	if !got.IsZero() {
		t.Errorf("Expected no light without lights or reflection, got %v", got)
	}
}

func TestWhitted_MirrorReflectsScene(t *testing.T) {
	// A mirror floor under a blue sky: looking down at the mirror shows the sky
	sky := core.NewVec3(0.2, 0.4, 0.9)
	mirror := material.NewPhongBRDF(core.NewVec3(0, 0, 0), core.NewVec3(0.8, 0.7, 0.6), 100)
	scene := &ShapeScene{shapes: meshShapes(newFloor(t, mirror))}

	integrator := NewWhittedIntegrator()
	integrator.SetBackgroundColor(sky)

	ray := core.NewRay(core.NewVec3(0, 2, 2), core.NewVec3(0, -1, -1))
	got := integrator.Li(scene, ray, 0, 5)

	want := core.NewVec3(0.8, 0.7, 0.6).MultiplyVec(sky)
	if diff := cmp.Diff(got, want, approx); diff != "" {
		t.Errorf("Mirror reflection (-got +want)\n%s", diff)
	}
}

func TestRayCast_ShadesByFacingRatio(t *testing.T) {
	kd := core.NewVec3(0.8, 0.4, 0.2)
	scene := &ShapeScene{shapes: meshShapes(newFloor(t, material.NewDiffuseBRDF(kd)))}
	integrator := NewRayCastIntegrator()

	straight := integrator.Li(scene, core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0)), 0, 1)
	if diff := cmp.Diff(straight, kd, approx); diff != "" {
		t.Errorf("Head-on ray cast (-got +want)\n%s", diff)
	}

	oblique := integrator.Li(scene, core.NewRay(core.NewVec3(0, 5, 5), core.NewVec3(0, -1, -1)), 0, 1)
	if diff := cmp.Diff(oblique, kd.Multiply(1/math.Sqrt2), approx); diff != "" {
		t.Errorf("Oblique ray cast (-got +want)\n%s", diff)
	}
}

func TestDirectLighting_PointLight(t *testing.T) {
	kd := core.NewVec3(0.8, 0.8, 0.8)
	scene := &ShapeScene{
		shapes: meshShapes(newFloor(t, material.NewDiffuseBRDF(kd))),
		lights: []lights.Light{lights.NewPointLight(core.NewVec3(0, 2, 0), core.NewVec3(1, 1, 1), 4)},
	}
	integrator := NewDirectLightingIntegrator()

	tests := []struct {
		name string
		ray  core.Ray
		want float64
	}{
		{
			name: "directly under the light",
			ray:  core.NewRay(core.NewVec3(0, 5, 0), core.NewVec3(0, -1, 0)),
			want: 0.8 / math.Pi,
		},
		{
			name: "off to the side",
			ray:  core.NewRay(core.NewVec3(1, 5, 0), core.NewVec3(0, -1, 0)),
			// radiance 4/5 at distance sqrt(5), cosine 2/sqrt(5)
			want: 0.8 / math.Pi * 0.8 * 2 / math.Sqrt(5),
		},
		{
			name: "underside of the floor",
			ray:  core.NewRay(core.NewVec3(0, -5, 0), core.NewVec3(0, 1, 0)),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := integrator.Li(scene, tt.ray, 0, 1)
			if diff := cmp.Diff(got, core.NewVec3(tt.want, tt.want, tt.want), approx); diff != "" {
				t.Errorf("Li (-got +want)\n%s", diff)
			}
		})
	}
}

func TestDirectLighting_ShadowsAndMultipleLights(t *testing.T) {
	brdf := material.NewDiffuseBRDF(core.NewVec3(1, 1, 1))
	shapes := meshShapes(newFloor(t, brdf))
	blocker := geometry.NewSphere(core.NewVec3(0, 1, 0), 0.2, brdf)

	above := lights.NewPointLight(core.NewVec3(0, 2, 0), core.NewVec3(1, 1, 1), 4)
	sun := lights.NewDirectionalLight(core.NewVec3(0, -1, 0), core.NewVec3(0.5, 0.5, 0.5))

	// Look at the origin from the side so the camera ray misses the blocker
	ray := core.NewRay(core.NewVec3(3, 3, 0), core.NewVec3(-1, -1, 0))
	integrator := NewDirectLightingIntegrator()

	unblocked := integrator.Li(&ShapeScene{shapes: shapes, lights: []lights.Light{above, sun}}, ray, 0, 1)
	wantBoth := (1 + 0.5) / math.Pi
	if diff := cmp.Diff(unblocked, core.NewVec3(wantBoth, wantBoth, wantBoth), approx); diff != "" {
		t.Errorf("Two lights (-got +want)\n%s", diff)
	}

	blocked := integrator.Li(&ShapeScene{shapes: append(shapes, blocker), lights: []lights.Light{above, sun}}, ray, 0, 1)
	if !blocked.IsZero() {
		t.Errorf("Both lights are straight above the blocker, expected black, got %v", blocked)
	}
}

func TestDirectLighting_OccludedMock(t *testing.T) {
	brdf := material.NewDiffuseBRDF(core.NewVec3(1, 1, 1))
	scene := &MockScene{
		hitFn:    mirrorHitFn(brdf),
		occluded: true,
		lights:   []lights.Light{lights.NewPointLight(core.NewVec3(0, 0, 5), core.NewVec3(1, 1, 1), 10)},
	}

	got := NewDirectLightingIntegrator().Li(scene, core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), 0, 1)
	if !got.IsZero() {
		t.Errorf("Expected occluded light to contribute nothing, got %v", got)
	}
}

func TestIntegrators_DegenerateHitIsTreatedAsMiss(t *testing.T) {
	background := core.NewVec3(0.3, 0.3, 0.3)
	brdf := material.NewPhongBRDF(core.NewVec3(1, 1, 1), core.NewVec3(1, 1, 1), 1)

	degenerate := []struct {
		name string
		hit  geometry.HitRecord
	}{
		{"zero normal", geometry.HitRecord{T: 1, BRDF: brdf}},
		{"NaN normal", geometry.HitRecord{T: 1, Normal: core.NewVec3(math.NaN(), 0, 1), BRDF: brdf}},
		{"missing BRDF", geometry.HitRecord{T: 1, Normal: core.NewVec3(0, 0, 1)}},
	}

	for _, d := range degenerate {
		for _, integrator := range allIntegrators(t) {
			t.Run(d.name+"/"+integrator.Type().String(), func(t *testing.T) {
				hit := d.hit
				scene := &MockScene{
					hitFn:  func(core.Ray) (geometry.HitRecord, bool) { return hit, true },
					lights: []lights.Light{lights.NewPointLight(core.NewVec3(0, 0, 5), core.NewVec3(1, 1, 1), 10)},
				}
				integrator.SetBackgroundColor(background)

				got := integrator.Li(scene, core.NewRay(core.NewVec3(0, 0, 5), core.NewVec3(0, 0, -1)), 0, 3)
				if diff := cmp.Diff(got, background); diff != "" {
					t.Errorf("Li (-got +want)\n%s", diff)
				}
			})
		}
	}
}

func TestNewAndParseType(t *testing.T) {
	for _, typ := range []Type{TypeRayCast, TypeDirectLighting, TypeWhitted} {
		parsed, err := ParseType(typ.String())
		if err != nil {
			t.Fatalf("ParseType(%q): %v", typ.String(), err)
		}
		if parsed != typ {
			t.Errorf("ParseType(%q) = %v, want %v", typ.String(), parsed, typ)
		}
	}

	if _, err := ParseType("pathtracer"); err == nil {
		t.Error("Expected error for unknown integrator name")
	}
	if _, err := New(Type(42)); err == nil {
		t.Error("Expected error for unknown integrator type")
	}
	if Type(42).String() != "unknown" {
		t.Errorf("Unexpected name for unknown type: %q", Type(42).String())
	}
}
