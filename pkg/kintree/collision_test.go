package kintree

import (
	"math"
	"testing"
)

func TestShapeMeasures(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"box volume", BoxVolume(2, 3, 4), 24},
		{"box surface", BoxSurface(2, 3, 4), 52},
		{"sphere volume", SphereVolume(1), (4.0 / 3.0) * math.Pi},
		{"sphere surface", SphereSurface(1), 4 * math.Pi},
		{"cylinder volume", CylinderVolume(1, 2), 2 * math.Pi},
		{"cylinder surface", CylinderSurface(1, 2), 6 * math.Pi},
	}
	for _, tt := range tests {
		if math.Abs(tt.got-tt.want) > 1e-12 {
			t.Errorf("%s = %g, want %g", tt.name, tt.got, tt.want)
		}
	}
}

func TestCollisionRelevant(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		name string
		link *Link
		want bool
	}{
		{"nil link", nil, false},
		{"no collision geometry", &Link{Name: "bare"}, false},
		{"large box", &Link{Name: "l", Collision: Box{Size: Vec3{X: 1, Y: 1, Z: 1}}}, true},
		// 1mm cube: volume 1e-9 m³, surface 6e-6 m². Both under threshold.
		{"tiny box", &Link{Name: "l", Collision: Box{Size: Vec3{X: 0.001, Y: 0.001, Z: 0.001}}}, false},
		// A thin sheet clears the surface threshold even though its
		// volume does not.
		{"thin sheet", &Link{Name: "l", Collision: Box{Size: Vec3{X: 0.1, Y: 0.1, Z: 1e-5}}}, true},
		{"large sphere", &Link{Name: "l", Collision: Sphere{Radius: 0.1}}, true},
		// r=5mm sphere: volume ~5.2e-7 m³ misses the volume threshold,
		// surface ~3.1e-4 m² would clear the surface one. Spheres are
		// judged on volume alone.
		{"small sphere ignores surface", &Link{Name: "l", Collision: Sphere{Radius: 0.005}}, false},
		{"large cylinder", &Link{Name: "l", Collision: Cylinder{Radius: 0.05, Length: 0.4}}, true},
		{"tiny cylinder", &Link{Name: "l", Collision: Cylinder{Radius: 0.001, Length: 0.001}}, false},
		{"mesh always relevant", &Link{Name: "l", Collision: Mesh{Resource: "package://x/hand.stl"}}, true},
	}

	for _, tt := range tests {
		if got := c.CollisionRelevant(tt.link); got != tt.want {
			t.Errorf("%s: CollisionRelevant = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCustomThresholds(t *testing.T) {
	strict := Classifier{VolumeThreshold: 10, SurfaceThreshold: 100}
	l := &Link{Name: "l", Collision: Box{Size: Vec3{X: 1, Y: 1, Z: 1}}}
	if strict.CollisionRelevant(l) {
		t.Error("unit cube must not clear a 10 m³ / 100 m² classifier")
	}
}
