package kintree

import "math"

// Default classifier thresholds. Geometry smaller than both bounds is
// decorative as far as collision checking is concerned.
const (
	DefaultVolumeThreshold  = 1e-6 // m³
	DefaultSurfaceThreshold = 1e-4 // m²
)

// Classifier decides whether a link's collision geometry is large
// enough to matter for collision avoidance downstream.
type Classifier struct {
	VolumeThreshold  float64 `json:"volume_threshold"`
	SurfaceThreshold float64 `json:"surface_threshold"`
}

// DefaultClassifier returns a classifier with the default thresholds.
func DefaultClassifier() Classifier {
	return Classifier{
		VolumeThreshold:  DefaultVolumeThreshold,
		SurfaceThreshold: DefaultSurfaceThreshold,
	}
}

// BoxVolume returns the volume of a box.
func BoxVolume(length, width, height float64) float64 {
	return length * width * height
}

// BoxSurface returns the surface area of a box.
func BoxSurface(length, width, height float64) float64 {
	return 2 * (length*width + length*height + width*height)
}

// SphereVolume returns the volume of a sphere.
func SphereVolume(radius float64) float64 {
	return (4.0 / 3.0) * math.Pi * math.Pow(radius, 3)
}

// SphereSurface returns the surface area of a sphere.
func SphereSurface(radius float64) float64 {
	return 4 * math.Pi * radius * radius
}

// CylinderVolume returns the volume of a cylinder.
func CylinderVolume(radius, length float64) float64 {
	return math.Pi * radius * radius * length
}

// CylinderSurface returns the surface area of a cylinder.
func CylinderSurface(radius, length float64) float64 {
	return 2 * math.Pi * radius * (length + radius)
}

// CollisionRelevant reports whether the link carries collision geometry
// worth checking. Meshes are always relevant: their extent is unknown
// without loading the resource, so the conservative answer is yes.
// Primitive shapes are relevant when their volume or surface area
// clears the thresholds.
func (c Classifier) CollisionRelevant(l *Link) bool {
	if l == nil || l.Collision == nil {
		return false
	}
	switch g := l.Collision.(type) {
	case Box:
		return BoxVolume(g.Size.X, g.Size.Y, g.Size.Z) > c.VolumeThreshold ||
			BoxSurface(g.Size.X, g.Size.Y, g.Size.Z) > c.SurfaceThreshold
	case Sphere:
		return SphereVolume(g.Radius) > c.VolumeThreshold
	case Cylinder:
		return CylinderVolume(g.Radius, g.Length) > c.VolumeThreshold ||
			CylinderSurface(g.Radius, g.Length) > c.SurfaceThreshold
	case Mesh:
		return true
	default:
		return false
	}
}
