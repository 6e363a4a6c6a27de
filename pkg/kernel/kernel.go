// Package kernel defines the abstract geometry kernel interface used
// to realize link geometry as solids and triangle meshes. The sdfx
// subpackage provides the default backend; the abstraction keeps the
// rest of the system independent of the modeling library.
package kernel

// Solid is an opaque handle to a geometry kernel solid.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface. All primitives are
// centered on the origin, matching URDF geometry conventions; joint
// origin transforms place them.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Sphere(radius float64) Solid
	Cylinder(height, radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, roll, pitch, yaw float64) Solid // radians

	// Mesh output
	ToMesh(s Solid) (*Mesh, error)
}
