// Package body turns inbound body descriptors into kinematic trees.
// A descriptor is a request to add geometry to the world: a primitive
// shape, an external mesh, or a full assembly document.
package body

import (
	"fmt"

	"github.com/chazu/armature/pkg/kintree"
	"github.com/chazu/armature/pkg/urdf"
)

// ShapeKind enumerates primitive shapes a descriptor may request.
// Cone is recognized so it can be rejected explicitly rather than
// falling into the unknown case.
type ShapeKind int

const (
	ShapeBox ShapeKind = iota
	ShapeSphere
	ShapeCylinder
	ShapeCone
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeSphere:
		return "sphere"
	case ShapeCylinder:
		return "cylinder"
	case ShapeCone:
		return "cone"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Descriptor is the closed set of body variants.
type Descriptor interface {
	descriptor()
	BodyName() string
}

// Primitive requests a single-link body with a primitive shape.
// Dimensions are shape-specific: box x,y,z; sphere radius;
// cylinder radius,length.
type Primitive struct {
	Name       string
	Shape      ShapeKind
	Dimensions []float64
}

func (Primitive) descriptor() {}

// BodyName returns the descriptor's name.
func (p Primitive) BodyName() string { return p.Name }

// MeshBody requests a single-link body referencing external mesh
// geometry.
type MeshBody struct {
	Name     string
	Resource string
}

func (MeshBody) descriptor() {}

// BodyName returns the descriptor's name.
func (m MeshBody) BodyName() string { return m.Name }

// Assembly requests a multi-link body described by a URDF document.
type Assembly struct {
	Name     string
	Document string
}

func (Assembly) descriptor() {}

// BodyName returns the descriptor's name.
func (a Assembly) BodyName() string { return a.Name }

// Build synthesizes a kinematic tree from a descriptor. Primitive and
// mesh bodies become a tree with exactly one link named after the
// descriptor, carrying the shape as both collision and visual
// geometry. Assemblies are parsed from their document. Unsupported
// shapes fail with kintree.ErrUnsupportedGeometry.
func Build(d Descriptor) (*kintree.Tree, error) {
	switch v := d.(type) {
	case Primitive:
		g, err := primitiveGeometry(v)
		if err != nil {
			return nil, err
		}
		link := &kintree.Link{Name: v.Name, Collision: g, Visual: g}
		return kintree.New(v.Name, []*kintree.Link{link}, nil)
	case MeshBody:
		g := kintree.Mesh{Resource: v.Resource}
		link := &kintree.Link{Name: v.Name, Collision: g, Visual: g}
		return kintree.New(v.Name, []*kintree.Link{link}, nil)
	case Assembly:
		return urdf.Parse(v.Document)
	}
	return nil, fmt.Errorf("%w: unknown body descriptor %T", kintree.ErrUnsupportedGeometry, d)
}

func primitiveGeometry(p Primitive) (kintree.Geometry, error) {
	switch p.Shape {
	case ShapeBox:
		if len(p.Dimensions) != 3 {
			return nil, fmt.Errorf("%w: box needs 3 dimensions, got %d", kintree.ErrUnsupportedGeometry, len(p.Dimensions))
		}
		return kintree.Box{Size: kintree.Vec3{X: p.Dimensions[0], Y: p.Dimensions[1], Z: p.Dimensions[2]}}, nil
	case ShapeSphere:
		if len(p.Dimensions) != 1 {
			return nil, fmt.Errorf("%w: sphere needs 1 dimension, got %d", kintree.ErrUnsupportedGeometry, len(p.Dimensions))
		}
		return kintree.Sphere{Radius: p.Dimensions[0]}, nil
	case ShapeCylinder:
		if len(p.Dimensions) != 2 {
			return nil, fmt.Errorf("%w: cylinder needs 2 dimensions, got %d", kintree.ErrUnsupportedGeometry, len(p.Dimensions))
		}
		return kintree.Cylinder{Radius: p.Dimensions[0], Length: p.Dimensions[1]}, nil
	case ShapeCone:
		return nil, fmt.Errorf("%w: primitive shape cone not supported", kintree.ErrUnsupportedGeometry)
	}
	return nil, fmt.Errorf("%w: primitive shape %q not supported", kintree.ErrUnsupportedGeometry, p.Shape)
}
