package kintree

import "fmt"

// ---------------------------------------------------------------------------
// Spatial primitives
// ---------------------------------------------------------------------------

// Vec3 is a 3D vector. Units are meters for lengths and radians for angles.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Transform is a rigid transform: a translation plus a fixed-axis
// roll/pitch/yaw rotation, as used for joint origins.
type Transform struct {
	Translation Vec3 `json:"translation"`
	RPY         Vec3 `json:"rpy"`
}

// ---------------------------------------------------------------------------
// Geometry
// ---------------------------------------------------------------------------

// Geometry is the closed set of shape variants a link may carry.
// The geometry classifier switches exhaustively over these; adding a
// variant is a compile-time-enforced update site there.
type Geometry interface {
	geometry() // marker method restricting implementations to this package
}

// Box is a rectangular solid with full side lengths Size.
type Box struct {
	Size Vec3 `json:"size"`
}

func (Box) geometry() {}

// Sphere is a ball with the given radius.
type Sphere struct {
	Radius float64 `json:"radius"`
}

func (Sphere) geometry() {}

// Cylinder is a solid cylinder with the given radius and length.
type Cylinder struct {
	Radius float64 `json:"radius"`
	Length float64 `json:"length"`
}

func (Cylinder) geometry() {}

// Mesh references external triangle geometry by resource name.
// Its true extent is unknown without loading the resource.
type Mesh struct {
	Resource string `json:"resource"`
	Scale    Vec3   `json:"scale,omitempty"`
}

func (Mesh) geometry() {}

// ---------------------------------------------------------------------------
// Links
// ---------------------------------------------------------------------------

// Link is a rigid body segment. Collision and visual geometry are
// independent; either or both may be nil. A link with no collision
// geometry is never collision-relevant.
type Link struct {
	Name      string   `json:"name"`
	Collision Geometry `json:"collision,omitempty"`
	Visual    Geometry `json:"visual,omitempty"`
}

// clone returns a deep copy of the link. Geometry variants are value
// types, so copying the interface value is enough.
func (l *Link) clone() *Link {
	c := *l
	return &c
}

// ---------------------------------------------------------------------------
// Joints
// ---------------------------------------------------------------------------

// JointKind enumerates the supported joint types.
type JointKind int

const (
	Fixed      JointKind = iota // rigid connection, no motion
	Revolute                    // rotation with position limits
	Continuous                  // unbounded rotation
	Prismatic                   // translation with position limits
)

func (k JointKind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Revolute:
		return "revolute"
	case Continuous:
		return "continuous"
	case Prismatic:
		return "prismatic"
	default:
		return fmt.Sprintf("JointKind(%d)", int(k))
	}
}

// JointKindFromString maps the textual joint type to its kind.
func JointKindFromString(s string) (JointKind, bool) {
	switch s {
	case "fixed":
		return Fixed, true
	case "revolute":
		return Revolute, true
	case "continuous":
		return Continuous, true
	case "prismatic":
		return Prismatic, true
	}
	return 0, false
}

// Limits are the hard position and velocity bounds declared on a joint.
type Limits struct {
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
	Velocity float64 `json:"velocity"`
}

// SoftLimits are the safety-controller bounds, tightening the hard limits.
type SoftLimits struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Mimic slaves a joint's motion to another joint:
// position = Multiplier*other + Offset. A mimic joint is excluded from
// the controllable set.
type Mimic struct {
	Joint      string  `json:"joint"`
	Multiplier float64 `json:"multiplier"`
	Offset     float64 `json:"offset"`
}

// Joint connects a parent link to a child link with a motion freedom
// and a spatial origin transform.
type Joint struct {
	Name   string      `json:"name"`
	Kind   JointKind   `json:"kind"`
	Parent string      `json:"parent"`
	Child  string      `json:"child"`
	Origin Transform   `json:"origin"`
	Axis   Vec3        `json:"axis,omitempty"`
	Limit  *Limits     `json:"limit,omitempty"`
	Soft   *SoftLimits `json:"soft,omitempty"`
	Mimic  *Mimic      `json:"mimic,omitempty"`
}

// clone returns a deep copy of the joint.
func (j *Joint) clone() *Joint {
	c := *j
	if j.Limit != nil {
		lim := *j.Limit
		c.Limit = &lim
	}
	if j.Soft != nil {
		soft := *j.Soft
		c.Soft = &soft
	}
	if j.Mimic != nil {
		m := *j.Mimic
		c.Mimic = &m
	}
	return &c
}
