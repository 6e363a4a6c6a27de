// Package urdf reads and writes the URDF XML form of a kinematic tree.
// Parsing strips non-kinematic extension sections first, maps the
// document to flat link/joint records, and hands them to kintree.New
// for validation. Serialization is deterministic so that two
// structurally identical trees produce identical documents.
package urdf

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/armature/pkg/kintree"
)

// ---------------------------------------------------------------------------
// XML schema
// ---------------------------------------------------------------------------

type xmlRobot struct {
	XMLName xml.Name   `xml:"robot"`
	Name    string     `xml:"name,attr"`
	Links   []xmlLink  `xml:"link"`
	Joints  []xmlJoint `xml:"joint"`
}

type xmlLink struct {
	Name      string       `xml:"name,attr"`
	Visual    *xmlGeomRef  `xml:"visual"`
	Collision *xmlGeomRef  `xml:"collision"`
}

type xmlGeomRef struct {
	Origin   *xmlOrigin  `xml:"origin"`
	Geometry xmlGeometry `xml:"geometry"`
}

type xmlGeometry struct {
	Box      *xmlBox      `xml:"box"`
	Sphere   *xmlSphere   `xml:"sphere"`
	Cylinder *xmlCylinder `xml:"cylinder"`
	Mesh     *xmlMesh     `xml:"mesh"`
}

type xmlBox struct {
	Size string `xml:"size,attr"`
}

type xmlSphere struct {
	Radius float64 `xml:"radius,attr"`
}

type xmlCylinder struct {
	Radius float64 `xml:"radius,attr"`
	Length float64 `xml:"length,attr"`
}

type xmlMesh struct {
	Filename string `xml:"filename,attr"`
	Scale    string `xml:"scale,attr,omitempty"`
}

type xmlJoint struct {
	Name   string     `xml:"name,attr"`
	Type   string     `xml:"type,attr"`
	Origin *xmlOrigin `xml:"origin"`
	Parent xmlLinkRef `xml:"parent"`
	Child  xmlLinkRef `xml:"child"`
	Axis   *xmlAxis   `xml:"axis"`
	Limit  *xmlLimit  `xml:"limit"`
	Safety *xmlSafety `xml:"safety_controller"`
	Mimic  *xmlMimic  `xml:"mimic"`
}

type xmlOrigin struct {
	XYZ string `xml:"xyz,attr,omitempty"`
	RPY string `xml:"rpy,attr,omitempty"`
}

type xmlLinkRef struct {
	Link string `xml:"link,attr"`
}

type xmlAxis struct {
	XYZ string `xml:"xyz,attr"`
}

type xmlLimit struct {
	Lower    float64 `xml:"lower,attr"`
	Upper    float64 `xml:"upper,attr"`
	Velocity float64 `xml:"velocity,attr"`
}

type xmlSafety struct {
	SoftLower float64 `xml:"soft_lower_limit,attr"`
	SoftUpper float64 `xml:"soft_upper_limit,attr"`
}

type xmlMimic struct {
	Joint      string   `xml:"joint,attr"`
	Multiplier *float64 `xml:"multiplier,attr"`
	Offset     *float64 `xml:"offset,attr"`
}

// ---------------------------------------------------------------------------
// Extension stripping
// ---------------------------------------------------------------------------

// extensionTags are document sections that describe simulation or
// actuation concerns, not kinematics. Parsers downstream choke on
// vendor extensions inside them, so they are removed from the raw text
// before the document is parsed.
var extensionTags = []string{"transmission", "gazebo"}

// StripExtensions removes extension sections line by line. A line
// containing an opening extension tag starts deletion; a line with the
// matching closing tag ends it. Self-contained documents without
// extensions pass through unchanged apart from line endings.
func StripExtensions(doc string) string {
	var b strings.Builder
	b.Grow(len(doc))
	deleting := false
	lines := strings.Split(doc, "\n")
	// A newline-terminated document splits into a trailing empty
	// segment; writing it back would grow the document by one line.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for _, line := range lines {
		opens := false
		closes := false
		for _, tag := range extensionTags {
			if strings.Contains(line, "<"+tag) {
				opens = true
			}
			if strings.Contains(line, "</"+tag) {
				closes = true
			}
		}
		if opens {
			deleting = true
		}
		if closes {
			deleting = false
			continue
		}
		if !deleting {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Parsing
// ---------------------------------------------------------------------------

// Parse builds a kinematic tree from a URDF document. Extension
// sections are stripped first; the remaining document must satisfy
// every structural invariant or kintree.ErrMalformed is returned.
func Parse(doc string) (*kintree.Tree, error) {
	var robot xmlRobot
	if err := xml.Unmarshal([]byte(StripExtensions(doc)), &robot); err != nil {
		return nil, fmt.Errorf("%w: %v", kintree.ErrMalformed, err)
	}

	links := make([]*kintree.Link, 0, len(robot.Links))
	for _, xl := range robot.Links {
		l := &kintree.Link{Name: xl.Name}
		if xl.Collision != nil {
			g, err := toGeometry(xl.Collision.Geometry)
			if err != nil {
				return nil, fmt.Errorf("link %q collision: %w", xl.Name, err)
			}
			l.Collision = g
		}
		if xl.Visual != nil {
			g, err := toGeometry(xl.Visual.Geometry)
			if err != nil {
				return nil, fmt.Errorf("link %q visual: %w", xl.Name, err)
			}
			l.Visual = g
		}
		links = append(links, l)
	}

	joints := make([]*kintree.Joint, 0, len(robot.Joints))
	for _, xj := range robot.Joints {
		j, err := toJoint(xj)
		if err != nil {
			return nil, err
		}
		joints = append(joints, j)
	}

	return kintree.New(robot.Name, links, joints)
}

func toJoint(xj xmlJoint) (*kintree.Joint, error) {
	kind, ok := kintree.JointKindFromString(xj.Type)
	if !ok {
		return nil, fmt.Errorf("%w: joint %q has unsupported type %q", kintree.ErrMalformed, xj.Name, xj.Type)
	}
	j := &kintree.Joint{
		Name:   xj.Name,
		Kind:   kind,
		Parent: xj.Parent.Link,
		Child:  xj.Child.Link,
	}
	if xj.Origin != nil {
		xyz, err := toVec3(xj.Origin.XYZ)
		if err != nil {
			return nil, fmt.Errorf("%w: joint %q origin xyz: %v", kintree.ErrMalformed, xj.Name, err)
		}
		rpy, err := toVec3(xj.Origin.RPY)
		if err != nil {
			return nil, fmt.Errorf("%w: joint %q origin rpy: %v", kintree.ErrMalformed, xj.Name, err)
		}
		j.Origin = kintree.Transform{Translation: xyz, RPY: rpy}
	}
	if xj.Axis != nil {
		axis, err := toVec3(xj.Axis.XYZ)
		if err != nil {
			return nil, fmt.Errorf("%w: joint %q axis: %v", kintree.ErrMalformed, xj.Name, err)
		}
		j.Axis = axis
	}
	if xj.Limit != nil {
		j.Limit = &kintree.Limits{Lower: xj.Limit.Lower, Upper: xj.Limit.Upper, Velocity: xj.Limit.Velocity}
	}
	if xj.Safety != nil {
		j.Soft = &kintree.SoftLimits{Lower: xj.Safety.SoftLower, Upper: xj.Safety.SoftUpper}
	}
	if xj.Mimic != nil {
		m := &kintree.Mimic{Joint: xj.Mimic.Joint, Multiplier: 1}
		if xj.Mimic.Multiplier != nil {
			m.Multiplier = *xj.Mimic.Multiplier
		}
		if xj.Mimic.Offset != nil {
			m.Offset = *xj.Mimic.Offset
		}
		j.Mimic = m
	}
	return j, nil
}

func toGeometry(g xmlGeometry) (kintree.Geometry, error) {
	switch {
	case g.Box != nil:
		size, err := toVec3(g.Box.Size)
		if err != nil {
			return nil, fmt.Errorf("%w: box size: %v", kintree.ErrMalformed, err)
		}
		return kintree.Box{Size: size}, nil
	case g.Sphere != nil:
		return kintree.Sphere{Radius: g.Sphere.Radius}, nil
	case g.Cylinder != nil:
		return kintree.Cylinder{Radius: g.Cylinder.Radius, Length: g.Cylinder.Length}, nil
	case g.Mesh != nil:
		m := kintree.Mesh{Resource: g.Mesh.Filename}
		if g.Mesh.Scale != "" {
			scale, err := toVec3(g.Mesh.Scale)
			if err != nil {
				return nil, fmt.Errorf("%w: mesh scale: %v", kintree.ErrMalformed, err)
			}
			m.Scale = scale
		}
		return m, nil
	}
	return nil, fmt.Errorf("%w: geometry element is empty", kintree.ErrUnsupportedGeometry)
}

// toVec3 parses a whitespace-separated "x y z" attribute. An empty
// attribute is the zero vector.
func toVec3(s string) (kintree.Vec3, error) {
	if strings.TrimSpace(s) == "" {
		return kintree.Vec3{}, nil
	}
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return kintree.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var out [3]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return kintree.Vec3{}, fmt.Errorf("component %d: %v", i, err)
		}
		out[i] = v
	}
	return kintree.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}
