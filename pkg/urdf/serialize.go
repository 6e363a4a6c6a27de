package urdf

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/chazu/armature/pkg/kintree"
)

// Serialize writes a tree as a URDF document. Links and joints are
// emitted in sorted name order, so structurally identical trees always
// serialize to identical text and the output can be compared byte for
// byte by callers checking mutation atomicity.
func Serialize(t *kintree.Tree) (string, error) {
	robot := xmlRobot{Name: t.Name()}

	for _, name := range t.LinkNames() {
		l, err := t.Link(name)
		if err != nil {
			return "", err
		}
		xl := xmlLink{Name: name}
		if l.Visual != nil {
			xl.Visual = &xmlGeomRef{Geometry: fromGeometry(l.Visual)}
		}
		if l.Collision != nil {
			xl.Collision = &xmlGeomRef{Geometry: fromGeometry(l.Collision)}
		}
		robot.Links = append(robot.Links, xl)
	}

	for _, name := range t.JointNames() {
		j, err := t.Joint(name)
		if err != nil {
			return "", err
		}
		robot.Joints = append(robot.Joints, fromJoint(j))
	}

	out, err := xml.MarshalIndent(robot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("urdf: serialize %q: %w", t.Name(), err)
	}
	return string(out) + "\n", nil
}

func fromJoint(j *kintree.Joint) xmlJoint {
	xj := xmlJoint{
		Name:   j.Name,
		Type:   j.Kind.String(),
		Parent: xmlLinkRef{Link: j.Parent},
		Child:  xmlLinkRef{Link: j.Child},
	}
	if j.Origin != (kintree.Transform{}) {
		xj.Origin = &xmlOrigin{XYZ: fromVec3(j.Origin.Translation), RPY: fromVec3(j.Origin.RPY)}
	}
	if j.Axis != (kintree.Vec3{}) {
		xj.Axis = &xmlAxis{XYZ: fromVec3(j.Axis)}
	}
	if j.Limit != nil {
		xj.Limit = &xmlLimit{Lower: j.Limit.Lower, Upper: j.Limit.Upper, Velocity: j.Limit.Velocity}
	}
	if j.Soft != nil {
		xj.Safety = &xmlSafety{SoftLower: j.Soft.Lower, SoftUpper: j.Soft.Upper}
	}
	if j.Mimic != nil {
		mult := j.Mimic.Multiplier
		off := j.Mimic.Offset
		xj.Mimic = &xmlMimic{Joint: j.Mimic.Joint, Multiplier: &mult, Offset: &off}
	}
	return xj
}

func fromGeometry(g kintree.Geometry) xmlGeometry {
	switch v := g.(type) {
	case kintree.Box:
		return xmlGeometry{Box: &xmlBox{Size: fromVec3(v.Size)}}
	case kintree.Sphere:
		return xmlGeometry{Sphere: &xmlSphere{Radius: v.Radius}}
	case kintree.Cylinder:
		return xmlGeometry{Cylinder: &xmlCylinder{Radius: v.Radius, Length: v.Length}}
	case kintree.Mesh:
		m := &xmlMesh{Filename: v.Resource}
		if v.Scale != (kintree.Vec3{}) {
			m.Scale = fromVec3(v.Scale)
		}
		return xmlGeometry{Mesh: m}
	}
	return xmlGeometry{}
}

func fromVec3(v kintree.Vec3) string {
	parts := []string{
		strconv.FormatFloat(v.X, 'g', -1, 64),
		strconv.FormatFloat(v.Y, 'g', -1, 64),
		strconv.FormatFloat(v.Z, 'g', -1, 64),
	}
	return strings.Join(parts, " ")
}
