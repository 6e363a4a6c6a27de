// Package scene realizes the collision geometry of a kinematic tree as
// triangle meshes using a geometry kernel. One mesh is produced per
// collision-relevant link, placed by the joint origin transforms
// accumulated along the chain from the root.
package scene

import (
	"fmt"

	"github.com/chazu/armature/pkg/kernel"
	"github.com/chazu/armature/pkg/kintree"
)

// Build walks every collision-relevant link of the tree and produces
// its placed triangle mesh. Links whose collision geometry is an
// external mesh resource are reported with an empty mesh carrying the
// link name; loading mesh resources is not this package's job. Build
// is read-only and never mutates the tree.
func Build(t *kintree.Tree, k kernel.Kernel, c kintree.Classifier) ([]*kernel.Mesh, error) {
	var meshes []*kernel.Mesh

	for _, name := range t.LinkNames() {
		link, err := t.Link(name)
		if err != nil {
			return nil, err
		}
		if !c.CollisionRelevant(link) {
			continue
		}

		solid, external := makeSolid(k, link.Collision)
		if external {
			meshes = append(meshes, &kernel.Mesh{LinkName: name})
			continue
		}

		placed, err := place(t, k, solid, name)
		if err != nil {
			return nil, err
		}
		mesh, err := k.ToMesh(placed)
		if err != nil {
			return nil, fmt.Errorf("scene: ToMesh for link %q: %w", name, err)
		}
		mesh.LinkName = name
		meshes = append(meshes, mesh)
	}

	return meshes, nil
}

// makeSolid builds the kernel solid for a geometry variant. The second
// return is true for external mesh resources, which the kernel cannot
// realize.
func makeSolid(k kernel.Kernel, g kintree.Geometry) (kernel.Solid, bool) {
	switch v := g.(type) {
	case kintree.Box:
		return k.Box(v.Size.X, v.Size.Y, v.Size.Z), false
	case kintree.Sphere:
		return k.Sphere(v.Radius), false
	case kintree.Cylinder:
		return k.Cylinder(v.Length, v.Radius), false
	default:
		return nil, true
	}
}

// place applies the origin transforms of every joint between the link
// and the root, innermost first: at each level the joint's rotation is
// applied, then its translation, walking up the parent chain.
func place(t *kintree.Tree, k kernel.Kernel, s kernel.Solid, link string) (kernel.Solid, error) {
	cur := link
	for cur != t.Root() {
		jname := t.ParentJoint(cur)
		if jname == "" {
			return nil, fmt.Errorf("scene: link %q is not connected to root %q", link, t.Root())
		}
		j, err := t.Joint(jname)
		if err != nil {
			return nil, err
		}
		rpy := j.Origin.RPY
		if rpy.X != 0 || rpy.Y != 0 || rpy.Z != 0 {
			s = k.Rotate(s, rpy.X, rpy.Y, rpy.Z)
		}
		xyz := j.Origin.Translation
		if xyz.X != 0 || xyz.Y != 0 || xyz.Z != 0 {
			s = k.Translate(s, xyz.X, xyz.Y, xyz.Z)
		}
		cur = j.Parent
	}
	return s, nil
}
