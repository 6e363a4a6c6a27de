package kintree

import (
	"fmt"
	"sort"
)

// weldSuffix disambiguates the weld joint from a single-link body's
// root link, which carries the body's own name.
const weldSuffix = "_joint"

// WeldJointName returns the name Attach gives the fixed joint that
// welds the given assembly into a tree. The joint is named after the
// assembly; when that name is taken by one of the assembly's own
// members (single-link bodies name their root link after themselves),
// the weld suffix keeps the shared link/joint namespace collision-free.
func WeldJointName(other *Tree) string {
	name := other.Name()
	if other.HasLink(name) || other.HasJoint(name) {
		return name + weldSuffix
	}
	return name
}

// Attach welds another tree into the receiver: every link and joint of
// other is copied in, and a new fixed joint with origin transform
// origin connects parentLink to other's root link. The operation is
// all-or-nothing; on any failure the receiver is left untouched.
//
// Failures: ErrDuplicateName when the weld joint name or any member
// name of other collides with a name in the receiver, ErrUnknownLink
// when parentLink does not exist, ErrMalformed when other is empty.
func (t *Tree) Attach(other *Tree, parentLink string, origin Transform) error {
	if other == nil || other.Root() == "" {
		return fmt.Errorf("%w: cannot attach an empty tree", ErrMalformed)
	}

	weld := WeldJointName(other)
	if t.HasLink(weld) || t.HasJoint(weld) {
		return fmt.Errorf("%w: %q already has a link or joint named %q", ErrDuplicateName, t.name, weld)
	}
	for name := range other.links {
		if t.HasLink(name) || t.HasJoint(name) {
			return fmt.Errorf("%w: %q already has a link or joint named %q", ErrDuplicateName, t.name, name)
		}
	}
	for name := range other.joints {
		if t.HasLink(name) || t.HasJoint(name) {
			return fmt.Errorf("%w: %q already has a link or joint named %q", ErrDuplicateName, t.name, name)
		}
	}
	if !t.HasLink(parentLink) {
		return fmt.Errorf("%w: cannot attach %q to non-existent parent link %q of %q",
			ErrUnknownLink, other.Name(), parentLink, t.name)
	}

	// All preconditions hold; commit. Copies keep the trees independent.
	for name, l := range other.links {
		t.links[name] = l.clone()
	}
	for name, j := range other.joints {
		t.joints[name] = j.clone()
		t.indexJoint(name)
	}
	t.joints[weld] = &Joint{
		Name:   weld,
		Kind:   Fixed,
		Parent: parentLink,
		Child:  other.Root(),
		Origin: origin,
	}
	t.indexJoint(weld)
	return nil
}

// indexJoint extends the adjacency index with one committed joint.
func (t *Tree) indexJoint(name string) {
	j := t.joints[name]
	t.parentJoint[j.Child] = name
	children := append(t.childJoints[j.Parent], name)
	sort.Strings(children)
	t.childJoints[j.Parent] = children
}

// Detach removes the named joint and the entire sub-tree below it.
// Passing the root link, or a joint leading into the root, fails with
// ErrCannotDetachRoot; a name that is not a joint fails with
// ErrUnknownJoint. The operation is all-or-nothing.
func (t *Tree) Detach(joint string) error {
	if joint == t.root {
		return fmt.Errorf("%w: %q is the root of %q", ErrCannotDetachRoot, joint, t.name)
	}
	j, ok := t.joints[joint]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownJoint, joint)
	}
	if j.Child == t.root {
		return fmt.Errorf("%w: joint %q leads into the root of %q", ErrCannotDetachRoot, joint, t.name)
	}

	sub, err := t.SubTreeAt(joint)
	if err != nil {
		return err
	}

	for name := range sub.links {
		delete(t.links, name)
		delete(t.parentJoint, name)
		delete(t.childJoints, name)
	}
	for name := range sub.joints {
		delete(t.joints, name)
	}
	delete(t.joints, joint)
	t.unindexJoint(joint, j.Parent)
	return nil
}

// unindexJoint removes one joint from its parent link's child list.
func (t *Tree) unindexJoint(name, parent string) {
	children := t.childJoints[parent]
	for i, c := range children {
		if c == name {
			t.childJoints[parent] = append(children[:i], children[i+1:]...)
			break
		}
	}
	if len(t.childJoints[parent]) == 0 {
		delete(t.childJoints, parent)
	}
}

// RebuildIndex recomputes the adjacency index from the registry alone.
// Mutations maintain the index incrementally; this is the from-scratch
// oracle the incremental path is checked against.
func (t *Tree) RebuildIndex() error {
	return t.buildIndex()
}
