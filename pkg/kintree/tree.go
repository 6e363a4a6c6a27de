package kintree

import (
	"fmt"
	"sort"
)

// Tree is the kinematic model of one assembly: links and joints keyed
// by name, plus a derived adjacency index giving O(1) traversal in
// either direction. Link and joint names share one namespace.
//
// A Tree is a single-owner, synchronous value. It provides no internal
// locking; callers that share a tree across goroutines must serialize
// access themselves (see package world).
type Tree struct {
	name   string
	links  map[string]*Link
	joints map[string]*Joint

	// Derived index. childJoints maps a link to its outgoing joints,
	// parentJoint maps a link to its single incoming joint. root is the
	// one link with no incoming joint. Every successful mutation leaves
	// the index reflecting exactly the committed registry state.
	childJoints map[string][]string
	parentJoint map[string]string
	root        string
}

// New builds a tree from raw link and joint records, as produced by the
// urdf parser or synthesized from a body descriptor. It validates all
// structural invariants and returns ErrMalformed naming the first
// violation. Records are deep-copied; callers keep no live reference
// into the tree.
func New(name string, links []*Link, joints []*Joint) (*Tree, error) {
	t := &Tree{
		name:   name,
		links:  make(map[string]*Link, len(links)),
		joints: make(map[string]*Joint, len(joints)),
	}

	for _, l := range links {
		if _, dup := t.links[l.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate link name %q", ErrMalformed, l.Name)
		}
		t.links[l.Name] = l.clone()
	}
	for _, j := range joints {
		if _, dup := t.links[j.Name]; dup {
			return nil, fmt.Errorf("%w: joint name %q collides with a link name", ErrMalformed, j.Name)
		}
		if _, dup := t.joints[j.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate joint name %q", ErrMalformed, j.Name)
		}
		t.joints[j.Name] = j.clone()
	}

	if err := t.buildIndex(); err != nil {
		return nil, err
	}
	return t, nil
}

// buildIndex recomputes the adjacency index and root from the registry,
// validating referential integrity, single rootedness, and acyclicity.
func (t *Tree) buildIndex() error {
	childJoints := make(map[string][]string, len(t.links))
	parentJoint := make(map[string]string, len(t.links))

	for name, j := range t.joints {
		if _, ok := t.links[j.Parent]; !ok {
			return fmt.Errorf("%w: joint %q references unknown parent link %q", ErrMalformed, name, j.Parent)
		}
		if _, ok := t.links[j.Child]; !ok {
			return fmt.Errorf("%w: joint %q references unknown child link %q", ErrMalformed, name, j.Child)
		}
		if prev, ok := parentJoint[j.Child]; ok {
			return fmt.Errorf("%w: link %q has two parent joints %q and %q", ErrMalformed, j.Child, prev, name)
		}
		parentJoint[j.Child] = name
		childJoints[j.Parent] = append(childJoints[j.Parent], name)
	}

	// Deterministic child order keeps traversals and serialization stable.
	for _, names := range childJoints {
		sort.Strings(names)
	}

	root := ""
	for name := range t.links {
		if _, ok := parentJoint[name]; ok {
			continue
		}
		if root != "" {
			return fmt.Errorf("%w: multiple root links %q and %q", ErrMalformed, root, name)
		}
		root = name
	}
	if root == "" && len(t.links) > 0 {
		// Every link has a parent, so the parent relation contains a cycle.
		return fmt.Errorf("%w: no root link, parent relation is cyclic", ErrMalformed)
	}

	// Walk upward from every link; a walk longer than the link count
	// can only mean a cycle off the rooted component.
	for name := range t.links {
		steps := 0
		for cur := name; cur != root; steps++ {
			if steps > len(t.links) {
				return fmt.Errorf("%w: cycle detected walking up from link %q", ErrMalformed, name)
			}
			cur = t.joints[parentJoint[cur]].Parent
		}
	}

	t.childJoints = childJoints
	t.parentJoint = parentJoint
	t.root = root
	return nil
}

// Name returns the assembly name.
func (t *Tree) Name() string {
	return t.name
}

// Rename changes the assembly name. Link and joint names are untouched.
func (t *Tree) Rename(name string) {
	t.name = name
}

// Root returns the name of the root link, or "" for an empty tree.
func (t *Tree) Root() string {
	return t.root
}

// LinkNames returns all link names in sorted order.
func (t *Tree) LinkNames() []string {
	names := make([]string, 0, len(t.links))
	for name := range t.links {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// JointNames returns all joint names in sorted order.
func (t *Tree) JointNames() []string {
	names := make([]string, 0, len(t.joints))
	for name := range t.joints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LinkCount returns the number of links.
func (t *Tree) LinkCount() int {
	return len(t.links)
}

// JointCount returns the number of joints.
func (t *Tree) JointCount() int {
	return len(t.joints)
}

// HasLink reports whether a link with the given name exists.
func (t *Tree) HasLink(name string) bool {
	_, ok := t.links[name]
	return ok
}

// HasJoint reports whether a joint with the given name exists.
func (t *Tree) HasJoint(name string) bool {
	_, ok := t.joints[name]
	return ok
}

// Link returns a copy of the named link, or ErrUnknownLink. Mutating
// the copy does not reach into the tree.
func (t *Tree) Link(name string) (*Link, error) {
	l, ok := t.links[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLink, name)
	}
	return l.clone(), nil
}

// Joint returns a copy of the named joint, or ErrUnknownJoint.
// Mutating the copy does not reach into the tree.
func (t *Tree) Joint(name string) (*Joint, error) {
	j, ok := t.joints[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownJoint, name)
	}
	return j.clone(), nil
}

// ParentJoint returns the name of the joint leading into the given
// link, or "" for the root.
func (t *Tree) ParentJoint(link string) string {
	return t.parentJoint[link]
}

// ChildJoints returns the names of the joints leaving the given link,
// in sorted order. The returned slice must not be modified.
func (t *Tree) ChildJoints(link string) []string {
	return t.childJoints[link]
}

// Clone returns an independent deep copy of the tree.
func (t *Tree) Clone() *Tree {
	links := make([]*Link, 0, len(t.links))
	for _, l := range t.links {
		links = append(links, l)
	}
	joints := make([]*Joint, 0, len(t.joints))
	for _, j := range t.joints {
		joints = append(joints, j)
	}
	// New deep-copies and revalidates; a valid tree stays valid.
	c, err := New(t.name, links, joints)
	if err != nil {
		panic(fmt.Sprintf("kintree: clone of valid tree failed: %v", err))
	}
	return c
}
