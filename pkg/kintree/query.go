package kintree

import "fmt"

// Chain returns the ordered root-to-tip sequence of joint and/or link
// names between two links. The walk follows the parent relation upward
// from tip until root is reached; since the model is a tree, the path
// is unique when it exists. The joints, links and fixed flags control
// which element kinds appear in the result; fixed=false drops fixed
// joints (links are kept regardless).
//
// Returns ErrUnknownLink if either endpoint does not exist and
// ErrNoPath if tip is not a descendant of root.
func (t *Tree) Chain(root, tip string, joints, links, fixed bool) ([]string, error) {
	if !t.HasLink(root) {
		return nil, fmt.Errorf("%w: chain root %q", ErrUnknownLink, root)
	}
	if !t.HasLink(tip) {
		return nil, fmt.Errorf("%w: chain tip %q", ErrUnknownLink, tip)
	}

	// Collect tip→root, then reverse.
	var reversed []string
	cur := tip
	for cur != root {
		if links {
			reversed = append(reversed, cur)
		}
		jname, ok := t.parentJoint[cur]
		if !ok {
			return nil, fmt.Errorf("%w: link %q is not a descendant of %q", ErrNoPath, tip, root)
		}
		j := t.joints[jname]
		if joints && (fixed || j.Kind != Fixed) {
			reversed = append(reversed, jname)
		}
		cur = j.Parent
	}
	if links {
		reversed = append(reversed, root)
	}

	chain := make([]string, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		chain = append(chain, reversed[i])
	}
	return chain, nil
}

// SubTreeAt returns the induced sub-tree below the named joint: the
// joint's child link and everything reachable downward from it. The
// result is an independent tree named after the joint, rooted at the
// joint's child link, with no aliasing back into the receiver.
func (t *Tree) SubTreeAt(joint string) (*Tree, error) {
	j, ok := t.joints[joint]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownJoint, joint)
	}

	var links []*Link
	var joints []*Joint
	queue := []string{j.Child}
	for len(queue) > 0 {
		link := queue[0]
		queue = queue[1:]
		links = append(links, t.links[link])
		for _, jname := range t.childJoints[link] {
			child := t.joints[jname]
			joints = append(joints, child)
			queue = append(queue, child.Child)
		}
	}

	return New(joint, links, joints)
}

// LinksInSubTree returns the names of all links in the sub-tree below
// the named joint.
func (t *Tree) LinksInSubTree(joint string) ([]string, error) {
	sub, err := t.SubTreeAt(joint)
	if err != nil {
		return nil, err
	}
	return sub.LinkNames(), nil
}

// LinksWithCollisionInSubTree filters the sub-tree below the named
// joint down to its collision-relevant links, as judged by the given
// classifier.
func (t *Tree) LinksWithCollisionInSubTree(joint string, c Classifier) ([]string, error) {
	sub, err := t.SubTreeAt(joint)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, name := range sub.LinkNames() {
		if c.CollisionRelevant(sub.links[name]) {
			names = append(names, name)
		}
	}
	return names, nil
}
