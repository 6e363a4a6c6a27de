// Package world maintains a robot tree plus a registry of free bodies
// behind one mutex. The kinematic tree itself has no internal locking;
// this package is the single-owner wrapper that serializes construction,
// query, and mutation for concurrent callers.
package world

import (
	"fmt"
	"sort"
	"sync"

	"github.com/chazu/armature/pkg/body"
	"github.com/chazu/armature/pkg/kintree"
)

// World owns one robot tree and any number of free bodies. All access
// runs under a single lock; at most one mutation is in flight at a
// time and queries never observe a partially-updated tree.
type World struct {
	mu       sync.Mutex
	robot    *kintree.Tree
	bodies   map[string]*kintree.Tree
	attached map[string]string // body name -> weld joint name in the robot
}

// NewWorld creates a world around the given robot tree. The world
// takes ownership; the caller must not mutate the tree afterwards.
func NewWorld(robot *kintree.Tree) *World {
	return &World{
		robot:    robot,
		bodies:   make(map[string]*kintree.Tree),
		attached: make(map[string]string),
	}
}

// Robot returns an independent copy of the robot tree.
func (w *World) Robot() *kintree.Tree {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.robot.Clone()
}

// AddBody builds the descriptor and registers it as a free body.
// A name already used by a free body, an attached body, or any member
// of the robot fails with kintree.ErrDuplicateName.
func (w *World) AddBody(d body.Descriptor) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	name := d.BodyName()
	if err := w.checkNameFree(name); err != nil {
		return err
	}
	t, err := body.Build(d)
	if err != nil {
		return err
	}
	// Assembly documents may declare their own robot name; the world
	// keys bodies by descriptor name.
	t.Rename(name)
	w.bodies[name] = t
	return nil
}

func (w *World) checkNameFree(name string) error {
	if _, ok := w.bodies[name]; ok {
		return fmt.Errorf("%w: world already has a body named %q", kintree.ErrDuplicateName, name)
	}
	if _, ok := w.attached[name]; ok {
		return fmt.Errorf("%w: body %q is attached to the robot", kintree.ErrDuplicateName, name)
	}
	if w.robot.HasLink(name) || w.robot.HasJoint(name) {
		return fmt.Errorf("%w: robot already has a link or joint named %q", kintree.ErrDuplicateName, name)
	}
	return nil
}

// RemoveBody drops a free body from the world.
func (w *World) RemoveBody(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.bodies[name]; !ok {
		return fmt.Errorf("%w: no free body named %q", kintree.ErrUnknownLink, name)
	}
	delete(w.bodies, name)
	return nil
}

// Clear removes every free body. Bodies attached to the robot are
// untouched.
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.bodies = make(map[string]*kintree.Tree)
}

// AttachBody welds a free body onto the robot at the given parent link
// with the given relative transform. On success the body leaves the
// free set; its weld joint name is remembered so DetachBody can undo
// the operation.
func (w *World) AttachBody(name, parentLink string, origin kintree.Transform) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	b, ok := w.bodies[name]
	if !ok {
		return fmt.Errorf("%w: no free body named %q", kintree.ErrUnknownLink, name)
	}
	weld := kintree.WeldJointName(b)
	if err := w.robot.Attach(b, parentLink, origin); err != nil {
		return err
	}
	delete(w.bodies, name)
	w.attached[name] = weld
	return nil
}

// DetachBody removes a previously attached body from the robot and
// returns it to the free set as an independent tree.
func (w *World) DetachBody(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	weld, ok := w.attached[name]
	if !ok {
		return fmt.Errorf("%w: no attached body named %q", kintree.ErrUnknownJoint, name)
	}
	sub, err := w.robot.SubTreeAt(weld)
	if err != nil {
		return err
	}
	if err := w.robot.Detach(weld); err != nil {
		return err
	}
	delete(w.attached, name)
	sub.Rename(name)
	w.bodies[name] = sub
	return nil
}

// BodyNames returns the names of all free bodies in sorted order.
func (w *World) BodyNames() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	names := make([]string, 0, len(w.bodies))
	for name := range w.bodies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AttachedNames returns the names of all attached bodies in sorted
// order.
func (w *World) AttachedNames() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	names := make([]string, 0, len(w.attached))
	for name := range w.attached {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Body returns an independent copy of a free body.
func (w *World) Body(name string) (*kintree.Tree, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	b, ok := w.bodies[name]
	if !ok {
		return nil, fmt.Errorf("%w: no free body named %q", kintree.ErrUnknownLink, name)
	}
	return b.Clone(), nil
}
