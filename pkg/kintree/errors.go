package kintree

import "errors"

// Sentinel errors for the tree model. Callers match with errors.Is;
// operations wrap these with context via fmt.Errorf("...: %w", ...).
var (
	// ErrMalformed reports a construction-time invariant violation:
	// duplicate name, dangling reference, zero or multiple roots, or a
	// cycle in the parent relation.
	ErrMalformed = errors.New("malformed description")

	// ErrUnsupportedGeometry reports an unrecognized primitive shape kind.
	ErrUnsupportedGeometry = errors.New("unsupported geometry")

	// ErrDuplicateName reports an attach-time name collision.
	ErrDuplicateName = errors.New("duplicate name")

	// ErrUnknownLink reports a reference to a link that does not exist.
	ErrUnknownLink = errors.New("unknown link")

	// ErrUnknownJoint reports a reference to a joint that does not exist.
	ErrUnknownJoint = errors.New("unknown joint")

	// ErrNoPath reports a chain query between links that are not in an
	// ancestor/descendant relation.
	ErrNoPath = errors.New("no path")

	// ErrNotApplicable reports a limit query on a joint kind that has no
	// position limits.
	ErrNotApplicable = errors.New("not applicable")

	// ErrCannotDetachRoot reports an attempt to detach at the root link,
	// which would leave the tree without a root.
	ErrCannotDetachRoot = errors.New("cannot detach root")
)
