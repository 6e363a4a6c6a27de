// Package kintree defines the kinematic tree model for Armature.
// A tree is a set of rigid links connected by joints, indexed for
// traversal in both directions, queried for chains and sub-trees,
// and mutated by rigidly attaching or detaching sub-assemblies.
package kintree
