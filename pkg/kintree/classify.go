package kintree

import (
	"fmt"
	"math"
	"sort"
)

// Interval is a resolved pair of position bounds.
type Interval struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// IsControllable reports whether the named joint is movable and not
// slaved to another joint via a mimic relation.
func (t *Tree) IsControllable(name string) (bool, error) {
	j, err := t.Joint(name)
	if err != nil {
		return false, err
	}
	return j.Kind != Fixed && j.Mimic == nil, nil
}

// IsMimic reports whether the named joint is movable and mimics
// another joint.
func (t *Tree) IsMimic(name string) (bool, error) {
	j, err := t.Joint(name)
	if err != nil {
		return false, err
	}
	return j.Kind != Fixed && j.Mimic != nil, nil
}

// IsContinuous reports whether the named joint rotates without bounds.
func (t *Tree) IsContinuous(name string) (bool, error) {
	j, err := t.Joint(name)
	if err != nil {
		return false, err
	}
	return j.Kind == Continuous, nil
}

// IsRotational reports whether the named joint is revolute or continuous.
func (t *Tree) IsRotational(name string) (bool, error) {
	j, err := t.Joint(name)
	if err != nil {
		return false, err
	}
	return j.Kind == Revolute || j.Kind == Continuous, nil
}

// IsTranslational reports whether the named joint is prismatic.
func (t *Tree) IsTranslational(name string) (bool, error) {
	j, err := t.Joint(name)
	if err != nil {
		return false, err
	}
	return j.Kind == Prismatic, nil
}

// EffectiveLimits resolves the position bounds of a joint. Soft limits
// from the safety controller tighten the hard limits when present.
// Continuous joints are periodic and report unbounded limits regardless
// of what was declared. Fixed joints have no position limits and return
// ErrNotApplicable.
func (t *Tree) EffectiveLimits(name string) (Interval, error) {
	j, err := t.Joint(name)
	if err != nil {
		return Interval{}, err
	}
	return effectiveLimits(j)
}

func effectiveLimits(j *Joint) (Interval, error) {
	switch j.Kind {
	case Fixed:
		return Interval{}, fmt.Errorf("%w: joint %q is fixed and has no position limits", ErrNotApplicable, j.Name)
	case Continuous:
		return Interval{Lower: math.Inf(-1), Upper: math.Inf(1)}, nil
	}
	if j.Limit == nil {
		return Interval{Lower: math.Inf(-1), Upper: math.Inf(1)}, nil
	}
	iv := Interval{Lower: j.Limit.Lower, Upper: j.Limit.Upper}
	if j.Soft != nil {
		iv.Lower = math.Max(j.Soft.Lower, iv.Lower)
		iv.Upper = math.Min(j.Soft.Upper, iv.Upper)
	}
	return iv, nil
}

// ControllableLimits maps every controllable joint to its effective
// position bounds. Map iteration order carries no meaning.
func (t *Tree) ControllableLimits() map[string]Interval {
	limits := make(map[string]Interval)
	for name, j := range t.joints {
		if j.Kind == Fixed || j.Mimic != nil {
			continue
		}
		iv, err := effectiveLimits(j)
		if err != nil {
			continue
		}
		limits[name] = iv
	}
	return limits
}

// ControllableJoints returns the names of all controllable joints in
// sorted order.
func (t *Tree) ControllableJoints() []string {
	var names []string
	for name, j := range t.joints {
		if j.Kind != Fixed && j.Mimic == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
