package kintree

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

// testClassifyTree covers every joint kind plus a mimic joint.
func testClassifyTree(t *testing.T) *Tree {
	t.Helper()
	links := []*Link{
		{Name: "base"}, {Name: "a"}, {Name: "b"}, {Name: "c"}, {Name: "d"},
	}
	joints := []*Joint{
		{Name: "rev", Kind: Revolute, Parent: "base", Child: "a",
			Limit: &Limits{Lower: -1, Upper: 1, Velocity: 2},
			Soft:  &SoftLimits{Lower: -0.5, Upper: 0.8}},
		{Name: "cont", Kind: Continuous, Parent: "a", Child: "b",
			Limit: &Limits{Lower: -9, Upper: 9, Velocity: 2}},
		{Name: "slide", Kind: Prismatic, Parent: "b", Child: "c",
			Limit: &Limits{Lower: 0, Upper: 0.3, Velocity: 1},
			Mimic: &Mimic{Joint: "rev", Multiplier: 2}},
		{Name: "weld", Kind: Fixed, Parent: "c", Child: "d"},
	}
	tree, err := New("kinds", links, joints)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tree
}

func TestJointPredicates(t *testing.T) {
	tree := testClassifyTree(t)

	tests := []struct {
		joint                                                    string
		controllable, mimic, continuous, rotational, translational bool
	}{
		{"rev", true, false, false, true, false},
		{"cont", true, false, true, true, false},
		{"slide", false, true, false, false, true},
		{"weld", false, false, false, false, false},
	}

	for _, tt := range tests {
		if got, _ := tree.IsControllable(tt.joint); got != tt.controllable {
			t.Errorf("IsControllable(%s) = %v, want %v", tt.joint, got, tt.controllable)
		}
		if got, _ := tree.IsMimic(tt.joint); got != tt.mimic {
			t.Errorf("IsMimic(%s) = %v, want %v", tt.joint, got, tt.mimic)
		}
		if got, _ := tree.IsContinuous(tt.joint); got != tt.continuous {
			t.Errorf("IsContinuous(%s) = %v, want %v", tt.joint, got, tt.continuous)
		}
		if got, _ := tree.IsRotational(tt.joint); got != tt.rotational {
			t.Errorf("IsRotational(%s) = %v, want %v", tt.joint, got, tt.rotational)
		}
		if got, _ := tree.IsTranslational(tt.joint); got != tt.translational {
			t.Errorf("IsTranslational(%s) = %v, want %v", tt.joint, got, tt.translational)
		}
	}
}

func TestPredicatesUnknownJoint(t *testing.T) {
	tree := testClassifyTree(t)

	if _, err := tree.IsControllable("nope"); !errors.Is(err, ErrUnknownJoint) {
		t.Fatalf("err = %v, want ErrUnknownJoint", err)
	}
}

func TestEffectiveLimitsSoftTightensHard(t *testing.T) {
	tree := testClassifyTree(t)

	iv, err := tree.EffectiveLimits("rev")
	if err != nil {
		t.Fatalf("EffectiveLimits: %v", err)
	}
	if iv.Lower != -0.5 || iv.Upper != 0.8 {
		t.Errorf("limits = [%g, %g], want [-0.5, 0.8]", iv.Lower, iv.Upper)
	}
}

func TestEffectiveLimitsHardOnly(t *testing.T) {
	links := []*Link{{Name: "base"}, {Name: "a"}}
	joints := []*Joint{{Name: "j", Kind: Revolute, Parent: "base", Child: "a",
		Limit: &Limits{Lower: -1, Upper: 1, Velocity: 1}}}
	tree, err := New("t", links, joints)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	iv, err := tree.EffectiveLimits("j")
	if err != nil {
		t.Fatalf("EffectiveLimits: %v", err)
	}
	if iv.Lower != -1 || iv.Upper != 1 {
		t.Errorf("limits = [%g, %g], want [-1, 1]", iv.Lower, iv.Upper)
	}
}

func TestEffectiveLimitsContinuousUnbounded(t *testing.T) {
	tree := testClassifyTree(t)

	// The continuous joint declares limits; they must be ignored.
	iv, err := tree.EffectiveLimits("cont")
	if err != nil {
		t.Fatalf("EffectiveLimits: %v", err)
	}
	if !math.IsInf(iv.Lower, -1) || !math.IsInf(iv.Upper, 1) {
		t.Errorf("limits = [%g, %g], want unbounded", iv.Lower, iv.Upper)
	}
}

func TestEffectiveLimitsFixedNotApplicable(t *testing.T) {
	tree := testClassifyTree(t)

	if _, err := tree.EffectiveLimits("weld"); !errors.Is(err, ErrNotApplicable) {
		t.Fatalf("err = %v, want ErrNotApplicable", err)
	}
}

func TestControllableLimits(t *testing.T) {
	tree := testClassifyTree(t)

	limits := tree.ControllableLimits()
	if len(limits) != 2 {
		t.Fatalf("got %d entries, want 2 (mimic and fixed excluded): %v", len(limits), limits)
	}
	if iv := limits["rev"]; iv.Lower != -0.5 || iv.Upper != 0.8 {
		t.Errorf("rev = [%g, %g], want [-0.5, 0.8]", iv.Lower, iv.Upper)
	}
	if _, ok := limits["slide"]; ok {
		t.Error("mimic joint slide must not be controllable")
	}
	if _, ok := limits["weld"]; ok {
		t.Error("fixed joint weld must not be controllable")
	}
}

func TestControllableJoints(t *testing.T) {
	tree := testClassifyTree(t)

	got := tree.ControllableJoints()
	want := []string{"cont", "rev"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ControllableJoints = %v, want %v", got, want)
	}
}
