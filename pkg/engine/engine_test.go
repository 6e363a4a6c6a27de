package engine

import (
	"strings"
	"testing"
)

func TestEvaluateEmptySource(t *testing.T) {
	w, evalErrs, err := NewEngine().Evaluate("")
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("Evaluate: %v %v", evalErrs, err)
	}
	robot := w.Robot()
	if robot.Name() != "robot" || robot.Root() != "base_link" {
		t.Errorf("default robot = %q root %q, want robot / base_link", robot.Name(), robot.Root())
	}
}

func TestEvaluateRobotDeclaration(t *testing.T) {
	w, evalErrs, err := NewEngine().Evaluate(`(robot "arm" :root "torso")`)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("Evaluate: %v %v", evalErrs, err)
	}
	robot := w.Robot()
	if robot.Name() != "arm" || robot.Root() != "torso" {
		t.Errorf("robot = %q root %q, want arm / torso", robot.Name(), robot.Root())
	}
}

func TestEvaluateAddBodies(t *testing.T) {
	source := `
(robot "arm")
(add-box "crate" :size (vec3 0.5 0.4 0.3))
(add-sphere "ball" :radius 0.2)
(add-cylinder "can" :radius 0.05 :length 0.12)
(add-mesh "mug" :resource "package://props/mug.stl")
`
	w, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("Evaluate: %v %v", evalErrs, err)
	}
	got := w.BodyNames()
	want := []string{"ball", "can", "crate", "mug"}
	if len(got) != len(want) {
		t.Fatalf("BodyNames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("BodyNames = %v, want %v", got, want)
		}
	}
}

func TestEvaluateAttachDetach(t *testing.T) {
	source := `
(robot "arm")
(add-box "box")
(attach "box" :parent "base_link" :at (vec3 0 0 0.5))
`
	w, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("Evaluate: %v %v", evalErrs, err)
	}
	if got := w.AttachedNames(); len(got) != 1 || got[0] != "box" {
		t.Fatalf("AttachedNames = %v, want [box]", got)
	}
	robot := w.Robot()
	if !robot.HasLink("box") || !robot.HasJoint("box_joint") {
		t.Error("robot missing attached box or its weld joint")
	}

	source += `(detach "box")` + "\n"
	w, evalErrs, err = NewEngine().Evaluate(source)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("Evaluate: %v %v", evalErrs, err)
	}
	if got := w.BodyNames(); len(got) != 1 || got[0] != "box" {
		t.Fatalf("BodyNames after detach = %v, want [box]", got)
	}
	if len(w.AttachedNames()) != 0 {
		t.Error("attached set not emptied")
	}
}

func TestEvaluateRemoveAndClear(t *testing.T) {
	source := `
(add-box "a")
(add-box "b")
(remove "a")
`
	w, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("Evaluate: %v %v", evalErrs, err)
	}
	if got := w.BodyNames(); len(got) != 1 || got[0] != "b" {
		t.Fatalf("BodyNames = %v, want [b]", got)
	}

	w, evalErrs, err = NewEngine().Evaluate(source + `(clear)`)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("Evaluate: %v %v", evalErrs, err)
	}
	if got := w.BodyNames(); len(got) != 0 {
		t.Fatalf("BodyNames after clear = %v, want none", got)
	}
}

func TestEvaluateAddUrdf(t *testing.T) {
	source := `
(add-urdf "cart" :document "<robot name=\"cart\"><link name=\"frame\"/></robot>")
`
	w, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("Evaluate: %v %v", evalErrs, err)
	}
	if got := w.BodyNames(); len(got) != 1 || got[0] != "cart" {
		t.Fatalf("BodyNames = %v, want [cart]", got)
	}
}

func TestEvaluateParseError(t *testing.T) {
	w, evalErrs, err := NewEngine().Evaluate(`(add-box "unterminated`)
	if err != nil {
		t.Fatalf("fatal err = %v, want eval errors instead", err)
	}
	if w != nil {
		t.Error("world returned despite parse failure")
	}
	if len(evalErrs) == 0 {
		t.Fatal("no eval errors reported")
	}
}

func TestEvaluateRuntimeError(t *testing.T) {
	source := `
(add-box "box")
(add-box "box")
`
	w, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal err = %v, want eval errors instead", err)
	}
	if w != nil {
		t.Error("world returned despite runtime failure")
	}
	if len(evalErrs) == 0 {
		t.Fatal("no eval errors reported")
	}
	if !strings.Contains(evalErrs[0].Message, "box") {
		t.Errorf("error message %q does not mention the duplicate body", evalErrs[0].Message)
	}
}

func TestEvaluateSecondRobotRejected(t *testing.T) {
	_, evalErrs, err := NewEngine().Evaluate(`(robot "a") (robot "b")`)
	if err != nil {
		t.Fatalf("fatal err = %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatal("second robot declaration was accepted")
	}
}

func TestEvaluateCommentsAndKeywords(t *testing.T) {
	source := `
; declare the robot first
(robot "arm") ; then populate the world
(add-sphere "ball" :radius 0.25)
`
	w, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("Evaluate: %v %v", evalErrs, err)
	}
	if got := w.BodyNames(); len(got) != 1 || got[0] != "ball" {
		t.Fatalf("BodyNames = %v, want [ball]", got)
	}
}

func TestEvalErrorString(t *testing.T) {
	e := EvalError{Line: 3, Message: "unexpected token"}
	if got := e.Error(); got != "line 3: unexpected token" {
		t.Errorf("Error() = %q", got)
	}
	e = EvalError{Message: "boom"}
	if got := e.Error(); got != "boom" {
		t.Errorf("Error() = %q", got)
	}
}
