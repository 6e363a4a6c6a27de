package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCheckCommand(t *testing.T) {
	path := writeTemp(t, "arm.urdf", `<robot name="arm">
  <link name="base_link"/>
  <link name="arm_link"/>
  <joint name="j1" type="revolute">
    <parent link="base_link"/><child link="arm_link"/>
    <limit lower="-1" upper="1" velocity="1"/>
  </joint>
</robot>`)
	if err := checkCmd.RunE(checkCmd, []string{path}); err != nil {
		t.Fatalf("check: %v", err)
	}

	bad := writeTemp(t, "bad.urdf", "not a robot description")
	if err := checkCmd.RunE(checkCmd, []string{bad}); err == nil {
		t.Error("check accepted a malformed document")
	}
	if err := checkCmd.RunE(checkCmd, []string{filepath.Join(t.TempDir(), "missing.urdf")}); err == nil {
		t.Error("check accepted a missing file")
	}
}

func TestDumpCommand(t *testing.T) {
	path := writeTemp(t, "solo.urdf", `<robot name="solo"><link name="base"/></robot>`)
	if err := dumpCmd.RunE(dumpCmd, []string{path}); err != nil {
		t.Fatalf("dump: %v", err)
	}
}

func TestRunCommand(t *testing.T) {
	path := writeTemp(t, "world.lisp", `
(robot "arm")
(add-box "box" :size (vec3 0.2 0.2 0.2))
(attach "box" :parent "base_link")
`)
	if err := runCmd.RunE(runCmd, []string{path}); err != nil {
		t.Fatalf("run: %v", err)
	}

	broken := writeTemp(t, "broken.lisp", `(add-box`)
	if err := runCmd.RunE(runCmd, []string{broken}); err == nil {
		t.Error("run accepted a script with errors")
	}
}
