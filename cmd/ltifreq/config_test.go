package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hammal/lti/ssm"
	"github.com/hammal/lti/tf"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "system.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadStateSpace(t *testing.T) {
	path := writeConfig(t, `
ts: 0
a: [[-1, 0], [0, -10]]
b: [[1], [1]]
c: [[1, 1]]
`)
	sys, err := loadSystem(path)
	if err != nil {
		t.Fatal(err)
	}
	ss, ok := sys.(*ssm.StateSpace)
	if !ok {
		t.Fatalf("got %T, want *ssm.StateSpace", sys)
	}
	if ss.Order() != 2 || ss.Ninputs() != 1 || ss.Noutputs() != 1 {
		t.Errorf("unexpected dimensions: order=%d nu=%d ny=%d", ss.Order(), ss.Ninputs(), ss.Noutputs())
	}
}

func TestLoadStaticGain(t *testing.T) {
	path := writeConfig(t, `
d: [[2, 0], [0, 3]]
`)
	sys, err := loadSystem(path)
	if err != nil {
		t.Fatal(err)
	}
	ss, ok := sys.(*ssm.StateSpace)
	if !ok || ss.Order() != 0 {
		t.Fatalf("got %T with order %d, want a zero state gain", sys, ss.Order())
	}
}

func TestLoadTransferFunction(t *testing.T) {
	path := writeConfig(t, `
ts: 1
transfer_function:
  - - num: [1]
      den: [1, -0.5]
`)
	sys, err := loadSystem(path)
	if err != nil {
		t.Fatal(err)
	}
	g, ok := sys.(*tf.TransferFunction)
	if !ok {
		t.Fatalf("got %T, want *tf.TransferFunction", sys)
	}
	if g.SampleTime() != 1 {
		t.Errorf("Ts = %v, want 1", g.SampleTime())
	}
}

func TestLoadRejectsMismatchedDimensions(t *testing.T) {
	path := writeConfig(t, `
a: [[-1, 0], [0, -10]]
b: [[1]]
c: [[1, 1]]
`)
	if _, err := loadSystem(path); err == nil {
		t.Error("mismatched state space dimensions must be rejected")
	}
}

func TestLoadRejectsEmptyDefinition(t *testing.T) {
	path := writeConfig(t, "ts: 0\n")
	if _, err := loadSystem(path); err == nil {
		t.Error("a definition without matrices or entries must be rejected")
	}
}
