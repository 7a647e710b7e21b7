package workflow

import "testing"

func TestClassify_Ordering(t *testing.T) {
	cases := []struct {
		name  string
		state UnitState
		want  Status
	}{
		{"no record", UnitState{}, StatusNotStarted},
		{"gate closed", UnitState{Exists: true}, StatusAwaitingVerification},
		{"gate open untouched", UnitState{Exists: true, GateOpen: true}, StatusReadyToWork},
		{"gate open partially checked", UnitState{Exists: true, GateOpen: true, CheckedCount: 3}, StatusInProgress},
		{"completed", UnitState{Exists: true, GateOpen: true, Completed: true}, StatusCompleted},
		{"completed wins over closed gate", UnitState{Exists: true, Completed: true}, StatusCompleted},
		{"completed wins over local checks", UnitState{Exists: true, GateOpen: true, Completed: true, CheckedCount: 9}, StatusCompleted},
	}
	for _, tc := range cases {
		if got := Classify(tc.state); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestStatusEditable(t *testing.T) {
	editable := map[Status]bool{
		StatusNotStarted:           false,
		StatusAwaitingVerification: false,
		StatusReadyToWork:          true,
		StatusInProgress:           true,
		StatusCompleted:            false,
	}
	for status, want := range editable {
		if got := status.Editable(); got != want {
			t.Fatalf("%s: expected editable=%v, got %v", status, want, got)
		}
	}
}

func TestGateViolationClassifier(t *testing.T) {
	message := GateViolationMessage("123456789012345", []string{"gnd13", "tx"})
	if !IsGateViolation(message) {
		t.Fatalf("expected gate violation for %q", message)
	}
	if IsGateViolation("soldering details not found") {
		t.Fatal("generic failure must not classify as gate violation")
	}
}
