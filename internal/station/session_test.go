package station

import (
	"testing"

	"assemblyline-cloud/internal/workflow"
)

func testItems() []workflow.ChecklistItem {
	return []workflow.ChecklistItem{
		{Key: "a", Label: "A"},
		{Key: "b", Label: "B"},
		{Key: "c", Label: "C"},
	}
}

func TestToggleAllSemantics(t *testing.T) {
	session, err := NewSession(workflow.StageSoldering, testItems())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if !session.Open("unit-1") {
		t.Fatalf("open failed")
	}

	session.Toggle("a")
	session.ToggleAll()
	for key, value := range session.Values() {
		if !value {
			t.Fatalf("expected %s checked after select-all", key)
		}
	}
	session.ToggleAll()
	for key, value := range session.Values() {
		if value {
			t.Fatalf("expected %s cleared after second select-all", key)
		}
	}
}

func TestExclusiveFocus(t *testing.T) {
	session, _ := NewSession(workflow.StageSoldering, testItems())
	session.Open("unit-1")
	session.Toggle("a")
	session.Open("unit-2")
	if session.Focused() != "unit-2" {
		t.Fatalf("focused = %q", session.Focused())
	}
	if session.CheckedCount() != 0 {
		t.Fatalf("checklist should reset when focus moves")
	}
}

func TestCompletedUnitStaysLocked(t *testing.T) {
	session, _ := NewSession(workflow.StageSoldering, testItems())
	session.Open("unit-1")
	session.ToggleAll()
	if !session.BeginSubmit() {
		t.Fatalf("submit should be enabled with all checked")
	}
	session.EndSubmit(true)
	if session.Focused() != "" {
		t.Fatalf("accordion should close on success")
	}
	if session.Open("unit-1") {
		t.Fatalf("completed unit must not reopen")
	}
	if got := session.StatusOf("unit-1", true, true, false); got != workflow.StatusCompleted {
		t.Fatalf("status = %s, want completed", got)
	}
}

func TestSubmitRequiresAllChecked(t *testing.T) {
	session, _ := NewSession(workflow.StageSoldering, testItems())
	session.Open("unit-1")
	session.Toggle("a")
	session.Toggle("b")
	if session.CanSubmit() {
		t.Fatalf("submit enabled with 2 of 3 checked")
	}
	session.Toggle("c")
	if !session.CanSubmit() {
		t.Fatalf("submit disabled with all checked")
	}
}

func TestFailedSubmitKeepsChecklist(t *testing.T) {
	session, _ := NewSession(workflow.StageSoldering, testItems())
	session.Open("unit-1")
	session.ToggleAll()
	session.BeginSubmit()
	session.EndSubmit(false)
	if session.Focused() != "unit-1" {
		t.Fatalf("failure must leave the unit open")
	}
	if !session.CanSubmit() {
		t.Fatalf("checklist state must survive a failed submit")
	}
	if session.IsCompleted("unit-1") {
		t.Fatalf("failed submit must not lock the unit")
	}
}

func TestUnlockIsPerUnit(t *testing.T) {
	session, _ := NewSession(workflow.StageBattery, testItems())
	session.Unlock("unit-1")
	if got := session.StatusOf("unit-1", true, false, false); got != workflow.StatusReadyToWork {
		t.Fatalf("unlocked unit status = %s", got)
	}
	if got := session.StatusOf("unit-2", true, false, false); got != workflow.StatusAwaitingVerification {
		t.Fatalf("other unit status = %s", got)
	}
}

func TestFilterSanitization(t *testing.T) {
	session, _ := NewSession(workflow.StageBattery, nil)
	session.SetFilter("12ab34567890123456")
	if session.Filter() != "123456789012345" {
		t.Fatalf("filter = %q", session.Filter())
	}
	if !session.MatchesFilter("123456789012345") {
		t.Fatalf("matching imei rejected")
	}
	if session.MatchesFilter("862512030000000") {
		t.Fatalf("non-matching imei accepted")
	}
}
