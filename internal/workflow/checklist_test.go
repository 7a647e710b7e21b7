package workflow

import "testing"

func testChecklist() *Checklist {
	return NewChecklist([]ChecklistItem{
		{Key: "a", Label: "Point A"},
		{Key: "b", Label: "Point B"},
		{Key: "c", Label: "Point C"},
	})
}

func TestToggleAll_SelectsWhenNotUniform(t *testing.T) {
	list := testChecklist()
	list.Toggle("b")

	list.ToggleAll()
	if !list.AllChecked() {
		t.Fatalf("expected all checked after ToggleAll from mixed state, got %d/%d", list.CheckedCount(), list.Len())
	}

	list.ToggleAll()
	if list.CheckedCount() != 0 {
		t.Fatalf("expected all cleared after ToggleAll from all-checked, got %d", list.CheckedCount())
	}
}

func TestToggleAll_PairRestoresUniformState(t *testing.T) {
	list := testChecklist()
	list.ToggleAll()
	list.ToggleAll()
	if list.CheckedCount() != 0 {
		t.Fatalf("expected all-false restored, got %d checked", list.CheckedCount())
	}
}

func TestToggle_UnknownKey(t *testing.T) {
	list := testChecklist()
	if list.Toggle("missing") {
		t.Fatal("expected Toggle to reject unknown key")
	}
	if list.CheckedCount() != 0 {
		t.Fatal("unknown key must not mutate the checklist")
	}
}

func TestValuesReflectOrderIndependentState(t *testing.T) {
	list := testChecklist()
	list.Toggle("c")
	values := list.Values()
	if values["c"] != true || values["a"] != false {
		t.Fatalf("unexpected values map: %v", values)
	}
}
