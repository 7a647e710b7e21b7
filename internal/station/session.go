package station

import (
	"errors"
	"strings"

	"assemblyline-cloud/internal/workflow"
)

// Session is the shared workstation state machine, parameterized by stage.
// It tracks which unit's checklist is open (exactly one at a time), which
// units have been unlocked by a successful verify call, local checklist
// state, and the optimistic completion locks set after a successful submit.
// It holds no durable state; a new session starts empty.
type Session struct {
	stage      workflow.Stage
	items      []workflow.ChecklistItem
	focused    string
	checklist  *workflow.Checklist
	unlocked   map[string]bool
	completed  map[string]bool
	filter     string
	submitting bool
}

// NewSession constructs a session for one stage with its checklist layout.
// Stages without a checklist (barcode entry) pass nil items.
func NewSession(stage workflow.Stage, items []workflow.ChecklistItem) (*Session, error) {
	if !stage.IsValid() {
		return nil, errors.New("station: invalid stage")
	}
	return &Session{
		stage:     stage,
		items:     items,
		unlocked:  make(map[string]bool),
		completed: make(map[string]bool),
	}, nil
}

// Stage returns the session's stage.
func (s *Session) Stage() workflow.Stage {
	return s.stage
}

// Open focuses a unit, closing any previously open unit and resetting the
// checklist to all-unchecked. Completed units stay locked and cannot be
// reopened. Returns false when the unit is locked.
func (s *Session) Open(unitID string) bool {
	if unitID == "" || s.completed[unitID] {
		return false
	}
	s.focused = unitID
	s.checklist = workflow.NewChecklist(s.items)
	return true
}

// Close closes the open accordion and discards its checklist state.
func (s *Session) Close() {
	s.focused = ""
	s.checklist = nil
}

// Focused returns the unit id with the open accordion, empty when none.
func (s *Session) Focused() string {
	return s.focused
}

// Unlock records that a unit passed its verify call. Unlocking is per unit,
// never global.
func (s *Session) Unlock(unitID string) {
	if unitID != "" {
		s.unlocked[unitID] = true
	}
}

// IsUnlocked reports whether a unit's verify call succeeded this session.
func (s *Session) IsUnlocked(unitID string) bool {
	return s.unlocked[unitID]
}

// Toggle flips one checkpoint on the open unit's checklist.
func (s *Session) Toggle(key string) bool {
	if s.checklist == nil || s.submitting {
		return false
	}
	return s.checklist.Toggle(key)
}

// ToggleAll applies the select-all control to the open unit's checklist:
// all set when any are unchecked, all cleared when every one is checked.
func (s *Session) ToggleAll() {
	if s.checklist == nil || s.submitting {
		return
	}
	s.checklist.ToggleAll()
}

// Values returns the open checklist's checkpoint states.
func (s *Session) Values() map[string]bool {
	if s.checklist == nil {
		return nil
	}
	return s.checklist.Values()
}

// CheckedCount returns the number of ticked checkpoints on the open unit.
func (s *Session) CheckedCount() int {
	if s.checklist == nil {
		return 0
	}
	return s.checklist.CheckedCount()
}

// CanSubmit reports whether the submit control is enabled: a unit is open,
// every checkpoint is ticked, and no submission is in flight.
func (s *Session) CanSubmit() bool {
	return s.focused != "" && !s.submitting && s.checklist != nil && s.checklist.AllChecked()
}

// BeginSubmit disables the submit control while a request is in flight.
// There is no cancellation; the request runs to completion.
func (s *Session) BeginSubmit() bool {
	if !s.CanSubmit() {
		return false
	}
	s.submitting = true
	return true
}

// EndSubmit records the submission outcome. On success the unit is locked
// locally and its accordion closes; on failure the checklist stays as the
// operator left it for a manual retry.
func (s *Session) EndSubmit(success bool) {
	s.submitting = false
	if success && s.focused != "" {
		s.completed[s.focused] = true
		s.Close()
	}
}

// Complete locks a unit without going through a local submit, used when a
// refresh fetch reports the stage done server-side.
func (s *Session) Complete(unitID string) {
	if unitID != "" {
		s.completed[unitID] = true
		if s.focused == unitID {
			s.Close()
		}
	}
}

// IsCompleted reports whether the unit is locked in this session.
func (s *Session) IsCompleted(unitID string) bool {
	return s.completed[unitID]
}

// SetFilter normalizes and stores the IMEI list filter: digits only,
// truncated to 15.
func (s *Session) SetFilter(input string) {
	s.filter = workflow.SanitizeFilter(input)
}

// Filter returns the active IMEI filter.
func (s *Session) Filter() string {
	return s.filter
}

// MatchesFilter reports whether a unit's IMEI passes the active filter.
func (s *Session) MatchesFilter(imeiNo string) bool {
	if s.filter == "" {
		return true
	}
	return strings.Contains(imeiNo, s.filter)
}

// StatusOf classifies a unit for this stage, merging the server-reported
// record state with local session state (verify unlocks, open checklist,
// optimistic completion locks).
func (s *Session) StatusOf(unitID string, exists, gateOpen, serverCompleted bool) workflow.Status {
	state := workflow.UnitState{
		Exists:    exists,
		GateOpen:  gateOpen || s.unlocked[unitID],
		Completed: serverCompleted || s.completed[unitID],
	}
	if s.focused == unitID {
		state.CheckedCount = s.CheckedCount()
	}
	return workflow.Classify(state)
}
