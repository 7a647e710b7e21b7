package workflow

// Stage identifies a production-line workstation.
type Stage string

const (
	StageBarcode   Stage = "barcode"
	StageSoldering Stage = "soldering"
	StageBattery   Stage = "battery"
	StageFirmware  Stage = "firmware"
	StageQC        Stage = "qc"
	StageSticker   Stage = "sticker"
)

// IsValid reports whether the stage is one of the known workstations.
func (s Stage) IsValid() bool {
	switch s {
	case StageBarcode, StageSoldering, StageBattery, StageFirmware, StageQC, StageSticker:
		return true
	default:
		return false
	}
}

// Status is a unit's state at one stage.
type Status string

const (
	StatusNotStarted           Status = "not_started"
	StatusAwaitingVerification Status = "awaiting_verification"
	StatusReadyToWork          Status = "ready_to_work"
	StatusInProgress           Status = "in_progress"
	StatusCompleted            Status = "completed"
)

// UnitState is the evaluator input for a single unit at a single stage.
type UnitState struct {
	// Exists is true when the unit has a record feeding this stage's list.
	Exists bool
	// GateOpen is the prior stage's completion/verification flag.
	GateOpen bool
	// Completed is this stage's own completion flag as reported by the server.
	Completed bool
	// CheckedCount is the number of checklist items ticked in the local session.
	CheckedCount int
}

// Classify computes the stage status for a unit. Completion wins over
// everything except non-existence: once the server reports a stage done the
// unit stays locked regardless of local session state.
func Classify(state UnitState) Status {
	switch {
	case !state.Exists:
		return StatusNotStarted
	case state.Completed:
		return StatusCompleted
	case !state.GateOpen:
		return StatusAwaitingVerification
	case state.CheckedCount > 0:
		return StatusInProgress
	default:
		return StatusReadyToWork
	}
}

// Editable reports whether the unit's checklist may be mutated.
func (s Status) Editable() bool {
	return s == StatusReadyToWork || s == StatusInProgress
}
