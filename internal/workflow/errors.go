package workflow

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyIMEI is returned when an operation is missing its IMEI.
	ErrEmptyIMEI = errors.New("workflow: empty imei")
	// ErrInvalidIMEI is returned when an IMEI is not 15 digits.
	ErrInvalidIMEI = errors.New("workflow: imei must be 15 digits")
	// ErrUnitNotFound is returned when no record exists for a unit.
	ErrUnitNotFound = errors.New("workflow: unit not found")
	// ErrDuplicateUnit is returned when a unit is registered twice.
	ErrDuplicateUnit = errors.New("workflow: unit already registered")
	// ErrStageLocked is returned when a completed stage is resubmitted.
	ErrStageLocked = errors.New("workflow: stage already completed")
	// ErrGateClosed is returned when the prior stage has not been verified.
	ErrGateClosed = errors.New("workflow: prior stage not verified")
	// ErrChecklistIncomplete is returned when a completion payload carries
	// unchecked points. Partial completion is never persisted.
	ErrChecklistIncomplete = errors.New("workflow: checklist incomplete")
)

// gateViolationText is the wire wording operators' tooling matches on.
// workflow.IsGateViolation is the only place client code couples to it.
const gateViolationText = "Some fields are not true"

// GateViolationMessage builds the operator-facing message for a checklist
// gate rejection, naming the fields that were still false.
func GateViolationMessage(imeiNo string, fields []string) string {
	if len(fields) == 0 {
		return fmt.Sprintf("%s for IMEI %s", gateViolationText, imeiNo)
	}
	return fmt.Sprintf("%s for IMEI %s: %s", gateViolationText, imeiNo, strings.Join(fields, ", "))
}

// IsGateViolation classifies a server error message as a checklist gate
// rejection (recoverable by finishing the prior stage) as opposed to a
// generic transport or server failure.
func IsGateViolation(message string) bool {
	return strings.Contains(message, gateViolationText)
}
