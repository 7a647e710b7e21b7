package assignments

import (
	"context"
	"errors"
	"time"
)

var ErrNilAssignment = errors.New("assignments: nil assignment")

// Work titles as printed on the line's task cards. Station routing matches
// on these strings verbatim, typos included.
const (
	WorkTitleBarcode   = "Add Barcode"
	WorkTitleSoldering = "Soldering"
	WorkTitleBattery   = "Battery connection & Capacitor & add battery"
	WorkTitleFirmware  = "Frimware update"
	WorkTitleQC        = "QC check"
	WorkTitleSticker   = "Print Sticker"
)

// Assignment is one task handed to an employee for a shift.
type Assignment struct {
	ID              string    `json:"id"`
	EmpID           string    `json:"empId"`
	WorkTitle       string    `json:"workTitel"`
	WorkDescription string    `json:"workDescription"`
	Status          bool      `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Employee is the work-list envelope for one employee.
type Employee struct {
	EmpID      string       `json:"empId"`
	Name       string       `json:"name"`
	AssignWork []Assignment `json:"assignWork"`
}

// Repository persists work assignments.
type Repository interface {
	Save(ctx context.Context, assignment *Assignment) error
	ListByEmployee(ctx context.Context, empID string) ([]Assignment, error)
}
