package battery

import (
	"errors"
	"time"

	"assemblyline-cloud/internal/workflow"
)

// BatteryTypeLithiumIon is the only battery type fitted on this line today.
const BatteryTypeLithiumIon = "Lithium-Ion"

var (
	ErrNilRecord          = errors.New("battery: nil record")
	ErrMissingBatteryType = errors.New("battery: battery type is required")
	ErrInvalidVoltage     = errors.New("battery: voltage must be positive")
	ErrChecksNotConfirmed = errors.New("battery: battery and capacitor connections must both be confirmed")
)

// Record is the battery-stage record for one unit. OverallAssemblyStatus
// flips once a firmware record is created for the unit.
type Record struct {
	ID                       string    `json:"id"`
	IMEINo                   string    `json:"imeiNo"`
	BatteryType              string    `json:"batteryType"`
	Voltage                  float64   `json:"voltage"`
	BatteryConnectedStatus   bool      `json:"batteryConnectedStatus"`
	CapacitorConnectedStatus bool      `json:"capacitorConnectedStatus"`
	OverallAssemblyStatus    bool      `json:"overAllassemblyStatus"`
	CreatedAt                time.Time `json:"createdAt"`
}

// Validate checks required fields for submission.
func (r *Record) Validate() error {
	if r == nil {
		return ErrNilRecord
	}
	if r.IMEINo == "" {
		return workflow.ErrEmptyIMEI
	}
	if r.BatteryType == "" {
		return ErrMissingBatteryType
	}
	if r.Voltage <= 0 {
		return ErrInvalidVoltage
	}
	if !r.BatteryConnectedStatus || !r.CapacitorConnectedStatus {
		return ErrChecksNotConfirmed
	}
	return nil
}
