package barcode

import (
	"time"

	"assemblyline-cloud/internal/workflow"
)

// Record is the barcode-stage record for one unit. StatusOne is the
// re-verification gate for soldering; SolderingStatus flips once the
// soldering checklist has been accepted.
type Record struct {
	ID              string    `json:"id"`
	IMEINo          string    `json:"imeiNo"`
	BatchNo         string    `json:"batchNo"`
	LotNo           string    `json:"lotNo"`
	StatusOne       bool      `json:"status_ONE"`
	SolderingStatus bool      `json:"solderingStatus"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Validate checks required fields.
func (r *Record) Validate() error {
	if r == nil {
		return ErrNilRecord
	}
	if r.IMEINo == "" {
		return workflow.ErrEmptyIMEI
	}
	if !workflow.ValidIMEI(r.IMEINo) {
		return workflow.ErrInvalidIMEI
	}
	if r.BatchNo == "" || r.LotNo == "" {
		return ErrMissingBatchLot
	}
	return nil
}
