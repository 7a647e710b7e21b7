package firmware

import (
	"errors"
	"fmt"
	"time"

	"assemblyline-cloud/internal/workflow"
)

var (
	ErrNilRecord      = errors.New("firmware: nil record")
	ErrMissingICCID   = errors.New("firmware: iccid is required")
	ErrMissingSerial  = errors.New("firmware: serial number is required")
	ErrRecordNotFound = errors.New("firmware: record not found")
)

// SerialPrefix is the leading segment of every allocated serial number.
const SerialPrefix = "TIA"

// Record is the firmware-stage record for one unit. FirmwareStatus is the
// QC lock: it flips when the quality check is submitted and the record
// becomes read-only on the line.
type Record struct {
	ID             string    `json:"id"`
	IMEINo         string    `json:"imeiNo"`
	ICCIDNo        string    `json:"iccidNo"`
	SlNo           string    `json:"slNo"`
	FirmwareStatus bool      `json:"firmWareStatus"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Validate checks required fields.
func (r *Record) Validate() error {
	if r == nil {
		return ErrNilRecord
	}
	if r.IMEINo == "" {
		return workflow.ErrEmptyIMEI
	}
	if r.ICCIDNo == "" {
		return ErrMissingICCID
	}
	if r.SlNo == "" {
		return ErrMissingSerial
	}
	return nil
}

// FormatSerial renders a serial number for the given day and sequence,
// e.g. TIA/06012026A8137.
func FormatSerial(day time.Time, seq int64) string {
	return fmt.Sprintf("%s/%sA%d", SerialPrefix, day.Format("02012006"), seq)
}
