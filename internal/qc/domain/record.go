package qc

import (
	"errors"
	"time"
)

var (
	ErrNilRecord      = errors.New("qc: nil record")
	ErrMissingEmpName = errors.New("qc: employee name is required")
)

// PointKeys lists the QC wire fields in checklist order. The operator's
// checklist has 17 points; the firmware-version consistency check is a
// visual-only step with no wire field, which leaves these 16.
var PointKeys = []string{
	"probePin", "powerSupply", "capacitorBackup", "terminal",
	"signalIntegraty", "cabelStrain", "ledCheck", "gpsClod",
	"gsmNetwork", "productId", "physicallyAssembly", "housingSeal",
	"labelPlaceMent", "qrCodeRelaliablty", "finalVisualInspection",
	"packingMatarialIntegraty",
}

// Record is the terminal quality-check record for one unit.
type Record struct {
	ID                       string    `json:"id"`
	IMEINo                   string    `json:"imeiNo"`
	EmpName                  string    `json:"empName"`
	ProbePin                 bool      `json:"probePin"`
	PowerSupply              bool      `json:"powerSupply"`
	CapacitorBackup          bool      `json:"capacitorBackup"`
	Terminal                 bool      `json:"terminal"`
	SignalIntegraty          bool      `json:"signalIntegraty"`
	CabelStrain              bool      `json:"cabelStrain"`
	LedCheck                 bool      `json:"ledCheck"`
	GpsClod                  bool      `json:"gpsClod"`
	GsmNetwork               bool      `json:"gsmNetwork"`
	ProductID                bool      `json:"productId"`
	PhysicallyAssembly       bool      `json:"physicallyAssembly"`
	HousingSeal              bool      `json:"housingSeal"`
	LabelPlaceMent           bool      `json:"labelPlaceMent"`
	QrCodeRelaliablty        bool      `json:"qrCodeRelaliablty"`
	FinalVisualInspection    bool      `json:"finalVisualInspection"`
	PackingMatarialIntegraty bool      `json:"packingMatarialIntegraty"`
	Pass                     bool      `json:"pass"`
	CreatedAt                time.Time `json:"createdAt"`
}

// Values returns the point booleans keyed by wire field name.
func (r *Record) Values() map[string]bool {
	return map[string]bool{
		"probePin":                 r.ProbePin,
		"powerSupply":              r.PowerSupply,
		"capacitorBackup":          r.CapacitorBackup,
		"terminal":                 r.Terminal,
		"signalIntegraty":          r.SignalIntegraty,
		"cabelStrain":              r.CabelStrain,
		"ledCheck":                 r.LedCheck,
		"gpsClod":                  r.GpsClod,
		"gsmNetwork":               r.GsmNetwork,
		"productId":                r.ProductID,
		"physicallyAssembly":       r.PhysicallyAssembly,
		"housingSeal":              r.HousingSeal,
		"labelPlaceMent":           r.LabelPlaceMent,
		"qrCodeRelaliablty":        r.QrCodeRelaliablty,
		"finalVisualInspection":    r.FinalVisualInspection,
		"packingMatarialIntegraty": r.PackingMatarialIntegraty,
	}
}

// SetValues assigns point booleans from wire field names. Unknown keys are
// ignored.
func (r *Record) SetValues(values map[string]bool) {
	for key, value := range values {
		switch key {
		case "probePin":
			r.ProbePin = value
		case "powerSupply":
			r.PowerSupply = value
		case "capacitorBackup":
			r.CapacitorBackup = value
		case "terminal":
			r.Terminal = value
		case "signalIntegraty":
			r.SignalIntegraty = value
		case "cabelStrain":
			r.CabelStrain = value
		case "ledCheck":
			r.LedCheck = value
		case "gpsClod":
			r.GpsClod = value
		case "gsmNetwork":
			r.GsmNetwork = value
		case "productId":
			r.ProductID = value
		case "physicallyAssembly":
			r.PhysicallyAssembly = value
		case "housingSeal":
			r.HousingSeal = value
		case "labelPlaceMent":
			r.LabelPlaceMent = value
		case "qrCodeRelaliablty":
			r.QrCodeRelaliablty = value
		case "finalVisualInspection":
			r.FinalVisualInspection = value
		case "packingMatarialIntegraty":
			r.PackingMatarialIntegraty = value
		}
	}
}

// AllTrue reports whether every QC point passed.
func (r *Record) AllTrue() bool {
	for _, value := range r.Values() {
		if !value {
			return false
		}
	}
	return true
}
