package soldering

import "time"

// PointKeys lists the 17 soldering checkpoints in board order. These are
// wire field names and must not be reordered.
var PointKeys = []string{
	"plus12v", "gnd2", "ignition", "din1", "din2", "scs", "led",
	"sos4v", "an1", "an2", "din3", "op2", "gnd13", "op1",
	"tx", "rx", "gnd17",
}

// PointLabels maps checkpoint keys to the silkscreen labels operators see.
var PointLabels = map[string]string{
	"plus12v":  "+12v",
	"gnd2":     "GND (SL No. 2)",
	"ignition": "IGNITION",
	"din1":     "DIN1",
	"din2":     "DIN2",
	"scs":      "SCS",
	"led":      "LED",
	"sos4v":    "4V_SOS",
	"an1":      "AN1",
	"an2":      "AN2",
	"din3":     "DIN3",
	"op2":      "OP2",
	"gnd13":    "GND (SL No. 13)",
	"op1":      "OP1",
	"tx":       "TX",
	"rx":       "RX",
	"gnd17":    "GND (SL No. 17)",
}

// Record is the soldering-stage record for one unit. StatusSoldering is the
// verification gate for battery connection; BatteryConnectionStatus flips
// once the battery stage completes.
type Record struct {
	ID                      string    `json:"id"`
	BarcodeImeiID           string    `json:"barcodeImeiId"`
	IMEINo                  string    `json:"imeiNo"`
	Plus12V                 bool      `json:"plus12v"`
	Gnd2                    bool      `json:"gnd2"`
	Ignition                bool      `json:"ignition"`
	Din1                    bool      `json:"din1"`
	Din2                    bool      `json:"din2"`
	Scs                     bool      `json:"scs"`
	Led                     bool      `json:"led"`
	Sos4V                   bool      `json:"sos4v"`
	An1                     bool      `json:"an1"`
	An2                     bool      `json:"an2"`
	Din3                    bool      `json:"din3"`
	Op2                     bool      `json:"op2"`
	Gnd13                   bool      `json:"gnd13"`
	Op1                     bool      `json:"op1"`
	Tx                      bool      `json:"tx"`
	Rx                      bool      `json:"rx"`
	Gnd17                   bool      `json:"gnd17"`
	StatusSoldering         bool      `json:"status_Soldering"`
	BatteryConnectionStatus bool      `json:"batteryConnectionStatus"`
	CreatedAt               time.Time `json:"createdAt"`
}

// Values returns the checkpoint booleans keyed by wire field name.
func (r *Record) Values() map[string]bool {
	return map[string]bool{
		"plus12v":  r.Plus12V,
		"gnd2":    r.Gnd2,
		"ignition": r.Ignition,
		"din1":    r.Din1,
		"din2":    r.Din2,
		"scs":     r.Scs,
		"led":     r.Led,
		"sos4v":   r.Sos4V,
		"an1":     r.An1,
		"an2":     r.An2,
		"din3":    r.Din3,
		"op2":     r.Op2,
		"gnd13":   r.Gnd13,
		"op1":     r.Op1,
		"tx":      r.Tx,
		"rx":      r.Rx,
		"gnd17":   r.Gnd17,
	}
}

// SetValues assigns checkpoint booleans from wire field names. Unknown keys
// are ignored.
func (r *Record) SetValues(values map[string]bool) {
	for key, value := range values {
		switch key {
		case "plus12v":
			r.Plus12V = value
		case "gnd2":
			r.Gnd2 = value
		case "ignition":
			r.Ignition = value
		case "din1":
			r.Din1 = value
		case "din2":
			r.Din2 = value
		case "scs":
			r.Scs = value
		case "led":
			r.Led = value
		case "sos4v":
			r.Sos4V = value
		case "an1":
			r.An1 = value
		case "an2":
			r.An2 = value
		case "din3":
			r.Din3 = value
		case "op2":
			r.Op2 = value
		case "gnd13":
			r.Gnd13 = value
		case "op1":
			r.Op1 = value
		case "tx":
			r.Tx = value
		case "rx":
			r.Rx = value
		case "gnd17":
			r.Gnd17 = value
		}
	}
}

// AllTrue reports whether every checkpoint passed.
func (r *Record) AllTrue() bool {
	for _, value := range r.Values() {
		if !value {
			return false
		}
	}
	return true
}

// FalseKeys returns the failed checkpoint keys in board order.
func (r *Record) FalseKeys() []string {
	values := r.Values()
	var failed []string
	for _, key := range PointKeys {
		if !values[key] {
			failed = append(failed, key)
		}
	}
	return failed
}
