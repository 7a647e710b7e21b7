package station

import (
	"context"
	"fmt"
)

// Workstation is the common surface the router hands back for an
// assignment.
type Workstation interface {
	WorkTitle() string
	Refresh(ctx context.Context) error
}

// Router maps an assignment's workTitel to its workstation. The six titles
// are matched verbatim as the task cards print them, typos included.
type Router struct {
	client   *Client
	serials  *SerialCounter
	notifier Notifier
	empName  string
	sink     ReportSink
	printer  func(imeiNo string) error
}

// NewRouter constructs a router sharing one client and serial counter
// across stations.
func NewRouter(client *Client, serials *SerialCounter, empName string, sink ReportSink, notifier Notifier) (*Router, error) {
	if client == nil {
		return nil, fmt.Errorf("station: nil client")
	}
	if serials == nil {
		return nil, fmt.Errorf("station: nil serial counter")
	}
	return &Router{
		client:   client,
		serials:  serials,
		notifier: notifier,
		empName:  empName,
		sink:     sink,
	}, nil
}

// SetPrinter installs the external sticker renderer hook.
func (r *Router) SetPrinter(printer func(imeiNo string) error) {
	r.printer = printer
}

// Route returns the workstation for an assignment title.
func (r *Router) Route(workTitle string) (Workstation, error) {
	switch workTitle {
	case "Add Barcode":
		return NewBarcodeStation(r.client, r.serials, r.notifier)
	case "Soldering":
		return NewSolderingStation(r.client, r.notifier)
	case "Battery connection & Capacitor & add battery":
		return NewBatteryStation(r.client, r.notifier)
	case "Frimware update":
		return NewFirmwareStation(r.client, r.serials, r.notifier)
	case "QC check":
		return NewQCStation(r.client, r.empName, r.sink, r.notifier)
	case "Print Sticker":
		return NewStickerStation(r.printer), nil
	default:
		return nil, fmt.Errorf("station: no workstation for %q", workTitle)
	}
}
