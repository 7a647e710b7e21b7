package soldering

import (
	"context"
	"errors"
)

var ErrNilRecord = errors.New("soldering: nil record")

// Repository persists soldering records.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	List(ctx context.Context) ([]Record, error)
	// FindByIMEI returns nil, nil when the unit has no soldering record.
	FindByIMEI(ctx context.Context, imeiNo string) (*Record, error)
	// MarkVerified sets the status_Soldering gate flag.
	MarkVerified(ctx context.Context, imeiNo string) error
	// MarkBatteryDone flips batteryConnectionStatus.
	MarkBatteryDone(ctx context.Context, imeiNo string) error
}
