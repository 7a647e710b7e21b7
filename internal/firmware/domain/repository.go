package firmware

import "context"

// Repository persists firmware records and owns serial allocation.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	List(ctx context.Context) ([]Record, error)
	// FindByIMEI returns nil, nil when the unit has no firmware record.
	FindByIMEI(ctx context.Context, imeiNo string) (*Record, error)
	Update(ctx context.Context, record *Record) error
	DeleteByIMEI(ctx context.Context, imeiNo string) error
	// NextSerial returns the next authoritative serial number without
	// consuming it twice for the same record.
	NextSerial(ctx context.Context) (string, error)
	// MarkQcDone sets the firmWareStatus lock flag.
	MarkQcDone(ctx context.Context, imeiNo string) error
}
