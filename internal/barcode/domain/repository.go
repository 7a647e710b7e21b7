package barcode

import "context"

// Repository persists barcode records.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	// List returns all records, newest first.
	List(ctx context.Context) ([]Record, error)
	// FindByIMEI returns nil, nil when the unit is unknown.
	FindByIMEI(ctx context.Context, imeiNo string) (*Record, error)
	// FindByID returns nil, nil when the record id is unknown.
	FindByID(ctx context.Context, id string) (*Record, error)
	// MarkVerified sets the status_ONE gate flag.
	MarkVerified(ctx context.Context, imeiNo string) error
	// MarkSolderingDone flips solderingStatus once the soldering checklist
	// is accepted. Flags are monotonic; there is no reverse operation.
	MarkSolderingDone(ctx context.Context, imeiNo string) error
}
