package battery

import "context"

// Repository persists battery records.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	List(ctx context.Context) ([]Record, error)
	// FindByIMEI returns nil, nil when the unit has no battery record.
	FindByIMEI(ctx context.Context, imeiNo string) (*Record, error)
	// MarkAssemblyDone flips overAllassemblyStatus.
	MarkAssemblyDone(ctx context.Context, imeiNo string) error
}
