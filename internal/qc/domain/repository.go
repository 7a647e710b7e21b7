package qc

import (
	"context"
	"time"
)

// Repository persists QC records.
type Repository interface {
	Create(ctx context.Context, record *Record) error
	// FindByIMEI returns nil, nil when the unit has no QC record.
	FindByIMEI(ctx context.Context, imeiNo string) (*Record, error)
	// ListByDay returns all records created within [dayStart, dayStart+24h).
	ListByDay(ctx context.Context, dayStart time.Time) ([]Record, error)
	List(ctx context.Context) ([]Record, error)
}
