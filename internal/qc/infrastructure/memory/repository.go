package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	qc "assemblyline-cloud/internal/qc/domain"
	"assemblyline-cloud/internal/workflow"
)

// Repository is an in-memory repository for QC records.
type Repository struct {
	mu     sync.RWMutex
	nextID int
	data   map[string]*qc.Record
}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{nextID: 1, data: make(map[string]*qc.Record)}
}

// Create inserts a record keyed by IMEI.
func (r *Repository) Create(ctx context.Context, record *qc.Record) error {
	_ = ctx
	if record == nil {
		return qc.ErrNilRecord
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[record.IMEINo]; ok {
		return workflow.ErrDuplicateUnit
	}
	record.ID = "qc-" + strconv.Itoa(r.nextID)
	r.nextID++
	copied := *record
	r.data[record.IMEINo] = &copied
	return nil
}

// FindByIMEI returns nil, nil when the unit has no QC record.
func (r *Repository) FindByIMEI(ctx context.Context, imeiNo string) (*qc.Record, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.data[imeiNo]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

// ListByDay returns records created within one day.
func (r *Repository) ListByDay(ctx context.Context, dayStart time.Time) ([]qc.Record, error) {
	_ = ctx
	dayStart = dayStart.UTC()
	dayEnd := dayStart.Add(24 * time.Hour)
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []qc.Record
	for _, record := range r.data {
		created := record.CreatedAt.UTC()
		if !created.Before(dayStart) && created.Before(dayEnd) {
			result = append(result, *record)
		}
	}
	sortNewestFirst(result)
	return result, nil
}

// List returns all records, newest first.
func (r *Repository) List(ctx context.Context) ([]qc.Record, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]qc.Record, 0, len(r.data))
	for _, record := range r.data {
		result = append(result, *record)
	}
	sortNewestFirst(result)
	return result, nil
}

func sortNewestFirst(records []qc.Record) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].ID > records[j].ID
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
}
