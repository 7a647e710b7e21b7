package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	battery "assemblyline-cloud/internal/battery/domain"
	"assemblyline-cloud/internal/workflow"
)

// Repository is an in-memory repository for battery records.
type Repository struct {
	mu     sync.RWMutex
	nextID int
	data   map[string]*battery.Record
}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{nextID: 1, data: make(map[string]*battery.Record)}
}

// Create inserts a record keyed by IMEI.
func (r *Repository) Create(ctx context.Context, record *battery.Record) error {
	_ = ctx
	if record == nil {
		return battery.ErrNilRecord
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[record.IMEINo]; ok {
		return workflow.ErrDuplicateUnit
	}
	record.ID = "bt-" + strconv.Itoa(r.nextID)
	r.nextID++
	copied := *record
	r.data[record.IMEINo] = &copied
	return nil
}

// List returns all records, newest first.
func (r *Repository) List(ctx context.Context) ([]battery.Record, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]battery.Record, 0, len(r.data))
	for _, record := range r.data {
		result = append(result, *record)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// FindByIMEI returns nil, nil when the unit has no battery record.
func (r *Repository) FindByIMEI(ctx context.Context, imeiNo string) (*battery.Record, error) {
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

// MarkAssemblyDone flips overAllassemblyStatus.
func (r *Repository) MarkAssemblyDone(ctx context.Context, imeiNo string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.data[imeiNo]
	if !ok {
		return workflow.ErrUnitNotFound
	}
	record.OverallAssemblyStatus = true
	return nil
}
