package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	barcode "assemblyline-cloud/internal/barcode/domain"
	"assemblyline-cloud/internal/workflow"
)

// Repository is an in-memory repository for barcode records.
type Repository struct {
	mu     sync.RWMutex
	nextID int
	data   map[string]*barcode.Record
}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{nextID: 1, data: make(map[string]*barcode.Record)}
}

// Create inserts a record keyed by IMEI.
func (r *Repository) Create(ctx context.Context, record *barcode.Record) error {
	_ = ctx
	if record == nil {
		return barcode.ErrNilRecord
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[record.IMEINo]; ok {
		return workflow.ErrDuplicateUnit
	}
	record.ID = "bc-" + strconv.Itoa(r.nextID)
	r.nextID++
	copied := *record
	r.data[record.IMEINo] = &copied
	return nil
}

// List returns all records, newest first.
func (r *Repository) List(ctx context.Context) ([]barcode.Record, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]barcode.Record, 0, len(r.data))
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

// FindByIMEI returns nil, nil when the unit is unknown.
func (r *Repository) FindByIMEI(ctx context.Context, imeiNo string) (*barcode.Record, error) {
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

// FindByID scans for a record by its id.
func (r *Repository) FindByID(ctx context.Context, id string) (*barcode.Record, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, record := range r.data {
		if record.ID == id {
			copied := *record
			return &copied, nil
		}
	}
	return nil, nil
}

// MarkVerified sets the status_ONE gate flag.
func (r *Repository) MarkVerified(ctx context.Context, imeiNo string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.data[imeiNo]
	if !ok {
		return workflow.ErrUnitNotFound
	}
	record.StatusOne = true
	return nil
}

// MarkSolderingDone flips solderingStatus.
func (r *Repository) MarkSolderingDone(ctx context.Context, imeiNo string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.data[imeiNo]
	if !ok {
		return workflow.ErrUnitNotFound
	}
	record.SolderingStatus = true
	return nil
}
