package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	soldering "assemblyline-cloud/internal/soldering/domain"
	"assemblyline-cloud/internal/workflow"
)

// Repository is an in-memory repository for soldering records.
type Repository struct {
	mu     sync.RWMutex
	nextID int
	data   map[string]*soldering.Record
}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{nextID: 1, data: make(map[string]*soldering.Record)}
}

// Create inserts a record keyed by IMEI.
func (r *Repository) Create(ctx context.Context, record *soldering.Record) error {
	_ = ctx
	if record == nil {
		return soldering.ErrNilRecord
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[record.IMEINo]; ok {
		return workflow.ErrDuplicateUnit
	}
	record.ID = "sd-" + strconv.Itoa(r.nextID)
	r.nextID++
	copied := *record
	r.data[record.IMEINo] = &copied
	return nil
}

// List returns all records, newest first.
func (r *Repository) List(ctx context.Context) ([]soldering.Record, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]soldering.Record, 0, len(r.data))
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

// FindByIMEI returns nil, nil when the unit has no soldering record.
func (r *Repository) FindByIMEI(ctx context.Context, imeiNo string) (*soldering.Record, error) {
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

// MarkVerified sets the status_Soldering gate flag.
func (r *Repository) MarkVerified(ctx context.Context, imeiNo string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.data[imeiNo]
	if !ok {
		return workflow.ErrUnitNotFound
	}
	record.StatusSoldering = true
	return nil
}

// MarkBatteryDone flips batteryConnectionStatus.
func (r *Repository) MarkBatteryDone(ctx context.Context, imeiNo string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.data[imeiNo]
	if !ok {
		return workflow.ErrUnitNotFound
	}
	record.BatteryConnectionStatus = true
	return nil
}
