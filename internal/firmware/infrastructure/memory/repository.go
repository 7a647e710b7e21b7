package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	firmware "assemblyline-cloud/internal/firmware/domain"
	"assemblyline-cloud/internal/workflow"
)

const serialSeqBase = 8000

// Repository is an in-memory repository for firmware records.
type Repository struct {
	mu     sync.RWMutex
	nextID int
	data   map[string]*firmware.Record
}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{nextID: 1, data: make(map[string]*firmware.Record)}
}

// Create inserts a record keyed by IMEI.
func (r *Repository) Create(ctx context.Context, record *firmware.Record) error {
	_ = ctx
	if record == nil {
		return firmware.ErrNilRecord
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[record.IMEINo]; ok {
		return workflow.ErrDuplicateUnit
	}
	record.ID = "fw-" + strconv.Itoa(r.nextID)
	r.nextID++
	copied := *record
	r.data[record.IMEINo] = &copied
	return nil
}

// List returns all records, newest first.
func (r *Repository) List(ctx context.Context) ([]firmware.Record, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]firmware.Record, 0, len(r.data))
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

// FindByIMEI returns nil, nil when the unit has no firmware record.
func (r *Repository) FindByIMEI(ctx context.Context, imeiNo string) (*firmware.Record, error) {
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

// Update rewrites ICCID and serial for a record.
func (r *Repository) Update(ctx context.Context, record *firmware.Record) error {
	_ = ctx
	if record == nil {
		return firmware.ErrNilRecord
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.data[record.IMEINo]
	if !ok || stored.ID != record.ID {
		return firmware.ErrRecordNotFound
	}
	stored.ICCIDNo = record.ICCIDNo
	stored.SlNo = record.SlNo
	return nil
}

// DeleteByIMEI removes a record.
func (r *Repository) DeleteByIMEI(ctx context.Context, imeiNo string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[imeiNo]; !ok {
		return firmware.ErrRecordNotFound
	}
	delete(r.data, imeiNo)
	return nil
}

// NextSerial derives the next serial from today's record count.
func (r *Repository) NextSerial(ctx context.Context) (string, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	now := time.Now().UTC()
	var count int64
	for _, record := range r.data {
		if record.CreatedAt.UTC().Truncate(24 * time.Hour).Equal(now.Truncate(24 * time.Hour)) {
			count++
		}
	}
	return firmware.FormatSerial(now, serialSeqBase+count+1), nil
}

// MarkQcDone sets the firmWareStatus lock flag.
func (r *Repository) MarkQcDone(ctx context.Context, imeiNo string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.data[imeiNo]
	if !ok {
		return firmware.ErrRecordNotFound
	}
	record.FirmwareStatus = true
	return nil
}
