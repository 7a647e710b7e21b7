package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	assignments "assemblyline-cloud/internal/assignments/domain"
)

// Repository is an in-memory repository for assignments.
type Repository struct {
	mu     sync.RWMutex
	nextID int
	data   map[string][]assignments.Assignment
}

// NewRepository constructs a repository.
func NewRepository() *Repository {
	return &Repository{nextID: 1, data: make(map[string][]assignments.Assignment)}
}

// Save appends an assignment for its employee.
func (r *Repository) Save(ctx context.Context, assignment *assignments.Assignment) error {
	_ = ctx
	if assignment == nil {
		return assignments.ErrNilAssignment
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if assignment.ID == "" {
		assignment.ID = "aw-" + strconv.Itoa(r.nextID)
		r.nextID++
	}
	r.data[assignment.EmpID] = append(r.data[assignment.EmpID], *assignment)
	return nil
}

// ListByEmployee returns an employee's assignments, oldest first.
func (r *Repository) ListByEmployee(ctx context.Context, empID string) ([]assignments.Assignment, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.data[empID]
	result := make([]assignments.Assignment, len(stored))
	copy(result, stored)
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
