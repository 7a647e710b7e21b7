package application

import (
	"context"
	"errors"

	assignments "assemblyline-cloud/internal/assignments/domain"
)

// Service handles work-assignment lookups.
type Service struct {
	repo assignments.Repository
}

// NewService constructs a service.
func NewService(repo assignments.Repository) (*Service, error) {
	if repo == nil {
		return nil, errors.New("assignments service: nil repo")
	}
	return &Service{repo: repo}, nil
}

// WorkList returns the employee envelope for the logged-in employee.
func (s *Service) WorkList(ctx context.Context, empID, name string) (*assignments.Employee, error) {
	if empID == "" {
		return nil, errors.New("assignments service: empty employee id")
	}
	work, err := s.repo.ListByEmployee(ctx, empID)
	if err != nil {
		return nil, err
	}
	return &assignments.Employee{EmpID: empID, Name: name, AssignWork: work}, nil
}

// Assign stores one task for an employee.
func (s *Service) Assign(ctx context.Context, assignment *assignments.Assignment) error {
	if assignment == nil {
		return assignments.ErrNilAssignment
	}
	if assignment.EmpID == "" {
		return errors.New("assignments service: empty employee id")
	}
	if assignment.WorkTitle == "" {
		return errors.New("assignments service: empty work title")
	}
	return s.repo.Save(ctx, assignment)
}
