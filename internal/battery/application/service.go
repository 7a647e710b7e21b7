package application

import (
	"context"
	"errors"
	"time"

	battery "assemblyline-cloud/internal/battery/domain"
	"assemblyline-cloud/internal/observability/metrics"
	soldering "assemblyline-cloud/internal/soldering/domain"
	"assemblyline-cloud/internal/workflow"
)

// SubmitInput is the addBatteryConnectionDetails payload.
type SubmitInput struct {
	IMEINo                   string
	BatteryType              string
	Voltage                  float64
	BatteryConnectedStatus   bool
	CapacitorConnectedStatus bool
}

// Service handles battery-stage operations.
type Service struct {
	repo       battery.Repository
	solderings soldering.Repository
}

// NewService constructs a service.
func NewService(repo battery.Repository, solderings soldering.Repository) (*Service, error) {
	if repo == nil {
		return nil, errors.New("battery service: nil repo")
	}
	if solderings == nil {
		return nil, errors.New("battery service: nil soldering repo")
	}
	return &Service{repo: repo, solderings: solderings}, nil
}

// Submit records the battery and capacitor connection for a unit. The
// unit's soldering record must have passed verification first.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*battery.Record, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveStageSubmit(string(workflow.StageBattery), result, time.Since(start))
	}()

	imeiNo := workflow.TrimIMEI(input.IMEINo)
	record := &battery.Record{
		IMEINo:                   imeiNo,
		BatteryType:              input.BatteryType,
		Voltage:                  input.Voltage,
		BatteryConnectedStatus:   input.BatteryConnectedStatus,
		CapacitorConnectedStatus: input.CapacitorConnectedStatus,
		CreatedAt:                time.Now().UTC(),
	}
	if err := record.Validate(); err != nil {
		result = metrics.ResultError
		return nil, err
	}

	prior, err := s.solderings.FindByIMEI(ctx, imeiNo)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if prior == nil {
		result = metrics.ResultError
		return nil, workflow.ErrUnitNotFound
	}
	if !prior.StatusSoldering {
		result = metrics.ResultError
		metrics.IncGateViolation(string(workflow.StageBattery))
		return nil, workflow.ErrGateClosed
	}

	existing, err := s.repo.FindByIMEI(ctx, imeiNo)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if existing != nil {
		result = metrics.ResultError
		return nil, workflow.ErrDuplicateUnit
	}

	if err := s.repo.Create(ctx, record); err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if err := s.solderings.MarkBatteryDone(ctx, imeiNo); err != nil {
		result = metrics.ResultError
		return nil, err
	}
	return record, nil
}

// List returns all battery records, newest first.
func (s *Service) List(ctx context.Context) ([]battery.Record, error) {
	return s.repo.List(ctx)
}
