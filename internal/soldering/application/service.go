package application

import (
	"context"
	"errors"
	"time"

	barcode "assemblyline-cloud/internal/barcode/domain"
	"assemblyline-cloud/internal/observability/metrics"
	soldering "assemblyline-cloud/internal/soldering/domain"
	"assemblyline-cloud/internal/workflow"
)

// SubmitInput is the addSolderingDetails payload.
type SubmitInput struct {
	BarcodeImeiID string
	Points        map[string]bool
}

// ListItem is a soldering record with its barcode record embedded under
// the barcodeImeiId key, the shape the battery workstation consumes.
type ListItem struct {
	soldering.Record
	Barcode *barcode.Record `json:"barcodeImeiId"`
}

// Service handles soldering-stage operations.
type Service struct {
	repo     soldering.Repository
	barcodes barcode.Repository
}

// NewService constructs a service.
func NewService(repo soldering.Repository, barcodes barcode.Repository) (*Service, error) {
	if repo == nil {
		return nil, errors.New("soldering service: nil repo")
	}
	if barcodes == nil {
		return nil, errors.New("soldering service: nil barcode repo")
	}
	return &Service{repo: repo, barcodes: barcodes}, nil
}

// Submit accepts the 17-point checklist for a unit. The unit's barcode
// record must have passed re-verification and every point must be true.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*soldering.Record, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveStageSubmit(string(workflow.StageSoldering), result, time.Since(start))
	}()

	if input.BarcodeImeiID == "" {
		result = metrics.ResultError
		return nil, errors.New("soldering service: barcodeImeiId required")
	}
	unit, err := s.barcodes.FindByID(ctx, input.BarcodeImeiID)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if unit == nil {
		result = metrics.ResultError
		return nil, workflow.ErrUnitNotFound
	}
	if !unit.StatusOne {
		result = metrics.ResultError
		metrics.IncGateViolation(string(workflow.StageSoldering))
		return nil, workflow.ErrGateClosed
	}

	existing, err := s.repo.FindByIMEI(ctx, unit.IMEINo)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if existing != nil {
		result = metrics.ResultError
		return nil, workflow.ErrDuplicateUnit
	}

	record := &soldering.Record{
		BarcodeImeiID: unit.ID,
		IMEINo:        unit.IMEINo,
		CreatedAt:     time.Now().UTC(),
	}
	record.SetValues(input.Points)
	if !record.AllTrue() {
		result = metrics.ResultError
		return nil, workflow.ErrChecklistIncomplete
	}

	if err := s.repo.Create(ctx, record); err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if err := s.barcodes.MarkSolderingDone(ctx, unit.IMEINo); err != nil {
		result = metrics.ResultError
		return nil, err
	}
	return record, nil
}

// List returns all soldering records with their barcode records embedded,
// newest first.
func (s *Service) List(ctx context.Context) ([]ListItem, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]ListItem, 0, len(records))
	for _, record := range records {
		unit, err := s.barcodes.FindByIMEI(ctx, record.IMEINo)
		if err != nil {
			return nil, err
		}
		items = append(items, ListItem{Record: record, Barcode: unit})
	}
	return items, nil
}

// Verify re-checks a unit's soldering record before the battery gate opens.
// When any checkpoint is false it fails with the gate-violation message
// naming the failed points.
func (s *Service) Verify(ctx context.Context, imeiNo string) error {
	imeiNo = workflow.TrimIMEI(imeiNo)
	if imeiNo == "" {
		metrics.IncStageVerify(string(workflow.StageSoldering), metrics.ResultError)
		return workflow.ErrEmptyIMEI
	}
	record, err := s.repo.FindByIMEI(ctx, imeiNo)
	if err != nil {
		metrics.IncStageVerify(string(workflow.StageSoldering), metrics.ResultError)
		return err
	}
	if record == nil {
		metrics.IncStageVerify(string(workflow.StageSoldering), metrics.ResultError)
		return workflow.ErrUnitNotFound
	}
	if failed := record.FalseKeys(); len(failed) > 0 {
		metrics.IncStageVerify(string(workflow.StageSoldering), metrics.ResultError)
		metrics.IncGateViolation(string(workflow.StageSoldering))
		return errors.New(workflow.GateViolationMessage(imeiNo, failed))
	}
	if err := s.repo.MarkVerified(ctx, imeiNo); err != nil {
		metrics.IncStageVerify(string(workflow.StageSoldering), metrics.ResultError)
		return err
	}
	metrics.IncStageVerify(string(workflow.StageSoldering), metrics.ResultSuccess)
	return nil
}
