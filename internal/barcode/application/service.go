package application

import (
	"context"
	"errors"
	"time"

	barcode "assemblyline-cloud/internal/barcode/domain"
	"assemblyline-cloud/internal/observability/metrics"
	"assemblyline-cloud/internal/workflow"
)

// Service handles barcode-stage operations.
type Service struct {
	repo barcode.Repository
}

// NewService constructs a service.
func NewService(repo barcode.Repository) (*Service, error) {
	if repo == nil {
		return nil, errors.New("barcode service: nil repo")
	}
	return &Service{repo: repo}, nil
}

// Add registers a new unit with its batch and lot numbers.
func (s *Service) Add(ctx context.Context, batchNo, lotNo, imeiNo string) (*barcode.Record, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveStageSubmit(string(workflow.StageBarcode), result, time.Since(start))
	}()

	imeiNo = workflow.TrimIMEI(imeiNo)
	record := &barcode.Record{
		IMEINo:    imeiNo,
		BatchNo:   batchNo,
		LotNo:     lotNo,
		CreatedAt: time.Now().UTC(),
	}
	if err := record.Validate(); err != nil {
		result = metrics.ResultError
		return nil, err
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
	return record, nil
}

// List returns all registered units, newest first.
func (s *Service) List(ctx context.Context) ([]barcode.Record, error) {
	return s.repo.List(ctx)
}

// VerifyAgain re-confirms a unit's barcode record and opens the soldering
// gate for it.
func (s *Service) VerifyAgain(ctx context.Context, imeiNo string) error {
	imeiNo = workflow.TrimIMEI(imeiNo)
	if imeiNo == "" {
		metrics.IncStageVerify(string(workflow.StageBarcode), metrics.ResultError)
		return workflow.ErrEmptyIMEI
	}
	record, err := s.repo.FindByIMEI(ctx, imeiNo)
	if err != nil {
		metrics.IncStageVerify(string(workflow.StageBarcode), metrics.ResultError)
		return err
	}
	if record == nil {
		metrics.IncStageVerify(string(workflow.StageBarcode), metrics.ResultError)
		return workflow.ErrUnitNotFound
	}
	if err := s.repo.MarkVerified(ctx, imeiNo); err != nil {
		metrics.IncStageVerify(string(workflow.StageBarcode), metrics.ResultError)
		return err
	}
	metrics.IncStageVerify(string(workflow.StageBarcode), metrics.ResultSuccess)
	return nil
}
