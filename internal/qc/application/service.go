package application

import (
	"context"
	"errors"
	"time"

	firmware "assemblyline-cloud/internal/firmware/domain"
	"assemblyline-cloud/internal/observability/metrics"
	qc "assemblyline-cloud/internal/qc/domain"
	"assemblyline-cloud/internal/workflow"
)

// ReportDateLayout is the DD-MM-YYYY format the reports screen sends.
const ReportDateLayout = "02-01-2006"

var ErrBadReportDate = errors.New("qc service: date must be DD-MM-YYYY")

// SubmitInput is the QualityCheck payload.
type SubmitInput struct {
	IMEINo  string
	EmpName string
	Points  map[string]bool
}

// Service handles the terminal quality-check stage.
type Service struct {
	repo      qc.Repository
	firmwares firmware.Repository
}

// NewService constructs a service.
func NewService(repo qc.Repository, firmwares firmware.Repository) (*Service, error) {
	if repo == nil {
		return nil, errors.New("qc service: nil repo")
	}
	if firmwares == nil {
		return nil, errors.New("qc service: nil firmware repo")
	}
	return &Service{repo: repo, firmwares: firmwares}, nil
}

// Submit accepts the QC checklist for a unit and locks its firmware
// record. The unit must have an unlocked firmware record and every point
// must be true.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*qc.Record, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveStageSubmit(string(workflow.StageQC), result, time.Since(start))
	}()

	imeiNo := workflow.TrimIMEI(input.IMEINo)
	if imeiNo == "" {
		result = metrics.ResultError
		return nil, workflow.ErrEmptyIMEI
	}
	if input.EmpName == "" {
		result = metrics.ResultError
		return nil, qc.ErrMissingEmpName
	}

	prior, err := s.firmwares.FindByIMEI(ctx, imeiNo)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if prior == nil {
		result = metrics.ResultError
		metrics.IncGateViolation(string(workflow.StageQC))
		return nil, workflow.ErrGateClosed
	}
	if prior.FirmwareStatus {
		result = metrics.ResultError
		return nil, workflow.ErrStageLocked
	}

	record := &qc.Record{
		IMEINo:    imeiNo,
		EmpName:   input.EmpName,
		CreatedAt: time.Now().UTC(),
	}
	record.SetValues(input.Points)
	if !record.AllTrue() {
		result = metrics.ResultError
		return nil, workflow.ErrChecklistIncomplete
	}
	record.Pass = true

	if err := s.repo.Create(ctx, record); err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if err := s.firmwares.MarkQcDone(ctx, imeiNo); err != nil {
		result = metrics.ResultError
		return nil, err
	}
	metrics.IncQualityCheck(record.Pass)
	return record, nil
}

// ReportsByDate returns QC records created on the given DD-MM-YYYY day.
func (s *Service) ReportsByDate(ctx context.Context, date string) ([]qc.Record, error) {
	dayStart, err := time.ParseInLocation(ReportDateLayout, date, time.UTC)
	if err != nil {
		return nil, ErrBadReportDate
	}
	return s.repo.ListByDay(ctx, dayStart)
}

// List returns every QC record, newest first.
func (s *Service) List(ctx context.Context) ([]qc.Record, error) {
	return s.repo.List(ctx)
}
