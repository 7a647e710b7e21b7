package application

import (
	"context"
	"errors"
	"time"

	battery "assemblyline-cloud/internal/battery/domain"
	firmware "assemblyline-cloud/internal/firmware/domain"
	"assemblyline-cloud/internal/observability/metrics"
	"assemblyline-cloud/internal/workflow"
)

// EditInput is the editFirmWareDetails payload.
type EditInput struct {
	FirmwareID string
	IMEINo     string
	ICCIDNo    string
	SlNo       string
}

// Service handles firmware-stage operations.
type Service struct {
	repo      firmware.Repository
	batteries battery.Repository
}

// NewService constructs a service.
func NewService(repo firmware.Repository, batteries battery.Repository) (*Service, error) {
	if repo == nil {
		return nil, errors.New("firmware service: nil repo")
	}
	if batteries == nil {
		return nil, errors.New("firmware service: nil battery repo")
	}
	return &Service{repo: repo, batteries: batteries}, nil
}

// Create allocates a serial number and records the firmware flash. The
// unit's battery record must be present and connected; on success the
// battery record is marked assembly-complete.
func (s *Service) Create(ctx context.Context, imeiNo, iccidNo string) (*firmware.Record, error) {
	start := time.Now()
	result := metrics.ResultSuccess
	defer func() {
		metrics.ObserveStageSubmit(string(workflow.StageFirmware), result, time.Since(start))
	}()

	imeiNo = workflow.TrimIMEI(imeiNo)
	if imeiNo == "" {
		result = metrics.ResultError
		return nil, workflow.ErrEmptyIMEI
	}
	if iccidNo == "" {
		result = metrics.ResultError
		return nil, firmware.ErrMissingICCID
	}

	prior, err := s.batteries.FindByIMEI(ctx, imeiNo)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if prior == nil {
		result = metrics.ResultError
		return nil, workflow.ErrUnitNotFound
	}
	if !prior.BatteryConnectedStatus {
		result = metrics.ResultError
		metrics.IncGateViolation(string(workflow.StageFirmware))
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

	slNo, err := s.repo.NextSerial(ctx)
	if err != nil {
		result = metrics.ResultError
		return nil, err
	}
	metrics.IncFirmwareSerial(metrics.SerialSourceServer)

	record := &firmware.Record{
		IMEINo:    imeiNo,
		ICCIDNo:   iccidNo,
		SlNo:      slNo,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		result = metrics.ResultError
		return nil, err
	}
	if err := s.batteries.MarkAssemblyDone(ctx, imeiNo); err != nil {
		result = metrics.ResultError
		return nil, err
	}
	return record, nil
}

// Edit updates an existing record's ICCID and serial.
func (s *Service) Edit(ctx context.Context, input EditInput) (*firmware.Record, error) {
	if input.FirmwareID == "" {
		return nil, errors.New("firmware service: firmWareId required")
	}
	imeiNo := workflow.TrimIMEI(input.IMEINo)
	record, err := s.repo.FindByIMEI(ctx, imeiNo)
	if err != nil {
		return nil, err
	}
	if record == nil || record.ID != input.FirmwareID {
		return nil, firmware.ErrRecordNotFound
	}
	if record.FirmwareStatus {
		return nil, workflow.ErrStageLocked
	}
	record.ICCIDNo = input.ICCIDNo
	record.SlNo = input.SlNo
	if err := record.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes a firmware record. This is an explicit operator action
// outside the stage gating.
func (s *Service) Delete(ctx context.Context, imeiNo string) error {
	imeiNo = workflow.TrimIMEI(imeiNo)
	if imeiNo == "" {
		return workflow.ErrEmptyIMEI
	}
	record, err := s.repo.FindByIMEI(ctx, imeiNo)
	if err != nil {
		return err
	}
	if record == nil {
		return firmware.ErrRecordNotFound
	}
	if record.FirmwareStatus {
		return workflow.ErrStageLocked
	}
	return s.repo.DeleteByIMEI(ctx, imeiNo)
}

// FindByIMEI loads a record for the edit form.
func (s *Service) FindByIMEI(ctx context.Context, imeiNo string) (*firmware.Record, error) {
	imeiNo = workflow.TrimIMEI(imeiNo)
	if imeiNo == "" {
		return nil, workflow.ErrEmptyIMEI
	}
	record, err := s.repo.FindByIMEI(ctx, imeiNo)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, firmware.ErrRecordNotFound
	}
	return record, nil
}

// NextSerial previews the next authoritative serial number.
func (s *Service) NextSerial(ctx context.Context) (string, error) {
	return s.repo.NextSerial(ctx)
}

// List returns all firmware records, newest first. This is the QC
// worklist.
func (s *Service) List(ctx context.Context) ([]firmware.Record, error) {
	return s.repo.List(ctx)
}
