package application

import (
	"context"
	"errors"
	"time"

	barcode "assemblyline-cloud/internal/barcode/domain"
	firmware "assemblyline-cloud/internal/firmware/domain"
	qc "assemblyline-cloud/internal/qc/domain"
)

// ReportDateLayout is the day format used by report endpoints.
const ReportDateLayout = "02-01-2006"

// ErrBadReportDate rejects dates not in DD-MM-YYYY form.
var ErrBadReportDate = errors.New("reports: date must be DD-MM-YYYY")

// ProductionRow is one completed unit in the production export.
type ProductionRow struct {
	IMEINo    string
	ICCIDNo   string
	SlNo      string
	BatchNo   string
	LotNo     string
	Pass      bool
	CheckedAt time.Time
}

// Service assembles export data by joining the stage stores on IMEI.
type Service struct {
	qcRepo       qc.Repository
	firmwareRepo firmware.Repository
	barcodeRepo  barcode.Repository
}

// NewService constructs a report service.
func NewService(qcRepo qc.Repository, firmwareRepo firmware.Repository, barcodeRepo barcode.Repository) (*Service, error) {
	if qcRepo == nil {
		return nil, errors.New("reports service: nil qc repo")
	}
	if firmwareRepo == nil {
		return nil, errors.New("reports service: nil firmware repo")
	}
	if barcodeRepo == nil {
		return nil, errors.New("reports service: nil barcode repo")
	}
	return &Service{qcRepo: qcRepo, firmwareRepo: firmwareRepo, barcodeRepo: barcodeRepo}, nil
}

// ParseReportDate parses a DD-MM-YYYY day into its UTC midnight.
func ParseReportDate(date string) (time.Time, error) {
	day, err := time.ParseInLocation(ReportDateLayout, date, time.UTC)
	if err != nil {
		return time.Time{}, ErrBadReportDate
	}
	return day, nil
}

// QCRecordsByDay returns the QC records checked on the given day.
func (s *Service) QCRecordsByDay(ctx context.Context, day time.Time) ([]qc.Record, error) {
	return s.qcRepo.ListByDay(ctx, day)
}

// ProductionRows joins the day's QC records with firmware and barcode data.
// Units with a missing upstream record are still listed with blank columns so
// the export never hides a checked unit.
func (s *Service) ProductionRows(ctx context.Context, day time.Time) ([]ProductionRow, error) {
	records, err := s.qcRepo.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	rows := make([]ProductionRow, 0, len(records))
	for _, record := range records {
		row := ProductionRow{
			IMEINo:    record.IMEINo,
			Pass:      record.Pass,
			CheckedAt: record.CreatedAt,
		}
		fw, err := s.firmwareRepo.FindByIMEI(ctx, record.IMEINo)
		if err != nil {
			return nil, err
		}
		if fw != nil {
			row.ICCIDNo = fw.ICCIDNo
			row.SlNo = fw.SlNo
		}
		unit, err := s.barcodeRepo.FindByIMEI(ctx, record.IMEINo)
		if err != nil {
			return nil, err
		}
		if unit != nil {
			row.BatchNo = unit.BatchNo
			row.LotNo = unit.LotNo
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AssemblyIMEIs returns the IMEIs checked on the given day, for the
// per-unit assembly checklist export.
func (s *Service) AssemblyIMEIs(ctx context.Context, day time.Time) ([]string, error) {
	records, err := s.qcRepo.ListByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	imeis := make([]string, 0, len(records))
	for _, record := range records {
		imeis = append(imeis, record.IMEINo)
	}
	return imeis, nil
}
