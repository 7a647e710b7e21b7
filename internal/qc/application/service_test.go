package application

import (
	"context"
	"errors"
	"testing"
	"time"

	firmware "assemblyline-cloud/internal/firmware/domain"
	firmwaremem "assemblyline-cloud/internal/firmware/infrastructure/memory"
	qc "assemblyline-cloud/internal/qc/domain"
	qcmem "assemblyline-cloud/internal/qc/infrastructure/memory"
	"assemblyline-cloud/internal/workflow"
)

func seedFirmware(t *testing.T, repo *firmwaremem.Repository, imeiNo string, locked bool) {
	t.Helper()
	record := &firmware.Record{
		IMEINo:    imeiNo,
		ICCIDNo:   "8991000012345678901",
		SlNo:      "TIA/01012025A8001",
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("seed firmware: %v", err)
	}
	if locked {
		if err := repo.MarkQcDone(context.Background(), imeiNo); err != nil {
			t.Fatalf("seed lock: %v", err)
		}
	}
}

func allQcPoints(value bool) map[string]bool {
	points := make(map[string]bool, len(qc.PointKeys))
	for _, key := range qc.PointKeys {
		points[key] = value
	}
	return points
}

func TestSubmit_RequiresFirmwareRecord(t *testing.T) {
	svc, _ := NewService(qcmem.NewRepository(), firmwaremem.NewRepository())
	_, err := svc.Submit(context.Background(), SubmitInput{
		IMEINo:  "123456789012345",
		EmpName: "R. Devi",
		Points:  allQcPoints(true),
	})
	if !errors.Is(err, workflow.ErrGateClosed) {
		t.Fatalf("expected gate closed, got %v", err)
	}
}

func TestSubmit_RejectsLockedFirmware(t *testing.T) {
	firmwares := firmwaremem.NewRepository()
	svc, _ := NewService(qcmem.NewRepository(), firmwares)
	seedFirmware(t, firmwares, "123456789012345", true)

	_, err := svc.Submit(context.Background(), SubmitInput{
		IMEINo:  "123456789012345",
		EmpName: "R. Devi",
		Points:  allQcPoints(true),
	})
	if !errors.Is(err, workflow.ErrStageLocked) {
		t.Fatalf("expected stage locked, got %v", err)
	}
}

func TestSubmit_RequiresAllPoints(t *testing.T) {
	firmwares := firmwaremem.NewRepository()
	svc, _ := NewService(qcmem.NewRepository(), firmwares)
	seedFirmware(t, firmwares, "123456789012345", false)

	points := allQcPoints(true)
	points["packingMatarialIntegraty"] = false
	_, err := svc.Submit(context.Background(), SubmitInput{
		IMEINo:  "123456789012345",
		EmpName: "R. Devi",
		Points:  points,
	})
	if !errors.Is(err, workflow.ErrChecklistIncomplete) {
		t.Fatalf("expected checklist incomplete, got %v", err)
	}
}

func TestSubmit_LocksFirmwareAndPasses(t *testing.T) {
	firmwares := firmwaremem.NewRepository()
	svc, _ := NewService(qcmem.NewRepository(), firmwares)
	seedFirmware(t, firmwares, "123456789012345", false)

	record, err := svc.Submit(context.Background(), SubmitInput{
		IMEINo:  "123456789012345",
		EmpName: "R. Devi",
		Points:  allQcPoints(true),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !record.Pass {
		t.Fatalf("expected pass verdict")
	}
	stored, _ := firmwares.FindByIMEI(context.Background(), "123456789012345")
	if stored == nil || !stored.FirmwareStatus {
		t.Fatalf("expected firmWareStatus lock set")
	}
}

func TestReportsByDate_FiltersDay(t *testing.T) {
	repo := qcmem.NewRepository()
	firmwares := firmwaremem.NewRepository()
	svc, _ := NewService(repo, firmwares)

	old := &qc.Record{IMEINo: "111111111111111", EmpName: "A", Pass: true,
		CreatedAt: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)}
	recent := &qc.Record{IMEINo: "222222222222222", EmpName: "B", Pass: true,
		CreatedAt: time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)}
	old.SetValues(allQcPoints(true))
	recent.SetValues(allQcPoints(true))
	if err := repo.Create(context.Background(), old); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := repo.Create(context.Background(), recent); err != nil {
		t.Fatalf("seed: %v", err)
	}

	reports, err := svc.ReportsByDate(context.Background(), "02-01-2025")
	if err != nil {
		t.Fatalf("reports: %v", err)
	}
	if len(reports) != 1 || reports[0].IMEINo != "222222222222222" {
		t.Fatalf("unexpected reports %+v", reports)
	}

	if _, err := svc.ReportsByDate(context.Background(), "2025-01-02"); !errors.Is(err, ErrBadReportDate) {
		t.Fatalf("expected bad date error, got %v", err)
	}
}
