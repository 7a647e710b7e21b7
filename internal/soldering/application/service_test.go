package application

import (
	"context"
	"errors"
	"testing"
	"time"

	barcode "assemblyline-cloud/internal/barcode/domain"
	barcodemem "assemblyline-cloud/internal/barcode/infrastructure/memory"
	soldering "assemblyline-cloud/internal/soldering/domain"
	solderingmem "assemblyline-cloud/internal/soldering/infrastructure/memory"
	"assemblyline-cloud/internal/workflow"
)

func allPoints(value bool) map[string]bool {
	points := make(map[string]bool, len(soldering.PointKeys))
	for _, key := range soldering.PointKeys {
		points[key] = value
	}
	return points
}

func seedUnit(t *testing.T, repo *barcodemem.Repository, imeiNo string, verified bool) *barcode.Record {
	t.Helper()
	record := &barcode.Record{
		IMEINo:    imeiNo,
		BatchNo:   "TIA/BATCH/01012025/VLT000001",
		LotNo:     "TIA/LOT/01012025/VLT000001",
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), record); err != nil {
		t.Fatalf("seed barcode: %v", err)
	}
	if verified {
		if err := repo.MarkVerified(context.Background(), imeiNo); err != nil {
			t.Fatalf("seed verify: %v", err)
		}
	}
	return record
}

func TestSubmit_RequiresVerifiedBarcode(t *testing.T) {
	barcodes := barcodemem.NewRepository()
	svc, _ := NewService(solderingmem.NewRepository(), barcodes)
	unit := seedUnit(t, barcodes, "123456789012345", false)

	_, err := svc.Submit(context.Background(), SubmitInput{
		BarcodeImeiID: unit.ID,
		Points:        allPoints(true),
	})
	if !errors.Is(err, workflow.ErrGateClosed) {
		t.Fatalf("expected gate closed, got %v", err)
	}
}

func TestSubmit_RequiresAllPoints(t *testing.T) {
	barcodes := barcodemem.NewRepository()
	svc, _ := NewService(solderingmem.NewRepository(), barcodes)
	unit := seedUnit(t, barcodes, "123456789012345", true)

	points := allPoints(true)
	points["gnd17"] = false
	_, err := svc.Submit(context.Background(), SubmitInput{BarcodeImeiID: unit.ID, Points: points})
	if !errors.Is(err, workflow.ErrChecklistIncomplete) {
		t.Fatalf("expected checklist incomplete, got %v", err)
	}
}

func TestSubmit_MarksBarcodeSolderingDone(t *testing.T) {
	barcodes := barcodemem.NewRepository()
	svc, _ := NewService(solderingmem.NewRepository(), barcodes)
	unit := seedUnit(t, barcodes, "123456789012345", true)

	record, err := svc.Submit(context.Background(), SubmitInput{BarcodeImeiID: unit.ID, Points: allPoints(true)})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !record.AllTrue() {
		t.Fatalf("expected all points true on stored record")
	}
	updated, _ := barcodes.FindByIMEI(context.Background(), unit.IMEINo)
	if updated == nil || !updated.SolderingStatus {
		t.Fatalf("expected solderingStatus set on barcode record")
	}
}

func TestSubmit_RejectsSecondRecord(t *testing.T) {
	barcodes := barcodemem.NewRepository()
	svc, _ := NewService(solderingmem.NewRepository(), barcodes)
	unit := seedUnit(t, barcodes, "123456789012345", true)

	if _, err := svc.Submit(context.Background(), SubmitInput{BarcodeImeiID: unit.ID, Points: allPoints(true)}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err := svc.Submit(context.Background(), SubmitInput{BarcodeImeiID: unit.ID, Points: allPoints(true)})
	if !errors.Is(err, workflow.ErrDuplicateUnit) {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestVerify_GateViolationNamesFailedPoints(t *testing.T) {
	barcodes := barcodemem.NewRepository()
	repo := solderingmem.NewRepository()
	svc, _ := NewService(repo, barcodes)
	seedUnit(t, barcodes, "123456789012345", true)

	partial := &soldering.Record{IMEINo: "123456789012345", CreatedAt: time.Now().UTC()}
	partial.SetValues(allPoints(true))
	partial.Gnd17 = false
	if err := repo.Create(context.Background(), partial); err != nil {
		t.Fatalf("seed soldering: %v", err)
	}

	err := svc.Verify(context.Background(), "123456789012345")
	if err == nil {
		t.Fatalf("expected gate violation")
	}
	if !workflow.IsGateViolation(err.Error()) {
		t.Fatalf("expected gate-violation message, got %q", err.Error())
	}
}

func TestVerify_SetsStatusSoldering(t *testing.T) {
	barcodes := barcodemem.NewRepository()
	repo := solderingmem.NewRepository()
	svc, _ := NewService(repo, barcodes)
	unit := seedUnit(t, barcodes, "123456789012345", true)

	if _, err := svc.Submit(context.Background(), SubmitInput{BarcodeImeiID: unit.ID, Points: allPoints(true)}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := svc.Verify(context.Background(), unit.IMEINo); err != nil {
		t.Fatalf("verify: %v", err)
	}
	record, _ := repo.FindByIMEI(context.Background(), unit.IMEINo)
	if record == nil || !record.StatusSoldering {
		t.Fatalf("expected status_Soldering set")
	}
}
