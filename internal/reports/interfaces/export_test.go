package interfaces_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	barcode "assemblyline-cloud/internal/barcode/domain"
	barcodemem "assemblyline-cloud/internal/barcode/infrastructure/memory"
	firmware "assemblyline-cloud/internal/firmware/domain"
	firmwaremem "assemblyline-cloud/internal/firmware/infrastructure/memory"
	qc "assemblyline-cloud/internal/qc/domain"
	qcmem "assemblyline-cloud/internal/qc/infrastructure/memory"
	reportsapp "assemblyline-cloud/internal/reports/application"
	reportsinterfaces "assemblyline-cloud/internal/reports/interfaces"
)

var reportDay = time.Date(2026, time.January, 6, 0, 0, 0, 0, time.UTC)

func seedReportData(t *testing.T) *reportsapp.Service {
	t.Helper()
	ctx := context.Background()

	barcodeRepo := barcodemem.NewRepository()
	firmwareRepo := firmwaremem.NewRepository()
	qcRepo := qcmem.NewRepository()

	err := barcodeRepo.Create(ctx, &barcode.Record{
		IMEINo:    "862512031234567",
		BatchNo:   "TIA/BATCH/06012026/VLT000001",
		LotNo:     "TIA/BATCH/06012026/VLT000001",
		CreatedAt: reportDay.Add(8 * time.Hour),
	})
	if err != nil {
		t.Fatalf("seed barcode: %v", err)
	}
	err = firmwareRepo.Create(ctx, &firmware.Record{
		IMEINo:    "862512031234567",
		ICCIDNo:   "89914405612345678901",
		SlNo:      "TIA/06012026A8001",
		CreatedAt: reportDay.Add(10 * time.Hour),
	})
	if err != nil {
		t.Fatalf("seed firmware: %v", err)
	}

	passRecord := &qc.Record{
		IMEINo:    "862512031234567",
		EmpName:   "Chinmay Puhan",
		Pass:      true,
		CreatedAt: reportDay.Add(11 * time.Hour),
	}
	allTrue := make(map[string]bool, len(qc.PointKeys))
	for _, key := range qc.PointKeys {
		allTrue[key] = true
	}
	passRecord.SetValues(allTrue)
	if err := qcRepo.Create(ctx, passRecord); err != nil {
		t.Fatalf("seed qc pass: %v", err)
	}
	// Failed unit with no firmware record; the export keeps the row.
	err = qcRepo.Create(ctx, &qc.Record{
		IMEINo:    "862512039999999",
		EmpName:   "Chinmay Puhan",
		CreatedAt: reportDay.Add(12 * time.Hour),
	})
	if err != nil {
		t.Fatalf("seed qc fail: %v", err)
	}

	service, err := reportsapp.NewService(qcRepo, firmwareRepo, barcodeRepo)
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return service
}

func newExportServer(t *testing.T) *httptest.Server {
	t.Helper()
	handler, err := reportsinterfaces.NewExportHandler(seedReportData(t))
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/api/v1/production/exports/", handler)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func fetchExport(t *testing.T, server *httptest.Server, path string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(server.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, buf.Bytes()
}

func TestExportQCReportPDF(t *testing.T) {
	server := newExportServer(t)
	resp, body := fetchExport(t, server, "/api/v1/production/exports/qc.pdf?date=06-01-2026")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if resp.Header.Get("Content-Type") != "application/pdf" {
		t.Fatalf("content-type %q", resp.Header.Get("Content-Type"))
	}
	if !bytes.HasPrefix(body, []byte("%PDF-")) {
		t.Fatalf("not a pdf, got %q", body[:min(8, len(body))])
	}
}

func TestExportAssemblyChecklistPDF(t *testing.T) {
	server := newExportServer(t)
	resp, body := fetchExport(t, server, "/api/v1/production/exports/assembly.pdf?date=06-01-2026")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if !bytes.HasPrefix(body, []byte("%PDF-")) {
		t.Fatalf("not a pdf")
	}
}

func TestExportProductionXLSX(t *testing.T) {
	server := newExportServer(t)
	resp, body := fetchExport(t, server, "/api/v1/production/exports/production.xlsx?date=06-01-2026")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	want := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if resp.Header.Get("Content-Type") != want {
		t.Fatalf("content-type %q", resp.Header.Get("Content-Type"))
	}
	// xlsx is a zip container
	if !bytes.HasPrefix(body, []byte("PK")) {
		t.Fatalf("not an xlsx")
	}
}

func TestExportRejectsBadDate(t *testing.T) {
	server := newExportServer(t)
	resp, _ := fetchExport(t, server, "/api/v1/production/exports/qc.pdf?date=2026-01-06")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d", resp.StatusCode)
	}
}

func TestProductionRowsJoinStages(t *testing.T) {
	service := seedReportData(t)
	rows, err := service.ProductionRows(context.Background(), reportDay)
	if err != nil {
		t.Fatalf("production rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	byIMEI := make(map[string]reportsapp.ProductionRow, len(rows))
	for _, row := range rows {
		byIMEI[row.IMEINo] = row
	}
	passRow := byIMEI["862512031234567"]
	if !passRow.Pass || passRow.SlNo != "TIA/06012026A8001" || passRow.ICCIDNo != "89914405612345678901" {
		t.Fatalf("joined row mismatch: %+v", passRow)
	}
	if passRow.BatchNo != "TIA/BATCH/06012026/VLT000001" {
		t.Fatalf("batch mismatch: %q", passRow.BatchNo)
	}
	failRow := byIMEI["862512039999999"]
	if failRow.Pass || failRow.SlNo != "" || failRow.ICCIDNo != "" {
		t.Fatalf("orphan row mismatch: %+v", failRow)
	}
}
