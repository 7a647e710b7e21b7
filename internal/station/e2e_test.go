package station_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	barcodeapp "assemblyline-cloud/internal/barcode/application"
	barcodemem "assemblyline-cloud/internal/barcode/infrastructure/memory"
	barcodehttp "assemblyline-cloud/internal/barcode/interfaces/http"
	batteryapp "assemblyline-cloud/internal/battery/application"
	batterymem "assemblyline-cloud/internal/battery/infrastructure/memory"
	batteryhttp "assemblyline-cloud/internal/battery/interfaces/http"
	firmwareapp "assemblyline-cloud/internal/firmware/application"
	firmwaremem "assemblyline-cloud/internal/firmware/infrastructure/memory"
	firmwarehttp "assemblyline-cloud/internal/firmware/interfaces/http"
	qcapp "assemblyline-cloud/internal/qc/application"
	qcmem "assemblyline-cloud/internal/qc/infrastructure/memory"
	qchttp "assemblyline-cloud/internal/qc/interfaces/http"
	solderingapp "assemblyline-cloud/internal/soldering/application"
	soldering "assemblyline-cloud/internal/soldering/domain"
	solderingmem "assemblyline-cloud/internal/soldering/infrastructure/memory"
	solderinghttp "assemblyline-cloud/internal/soldering/interfaces/http"
	"assemblyline-cloud/internal/station"
	"assemblyline-cloud/internal/workflow"
)

const testIMEI = "123456789012345"

type lineFixture struct {
	server        *httptest.Server
	client        *station.Client
	serials       *station.SerialCounter
	solderingRepo *solderingmem.Repository
}

type captureNotifier struct {
	successes []string
	errors    []string
}

func (n *captureNotifier) Success(message string) { n.successes = append(n.successes, message) }
func (n *captureNotifier) Error(message string)   { n.errors = append(n.errors, message) }

type captureSink struct {
	imeiNo string
	pdf    []byte
}

func (s *captureSink) SaveQCReport(imeiNo string, pdf []byte) error {
	s.imeiNo = imeiNo
	s.pdf = pdf
	return nil
}

// newLineFixture assembles the whole production store on memory repos and
// returns a client pointed at it.
func newLineFixture(t *testing.T) *lineFixture {
	t.Helper()

	barcodeRepo := barcodemem.NewRepository()
	solderingRepo := solderingmem.NewRepository()
	batteryRepo := batterymem.NewRepository()
	firmwareRepo := firmwaremem.NewRepository()
	qcRepo := qcmem.NewRepository()

	barcodeService, err := barcodeapp.NewService(barcodeRepo)
	if err != nil {
		t.Fatalf("barcode service: %v", err)
	}
	solderingService, err := solderingapp.NewService(solderingRepo, barcodeRepo)
	if err != nil {
		t.Fatalf("soldering service: %v", err)
	}
	batteryService, err := batteryapp.NewService(batteryRepo, solderingRepo)
	if err != nil {
		t.Fatalf("battery service: %v", err)
	}
	firmwareService, err := firmwareapp.NewService(firmwareRepo, batteryRepo)
	if err != nil {
		t.Fatalf("firmware service: %v", err)
	}
	qcService, err := qcapp.NewService(qcRepo, firmwareRepo)
	if err != nil {
		t.Fatalf("qc service: %v", err)
	}

	barcodeHandler, _ := barcodehttp.NewHandler(barcodeService)
	solderingHandler, _ := solderinghttp.NewHandler(solderingService)
	batteryHandler, _ := batteryhttp.NewHandler(batteryService)
	firmwareHandler, _ := firmwarehttp.NewHandler(firmwareService)
	qcHandler, _ := qchttp.NewHandler(qcService)

	mux := http.NewServeMux()
	for _, path := range []string{"addBarCode", "fetchAllBarCodeIMEINo", "veriFyImeiNoAgain"} {
		mux.Handle("/api/v1/production/"+path, barcodeHandler)
	}
	for _, path := range []string{"addSolderingDetails", "fetchSolderingDetailsandImeiNo", "verifySolderingDetails"} {
		mux.Handle("/api/v1/production/"+path, solderingHandler)
	}
	for _, path := range []string{"addBatteryConnectionDetails", "fetchBatteryConnectionDetails"} {
		mux.Handle("/api/v1/production/"+path, batteryHandler)
	}
	for _, path := range []string{"createFirmWare", "fetchFirmwareByImeiNo", "editFirmWareDetails", "deleteFirmWareDetails", "getNextFirmwareSlNo", "fetchFirmWareDetails"} {
		mux.Handle("/api/v1/production/"+path, firmwareHandler)
	}
	for _, path := range []string{"QualityCheck", "showAllDateReports"} {
		mux.Handle("/api/v1/production/"+path, qcHandler)
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	client, err := station.NewClient(server.URL, "test-token")
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	serials := station.NewSerialCounter(station.Config{
		BatchPrefix:  "TIA/BATCH",
		LotPrefix:    "TIA/LOT",
		SerialPrefix: "TIA",
	})
	return &lineFixture{
		server:        server,
		client:        client,
		serials:       serials,
		solderingRepo: solderingRepo,
	}
}

// registerUnit runs the barcode station for one unit.
func (f *lineFixture) registerUnit(t *testing.T, ctx context.Context) *station.BarcodeStation {
	t.Helper()
	barcodeStation, err := station.NewBarcodeStation(f.client, f.serials, nil)
	if err != nil {
		t.Fatalf("barcode station: %v", err)
	}
	barcodeStation.SetIMEI(testIMEI)
	if err := barcodeStation.Submit(ctx); err != nil {
		t.Fatalf("barcode submit: %v", err)
	}
	return barcodeStation
}

// completeSoldering drives a unit through verify and the 17-point submit.
func (f *lineFixture) completeSoldering(t *testing.T, ctx context.Context) {
	t.Helper()
	solderingStation, err := station.NewSolderingStation(f.client, nil)
	if err != nil {
		t.Fatalf("soldering station: %v", err)
	}
	if err := solderingStation.Refresh(ctx); err != nil {
		t.Fatalf("soldering refresh: %v", err)
	}
	units := solderingStation.Units()
	if len(units) != 1 {
		t.Fatalf("expected 1 unit, got %d", len(units))
	}
	if err := solderingStation.VerifyAndStart(ctx, units[0]); err != nil {
		t.Fatalf("verify and start: %v", err)
	}
	solderingStation.Session().ToggleAll()
	if err := solderingStation.Submit(ctx); err != nil {
		t.Fatalf("soldering submit: %v", err)
	}
}

// completeBattery drives a unit through the battery form.
func (f *lineFixture) completeBattery(t *testing.T, ctx context.Context) {
	t.Helper()
	batteryStation, err := station.NewBatteryStation(f.client, nil)
	if err != nil {
		t.Fatalf("battery station: %v", err)
	}
	if err := batteryStation.Refresh(ctx); err != nil {
		t.Fatalf("battery refresh: %v", err)
	}
	details := batteryStation.Details()
	if len(details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(details))
	}
	if err := batteryStation.VerifySoldering(ctx, details[0]); err != nil {
		t.Fatalf("verify soldering: %v", err)
	}
	if !batteryStation.Open(details[0]) {
		t.Fatalf("battery open refused, status %s", batteryStation.StatusOf(details[0]))
	}
	if err := batteryStation.SetVoltage("3.7"); err != nil {
		t.Fatalf("set voltage: %v", err)
	}
	batteryStation.Session().ToggleAll()
	if err := batteryStation.Submit(ctx); err != nil {
		t.Fatalf("battery submit: %v", err)
	}
}

func TestScenarioA_RegisteredUnitLockedAtSoldering(t *testing.T) {
	fixture := newLineFixture(t)
	ctx := context.Background()
	fixture.registerUnit(t, ctx)

	solderingStation, err := station.NewSolderingStation(fixture.client, nil)
	if err != nil {
		t.Fatalf("soldering station: %v", err)
	}
	if err := solderingStation.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	units := solderingStation.Units()
	if len(units) != 1 || units[0].IMEINo != testIMEI {
		t.Fatalf("units = %+v", units)
	}
	status := solderingStation.StatusOf(units[0])
	if status != workflow.StatusAwaitingVerification {
		t.Fatalf("status = %s, want awaiting verification", status)
	}
	if solderingStation.Open(units[0]) {
		t.Fatalf("unverified unit must not open")
	}
}

func TestScenarioB_SolderingSubmitGatedOnAll17(t *testing.T) {
	fixture := newLineFixture(t)
	ctx := context.Background()
	fixture.registerUnit(t, ctx)

	solderingStation, err := station.NewSolderingStation(fixture.client, nil)
	if err != nil {
		t.Fatalf("soldering station: %v", err)
	}
	if err := solderingStation.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	unit := solderingStation.Units()[0]
	if err := solderingStation.VerifyAndStart(ctx, unit); err != nil {
		t.Fatalf("verify and start: %v", err)
	}

	session := solderingStation.Session()
	for _, key := range soldering.PointKeys[:16] {
		session.Toggle(key)
	}
	if session.CanSubmit() {
		t.Fatalf("submit enabled with 16 of 17 checked")
	}
	session.Toggle(soldering.PointKeys[16])
	if !session.CanSubmit() {
		t.Fatalf("submit disabled with all 17 checked")
	}
	if err := solderingStation.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if err := solderingStation.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	unit = solderingStation.Units()[0]
	if got := solderingStation.StatusOf(unit); got != workflow.StatusCompleted {
		t.Fatalf("status after submit = %s", got)
	}
	if solderingStation.Open(unit) {
		t.Fatalf("completed unit must stay locked")
	}
}

func TestScenarioC_VerifySolderingNamesGateViolation(t *testing.T) {
	fixture := newLineFixture(t)
	ctx := context.Background()

	// Seed a soldering record with one failed checkpoint straight into the
	// store: the normal submit path refuses partial checklists.
	record := &soldering.Record{
		BarcodeImeiID: "bc-1",
		IMEINo:        testIMEI,
		CreatedAt:     time.Now().UTC(),
	}
	values := make(map[string]bool, len(soldering.PointKeys))
	for _, key := range soldering.PointKeys {
		values[key] = key != "gnd17"
	}
	record.SetValues(values)
	if err := fixture.solderingRepo.Create(ctx, record); err != nil {
		t.Fatalf("seed soldering: %v", err)
	}

	notifier := &captureNotifier{}
	batteryStation, err := station.NewBatteryStation(fixture.client, notifier)
	if err != nil {
		t.Fatalf("battery station: %v", err)
	}
	if err := batteryStation.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	detail := batteryStation.Details()[0]

	err = batteryStation.VerifySoldering(ctx, detail)
	if err == nil {
		t.Fatalf("expected gate violation")
	}
	if !station.IsGateViolation(err) {
		t.Fatalf("not classified as gate violation: %v", err)
	}
	if len(notifier.errors) != 1 {
		t.Fatalf("notifications = %+v", notifier.errors)
	}
	if notifier.errors[0] != "Not all 17 soldering fields were completed for IMEI "+testIMEI {
		t.Fatalf("wrong notification: %q", notifier.errors[0])
	}
	if batteryStation.Open(detail) {
		t.Fatalf("unit must stay locked after failed verify")
	}
}

func TestScenarioD_QualityCheckLocksAndRendersPDF(t *testing.T) {
	fixture := newLineFixture(t)
	ctx := context.Background()
	fixture.registerUnit(t, ctx)
	fixture.completeSoldering(t, ctx)
	fixture.completeBattery(t, ctx)

	firmwareStation, err := station.NewFirmwareStation(fixture.client, fixture.serials, nil)
	if err != nil {
		t.Fatalf("firmware station: %v", err)
	}
	if err := firmwareStation.Refresh(ctx); err != nil {
		t.Fatalf("firmware refresh: %v", err)
	}
	record, err := firmwareStation.Create(ctx, testIMEI, "89914405612345678901")
	if err != nil {
		t.Fatalf("firmware create: %v", err)
	}
	if record == nil || record.SlNo == "" {
		t.Fatalf("serial not allocated: %+v", record)
	}

	sink := &captureSink{}
	qcStation, err := station.NewQCStation(fixture.client, "Chinmay Puhan", sink, nil)
	if err != nil {
		t.Fatalf("qc station: %v", err)
	}
	if err := qcStation.Refresh(ctx); err != nil {
		t.Fatalf("qc refresh: %v", err)
	}
	records := qcStation.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if !qcStation.Open(records[0]) {
		t.Fatalf("qc open refused")
	}
	qcStation.Session().ToggleAll()
	if err := qcStation.Submit(ctx); err != nil {
		t.Fatalf("qc submit: %v", err)
	}

	if qcStation.Session().Focused() != "" {
		t.Fatalf("accordion must close after submit")
	}
	if sink.imeiNo != testIMEI || !bytes.HasPrefix(sink.pdf, []byte("%PDF-")) {
		t.Fatalf("pdf side effect missing: imei=%q len=%d", sink.imeiNo, len(sink.pdf))
	}

	if err := qcStation.Refresh(ctx); err != nil {
		t.Fatalf("qc refresh: %v", err)
	}
	if got := qcStation.StatusOf(qcStation.Records()[0]); got != workflow.StatusCompleted {
		t.Fatalf("status after qc = %s", got)
	}
}
