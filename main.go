package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	assignmentsapp "assemblyline-cloud/internal/assignments/application"
	assignmentsrepo "assemblyline-cloud/internal/assignments/infrastructure/postgres"
	assignmentshttp "assemblyline-cloud/internal/assignments/interfaces/http"
	"assemblyline-cloud/internal/auth"
	barcodeapp "assemblyline-cloud/internal/barcode/application"
	barcoderepo "assemblyline-cloud/internal/barcode/infrastructure/postgres"
	barcodehttp "assemblyline-cloud/internal/barcode/interfaces/http"
	batteryapp "assemblyline-cloud/internal/battery/application"
	batteryrepo "assemblyline-cloud/internal/battery/infrastructure/postgres"
	batteryhttp "assemblyline-cloud/internal/battery/interfaces/http"
	firmwareapp "assemblyline-cloud/internal/firmware/application"
	firmwarerepo "assemblyline-cloud/internal/firmware/infrastructure/postgres"
	firmwarehttp "assemblyline-cloud/internal/firmware/interfaces/http"
	"assemblyline-cloud/internal/observability/metrics"
	qcapp "assemblyline-cloud/internal/qc/application"
	qcrepo "assemblyline-cloud/internal/qc/infrastructure/postgres"
	qchttp "assemblyline-cloud/internal/qc/interfaces/http"
	reportsapp "assemblyline-cloud/internal/reports/application"
	reportsinterfaces "assemblyline-cloud/internal/reports/interfaces"
	solderingapp "assemblyline-cloud/internal/soldering/application"
	solderingrepo "assemblyline-cloud/internal/soldering/infrastructure/postgres"
	solderinghttp "assemblyline-cloud/internal/soldering/interfaces/http"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init(db, logger)

	barcodeRepo := barcoderepo.NewRepository(db)
	solderingRepo := solderingrepo.NewRepository(db)
	batteryRepo := batteryrepo.NewRepository(db)
	firmwareRepo := firmwarerepo.NewRepository(db)
	qcRepo := qcrepo.NewRepository(db)
	assignmentsRepo := assignmentsrepo.NewRepository(db)

	barcodeService, err := barcodeapp.NewService(barcodeRepo)
	if err != nil {
		logger.Fatalf("barcode service error: %v", err)
	}
	solderingService, err := solderingapp.NewService(solderingRepo, barcodeRepo)
	if err != nil {
		logger.Fatalf("soldering service error: %v", err)
	}
	batteryService, err := batteryapp.NewService(batteryRepo, solderingRepo)
	if err != nil {
		logger.Fatalf("battery service error: %v", err)
	}
	firmwareService, err := firmwareapp.NewService(firmwareRepo, batteryRepo)
	if err != nil {
		logger.Fatalf("firmware service error: %v", err)
	}
	qcService, err := qcapp.NewService(qcRepo, firmwareRepo)
	if err != nil {
		logger.Fatalf("qc service error: %v", err)
	}
	assignmentsService, err := assignmentsapp.NewService(assignmentsRepo)
	if err != nil {
		logger.Fatalf("assignments service error: %v", err)
	}
	reportsService, err := reportsapp.NewService(qcRepo, firmwareRepo, barcodeRepo)
	if err != nil {
		logger.Fatalf("reports service error: %v", err)
	}

	barcodeHandler, err := barcodehttp.NewHandler(barcodeService)
	if err != nil {
		logger.Fatalf("barcode handler error: %v", err)
	}
	solderingHandler, err := solderinghttp.NewHandler(solderingService)
	if err != nil {
		logger.Fatalf("soldering handler error: %v", err)
	}
	batteryHandler, err := batteryhttp.NewHandler(batteryService)
	if err != nil {
		logger.Fatalf("battery handler error: %v", err)
	}
	firmwareHandler, err := firmwarehttp.NewHandler(firmwareService)
	if err != nil {
		logger.Fatalf("firmware handler error: %v", err)
	}
	qcHandler, err := qchttp.NewHandler(qcService)
	if err != nil {
		logger.Fatalf("qc handler error: %v", err)
	}
	assignmentsHandler, err := assignmentshttp.NewHandler(assignmentsService)
	if err != nil {
		logger.Fatalf("assignments handler error: %v", err)
	}
	exportHandler, err := reportsinterfaces.NewExportHandler(reportsService)
	if err != nil {
		logger.Fatalf("export handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

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
	mux.Handle("/api/v1/production/FetchLoginEmployeeWorkList", assignmentsHandler)
	mux.Handle("/api/v1/production/exports/", exportHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL string
	HTTPAddr    string
	JWTSecret   string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL: getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:    getenvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:   getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
