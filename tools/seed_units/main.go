package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Stage depth controls how far down the line each seeded unit has
// progressed. Rows and status flags for every earlier stage are
// written as completed.
var stageDepth = map[string]int{
	"barcode":   1,
	"soldering": 2,
	"battery":   3,
	"firmware":  4,
	"qc":        5,
}

type config struct {
	dsn          string
	baseURL      string
	token        string
	imeiPrefix   string
	unitCount    int
	stage        string
	empName      string
	batchPrefix  string
	lotPrefix    string
	serialPrefix string
	day          string
	fetchReport  bool
	reportOut    string
}

func main() {
	cfg := parseConfig()
	if cfg.dsn == "" {
		log.Fatal("PG_DSN or DATABASE_URL is required")
	}
	if cfg.unitCount <= 0 {
		log.Fatal("unit-count must be > 0")
	}
	depth, ok := stageDepth[cfg.stage]
	if !ok {
		log.Fatalf("unknown stage %q (barcode|soldering|battery|firmware|qc)", cfg.stage)
	}
	if len(cfg.imeiPrefix) >= 15 {
		log.Fatal("imei-prefix must be shorter than 15 digits")
	}

	day, err := parseDay(cfg.day)
	if err != nil {
		log.Fatalf("invalid day: %v", err)
	}

	db, err := sql.Open("pgx", cfg.dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	log.Printf("seeding units: count=%d stage=%s day=%s", cfg.unitCount, cfg.stage, day.Format("02-01-2006"))
	for seq := 1; seq <= cfg.unitCount; seq++ {
		imeiNo := buildIMEI(cfg.imeiPrefix, seq)
		if err := seedUnit(ctx, db, cfg, imeiNo, seq, depth, day); err != nil {
			log.Fatalf("seed unit %s: %v", imeiNo, err)
		}
		log.Printf("seeded unit %s (%d/%d)", imeiNo, seq, cfg.unitCount)
	}

	if cfg.fetchReport {
		if cfg.baseURL == "" {
			log.Fatal("base-url is required when fetch-report is enabled")
		}
		if depth < stageDepth["qc"] {
			log.Fatal("fetch-report needs stage=qc")
		}
		log.Printf("fetching qc report: day=%s", day.Format("02-01-2006"))
		pdf, err := fetchQCReport(ctx, cfg.baseURL, cfg.token, day)
		if err != nil {
			log.Fatalf("fetch qc report: %v", err)
		}
		if err := writeFile(cfg.reportOut, pdf); err != nil {
			log.Fatalf("write qc report: %v", err)
		}
		log.Printf("qc report written to %s", cfg.reportOut)
	}

	log.Printf("seed completed")
}

func parseConfig() config {
	cfg := config{}
	flag.StringVar(&cfg.dsn, "pg-dsn", envOrDefault("PG_DSN", envOrDefault("DATABASE_URL", "")), "Postgres DSN")
	flag.StringVar(&cfg.baseURL, "base-url", envOrDefault("BASE_URL", ""), "API base URL for report fetch")
	flag.StringVar(&cfg.token, "token", envOrDefault("AUTH_TOKEN", ""), "bearer token for report fetch")
	flag.StringVar(&cfg.imeiPrefix, "imei-prefix", envOrDefault("IMEI_PREFIX", "86251203"), "IMEI prefix, padded to 15 digits")
	flag.IntVar(&cfg.unitCount, "unit-count", envOrInt("UNIT_COUNT", 10), "number of units to seed")
	flag.StringVar(&cfg.stage, "stage", envOrDefault("STAGE", "qc"), "seed units through this stage")
	flag.StringVar(&cfg.empName, "emp-name", envOrDefault("EMP_NAME", "seed-operator"), "employee name on QC records")
	flag.StringVar(&cfg.batchPrefix, "batch-prefix", envOrDefault("BATCH_PREFIX", "TIA/BATCH"), "batch number prefix")
	flag.StringVar(&cfg.lotPrefix, "lot-prefix", envOrDefault("LOT_PREFIX", "TIA/LOT"), "lot number prefix")
	flag.StringVar(&cfg.serialPrefix, "serial-prefix", envOrDefault("SERIAL_PREFIX", "TIA"), "firmware serial prefix")
	flag.StringVar(&cfg.day, "day", envOrDefault("DAY", ""), "production day (YYYY-MM-DD, default today)")
	flag.BoolVar(&cfg.fetchReport, "fetch-report", envOrBool("FETCH_REPORT", false), "fetch the day's QC report PDF via the API")
	flag.StringVar(&cfg.reportOut, "report-out", envOrDefault("REPORT_OUT", "qc-report.pdf"), "output file for the QC report PDF")
	flag.Parse()
	return cfg
}

func parseDay(value string) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return parsed.UTC(), nil
}

func buildIMEI(prefix string, seq int) string {
	return prefix + fmt.Sprintf("%0*d", 15-len(prefix), seq)
}

func seedUnit(ctx context.Context, db *sql.DB, cfg config, imeiNo string, seq int, depth int, day time.Time) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	dayKey := day.Format("02012006")
	createdAt := day.Add(9 * time.Hour).Add(time.Duration(seq) * time.Minute).UTC()
	batchNo := fmt.Sprintf("%s/%s/VLT%06d", cfg.batchPrefix, dayKey, seq)
	lotNo := fmt.Sprintf("%s/%s/VLT%06d", cfg.lotPrefix, dayKey, seq)

	var barcodeID int64
	if err := tx.QueryRowContext(ctx, `
INSERT INTO barcode_units (imei_no, batch_no, lot_no, status_one, soldering_status, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`,
		imeiNo, batchNo, lotNo, depth >= 2, depth >= 2, createdAt,
	).Scan(&barcodeID); err != nil {
		_ = tx.Rollback()
		return err
	}

	if depth >= 2 {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO soldering_records (
	barcode_imei_id, imei_no,
	plus12v, gnd2, ignition, din1, din2, scs, led,
	sos4v, an1, an2, din3, op2, gnd13, op1, tx, rx, gnd17,
	status_soldering, battery_connection_status, created_at
) VALUES (
	$1, $2,
	TRUE, TRUE, TRUE, TRUE, TRUE, TRUE, TRUE,
	TRUE, TRUE, TRUE, TRUE, TRUE, TRUE, TRUE, TRUE, TRUE, TRUE,
	$3, $4, $5
)`,
			barcodeID, imeiNo, depth >= 3, depth >= 3, createdAt,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if depth >= 3 {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO battery_records (
	imei_no, battery_type, voltage,
	battery_connected_status, capacitor_connected_status, overall_assembly_status, created_at
) VALUES ($1, $2, $3, TRUE, TRUE, $4, $5)`,
			imeiNo, "Lithium-Ion", 3.7, depth >= 4, createdAt,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if depth >= 4 {
		slNo := fmt.Sprintf("%s/%sA%d", cfg.serialPrefix, dayKey, 8000+seq)
		iccidNo := fmt.Sprintf("8991%015d", seq)
		if _, err := tx.ExecContext(ctx, `
INSERT INTO firmware_records (imei_no, iccid_no, sl_no, firmware_status, created_at)
VALUES ($1, $2, $3, $4, $5)`,
			imeiNo, iccidNo, slNo, depth >= 5, createdAt,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if depth >= 5 {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO qc_records (
	imei_no, emp_name,
	probe_pin, power_supply, capacitor_backup, terminal,
	signal_integraty, cabel_strain, led_check, gps_clod,
	gsm_network, product_id, physically_assembly, housing_seal,
	label_place_ment, qr_code_relaliablty, final_visual_inspection,
	packing_matarial_integraty, pass, created_at
) VALUES (
	$1, $2,
	TRUE, TRUE, TRUE, TRUE, TRUE, TRUE, TRUE, TRUE,
	TRUE, TRUE, TRUE, TRUE, TRUE, TRUE, TRUE, TRUE,
	TRUE, $3
)`,
			imeiNo, cfg.empName, createdAt,
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func fetchQCReport(ctx context.Context, baseURL string, token string, day time.Time) ([]byte, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	baseURL = strings.TrimRight(baseURL, "/")
	url := fmt.Sprintf("%s/api/v1/production/exports/qc.pdf?date=%s", baseURL, day.Format("02-01-2006"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch qc report: http %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func writeFile(path string, data []byte) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func envOrBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return fallback
	}
}
