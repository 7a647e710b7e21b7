package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	qc "assemblyline-cloud/internal/qc/domain"
	"assemblyline-cloud/internal/workflow"
)

const defaultQcTable = "qc_records"

const qcColumns = `id, imei_no, emp_name,
probe_pin, power_supply, capacitor_backup, terminal,
signal_integraty, cabel_strain, led_check, gps_clod,
gsm_network, product_id, physically_assembly, housing_seal,
label_place_ment, qr_code_relaliablty, final_visual_inspection,
packing_matarial_integraty, pass, created_at`

// Repository is a Postgres implementation for QC records.
type Repository struct {
	db    *sql.DB
	table string
}

// NewRepository constructs a repository.
func NewRepository(db *sql.DB, opts ...Option) *Repository {
	repo := &Repository{db: db, table: defaultQcTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// Option configures the repository.
type Option func(*Repository)

// WithTable overrides the default table name.
func WithTable(table string) Option {
	return func(repo *Repository) {
		if table != "" {
			repo.table = table
		}
	}
}

// Create inserts a QC record.
func (r *Repository) Create(ctx context.Context, record *qc.Record) error {
	if r == nil || r.db == nil {
		return errors.New("qc repo: nil db")
	}
	if record == nil {
		return qc.ErrNilRecord
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	imei_no, emp_name,
	probe_pin, power_supply, capacitor_backup, terminal,
	signal_integraty, cabel_strain, led_check, gps_clod,
	gsm_network, product_id, physically_assembly, housing_seal,
	label_place_ment, qr_code_relaliablty, final_visual_inspection,
	packing_matarial_integraty, pass, created_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
	$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
)
RETURNING id`, r.table)

	return r.db.QueryRowContext(
		ctx,
		query,
		record.IMEINo,
		record.EmpName,
		record.ProbePin,
		record.PowerSupply,
		record.CapacitorBackup,
		record.Terminal,
		record.SignalIntegraty,
		record.CabelStrain,
		record.LedCheck,
		record.GpsClod,
		record.GsmNetwork,
		record.ProductID,
		record.PhysicallyAssembly,
		record.HousingSeal,
		record.LabelPlaceMent,
		record.QrCodeRelaliablty,
		record.FinalVisualInspection,
		record.PackingMatarialIntegraty,
		record.Pass,
		record.CreatedAt.UTC(),
	).Scan(&record.ID)
}

// FindByIMEI loads one record by IMEI.
func (r *Repository) FindByIMEI(ctx context.Context, imeiNo string) (*qc.Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("qc repo: nil db")
	}
	if imeiNo == "" {
		return nil, workflow.ErrEmptyIMEI
	}

	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE imei_no = $1
LIMIT 1`, qcColumns, r.table)

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, imeiNo))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// ListByDay loads records created within one day.
func (r *Repository) ListByDay(ctx context.Context, dayStart time.Time) ([]qc.Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("qc repo: nil db")
	}
	dayStart = dayStart.UTC()

	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE created_at >= $1 AND created_at < $2
ORDER BY created_at DESC, id DESC`, qcColumns, r.table)

	return r.queryRecords(ctx, query, dayStart, dayStart.Add(24*time.Hour))
}

// List loads all records, newest first.
func (r *Repository) List(ctx context.Context) ([]qc.Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("qc repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT %s
FROM %s
ORDER BY created_at DESC, id DESC`, qcColumns, r.table)

	return r.queryRecords(ctx, query)
}

func (r *Repository) queryRecords(ctx context.Context, query string, args ...any) ([]qc.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []qc.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*qc.Record, error) {
	var record qc.Record
	if err := row.Scan(
		&record.ID,
		&record.IMEINo,
		&record.EmpName,
		&record.ProbePin,
		&record.PowerSupply,
		&record.CapacitorBackup,
		&record.Terminal,
		&record.SignalIntegraty,
		&record.CabelStrain,
		&record.LedCheck,
		&record.GpsClod,
		&record.GsmNetwork,
		&record.ProductID,
		&record.PhysicallyAssembly,
		&record.HousingSeal,
		&record.LabelPlaceMent,
		&record.QrCodeRelaliablty,
		&record.FinalVisualInspection,
		&record.PackingMatarialIntegraty,
		&record.Pass,
		&record.CreatedAt,
	); err != nil {
		return nil, err
	}
	record.CreatedAt = record.CreatedAt.UTC()
	return &record, nil
}
