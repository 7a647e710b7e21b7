package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	soldering "assemblyline-cloud/internal/soldering/domain"
	"assemblyline-cloud/internal/workflow"
)

const defaultSolderingTable = "soldering_records"

const solderingColumns = `id, barcode_imei_id, imei_no,
plus12v, gnd2, ignition, din1, din2, scs, led,
sos4v, an1, an2, din3, op2, gnd13, op1, tx, rx, gnd17,
status_soldering, battery_connection_status, created_at`

// Repository is a Postgres implementation for soldering records.
type Repository struct {
	db    *sql.DB
	table string
}

// NewRepository constructs a repository.
func NewRepository(db *sql.DB, opts ...Option) *Repository {
	repo := &Repository{db: db, table: defaultSolderingTable}
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

// Create inserts a soldering record.
func (r *Repository) Create(ctx context.Context, record *soldering.Record) error {
	if r == nil || r.db == nil {
		return errors.New("soldering repo: nil db")
	}
	if record == nil {
		return soldering.ErrNilRecord
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	barcode_imei_id, imei_no,
	plus12v, gnd2, ignition, din1, din2, scs, led,
	sos4v, an1, an2, din3, op2, gnd13, op1, tx, rx, gnd17,
	status_soldering, battery_connection_status, created_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
	$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
)
RETURNING id`, r.table)

	return r.db.QueryRowContext(
		ctx,
		query,
		record.BarcodeImeiID,
		record.IMEINo,
		record.Plus12V,
		record.Gnd2,
		record.Ignition,
		record.Din1,
		record.Din2,
		record.Scs,
		record.Led,
		record.Sos4V,
		record.An1,
		record.An2,
		record.Din3,
		record.Op2,
		record.Gnd13,
		record.Op1,
		record.Tx,
		record.Rx,
		record.Gnd17,
		record.StatusSoldering,
		record.BatteryConnectionStatus,
		record.CreatedAt.UTC(),
	).Scan(&record.ID)
}

// List loads all records, newest first.
func (r *Repository) List(ctx context.Context) ([]soldering.Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("soldering repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT %s
FROM %s
ORDER BY created_at DESC, id DESC`, solderingColumns, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []soldering.Record
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

// FindByIMEI loads one record by IMEI.
func (r *Repository) FindByIMEI(ctx context.Context, imeiNo string) (*soldering.Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("soldering repo: nil db")
	}
	if imeiNo == "" {
		return nil, workflow.ErrEmptyIMEI
	}

	query := fmt.Sprintf(`
SELECT %s
FROM %s
WHERE imei_no = $1
LIMIT 1`, solderingColumns, r.table)

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, imeiNo))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

// MarkVerified sets the status_Soldering gate flag.
func (r *Repository) MarkVerified(ctx context.Context, imeiNo string) error {
	return r.setFlag(ctx, imeiNo, "status_soldering")
}

// MarkBatteryDone flips batteryConnectionStatus.
func (r *Repository) MarkBatteryDone(ctx context.Context, imeiNo string) error {
	return r.setFlag(ctx, imeiNo, "battery_connection_status")
}

func (r *Repository) setFlag(ctx context.Context, imeiNo, column string) error {
	if r == nil || r.db == nil {
		return errors.New("soldering repo: nil db")
	}
	if imeiNo == "" {
		return workflow.ErrEmptyIMEI
	}

	query := fmt.Sprintf("UPDATE %s SET %s = TRUE WHERE imei_no = $1", r.table, column)
	result, err := r.db.ExecContext(ctx, query, imeiNo)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return workflow.ErrUnitNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*soldering.Record, error) {
	var record soldering.Record
	if err := row.Scan(
		&record.ID,
		&record.BarcodeImeiID,
		&record.IMEINo,
		&record.Plus12V,
		&record.Gnd2,
		&record.Ignition,
		&record.Din1,
		&record.Din2,
		&record.Scs,
		&record.Led,
		&record.Sos4V,
		&record.An1,
		&record.An2,
		&record.Din3,
		&record.Op2,
		&record.Gnd13,
		&record.Op1,
		&record.Tx,
		&record.Rx,
		&record.Gnd17,
		&record.StatusSoldering,
		&record.BatteryConnectionStatus,
		&record.CreatedAt,
	); err != nil {
		return nil, err
	}
	record.CreatedAt = record.CreatedAt.UTC()
	return &record, nil
}
