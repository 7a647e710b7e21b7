package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	battery "assemblyline-cloud/internal/battery/domain"
	"assemblyline-cloud/internal/workflow"
)

const defaultBatteryTable = "battery_records"

// Repository is a Postgres implementation for battery records.
type Repository struct {
	db    *sql.DB
	table string
}

// NewRepository constructs a repository.
func NewRepository(db *sql.DB, opts ...Option) *Repository {
	repo := &Repository{db: db, table: defaultBatteryTable}
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

// Create inserts a battery record.
func (r *Repository) Create(ctx context.Context, record *battery.Record) error {
	if r == nil || r.db == nil {
		return errors.New("battery repo: nil db")
	}
	if record == nil {
		return battery.ErrNilRecord
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	imei_no,
	battery_type,
	voltage,
	battery_connected_status,
	capacitor_connected_status,
	overall_assembly_status,
	created_at
) VALUES (
	$1, $2, $3, $4, $5, $6, $7
)
RETURNING id`, r.table)

	return r.db.QueryRowContext(
		ctx,
		query,
		record.IMEINo,
		record.BatteryType,
		record.Voltage,
		record.BatteryConnectedStatus,
		record.CapacitorConnectedStatus,
		record.OverallAssemblyStatus,
		record.CreatedAt.UTC(),
	).Scan(&record.ID)
}

// List loads all records, newest first.
func (r *Repository) List(ctx context.Context) ([]battery.Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("battery repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT id, imei_no, battery_type, voltage, battery_connected_status, capacitor_connected_status, overall_assembly_status, created_at
FROM %s
ORDER BY created_at DESC, id DESC`, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []battery.Record
	for rows.Next() {
		var record battery.Record
		if err := rows.Scan(
			&record.ID,
			&record.IMEINo,
			&record.BatteryType,
			&record.Voltage,
			&record.BatteryConnectedStatus,
			&record.CapacitorConnectedStatus,
			&record.OverallAssemblyStatus,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		record.CreatedAt = record.CreatedAt.UTC()
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// FindByIMEI loads one record by IMEI.
func (r *Repository) FindByIMEI(ctx context.Context, imeiNo string) (*battery.Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("battery repo: nil db")
	}
	if imeiNo == "" {
		return nil, workflow.ErrEmptyIMEI
	}

	query := fmt.Sprintf(`
SELECT id, imei_no, battery_type, voltage, battery_connected_status, capacitor_connected_status, overall_assembly_status, created_at
FROM %s
WHERE imei_no = $1
LIMIT 1`, r.table)

	var record battery.Record
	if err := r.db.QueryRowContext(ctx, query, imeiNo).Scan(
		&record.ID,
		&record.IMEINo,
		&record.BatteryType,
		&record.Voltage,
		&record.BatteryConnectedStatus,
		&record.CapacitorConnectedStatus,
		&record.OverallAssemblyStatus,
		&record.CreatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	record.CreatedAt = record.CreatedAt.UTC()
	return &record, nil
}

// MarkAssemblyDone flips overAllassemblyStatus.
func (r *Repository) MarkAssemblyDone(ctx context.Context, imeiNo string) error {
	if r == nil || r.db == nil {
		return errors.New("battery repo: nil db")
	}
	if imeiNo == "" {
		return workflow.ErrEmptyIMEI
	}

	query := fmt.Sprintf("UPDATE %s SET overall_assembly_status = TRUE WHERE imei_no = $1", r.table)
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
