package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	barcode "assemblyline-cloud/internal/barcode/domain"
	"assemblyline-cloud/internal/workflow"
)

const defaultBarcodeTable = "barcode_units"

// Repository is a Postgres implementation for barcode records.
type Repository struct {
	db    DBTX
	table string
}

// NewRepository constructs a repository.
func NewRepository(db DBTX, opts ...Option) *Repository {
	repo := &Repository{db: db, table: defaultBarcodeTable}
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

// Create inserts a barcode record.
func (r *Repository) Create(ctx context.Context, record *barcode.Record) error {
	if r == nil || r.db == nil {
		return errors.New("barcode repo: nil db")
	}
	if record == nil {
		return barcode.ErrNilRecord
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	imei_no,
	batch_no,
	lot_no,
	status_one,
	soldering_status,
	created_at
) VALUES (
	$1, $2, $3, $4, $5, $6
)
RETURNING id`, r.table)

	return r.db.QueryRowContext(
		ctx,
		query,
		record.IMEINo,
		record.BatchNo,
		record.LotNo,
		record.StatusOne,
		record.SolderingStatus,
		record.CreatedAt.UTC(),
	).Scan(&record.ID)
}

// List loads all records, newest first.
func (r *Repository) List(ctx context.Context) ([]barcode.Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("barcode repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT id, imei_no, batch_no, lot_no, status_one, soldering_status, created_at
FROM %s
ORDER BY created_at DESC, id DESC`, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []barcode.Record
	for rows.Next() {
		var record barcode.Record
		if err := rows.Scan(
			&record.ID,
			&record.IMEINo,
			&record.BatchNo,
			&record.LotNo,
			&record.StatusOne,
			&record.SolderingStatus,
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
func (r *Repository) FindByIMEI(ctx context.Context, imeiNo string) (*barcode.Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("barcode repo: nil db")
	}
	if imeiNo == "" {
		return nil, workflow.ErrEmptyIMEI
	}

	query := fmt.Sprintf(`
SELECT id, imei_no, batch_no, lot_no, status_one, soldering_status, created_at
FROM %s
WHERE imei_no = $1
LIMIT 1`, r.table)

	var record barcode.Record
	if err := r.db.QueryRowContext(ctx, query, imeiNo).Scan(
		&record.ID,
		&record.IMEINo,
		&record.BatchNo,
		&record.LotNo,
		&record.StatusOne,
		&record.SolderingStatus,
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

// FindByID loads one record by its id.
func (r *Repository) FindByID(ctx context.Context, id string) (*barcode.Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("barcode repo: nil db")
	}
	if id == "" {
		return nil, errors.New("barcode repo: empty id")
	}

	query := fmt.Sprintf(`
SELECT id, imei_no, batch_no, lot_no, status_one, soldering_status, created_at
FROM %s
WHERE id = $1
LIMIT 1`, r.table)

	var record barcode.Record
	if err := r.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.IMEINo,
		&record.BatchNo,
		&record.LotNo,
		&record.StatusOne,
		&record.SolderingStatus,
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

// MarkVerified sets the status_ONE gate flag.
func (r *Repository) MarkVerified(ctx context.Context, imeiNo string) error {
	return r.setFlag(ctx, imeiNo, "status_one")
}

// MarkSolderingDone flips solderingStatus.
func (r *Repository) MarkSolderingDone(ctx context.Context, imeiNo string) error {
	return r.setFlag(ctx, imeiNo, "soldering_status")
}

func (r *Repository) setFlag(ctx context.Context, imeiNo, column string) error {
	if r == nil || r.db == nil {
		return errors.New("barcode repo: nil db")
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
