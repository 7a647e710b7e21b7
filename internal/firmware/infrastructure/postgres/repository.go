package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	firmware "assemblyline-cloud/internal/firmware/domain"
	"assemblyline-cloud/internal/workflow"
)

const defaultFirmwareTable = "firmware_records"

// serialSeqBase keeps allocated sequences in the range the line's labels
// were already printed with.
const serialSeqBase = 8000

// Repository is a Postgres implementation for firmware records.
type Repository struct {
	db    *sql.DB
	table string
}

// NewRepository constructs a repository.
func NewRepository(db *sql.DB, opts ...Option) *Repository {
	repo := &Repository{db: db, table: defaultFirmwareTable}
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

// Create inserts a firmware record.
func (r *Repository) Create(ctx context.Context, record *firmware.Record) error {
	if r == nil || r.db == nil {
		return errors.New("firmware repo: nil db")
	}
	if record == nil {
		return firmware.ErrNilRecord
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	imei_no,
	iccid_no,
	sl_no,
	firmware_status,
	created_at
) VALUES (
	$1, $2, $3, $4, $5
)
RETURNING id`, r.table)

	return r.db.QueryRowContext(
		ctx,
		query,
		record.IMEINo,
		record.ICCIDNo,
		record.SlNo,
		record.FirmwareStatus,
		record.CreatedAt.UTC(),
	).Scan(&record.ID)
}

// List loads all records, newest first.
func (r *Repository) List(ctx context.Context) ([]firmware.Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("firmware repo: nil db")
	}

	query := fmt.Sprintf(`
SELECT id, imei_no, iccid_no, sl_no, firmware_status, created_at
FROM %s
ORDER BY created_at DESC, id DESC`, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []firmware.Record
	for rows.Next() {
		var record firmware.Record
		if err := rows.Scan(
			&record.ID,
			&record.IMEINo,
			&record.ICCIDNo,
			&record.SlNo,
			&record.FirmwareStatus,
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
func (r *Repository) FindByIMEI(ctx context.Context, imeiNo string) (*firmware.Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("firmware repo: nil db")
	}
	if imeiNo == "" {
		return nil, workflow.ErrEmptyIMEI
	}

	query := fmt.Sprintf(`
SELECT id, imei_no, iccid_no, sl_no, firmware_status, created_at
FROM %s
WHERE imei_no = $1
LIMIT 1`, r.table)

	var record firmware.Record
	if err := r.db.QueryRowContext(ctx, query, imeiNo).Scan(
		&record.ID,
		&record.IMEINo,
		&record.ICCIDNo,
		&record.SlNo,
		&record.FirmwareStatus,
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

// Update rewrites ICCID and serial for a record.
func (r *Repository) Update(ctx context.Context, record *firmware.Record) error {
	if r == nil || r.db == nil {
		return errors.New("firmware repo: nil db")
	}
	if record == nil {
		return firmware.ErrNilRecord
	}

	query := fmt.Sprintf("UPDATE %s SET iccid_no = $1, sl_no = $2 WHERE id = $3", r.table)
	result, err := r.db.ExecContext(ctx, query, record.ICCIDNo, record.SlNo, record.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return firmware.ErrRecordNotFound
	}
	return nil
}

// DeleteByIMEI removes a record.
func (r *Repository) DeleteByIMEI(ctx context.Context, imeiNo string) error {
	if r == nil || r.db == nil {
		return errors.New("firmware repo: nil db")
	}
	if imeiNo == "" {
		return workflow.ErrEmptyIMEI
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE imei_no = $1", r.table)
	result, err := r.db.ExecContext(ctx, query, imeiNo)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return firmware.ErrRecordNotFound
	}
	return nil
}

// NextSerial derives the next serial from today's record count. Creation
// consumes the number implicitly, so the preview stays consistent between
// a GET and the create that follows it.
func (r *Repository) NextSerial(ctx context.Context) (string, error) {
	if r == nil || r.db == nil {
		return "", errors.New("firmware repo: nil db")
	}

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE created_at >= date_trunc('day', NOW())", r.table)
	var count int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return "", err
	}
	return firmware.FormatSerial(time.Now().UTC(), serialSeqBase+count+1), nil
}

// MarkQcDone sets the firmWareStatus lock flag.
func (r *Repository) MarkQcDone(ctx context.Context, imeiNo string) error {
	if r == nil || r.db == nil {
		return errors.New("firmware repo: nil db")
	}
	if imeiNo == "" {
		return workflow.ErrEmptyIMEI
	}

	query := fmt.Sprintf("UPDATE %s SET firmware_status = TRUE WHERE imei_no = $1", r.table)
	result, err := r.db.ExecContext(ctx, query, imeiNo)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return firmware.ErrRecordNotFound
	}
	return nil
}
