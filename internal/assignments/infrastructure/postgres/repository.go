package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	assignments "assemblyline-cloud/internal/assignments/domain"
)

const defaultAssignmentsTable = "work_assignments"

// Repository is a Postgres implementation for assignments.
type Repository struct {
	db    *sql.DB
	table string
}

// NewRepository constructs a repository.
func NewRepository(db *sql.DB, opts ...Option) *Repository {
	repo := &Repository{db: db, table: defaultAssignmentsTable}
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

// Save upserts an assignment.
func (r *Repository) Save(ctx context.Context, assignment *assignments.Assignment) error {
	if r == nil || r.db == nil {
		return errors.New("assignments repo: nil db")
	}
	if assignment == nil {
		return assignments.ErrNilAssignment
	}

	if assignment.ID == "" {
		query := fmt.Sprintf(`
INSERT INTO %s (emp_id, work_titel, work_description, status, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`, r.table)
		return r.db.QueryRowContext(
			ctx,
			query,
			assignment.EmpID,
			assignment.WorkTitle,
			assignment.WorkDescription,
			assignment.Status,
			assignment.CreatedAt.UTC(),
		).Scan(&assignment.ID)
	}

	query := fmt.Sprintf(`
UPDATE %s
SET work_titel = $1, work_description = $2, status = $3
WHERE id = $4`, r.table)
	_, err := r.db.ExecContext(
		ctx,
		query,
		assignment.WorkTitle,
		assignment.WorkDescription,
		assignment.Status,
		assignment.ID,
	)
	return err
}

// ListByEmployee loads an employee's assignments, oldest first.
func (r *Repository) ListByEmployee(ctx context.Context, empID string) ([]assignments.Assignment, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("assignments repo: nil db")
	}
	if empID == "" {
		return nil, errors.New("assignments repo: empty employee id")
	}

	query := fmt.Sprintf(`
SELECT id, emp_id, work_titel, work_description, status, created_at
FROM %s
WHERE emp_id = $1
ORDER BY created_at ASC, id ASC`, r.table)

	rows, err := r.db.QueryContext(ctx, query, empID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []assignments.Assignment
	for rows.Next() {
		var assignment assignments.Assignment
		if err := rows.Scan(
			&assignment.ID,
			&assignment.EmpID,
			&assignment.WorkTitle,
			&assignment.WorkDescription,
			&assignment.Status,
			&assignment.CreatedAt,
		); err != nil {
			return nil, err
		}
		assignment.CreatedAt = assignment.CreatedAt.UTC()
		result = append(result, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
