package repository

import (
	"context"
	"database/sql"
	"errors"

	"spacehub/backend/internal/task/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a task repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const taskColumns = `id, space_id, title, description, status, assignee_id, created_by, created_at, updated_at`

func scanTask(scan func(dest ...any) error) (*domain.Task, error) {
	var t domain.Task
	var assignee sql.NullString
	err := scan(&t.ID, &t.SpaceID, &t.Title, &t.Description, &t.Status, &assignee, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.AssigneeID = assignee.String
	return &t, nil
}

// GetByID returns the task for id. found is false when no row matches.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Task, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	t, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return t, true, nil
}

// ListBySpace returns all tasks of the given space.
func (r *PostgresRepository) ListBySpace(ctx context.Context, spaceID string) ([]*domain.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE space_id = $1 ORDER BY created_at`, spaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Create persists the task. The task must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, t *domain.Task) error {
	assignee := sql.NullString{String: t.AssigneeID, Valid: t.AssigneeID != ""}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, space_id, title, description, status, assignee_id, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.SpaceID, t.Title, t.Description, t.Status, assignee, t.CreatedBy, t.CreatedAt, t.UpdatedAt)
	return err
}

// Update updates the task's mutable fields and returns the updated row.
// found is false when no row matches.
func (r *PostgresRepository) Update(ctx context.Context, t *domain.Task) (*domain.Task, bool, error) {
	assignee := sql.NullString{String: t.AssigneeID, Valid: t.AssigneeID != ""}
	row := r.db.QueryRowContext(ctx,
		`UPDATE tasks SET title = $2, description = $3, status = $4, assignee_id = $5, updated_at = now()
		 WHERE id = $1 RETURNING `+taskColumns,
		t.ID, t.Title, t.Description, t.Status, assignee)
	updated, err := scanTask(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return updated, true, nil
}

// Delete removes the task. Returns false when no row matched.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
