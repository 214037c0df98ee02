package repository

import (
	"context"
	"database/sql"
	"errors"

	"spacehub/backend/internal/platform/authz"
	"spacehub/backend/internal/space/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a space repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const spaceColumns = `id, name, description, org_id, created_by, created_at, updated_at`

func scanSpace(row *sql.Row) (*domain.Space, bool, error) {
	var s domain.Space
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.OrgID, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &s, true, nil
}

// GetByID returns the space for id. found is false when no row matches.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.Space, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+spaceColumns+` FROM spaces WHERE id = $1`, id)
	return scanSpace(row)
}

// ListByOrg returns all spaces belonging to the given organization.
func (r *PostgresRepository) ListByOrg(ctx context.Context, orgID string) ([]*domain.Space, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+spaceColumns+` FROM spaces WHERE org_id = $1 ORDER BY created_at`, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Space
	for rows.Next() {
		var s domain.Space
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.OrgID, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

// Create persists the space. The space must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, s *domain.Space) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO spaces (id, name, description, org_id, created_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.Name, s.Description, s.OrgID, s.CreatedBy, s.CreatedAt, s.UpdatedAt)
	return err
}

// Update updates the space's name and description and returns the updated row.
// found is false when no row matches.
func (r *PostgresRepository) Update(ctx context.Context, s *domain.Space) (*domain.Space, bool, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE spaces SET name = $2, description = $3, updated_at = now()
		 WHERE id = $1 RETURNING `+spaceColumns,
		s.ID, s.Name, s.Description)
	return scanSpace(row)
}

// Delete removes the space. Returns false when no row matched.
func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM spaces WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindSpaceAccess returns the space's owning organization and creator.
// Implements authz.SpaceSource.
func (r *PostgresRepository) FindSpaceAccess(ctx context.Context, spaceID string) (*authz.SpaceAccess, bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT org_id, created_by FROM spaces WHERE id = $1`, spaceID)
	var a authz.SpaceAccess
	if err := row.Scan(&a.OrgID, &a.CreatedBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &a, true, nil
}
