package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"spacehub/backend/internal/membership/domain"
	"spacehub/backend/internal/platform/authz"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a membership repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func scanMembership(scan func(dest ...any) error) (*domain.Membership, error) {
	var m domain.Membership
	var perms []byte
	if err := scan(&m.ID, &m.SpaceID, &m.UserID, &m.Role, &perms, &m.CreatedAt); err != nil {
		return nil, err
	}
	if len(perms) > 0 {
		if err := json.Unmarshal(perms, &m.Permissions); err != nil {
			return nil, err
		}
	}
	if m.Permissions == nil {
		m.Permissions = map[string]bool{}
	}
	return &m, nil
}

// GetBySpaceAndUser returns the membership row for (space, user). found is
// false when no row exists; error is returned only for database failures.
func (r *PostgresRepository) GetBySpaceAndUser(ctx context.Context, spaceID, userID string) (*domain.Membership, bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, space_id, user_id, role, permissions, created_at
		 FROM space_members WHERE space_id = $1 AND user_id = $2`, spaceID, userID)
	m, err := scanMembership(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return m, true, nil
}

// ListBySpace returns all memberships of the given space.
func (r *PostgresRepository) ListBySpace(ctx context.Context, spaceID string) ([]*domain.Membership, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, space_id, user_id, role, permissions, created_at
		 FROM space_members WHERE space_id = $1 ORDER BY created_at`, spaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Membership
	for rows.Next() {
		m, err := scanMembership(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Create persists the membership. The membership must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, m *domain.Membership) error {
	perms := m.Permissions
	if perms == nil {
		perms = map[string]bool{}
	}
	data, err := json.Marshal(perms)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO space_members (id, space_id, user_id, role, permissions, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.ID, m.SpaceID, m.UserID, m.Role, data, m.CreatedAt)
	return err
}

// DeleteBySpaceAndUser removes the membership row. Returns false when no row matched.
func (r *PostgresRepository) DeleteBySpaceAndUser(ctx context.Context, spaceID, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM space_members WHERE space_id = $1 AND user_id = $2`, spaceID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindSpaceMembership returns the stored role and permission set for
// (space, user). Implements authz.MembershipSource.
func (r *PostgresRepository) FindSpaceMembership(ctx context.Context, spaceID, userID string) (*authz.SpaceMembership, bool, error) {
	m, found, err := r.GetBySpaceAndUser(ctx, spaceID, userID)
	if err != nil || !found {
		return nil, false, err
	}
	return &authz.SpaceMembership{Role: string(m.Role), Permissions: m.Permissions}, true, nil
}
