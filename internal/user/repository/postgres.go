package repository

import (
	"context"
	"database/sql"
	"errors"

	"spacehub/backend/internal/platform/authz"
	"spacehub/backend/internal/user/domain"
)

type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository returns a user repository that uses the given db for persistence.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, name, password_hash, role, org_id, created_at, updated_at`

func scanUser(row *sql.Row) (*domain.User, bool, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.OrgID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &u, true, nil
}

// GetByID returns the user for id. found is false when no row matches;
// error is returned only for database failures.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByEmail returns the user with the given email. found is false when no
// row matches; error is returned only for database failures.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, bool, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

// Create persists the user. The user must have ID set; it is not assigned here.
func (r *PostgresRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, name, password_hash, role, org_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Email, u.Name, u.PasswordHash, u.Role, u.OrgID, u.CreatedAt, u.UpdatedAt)
	return err
}

// UpdateName updates the user's display name and returns the updated row.
// found is false when no row matches.
func (r *PostgresRepository) UpdateName(ctx context.Context, id, name string) (*domain.User, bool, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE users SET name = $2, updated_at = now() WHERE id = $1 RETURNING `+userColumns, id, name)
	return scanUser(row)
}

// FindPrincipal resolves a user and its organization's display fields in a
// single joined read. Implements authz.PrincipalSource.
func (r *PostgresRepository) FindPrincipal(ctx context.Context, userID string) (*authz.Principal, bool, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT u.id, u.email, u.name, u.role, u.org_id, o.name
		 FROM users u
		 JOIN organizations o ON o.id = u.org_id
		 WHERE u.id = $1`, userID)
	var p authz.Principal
	err := row.Scan(&p.ID, &p.Email, &p.Name, &p.Role, &p.OrgID, &p.OrgName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &p, true, nil
}
