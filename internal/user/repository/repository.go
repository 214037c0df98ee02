package repository

import (
	"context"

	"spacehub/backend/internal/user/domain"
)

// Repository defines persistence for users.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, bool, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, bool, error)
	Create(ctx context.Context, u *domain.User) error
	UpdateName(ctx context.Context, id, name string) (*domain.User, bool, error)
}
