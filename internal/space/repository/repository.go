package repository

import (
	"context"

	"spacehub/backend/internal/space/domain"
)

// Repository defines persistence for spaces.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Space, bool, error)
	ListByOrg(ctx context.Context, orgID string) ([]*domain.Space, error)
	Create(ctx context.Context, s *domain.Space) error
	Update(ctx context.Context, s *domain.Space) (*domain.Space, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
