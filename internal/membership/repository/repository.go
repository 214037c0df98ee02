package repository

import (
	"context"

	"spacehub/backend/internal/membership/domain"
)

// Repository defines persistence for space memberships.
type Repository interface {
	GetBySpaceAndUser(ctx context.Context, spaceID, userID string) (*domain.Membership, bool, error)
	ListBySpace(ctx context.Context, spaceID string) ([]*domain.Membership, error)
	Create(ctx context.Context, m *domain.Membership) error
	DeleteBySpaceAndUser(ctx context.Context, spaceID, userID string) (bool, error)
}
