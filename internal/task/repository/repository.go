package repository

import (
	"context"

	"spacehub/backend/internal/task/domain"
)

// Repository defines persistence for tasks.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, bool, error)
	ListBySpace(ctx context.Context, spaceID string) ([]*domain.Task, error)
	Create(ctx context.Context, t *domain.Task) error
	Update(ctx context.Context, t *domain.Task) (*domain.Task, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}
