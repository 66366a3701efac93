package lostfound

import (
	"context"

	"campusgate/internal/domain"
)

// LostfoundRepositoryInterface — only the methods this service uses.
type LostfoundRepositoryInterface interface {
	Create(ctx context.Context, item *domain.LostfoundItem) error
	GetByID(ctx context.Context, id int64) (*domain.LostfoundItem, error)
	List(ctx context.Context, itemType domain.LostfoundType, offset, limit int) ([]domain.LostfoundItem, error)
	Update(ctx context.Context, item *domain.LostfoundItem) error
	Delete(ctx context.Context, id int64) error
}
