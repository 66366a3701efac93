package repository

import (
	"context"
	"errors"

	"campusgate/internal/domain"

	"gorm.io/gorm"
)

// LostfoundRepository provides DB access for lost-and-found postings.
type LostfoundRepository struct {
	db *gorm.DB
}

func NewLostfoundRepository(db *gorm.DB) *LostfoundRepository {
	return &LostfoundRepository{db: db}
}

func (r *LostfoundRepository) Create(ctx context.Context, item *domain.LostfoundItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *LostfoundRepository) GetByID(ctx context.Context, id int64) (*domain.LostfoundItem, error) {
	var item domain.LostfoundItem
	err := r.db.WithContext(ctx).First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns postings newest first. itemType filters by lost/found when
// non-empty.
func (r *LostfoundRepository) List(ctx context.Context, itemType domain.LostfoundType, offset, limit int) ([]domain.LostfoundItem, error) {
	q := r.db.WithContext(ctx).Model(&domain.LostfoundItem{}).Order("created_at DESC")
	if itemType != "" {
		q = q.Where("type = ?", itemType)
	}
	var items []domain.LostfoundItem
	if err := q.Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *LostfoundRepository) Update(ctx context.Context, item *domain.LostfoundItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *LostfoundRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.LostfoundItem{}, id).Error
}
