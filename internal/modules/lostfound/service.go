package lostfound

import (
	"context"

	"campusgate/internal/domain"
	"campusgate/internal/modules/auth"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Service contains the lost-and-found business logic. It consumes the
// identity context for ownership; anonymous access never reaches it for
// writes because handlers call Require() first.
type Service struct {
	items LostfoundRepositoryInterface
}

func NewService(items LostfoundRepositoryInterface) *Service {
	return &Service{items: items}
}

func (s *Service) List(ctx context.Context, itemType string, page, pageSize int) ([]domain.LostfoundItem, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return s.items.List(ctx, domain.LostfoundType(itemType), (page-1)*pageSize, pageSize)
}

func (s *Service) Create(ctx context.Context, session *auth.Session, req CreateItemRequest) (*domain.LostfoundItem, error) {
	item := &domain.LostfoundItem{
		Cardnum:     session.Cardnum,
		Name:        session.Name,
		Type:        domain.LostfoundType(req.Type),
		Title:       req.Title,
		Description: req.Description,
		Contact:     req.Contact,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Update(ctx context.Context, session *auth.Session, id int64, req UpdateItemRequest) (*domain.LostfoundItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}
	if item.Cardnum != session.Cardnum {
		return nil, ErrForbidden
	}

	if req.Title != "" {
		item.Title = req.Title
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Contact != "" {
		item.Contact = req.Contact
	}
	if req.Resolved != nil {
		item.Resolved = *req.Resolved
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item. asAdmin skips the ownership check; the admin
// allow-list gate sits in front of that path.
func (s *Service) Delete(ctx context.Context, session *auth.Session, id int64, asAdmin bool) error {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}
	if !asAdmin && item.Cardnum != session.Cardnum {
		return ErrForbidden
	}
	return s.items.Delete(ctx, id)
}
