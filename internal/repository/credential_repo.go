package repository

import (
	"context"
	"errors"
	"time"

	"campusgate/internal/domain"

	"gorm.io/gorm"
)

// CredentialRepository provides DB access for cached credential records.
// It is deliberately dumb: equality filters only, no query logic.
type CredentialRepository struct {
	db *gorm.DB
}

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// FindByCardnumPlatform returns the record for (cardnum, platform), or
// (nil, nil) when none exists.
func (r *CredentialRepository) FindByCardnumPlatform(ctx context.Context, cardnum, platform string) (*domain.AuthRecord, error) {
	var rec domain.AuthRecord
	err := r.db.WithContext(ctx).
		Where("cardnum = ? AND platform = ?", cardnum, platform).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// FindByTokenHash returns the record owning the token digest, or (nil, nil)
// when the token is unknown or revoked.
func (r *CredentialRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*domain.AuthRecord, error) {
	var rec domain.AuthRecord
	err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *CredentialRepository) Insert(ctx context.Context, rec *domain.AuthRecord) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// UpdateSecrets rewrites every secret-derived field of a record as one
// whole-field patch. The token hash is untouched: a refresh keeps the token
// so existing bearers stay valid.
func (r *CredentialRepository) UpdateSecrets(ctx context.Context, cardnum, platform string, patch map[string]any) error {
	return r.db.WithContext(ctx).Model(&domain.AuthRecord{}).
		Where("cardnum = ? AND platform = ?", cardnum, platform).
		Updates(patch).Error
}

func (r *CredentialRepository) Remove(ctx context.Context, cardnum, platform string) error {
	return r.db.WithContext(ctx).
		Where("cardnum = ? AND platform = ?", cardnum, platform).
		Delete(&domain.AuthRecord{}).Error
}

func (r *CredentialRepository) RemoveByTokenHash(ctx context.Context, tokenHash string) error {
	return r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&domain.AuthRecord{}).Error
}

// TouchLastInvoked bumps the passthrough timestamp.
func (r *CredentialRepository) TouchLastInvoked(ctx context.Context, tokenHash string, at time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.AuthRecord{}).
		Where("token_hash = ?", tokenHash).
		Update("last_invoked", at).Error
}
